package main

import (
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/projectflow/project-management-api/internal/config"
	"github.com/projectflow/project-management-api/internal/constants"
	"github.com/projectflow/project-management-api/internal/database"
	"github.com/projectflow/project-management-api/internal/handlers"
	"github.com/projectflow/project-management-api/internal/middleware"
	"github.com/projectflow/project-management-api/internal/repository"
	"github.com/projectflow/project-management-api/internal/services"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database and prepare the schema
	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.Seed(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed defaults")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Redis store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize summary gateway when configured
	var summaryService *services.SummaryService
	if cfg.OpenAIAPIKey != "" {
		summaryService = services.NewSummaryService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, logger)
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, summaryService)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminHandler := handlers.NewAdminHandler(userRepo, projectService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Dashboard (protected)
		api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.GetDashboard)

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProjectAccess(), middleware.RequireProjectManage(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), middleware.RequireProjectManage(), projectHandler.DeleteProject)
			projects.POST("/:id/members", middleware.RequireProjectAccess(), middleware.RequireProjectManage(), projectHandler.AddMember)
			projects.DELETE("/:id/members/:user_id", middleware.RequireProjectAccess(), middleware.RequireProjectManage(), projectHandler.RemoveMember)
			projects.POST("/:id/summary", middleware.RequireProjectAccess(), middleware.RequireProjectManage(), projectHandler.GenerateSummary)
			projects.GET("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.ListProjectTasks)
			projects.POST("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.CreateTask)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
			tasks.POST("/:id/comments", middleware.RequireTaskAccess(), taskHandler.AddComment)
		}

		// Admin routes (administrator only)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdministrator())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/projects", adminHandler.ListProjects)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.DELETE("/projects/:id", adminHandler.DeleteProject)
		}
	}

	// Start server
	logger.Info().Str("addr", ":8080").Msg("server starting")
	if err := r.Run(":8080"); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
