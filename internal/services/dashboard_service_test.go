package services

import (
	"testing"
	"time"

	"github.com/projectflow/project-management-api/internal/models"
	"github.com/projectflow/project-management-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboardTest(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Comment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	return NewDashboardService(projectRepo, taskRepo), db
}

func dashboardTask(db *gorm.DB, title string, projectID, assigneeID uint64, status models.TaskStatus, due time.Time) *models.Task {
	task := &models.Task{
		Title:        title,
		StartDate:    due.Add(-96 * time.Hour),
		EndDate:      due,
		Status:       status,
		ProjectID:    projectID,
		AssignedToID: &assigneeID,
		Version:      1,
	}
	db.Create(task)
	return task
}

func TestGetDashboard(t *testing.T) {
	svc, db := setupDashboardTest(t)

	user := &models.User{Email: "me@example.com", Username: "me", PasswordHash: "hashed"}
	require.NoError(t, db.Create(user).Error)
	other := &models.User{Email: "other@example.com", Username: "other", PasswordHash: "hashed"}
	require.NoError(t, db.Create(other).Error)

	// One project organized by the user, one they merely belong to.
	mine := &models.Project{Title: "Mine", OrganizerID: user.ID}
	require.NoError(t, db.Create(mine).Error)
	theirs := &models.Project{Title: "Theirs", OrganizerID: other.ID}
	require.NoError(t, db.Create(theirs).Error)
	require.NoError(t, db.Create(&models.ProjectMember{
		ProjectID: theirs.ID, UserID: user.ID, JoinedAt: time.Now(),
	}).Error)
	unrelated := &models.Project{Title: "Unrelated", OrganizerID: other.ID}
	require.NoError(t, db.Create(unrelated).Error)

	now := time.Now()
	dashboardTask(db, "due soon", mine.ID, user.ID, models.TaskStatusNotStarted, now.Add(24*time.Hour))
	dashboardTask(db, "done already", mine.ID, user.ID, models.TaskStatusCompleted, now.Add(24*time.Hour))
	dashboardTask(db, "overdue", theirs.ID, user.ID, models.TaskStatusInProgress, now.Add(-time.Hour))
	dashboardTask(db, "far off", theirs.ID, user.ID, models.TaskStatusNotStarted, now.Add(200*time.Hour))
	dashboardTask(db, "not mine", theirs.ID, other.ID, models.TaskStatusNotStarted, now.Add(24*time.Hour))

	dashboard, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)

	require.Len(t, dashboard.Projects, 2)
	titles := []string{dashboard.Projects[0].Title, dashboard.Projects[1].Title}
	require.ElementsMatch(t, []string{"Mine", "Theirs"}, titles)

	require.Len(t, dashboard.AssignedTasks, 4)
	require.Equal(t, "overdue", dashboard.AssignedTasks[0].Title, "soonest deadline first")

	// Only incomplete tasks due inside the window count as upcoming.
	require.Len(t, dashboard.UpcomingDeadlines, 1)
	require.Equal(t, "due soon", dashboard.UpcomingDeadlines[0].Title)
}

func TestGetDashboard_EmptyState(t *testing.T) {
	svc, db := setupDashboardTest(t)

	user := &models.User{Email: "new@example.com", Username: "new", PasswordHash: "hashed"}
	require.NoError(t, db.Create(user).Error)

	dashboard, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)
	require.Empty(t, dashboard.Projects)
	require.Empty(t, dashboard.AssignedTasks)
	require.Empty(t, dashboard.UpcomingDeadlines)
}
