package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projectflow/project-management-api/internal/constants"
	"github.com/projectflow/project-management-api/internal/database"
	"github.com/projectflow/project-management-api/internal/models"
	"github.com/projectflow/project-management-api/internal/repository"
	"github.com/projectflow/project-management-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Comment{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email, username string) *models.User {
	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

// createTestProject creates a project together with the organizer's
// implicit membership row.
func (suite *TaskHandlerTestSuite) createTestProject(title string, organizerID uint64) *models.Project {
	project := &models.Project{
		Title:       title,
		Description: "Test Description",
		OrganizerID: organizerID,
	}
	suite.db.Create(project)
	suite.addProjectMember(project.ID, organizerID)
	return project
}

func (suite *TaskHandlerTestSuite) addProjectMember(projectID, userID uint64) {
	suite.db.Create(&models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	})
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, projectID uint64) *models.Task {
	task := &models.Task{
		Title:     title,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(48 * time.Hour),
		Status:    models.TaskStatusNotStarted,
		ProjectID: projectID,
		Version:   1,
	}
	suite.db.Create(task)
	return task
}

func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// setProjectContext simulates RequireProjectAccess.
func (suite *TaskHandlerTestSuite) setProjectContext(c *gin.Context, user *models.User, project models.Project) {
	c.Set(constants.ContextKeyCurrentUser, user)
	c.Set(constants.ContextKeyProject, project)
}

// setTaskContext simulates RequireTaskAccess.
func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, user *models.User, task models.Task) {
	c.Set(constants.ContextKeyCurrentUser, user)
	c.Set(constants.ContextKeyTask, task)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)

	requestBody := map[string]interface{}{
		"title":       "New Task",
		"description": "Task Description",
		"start_date":  time.Now().Add(time.Hour).Format(time.RFC3339),
		"end_date":    time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/tasks", body, organizer.ID)
	suite.setProjectContext(c, organizer, *project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Task", response["title"])
	assert.Equal(suite.T(), string(models.TaskStatusNotStarted), response["status"])
}

// Any project member may create tasks; ownership is not required.
func (suite *TaskHandlerTestSuite) TestCreateTask_ByMember() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	member := suite.createTestUser("member@example.com", "member")
	project := suite.createTestProject("Test Project", organizer.ID)
	suite.addProjectMember(project.ID, member.ID)

	requestBody := map[string]interface{}{
		"title":      "Member Task",
		"start_date": time.Now().Add(time.Hour).Format(time.RFC3339),
		"end_date":   time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/tasks", body, member.ID)
	suite.setProjectContext(c, member, *project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_EndBeforeStart() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)

	start := time.Now().Add(72 * time.Hour)
	requestBody := map[string]interface{}{
		"title":      "Backwards Task",
		"start_date": start.Format(time.RFC3339),
		"end_date":   start.Add(-24 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/tasks", body, organizer.ID)
	suite.setProjectContext(c, organizer, *project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// Nothing is written on a validation failure.
	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_EndDateInPast() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)

	requestBody := map[string]interface{}{
		"title":      "Late Task",
		"start_date": time.Now().Add(-72 * time.Hour).Format(time.RFC3339),
		"end_date":   time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/tasks", body, organizer.ID)
	suite.setProjectContext(c, organizer, *project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneeNotMember() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	outsider := suite.createTestUser("outsider@example.com", "outsider")
	project := suite.createTestProject("Test Project", organizer.ID)

	requestBody := map[string]interface{}{
		"title":          "Unassignable Task",
		"start_date":     time.Now().Add(time.Hour).Format(time.RFC3339),
		"end_date":       time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"assigned_to_id": outsider.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/tasks", body, organizer.ID)
	suite.setProjectContext(c, organizer, *project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_Status() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)
	task := suite.createTestTask("Test Task", project.ID)

	requestBody := map[string]interface{}{
		"status": "COMPLETED",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, organizer.ID)
	suite.setTaskContext(c, organizer, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Task
	suite.db.First(&stored, task.ID)
	assert.Equal(suite.T(), models.TaskStatusCompleted, stored.Status)
	assert.EqualValues(suite.T(), 2, stored.Version, "successful write bumps the version")
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidStatus() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)
	task := suite.createTestTask("Test Task", project.ID)

	requestBody := map[string]interface{}{
		"status": "DONE",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, organizer.ID)
	suite.setTaskContext(c, organizer, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ClearAssignee() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)
	task := suite.createTestTask("Test Task", project.ID)
	suite.db.Model(task).Update("assigned_to_id", organizer.ID)

	requestBody := map[string]interface{}{
		"clear_assignee": true,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, organizer.ID)
	suite.setTaskContext(c, organizer, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Task
	suite.db.First(&stored, task.ID)
	assert.Nil(suite.T(), stored.AssignedToID)
}

// A write racing a delete is reported as not found, not as a conflict.
func (suite *TaskHandlerTestSuite) TestUpdateTask_DeletedConcurrently() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)
	task := suite.createTestTask("Test Task", project.ID)

	requestBody := map[string]interface{}{
		"status": "IN_PROGRESS",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, organizer.ID)
	suite.setTaskContext(c, organizer, *task)

	// The task disappears after the access check but before the write.
	suite.Require().NoError(suite.db.Delete(&models.Task{}, task.ID).Error)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_CascadesComments() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)
	task := suite.createTestTask("Test Task", project.ID)

	for i := 0; i < 2; i++ {
		suite.db.Create(&models.Comment{
			Content: fmt.Sprintf("comment %d", i),
			TaskID:  task.ID,
			UserID:  organizer.ID,
		})
	}

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, organizer.ID)
	suite.setTaskContext(c, organizer, *task)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&count)
	assert.Zero(suite.T(), count, "comments must not outlive their task")

	err := suite.db.First(&models.Task{}, task.ID).Error
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

func (suite *TaskHandlerTestSuite) TestAddComment_Success() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)
	task := suite.createTestTask("Test Task", project.ID)

	requestBody := map[string]interface{}{
		"content": "Looks good to me",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/comments", body, organizer.ID)
	suite.setTaskContext(c, organizer, *task)

	suite.handler.AddComment(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var comment models.Comment
	err := suite.db.Where("task_id = ?", task.ID).First(&comment).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Looks good to me", comment.Content)
	assert.Equal(suite.T(), organizer.ID, comment.UserID)
}

func (suite *TaskHandlerTestSuite) TestAddComment_WhitespaceOnly() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)
	task := suite.createTestTask("Test Task", project.ID)

	requestBody := map[string]interface{}{
		"content": "   ",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/comments", body, organizer.ID)
	suite.setTaskContext(c, organizer, *task)

	suite.handler.AddComment(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListProjectTasks() {
	organizer := suite.createTestUser("organizer@example.com", "organizer")
	project := suite.createTestProject("Test Project", organizer.ID)
	suite.createTestTask("Task A", project.ID)
	suite.createTestTask("Task B", project.ID)

	c, w := suite.createAuthContext("GET", "/api/projects/1/tasks", nil, organizer.ID)
	suite.setProjectContext(c, organizer, *project)

	suite.handler.ListProjectTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response["tasks"], 2)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
