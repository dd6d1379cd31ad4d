package repository

import (
	"errors"

	"github.com/projectflow/project-management-api/internal/models"
	"gorm.io/gorm"
)

// ErrStaleTask is returned when a task update matched no row: either a
// concurrent writer bumped the version or the task was deleted.
var ErrStaleTask = errors.New("task repository: stale task write")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProject retrieves a project's tasks, soonest deadline first
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("AssignedTo").
		Where("project_id = ?", projectID).
		Order("end_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAssignedToUser retrieves tasks assigned to a user, soonest deadline
// first.
func (r *GormTaskRepository) ListAssignedToUser(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("Project").
		Where("assigned_to_id = ?", userID).
		Order("end_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes the task's mutable fields guarded by the version the
// caller read. Zero affected rows means the write raced a concurrent
// update or delete; the caller decides which by re-reading.
func (r *GormTaskRepository) Update(task *models.Task) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":          task.Title,
			"description":    task.Description,
			"start_date":     task.StartDate,
			"end_date":       task.EndDate,
			"status":         task.Status,
			"assigned_to_id": task.AssignedToID,
			"version":        task.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleTask
	}

	task.Version++
	return nil
}

// Delete removes a task and its comments as one transaction. Comments
// cascade here by policy; they must never outlive the task.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AddComment attaches a comment to a task
func (r *GormTaskRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}
