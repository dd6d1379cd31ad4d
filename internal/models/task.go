package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(100);not null" json:"title"`
	Description string         `gorm:"type:varchar(500)" json:"description"`
	StartDate   time.Time      `gorm:"not null" json:"start_date"`
	EndDate     time.Time      `gorm:"not null;index" json:"end_date"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	// Version backs the optimistic-concurrency check on updates.
	Version   uint64         `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	AssignedToID *uint64 `gorm:"index" json:"assigned_to_id"`

	// Relations
	Project    Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	Comments   []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
