package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(100);not null" json:"title"`
	Description string         `gorm:"type:varchar(1000);not null" json:"description"`
	OrganizerID uint64         `gorm:"not null;index" json:"organizer_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Set only when summary generation succeeds; both fields move together.
	AISummary            *string    `gorm:"type:text" json:"ai_summary"`
	AISummaryGeneratedAt *time.Time `json:"ai_summary_generated_at"`

	// Relations
	Organizer User            `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Members   []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks     []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
