package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleVisitor       Role = "Visitor"
	RoleMember        Role = "Member"
	RoleOrganizer     Role = "Organizer"
	RoleAdministrator Role = "Administrator"
)

// AllRoles is the closed set of roles the seeder guarantees to exist.
var AllRoles = []Role{RoleVisitor, RoleMember, RoleOrganizer, RoleAdministrator}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"type:varchar(50);not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Roles             []UserRole      `gorm:"foreignKey:UserID" json:"-"`
	OrganizedProjects []Project       `gorm:"foreignKey:OrganizerID" json:"-"`
	Memberships       []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
	Comments          []Comment       `gorm:"foreignKey:UserID" json:"-"`
}

// HasRole reports whether the user holds the given role. Roles must be
// preloaded.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// RoleNames returns the user's roles as plain strings.
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = string(r.Role)
	}
	return names
}
