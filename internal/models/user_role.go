package models

import "time"

// UserRole is the join row granting a role to a user. Grants are
// monotonic: the application never revokes a role automatically.
type UserRole struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	Role      Role      `gorm:"primarykey;type:varchar(20)" json:"role"`
	GrantedAt time.Time `json:"granted_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
