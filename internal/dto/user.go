package dto

import "github.com/projectflow/project-management-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64   `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Roles:    user.RoleNames(),
	}
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users []UserDTO `json:"users"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

// ToUserListResponse converts users to a paginated response
func ToUserListResponse(users []models.User, page, limit int, total int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, u := range users {
		items[i] = ToUserDTO(u)
	}
	return UserListResponse{
		Users: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}
}
