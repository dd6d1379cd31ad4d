package constants

import "time"

// SessionCookieName is the cookie the session middleware issues.
const SessionCookieName = "project_session"

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID      = "user_id"
	ContextKeyCurrentUser = "current_user"
	ContextKeyProject     = "project"
	ContextKeyTask        = "task"
)

// Field length limits enforced on input.
const (
	MinPasswordLength     = 6
	MaxProjectTitleLength = 100
	MaxProjectDescription = 1000
	MaxTaskTitleLength    = 100
	MaxTaskDescription    = 500
)

// Pagination bounds.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// UpcomingDeadlineWindow is how far ahead the dashboard looks for
// not-yet-completed assigned tasks.
const UpcomingDeadlineWindow = 72 * time.Hour
