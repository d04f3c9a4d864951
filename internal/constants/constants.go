package constants

import "time"

// Context keys set by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)

// Task listing defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 5
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultSort     = "title"
	StatusFilterAll = "all"
)

// Auth.
const (
	MaxUsernameLength = 50
	DefaultBcryptCost = 10
	DefaultTokenTTL   = 60 * time.Minute
	BearerScheme      = "Bearer"
)
