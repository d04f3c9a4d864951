package repository

import (
	"context"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/utils"
)

// TaskRepository defines the interface for task data access.
// Lookups of unknown ids return gorm.ErrRecordNotFound.
type TaskRepository interface {
	// Create inserts a task; id and created_at are assigned on insert
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// List retrieves tasks with filtering, sorting and pagination.
	// The returned count ignores pagination.
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update writes only the fields set in the patch and returns the stored task
	Update(ctx context.Context, id string, patch TaskPatch) (*models.Task, error)

	// Delete permanently removes a task
	Delete(ctx context.Context, id string) error
}

// TaskSortField is a column tasks can be ordered by.
type TaskSortField string

const (
	SortByTitle     TaskSortField = "title"
	SortByStatus    TaskSortField = "status"
	SortByCreatedAt TaskSortField = "created_at"
)

// Column returns the qualified column for the sort field, or false if the
// field is not sortable.
func (f TaskSortField) Column() (string, bool) {
	switch f {
	case SortByTitle:
		return "tasks.title", true
	case SortByStatus:
		return "tasks.status", true
	case SortByCreatedAt:
		return "tasks.created_at", true
	}
	return "", false
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	SortBy     TaskSortField
	Pagination utils.PaginationParams
}

// TaskPatch holds the fields of a partial update. Nil means "leave as is".
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user. A taken username yields gorm.ErrDuplicatedKey.
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByUsername finds a user by username (case-sensitive)
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// UsernameExists reports whether the username is already registered
	UsernameExists(ctx context.Context, username string) (bool, error)
}
