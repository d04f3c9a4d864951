package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/utils"
	"gorm.io/gorm"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	logger   zerolog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger.With().Str("service", "task").Logger(),
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	// Status filters by exact status; empty or "all" disables the filter
	Status string
	// Sort is one of title, status, createdAt (created_at is accepted too)
	Sort  string
	Page  int
	Limit int
}

// TaskPage is one page of a filtered, sorted task list.
type TaskPage struct {
	Tasks      []models.Task
	Total      int64
	Pagination utils.PaginationParams
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
}

// UpdateTaskInput represents input for updating a task. Nil fields are not
// touched; a non-nil empty description clears it.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

var sortFields = map[string]repository.TaskSortField{
	"title":      repository.SortByTitle,
	"status":     repository.SortByStatus,
	"createdAt":  repository.SortByCreatedAt,
	"created_at": repository.SortByCreatedAt,
}

// List returns one page of tasks plus the size of the filtered set
func (s *TaskService) List(ctx context.Context, input ListTasksInput) (*TaskPage, error) {
	if input.Page < 1 {
		return nil, newValidationError("page", "must be a positive integer")
	}
	if input.Limit < constants.MinPageSize {
		return nil, newValidationError("limit", "must be a positive integer")
	}
	if input.Limit > constants.MaxPageSize {
		return nil, newValidationError("limit", fmt.Sprintf("must not exceed %d", constants.MaxPageSize))
	}

	sortName := input.Sort
	if sortName == "" {
		sortName = constants.DefaultSort
	}
	sortBy, ok := sortFields[sortName]
	if !ok {
		return nil, newValidationError("sort", "must be one of title, status, createdAt")
	}

	pagination := utils.NewPaginationParams(input.Page, input.Limit)
	filter := repository.TaskFilter{
		SortBy:     sortBy,
		Pagination: pagination,
	}

	// unknown statuses are matched literally and simply find nothing
	if input.Status != "" && input.Status != constants.StatusFilterAll {
		status := models.TaskStatus(input.Status)
		filter.Status = &status
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &TaskPage{
		Tasks:      tasks,
		Total:      total,
		Pagination: pagination,
	}, nil
}

// Get returns a task by id
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	if !validTaskID(id) {
		return nil, ErrTaskNotFound
	}

	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// Create creates a new task; status defaults to pending
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, newValidationError("title", "is required")
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !input.Status.Valid() {
		return nil, invalidStatusError()
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug().
		Str("task_id", task.ID).
		Str("status", string(task.Status)).
		Msg("created task")
	return task, nil
}

// Update merges the supplied fields onto an existing task
func (s *TaskService) Update(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, newValidationError("title", "cannot be empty")
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, invalidStatusError()
	}
	if !validTaskID(id) {
		return nil, ErrTaskNotFound
	}

	task, err := s.taskRepo.Update(ctx, id, repository.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Debug().Str("task_id", task.ID).Msg("updated task")
	return task, nil
}

// Delete permanently removes a task
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if !validTaskID(id) {
		return ErrTaskNotFound
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Debug().Str("task_id", id).Msg("deleted task")
	return nil
}

func validTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func invalidStatusError() error {
	return newValidationError("status", fmt.Sprintf("must be one of %s, %s, %s",
		models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted))
}
