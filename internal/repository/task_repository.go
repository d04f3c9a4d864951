package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	column, ok := filter.SortBy.Column()
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort field %q", filter.SortBy)
	}

	byStatus := func(db *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			return db.Where("tasks.status = ?", *filter.Status)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(byStatus).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := []models.Task{}
	if int64(filter.Pagination.Offset) >= total {
		return tasks, total, nil
	}

	// created_at then id keep ties in a deterministic order across pages
	if err := r.db.WithContext(ctx).
		Scopes(byStatus).
		Scopes(
			database.OrderAsc(column, "tasks.created_at", "tasks.id"),
			database.Paginate(filter.Pagination),
		).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update applies the patch inside a transaction and returns the fresh row
func (r *GormTaskRepository) Update(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}

		if patch.Empty() {
			return nil
		}

		updates := map[string]interface{}{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}

		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Delete removes a task; unknown ids yield gorm.ErrRecordNotFound
func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
