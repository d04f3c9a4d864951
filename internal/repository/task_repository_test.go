package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/testutil"
	"github.com/yukikurage/todo-api/internal/utils"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo TaskRepository
	ctx  context.Context
	base time.Time
	seq  int
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

func (s *TaskRepositoryTestSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.repo = NewTaskRepository(s.db)
	s.ctx = context.Background()
	s.base = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.seq = 0
}

// createTask inserts a task with a strictly increasing created_at
func (s *TaskRepositoryTestSuite) createTask(title string, status models.TaskStatus) *models.Task {
	s.seq++
	task := &models.Task{
		Title:     title,
		Status:    status,
		CreatedAt: s.base.Add(time.Duration(s.seq) * time.Minute),
	}
	s.Require().NoError(s.repo.Create(s.ctx, task))
	return task
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func (s *TaskRepositoryTestSuite) TestCreate_AssignsIDAndDefaults() {
	task := &models.Task{Title: "Buy milk"}
	s.Require().NoError(s.repo.Create(s.ctx, task))

	s.NotEmpty(task.ID)
	s.Equal(models.TaskStatusPending, task.Status)
	s.False(task.CreatedAt.IsZero())

	stored, err := s.repo.FindByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal("Buy milk", stored.Title)
	s.Equal(models.TaskStatusPending, stored.Status)
}

func (s *TaskRepositoryTestSuite) TestList_FilterSortPaginate() {
	for _, title := range []string{"e", "c", "a", "d", "b"} {
		s.createTask(title, models.TaskStatusCompleted)
	}
	for _, title := range []string{"aa", "bb", "cc"} {
		s.createTask(title, models.TaskStatusPending)
	}

	status := models.TaskStatusCompleted
	tasks, total, err := s.repo.List(s.ctx, TaskFilter{
		Status:     &status,
		SortBy:     SortByTitle,
		Pagination: utils.NewPaginationParams(1, 2),
	})
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Equal([]string{"a", "b"}, titles(tasks))

	tasks, total, err = s.repo.List(s.ctx, TaskFilter{
		Status:     &status,
		SortBy:     SortByTitle,
		Pagination: utils.NewPaginationParams(3, 2),
	})
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Equal([]string{"e"}, titles(tasks))
}

func (s *TaskRepositoryTestSuite) TestList_NoFilterCountsEverything() {
	s.createTask("one", models.TaskStatusPending)
	s.createTask("two", models.TaskStatusInProgress)
	s.createTask("three", models.TaskStatusCompleted)

	tasks, total, err := s.repo.List(s.ctx, TaskFilter{
		SortBy:     SortByCreatedAt,
		Pagination: utils.NewPaginationParams(1, 10),
	})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Equal([]string{"one", "two", "three"}, titles(tasks))
}

func (s *TaskRepositoryTestSuite) TestList_PageBeyondEnd() {
	for i := 0; i < 5; i++ {
		s.createTask(fmt.Sprintf("task %d", i), models.TaskStatusPending)
	}

	tasks, total, err := s.repo.List(s.ctx, TaskFilter{
		SortBy:     SortByTitle,
		Pagination: utils.NewPaginationParams(3, 5),
	})
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.NotNil(tasks)
	s.Empty(tasks)
}

func (s *TaskRepositoryTestSuite) TestList_TiesKeepInsertionOrder() {
	s.createTask("first", models.TaskStatusPending)
	s.createTask("second", models.TaskStatusPending)
	s.createTask("third", models.TaskStatusPending)
	s.createTask("done", models.TaskStatusCompleted)

	tasks, _, err := s.repo.List(s.ctx, TaskFilter{
		SortBy:     SortByStatus,
		Pagination: utils.NewPaginationParams(1, 10),
	})
	s.Require().NoError(err)
	s.Equal([]string{"done", "first", "second", "third"}, titles(tasks))
}

func (s *TaskRepositoryTestSuite) TestList_UnknownStatusMatchesNothing() {
	s.createTask("one", models.TaskStatusPending)

	status := models.TaskStatus("archived")
	tasks, total, err := s.repo.List(s.ctx, TaskFilter{
		Status:     &status,
		SortBy:     SortByTitle,
		Pagination: utils.NewPaginationParams(1, 5),
	})
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(tasks)
}

func (s *TaskRepositoryTestSuite) TestList_RejectsUnknownSortField() {
	_, _, err := s.repo.List(s.ctx, TaskFilter{
		SortBy:     TaskSortField("title; DROP TABLE tasks"),
		Pagination: utils.NewPaginationParams(1, 5),
	})
	s.Error(err)
}

func (s *TaskRepositoryTestSuite) TestUpdate_OnlyTouchesSuppliedFields() {
	task := s.createTask("Write report", models.TaskStatusPending)
	s.Require().NoError(s.db.Model(task).Update("description", "quarterly").Error)

	status := models.TaskStatusCompleted
	updated, err := s.repo.Update(s.ctx, task.ID, TaskPatch{Status: &status})
	s.Require().NoError(err)

	s.Equal(models.TaskStatusCompleted, updated.Status)
	s.Equal("Write report", updated.Title)
	s.Equal("quarterly", updated.Description)
	s.True(task.CreatedAt.Equal(updated.CreatedAt))
}

func (s *TaskRepositoryTestSuite) TestUpdate_EmptyDescriptionClears() {
	task := s.createTask("Write report", models.TaskStatusPending)
	s.Require().NoError(s.db.Model(task).Update("description", "quarterly").Error)

	empty := ""
	updated, err := s.repo.Update(s.ctx, task.ID, TaskPatch{Description: &empty})
	s.Require().NoError(err)
	s.Equal("", updated.Description)
	s.Equal("Write report", updated.Title)
}

func (s *TaskRepositoryTestSuite) TestUpdate_EmptyPatchReturnsCurrent() {
	task := s.createTask("Unchanged", models.TaskStatusInProgress)

	updated, err := s.repo.Update(s.ctx, task.ID, TaskPatch{})
	s.Require().NoError(err)
	s.Equal("Unchanged", updated.Title)
	s.Equal(models.TaskStatusInProgress, updated.Status)
}

func (s *TaskRepositoryTestSuite) TestUpdate_NotFound() {
	title := "x"
	_, err := s.repo.Update(s.ctx, "00000000-0000-0000-0000-000000000000", TaskPatch{Title: &title})
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *TaskRepositoryTestSuite) TestDelete() {
	task := s.createTask("Temp", models.TaskStatusPending)

	s.Require().NoError(s.repo.Delete(s.ctx, task.ID))

	_, err := s.repo.FindByID(s.ctx, task.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	s.ErrorIs(s.repo.Delete(s.ctx, task.ID), gorm.ErrRecordNotFound)
}
