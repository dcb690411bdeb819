package service

import (
	"context"

	"github.com/todoflow-labs/todo-api/internal/logging"
	"github.com/todoflow-labs/todo-api/internal/model"
	"github.com/todoflow-labs/todo-api/internal/repository"
)

// TodoService decides whether a todo operation makes sense before it
// reaches the repository.
type TodoService interface {
	GetTodoItems(ctx context.Context) ([]model.TodoItem, error)
	GetTodoItem(ctx context.Context, id int) (model.TodoItem, bool, error)
	AddTodoItem(ctx context.Context, item *model.TodoItem) error
	UpdateTodoItem(ctx context.Context, item *model.TodoItem) error
	DeleteTodoItem(ctx context.Context, id int) error
	TodoItemExists(ctx context.Context, id int) (bool, error)
}

type todoService struct {
	repo   repository.TodoRepository
	logger *logging.Logger
}

func NewTodoService(repo repository.TodoRepository, logger *logging.Logger) TodoService {
	return &todoService{repo: repo, logger: logger}
}

func (s *todoService) GetTodoItems(ctx context.Context) ([]model.TodoItem, error) {
	return s.repo.GetTodoItems(ctx)
}

func (s *todoService) GetTodoItem(ctx context.Context, id int) (model.TodoItem, bool, error) {
	return s.repo.GetTodoItem(ctx, id)
}

// AddTodoItem ignores a nil item; callers validate input first.
func (s *todoService) AddTodoItem(ctx context.Context, item *model.TodoItem) error {
	if item == nil {
		s.logger.Debug().Msg("ignoring add of nil todo item")
		return nil
	}
	return s.repo.AddTodoItem(ctx, item)
}

// UpdateTodoItem ignores a nil item; callers validate input first.
func (s *todoService) UpdateTodoItem(ctx context.Context, item *model.TodoItem) error {
	if item == nil {
		s.logger.Debug().Msg("ignoring update of nil todo item")
		return nil
	}
	return s.repo.UpdateTodoItem(ctx, item)
}

// DeleteTodoItem deletes id only when a fetch finds it.
func (s *todoService) DeleteTodoItem(ctx context.Context, id int) error {
	_, found, err := s.repo.GetTodoItem(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Debug().Int("id", id).Msg("todo item not found, nothing to delete")
		return nil
	}
	return s.repo.DeleteTodoItem(ctx, id)
}

func (s *todoService) TodoItemExists(ctx context.Context, id int) (bool, error) {
	return s.repo.TodoItemExists(ctx, id)
}
