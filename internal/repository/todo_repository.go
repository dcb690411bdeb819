package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/todoflow-labs/todo-api/internal/model"
)

var (
	// ErrNilTodoItem is returned when a write is attempted with no item.
	ErrNilTodoItem = errors.New("todo item must not be nil")
	// ErrUpdateConflict is returned when an update matched no stored row.
	ErrUpdateConflict = errors.New("todo item update affected no rows")
)

// TodoRepository translates todo item operations into store calls. It holds
// no business rules.
type TodoRepository interface {
	GetTodoItems(ctx context.Context) ([]model.TodoItem, error)
	// GetTodoItem reports found=false, with a nil error, when id is absent.
	GetTodoItem(ctx context.Context, id int) (item model.TodoItem, found bool, err error)
	AddTodoItem(ctx context.Context, item *model.TodoItem) error
	UpdateTodoItem(ctx context.Context, item *model.TodoItem) error
	DeleteTodoItem(ctx context.Context, id int) error
	TodoItemExists(ctx context.Context, id int) (bool, error)
}

type gormTodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) GetTodoItems(ctx context.Context) ([]model.TodoItem, error) {
	items := make([]model.TodoItem, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list todo items: %w", err)
	}
	return items, nil
}

func (r *gormTodoRepository) GetTodoItem(ctx context.Context, id int) (model.TodoItem, bool, error) {
	var item model.TodoItem
	res := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&item)
	if res.Error != nil {
		return model.TodoItem{}, false, fmt.Errorf("get todo item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return model.TodoItem{}, false, nil
	}
	return item, true, nil
}

// AddTodoItem inserts item and writes the store-assigned ID back into it.
func (r *gormTodoRepository) AddTodoItem(ctx context.Context, item *model.TodoItem) error {
	if item == nil {
		return ErrNilTodoItem
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("add todo item: %w", err)
	}
	return nil
}

func (r *gormTodoRepository) UpdateTodoItem(ctx context.Context, item *model.TodoItem) error {
	if item == nil {
		return ErrNilTodoItem
	}
	res := r.db.WithContext(ctx).
		Model(&model.TodoItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"title":       item.Title,
			"description": item.Description,
		})
	if res.Error != nil {
		return fmt.Errorf("update todo item %d: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update todo item %d: %w", item.ID, ErrUpdateConflict)
	}
	return nil
}

func (r *gormTodoRepository) DeleteTodoItem(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Delete(&model.TodoItem{}, id).Error; err != nil {
		return fmt.Errorf("delete todo item %d: %w", id, err)
	}
	return nil
}

func (r *gormTodoRepository) TodoItemExists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TodoItem{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check todo item %d: %w", id, err)
	}
	return count > 0, nil
}
