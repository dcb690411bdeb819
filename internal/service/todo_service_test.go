package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/todoflow-labs/todo-api/internal/logging"
	"github.com/todoflow-labs/todo-api/internal/model"
	"github.com/todoflow-labs/todo-api/internal/service"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetTodoItems(ctx context.Context) ([]model.TodoItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.TodoItem)
	return items, args.Error(1)
}

func (m *mockRepository) GetTodoItem(ctx context.Context, id int) (model.TodoItem, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.TodoItem), args.Bool(1), args.Error(2)
}

func (m *mockRepository) AddTodoItem(ctx context.Context, item *model.TodoItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockRepository) UpdateTodoItem(ctx context.Context, item *model.TodoItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockRepository) DeleteTodoItem(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) TodoItemExists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func setup() (*mockRepository, service.TodoService) {
	repo := &mockRepository{}
	return repo, service.NewTodoService(repo, logging.Nop())
}

var ctx = context.Background()

func TestGetTodoItems(t *testing.T) {
	repo, svc := setup()
	items := []model.TodoItem{{ID: 1, Title: "Task1", Description: "Description1"}}
	repo.On("GetTodoItems", ctx).Return(items, nil)

	got, err := svc.GetTodoItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestGetTodoItemExisting(t *testing.T) {
	repo, svc := setup()
	item := model.TodoItem{ID: 1, Title: "Task1", Description: "Description1"}
	repo.On("GetTodoItem", ctx, 1).Return(item, true, nil)

	got, found, err := svc.GetTodoItem(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, item, got)
}

func TestGetTodoItemMissing(t *testing.T) {
	repo, svc := setup()
	repo.On("GetTodoItem", ctx, 1).Return(model.TodoItem{}, false, nil)

	_, found, err := svc.GetTodoItem(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAddTodoItem(t *testing.T) {
	repo, svc := setup()
	item := &model.TodoItem{ID: 1, Title: "Task1", Description: "Description1"}
	repo.On("AddTodoItem", ctx, item).Return(nil)

	require.NoError(t, svc.AddTodoItem(ctx, item))
	repo.AssertNumberOfCalls(t, "AddTodoItem", 1)
}

func TestAddTodoItemNil(t *testing.T) {
	repo, svc := setup()

	require.NoError(t, svc.AddTodoItem(ctx, nil))
	repo.AssertNotCalled(t, "AddTodoItem", mock.Anything, mock.Anything)
}

func TestUpdateTodoItem(t *testing.T) {
	repo, svc := setup()
	item := &model.TodoItem{ID: 1, Title: "Task1", Description: "Description1"}
	repo.On("UpdateTodoItem", ctx, item).Return(nil)

	require.NoError(t, svc.UpdateTodoItem(ctx, item))
	repo.AssertNumberOfCalls(t, "UpdateTodoItem", 1)
}

func TestUpdateTodoItemNil(t *testing.T) {
	repo, svc := setup()

	require.NoError(t, svc.UpdateTodoItem(ctx, nil))
	repo.AssertNotCalled(t, "UpdateTodoItem", mock.Anything, mock.Anything)
}

func TestUpdateTodoItemPropagatesStoreError(t *testing.T) {
	repo, svc := setup()
	item := &model.TodoItem{ID: 1, Title: "Task1"}
	storeErr := errors.New("no rows")
	repo.On("UpdateTodoItem", ctx, item).Return(storeErr)

	assert.ErrorIs(t, svc.UpdateTodoItem(ctx, item), storeErr)
}

func TestDeleteTodoItemExisting(t *testing.T) {
	repo, svc := setup()
	repo.On("GetTodoItem", ctx, 1).Return(model.TodoItem{ID: 1}, true, nil)
	repo.On("DeleteTodoItem", ctx, 1).Return(nil)

	require.NoError(t, svc.DeleteTodoItem(ctx, 1))
	repo.AssertCalled(t, "DeleteTodoItem", ctx, 1)
	repo.AssertNumberOfCalls(t, "DeleteTodoItem", 1)
}

func TestDeleteTodoItemMissing(t *testing.T) {
	repo, svc := setup()
	repo.On("GetTodoItem", ctx, 999).Return(model.TodoItem{}, false, nil)

	assert.NoError(t, svc.DeleteTodoItem(ctx, 999))
	repo.AssertNotCalled(t, "DeleteTodoItem", mock.Anything, 999)
}

func TestDeleteTodoItemLookupError(t *testing.T) {
	repo, svc := setup()
	lookupErr := errors.New("connection reset")
	repo.On("GetTodoItem", ctx, 5).Return(model.TodoItem{}, false, lookupErr)

	assert.ErrorIs(t, svc.DeleteTodoItem(ctx, 5), lookupErr)
	repo.AssertNotCalled(t, "DeleteTodoItem", mock.Anything, mock.Anything)
}

func TestTodoItemExists(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{name: "existing id", exists: true},
		{name: "missing id", exists: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := setup()
			repo.On("TodoItemExists", ctx, 1).Return(tt.exists, nil)

			got, err := svc.TodoItemExists(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)
		})
	}
}
