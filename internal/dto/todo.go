// internal/dto/todo.go
package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/todoflow-labs/todo-api/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// TodoItem is the request and response body for /todoitems.
type TodoItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// Validate checks required fields and returns one message per failed field.
func (t TodoItem) Validate() error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (t TodoItem) ToModel() model.TodoItem {
	return model.TodoItem{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
	}
}

func FromModel(m model.TodoItem) TodoItem {
	return TodoItem{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
	}
}

func FromModels(ms []model.TodoItem) []TodoItem {
	out := make([]TodoItem, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}
