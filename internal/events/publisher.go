package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/todoflow-labs/todo-api/internal/metrics"
	"github.com/todoflow-labs/todo-api/internal/model"
)

const (
	TodoItemCreated = "todo_item.created"
	TodoItemUpdated = "todo_item.updated"
	TodoItemDeleted = "todo_item.deleted"
)

// Event describes a committed change to a todo item.
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	TodoItemID  int       `json:"todo_item_id"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewEvent(typ string, item model.TodoItem) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        typ,
		TodoItemID:  item.ID,
		Title:       item.Title,
		Description: item.Description,
		OccurredAt:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

type JetStreamPublisher struct {
	js      nats.JetStreamContext
	subject string
}

func NewJetStreamPublisher(js nats.JetStreamContext, subject string) *JetStreamPublisher {
	return &JetStreamPublisher{js: js, subject: subject}
}

func (p *JetStreamPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	if _, err := p.js.Publish(p.subject, data, nats.Context(ctx), nats.MsgId(ev.ID)); err != nil {
		metrics.EventPublishCounter.WithLabelValues(ev.Type, metrics.ResultError).Inc()
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}
	metrics.EventPublishCounter.WithLabelValues(ev.Type, metrics.ResultSuccess).Inc()
	return nil
}

// EnsureStream creates the stream capturing subject unless it already exists.
func EnsureStream(js nats.JetStreamContext, name, subject string) error {
	_, err := js.AddStream(&nats.StreamConfig{
		Name:     name,
		Subjects: []string{subject},
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		return fmt.Errorf("add stream %s: %w", name, err)
	}
	return nil
}
