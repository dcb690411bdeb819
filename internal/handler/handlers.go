package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/todoflow-labs/todo-api/internal/dto"
	"github.com/todoflow-labs/todo-api/internal/events"
	"github.com/todoflow-labs/todo-api/internal/logging"
	"github.com/todoflow-labs/todo-api/internal/metrics"
	"github.com/todoflow-labs/todo-api/internal/service"
)

const todoItemsPath = "/todoitems"

// Location returns the get-by-id path for a todo item.
func Location(id int) string {
	return fmt.Sprintf("%s/%d", todoItemsPath, id)
}

func ListTodoItems(svc service.TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debug().Msg("handling list todo items")

		items, err := svc.GetTodoItems(r.Context())
		if err != nil {
			logger.Error().Err(err).Msg("failed to list todo items")
			WriteError(w, http.StatusInternalServerError, "failed to list todo items")
			metrics.TodoOperationCounter.WithLabelValues("list", metrics.ResultError).Inc()
			return
		}

		metrics.TodoOperationCounter.WithLabelValues("list", metrics.ResultSuccess).Inc()
		writeJSON(w, http.StatusOK, dto.FromModels(items))
	}
}

func GetTodoItem(svc service.TodoService, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "invalid id")
			metrics.TodoOperationCounter.WithLabelValues("get", metrics.ResultInvalid).Inc()
			return
		}
		logger.Debug().Int("id", id).Msg("handling get todo item")

		item, found, err := svc.GetTodoItem(r.Context(), id)
		if err != nil {
			logger.Error().Err(err).Int("id", id).Msg("failed to get todo item")
			WriteError(w, http.StatusInternalServerError, "failed to get todo item")
			metrics.TodoOperationCounter.WithLabelValues("get", metrics.ResultError).Inc()
			return
		}
		if !found {
			WriteError(w, http.StatusNotFound, "todo item not found")
			metrics.TodoOperationCounter.WithLabelValues("get", metrics.ResultNotFound).Inc()
			return
		}

		metrics.TodoOperationCounter.WithLabelValues("get", metrics.ResultSuccess).Inc()
		writeJSON(w, http.StatusOK, dto.FromModel(item))
	}
}

func CreateTodoItem(svc service.TodoService, pub events.Publisher, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debug().Msg("handling create todo item")

		var body *dto.TodoItem
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.Error().Err(err).Msg("invalid create payload")
			WriteError(w, http.StatusBadRequest, "invalid payload")
			metrics.TodoOperationCounter.WithLabelValues("create", metrics.ResultInvalid).Inc()
			return
		}
		if body == nil {
			logger.Error().Msg("create payload is null")
			WriteError(w, http.StatusInternalServerError, "todo item is required")
			metrics.TodoOperationCounter.WithLabelValues("create", metrics.ResultError).Inc()
			return
		}
		if err := body.Validate(); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			metrics.TodoOperationCounter.WithLabelValues("create", metrics.ResultInvalid).Inc()
			return
		}

		item := body.ToModel()
		if err := svc.AddTodoItem(r.Context(), &item); err != nil {
			logger.Error().Err(err).Msg("failed to add todo item")
			WriteError(w, http.StatusInternalServerError, "failed to add todo item")
			metrics.TodoOperationCounter.WithLabelValues("create", metrics.ResultError).Inc()
			return
		}

		publish(r.Context(), pub, logger, events.NewEvent(events.TodoItemCreated, item))
		logger.Debug().Int("id", item.ID).Msg("todo item created")
		metrics.TodoOperationCounter.WithLabelValues("create", metrics.ResultSuccess).Inc()

		w.Header().Set("Location", Location(item.ID))
		writeJSON(w, http.StatusCreated, dto.FromModel(item))
	}
}

func UpdateTodoItem(svc service.TodoService, pub events.Publisher, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "invalid id")
			metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultInvalid).Inc()
			return
		}
		logger.Debug().Int("id", id).Msg("handling update todo item")

		var body *dto.TodoItem
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.Error().Err(err).Msg("invalid update payload")
			WriteError(w, http.StatusBadRequest, "invalid payload")
			metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultInvalid).Inc()
			return
		}
		if body == nil {
			logger.Error().Int("id", id).Msg("update payload is null")
			WriteError(w, http.StatusInternalServerError, "todo item is required")
			metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultError).Inc()
			return
		}
		if err := body.Validate(); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultInvalid).Inc()
			return
		}
		if body.ID != id {
			WriteError(w, http.StatusBadRequest, "id in path does not match payload")
			metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultInvalid).Inc()
			return
		}

		exists, err := svc.TodoItemExists(r.Context(), id)
		if err != nil {
			logger.Error().Err(err).Int("id", id).Msg("failed to check todo item")
			WriteError(w, http.StatusInternalServerError, "failed to update todo item")
			metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultError).Inc()
			return
		}
		if !exists {
			WriteError(w, http.StatusNotFound, "todo item not found")
			metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultNotFound).Inc()
			return
		}

		item := body.ToModel()
		if err := svc.UpdateTodoItem(r.Context(), &item); err != nil {
			logger.Error().Err(err).Int("id", id).Msg("failed to update todo item")
			WriteError(w, http.StatusInternalServerError, "failed to update todo item")
			metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultError).Inc()
			return
		}

		publish(r.Context(), pub, logger, events.NewEvent(events.TodoItemUpdated, item))
		metrics.TodoOperationCounter.WithLabelValues("update", metrics.ResultSuccess).Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteTodoItem(svc service.TodoService, pub events.Publisher, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "invalid id")
			metrics.TodoOperationCounter.WithLabelValues("delete", metrics.ResultInvalid).Inc()
			return
		}
		logger.Debug().Int("id", id).Msg("handling delete todo item")

		item, found, err := svc.GetTodoItem(r.Context(), id)
		if err != nil {
			logger.Error().Err(err).Int("id", id).Msg("failed to get todo item")
			WriteError(w, http.StatusInternalServerError, "failed to delete todo item")
			metrics.TodoOperationCounter.WithLabelValues("delete", metrics.ResultError).Inc()
			return
		}
		if !found {
			WriteError(w, http.StatusNotFound, "todo item not found")
			metrics.TodoOperationCounter.WithLabelValues("delete", metrics.ResultNotFound).Inc()
			return
		}

		if err := svc.DeleteTodoItem(r.Context(), id); err != nil {
			logger.Error().Err(err).Int("id", id).Msg("failed to delete todo item")
			WriteError(w, http.StatusInternalServerError, "failed to delete todo item")
			metrics.TodoOperationCounter.WithLabelValues("delete", metrics.ResultError).Inc()
			return
		}

		publish(r.Context(), pub, logger, events.NewEvent(events.TodoItemDeleted, item))
		metrics.TodoOperationCounter.WithLabelValues("delete", metrics.ResultSuccess).Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

// publish hands ev to the broker. The change is already committed, so a
// failure is logged and the request still succeeds.
func publish(ctx context.Context, pub events.Publisher, logger *logging.Logger, ev events.Event) {
	if err := pub.Publish(ctx, ev); err != nil {
		logger.Error().Err(err).Str("type", ev.Type).Int("id", ev.TodoItemID).Msg("failed to publish todo event")
	}
}
