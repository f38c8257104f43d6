package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/events"
)

// TaskRequestHandler turns TaskRequestEvents into queued tasks. It rebuilds
// the executable task through the same registry the runner uses for
// recovery, so event-driven and recovered tasks share one construction path.
type TaskRequestHandler struct {
	runner   *TaskRunner
	registry *Registry
	logger   *slog.Logger
}

// Ensure TaskRequestHandler implements events.EventHandler
var _ events.EventHandler = (*TaskRequestHandler)(nil)

// NewTaskRequestHandler creates a handler that submits requested tasks to
// the given runner.
func NewTaskRequestHandler(runner *TaskRunner, registry *Registry, logger *slog.Logger) *TaskRequestHandler {
	return &TaskRequestHandler{
		runner:   runner,
		registry: registry,
		logger:   logger.With("component", "task_request_handler"),
	}
}

// HandleEvent implements events.EventHandler.
func (h *TaskRequestHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	t, err := h.registry.Rebuild(&Record{
		ID:      event.ID,
		Type:    event.Type,
		Payload: event.Payload,
		Status:  TaskStatusPending,
	})
	if err != nil {
		return fmt.Errorf("failed to build task from event: %w", err)
	}

	if err := h.runner.Submit(ctx, t); err != nil {
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("task submitted from event",
		"event_id", event.ID,
		"task_type", event.Type)

	return nil
}
