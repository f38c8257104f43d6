package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// StuckTaskAge defines how long a task can be in processing state
	// before it's considered stuck and reset
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval defines how often to check for stuck tasks
	// If zero, defaults to 5 minutes
	StuckTaskCheckInterval time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// TaskRunner manages background task processing. On startup it recovers
// unfinished tasks from the store, rebuilding them through the registry so
// that an import or generation interrupted by a restart still completes.
type TaskRunner struct {
	store      TaskStore
	registry   *Registry
	queue      *TaskQueue
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewTaskRunner creates a new TaskRunner. The registry must have a factory
// registered for every task type that can appear in the store.
func NewTaskRunner(
	store TaskStore,
	registry *Registry,
	config TaskRunnerConfig,
	logger *slog.Logger,
) *TaskRunner {
	if config.StuckTaskCheckInterval == 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		store:      store,
		registry:   registry,
		queue:      NewTaskQueue(config.QueueSize, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
		errHandler: func(task Task, err error) {
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit adds a new task to the queue
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	// Save task to database first
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// Start initializes the worker pool and begins processing tasks
func (r *TaskRunner) Start() error {
	if err := r.Recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.stuckTaskMonitor()

	return nil
}

// Stop gracefully shuts down the task runner
func (r *TaskRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	r.queue.Close()
}

// Recover loads unfinished tasks from the database, rebuilds them through
// the registry, and requeues them. Tasks left in "processing" state by a
// crash are reset to "pending" first. Records with an unknown type are
// marked failed rather than requeued forever.
func (r *TaskRunner) Recover() error {
	ctx := context.Background()

	pending, err := r.store.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	processing, err := r.store.ListProcessing(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	r.logger.Info("recovering unfinished tasks",
		"pending_count", len(pending),
		"processing_count", len(processing))

	for _, record := range processing {
		if err := r.store.UpdateTaskStatus(ctx, record.ID, TaskStatusPending, "reset after recovery"); err != nil {
			r.logger.Error("failed to reset processing task status",
				"task_id", record.ID,
				"task_type", record.Type,
				"error", err)
			continue
		}
		pending = append(pending, record)
	}

	for _, record := range pending {
		task, err := r.registry.Rebuild(record)
		if err != nil {
			r.logger.Error("failed to rebuild recovered task",
				"task_id", record.ID,
				"task_type", record.Type,
				"error", err)
			if updateErr := r.store.UpdateTaskStatus(ctx, record.ID, TaskStatusFailed, err.Error()); updateErr != nil {
				r.logger.Error("failed to mark unrecoverable task as failed",
					"task_id", record.ID,
					"error", updateErr)
			}
			continue
		}

		if err := r.queue.Enqueue(task); err != nil {
			r.logger.Error("failed to requeue recovered task",
				"task_id", record.ID,
				"task_type", record.Type,
				"error", err)
		}
	}

	return nil
}

// worker consumes tasks from the queue until the channel closes or the
// runner shuts down.
func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-r.queue.GetChannel():
			if !ok {
				r.logger.Debug("task queue closed, stopping worker", "worker_id", id)
				return
			}
			r.processTask(task, id)
		}
	}
}

// processTask handles execution of a single task
func (r *TaskRunner) processTask(task Task, workerID int) {
	ctx := context.Background()
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	// A panicking task must not take the worker down with it.
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("task panicked", "panic", rec)
			msg := fmt.Sprintf("task panicked: %v", rec)
			if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, msg); updateErr != nil {
				logger.Error("failed to update task status to failed", "error", updateErr)
			}
		}
	}()

	if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusProcessing, ""); err != nil {
		logger.Error("failed to update task status to processing", "error", err)
		return
	}

	logger.Info("processing task")

	if err := task.Execute(ctx); err != nil {
		logger.Error("task execution failed", "error", err)
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			logger.Error("failed to update task status to failed", "error", updateErr)
		}
		r.errHandler(task, err)
		return
	}

	logger.Info("task completed successfully")
	if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusCompleted, ""); err != nil {
		logger.Error("failed to update task status to completed", "error", err)
	}
}

// stuckTaskMonitor periodically checks for tasks that have been in
// "processing" state for too long, resets and requeues them.
func (r *TaskRunner) stuckTaskMonitor() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-ticker.C:
			ctx := context.Background()

			stuck, err := r.store.ListProcessing(ctx, r.config.StuckTaskAge)
			if err != nil {
				r.logger.Error("failed to check for stuck tasks", "error", err)
				continue
			}
			if len(stuck) == 0 {
				continue
			}

			r.logger.Info("found stuck tasks", "count", len(stuck))

			for _, record := range stuck {
				if err := r.store.UpdateTaskStatus(ctx, record.ID, TaskStatusPending,
					"reset after being stuck in processing state"); err != nil {
					r.logger.Error("failed to reset stuck task status",
						"task_id", record.ID,
						"task_type", record.Type,
						"error", err)
					continue
				}

				task, err := r.registry.Rebuild(record)
				if err != nil {
					r.logger.Error("failed to rebuild stuck task",
						"task_id", record.ID,
						"task_type", record.Type,
						"error", err)
					continue
				}

				if err := r.queue.Enqueue(task); err != nil {
					r.logger.Error("failed to requeue stuck task",
						"task_id", record.ID,
						"task_type", record.Type,
						"error", err)
					continue
				}
				r.logger.Info("requeued stuck task",
					"task_id", record.ID,
					"task_type", record.Type)
			}
		}
	}
}
