package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeDeckImport represents the task type for importing a deck
	// from a markdown source file.
	TaskTypeDeckImport = "deck_import"

	// TaskTypeCardGeneration represents the task type for generating
	// flashcards for a deck with the configured language model.
	TaskTypeCardGeneration = "card_generation"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// Record is a persisted task row as loaded from storage. It carries no
// execution logic; a Factory rebuilds an executable Task from it during
// recovery.
type Record struct {
	ID           uuid.UUID
	Type         string
	Payload      []byte
	Status       TaskStatus
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskStore defines the interface for persisting tasks
type TaskStore interface {
	// SaveTask persists a task to the database
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus updates the status of a task
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// ListPending retrieves all tasks with "pending" status
	ListPending(ctx context.Context) ([]*Record, error)

	// ListProcessing retrieves tasks with "processing" status.
	// If olderThan is non-zero, only returns tasks that have been in this
	// state longer than the specified duration.
	ListProcessing(ctx context.Context, olderThan time.Duration) ([]*Record, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}

// Factory rebuilds an executable task of one specific type from its
// persisted record.
type Factory interface {
	// Rebuild reconstructs a Task from a stored record. The record's
	// payload holds whatever the original task serialized at submit time.
	Rebuild(record *Record) (Task, error)
}

// ErrUnknownTaskType is returned by the Registry when no factory is
// registered for a record's task type.
var ErrUnknownTaskType = errors.New("unknown task type")

// Registry maps task types to the factories that can rebuild them. It is
// safe for concurrent use, though in practice all registration happens at
// startup before the runner recovers anything.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty task factory registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register associates a factory with a task type, replacing any previous
// registration for that type.
func (r *Registry) Register(taskType string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[taskType] = factory
}

// Rebuild dispatches to the factory registered for the record's type.
func (r *Registry) Rebuild(record *Record) (Task, error) {
	r.mu.RLock()
	factory, ok := r.factories[record.Type]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskType, record.Type)
	}

	return factory.Rebuild(record)
}
