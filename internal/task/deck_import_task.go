package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/deck"
	"github.com/google/uuid"
)

// DeckImporter is the slice of the deck service a deck import task needs.
type DeckImporter interface {
	ImportFile(ctx context.Context, userID uuid.UUID, path string) (*deck.ImportResult, error)
}

// DeckImportPayload is the serialized form of a deck import request.
type DeckImportPayload struct {
	UserID     uuid.UUID `json:"user_id"`
	SourcePath string    `json:"source_path"`
}

// Validate checks the payload for required fields.
func (p *DeckImportPayload) Validate() error {
	if p.UserID == uuid.Nil {
		return errors.New("user_id cannot be empty")
	}
	if p.SourcePath == "" {
		return errors.New("source_path cannot be empty")
	}
	return nil
}

// DeckImportTask imports a deck Markdown file for a user in the background.
type DeckImportTask struct {
	id       uuid.UUID
	payload  []byte
	parsed   DeckImportPayload
	importer DeckImporter
	logger   *slog.Logger
	status   TaskStatus
}

// Ensure DeckImportTask implements the Task interface
var _ Task = (*DeckImportTask)(nil)

// NewDeckImportTask creates a deck import task with a fresh ID.
func NewDeckImportTask(importer DeckImporter, payload DeckImportPayload, log *slog.Logger) (*DeckImportTask, error) {
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck import payload: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &DeckImportTask{
		id:       uuid.New(),
		payload:  data,
		parsed:   payload,
		importer: importer,
		logger:   log.With("task_type", TaskTypeDeckImport),
		status:   TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *DeckImportTask) ID() uuid.UUID { return t.id }

// Type returns the task type identifier
func (t *DeckImportTask) Type() string { return TaskTypeDeckImport }

// Payload returns the serialized task parameters
func (t *DeckImportTask) Payload() []byte { return t.payload }

// Status returns the task's current status
func (t *DeckImportTask) Status() TaskStatus { return t.status }

// Execute imports the deck file named in the payload.
func (t *DeckImportTask) Execute(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, t.logger).With(
		"task_id", t.id,
		"user_id", t.parsed.UserID,
		"source_path", t.parsed.SourcePath,
	)

	result, err := t.importer.ImportFile(ctx, t.parsed.UserID, t.parsed.SourcePath)
	if err != nil {
		if errors.Is(err, deck.ErrDeckExists) {
			// Requeued or duplicate requests are not failures worth retrying.
			log.Info("deck already imported, skipping")
			return nil
		}
		return fmt.Errorf("failed to import deck: %w", err)
	}

	log.Info("deck import task completed",
		"deck_id", result.Deck.ID,
		"card_count", result.CardCount)

	return nil
}

// DeckImportFactory rebuilds deck import tasks from stored records.
type DeckImportFactory struct {
	importer DeckImporter
	logger   *slog.Logger
}

// NewDeckImportFactory creates a factory for deck import tasks.
func NewDeckImportFactory(importer DeckImporter, log *slog.Logger) *DeckImportFactory {
	return &DeckImportFactory{
		importer: importer,
		logger:   log,
	}
}

// Rebuild implements Factory. The rebuilt task keeps the record's ID so
// status updates written during execution land on the original row.
func (f *DeckImportFactory) Rebuild(record *Record) (Task, error) {
	var payload DeckImportPayload
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deck import payload: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck import payload: %w", err)
	}

	return &DeckImportTask{
		id:       record.ID,
		payload:  record.Payload,
		parsed:   payload,
		importer: f.importer,
		logger:   f.logger.With("task_type", TaskTypeDeckImport),
		status:   record.Status,
	}, nil
}
