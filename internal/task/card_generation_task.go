package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/generation"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/google/uuid"
)

// CardCreator is the slice of the deck service a card generation task needs
// to persist generated cards.
type CardCreator interface {
	AddCards(ctx context.Context, userID, deckID uuid.UUID, contents []domain.CardContent) ([]*domain.Card, error)
}

// CardGenerationPayload is the serialized form of a card generation request.
type CardGenerationPayload struct {
	UserID   uuid.UUID `json:"user_id"`
	DeckID   uuid.UUID `json:"deck_id"`
	NoteText string    `json:"note_text"`
}

// Validate checks the payload for required fields.
func (p *CardGenerationPayload) Validate() error {
	if p.UserID == uuid.Nil {
		return errors.New("user_id cannot be empty")
	}
	if p.DeckID == uuid.Nil {
		return errors.New("deck_id cannot be empty")
	}
	if p.NoteText == "" {
		return errors.New("note_text cannot be empty")
	}
	return nil
}

// CardGenerationTask drafts flashcards from note text with the configured
// generator and appends them to the target deck.
type CardGenerationTask struct {
	id        uuid.UUID
	payload   []byte
	parsed    CardGenerationPayload
	generator generation.Generator
	creator   CardCreator
	logger    *slog.Logger
	status    TaskStatus
}

// Ensure CardGenerationTask implements the Task interface
var _ Task = (*CardGenerationTask)(nil)

// NewCardGenerationTask creates a card generation task with a fresh ID.
func NewCardGenerationTask(
	generator generation.Generator,
	creator CardCreator,
	payload CardGenerationPayload,
	log *slog.Logger,
) (*CardGenerationTask, error) {
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("invalid card generation payload: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &CardGenerationTask{
		id:        uuid.New(),
		payload:   data,
		parsed:    payload,
		generator: generator,
		creator:   creator,
		logger:    log.With("task_type", TaskTypeCardGeneration),
		status:    TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *CardGenerationTask) ID() uuid.UUID { return t.id }

// Type returns the task type identifier
func (t *CardGenerationTask) Type() string { return TaskTypeCardGeneration }

// Payload returns the serialized task parameters
func (t *CardGenerationTask) Payload() []byte { return t.payload }

// Status returns the task's current status
func (t *CardGenerationTask) Status() TaskStatus { return t.status }

// Execute generates cards from the note text and saves them to the deck.
func (t *CardGenerationTask) Execute(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, t.logger).With(
		"task_id", t.id,
		"user_id", t.parsed.UserID,
		"deck_id", t.parsed.DeckID,
	)

	cards, err := t.generator.GenerateCards(ctx, t.parsed.NoteText, t.parsed.UserID, t.parsed.DeckID)
	if err != nil {
		return fmt.Errorf("failed to generate cards: %w", err)
	}
	if len(cards) == 0 {
		return fmt.Errorf("%w: generator returned no cards", generation.ErrInvalidResponse)
	}

	contents := make([]domain.CardContent, 0, len(cards))
	for _, card := range cards {
		var content domain.CardContent
		if err := json.Unmarshal(card.Content, &content); err != nil {
			return fmt.Errorf("failed to decode generated card content: %w", err)
		}
		contents = append(contents, content)
	}

	saved, err := t.creator.AddCards(ctx, t.parsed.UserID, t.parsed.DeckID, contents)
	if err != nil {
		return fmt.Errorf("failed to save generated cards: %w", err)
	}

	log.Info("card generation task completed", "card_count", len(saved))

	return nil
}

// CardGenerationFactory rebuilds card generation tasks from stored records.
type CardGenerationFactory struct {
	generator generation.Generator
	creator   CardCreator
	logger    *slog.Logger
}

// NewCardGenerationFactory creates a factory for card generation tasks.
func NewCardGenerationFactory(generator generation.Generator, creator CardCreator, log *slog.Logger) *CardGenerationFactory {
	return &CardGenerationFactory{
		generator: generator,
		creator:   creator,
		logger:    log,
	}
}

// Rebuild implements Factory, keeping the record's ID so status updates
// during execution land on the original row.
func (f *CardGenerationFactory) Rebuild(record *Record) (Task, error) {
	var payload CardGenerationPayload
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card generation payload: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("invalid card generation payload: %w", err)
	}

	return &CardGenerationTask{
		id:        record.ID,
		payload:   record.Payload,
		parsed:    payload,
		generator: f.generator,
		creator:   f.creator,
		logger:    f.logger.With("task_type", TaskTypeCardGeneration),
		status:    record.Status,
	}, nil
}
