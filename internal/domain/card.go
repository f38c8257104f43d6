package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	ErrCardIDEmpty         = errors.New("card ID cannot be empty")
	ErrCardUserIDEmpty     = errors.New("card user ID cannot be empty")
	ErrCardDeckIDEmpty     = errors.New("card deck ID cannot be empty")
	ErrCardContentEmpty    = errors.New("card content cannot be empty")
	ErrCardContentInvalid  = errors.New("card content must be valid JSON")
	ErrCardQuestionEmpty   = errors.New("card question cannot be empty")
	ErrCardAnswerEmpty     = errors.New("card answer cannot be empty")
	ErrInvalidDifficulty   = errors.New("card difficulty must be easy, medium, or hard")
	ErrFrequencyOutOfRange = errors.New("card frequency must be between 1 and 5")
)

// Difficulty is the fixed three-level difficulty scale of a flashcard.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Interview-frequency weight bounds. The weight is an ordinal from 1
// (rarely asked) to 5 (asked in almost every interview).
const (
	MinFrequency = 1
	MaxFrequency = 5
)

// Card represents a flashcard belonging to a deck. The content is stored as
// a JSONB structure so card formats can evolve without schema migrations.
// A card is authored once and read many times; the study flow never mutates
// content, only the explicit edit operation does.
type Card struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	DeckID    uuid.UUID       `json:"deck_id"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CardContent is the canonical structure of the content field: a question
// shown first, an answer revealed on flip, and the interview-prep metadata.
type CardContent struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags,omitempty"`
	Frequency  int        `json:"frequency"`
}

// Validate checks the content fields against the flashcard schema.
func (c *CardContent) Validate() error {
	if c.Question == "" {
		return ErrCardQuestionEmpty
	}
	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}
	switch c.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return ErrInvalidDifficulty
	}
	if c.Frequency < MinFrequency || c.Frequency > MaxFrequency {
		return ErrFrequencyOutOfRange
	}
	return nil
}

// ValidDifficulty reports whether d is one of the three difficulty levels.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// NewCard creates a new Card in the given deck from structured content.
// It generates a new UUID for the card ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewCard(userID, deckID uuid.UUID, content CardContent) (*Card, error) {
	if err := content.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return nil, ErrCardContentInvalid
	}

	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		UserID:    userID,
		DeckID:    deckID,
		Content:   raw,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if len(c.Content) == 0 {
		return ErrCardContentEmpty
	}

	var js json.RawMessage
	if err := json.Unmarshal(c.Content, &js); err != nil {
		return ErrCardContentInvalid
	}

	return nil
}

// DecodeContent unmarshals the card's JSONB content into a CardContent.
func (c *Card) DecodeContent() (*CardContent, error) {
	var content CardContent
	if err := json.Unmarshal(c.Content, &content); err != nil {
		return nil, ErrCardContentInvalid
	}
	return &content, nil
}

// UpdateContent replaces the card's content and bumps the UpdatedAt
// timestamp. Returns an error if the new content is invalid; the original
// content is kept in that case.
func (c *Card) UpdateContent(content CardContent) error {
	if err := content.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return ErrCardContentInvalid
	}

	c.Content = raw
	c.UpdatedAt = time.Now().UTC()
	return nil
}
