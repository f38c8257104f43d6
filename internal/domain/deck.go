package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	ErrEmptyDeckID     = errors.New("deck ID cannot be empty")
	ErrEmptyDeckUserID = errors.New("deck user ID cannot be empty")
	ErrEmptyDeckTitle  = errors.New("deck title cannot be empty")
	ErrInvalidTopic    = errors.New("deck topic must be a lowercase slug")
)

// topicRegex matches topic slugs derived from the study-content directory
// layout, e.g. "01-javascript" or "14-flashcards". A plain slug without the
// ordering prefix is also accepted for decks created through the API.
var topicRegex = regexp.MustCompile(`^(\d{2}-)?[a-z0-9]+(-[a-z0-9]+)*$`)

// Deck is a named collection of flashcards owned by a user. Decks imported
// from the study-content repository keep the source file path for traceability.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Topic       string    `json:"topic"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	SourcePath  string    `json:"source_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeck creates a new Deck with the given owner, topic slug, and title.
// Returns an error if validation fails.
func NewDeck(userID uuid.UUID, topic, title string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     topic,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDeckID
	}

	if d.UserID == uuid.Nil {
		return ErrEmptyDeckUserID
	}

	if d.Title == "" {
		return ErrEmptyDeckTitle
	}

	if d.Topic != "" && !topicRegex.MatchString(d.Topic) {
		return ErrInvalidTopic
	}

	return nil
}
