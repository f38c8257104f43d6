package deck

import (
	"context"
	"errors"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/google/uuid"
)

// ImportResult reports what a deck import produced.
type ImportResult struct {
	Deck      *domain.Deck `json:"deck"`
	CardCount int          `json:"card_count"`
}

// DeckService manages flashcard decks: creation, Markdown import, listing
// and deletion. Imports create the deck, its cards, and "due now" stats rows
// atomically, so a freshly imported deck is immediately studyable.
type DeckService interface {
	// CreateDeck creates an empty deck owned by the user.
	CreateDeck(ctx context.Context, userID uuid.UUID, topic, title, description string, tags []string) (*domain.Deck, error)

	// ImportDeck parses deck Markdown held in memory and persists the deck
	// with all its cards. source records where the payload came from; a
	// user cannot import the same non-empty source twice.
	ImportDeck(ctx context.Context, userID uuid.UUID, source string, data []byte) (*ImportResult, error)

	// ImportFile reads and imports a deck Markdown file from disk.
	ImportFile(ctx context.Context, userID uuid.UUID, path string) (*ImportResult, error)

	// AddCards appends cards to an existing deck the user owns, with stats
	// rows making them due immediately. Used by the import and generation
	// flows as well as manual card creation.
	AddCards(ctx context.Context, userID, deckID uuid.UUID, contents []domain.CardContent) ([]*domain.Card, error)

	// ListDecks returns all decks owned by the user.
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// GetDeck returns one deck the user owns.
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)

	// DeleteDeck removes a deck the user owns along with its cards and
	// stats.
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error
}

// Common error types for DeckService
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrDeckNotOwned indicates that the user does not own the deck.
	ErrDeckNotOwned = errors.New("unauthorized access: deck not owned by user")

	// ErrDeckExists indicates the user already imported a deck from this source.
	ErrDeckExists = errors.New("deck already imported from this source")

	// ErrEmptyDeck indicates an import produced no cards.
	ErrEmptyDeck = errors.New("deck file contains no cards")
)
