package generation

import (
	"context"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/google/uuid"
)

// Generator defines the interface for generating flashcards from text.
// It isolates the application core from the concrete language-model client
// so services and tests can swap in stub implementations.
type Generator interface {
	// GenerateCards drafts flashcards from the provided study note text.
	// The returned cards belong to the given user and deck and carry the
	// standard content structure (question, answer, difficulty, tags,
	// frequency).
	GenerateCards(ctx context.Context, noteText string, userID, deckID uuid.UUID) ([]*domain.Card, error)
}
