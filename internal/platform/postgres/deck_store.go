package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
)

// encodeTags serializes deck tags for the JSONB tags column. A nil slice is
// stored as an empty JSON array.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(tags)
}

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db store.DBTX
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface.
func NewPostgresDeckStore(db store.DBTX) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresDeckStore{db: db}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// Create implements store.DeckStore.Create.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tags, err := encodeTags(deck.Tags)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO decks (id, user_id, topic, title, description, tags, source_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = s.db.ExecContext(ctx, query,
		deck.ID, deck.UserID, deck.Topic, deck.Title, deck.Description,
		tags, deck.SourcePath, deck.CreatedAt, deck.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrDeckExists
		}
		return MapError(err)
	}

	return nil
}

// GetByID implements store.DeckStore.GetByID.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	query := `
		SELECT id, user_id, topic, title, description, tags, source_path, created_at, updated_at
		FROM decks
		WHERE id = $1`

	deck := &domain.Deck{}
	var tags []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID, &deck.UserID, &deck.Topic, &deck.Title, &deck.Description,
		&tags, &deck.SourcePath, &deck.CreatedAt, &deck.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrDeckNotFound
		}
		return nil, MapError(err)
	}
	if err := json.Unmarshal(tags, &deck.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode deck tags: %w", err)
	}

	return deck, nil
}

// ListByUser implements store.DeckStore.ListByUser.
func (s *PostgresDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	query := `
		SELECT id, user_id, topic, title, description, tags, source_path, created_at, updated_at
		FROM decks
		WHERE user_id = $1
		ORDER BY topic, title`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		deck := &domain.Deck{}
		var tags []byte
		if err := rows.Scan(
			&deck.ID, &deck.UserID, &deck.Topic, &deck.Title, &deck.Description,
			&tags, &deck.SourcePath, &deck.CreatedAt, &deck.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		if err := json.Unmarshal(tags, &deck.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode deck tags: %w", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return decks, nil
}

// Delete implements store.DeckStore.Delete.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrDeckNotFound
	}

	return nil
}

// WithTx implements store.DeckStore.WithTx.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{db: tx}
}
