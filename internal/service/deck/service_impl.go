package deck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/deckfile"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
)

type txRunner func(ctx context.Context, fn store.TxFn) error

// Verify interface compliance at compile time
var _ DeckService = (*deckServiceImpl)(nil)

type deckServiceImpl struct {
	runTx      txRunner
	deckStore  store.DeckStore
	cardStore  store.CardStore
	statsStore store.UserCardStatsStore
	logger     *slog.Logger
}

// NewDeckService creates a DeckService backed by the given database and
// stores.
func NewDeckService(
	db *sql.DB,
	deckStore store.DeckStore,
	cardStore store.CardStore,
	statsStore store.UserCardStatsStore,
	log *slog.Logger,
) DeckService {
	if db == nil {
		panic("db cannot be nil")
	}
	return newDeckService(
		func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		deckStore, cardStore, statsStore, log,
	)
}

func newDeckService(
	runTx txRunner,
	deckStore store.DeckStore,
	cardStore store.CardStore,
	statsStore store.UserCardStatsStore,
	log *slog.Logger,
) *deckServiceImpl {
	if deckStore == nil {
		panic("deckStore cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &deckServiceImpl{
		runTx:      runTx,
		deckStore:  deckStore,
		cardStore:  cardStore,
		statsStore: statsStore,
		logger:     log.With(slog.String("component", "deck_service")),
	}
}

// CreateDeck implements DeckService.CreateDeck.
func (s *deckServiceImpl) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	topic, title, description string,
	tags []string,
) (*domain.Deck, error) {
	deck, err := domain.NewDeck(userID, topic, title)
	if err != nil {
		return nil, err
	}
	deck.Description = description
	deck.Tags = tags

	if err := s.deckStore.Create(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	return deck, nil
}

// ImportDeck implements DeckService.ImportDeck.
func (s *deckServiceImpl) ImportDeck(
	ctx context.Context,
	userID uuid.UUID,
	source string,
	data []byte,
) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	file, err := deckfile.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	if len(file.Cards) == 0 {
		return nil, ErrEmptyDeck
	}

	title := file.Title
	if title == "" {
		title = deriveTitle(source)
	}

	deck, err := domain.NewDeck(userID, file.Topic, title)
	if err != nil {
		return nil, err
	}
	deck.Description = file.Description
	deck.Tags = file.Tags
	deck.SourcePath = source

	cards := make([]*domain.Card, 0, len(file.Cards))
	stats := make([]*domain.UserCardStats, 0, len(file.Cards))
	for _, content := range file.Cards {
		card, err := domain.NewCard(userID, deck.ID, content)
		if err != nil {
			return nil, fmt.Errorf("failed to build card: %w", err)
		}
		cardStats, err := domain.NewUserCardStats(userID, card.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to build card stats: %w", err)
		}
		cards = append(cards, card)
		stats = append(stats, cardStats)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.deckStore.WithTx(tx).Create(ctx, deck); err != nil {
			if errors.Is(err, store.ErrDeckExists) {
				return ErrDeckExists
			}
			return fmt.Errorf("failed to create deck: %w", err)
		}
		if err := s.cardStore.WithTx(tx).CreateMultiple(ctx, cards); err != nil {
			return fmt.Errorf("failed to create cards: %w", err)
		}
		if err := s.statsStore.WithTx(tx).CreateMultiple(ctx, stats); err != nil {
			return fmt.Errorf("failed to create card stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("imported deck",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("source", source),
		slog.Int("card_count", len(cards)))

	return &ImportResult{Deck: deck, CardCount: len(cards)}, nil
}

// ImportFile implements DeckService.ImportFile.
func (s *deckServiceImpl) ImportFile(ctx context.Context, userID uuid.UUID, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}
	return s.ImportDeck(ctx, userID, path, data)
}

// AddCards implements DeckService.AddCards.
func (s *deckServiceImpl) AddCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	contents []domain.CardContent,
) ([]*domain.Card, error) {
	deck, err := s.getOwnedDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	cards := make([]*domain.Card, 0, len(contents))
	stats := make([]*domain.UserCardStats, 0, len(contents))
	for _, content := range contents {
		card, err := domain.NewCard(userID, deck.ID, content)
		if err != nil {
			return nil, fmt.Errorf("failed to build card: %w", err)
		}
		cardStats, err := domain.NewUserCardStats(userID, card.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to build card stats: %w", err)
		}
		cards = append(cards, card)
		stats = append(stats, cardStats)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.cardStore.WithTx(tx).CreateMultiple(ctx, cards); err != nil {
			return fmt.Errorf("failed to create cards: %w", err)
		}
		if err := s.statsStore.WithTx(tx).CreateMultiple(ctx, stats); err != nil {
			return fmt.Errorf("failed to create card stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cards, nil
}

// ListDecks implements DeckService.ListDecks.
func (s *deckServiceImpl) ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	decks, err := s.deckStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	return decks, nil
}

// GetDeck implements DeckService.GetDeck.
func (s *deckServiceImpl) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	return s.getOwnedDeck(ctx, userID, deckID)
}

// DeleteDeck implements DeckService.DeleteDeck.
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	if _, err := s.getOwnedDeck(ctx, userID, deckID); err != nil {
		return err
	}

	if err := s.deckStore.Delete(ctx, deckID); err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return ErrDeckNotFound
		}
		return fmt.Errorf("failed to delete deck: %w", err)
	}

	return nil
}

func (s *deckServiceImpl) getOwnedDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	if deck.UserID != userID {
		return nil, ErrDeckNotOwned
	}
	return deck, nil
}

// deriveTitle falls back to a readable title from the source path when a
// deck file has neither frontmatter title nor H1.
func deriveTitle(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	if base == "" || base == "." {
		return "Imported deck"
	}
	return base
}
