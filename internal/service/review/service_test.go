package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain/srs"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory store fakes. WithTx returns the fake itself so the service's
// transactional flow runs against the same maps.

type fakeCardStore struct {
	cards map[uuid.UUID]*domain.Card
	next  *domain.Card
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (f *fakeCardStore) CreateMultiple(_ context.Context, cards []*domain.Card) error {
	for _, c := range cards {
		f.cards[c.ID] = c
	}
	return nil
}

func (f *fakeCardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (f *fakeCardStore) ListByDeck(_ context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range f.cards {
		if c.DeckID == deckID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCardStore) UpdateContent(_ context.Context, id uuid.UUID, content []byte) error {
	card, ok := f.cards[id]
	if !ok {
		return store.ErrCardNotFound
	}
	card.Content = content
	return nil
}

func (f *fakeCardStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(f.cards, id)
	return nil
}

func (f *fakeCardStore) GetNextReviewCard(_ context.Context, _ uuid.UUID) (*domain.Card, error) {
	if f.next == nil {
		return nil, store.ErrCardNotFound
	}
	return f.next, nil
}

func (f *fakeCardStore) WithTx(_ *sql.Tx) store.CardStore { return f }

type fakeStatsStore struct {
	stats map[uuid.UUID]*domain.UserCardStats // keyed by card ID
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{stats: make(map[uuid.UUID]*domain.UserCardStats)}
}

func (f *fakeStatsStore) Create(_ context.Context, s *domain.UserCardStats) error {
	if _, ok := f.stats[s.CardID]; ok {
		return store.ErrDuplicate
	}
	f.stats[s.CardID] = s
	return nil
}

func (f *fakeStatsStore) CreateMultiple(ctx context.Context, stats []*domain.UserCardStats) error {
	for _, s := range stats {
		if err := f.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStatsStore) Get(_ context.Context, _, cardID uuid.UUID) (*domain.UserCardStats, error) {
	s, ok := f.stats[cardID]
	if !ok {
		return nil, store.ErrUserCardStatsNotFound
	}
	return s, nil
}

func (f *fakeStatsStore) GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.UserCardStats, error) {
	return f.Get(ctx, userID, cardID)
}

func (f *fakeStatsStore) Update(_ context.Context, s *domain.UserCardStats) error {
	if _, ok := f.stats[s.CardID]; !ok {
		return store.ErrUserCardStatsNotFound
	}
	f.stats[s.CardID] = s
	return nil
}

func (f *fakeStatsStore) DeckProgress(_ context.Context, _, deckID uuid.UUID) (*store.DeckProgress, error) {
	return &store.DeckProgress{DeckID: deckID, TotalCards: len(f.stats)}, nil
}

func (f *fakeStatsStore) WithTx(_ *sql.Tx) store.UserCardStatsStore { return f }

type fakeLogStore struct {
	logs []*domain.ReviewLog
}

func (f *fakeLogStore) Create(_ context.Context, l *domain.ReviewLog) error {
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeLogStore) ListByCard(_ context.Context, _, cardID uuid.UUID, _ int) ([]*domain.ReviewLog, error) {
	var out []*domain.ReviewLog
	for _, l := range f.logs {
		if l.CardID == cardID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogStore) WithTx(_ *sql.Tx) store.ReviewLogStore { return f }

type fakeDeckStore struct {
	decks map[uuid.UUID]*domain.Deck
}

func newFakeDeckStore() *fakeDeckStore {
	return &fakeDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

func (f *fakeDeckStore) Create(_ context.Context, d *domain.Deck) error {
	f.decks[d.ID] = d
	return nil
}

func (f *fakeDeckStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Deck, error) {
	d, ok := f.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	return d, nil
}

func (f *fakeDeckStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	var out []*domain.Deck
	for _, d := range f.decks {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeckStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.decks[id]; !ok {
		return store.ErrDeckNotFound
	}
	delete(f.decks, id)
	return nil
}

func (f *fakeDeckStore) WithTx(_ *sql.Tx) store.DeckStore { return f }

// passthroughTx runs the transactional function without a real transaction.
func passthroughTx(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

type fixture struct {
	svc   *reviewServiceImpl
	cards *fakeCardStore
	stats *fakeStatsStore
	logs  *fakeLogStore
	decks *fakeDeckStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		cards: newFakeCardStore(),
		stats: newFakeStatsStore(),
		logs:  &fakeLogStore{},
		decks: newFakeDeckStore(),
	}
	f.svc = newReviewService(
		passthroughTx,
		f.cards, f.stats, f.logs, f.decks,
		srs.NewDefaultService(),
		slog.Default(),
	)
	return f
}

func (f *fixture) addCard(t *testing.T, userID uuid.UUID) *domain.Card {
	t.Helper()

	deck, err := domain.NewDeck(userID, "01-javascript", "JS Deck")
	require.NoError(t, err)
	f.decks.decks[deck.ID] = deck

	card, err := domain.NewCard(userID, deck.ID, domain.CardContent{
		Question:   "What is a closure?",
		Answer:     "A function plus its lexical scope.",
		Difficulty: domain.DifficultyMedium,
		Frequency:  4,
	})
	require.NoError(t, err)
	f.cards.cards[card.ID] = card
	return card
}

func TestGetNextCard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()
	card := f.addCard(t, userID)

	f.cards.next = card
	got, err := f.svc.GetNextCard(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)

	f.cards.next = nil
	_, err = f.svc.GetNextCard(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNoCardsDue)
}

func TestSubmitAnswerFirstReview(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()
	card := f.addCard(t, userID)

	stats, err := f.svc.SubmitAnswer(context.Background(), userID, card.ID, ReviewAnswer{
		Outcome: domain.ReviewOutcomeGood,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Interval, "first good answer schedules one day out")
	assert.Equal(t, 1, stats.ReviewCount)
	assert.Equal(t, 1, stats.CorrectCount)
	assert.Equal(t, 1, stats.ConsecutiveCorrect)
	assert.False(t, stats.LastReviewedAt.IsZero())

	// Stats were created lazily and the review was logged.
	_, err = f.stats.Get(context.Background(), userID, card.ID)
	require.NoError(t, err)
	require.Len(t, f.logs.logs, 1)
	assert.Equal(t, domain.ReviewOutcomeGood, f.logs.logs[0].Outcome)
	assert.Equal(t, 0, f.logs.logs[0].IntervalBefore)
	assert.Equal(t, 1, f.logs.logs[0].IntervalAfter)
}

func TestSubmitAnswerAgainResetsStreak(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()
	card := f.addCard(t, userID)
	ctx := context.Background()

	_, err := f.svc.SubmitAnswer(ctx, userID, card.ID, ReviewAnswer{Outcome: domain.ReviewOutcomeGood})
	require.NoError(t, err)

	stats, err := f.svc.SubmitAnswer(ctx, userID, card.ID, ReviewAnswer{Outcome: domain.ReviewOutcomeAgain})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Interval)
	assert.Equal(t, 0, stats.ConsecutiveCorrect)
	assert.Equal(t, 2, stats.ReviewCount)
	assert.Equal(t, 1, stats.CorrectCount, "an 'again' answer is not correct")
	assert.True(t, stats.NextReviewAt.Before(time.Now().Add(time.Hour)),
		"'again' should reschedule within minutes, not days")
	assert.Len(t, f.logs.logs, 2)
}

func TestSubmitAnswerValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	owner := uuid.New()
	card := f.addCard(t, owner)
	ctx := context.Background()

	_, err := f.svc.SubmitAnswer(ctx, owner, card.ID, ReviewAnswer{Outcome: "perfect"})
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = f.svc.SubmitAnswer(ctx, owner, uuid.New(), ReviewAnswer{Outcome: domain.ReviewOutcomeGood})
	assert.ErrorIs(t, err, ErrCardNotFound)

	stranger := uuid.New()
	_, err = f.svc.SubmitAnswer(ctx, stranger, card.ID, ReviewAnswer{Outcome: domain.ReviewOutcomeGood})
	assert.ErrorIs(t, err, ErrCardNotOwned)

	assert.Empty(t, f.logs.logs, "failed submissions must not log reviews")
}

func TestPostponeCard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()
	card := f.addCard(t, userID)
	ctx := context.Background()

	// No stats yet.
	_, err := f.svc.PostponeCard(ctx, userID, card.ID, 3)
	assert.ErrorIs(t, err, ErrCardStatsNotFound)

	before, err := f.svc.SubmitAnswer(ctx, userID, card.ID, ReviewAnswer{Outcome: domain.ReviewOutcomeGood})
	require.NoError(t, err)

	after, err := f.svc.PostponeCard(ctx, userID, card.ID, 3)
	require.NoError(t, err)
	assert.True(t, after.NextReviewAt.After(before.NextReviewAt),
		"postponing must push the next review outward")
	assert.Equal(t, before.Interval, after.Interval, "postponing must not change scheduler state")

	_, err = f.svc.PostponeCard(ctx, userID, card.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidPostponeDays)
}

func TestDeckProgress(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()
	card := f.addCard(t, userID)
	ctx := context.Background()

	deck, err := f.cards.GetByID(ctx, card.ID)
	require.NoError(t, err)

	progress, err := f.svc.DeckProgress(ctx, userID, deck.DeckID)
	require.NoError(t, err)
	assert.Equal(t, deck.DeckID, progress.DeckID)

	_, err = f.svc.DeckProgress(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, ErrDeckNotFound)

	_, err = f.svc.DeckProgress(ctx, uuid.New(), deck.DeckID)
	assert.ErrorIs(t, err, ErrDeckNotOwned)
}

func TestSubmitAnswerKeepsCardContentIntact(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := uuid.New()
	card := f.addCard(t, userID)
	ctx := context.Background()

	originalContent := make(json.RawMessage, len(card.Content))
	copy(originalContent, card.Content)

	_, err := f.svc.SubmitAnswer(ctx, userID, card.ID, ReviewAnswer{Outcome: domain.ReviewOutcomeEasy})
	require.NoError(t, err)

	got, err := f.cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(originalContent), string(got.Content),
		"the study flow must never mutate card content")
}
