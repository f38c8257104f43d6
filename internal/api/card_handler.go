// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/api/shared"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/review"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
)

// CardHandler handles card study and management HTTP requests.
type CardHandler struct {
	reviewService review.ReviewService
	cardStore     store.CardStore
	logger        *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(
	reviewService review.ReviewService,
	cardStore store.CardStore,
	log *slog.Logger,
) *CardHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CardHandler{
		reviewService: reviewService,
		cardStore:     cardStore,
		logger:        log.With(slog.String("component", "card_handler")),
	}
}

// GetNextReviewCard handles GET /study/next requests. It retrieves the card
// the user should study next: among due cards, the one with the highest
// interview frequency weight.
func (h *CardHandler) GetNextReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	card, err := h.reviewService.GetNextCard(r.Context(), userID)
	if errors.Is(err, review.ErrNoCardsDue) {
		log.Debug("no cards due for review", slog.String("user_id", userID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get next review card"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("retrieved next review card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// SubmitAnswer handles POST /cards/{id}/answer requests. It grades the
// user's recall and reschedules the card on the spaced repetition curve.
func (h *CardHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	stats, err := h.reviewService.SubmitAnswer(
		r.Context(),
		userID,
		cardID,
		review.ReviewAnswer{Outcome: domain.ReviewOutcome(req.Outcome)},
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("submitted answer",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("outcome", req.Outcome))
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}

// PostponeCard handles POST /cards/{id}/postpone requests, pushing the
// card's next review out by the requested number of days.
func (h *CardHandler) PostponeCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req PostponeCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	stats, err := h.reviewService.PostponeCard(r.Context(), userID, cardID, req.Days)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to postpone card"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("postponed card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}

// UpdateCard handles PUT /cards/{id} requests, replacing the card's content.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	card, ok := h.getOwnedCard(w, r, userID, cardID)
	if !ok {
		return
	}

	content := domain.CardContent{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: domain.Difficulty(req.Difficulty),
		Tags:       req.Tags,
		Frequency:  req.Frequency,
	}
	if err := content.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card content: "+err.Error())
		return
	}

	raw, err := json.Marshal(content)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update card", err)
		return
	}

	if err := h.cardStore.UpdateContent(r.Context(), cardID, raw); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	card.Content = raw
	log.Debug("updated card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /cards/{id} requests. The card's stats and
// review logs go with it through cascade deletes.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, ok := h.getOwnedCard(w, r, userID, cardID); !ok {
		return
	}

	if err := h.cardStore.Delete(r.Context(), cardID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("deleted card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// getOwnedCard loads the card and verifies ownership, writing the error
// response itself on failure.
func (h *CardHandler) getOwnedCard(
	w http.ResponseWriter,
	r *http.Request,
	userID, cardID uuid.UUID,
) (*domain.Card, bool) {
	card, err := h.cardStore.GetByID(r.Context(), cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, false
	}
	if card.UserID != userID {
		shared.RespondWithError(w, r, http.StatusForbidden, GetSafeErrorMessage(review.ErrCardNotOwned))
		return nil, false
	}
	return card, true
}

// statsToResponse converts a domain.UserCardStats to a UserCardStatsResponse
func statsToResponse(stats *domain.UserCardStats) UserCardStatsResponse {
	return UserCardStatsResponse{
		UserID:             stats.UserID.String(),
		CardID:             stats.CardID.String(),
		Interval:           stats.Interval,
		EaseFactor:         stats.EaseFactor,
		ConsecutiveCorrect: stats.ConsecutiveCorrect,
		LastReviewedAt:     stats.LastReviewedAt,
		NextReviewAt:       stats.NextReviewAt,
		ReviewCount:        stats.ReviewCount,
		CorrectCount:       stats.CorrectCount,
	}
}

// cardToResponse converts a domain.Card to a CardResponse
func cardToResponse(card *domain.Card) CardResponse {
	var content interface{}
	if err := json.Unmarshal(card.Content, &content); err != nil {
		content = string(card.Content)
	}

	return CardResponse{
		ID:        card.ID.String(),
		UserID:    card.UserID.String(),
		DeckID:    card.DeckID.String(),
		Content:   content,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}
