package api

import (
	"log/slog"
	"net/http"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/api/shared"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/events"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/deck"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/task"
	"github.com/google/uuid"
)

// GenerateHandler queues card generation tasks. Generation itself runs in
// the background; the endpoint only validates the request, checks deck
// ownership, and emits a task request event.
type GenerateHandler struct {
	deckService deck.DeckService
	emitter     events.EventEmitter
	enabled     bool
	logger      *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler. When enabled is false
// (no language model configured) the endpoint reports 503.
func NewGenerateHandler(
	deckService deck.DeckService,
	emitter events.EventEmitter,
	enabled bool,
	log *slog.Logger,
) *GenerateHandler {
	if log == nil {
		log = slog.Default()
	}
	return &GenerateHandler{
		deckService: deckService,
		emitter:     emitter,
		enabled:     enabled,
		logger:      log.With(slog.String("component", "generate_handler")),
	}
}

// GenerateCards handles POST /generate requests.
func (h *GenerateHandler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if !h.enabled {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Card generation is not available")
		return
	}

	var req GenerateCardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	deckID, err := uuid.Parse(req.DeckID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck_id format")
		return
	}

	// Refuse early rather than failing inside the background task.
	if _, err := h.deckService.GetDeck(r.Context(), userID, deckID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	event, err := events.NewTaskRequestEvent(task.TaskTypeCardGeneration, task.CardGenerationPayload{
		UserID:   userID,
		DeckID:   deckID,
		NoteText: req.NoteText,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to queue card generation", err)
		return
	}

	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to queue card generation", err)
		return
	}

	log.Info("queued card generation",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()),
		slog.String("task_id", event.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusAccepted, GenerateCardsResponse{
		TaskID: event.ID.String(),
		Status: string(task.TaskStatusPending),
	})
}
