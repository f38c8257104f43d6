package api

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/api/shared"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/events"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/deck"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/review"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/task"
)

// DeckHandler handles deck management HTTP requests.
type DeckHandler struct {
	deckService   deck.DeckService
	reviewService review.ReviewService
	emitter       events.EventEmitter
	contentDir    string
	logger        *slog.Logger
}

// NewDeckHandler creates a new DeckHandler. contentDir is the root of the
// repository's study content; directory imports resolve against it.
func NewDeckHandler(
	deckService deck.DeckService,
	reviewService review.ReviewService,
	emitter events.EventEmitter,
	contentDir string,
	log *slog.Logger,
) *DeckHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DeckHandler{
		deckService:   deckService,
		reviewService: reviewService,
		emitter:       emitter,
		contentDir:    contentDir,
		logger:        log.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	decks, err := h.deckService.ListDecks(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to list decks", err)
		return
	}

	response := make([]DeckResponse, 0, len(decks))
	for _, d := range decks {
		response = append(response, deckToResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateDeck handles POST /decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	created, err := h.deckService.CreateDeck(r.Context(), userID, req.Topic, req.Title, req.Description, req.Tags)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create deck"
		}
		// Domain validation errors surface as 400s with their own text.
		if statusCode == http.StatusInternalServerError && domainValidationError(err) {
			statusCode = http.StatusBadRequest
			safeMessage = err.Error()
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("created deck",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", created.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(created))
}

// ImportDeck handles POST /decks/import requests, building a deck and its
// cards from Markdown submitted in the request body.
func (h *DeckHandler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ImportDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.deckService.ImportDeck(r.Context(), userID, req.Source, []byte(req.Markdown))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to import deck"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Info("imported deck via API",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", result.Deck.ID.String()),
		slog.Int("card_count", result.CardCount))
	shared.RespondWithJSON(w, r, http.StatusCreated, ImportDeckResponse{
		Deck:      deckToResponse(result.Deck),
		CardCount: result.CardCount,
	})
}

// ImportContentDir handles POST /decks/import-dir requests. Each deck file
// under the requested directory becomes a background import task, so large
// content trees do not tie up the request.
func (h *DeckHandler) ImportContentDir(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	// An empty body means "import the whole content tree".
	var req ImportDirRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	root, ok := h.resolveContentDir(req.Dir)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid dir")
		return
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		shared.RespondWithError(w, r, http.StatusNotFound, "Directory not found")
		return
	}

	var taskIDs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		event, err := events.NewTaskRequestEvent(task.TaskTypeDeckImport, task.DeckImportPayload{
			UserID:     userID,
			SourcePath: path,
		})
		if err != nil {
			return err
		}
		if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
			return err
		}
		taskIDs = append(taskIDs, event.ID.String())
		return nil
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to queue deck imports", err)
		return
	}

	log.Info("queued directory import",
		slog.String("user_id", userID.String()),
		slog.String("dir", req.Dir),
		slog.Int("task_count", len(taskIDs)))
	shared.RespondWithJSON(w, r, http.StatusAccepted, ImportDirResponse{
		TaskIDs: taskIDs,
		Status:  "pending",
	})
}

// resolveContentDir resolves a request-supplied directory against the
// content root, refusing absolute paths and traversal outside the root.
func (h *DeckHandler) resolveContentDir(dir string) (string, bool) {
	if dir == "" {
		return h.contentDir, true
	}
	if filepath.IsAbs(dir) {
		return "", false
	}

	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(h.contentDir, clean), true
}

// GetDeck handles GET /decks/{id} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.deckService.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(found))
}

// DeleteDeck handles DELETE /decks/{id} requests.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), userID, deckID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("deleted deck",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// DeckProgress handles GET /decks/{id}/progress requests.
func (h *DeckHandler) DeckProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	deckID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	progress, err := h.reviewService.DeckProgress(r.Context(), userID, deckID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get deck progress"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeckProgressResponse{
		DeckID:       progress.DeckID.String(),
		TotalCards:   progress.TotalCards,
		LearnedCards: progress.LearnedCards,
		DueCards:     progress.DueCards,
		ReviewCount:  progress.ReviewCount,
		CorrectCount: progress.CorrectCount,
		Accuracy:     progress.Accuracy(),
	})
}

// domainValidationError reports whether the error is one of the deck field
// validation sentinels.
func domainValidationError(err error) bool {
	return errors.Is(err, domain.ErrEmptyDeckTitle) || errors.Is(err, domain.ErrInvalidTopic)
}

func deckToResponse(d *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:          d.ID.String(),
		Topic:       d.Topic,
		Title:       d.Title,
		Description: d.Description,
		Tags:        d.Tags,
		SourcePath:  d.SourcePath,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
