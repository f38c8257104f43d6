package api

import (
	"log/slog"
	"net/http"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/api/shared"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/deckfile"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ContentHandler serves the study-content catalog: the topic directories of
// Markdown guides the flashcard decks are derived from.
type ContentHandler struct {
	contentDir string
	logger     *slog.Logger
}

// NewContentHandler creates a handler serving the catalog of the given
// content directory.
func NewContentHandler(contentDir string, log *slog.Logger) *ContentHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ContentHandler{
		contentDir: contentDir,
		logger:     log.With(slog.String("component", "content_handler")),
	}
}

// ListSections handles GET /content requests, returning every section in
// topic order.
func (h *ContentHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := deckfile.ScanContentDir(h.contentDir)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to read study content", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sectionsToResponse(sections))
}

// ListTopicSections handles GET /content/{topic} requests, returning the
// sections of one topic.
func (h *ContentHandler) ListTopicSections(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if topic == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing topic path parameter")
		return
	}

	sections, err := deckfile.ScanContentDir(h.contentDir)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to read study content", err)
		return
	}

	var matched []domain.ContentSection
	for _, section := range sections {
		if section.Topic == topic {
			matched = append(matched, section)
		}
	}
	if len(matched) == 0 {
		shared.RespondWithError(w, r, http.StatusNotFound, "Topic not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sectionsToResponse(matched))
}

func sectionsToResponse(sections []domain.ContentSection) []ContentSectionResponse {
	response := make([]ContentSectionResponse, 0, len(sections))
	for _, section := range sections {
		response = append(response, ContentSectionResponse{
			Topic:    section.Topic,
			Order:    section.Order,
			FileName: section.FileName,
			Title:    section.Title,
		})
	}
	return response
}
