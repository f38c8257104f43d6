package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/api"
	apiMiddleware "github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/api/middleware"
)

// setupRouter builds the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.config.Auth.TokenLifetime(),
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	deckHandler := api.NewDeckHandler(
		app.deckService,
		app.reviewService,
		app.eventEmitter,
		app.config.Content.Dir,
		app.logger,
	)
	cardHandler := api.NewCardHandler(app.reviewService, app.cardStore, app.logger)
	contentHandler := api.NewContentHandler(app.config.Content.Dir, app.logger)
	generateHandler := api.NewGenerateHandler(
		app.deckService,
		app.eventEmitter,
		app.generationEnabled(),
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Deck management
			r.Get("/decks", deckHandler.ListDecks)
			r.Post("/decks", deckHandler.CreateDeck)
			r.Post("/decks/import", deckHandler.ImportDeck)
			r.Post("/decks/import-dir", deckHandler.ImportContentDir)
			r.Get("/decks/{id}", deckHandler.GetDeck)
			r.Delete("/decks/{id}", deckHandler.DeleteDeck)
			r.Get("/decks/{id}/progress", deckHandler.DeckProgress)

			// Study session
			r.Get("/study/next", cardHandler.GetNextReviewCard)
			r.Post("/cards/{id}/answer", cardHandler.SubmitAnswer)
			r.Post("/cards/{id}/postpone", cardHandler.PostponeCard)

			// Card management
			r.Put("/cards/{id}", cardHandler.UpdateCard)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)

			// Card generation
			r.Post("/generate", generateHandler.GenerateCards)

			// Study content browsing
			r.Get("/content", contentHandler.ListSections)
			r.Get("/content/{topic}", contentHandler.ListTopicSections)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
