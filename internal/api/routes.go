package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/decks", s.handleDecks)
		r.Get("/decks/{deckID}/stats", s.handleDeckStats)
		r.Get("/decks/{deckID}/rpg", s.handleDeckRPG)
		r.Get("/decks/{deckID}/trends", s.handleDeckTrends)
		r.Put("/decks/{deckID}/goal", s.handleSetGoal)
		r.Post("/decks/{deckID}/pin", s.handlePin)
		r.Delete("/decks/{deckID}/pin", s.handleUnpin)
		r.Post("/decks/{deckID}/select", s.handleToggleSelect)
		r.Get("/summary", s.handleSummary)
		r.Post("/reviews", s.handleRecordReview)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)
	})

	return r
}
