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

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}

		r.Post("/sessions", s.handleStartSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleCloseSession)
			r.Post("/select", s.handleSelectAnswer)
			r.Post("/submit", s.handleSubmitAnswer)
			r.Post("/next", s.handleNextQuestion)
			r.Post("/previous", s.handlePreviousQuestion)
			r.Post("/navigate", s.handleNavigate)
			r.Post("/explanation", s.handleToggleExplanation)
			r.Post("/flags/{index}", s.handleToggleFlag)
			r.Post("/restart", s.handleRestart)
			r.Post("/reset", s.handleReset)
		})

		r.Get("/activity", s.handleActivity)

		r.Get("/progress/sessions/{id}", s.handleSessionProgress)
		r.Get("/progress/sets/{type}/{difficulty}/{set}", s.handleSetProgress)
		r.Get("/progress/quick/{type}", s.handleQuickProgress)

		r.Get("/vocabulary/review", s.handleReviewWords)
		r.Get("/vocabulary/{wordID}", s.handleGetWord)
		r.Post("/vocabulary/{wordID}/check", s.handleCheckWord)
		r.Put("/vocabulary/{wordID}/known", s.handleMarkKnown)
	})
	return r
}
