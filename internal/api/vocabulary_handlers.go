package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/examprep/internal/errors"
	"github.com/vytor/examprep/internal/logger"
)

type checkWordRequest struct {
	Source  string `json:"source"`
	Correct *bool  `json:"correct"`
}

func (s *Server) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	wordID := chi.URLParam(r, "wordID")
	log.Debug("checking word %s", wordID)

	var req checkWordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Correct == nil {
		handleError(w, r, errors.NewBadRequestError("correct required"))
		return
	}

	m, err := s.VocabularyService.Check(r.Context(), wordID, req.Source, *req.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

type markKnownRequest struct {
	Known bool `json:"known"`
}

func (s *Server) handleMarkKnown(w http.ResponseWriter, r *http.Request) {
	var req markKnownRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	m, err := s.VocabularyService.MarkKnown(r.Context(), chi.URLParam(r, "wordID"), req.Known)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	m, err := s.VocabularyService.Get(r.Context(), chi.URLParam(r, "wordID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

func (s *Server) handleReviewWords(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		handleError(w, r, err)
		return
	}
	words, err := s.VocabularyService.Review(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, words)
}
