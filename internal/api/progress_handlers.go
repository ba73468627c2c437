package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/examprep/internal/models"
)

func (s *Server) handleSessionProgress(w http.ResponseWriter, r *http.Request) {
	rec, err := s.ProgressService.SessionProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleSetProgress(w http.ResponseWriter, r *http.Request) {
	setNumber, err := intParam(r, "set")
	if err != nil {
		handleError(w, r, err)
		return
	}
	summary, err := s.ProgressService.SetProgress(r.Context(),
		models.QuestionType(chi.URLParam(r, "type")),
		models.Difficulty(chi.URLParam(r, "difficulty")),
		setNumber)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleQuickProgress(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ProgressService.QuickProgress(r.Context(), models.QuestionType(chi.URLParam(r, "type")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
