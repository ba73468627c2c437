package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/examprep/internal/errors"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/services"
	"github.com/vytor/examprep/internal/simulation"
)

func respondState(w http.ResponseWriter, r *http.Request, st simulation.State, err error) {
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("starting session")

	var req services.StartRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	// ?practice and ?exam mirror the mode flags of the route.
	practice, err := queryBool(r, "practice")
	if err != nil {
		handleError(w, r, err)
		return
	}
	exam, err := queryBool(r, "exam")
	if err != nil {
		handleError(w, r, err)
		return
	}
	req.Mode.Practice = req.Mode.Practice || practice
	req.Mode.Exam = req.Mode.Exam || exam

	st, err := s.SimulationService.Start(r.Context(), req)
	respondState(w, r, st, err)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.SimulationService.Get(r.Context(), sessionID(r))
	respondState(w, r, st, err)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.SimulationService.Close(r.Context(), sessionID(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectAnswerRequest struct {
	Option *int `json:"option"`
}

func (s *Server) handleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	var req selectAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Option == nil {
		handleError(w, r, errors.NewBadRequestError("option required"))
		return
	}
	st, err := s.SimulationService.SelectAnswer(r.Context(), sessionID(r), *req.Option)
	respondState(w, r, st, err)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	st, err := s.SimulationService.Submit(r.Context(), sessionID(r))
	respondState(w, r, st, err)
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	st, err := s.SimulationService.Next(r.Context(), sessionID(r))
	respondState(w, r, st, err)
}

func (s *Server) handlePreviousQuestion(w http.ResponseWriter, r *http.Request) {
	st, err := s.SimulationService.Previous(r.Context(), sessionID(r))
	respondState(w, r, st, err)
}

type navigateRequest struct {
	Index *int `json:"index"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Index == nil {
		handleError(w, r, errors.NewBadRequestError("index required"))
		return
	}
	st, err := s.SimulationService.Navigate(r.Context(), sessionID(r), *req.Index)
	respondState(w, r, st, err)
}

func (s *Server) handleToggleExplanation(w http.ResponseWriter, r *http.Request) {
	st, err := s.SimulationService.ToggleExplanation(r.Context(), sessionID(r))
	respondState(w, r, st, err)
}

func (s *Server) handleToggleFlag(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	st, err := s.SimulationService.ToggleFlag(r.Context(), sessionID(r), index)
	respondState(w, r, st, err)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	st, err := s.SimulationService.Restart(r.Context(), sessionID(r))
	respondState(w, r, st, err)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	st, err := s.SimulationService.Reset(r.Context(), sessionID(r))
	respondState(w, r, st, err)
}
