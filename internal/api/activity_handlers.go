package api

import (
	"net/http"
	"time"

	"github.com/vytor/examprep/internal/errors"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
)

func parseActivityFilter(r *http.Request) (models.ActivityFilter, error) {
	q := r.URL.Query()
	filter := models.ActivityFilter{
		Topic:  q.Get("topic"),
		Status: q.Get("status"),
	}

	var err error
	if filter.CompletedOnly, err = queryBool(r, "completed"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(r, "limit", 50); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		return filter, err
	}
	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, errors.NewBadRequestError("since must be an RFC 3339 timestamp")
		}
		filter.Since = &since
	}
	return filter, nil
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("listing activity")

	filter, err := parseActivityFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	page, err := s.ActivityService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}
