package api

import (
	"context"
	"time"

	"github.com/vytor/examprep/internal/services"
)

// HealthChecker reports whether a dependency can serve traffic.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

type Server struct {
	SimulationService services.SimulationService
	ActivityService   services.ActivityService
	ProgressService   services.ProgressService
	VocabularyService services.VocabularyService
	DB                HealthChecker
	RequestTimeout    time.Duration
}
