package jobs

import "github.com/vytor/examprep/internal/models"

// PersistQueue provides an abstraction for enqueueing persistence writes.
// Writes are fire-and-forget: an error means the write was not queued.
type PersistQueue interface {
	SaveProgress(sessionID string, rec models.ProgressRecord) error
	SaveSummary(key string, summary models.SetProgress) error
	DeleteProgress(sessionID string) error
	AppendActivity(entry models.ActivityEntry) error
}
