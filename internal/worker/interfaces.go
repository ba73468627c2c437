package worker

import (
	"context"

	"github.com/vytor/examprep/internal/models"
)

// ProgressWriter persists progress documents.
// This avoids import cycles by not importing the progress package
type ProgressWriter interface {
	SaveProgress(ctx context.Context, sessionID string, rec models.ProgressRecord) error
	SaveSummary(ctx context.Context, key string, summary models.SetProgress) error
	DeleteProgress(ctx context.Context, sessionID string) error
}

// ActivityAppender records activity history entries.
type ActivityAppender interface {
	Append(ctx context.Context, entry models.ActivityEntry) error
}
