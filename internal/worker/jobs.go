package worker

import (
	"context"

	"github.com/vytor/examprep/internal/models"
)

// Keyed jobs report the storage key they write, for failure reports.
type Keyed interface {
	Key() string
}

type SaveProgressJob struct {
	Writer    ProgressWriter
	SessionID string
	Record    models.ProgressRecord
}

func (j *SaveProgressJob) Name() string { return "save_progress" }
func (j *SaveProgressJob) Key() string  { return j.SessionID }

func (j *SaveProgressJob) Run(ctx context.Context) error {
	return j.Writer.SaveProgress(ctx, j.SessionID, j.Record)
}

type DeleteProgressJob struct {
	Writer    ProgressWriter
	SessionID string
}

func (j *DeleteProgressJob) Name() string { return "delete_progress" }
func (j *DeleteProgressJob) Key() string  { return j.SessionID }

func (j *DeleteProgressJob) Run(ctx context.Context) error {
	return j.Writer.DeleteProgress(ctx, j.SessionID)
}

// SaveSummaryJob writes a set or quick-practice summary.
type SaveSummaryJob struct {
	Writer     ProgressWriter
	SummaryKey string
	Summary    models.SetProgress
}

func (j *SaveSummaryJob) Name() string { return "save_summary" }
func (j *SaveSummaryJob) Key() string  { return j.SummaryKey }

func (j *SaveSummaryJob) Run(ctx context.Context) error {
	return j.Writer.SaveSummary(ctx, j.SummaryKey, j.Summary)
}

type AppendActivityJob struct {
	Activity ActivityAppender
	Entry    models.ActivityEntry
}

func (j *AppendActivityJob) Name() string { return "append_activity" }
func (j *AppendActivityJob) Key() string  { return j.Entry.Topic }

func (j *AppendActivityJob) Run(ctx context.Context) error {
	return j.Activity.Append(ctx, j.Entry)
}
