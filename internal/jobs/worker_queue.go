package jobs

import (
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/worker"
)

// WorkerQueue implements PersistQueue on a worker pool. With a single
// worker, writes land in the order they were enqueued, so the last write
// for a key wins.
type WorkerQueue struct {
	pool      *worker.Pool
	progress  worker.ProgressWriter
	activity  worker.ActivityAppender
	onFailure models.FailureFunc
}

// NewWorkerQueue creates a new WorkerQueue implementation. Failed jobs and
// rejected submissions are passed to onFailure.
func NewWorkerQueue(
	pool *worker.Pool,
	progress worker.ProgressWriter,
	activity worker.ActivityAppender,
	onFailure models.FailureFunc,
) *WorkerQueue {
	q := &WorkerQueue{
		pool:      pool,
		progress:  progress,
		activity:  activity,
		onFailure: onFailure,
	}
	pool.OnError(func(job worker.Job, err error) {
		q.onFailure.Report(job.Name(), jobKey(job), err)
	})
	return q
}

func (q *WorkerQueue) SaveProgress(sessionID string, rec models.ProgressRecord) error {
	return q.submit(&worker.SaveProgressJob{Writer: q.progress, SessionID: sessionID, Record: rec})
}

func (q *WorkerQueue) SaveSummary(key string, summary models.SetProgress) error {
	return q.submit(&worker.SaveSummaryJob{Writer: q.progress, SummaryKey: key, Summary: summary})
}

func (q *WorkerQueue) DeleteProgress(sessionID string) error {
	return q.submit(&worker.DeleteProgressJob{Writer: q.progress, SessionID: sessionID})
}

func (q *WorkerQueue) AppendActivity(entry models.ActivityEntry) error {
	return q.submit(&worker.AppendActivityJob{Activity: q.activity, Entry: entry})
}

func (q *WorkerQueue) submit(job worker.Job) error {
	err := q.pool.Submit(job)
	if err != nil {
		q.onFailure.Report(job.Name(), jobKey(job), err)
	}
	return err
}

func jobKey(job worker.Job) string {
	if k, ok := job.(worker.Keyed); ok {
		return k.Key()
	}
	return ""
}
