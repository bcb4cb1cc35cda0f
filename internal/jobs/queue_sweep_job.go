package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/jemert1992/socialcontrol/internal/models"
	"github.com/jemert1992/socialcontrol/internal/service"
)

// QueueSweepJob is the periodic trigger for due-item processing. Overlap
// safety comes from the per-item claim in the repository, not from this job.
type QueueSweepJob struct {
	qs service.QueueService
}

func NewQueueSweepJob(qs service.QueueService) *QueueSweepJob {
	return &QueueSweepJob{qs: qs}
}

func (j *QueueSweepJob) ProcessQueue() {
	ctx := context.Background()

	outcomes, err := j.qs.ProcessDue(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("queue sweep failed", "error", err)
		return
	}
	if len(outcomes) == 0 {
		return
	}

	var posted, failed int
	for _, outcome := range outcomes {
		if outcome.Status == models.StatusPosted {
			posted++
		} else {
			failed++
		}
	}
	slog.Info("queue sweep finished", "processed", len(outcomes), "posted", posted, "failed", failed)
}
