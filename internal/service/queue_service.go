package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jemert1992/socialcontrol/internal/models"
	"github.com/jemert1992/socialcontrol/internal/repository"
	"github.com/jemert1992/socialcontrol/internal/transfer"
)

// QueueService owns the content lifecycle: the queue listing, the due-item
// sweep, and the manual one-off publish path.
type QueueService interface {
	Listing(ctx context.Context) ([]*models.ContentItem, error)
	ProcessDue(ctx context.Context, now time.Time) ([]*transfer.QueueOutcome, error)
	SimulatePost(ctx context.Context, id int64, platforms []string) ([]*transfer.SimulatedPostResult, *models.ContentItem, error)
}

type queueService struct {
	cr       repository.ContentRepository
	notifier DeploymentNotifier
}

func NewQueueService(cr repository.ContentRepository, notifier DeploymentNotifier) QueueService {
	return &queueService{cr: cr, notifier: notifier}
}

func (s *queueService) Listing(ctx context.Context) ([]*models.ContentItem, error) {
	return s.cr.ListQueue(ctx)
}

// ProcessDue advances every scheduled item whose time has passed. Items are
// claimed one at a time with a conditional update, notified sequentially, and
// finalized before the next item is touched, so one item's failure never
// blocks the rest and a crash mid-batch leaves committed transitions intact.
func (s *queueService) ProcessDue(ctx context.Context, now time.Time) ([]*transfer.QueueOutcome, error) {
	due, err := s.cr.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	outcomes := make([]*transfer.QueueOutcome, 0, len(due))
	for _, item := range due {
		claimed, err := s.cr.ClaimForPosting(ctx, item.ID)
		if err != nil {
			slog.Error("claim failed", "content_id", item.ID, "error", err)
			s.markFailed(ctx, item.ID)
			outcomes = append(outcomes, failedOutcome(item, 0, fmt.Sprintf("claim failed: %v", err)))
			continue
		}
		if !claimed {
			// Another invocation owns this item.
			continue
		}

		outcomes = append(outcomes, s.processClaimed(ctx, item, now))
	}
	return outcomes, nil
}

func (s *queueService) processClaimed(ctx context.Context, item *models.ContentItem, now time.Time) *transfer.QueueOutcome {
	payload := &DeploymentPayload{
		ContentID:        item.ID,
		Filename:         item.Filename,
		FilePath:         item.FilePath,
		ContentType:      item.ContentType,
		Caption:          item.Caption,
		OriginalFilename: item.OriginalFilename,
		ScheduledTime:    item.ScheduledTime,
	}

	result, err := s.notifier.Notify(ctx, payload)
	if err != nil {
		slog.Error("webhook unreachable", "content_id", item.ID, "error", err)
		s.markFailed(ctx, item.ID)
		return failedOutcome(item, 0, err.Error())
	}
	if !result.Success {
		slog.Info("webhook rejected item", "content_id", item.ID, "status_code", result.StatusCode)
		s.markFailed(ctx, item.ID)
		return failedOutcome(item, result.StatusCode, fmt.Sprintf("webhook returned status %d", result.StatusCode))
	}

	if err := s.cr.MarkPosted(ctx, item.ID, now); err != nil {
		slog.Error("could not finalize item", "content_id", item.ID, "error", err)
		s.markFailed(ctx, item.ID)
		return failedOutcome(item, result.StatusCode, fmt.Sprintf("could not persist posted state: %v", err))
	}

	postedAt := now
	return &transfer.QueueOutcome{
		ContentID:         item.ID,
		Filename:          item.Filename,
		Caption:           item.Caption,
		ScheduledTime:     item.ScheduledTime,
		Status:            models.StatusPosted,
		PostedAt:          &postedAt,
		WebhookStatusCode: result.StatusCode,
	}
}

func (s *queueService) markFailed(ctx context.Context, id int64) {
	if err := s.cr.MarkFailed(ctx, id); err != nil {
		slog.Error("could not mark item failed", "content_id", id, "error", err)
	}
}

func failedOutcome(item *models.ContentItem, statusCode int, detail string) *transfer.QueueOutcome {
	return &transfer.QueueOutcome{
		ContentID:         item.ID,
		Filename:          item.Filename,
		Caption:           item.Caption,
		ScheduledTime:     item.ScheduledTime,
		Status:            models.StatusFailed,
		WebhookStatusCode: statusCode,
		Error:             detail,
	}
}

// SimulatePost produces synthetic per-platform results without contacting the
// webhook and moves the item straight to posted.
func (s *queueService) SimulatePost(ctx context.Context, id int64, platforms []string) ([]*transfer.SimulatedPostResult, *models.ContentItem, error) {
	item, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	results := make([]*transfer.SimulatedPostResult, 0, len(platforms))
	for _, platform := range platforms {
		results = append(results, &transfer.SimulatedPostResult{
			Platform: platform,
			Status:   "success",
			Message:  fmt.Sprintf("Posted to %s successfully (simulated)", platform),
			PostID:   fmt.Sprintf("sim_%s", uuid.NewString()),
		})
	}

	if err := s.cr.MarkPosted(ctx, item.ID, time.Now().UTC()); err != nil {
		return nil, nil, err
	}

	updated, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return results, updated, nil
}
