package transfer

import (
	"time"

	"github.com/jemert1992/socialcontrol/internal/models"
)

// QueueOutcome records how a single due item fared during a processing pass.
type QueueOutcome struct {
	ContentID         int64                `json:"content_id"`
	Filename          string               `json:"filename"`
	Caption           string               `json:"caption,omitempty"`
	ScheduledTime     *time.Time           `json:"scheduled_time,omitempty"`
	Status            models.ContentStatus `json:"status"`
	PostedAt          *time.Time           `json:"posted_at,omitempty"`
	WebhookStatusCode int                  `json:"webhook_status_code,omitempty"`
	Error             string               `json:"error,omitempty"`
}

// SimulatedPostResult is the synthetic per-platform result of the manual
// one-off publish path.
type SimulatedPostResult struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	PostID   string `json:"post_id"`
}
