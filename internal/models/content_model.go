package models

import "time"

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusScheduled ContentStatus = "scheduled"
	StatusPosting   ContentStatus = "posting"
	StatusPosted    ContentStatus = "posted"
	StatusFailed    ContentStatus = "failed"
)

const (
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
)

type ContentItem struct {
	ID               int64         `db:"id" json:"id"`
	Filename         string        `db:"filename" json:"filename"`
	OriginalFilename string        `db:"original_filename" json:"original_filename"`
	FilePath         string        `db:"file_path" json:"file_path"`
	ContentType      string        `db:"content_type" json:"content_type"` // image or video
	Caption          string        `db:"caption" json:"caption"`
	Hashtags         string        `db:"hashtags" json:"hashtags"`
	Platforms        string        `db:"platforms" json:"platforms"` // JSON-encoded list
	ScheduledTime    *time.Time    `db:"scheduled_time" json:"scheduled_time"`
	Status           ContentStatus `db:"status" json:"status"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	PostedAt         *time.Time    `db:"posted_at" json:"posted_at"`
}

func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPosting, StatusPosted, StatusFailed:
		return true
	}
	return false
}

// transitions is the full lifecycle table. posted is terminal; failed items
// may only leave through an explicit re-schedule.
var transitions = map[ContentStatus][]ContentStatus{
	StatusDraft:     {StatusScheduled, StatusFailed},
	StatusScheduled: {StatusPosting, StatusFailed},
	StatusPosting:   {StatusPosted, StatusFailed},
	StatusFailed:    {StatusScheduled},
	StatusPosted:    {},
}

func (s ContentStatus) CanTransitionTo(next ContentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
