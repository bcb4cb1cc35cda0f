package transfer

import (
	"time"

	"github.com/jemert1992/socialcontrol/internal/models"
)

// ContentUpload carries the optional form fields accompanying an upload.
type ContentUpload struct {
	Caption       string
	Hashtags      string
	Platforms     string
	ScheduledTime string
	Status        string
}

// ContentPatch is a partial update; absent fields are left unchanged.
type ContentPatch struct {
	Caption       *string   `json:"caption"`
	Hashtags      *string   `json:"hashtags"`
	Platforms     *[]string `json:"platforms"`
	ScheduledTime *string   `json:"scheduled_time"`
	Status        *string   `json:"status"`
}

type ContentResponse struct {
	ID               int64                `json:"id"`
	Filename         string               `json:"filename"`
	OriginalFilename string               `json:"original_filename"`
	FilePath         string               `json:"file_path"`
	ContentType      string               `json:"content_type"`
	Caption          string               `json:"caption"`
	Hashtags         string               `json:"hashtags"`
	Platforms        string               `json:"platforms"`
	ScheduledTime    *time.Time           `json:"scheduled_time"`
	Status           models.ContentStatus `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
	PostedAt         *time.Time           `json:"posted_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	Total      int64 `json:"total"`
}

func ToContentResponse(item *models.ContentItem) *ContentResponse {
	return &ContentResponse{
		ID:               item.ID,
		Filename:         item.Filename,
		OriginalFilename: item.OriginalFilename,
		FilePath:         item.FilePath,
		ContentType:      item.ContentType,
		Caption:          item.Caption,
		Hashtags:         item.Hashtags,
		Platforms:        item.Platforms,
		ScheduledTime:    item.ScheduledTime,
		Status:           item.Status,
		CreatedAt:        item.CreatedAt,
		PostedAt:         item.PostedAt,
	}
}

func ToContentResponses(items []*models.ContentItem) []*ContentResponse {
	responses := make([]*ContentResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToContentResponse(item))
	}
	return responses
}
