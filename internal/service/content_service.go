package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/jemert1992/socialcontrol/internal/models"
	"github.com/jemert1992/socialcontrol/internal/repository"
	"github.com/jemert1992/socialcontrol/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var extensionKinds = map[string]string{
	"png":  models.ContentTypeImage,
	"jpg":  models.ContentTypeImage,
	"jpeg": models.ContentTypeImage,
	"gif":  models.ContentTypeImage,
	"mp4":  models.ContentTypeVideo,
	"mov":  models.ContentTypeVideo,
	"avi":  models.ContentTypeVideo,
}

var scheduledTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type ContentService interface {
	Upload(ctx context.Context, up *transfer.ContentUpload, originalFilename string, data []byte) (*models.ContentItem, error)
	List(ctx context.Context, status string, page, perPage int) ([]*models.ContentItem, *transfer.Pagination, error)
	Get(ctx context.Context, id int64) (*models.ContentItem, error)
	Update(ctx context.Context, id int64, patch *transfer.ContentPatch) (*models.ContentItem, error)
	Delete(ctx context.Context, id int64) error
}

type contentService struct {
	cr      repository.ContentRepository
	storage MediaStorage
}

func NewContentService(cr repository.ContentRepository, storage MediaStorage) ContentService {
	return &contentService{cr: cr, storage: storage}
}

func (s *contentService) Upload(ctx context.Context, up *transfer.ContentUpload, originalFilename string, data []byte) (*models.ContentItem, error) {
	if originalFilename == "" {
		return nil, fmt.Errorf("no file selected: %w", ErrInvalidInput)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalFilename), "."))
	kind, ok := extensionKinds[ext]
	if !ok {
		return nil, fmt.Errorf("file type .%s is not allowed: %w", ext, ErrInvalidInput)
	}

	// Sniff the actual content; a recognized signature outside the allow
	// list is rejected regardless of the claimed extension.
	contentType := "application/octet-stream"
	if matched, err := filetype.Match(data); err == nil && matched != types.Unknown {
		if _, ok := extensionKinds[matched.Extension]; !ok {
			return nil, fmt.Errorf("file content of type %s is not allowed: %w", matched.Extension, ErrInvalidInput)
		}
		contentType = matched.MIME.Value
	}

	scheduledTime, err := parseScheduledTime(up.ScheduledTime)
	if err != nil {
		return nil, err
	}

	status := models.StatusDraft
	if up.Status != "" {
		status = models.ContentStatus(up.Status)
		switch status {
		case models.StatusDraft:
		case models.StatusScheduled:
			if scheduledTime == nil {
				return nil, fmt.Errorf("scheduled_time is required for scheduled content: %w", ErrInvalidInput)
			}
		default:
			return nil, fmt.Errorf("status %s is not allowed on upload: %w", status, ErrInvalidInput)
		}
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	storedName := fmt.Sprintf("%s.%s", key, ext)

	path, err := s.storage.Save(ctx, storedName, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("error saving file: %w", err)
	}

	item := &models.ContentItem{
		Filename:         storedName,
		OriginalFilename: originalFilename,
		FilePath:         path,
		ContentType:      kind,
		Caption:          up.Caption,
		Hashtags:         up.Hashtags,
		Platforms:        up.Platforms,
		ScheduledTime:    scheduledTime,
		Status:           status,
	}

	id, err := s.cr.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating content record: %w", err)
	}

	return s.cr.GetByID(ctx, id)
}

func (s *contentService) List(ctx context.Context, status string, page, perPage int) ([]*models.ContentItem, *transfer.Pagination, error) {
	var statusFilter models.ContentStatus
	if status != "" {
		statusFilter = models.ContentStatus(status)
		if !statusFilter.Valid() {
			return nil, nil, fmt.Errorf("unknown status %q: %w", status, ErrInvalidInput)
		}
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	total, err := s.cr.Count(ctx, statusFilter)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.cr.List(ctx, repository.ContentFilter{
		Status: statusFilter,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	pagination := &transfer.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Total:      total,
	}
	return items, pagination, nil
}

func (s *contentService) Get(ctx context.Context, id int64) (*models.ContentItem, error) {
	return s.cr.GetByID(ctx, id)
}

func (s *contentService) Update(ctx context.Context, id int64, patch *transfer.ContentPatch) (*models.ContentItem, error) {
	item, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	repoPatch := &repository.ContentPatch{
		Caption:  patch.Caption,
		Hashtags: patch.Hashtags,
	}

	if patch.Platforms != nil {
		encoded, err := json.Marshal(*patch.Platforms)
		if err != nil {
			return nil, fmt.Errorf("invalid platforms: %w", ErrInvalidInput)
		}
		platforms := string(encoded)
		repoPatch.Platforms = &platforms
	}

	scheduledTime := item.ScheduledTime
	if patch.ScheduledTime != nil {
		parsed, err := parseScheduledTime(*patch.ScheduledTime)
		if err != nil {
			return nil, err
		}
		if parsed == nil {
			return nil, fmt.Errorf("scheduled_time must not be empty: %w", ErrInvalidInput)
		}
		scheduledTime = parsed
		repoPatch.ScheduledTime = parsed
	}

	if patch.Status != nil {
		status := models.ContentStatus(*patch.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("unknown status %q: %w", *patch.Status, ErrInvalidInput)
		}
		if status != item.Status {
			if !item.Status.CanTransitionTo(status) {
				return nil, fmt.Errorf("cannot transition from %s to %s: %w", item.Status, status, ErrInvalidInput)
			}
			if status == models.StatusScheduled && scheduledTime == nil {
				return nil, fmt.Errorf("scheduled_time is required before scheduling: %w", ErrInvalidInput)
			}
			repoPatch.Status = &status
		}
	}

	if err := s.cr.UpdateFields(ctx, id, repoPatch); err != nil {
		return nil, err
	}
	return s.cr.GetByID(ctx, id)
}

func (s *contentService) Delete(ctx context.Context, id int64) error {
	item, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, item.Filename); err != nil {
		return fmt.Errorf("error removing stored file: %w", err)
	}

	return s.cr.Remove(ctx, id)
}

func parseScheduledTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range scheduledTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid scheduled_time %q: %w", value, ErrInvalidInput)
}
