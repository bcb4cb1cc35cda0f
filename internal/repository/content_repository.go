package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jemert1992/socialcontrol/internal/models"
)

const contentColumns = `id, filename, original_filename, file_path, content_type, caption, hashtags, platforms, scheduled_time, status, created_at, posted_at`

// ContentFilter narrows List results. A zero Status means no status filter.
type ContentFilter struct {
	Status models.ContentStatus
	Limit  int
	Offset int
}

// ContentPatch holds the fields of a partial update; nil fields are left
// untouched.
type ContentPatch struct {
	Caption       *string
	Hashtags      *string
	Platforms     *string
	ScheduledTime *time.Time
	Status        *models.ContentStatus
}

type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ContentItem, error)
	List(ctx context.Context, f ContentFilter) ([]*models.ContentItem, error)
	Count(ctx context.Context, status models.ContentStatus) (int64, error)
	ListQueue(ctx context.Context) ([]*models.ContentItem, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.ContentItem, error)
	UpdateFields(ctx context.Context, id int64, patch *ContentPatch) error
	ClaimForPosting(ctx context.Context, id int64) (bool, error)
	MarkPosted(ctx context.Context, id int64, postedAt time.Time) error
	MarkFailed(ctx context.Context, id int64) error
	Remove(ctx context.Context, id int64) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *models.ContentItem) (int64, error) {
	query := `
		INSERT INTO content_items (filename, original_filename, file_path, content_type, caption, hashtags, platforms, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		item.Filename,
		item.OriginalFilename,
		item.FilePath,
		item.ContentType,
		item.Caption,
		item.Hashtags,
		item.Platforms,
		item.ScheduledTime,
		item.Status,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_items WHERE id = $1`, contentColumns)
	row := r.db.QueryRowContext(ctx, query, id)

	item, err := scanContentItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		slog.Info(err.Error())
		return nil, err
	}

	return item, nil
}

func (r *contentRepository) List(ctx context.Context, f ContentFilter) ([]*models.ContentItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_items`, contentColumns)
	args := []interface{}{}

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(` WHERE status = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	return r.queryContentItems(ctx, query, args...)
}

func (r *contentRepository) Count(ctx context.Context, status models.ContentStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM content_items`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// ListQueue returns draft and scheduled items ordered by scheduled time.
// Items without a scheduled time are not yet schedulable and sort last.
func (r *contentRepository) ListQueue(ctx context.Context) ([]*models.ContentItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM content_items
		WHERE status IN ($1, $2)
		ORDER BY scheduled_time ASC NULLS LAST, id ASC
	`, contentColumns)

	return r.queryContentItems(ctx, query, models.StatusDraft, models.StatusScheduled)
}

func (r *contentRepository) ListDue(ctx context.Context, now time.Time) ([]*models.ContentItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM content_items
		WHERE status = $1 AND scheduled_time IS NOT NULL AND scheduled_time <= $2
		ORDER BY scheduled_time ASC, id ASC
	`, contentColumns)

	return r.queryContentItems(ctx, query, models.StatusScheduled, now)
}

func (r *contentRepository) UpdateFields(ctx context.Context, id int64, patch *ContentPatch) error {
	sets := []string{}
	args := []interface{}{}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Caption != nil {
		appendSet("caption", *patch.Caption)
	}
	if patch.Hashtags != nil {
		appendSet("hashtags", *patch.Hashtags)
	}
	if patch.Platforms != nil {
		appendSet("platforms", *patch.Platforms)
	}
	if patch.ScheduledTime != nil {
		appendSet("scheduled_time", *patch.ScheduledTime)
	}
	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE content_items SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClaimForPosting transitions a scheduled item to posting in a single
// conditional update. It reports false when another sweep already owns the
// item, which keeps concurrent invocations from double-posting.
func (r *contentRepository) ClaimForPosting(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE content_items SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, models.StatusPosting, id, models.StatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *contentRepository) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	query := `UPDATE content_items SET status = $1, posted_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, models.StatusPosted, postedAt, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) MarkFailed(ctx context.Context, id int64) error {
	query := `UPDATE content_items SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, models.StatusFailed, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM content_items WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contentRepository) queryContentItems(ctx context.Context, query string, args ...interface{}) ([]*models.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContentItem(row rowScanner) (*models.ContentItem, error) {
	var item models.ContentItem
	var caption, hashtags, platforms sql.NullString
	var scheduledTime, postedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.Filename,
		&item.OriginalFilename,
		&item.FilePath,
		&item.ContentType,
		&caption,
		&hashtags,
		&platforms,
		&scheduledTime,
		&item.Status,
		&item.CreatedAt,
		&postedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Caption = caption.String
	item.Hashtags = hashtags.String
	item.Platforms = platforms.String
	if scheduledTime.Valid {
		t := scheduledTime.Time
		item.ScheduledTime = &t
	}
	if postedAt.Valid {
		t := postedAt.Time
		item.PostedAt = &t
	}
	return &item, nil
}
