package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feedbox/internal/model"
	"feedbox/internal/snowflake"
)

const feedColumns = `id, url, title, fetched_at, is_subscribed, etag, last_modified, content_hash, error_message, created_at, updated_at`

type FeedRepository interface {
	Create(ctx context.Context, feed model.Feed) (model.Feed, error)
	GetByID(ctx context.Context, id int64) (model.Feed, error)
	FindByURL(ctx context.Context, url string) (*model.Feed, error)
	ListSubscribed(ctx context.Context) ([]model.Feed, error)
	ListAll(ctx context.Context) ([]model.Feed, error)
	SetSubscribed(ctx context.Context, id int64, subscribed bool) error
	UpdateMetadata(ctx context.Context, id int64, title string, fetchedAt time.Time, validator FeedValidator) error
	UpdateFetchedAt(ctx context.Context, id int64, fetchedAt time.Time) error
	UpdateErrorMessage(ctx context.Context, id int64, errorMessage *string) error
}

// FeedValidator carries the conditional-request state recorded after a
// successful fetch.
type FeedValidator struct {
	ETag         *string
	LastModified *string
	ContentHash  *string
}

type feedRepository struct {
	db dbtx
}

func NewFeedRepository(db dbtx) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) Create(ctx context.Context, feed model.Feed) (model.Feed, error) {
	feed.ID = snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO feeds (id, url, title, fetched_at, is_subscribed, etag, last_modified, content_hash, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		feed.ID,
		feed.URL,
		feed.Title,
		nullableTime(feed.FetchedAt),
		boolToInt(feed.IsSubscribed),
		nullableString(feed.ETag),
		nullableString(feed.LastModified),
		nullableString(feed.ContentHash),
		nullableString(feed.ErrorMessage),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.Feed{}, fmt.Errorf("create feed: %w", err)
	}
	feed.CreatedAt = now
	feed.UpdatedAt = now
	return feed, nil
}

func (r *feedRepository) GetByID(ctx context.Context, id int64) (model.Feed, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE id = ?`, id)
	return scanFeed(row)
}

func (r *feedRepository) FindByURL(ctx context.Context, url string) (*model.Feed, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE url = ?`, url)
	feed, err := scanFeed(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find feed: %w", err)
	}
	return &feed, nil
}

func (r *feedRepository) ListSubscribed(ctx context.Context) ([]model.Feed, error) {
	return r.list(ctx, `SELECT `+feedColumns+` FROM feeds WHERE is_subscribed = 1 ORDER BY title, id`)
}

func (r *feedRepository) ListAll(ctx context.Context) ([]model.Feed, error) {
	return r.list(ctx, `SELECT `+feedColumns+` FROM feeds ORDER BY title, id`)
}

func (r *feedRepository) list(ctx context.Context, query string) ([]model.Feed, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	defer rows.Close()

	var feeds []model.Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, feed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feeds: %w", err)
	}

	return feeds, nil
}

func (r *feedRepository) SetSubscribed(ctx context.Context, id int64, subscribed bool) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE feeds SET is_subscribed = ?, updated_at = ? WHERE id = ?`,
		boolToInt(subscribed),
		formatTime(time.Now()),
		id,
	)
	return err
}

func (r *feedRepository) UpdateMetadata(ctx context.Context, id int64, title string, fetchedAt time.Time, validator FeedValidator) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE feeds SET title = ?, fetched_at = ?, etag = ?, last_modified = ?, content_hash = ?, error_message = NULL, updated_at = ? WHERE id = ?`,
		title,
		formatTime(fetchedAt),
		nullableString(validator.ETag),
		nullableString(validator.LastModified),
		nullableString(validator.ContentHash),
		formatTime(time.Now()),
		id,
	)
	return err
}

func (r *feedRepository) UpdateFetchedAt(ctx context.Context, id int64, fetchedAt time.Time) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE feeds SET fetched_at = ?, error_message = NULL, updated_at = ? WHERE id = ?`,
		formatTime(fetchedAt),
		formatTime(time.Now()),
		id,
	)
	return err
}

func (r *feedRepository) UpdateErrorMessage(ctx context.Context, id int64, errorMessage *string) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE feeds SET error_message = ?, updated_at = ? WHERE id = ?`,
		nullableString(errorMessage),
		formatTime(time.Now()),
		id,
	)
	return err
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func scanFeed(scanner interface {
	Scan(dest ...interface{}) error
}) (model.Feed, error) {
	var feed model.Feed
	var fetchedAt sql.NullString
	var subscribedInt int
	var etag sql.NullString
	var lastModified sql.NullString
	var contentHash sql.NullString
	var errorMessage sql.NullString
	var createdAt string
	var updatedAt string
	if err := scanner.Scan(
		&feed.ID,
		&feed.URL,
		&feed.Title,
		&fetchedAt,
		&subscribedInt,
		&etag,
		&lastModified,
		&contentHash,
		&errorMessage,
		&createdAt,
		&updatedAt,
	); err != nil {
		return model.Feed{}, err
	}
	feed.IsSubscribed = subscribedInt == 1
	if fetchedAt.Valid {
		feed.FetchedAt = parseTimePtr(fetchedAt.String)
	}
	if etag.Valid {
		feed.ETag = &etag.String
	}
	if lastModified.Valid {
		feed.LastModified = &lastModified.String
	}
	if contentHash.Valid {
		feed.ContentHash = &contentHash.String
	}
	if errorMessage.Valid {
		feed.ErrorMessage = &errorMessage.String
	}
	var err error
	feed.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Feed{}, fmt.Errorf("parse feed created_at: %w", err)
	}
	feed.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.Feed{}, fmt.Errorf("parse feed updated_at: %w", err)
	}
	return feed, nil
}
