package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"feedbox/internal/model"
	"feedbox/internal/snowflake"
)

// ArticleEntry is one normalized entry handed over by ingestion for
// persistence.
type ArticleEntry struct {
	GUID  string
	Title string
	URL   string
}

type ArticleRepository interface {
	GetByID(ctx context.Context, id int64) (model.Article, error)
	ListByRead(ctx context.Context, isRead bool) ([]model.Article, error)
	ListByFeed(ctx context.Context, feedID int64) ([]model.Article, error)
	ListFlags(ctx context.Context) ([]model.ArticleFlag, error)
	ListGUIDsByFeed(ctx context.Context, feedID int64) ([]string, error)
	UpsertBatch(ctx context.Context, feedID int64, entries []ArticleEntry) error
	SetReadState(ctx context.Context, id int64, isRead bool) error
	SetFeedReadState(ctx context.Context, feedID int64, isRead bool) error
	CountByFeed(ctx context.Context, feedID int64) (int, error)
}

type articleRepository struct {
	db dbtx
}

func NewArticleRepository(db dbtx) ArticleRepository {
	return &articleRepository{db: db}
}

const articleJoinQuery = `
	SELECT a.id, a.feed_id, a.guid, a.title, a.url, a.is_read, a.created_at, a.updated_at,
	       f.id, f.url, f.title, f.fetched_at, f.is_subscribed
	FROM articles a
	INNER JOIN feeds f ON a.feed_id = f.id
`

func (r *articleRepository) GetByID(ctx context.Context, id int64) (model.Article, error) {
	row := r.db.QueryRowContext(ctx, articleJoinQuery+` WHERE a.id = ?`, id)
	return scanArticle(row)
}

func (r *articleRepository) ListByRead(ctx context.Context, isRead bool) ([]model.Article, error) {
	rows, err := r.db.QueryContext(
		ctx,
		articleJoinQuery+` WHERE a.is_read = ? ORDER BY a.id DESC`,
		boolToInt(isRead),
	)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}

	return articles, nil
}

func (r *articleRepository) ListByFeed(ctx context.Context, feedID int64) ([]model.Article, error) {
	rows, err := r.db.QueryContext(
		ctx,
		articleJoinQuery+` WHERE a.feed_id = ? ORDER BY a.id DESC`,
		feedID,
	)
	if err != nil {
		return nil, fmt.Errorf("list feed articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feed articles: %w", err)
	}

	return articles, nil
}

func (r *articleRepository) ListFlags(ctx context.Context) ([]model.ArticleFlag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, feed_id, is_read FROM articles ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list article flags: %w", err)
	}
	defer rows.Close()

	var flags []model.ArticleFlag
	for rows.Next() {
		var flag model.ArticleFlag
		var readInt int
		if err := rows.Scan(&flag.ID, &flag.FeedID, &readInt); err != nil {
			return nil, err
		}
		flag.IsRead = readInt == 1
		flags = append(flags, flag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate article flags: %w", err)
	}

	return flags, nil
}

func (r *articleRepository) ListGUIDsByFeed(ctx context.Context, feedID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT guid FROM articles WHERE feed_id = ?`, feedID)
	if err != nil {
		return nil, fmt.Errorf("list article guids: %w", err)
	}
	defer rows.Close()

	var guids []string
	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return nil, err
		}
		guids = append(guids, guid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate article guids: %w", err)
	}

	return guids, nil
}

// UpsertBatch inserts the entries in order. Rows whose (feed_id, guid)
// already exists keep their id and is_read flag but take the incoming title
// and url.
func (r *articleRepository) UpsertBatch(ctx context.Context, feedID int64, entries []ArticleEntry) error {
	now := formatTime(time.Now())
	for _, entry := range entries {
		_, err := r.db.ExecContext(
			ctx,
			`INSERT INTO articles (id, feed_id, guid, title, url, is_read, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, 0, ?, ?)
			 ON CONFLICT(feed_id, guid) DO UPDATE SET
			   title = excluded.title,
			   url = excluded.url,
			   updated_at = excluded.updated_at
			 WHERE title != excluded.title OR url != excluded.url`,
			snowflake.NextID(),
			feedID,
			entry.GUID,
			entry.Title,
			entry.URL,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("upsert article %q: %w", entry.GUID, err)
		}
	}
	return nil
}

func (r *articleRepository) SetReadState(ctx context.Context, id int64, isRead bool) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE articles SET is_read = ?, updated_at = ? WHERE id = ?`,
		boolToInt(isRead),
		formatTime(time.Now()),
		id,
	)
	if err != nil {
		return fmt.Errorf("set article read state: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *articleRepository) SetFeedReadState(ctx context.Context, feedID int64, isRead bool) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE articles SET is_read = ?, updated_at = ? WHERE feed_id = ? AND is_read != ?`,
		boolToInt(isRead),
		formatTime(time.Now()),
		feedID,
		boolToInt(isRead),
	)
	if err != nil {
		return fmt.Errorf("set feed read state: %w", err)
	}
	return nil
}

func (r *articleRepository) CountByFeed(ctx context.Context, feedID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles WHERE feed_id = ?`, feedID).Scan(&count)
	return count, err
}

func scanArticle(scanner interface {
	Scan(dest ...interface{}) error
}) (model.Article, error) {
	var a model.Article
	var feed model.Feed
	var readInt int
	var createdAt, updatedAt string
	var feedFetchedAt sql.NullString
	var feedSubscribedInt int

	err := scanner.Scan(
		&a.ID, &a.FeedID, &a.GUID, &a.Title, &a.URL, &readInt, &createdAt, &updatedAt,
		&feed.ID, &feed.URL, &feed.Title, &feedFetchedAt, &feedSubscribedInt,
	)
	if err != nil {
		return model.Article{}, err
	}

	a.IsRead = readInt == 1
	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Article{}, fmt.Errorf("parse article created_at: %w", err)
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.Article{}, fmt.Errorf("parse article updated_at: %w", err)
	}
	if feedFetchedAt.Valid {
		feed.FetchedAt = parseTimePtr(feedFetchedAt.String)
	}
	feed.IsSubscribed = feedSubscribedInt == 1
	a.Feed = &feed

	return a, nil
}
