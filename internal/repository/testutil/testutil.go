// Package testutil provides shared helpers for repository and service tests.
package testutil

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"feedbox/internal/db"
	"feedbox/internal/model"
	"feedbox/internal/snowflake"
)

var snowflakeOnce sync.Once

// NewTestDB opens a migrated sqlite database in a per-test temp dir.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(1); err != nil {
			t.Fatalf("init snowflake: %v", err)
		}
	})

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

// SeedFeed inserts a feed row and returns its id. Zero fields get sensible
// defaults.
func SeedFeed(t *testing.T, database *sql.DB, feed model.Feed) int64 {
	t.Helper()

	id := snowflake.NextID()
	subscribed := 0
	if feed.IsSubscribed {
		subscribed = 1
	}
	now := time.Now().UTC().Format(time.RFC3339)
	var fetchedAt interface{}
	if feed.FetchedAt != nil {
		fetchedAt = feed.FetchedAt.UTC().Format(time.RFC3339)
	}
	_, err := database.Exec(
		`INSERT INTO feeds (id, url, title, fetched_at, is_subscribed, etag, last_modified, content_hash, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, feed.URL, feed.Title, fetchedAt, subscribed,
		strPtrValue(feed.ETag), strPtrValue(feed.LastModified), strPtrValue(feed.ContentHash), strPtrValue(feed.ErrorMessage),
		now, now,
	)
	if err != nil {
		t.Fatalf("seed feed: %v", err)
	}
	return id
}

// SeedArticle inserts an article row and returns its id.
func SeedArticle(t *testing.T, database *sql.DB, article model.Article) int64 {
	t.Helper()

	id := snowflake.NextID()
	read := 0
	if article.IsRead {
		read = 1
	}
	guid := article.GUID
	if guid == "" {
		guid = fmt.Sprintf("guid-%d", id)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := database.Exec(
		`INSERT INTO articles (id, feed_id, guid, title, url, is_read, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, article.FeedID, guid, article.Title, article.URL, read, now, now,
	)
	if err != nil {
		t.Fatalf("seed article: %v", err)
	}
	return id
}

// SeedUser inserts a user row and returns its id.
func SeedUser(t *testing.T, database *sql.DB, username, passwordHash string) int64 {
	t.Helper()

	id := snowflake.NextID()
	_, err := database.Exec(
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		id, username, passwordHash, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func strPtrValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
