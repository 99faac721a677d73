// Package ingest drives the fetch-parse-persist cycle for a single feed.
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"feedbox/internal/fetcher"
	"feedbox/internal/logger"
	"feedbox/internal/parser"
	"feedbox/internal/repository"
)

// ErrInFlight is returned when an ingestion run for the same feed has not
// finished yet. The caller is expected to skip, not queue.
var ErrInFlight = errors.New("ingestion already in progress for feed")

const runTimeout = 60 * time.Second

// Summary describes what a single ingestion run did.
type Summary struct {
	RunID       string
	FeedID      int64
	Unchanged   bool
	NewArticles int
	Updated     int
	Skipped     int
}

type Engine struct {
	db     *sql.DB
	feeds  repository.FeedRepository
	client fetcher.Client
	parser *parser.Parser

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewEngine(db *sql.DB, feeds repository.FeedRepository, client fetcher.Client) *Engine {
	return &Engine{
		db:       db,
		feeds:    feeds,
		client:   client,
		parser:   parser.New(),
		inFlight: make(map[int64]struct{}),
	}
}

// Ingest runs one fetch-parse-persist cycle for the feed. Concurrent calls
// for the same feed return ErrInFlight; different feeds proceed in
// parallel. Failures are recorded on the feed row and leave fetched_at
// untouched.
func (e *Engine) Ingest(ctx context.Context, feedID int64) (Summary, error) {
	if !e.acquire(feedID) {
		return Summary{}, ErrInFlight
	}
	defer e.release(feedID)

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	summary := Summary{RunID: uuid.NewString(), FeedID: feedID}

	feed, err := e.feeds.GetByID(ctx, feedID)
	if err != nil {
		return summary, err
	}

	result, err := e.client.Fetch(ctx, feed.URL, fetcher.Validator{
		ETag:         derefString(feed.ETag),
		LastModified: derefString(feed.LastModified),
		ContentHash:  derefString(feed.ContentHash),
	})
	if err != nil {
		e.recordError(ctx, feedID, err)
		logger.Warn("feed fetch failed", "module", "ingest", "action", "fetch", "resource", "feed", "result", "failed", "run_id", summary.RunID, "feed_id", feedID, "error", err)
		return summary, err
	}

	now := time.Now().UTC()

	if result.Status == fetcher.StatusUnchanged {
		summary.Unchanged = true
		if err := e.feeds.UpdateFetchedAt(ctx, feedID, now); err != nil {
			return summary, err
		}
		logger.Debug("feed unchanged", "module", "ingest", "action", "fetch", "resource", "feed", "result", "ok", "run_id", summary.RunID, "feed_id", feedID)
		return summary, nil
	}

	parsed, err := e.parser.Parse(result.Body)
	if err != nil {
		e.recordError(ctx, feedID, err)
		logger.Warn("feed parse failed", "module", "ingest", "action", "parse", "resource", "feed", "result", "failed", "run_id", summary.RunID, "feed_id", feedID, "error", err)
		return summary, err
	}
	summary.Skipped = parsed.Skipped

	title := parsed.Title
	if title == "" {
		title = feed.Title
	}

	entries := make([]repository.ArticleEntry, 0, len(parsed.Entries))
	for _, entry := range parsed.Entries {
		entries = append(entries, repository.ArticleEntry{
			GUID:  entry.GUID,
			Title: entry.Title,
			URL:   entry.URL,
		})
	}

	err = repository.WithTx(ctx, e.db, func(tx *sql.Tx) error {
		articles := repository.NewArticleRepository(tx)
		feeds := repository.NewFeedRepository(tx)

		existing, err := articles.ListGUIDsByFeed(ctx, feedID)
		if err != nil {
			return err
		}
		known := make(map[string]struct{}, len(existing))
		for _, guid := range existing {
			known[guid] = struct{}{}
		}
		seen := make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			if _, dup := seen[entry.GUID]; dup {
				continue
			}
			seen[entry.GUID] = struct{}{}
			if _, ok := known[entry.GUID]; ok {
				summary.Updated++
			} else {
				summary.NewArticles++
			}
		}

		if err := articles.UpsertBatch(ctx, feedID, entries); err != nil {
			return err
		}

		return feeds.UpdateMetadata(ctx, feedID, title, now, repository.FeedValidator{
			ETag:         optionalString(result.Validator.ETag),
			LastModified: optionalString(result.Validator.LastModified),
			ContentHash:  optionalString(result.Validator.ContentHash),
		})
	})
	if err != nil {
		summary.NewArticles = 0
		summary.Updated = 0
		e.recordError(ctx, feedID, err)
		return summary, err
	}

	logger.Info("feed ingested", "module", "ingest", "action", "ingest", "resource", "feed", "result", "ok", "run_id", summary.RunID, "feed_id", feedID, "new", summary.NewArticles, "updated", summary.Updated, "skipped", summary.Skipped)
	return summary, nil
}

func (e *Engine) acquire(feedID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[feedID]; busy {
		return false
	}
	e.inFlight[feedID] = struct{}{}
	return true
}

func (e *Engine) release(feedID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, feedID)
}

func (e *Engine) recordError(ctx context.Context, feedID int64, cause error) {
	msg := cause.Error()
	if err := e.feeds.UpdateErrorMessage(context.WithoutCancel(ctx), feedID, &msg); err != nil {
		logger.Error("record feed error failed", "module", "ingest", "action", "record_error", "resource", "feed", "result", "failed", "feed_id", feedID, "error", err)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
