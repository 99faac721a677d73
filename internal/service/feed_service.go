package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"feedbox/internal/ingest"
	"feedbox/internal/logger"
	"feedbox/internal/model"
	"feedbox/internal/repository"
)

// Kicker triggers an immediate ingestion run outside the sweep cycle.
type Kicker interface {
	Kick(ctx context.Context, feedID int64) (ingest.Summary, error)
}

type FeedService interface {
	List(ctx context.Context) ([]model.Feed, error)
	Get(ctx context.Context, id int64) (model.Feed, error)
	Add(ctx context.Context, feedURL string) (model.Feed, error)
	Unsubscribe(ctx context.Context, id int64) (model.Feed, error)
	SetReadState(ctx context.Context, id int64, isRead bool) (model.Feed, error)
}

type feedService struct {
	feeds    repository.FeedRepository
	articles repository.ArticleRepository
	kicker   Kicker
}

func NewFeedService(feeds repository.FeedRepository, articles repository.ArticleRepository, kicker Kicker) FeedService {
	return &feedService{feeds: feeds, articles: articles, kicker: kicker}
}

func (s *feedService) List(ctx context.Context) ([]model.Feed, error) {
	return s.feeds.ListSubscribed(ctx)
}

func (s *feedService) Get(ctx context.Context, id int64) (model.Feed, error) {
	feed, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Feed{}, ErrNotFound
		}
		return model.Feed{}, fmt.Errorf("get feed: %w", err)
	}
	return feed, nil
}

// Add subscribes a feed URL. The URL uniquely identifies a feed: an
// already-subscribed URL returns the existing feed as-is, an unsubscribed
// one is re-subscribed, keeping its articles and read state. Ingestion is
// kicked off out of band; the caller never waits on the network.
func (s *feedService) Add(ctx context.Context, feedURL string) (model.Feed, error) {
	trimmedURL := strings.TrimSpace(feedURL)
	if !isValidURL(trimmedURL) {
		return model.Feed{}, ErrInvalid
	}

	existing, err := s.feeds.FindByURL(ctx, trimmedURL)
	if err != nil {
		return model.Feed{}, fmt.Errorf("check feed url: %w", err)
	}
	if existing != nil {
		if existing.IsSubscribed {
			return *existing, nil
		}
		if err := s.feeds.SetSubscribed(ctx, existing.ID, true); err != nil {
			return model.Feed{}, fmt.Errorf("resubscribe feed: %w", err)
		}
		existing.IsSubscribed = true
		s.kick(existing.ID)
		return *existing, nil
	}

	created, err := s.feeds.Create(ctx, model.Feed{
		URL:          trimmedURL,
		Title:        trimmedURL,
		IsSubscribed: true,
	})
	if err != nil {
		return model.Feed{}, err
	}
	s.kick(created.ID)
	return created, nil
}

func (s *feedService) Unsubscribe(ctx context.Context, id int64) (model.Feed, error) {
	feed, err := s.Get(ctx, id)
	if err != nil {
		return model.Feed{}, err
	}
	if err := s.feeds.SetSubscribed(ctx, id, false); err != nil {
		return model.Feed{}, fmt.Errorf("unsubscribe feed: %w", err)
	}
	feed.IsSubscribed = false
	return feed, nil
}

// SetReadState flips every article of the feed in one statement; readers
// never observe a half-marked feed.
func (s *feedService) SetReadState(ctx context.Context, id int64, isRead bool) (model.Feed, error) {
	feed, err := s.Get(ctx, id)
	if err != nil {
		return model.Feed{}, err
	}
	if err := s.articles.SetFeedReadState(ctx, id, isRead); err != nil {
		return model.Feed{}, err
	}
	return feed, nil
}

func (s *feedService) kick(feedID int64) {
	if s.kicker == nil {
		return
	}
	go func() {
		if _, err := s.kicker.Kick(context.Background(), feedID); err != nil && !errors.Is(err, ingest.ErrInFlight) {
			logger.Warn("initial ingest failed", "module", "service", "action", "kick", "resource", "feed", "result", "failed", "feed_id", feedID, "error", err)
		}
	}()
}

func isValidURL(value string) bool {
	parsed, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
