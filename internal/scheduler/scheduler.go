// Package scheduler decides when subscribed feeds are due and hands them
// to the ingestion engine.
package scheduler

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"

	"feedbox/internal/ingest"
	"feedbox/internal/logger"
	"feedbox/internal/model"
	"feedbox/internal/repository"
)

const sweepInterval = time.Minute

// Ingester is the part of the engine the scheduler needs.
type Ingester interface {
	Ingest(ctx context.Context, feedID int64) (ingest.Summary, error)
}

type Scheduler struct {
	feeds    repository.FeedRepository
	engine   Ingester
	interval time.Duration
	sem      *semaphore.Weighted

	// baseCtx bounds every ingestion the scheduler triggers, kicked ones
	// included; Stop cancels it.
	baseCtx    context.Context
	baseCancel context.CancelFunc
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

func New(feeds repository.FeedRepository, engine Ingester, interval time.Duration, workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		feeds:      feeds,
		engine:     engine,
		interval:   interval,
		sem:        semaphore.NewWeighted(int64(workers)),
		baseCtx:    ctx,
		baseCancel: cancel,
		stopCh:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "sweep", "resource", "feed", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

func (s *Scheduler) Stop() {
	s.baseCancel()
	close(s.stopCh)
	s.wg.Wait()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "sweep", "resource", "feed", "result", "ok")
}

// Kick ingests one feed immediately, bypassing the due check. It takes a
// worker-pool slot like any scheduled run and is cancelled by Stop. Used
// after a subscription so the first articles show up without waiting a
// sweep.
func (s *Scheduler) Kick(ctx context.Context, feedID int64) (ingest.Summary, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return ingest.Summary{}, err
	}
	defer s.sem.Release(1)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.baseCtx, cancel)
	defer stop()

	return s.engine.Ingest(runCtx, feedID)
}

// RefreshAll ingests every subscribed feed regardless of due time and
// aggregates the failures. In-flight feeds are skipped silently.
func (s *Scheduler) RefreshAll(ctx context.Context) error {
	feeds, err := s.feeds.ListSubscribed(ctx)
	if err != nil {
		return err
	}

	var (
		mu     sync.Mutex
		result *multierror.Error
		wg     sync.WaitGroup
	)
	for _, feed := range feeds {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func(feed model.Feed) {
			defer wg.Done()
			defer s.sem.Release(1)
			if _, err := s.engine.Ingest(ctx, feed.ID); err != nil && !errors.Is(err, ingest.ErrInFlight) {
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}
		}(feed)
	}
	wg.Wait()

	return result.ErrorOrNil()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Startup pass refreshes everything: the process may have been down
	// past many due times.
	if err := s.RefreshAll(s.baseCtx); err != nil && s.baseCtx.Err() == nil {
		logger.Warn("startup refresh failed", "module", "scheduler", "action", "refresh_all", "resource", "feed", "result", "failed", "error", err)
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(s.baseCtx, sweepInterval*2)
	defer cancel()

	feeds, err := s.feeds.ListSubscribed(ctx)
	if err != nil {
		logger.Error("sweep list feeds failed", "module", "scheduler", "action", "sweep", "resource", "feed", "result", "failed", "error", err)
		return
	}

	now := time.Now()
	var wg sync.WaitGroup
	for _, feed := range feeds {
		if !s.due(feed, now) {
			continue
		}
		if err := s.sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(feed model.Feed) {
			defer wg.Done()
			defer s.sem.Release(1)
			if _, err := s.engine.Ingest(ctx, feed.ID); err != nil && !errors.Is(err, ingest.ErrInFlight) {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("scheduled ingest failed", "module", "scheduler", "action", "ingest", "resource", "feed", "result", "failed", "feed_id", feed.ID, "error", err)
			}
		}(feed)
	}
	wg.Wait()
}

func (s *Scheduler) due(feed model.Feed, now time.Time) bool {
	if feed.FetchedAt == nil {
		return true
	}
	return now.Sub(*feed.FetchedAt) >= s.interval+splay(feed.ID, s.interval)
}

// splay staggers due times so feeds do not bunch into the same sweep.
// Deterministic per feed.
func splay(feedID int64, interval time.Duration) time.Duration {
	window := interval / 10
	if window <= 0 {
		return 0
	}
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(feedID >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	return time.Duration(h.Sum64() % uint64(window))
}
