package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"feedbox/internal/ingest"
	"feedbox/internal/model"
	"feedbox/internal/repository"
	"feedbox/internal/repository/testutil"
	"feedbox/internal/scheduler"

	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	mu     sync.Mutex
	calls  []int64
	errors map[int64]error
}

func (f *fakeEngine) Ingest(ctx context.Context, feedID int64) (ingest.Summary, error) {
	f.mu.Lock()
	f.calls = append(f.calls, feedID)
	f.mu.Unlock()
	if err, ok := f.errors[feedID]; ok {
		return ingest.Summary{}, err
	}
	return ingest.Summary{FeedID: feedID, NewArticles: 1}, nil
}

func (f *fakeEngine) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestRefreshAll_IngestsAllSubscribed(t *testing.T) {
	db := testutil.NewTestDB(t)
	feeds := repository.NewFeedRepository(db)

	testutil.SeedFeed(t, db, model.Feed{URL: "u1", IsSubscribed: true})
	testutil.SeedFeed(t, db, model.Feed{URL: "u2", IsSubscribed: true})
	unsubID := testutil.SeedFeed(t, db, model.Feed{URL: "u3", IsSubscribed: true})
	require.NoError(t, feeds.SetSubscribed(context.Background(), unsubID, false))

	engine := &fakeEngine{}
	s := scheduler.New(feeds, engine, time.Hour, 4)

	require.NoError(t, s.RefreshAll(context.Background()))
	require.Equal(t, 2, engine.callCount())

	engine.mu.Lock()
	defer engine.mu.Unlock()
	require.NotContains(t, engine.calls, unsubID)
}

func TestRefreshAll_AggregatesErrors(t *testing.T) {
	db := testutil.NewTestDB(t)
	feeds := repository.NewFeedRepository(db)

	badID := testutil.SeedFeed(t, db, model.Feed{URL: "u1", IsSubscribed: true})
	testutil.SeedFeed(t, db, model.Feed{URL: "u2", IsSubscribed: true})

	engine := &fakeEngine{errors: map[int64]error{badID: errors.New("fetch blew up")}}
	s := scheduler.New(feeds, engine, time.Hour, 4)

	err := s.RefreshAll(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetch blew up")
	require.Equal(t, 2, engine.callCount())
}

func TestRefreshAll_SkipsInFlight(t *testing.T) {
	db := testutil.NewTestDB(t)
	feeds := repository.NewFeedRepository(db)

	busyID := testutil.SeedFeed(t, db, model.Feed{URL: "u1", IsSubscribed: true})

	engine := &fakeEngine{errors: map[int64]error{busyID: ingest.ErrInFlight}}
	s := scheduler.New(feeds, engine, time.Hour, 4)

	require.NoError(t, s.RefreshAll(context.Background()))
}

func TestKick_BypassesDueCheck(t *testing.T) {
	db := testutil.NewTestDB(t)
	feeds := repository.NewFeedRepository(db)

	recent := time.Now().UTC()
	feedID := testutil.SeedFeed(t, db, model.Feed{URL: "u1", IsSubscribed: true, FetchedAt: &recent})

	engine := &fakeEngine{}
	s := scheduler.New(feeds, engine, time.Hour, 1)

	summary, err := s.Kick(context.Background(), feedID)
	require.NoError(t, err)
	require.Equal(t, feedID, summary.FeedID)
	require.Equal(t, 1, engine.callCount())
}

type blockingEngine struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingEngine) Ingest(ctx context.Context, feedID int64) (ingest.Summary, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
		return ingest.Summary{FeedID: feedID}, nil
	case <-ctx.Done():
		return ingest.Summary{}, ctx.Err()
	}
}

func TestKick_RespectsWorkerBound(t *testing.T) {
	db := testutil.NewTestDB(t)
	feeds := repository.NewFeedRepository(db)

	firstID := testutil.SeedFeed(t, db, model.Feed{URL: "u1", IsSubscribed: true})
	secondID := testutil.SeedFeed(t, db, model.Feed{URL: "u2", IsSubscribed: true})

	engine := &blockingEngine{started: make(chan struct{}), release: make(chan struct{})}
	s := scheduler.New(feeds, engine, time.Hour, 1)

	go func() {
		_, _ = s.Kick(context.Background(), firstID)
	}()
	<-engine.started

	// The single worker slot is occupied, so a second kick blocks until
	// its context gives up.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := s.Kick(ctx, secondID)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(engine.release)
}

func TestStop_CancelsKickedIngestion(t *testing.T) {
	db := testutil.NewTestDB(t)
	feeds := repository.NewFeedRepository(db)

	feedID := testutil.SeedFeed(t, db, model.Feed{URL: "u1", IsSubscribed: true})

	engine := &blockingEngine{started: make(chan struct{}), release: make(chan struct{})}
	s := scheduler.New(feeds, engine, time.Hour, 1)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Kick(context.Background(), feedID)
		errCh <- err
	}()
	<-engine.started

	s.Stop()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("kick did not observe shutdown")
	}
}

func TestStartStop(t *testing.T) {
	db := testutil.NewTestDB(t)
	feeds := repository.NewFeedRepository(db)

	// Fetched moments ago, so only the startup refresh pass (not a due
	// check) can explain an ingestion.
	recent := time.Now().UTC()
	testutil.SeedFeed(t, db, model.Feed{URL: "u1", IsSubscribed: true, FetchedAt: &recent})

	engine := &fakeEngine{}
	s := scheduler.New(feeds, engine, time.Hour, 2)

	s.Start()
	require.Eventually(t, func() bool {
		return engine.callCount() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	s.Stop()
}
