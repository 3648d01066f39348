package snapshot_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/fetch"
	"github.com/SscSPs/pg_console/internal/core/snapshot"
	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func strPtr(s string) *string { return &s }

type fakeSource struct {
	mu     sync.Mutex
	calls  int
	freshs []bool
	fn     func(call int) (*fetch.Raw, error)
}

func (f *fakeSource) FetchAll(_ context.Context, fresh bool) (*fetch.Raw, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.freshs = append(f.freshs, fresh)
	f.mu.Unlock()
	return f.fn(n)
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// rawWithProperty returns a store holding one property with the given name.
func rawWithProperty(name string) *fetch.Raw {
	return &fetch.Raw{
		Properties: []models.PropertyRecord{{ID: "p-" + name, Name: strPtr(name)}},
		Rooms:      []models.RoomRecord{},
		Tenants:    []models.TenantRecord{},
		Users:      []models.UserRecord{},
	}
}

var admin = &domain.Actor{ID: "admin", Role: domain.RoleAdmin, Status: domain.UserActive}

type LoaderTestSuite struct {
	suite.Suite
	src     *fakeSource
	metrics *metrics.Metrics
	now     time.Time
	clockMu sync.Mutex
}

func TestLoaderTestSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}

func (s *LoaderTestSuite) SetupTest() {
	s.src = &fakeSource{fn: func(int) (*fetch.Raw, error) { return rawWithProperty("Sunrise"), nil }}
	s.metrics = metrics.New()
	s.now = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
}

func (s *LoaderTestSuite) clock() time.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	return s.now
}

func (s *LoaderTestSuite) advance(d time.Duration) {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	s.now = s.now.Add(d)
}

func (s *LoaderTestSuite) newLoader(window time.Duration) *snapshot.Loader {
	return snapshot.NewLoader(s.src, snapshot.Config{
		MinInterval:    5 * time.Second,
		DebounceWindow: window,
		FetchTimeout:   time.Second,
	}, snapshot.WithMetrics(s.metrics), snapshot.WithClock(s.clock))
}

func (s *LoaderTestSuite) TestLoad_PublishesDataset() {
	l := s.newLoader(time.Millisecond)
	defer l.Close()

	require.NoError(s.T(), l.Load(context.Background(), admin))

	snap := l.Snapshot()
	require.Len(s.T(), snap.Data.Properties, 1)
	assert.Equal(s.T(), "Sunrise", snap.Data.Properties[0].Name)
	assert.False(s.T(), snap.Loading)
	assert.NoError(s.T(), snap.Err)
	assert.Equal(s.T(), uint64(1), snap.Generation)
	assert.Equal(s.T(), s.clock(), snap.LoadedAt)
}

func (s *LoaderTestSuite) TestLoad_IsIdempotent() {
	l := s.newLoader(time.Millisecond)
	defer l.Close()

	require.NoError(s.T(), l.Refresh(context.Background(), admin))
	first := l.Current()
	require.NoError(s.T(), l.Refresh(context.Background(), admin))
	second := l.Current()

	assert.Equal(s.T(), first.Properties, second.Properties)
	assert.Equal(s.T(), first.Rooms, second.Rooms)
	assert.Equal(s.T(), first.Tenants, second.Tenants)
}

func (s *LoaderTestSuite) TestLoad_ThrottledWithinMinInterval() {
	l := s.newLoader(time.Millisecond)
	defer l.Close()

	require.NoError(s.T(), l.Load(context.Background(), admin))
	require.NoError(s.T(), l.Load(context.Background(), admin))
	assert.Equal(s.T(), 1, s.src.Calls())
	assert.Equal(s.T(), 1.0, testutil.ToFloat64(s.metrics.Loads.WithLabelValues(metrics.LoadThrottled)))

	// refresh bypasses the throttle and the fetch cache
	require.NoError(s.T(), l.Refresh(context.Background(), admin))
	assert.Equal(s.T(), 2, s.src.Calls())
	assert.Equal(s.T(), []bool{false, true}, s.src.freshs)

	s.advance(6 * time.Second)
	require.NoError(s.T(), l.Load(context.Background(), admin))
	assert.Equal(s.T(), 3, s.src.Calls())
}

func (s *LoaderTestSuite) TestLoad_ThrottleIsPerActor() {
	l := s.newLoader(time.Millisecond)
	defer l.Close()

	other := &domain.Actor{ID: "acct", Role: domain.RoleAccountant, Status: domain.UserActive}
	require.NoError(s.T(), l.Load(context.Background(), admin))
	require.NoError(s.T(), l.Load(context.Background(), other))
	assert.Equal(s.T(), 2, s.src.Calls())
}

func (s *LoaderTestSuite) TestLoad_DebounceCollapsesCalls() {
	l := s.newLoader(50 * time.Millisecond)
	defer l.Close()

	viewer := &domain.Actor{ID: "v", Role: domain.RoleViewer, AssignedProperties: []string{"Elsewhere"}}

	var wg sync.WaitGroup
	errs := make([]error, 3)
	actors := []*domain.Actor{viewer, viewer, admin}
	for i, a := range actors {
		wg.Add(1)
		go func(i int, a *domain.Actor) {
			defer wg.Done()
			errs[i] = l.Load(context.Background(), a)
		}(i, a)
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	assert.Equal(s.T(), 1, s.src.Calls())
	for _, err := range errs {
		assert.NoError(s.T(), err)
	}
	// last caller's actor wins, so the admin sees the property
	assert.Len(s.T(), l.Current().Properties, 1)
}

func (s *LoaderTestSuite) TestLoad_StaleResultIsDiscarded() {
	releaseA := make(chan struct{})
	startedA := make(chan struct{})
	s.src.fn = func(call int) (*fetch.Raw, error) {
		if call == 1 {
			close(startedA)
			<-releaseA
			return rawWithProperty("A"), nil
		}
		return rawWithProperty("B"), nil
	}
	l := s.newLoader(time.Millisecond)
	defer l.Close()

	doneA := make(chan error, 1)
	go func() { doneA <- l.Refresh(context.Background(), admin) }()
	<-startedA

	require.NoError(s.T(), l.Refresh(context.Background(), admin))
	assert.Equal(s.T(), "B", l.Current().Properties[0].Name)

	close(releaseA)
	require.NoError(s.T(), <-doneA)

	snap := l.Snapshot()
	assert.Equal(s.T(), "B", snap.Data.Properties[0].Name)
	assert.Equal(s.T(), uint64(2), snap.Generation)
	assert.False(s.T(), snap.Loading)
	assert.Equal(s.T(), 1.0, testutil.ToFloat64(s.metrics.Loads.WithLabelValues(metrics.LoadStale)))
}

func (s *LoaderTestSuite) TestLoad_FailureKeepsPreviousData() {
	boom := errors.New("store unavailable")
	s.src.fn = func(call int) (*fetch.Raw, error) {
		if call == 2 {
			return nil, boom
		}
		return rawWithProperty("Sunrise"), nil
	}
	l := s.newLoader(time.Millisecond)
	defer l.Close()

	require.NoError(s.T(), l.Refresh(context.Background(), admin))
	before := l.Current()

	err := l.Refresh(context.Background(), admin)
	assert.ErrorIs(s.T(), err, boom)

	snap := l.Snapshot()
	assert.Same(s.T(), before, snap.Data)
	assert.ErrorIs(s.T(), snap.Err, boom)
	assert.False(s.T(), snap.Loading)
	assert.False(s.T(), snap.Refreshing)

	// a later success clears the recorded error
	require.NoError(s.T(), l.Refresh(context.Background(), admin))
	assert.NoError(s.T(), l.Snapshot().Err)
}

func (s *LoaderTestSuite) TestLoad_NilActorClears() {
	l := s.newLoader(time.Millisecond)
	defer l.Close()

	require.NoError(s.T(), l.Refresh(context.Background(), admin))
	require.NotEmpty(s.T(), l.Current().Properties)

	require.NoError(s.T(), l.Load(context.Background(), nil))

	snap := l.Snapshot()
	assert.Empty(s.T(), snap.Data.Properties)
	assert.NotNil(s.T(), snap.Data.Rooms)
	assert.True(s.T(), snap.LoadedAt.IsZero())
}

func (s *LoaderTestSuite) TestLoad_ClearDiscardsInFlightResult() {
	release := make(chan struct{})
	started := make(chan struct{})
	s.src.fn = func(int) (*fetch.Raw, error) {
		close(started)
		<-release
		return rawWithProperty("Late"), nil
	}
	l := s.newLoader(time.Millisecond)
	defer l.Close()

	done := make(chan error, 1)
	go func() { done <- l.Refresh(context.Background(), admin) }()
	<-started
	require.NoError(s.T(), l.Load(context.Background(), nil))
	close(release)
	require.NoError(s.T(), <-done)

	assert.Empty(s.T(), l.Current().Properties)
}

func (s *LoaderTestSuite) TestSubscribe_NotifiedOnPublish() {
	l := s.newLoader(time.Millisecond)
	ch, cancel := l.Subscribe()
	defer cancel()

	require.NoError(s.T(), l.Refresh(context.Background(), admin))
	select {
	case <-ch:
	case <-time.After(time.Second):
		s.T().Fatal("no notification after publish")
	}

	l.Close()
	_, open := <-ch
	assert.False(s.T(), open)
}

func (s *LoaderTestSuite) TestClose_FailsPendingCallers() {
	l := s.newLoader(time.Hour)

	done := make(chan error, 1)
	go func() { done <- l.Load(context.Background(), admin) }()
	time.Sleep(10 * time.Millisecond)
	l.Close()

	assert.ErrorIs(s.T(), <-done, snapshot.ErrLoaderClosed)
	assert.ErrorIs(s.T(), l.Load(context.Background(), admin), snapshot.ErrLoaderClosed)
	assert.Equal(s.T(), 0, s.src.Calls())
}

func (s *LoaderTestSuite) TestLoad_CallerContextBoundsWait() {
	l := s.newLoader(time.Hour)
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(s.T(), l.Load(ctx, admin), context.DeadlineExceeded)
	assert.True(s.T(), l.Snapshot().Loading)
}
