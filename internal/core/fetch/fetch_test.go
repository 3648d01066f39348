package fetch_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/pg_console/internal/core/fetch"
	"github.com/SscSPs/pg_console/internal/core/ports/repositories/mocks"
	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/SscSPs/pg_console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeduper_CollapsesConcurrentCalls(t *testing.T) {
	d := fetch.NewDeduper[int](0, 0)
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := d.Do(context.Background(), "k", false, fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestDeduper_CacheAndFresh(t *testing.T) {
	d := fetch.NewDeduper[int](4, time.Minute)
	var n atomic.Int32
	fn := func(context.Context) (int, error) { return int(n.Add(1)), nil }

	v, src, err := d.Do(context.Background(), "k", false, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, metrics.FetchRemote, src)

	v, src, _ = d.Do(context.Background(), "k", false, fn)
	assert.Equal(t, 1, v)
	assert.Equal(t, metrics.FetchCache, src)

	v, src, _ = d.Do(context.Background(), "k", true, fn)
	assert.Equal(t, 2, v)
	assert.Equal(t, metrics.FetchRemote, src)

	// fresh result replaces the cached one
	v, _, _ = d.Do(context.Background(), "k", false, fn)
	assert.Equal(t, 2, v)

	d.Invalidate()
	v, _, _ = d.Do(context.Background(), "k", false, fn)
	assert.Equal(t, 3, v)
}

func TestDeduper_ErrorsAreNotCached(t *testing.T) {
	d := fetch.NewDeduper[int](4, time.Minute)
	boom := errors.New("boom")

	_, _, err := d.Do(context.Background(), "k", false, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, _, err := d.Do(context.Background(), "k", false, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDeduper_CallerContextBoundsWait(t *testing.T) {
	d := fetch.NewDeduper[int](0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := d.Do(ctx, "k", false, func(context.Context) (int, error) {
		time.Sleep(50 * time.Millisecond)
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeduper_FreshCallAfterWriteDoesNotJoinOlderRead(t *testing.T) {
	d := fetch.NewDeduper[int](4, time.Minute)
	var stored, calls atomic.Int32
	firstRead := make(chan struct{})
	release := make(chan struct{})

	fn := func(context.Context) (int, error) {
		v := int(stored.Load())
		if calls.Add(1) == 1 {
			close(firstRead)
			<-release
		}
		return v, nil
	}

	older := make(chan int, 1)
	go func() {
		v, _, err := d.Do(context.Background(), "k", true, fn)
		assert.NoError(t, err)
		older <- v
	}()
	<-firstRead

	// write lands while the older read is still running
	stored.Store(1)

	v, src, err := d.Do(context.Background(), "k", true, fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, metrics.FetchRemote, src)
	assert.Equal(t, int32(2), calls.Load())

	close(release)
	assert.Equal(t, 0, <-older)

	// the older read finished last but must not replace the newer value
	v, src, _ = d.Do(context.Background(), "k", false, fn)
	assert.Equal(t, 1, v)
	assert.Equal(t, metrics.FetchCache, src)
}

func TestDeduper_CancelledLeaderDoesNotFailFollowers(t *testing.T) {
	d := fetch.NewDeduper[int](0, 0)
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (int, error) {
		close(started)
		select {
		case <-release:
			return 9, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, _, err := d.Do(leaderCtx, "k", false, fn)
		leaderErr <- err
	}()
	<-started

	type result struct {
		v   int
		src string
		err error
	}
	follower := make(chan result, 1)
	go func() {
		v, src, err := d.Do(context.Background(), "k", false, fn)
		follower <- result{v, src, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelLeader()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	res := <-follower
	require.NoError(t, res.err)
	assert.Equal(t, 9, res.v)
	assert.Equal(t, metrics.FetchShared, res.src)
}

func TestFetcher_FetchAll(t *testing.T) {
	repos := mocks.NewRepos()
	name := "Sunrise"
	repos.ExpectLists(
		[]models.PropertyRecord{{ID: "p1", Name: &name}},
		[]models.RoomRecord{{ID: "r1"}, {ID: "r2"}},
		[]models.TenantRecord{},
		[]models.UserRecord{{ID: "u1"}},
	)

	f := fetch.NewFetcher(repos.Provider(), fetch.Options{CacheSize: 8, CacheTTL: time.Minute}, metrics.New())
	raw, err := f.FetchAll(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, raw.Properties, 1)
	assert.Len(t, raw.Rooms, 2)
	assert.Len(t, raw.Users, 1)

	// second read is served from cache
	_, err = f.FetchAll(context.Background(), false)
	require.NoError(t, err)
	repos.Rooms.AssertNumberOfCalls(t, "ListRooms", 1)

	_, err = f.FetchAll(context.Background(), true)
	require.NoError(t, err)
	repos.Rooms.AssertNumberOfCalls(t, "ListRooms", 2)
}

func TestFetcher_FirstErrorWins(t *testing.T) {
	repos := mocks.NewRepos()
	boom := errors.New("connection refused")
	repos.Properties.On("ListProperties", mock.Anything).Return([]models.PropertyRecord{}, nil)
	repos.Rooms.On("ListRooms", mock.Anything).Return(nil, boom)
	repos.Tenants.On("ListTenants", mock.Anything).Return([]models.TenantRecord{}, nil)
	repos.Users.On("ListUsers", mock.Anything).Return([]models.UserRecord{}, nil)

	f := fetch.NewFetcher(repos.Provider(), fetch.Options{}, nil)
	raw, err := f.FetchAll(context.Background(), false)

	assert.Nil(t, raw)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch rooms")
}
