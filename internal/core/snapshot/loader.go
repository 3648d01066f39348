// Package snapshot loads, joins and publishes the role-filtered dataset of one actor.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/fetch"
	"github.com/SscSPs/pg_console/internal/metrics"
)

// ErrLoaderClosed is returned to callers waiting on a loader that was closed.
var ErrLoaderClosed = errors.New("snapshot loader closed")

// Defaults for Config.
const (
	DefaultMinInterval    = 5 * time.Second
	DefaultDebounceWindow = 500 * time.Millisecond
	DefaultFetchTimeout   = 15 * time.Second
)

// Source reads every collection of a remote store.
type Source interface {
	FetchAll(ctx context.Context, fresh bool) (*fetch.Raw, error)
}

// Config tunes throttling, debouncing and fetch timeouts.
type Config struct {
	MinInterval    time.Duration
	DebounceWindow time.Duration
	FetchTimeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.MinInterval < 0 {
		c.MinInterval = 0
	}
	if c.DebounceWindow < 0 {
		c.DebounceWindow = 0
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	return c
}

// DefaultConfig returns the standard loader settings.
func DefaultConfig() Config {
	return Config{
		MinInterval:    DefaultMinInterval,
		DebounceWindow: DefaultDebounceWindow,
		FetchTimeout:   DefaultFetchTimeout,
	}
}

// Snapshot is a point-in-time read of the loader state.
type Snapshot struct {
	Data       *Dataset
	Loading    bool
	Refreshing bool
	Err        error
	LoadedAt   time.Time
	Generation uint64
}

// batch collects the calls made within one debounce window.
type batch struct {
	actor *domain.Actor
	force bool
	timer *time.Timer
	done  chan struct{}
	err   error
}

func (b *batch) resolve(err error) {
	b.err = err
	close(b.done)
}

// Loader owns the published dataset of one actor.
//
// Every execution takes a new generation under the lock and publishes only if
// that generation is still the newest issued. A superseded execution runs to
// completion and its result is dropped.
type Loader struct {
	src     Source
	cfg     Config
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	mu          sync.Mutex
	data        *Dataset
	err         error
	loadedAt    time.Time
	loadedFor   string
	generation  uint64
	published   uint64
	inflight    int
	refreshing  int
	pending     *batch
	subscribers map[chan struct{}]struct{}
	closed      bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithMetrics attaches the metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// WithLogger sets the logger used for load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// NewLoader creates a loader with an empty dataset.
func NewLoader(src Source, cfg Config, opts ...Option) *Loader {
	l := &Loader{
		src:         src,
		cfg:         cfg.withDefaults(),
		logger:      slog.Default(),
		now:         time.Now,
		data:        EmptyDataset(),
		subscribers: make(map[chan struct{}]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reloads the dataset for actor unless the last load for the same actor
// completed less than MinInterval ago. Calls within DebounceWindow collapse
// into one execution with the last actor; every collapsed caller waits for
// it. ctx only bounds the wait.
//
// A nil actor clears the dataset and discards any in-flight result.
func (l *Loader) Load(ctx context.Context, actor *domain.Actor) error {
	if actor == nil {
		l.clear()
		return nil
	}
	return l.schedule(ctx, actor, false)
}

// Refresh is Load without the throttle, reading past the fetch cache.
func (l *Loader) Refresh(ctx context.Context, actor *domain.Actor) error {
	if actor == nil {
		l.clear()
		return nil
	}
	return l.schedule(ctx, actor, true)
}

// Snapshot returns the current state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Data:       l.data,
		Loading:    l.inflight > 0 || l.pending != nil,
		Refreshing: l.refreshing > 0,
		Err:        l.err,
		LoadedAt:   l.loadedAt,
		Generation: l.published,
	}
}

// Current returns the published dataset.
func (l *Loader) Current() *Dataset {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data
}

// Subscribe returns a channel signalled after every publish or clear, and a
// function that cancels the subscription. Signals coalesce.
func (l *Loader) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		close(ch)
		return ch, func() {}
	}
	l.subscribers[ch] = struct{}{}
	return ch, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.subscribers[ch]; ok {
			delete(l.subscribers, ch)
			close(ch)
		}
	}
}

// Close stops the loader. Pending callers get ErrLoaderClosed, in-flight
// results are discarded and subscriptions are closed.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.generation++
	if b := l.pending; b != nil {
		l.pending = nil
		b.timer.Stop()
		b.resolve(ErrLoaderClosed)
	}
	for ch := range l.subscribers {
		close(ch)
	}
	l.subscribers = nil
}

func (l *Loader) schedule(ctx context.Context, actor *domain.Actor, force bool) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoaderClosed
	}
	if !force && l.pending == nil && l.throttledLocked(actor) {
		l.mu.Unlock()
		l.metrics.ObserveLoad(metrics.LoadThrottled)
		return nil
	}

	b := l.pending
	if b == nil {
		b = &batch{done: make(chan struct{})}
		l.pending = b
		b.timer = time.AfterFunc(l.cfg.DebounceWindow, func() { l.fire(b) })
	} else {
		b.timer.Reset(l.cfg.DebounceWindow)
	}
	b.actor = actor
	b.force = b.force || force
	l.mu.Unlock()

	select {
	case <-b.done:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loader) throttledLocked(actor *domain.Actor) bool {
	if l.cfg.MinInterval <= 0 || l.loadedAt.IsZero() || l.loadedFor != actor.ID {
		return false
	}
	return l.now().Sub(l.loadedAt) < l.cfg.MinInterval
}

func (l *Loader) fire(b *batch) {
	l.mu.Lock()
	if l.pending != b {
		// already taken by an earlier firing, a clear or Close
		l.mu.Unlock()
		return
	}
	l.pending = nil
	if !b.force && l.throttledLocked(b.actor) {
		l.mu.Unlock()
		l.metrics.ObserveLoad(metrics.LoadThrottled)
		b.resolve(nil)
		return
	}
	l.generation++
	token := l.generation
	l.inflight++
	if b.force {
		l.refreshing++
	}
	l.mu.Unlock()

	b.resolve(l.execute(token, b.actor, b.force))
}

func (l *Loader) execute(token uint64, actor *domain.Actor, fresh bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), l.cfg.FetchTimeout)
	defer cancel()

	start := l.now()
	raw, err := l.src.FetchAll(ctx, fresh)
	var data *Dataset
	if err == nil {
		data = Build(raw, actor)
	}
	l.metrics.ObserveLoadDuration(l.now().Sub(start).Seconds())

	l.mu.Lock()
	l.inflight--
	if fresh {
		l.refreshing--
	}
	if token != l.generation {
		l.mu.Unlock()
		l.metrics.ObserveLoad(metrics.LoadStale)
		return nil
	}
	if err != nil {
		l.err = fmt.Errorf("load snapshot: %w", err)
		l.mu.Unlock()
		l.logger.Error("Failed to load snapshot, keeping previous data",
			slog.String("error", err.Error()),
			slog.String("actor_id", actor.ID),
			slog.Uint64("generation", token))
		l.metrics.ObserveLoad(metrics.LoadFailed)
		l.notify()
		return err
	}
	l.data = data
	l.err = nil
	l.loadedAt = l.now()
	l.loadedFor = actor.ID
	l.published = token
	l.mu.Unlock()

	l.metrics.ObserveLoad(metrics.LoadPublished)
	l.notify()
	return nil
}

func (l *Loader) clear() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.generation++
	l.published = l.generation
	l.data = EmptyDataset()
	l.err = nil
	l.loadedAt = time.Time{}
	l.loadedFor = ""
	b := l.pending
	l.pending = nil
	if b != nil {
		b.timer.Stop()
	}
	l.mu.Unlock()

	if b != nil {
		b.resolve(nil)
	}
	l.metrics.ObserveLoad(metrics.LoadCleared)
	l.notify()
}

func (l *Loader) notify() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ch := range l.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
