// Package session owns one store per authenticated actor. A store is opened on
// the actor's first request and torn down at logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SscSPs/pg_console/internal/apperrors"
	"github.com/SscSPs/pg_console/internal/core/domain"
	"github.com/SscSPs/pg_console/internal/core/snapshot"
	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/SscSPs/pg_console/internal/utils/mapping"
)

// Manager is the registry of session stores.
type Manager struct {
	mu     sync.RWMutex
	stores map[string]*Store

	live    *Backend
	demo    *Backend
	cfg     snapshot.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithMetrics records the open session count and passes m to every loader.
func WithMetrics(m *metrics.Metrics) Option {
	return func(mg *Manager) { mg.metrics = m }
}

// WithLogger sets the base logger of the manager and its loaders.
func WithLogger(logger *slog.Logger) Option {
	return func(mg *Manager) { mg.logger = logger }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(mg *Manager) { mg.now = now }
}

// NewManager creates a registry over the live backend. demo may be nil, in
// which case demo actors cannot sign in.
func NewManager(live, demo *Backend, cfg snapshot.Config, opts ...Option) *Manager {
	m := &Manager{
		stores: make(map[string]*Store),
		live:   live,
		demo:   demo,
		cfg:    cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the open store of userID.
func (m *Manager) Get(userID string) (*Store, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stores[userID]
	return s, ok
}

// Acquire returns the store of userID, opening it on first use. A new store is
// loaded once before it is returned; a failed first load is recorded on the
// snapshot and does not fail the call.
func (m *Manager) Acquire(ctx context.Context, userID string) (*Store, error) {
	if s, ok := m.Get(userID); ok {
		return s, nil
	}

	actor, backend, err := m.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if s, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	logger := m.logger.With(slog.String("user_id", actor.ID), slog.String("backend", backend.Name))
	s := &Store{
		actor: actor,
		loader: snapshot.NewLoader(backend.Fetcher, m.cfg,
			snapshot.WithMetrics(m.metrics),
			snapshot.WithLogger(logger),
			snapshot.WithClock(m.now)),
		backend:   backend,
		createdAt: m.now(),
	}
	m.stores[userID] = s
	n := len(m.stores)
	m.mu.Unlock()

	m.metrics.SetSessions(n)
	logger.Info("Session opened", slog.String("role", string(actor.Role)))

	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Initial load failed", slog.String("error", err.Error()))
	}
	return s, nil
}

// Teardown closes and forgets the store of userID. It reports whether a
// store was open.
func (m *Manager) Teardown(userID string) bool {
	m.mu.Lock()
	s, ok := m.stores[userID]
	if ok {
		delete(m.stores, userID)
	}
	n := len(m.stores)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.loader.Close()
	m.metrics.SetSessions(n)
	m.logger.Info("Session closed", slog.String("user_id", userID))
	return true
}

// Len returns the number of open stores.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stores)
}

// Close tears down every store.
func (m *Manager) Close() {
	m.mu.Lock()
	stores := m.stores
	m.stores = make(map[string]*Store)
	m.mu.Unlock()

	for _, s := range stores {
		s.loader.Close()
	}
	m.metrics.SetSessions(0)
}

// resolveActor looks the user up in the live store, then in the demo store.
func (m *Manager) resolveActor(ctx context.Context, userID string) (*domain.Actor, *Backend, error) {
	if userID == "" {
		return nil, nil, apperrors.NewUnauthorizedError("missing user id")
	}

	backend := m.live
	rec, err := m.live.Repos.UserRepo.FindUserByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) && m.demo != nil {
		backend = m.demo
		rec, err = m.demo.Repos.UserRepo.FindUserByID(ctx, userID)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, apperrors.NewUnauthorizedError("unknown user")
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to resolve user", fmt.Errorf("find user %s: %w", userID, err))
	}

	actor := mapping.ToDomainActor(*rec)
	if actor.Status != domain.UserActive {
		return nil, nil, apperrors.NewForbiddenError("user is not active")
	}
	if actor.IsDemo && m.demo != nil {
		backend = m.demo
	}
	return &actor, backend, nil
}
