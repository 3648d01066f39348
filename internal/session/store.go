package session

import (
	"context"
	"time"

	"github.com/SscSPs/pg_console/internal/core/domain"
	portssvc "github.com/SscSPs/pg_console/internal/core/ports/services"
	"github.com/SscSPs/pg_console/internal/core/snapshot"
)

// Store is the session of one authenticated actor: their identity, their
// loader and the backend they read from and write to.
type Store struct {
	actor     *domain.Actor
	loader    *snapshot.Loader
	backend   *Backend
	createdAt time.Time
}

var _ portssvc.Scope = (*Store)(nil)

// Actor returns the actor the store was opened for.
func (s *Store) Actor() *domain.Actor {
	return s.actor
}

// Current returns the published dataset.
func (s *Store) Current() *snapshot.Dataset {
	return s.loader.Current()
}

// Load triggers a throttled reload.
func (s *Store) Load(ctx context.Context) error {
	return s.loader.Load(ctx, s.actor)
}

// Refresh reloads with fresh reads, bypassing the throttle.
func (s *Store) Refresh(ctx context.Context) error {
	return s.loader.Refresh(ctx, s.actor)
}

// Snapshot returns the dataset with its loading state.
func (s *Store) Snapshot() snapshot.Snapshot {
	return s.loader.Snapshot()
}

// Subscribe is notified after every publish.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	return s.loader.Subscribe()
}

// Services returns the mutation services of the store's backend.
func (s *Store) Services() *portssvc.ServiceContainer {
	return s.backend.Services
}

// Backend names the remote store the session uses.
func (s *Store) Backend() string {
	return s.backend.Name
}

// CreatedAt is when the session was opened.
func (s *Store) CreatedAt() time.Time {
	return s.createdAt
}
