package fetch

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/pg_console/internal/core/ports/repositories"
	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/SscSPs/pg_console/internal/models"
	"golang.org/x/sync/errgroup"
)

// Entity names used as cache keys and metric labels.
const (
	EntityProperties = "properties"
	EntityRooms      = "rooms"
	EntityTenants    = "tenants"
	EntityUsers      = "users"
)

// Raw is one consistent read of every collection, untransformed.
// The slices may be shared with other readers and must not be modified.
type Raw struct {
	Properties []models.PropertyRecord
	Rooms      []models.RoomRecord
	Tenants    []models.TenantRecord
	Users      []models.UserRecord
}

// Options tunes the result cache.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

// Fetcher reads all collections of one remote store.
type Fetcher struct {
	repos   portsrepo.RepositoryProvider
	metrics *metrics.Metrics

	properties *Deduper[[]models.PropertyRecord]
	rooms      *Deduper[[]models.RoomRecord]
	tenants    *Deduper[[]models.TenantRecord]
	users      *Deduper[[]models.UserRecord]
}

// NewFetcher creates a fetcher over repos. m may be nil.
func NewFetcher(repos portsrepo.RepositoryProvider, opts Options, m *metrics.Metrics) *Fetcher {
	return &Fetcher{
		repos:      repos,
		metrics:    m,
		properties: NewDeduper[[]models.PropertyRecord](opts.CacheSize, opts.CacheTTL),
		rooms:      NewDeduper[[]models.RoomRecord](opts.CacheSize, opts.CacheTTL),
		tenants:    NewDeduper[[]models.TenantRecord](opts.CacheSize, opts.CacheTTL),
		users:      NewDeduper[[]models.UserRecord](opts.CacheSize, opts.CacheTTL),
	}
}

// FetchAll reads the four collections in parallel. The first failure cancels
// the rest and is returned. fresh bypasses the cache.
func (f *Fetcher) FetchAll(ctx context.Context, fresh bool) (*Raw, error) {
	var raw Raw
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		raw.Properties, err = fetchOne(gctx, f, EntityProperties, f.properties, fresh, f.repos.PropertyRepo.ListProperties)
		return err
	})
	g.Go(func() (err error) {
		raw.Rooms, err = fetchOne(gctx, f, EntityRooms, f.rooms, fresh, f.repos.RoomRepo.ListRooms)
		return err
	})
	g.Go(func() (err error) {
		raw.Tenants, err = fetchOne(gctx, f, EntityTenants, f.tenants, fresh, f.repos.TenantRepo.ListTenants)
		return err
	})
	g.Go(func() (err error) {
		raw.Users, err = fetchOne(gctx, f, EntityUsers, f.users, fresh, f.repos.UserRepo.ListUsers)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &raw, nil
}

// Invalidate drops every cached collection.
func (f *Fetcher) Invalidate() {
	f.properties.Invalidate()
	f.rooms.Invalidate()
	f.tenants.Invalidate()
	f.users.Invalidate()
}

func fetchOne[T any](ctx context.Context, f *Fetcher, entity string, d *Deduper[T], fresh bool, list func(context.Context) (T, error)) (T, error) {
	v, source, err := d.Do(ctx, entity, fresh, list)
	if err != nil {
		return v, fmt.Errorf("fetch %s: %w", entity, err)
	}
	f.metrics.ObserveFetch(entity, source)
	return v, nil
}
