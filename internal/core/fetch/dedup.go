// Package fetch reads whole collections from a remote store.
//
// Identical concurrent requests share one call, and successful results are
// cached for a short TTL so many sessions loading at once hit the store once.
package fetch

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/SscSPs/pg_console/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// flightTimeout bounds a shared call. Callers stop waiting on their own
// context, but the call itself outlives any single caller.
const flightTimeout = 30 * time.Second

// Deduper collapses concurrent calls for the same key and caches results.
type Deduper[T any] struct {
	group singleflight.Group
	cache *expirable.LRU[string, T]
	// epoch advances on every fresh call and on Invalidate. A cached read that
	// started in an older epoch does not write back.
	epoch atomic.Uint64
}

// NewDeduper creates a deduper. A zero size or ttl disables the cache.
func NewDeduper[T any](size int, ttl time.Duration) *Deduper[T] {
	d := &Deduper[T]{}
	if size > 0 && ttl > 0 {
		d.cache = expirable.NewLRU[string, T](size, nil, ttl)
	}
	return d
}

// Do returns the value for key, calling fn at most once across concurrent callers.
// fresh skips the cache and never joins a call that started before it.
// A result is cached only if no fresh call or Invalidate happened meanwhile.
// The second return value is one of metrics.FetchCache, FetchRemote or FetchShared.
func (d *Deduper[T]) Do(ctx context.Context, key string, fresh bool, fn func(context.Context) (T, error)) (T, string, error) {
	var zero T

	flightKey := key
	var started uint64
	if fresh {
		started = d.epoch.Add(1)
		flightKey = key + "#fresh#" + strconv.FormatUint(started, 10)
	} else {
		started = d.epoch.Load()
		if d.cache != nil {
			if v, ok := d.cache.Get(key); ok {
				return v, metrics.FetchCache, nil
			}
		}
	}

	ch := d.group.DoChan(flightKey, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		v, err := fn(flightCtx)
		if err != nil {
			return nil, err
		}
		if d.cache != nil && d.epoch.Load() == started {
			d.cache.Add(key, v)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, "", res.Err
		}
		source := metrics.FetchRemote
		if res.Shared {
			source = metrics.FetchShared
		}
		return res.Val.(T), source, nil
	}
}

// Invalidate drops every cached value.
func (d *Deduper[T]) Invalidate() {
	d.epoch.Add(1)
	if d.cache != nil {
		d.cache.Purge()
	}
}
