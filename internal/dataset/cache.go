package dataset

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/bwise1/lifegroup_locator/internal/source"
	"github.com/bwise1/lifegroup_locator/util"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const rebuildKey = "snapshot"

// Cache is a read-through snapshot cache. Failed loads are cached for the same TTL
// as good ones.
type Cache struct {
	source source.RowSource
	loader *Loader
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	snap    *model.Snapshot
	expires time.Time

	group singleflight.Group
}

func NewCache(src source.RowSource, loader *Loader, ttl time.Duration) *Cache {
	return &Cache{
		source: src,
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the cached snapshot, rebuilding it when expired. Concurrent callers
// share one rebuild.
func (c *Cache) Get(ctx context.Context) model.Snapshot {
	c.mu.RLock()
	snap, expires := c.snap, c.expires
	c.mu.RUnlock()

	if snap != nil && c.now().Before(expires) {
		return *snap
	}
	return c.rebuild(ctx)
}

// Invalidate forces the next Get to rebuild.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.expires = time.Time{}
	c.mu.Unlock()
}

// Refresh invalidates the cache and rebuilds it immediately.
func (c *Cache) Refresh(ctx context.Context) model.Snapshot {
	c.Invalidate()
	return c.rebuild(ctx)
}

func (c *Cache) rebuild(ctx context.Context) model.Snapshot {
	// detached so one caller's cancellation does not fail the shared rebuild
	loadCtx := context.WithoutCancel(ctx)

	v, _, _ := c.group.Do(rebuildKey, func() (interface{}, error) {
		snap := c.load(loadCtx)

		c.mu.Lock()
		c.snap = &snap
		c.expires = c.now().Add(c.ttl)
		c.mu.Unlock()
		return snap, nil
	})
	return v.(model.Snapshot)
}

func (c *Cache) load(ctx context.Context) model.Snapshot {
	tbl, err := c.source.Fetch(ctx)
	if err != nil {
		log.Printf("[Dataset]: fetch failed: %v", err)
		return model.Snapshot{
			ID:       util.GenerateUUID(),
			LoadedAt: c.now(),
			Err:      errors.Wrapf(ErrDataUnavailable, "fetch: %v", err),
		}
	}
	return c.loader.Load(ctx, tbl)
}
