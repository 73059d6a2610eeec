package cachemanager

import (
	"context"
	"time"

	"github.com/zjrosen/registrar/internal/domain"
	"github.com/zjrosen/registrar/internal/registry"
)

// CatalogCache caches sorted course listings. Listings are rebuilt from
// the course tree on every request otherwise, which the interface asks
// for far more often than the catalog changes.
type CatalogCache struct {
	ttl     time.Duration
	backing *InMemoryCacheManager[registry.SortKey, []domain.Course]
	read    *ReadThroughCache[registry.SortKey, []domain.Course, registry.SortKey]
}

// NewCatalogCache builds a catalog cache over the service. A zero ttl
// disables caching entirely.
func NewCatalogCache(svc *registry.Service, ttl time.Duration) *CatalogCache {
	backing := NewInMemoryCacheManager[registry.SortKey, []domain.Course]("catalog", ttl, DefaultCleanupInterval)
	read := NewReadThroughCache(
		CacheManager[registry.SortKey, []domain.Course](backing),
		func(ctx context.Context, key registry.SortKey) ([]domain.Course, error) {
			return svc.ListCourses(key), nil
		},
		ttl <= 0,
	)
	return &CatalogCache{ttl: ttl, backing: backing, read: read}
}

// Courses returns the catalog in the given order, cached.
func (c *CatalogCache) Courses(ctx context.Context, key registry.SortKey) []domain.Course {
	courses, _ := c.read.Get(ctx, key, key, c.ttl)
	return courses
}

// Invalidate drops the cached listings. Call after any change event.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	_ = c.backing.Flush(ctx)
}
