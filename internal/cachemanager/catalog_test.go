package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/registrar/internal/infrastructure/flatfile"
	"github.com/zjrosen/registrar/internal/registry"
)

func newSeededService(t *testing.T) *registry.Service {
	t.Helper()
	files, err := flatfile.New(t.TempDir())
	require.NoError(t, err)
	svc, err := registry.New(files)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	require.NoError(t, svc.Seed(registry.DefaultSeed()))
	return svc
}

func TestCatalogCache_ServesStaleUntilInvalidated(t *testing.T) {
	svc := newSeededService(t)
	cache := NewCatalogCache(svc, time.Minute)
	ctx := context.Background()

	first := cache.Courses(ctx, registry.SortByCode)
	require.Len(t, first, 6)

	admin, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, svc.AddCourse(admin, "ART101", "Drawing I", 2, 10))

	// Within the TTL the old listing is served.
	require.Len(t, cache.Courses(ctx, registry.SortByCode), 6)

	cache.Invalidate(ctx)
	require.Len(t, cache.Courses(ctx, registry.SortByCode), 7)
}

func TestCatalogCache_SortOrdersAreCachedIndependently(t *testing.T) {
	svc := newSeededService(t)
	cache := NewCatalogCache(svc, time.Minute)
	ctx := context.Background()

	byCode := cache.Courses(ctx, registry.SortByCode)
	byName := cache.Courses(ctx, registry.SortByName)
	require.Equal(t, "CS101", byCode[0].Code)
	require.Equal(t, "Calculus I", byName[0].Name)
}

func TestCatalogCache_ZeroTTLDisablesCaching(t *testing.T) {
	svc := newSeededService(t)
	cache := NewCatalogCache(svc, 0)
	ctx := context.Background()

	require.Len(t, cache.Courses(ctx, registry.SortByCode), 6)

	admin, err := svc.Login("admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, svc.AddCourse(admin, "ART101", "Drawing I", 2, 10))

	require.Len(t, cache.Courses(ctx, registry.SortByCode), 7, "no invalidation needed")
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	mgr := NewInMemoryCacheManager[registry.SortKey, int]("test", 20*time.Millisecond, time.Minute)
	ctx := context.Background()

	mgr.Set(ctx, registry.SortByCode, 42, 20*time.Millisecond)
	v, ok := mgr.Get(ctx, registry.SortByCode)
	require.True(t, ok)
	require.Equal(t, 42, v)

	time.Sleep(40 * time.Millisecond)
	_, ok = mgr.Get(ctx, registry.SortByCode)
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	mgr := NewInMemoryCacheManager[registry.SortKey, int]("test", time.Minute, time.Minute)
	ctx := context.Background()

	mgr.Set(ctx, registry.SortByCode, 1, time.Minute)
	mgr.Set(ctx, registry.SortByName, 2, time.Minute)

	require.NoError(t, mgr.Delete(ctx, registry.SortByCode))
	_, ok := mgr.Get(ctx, registry.SortByCode)
	require.False(t, ok)
	_, ok = mgr.Get(ctx, registry.SortByName)
	require.True(t, ok)

	require.NoError(t, mgr.Flush(ctx))
	_, ok = mgr.Get(ctx, registry.SortByName)
	require.False(t, ok)
}
