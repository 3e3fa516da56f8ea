package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scwtools/scwinv/internal/cache"
	"github.com/scwtools/scwinv/internal/config"
	"github.com/scwtools/scwinv/internal/models"
	"github.com/scwtools/scwinv/pkg/scaleway"
)

func newTestService(t *testing.T, cacheEnabled bool) (*Service, *fakeInstanceAPI, *cache.Store) {
	t.Helper()

	instances := &fakeInstanceAPI{servers: map[string][]scaleway.InstanceServer{
		"fr-par-1": {instanceServer("i1", "fr-par-1", "dev")},
	}}
	agg := NewAggregator(instances, &fakeBaremetalAPI{})

	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)

	return NewService(agg, store, cacheEnabled), instances, store
}

// liveFetches counts aggregations by instance-API calls: each live
// aggregation queries every default zone exactly once.
func liveFetches(f *fakeInstanceAPI) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls) / len(config.DefaultZones)
}

func TestServiceCachingDisabledAlwaysFetchesLive(t *testing.T) {
	service, instances, store := newTestService(t, false)

	// Pre-seed an entry; it must be ignored with caching disabled.
	require.NoError(t, store.Write("k", nil))

	for i := 0; i < 2; i++ {
		hosts, err := service.Hosts(context.Background(), Filters{}, "k", true)
		require.NoError(t, err)
		require.Len(t, hosts, 1)
	}
	require.Equal(t, 2, liveFetches(instances))

	// Nothing was written back either.
	cached, err := store.Read("k")
	require.NoError(t, err)
	require.Empty(t, cached)
}

func TestServiceReadThrough(t *testing.T) {
	service, instances, _ := newTestService(t, true)

	// First call misses and fetches live, writing the entry back.
	hosts, err := service.Hosts(context.Background(), Filters{}, "k", true)
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	require.Equal(t, 1, liveFetches(instances))

	// Second call is served from the cache.
	hosts, err = service.Hosts(context.Background(), Filters{}, "k", true)
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	require.Equal(t, "i1", hosts[0].ID)
	require.Equal(t, 1, liveFetches(instances))
}

func TestServiceRefreshOverwritesExistingEntry(t *testing.T) {
	service, instances, store := newTestService(t, true)

	// Seed a stale entry under the key.
	require.NoError(t, store.Write("k", []models.Host{{ID: "stale", Zone: "fr-par-1"}}))

	_, err := service.Hosts(context.Background(), Filters{}, "k", false)
	require.NoError(t, err)
	require.Equal(t, 1, liveFetches(instances))

	// The entry now holds the live result, not the stale one.
	cached, err := store.Read("k")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, "i1", cached[0].ID)
}

func TestServiceFatalErrorWritesNoCacheEntry(t *testing.T) {
	instances := &fakeInstanceAPI{errs: map[string]error{
		"fr-par-1": &scaleway.APIError{StatusCode: 500},
	}}
	agg := NewAggregator(instances, &fakeBaremetalAPI{})
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	service := NewService(agg, store, true)

	_, err = service.Hosts(context.Background(), Filters{}, "k", true)
	require.Error(t, err)

	_, err = store.Read("k")
	require.Error(t, err)
}
