package openmeteo

import (
	"context"
	"testing"

	"farmweather/internal/domain/entity"
	"farmweather/internal/observability"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGeocoder struct {
	location *entity.Location
	err      error
	calls    int
}

func (g *countingGeocoder) LookupPincode(_ context.Context, _ string) (*entity.Location, error) {
	g.calls++

	return g.location, g.err
}

func newCacheMetrics() *observability.Metrics {
	return observability.NewMetricsFor(prometheus.NewRegistry())
}

func TestCachedGeocoder_SecondLookupIsCached(t *testing.T) {
	inner := &countingGeocoder{location: &entity.Location{Name: "Pune", Latitude: 18.52, Longitude: 73.86}}
	cached := NewCachedGeocoder(inner, 8, newCacheMetrics())
	ctx := context.Background()

	first, err := cached.LookupPincode(ctx, "411001")
	require.NoError(t, err)
	second, err := cached.LookupPincode(ctx, "411001")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedGeocoder_NoMatchIsNotCached(t *testing.T) {
	inner := &countingGeocoder{location: nil}
	cached := NewCachedGeocoder(inner, 8, newCacheMetrics())
	ctx := context.Background()

	location, err := cached.LookupPincode(ctx, "000000")
	require.NoError(t, err)
	assert.Nil(t, location)

	_, err = cached.LookupPincode(ctx, "000000")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_ErrorIsNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 8, newCacheMetrics())
	ctx := context.Background()

	_, err := cached.LookupPincode(ctx, "411001")
	require.Error(t, err)
	_, err = cached.LookupPincode(ctx, "411001")
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", &entity.Location{Name: "A"})
	cache.put("b", &entity.Location{Name: "B"})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", &entity.Location{Name: "C"})

	_, ok = cache.get("b")
	assert.False(t, ok)
	_, ok = cache.get("a")
	assert.True(t, ok)
	_, ok = cache.get("c")
	assert.True(t, ok)
}

func TestLRUCache_PutExistingUpdatesValue(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", &entity.Location{Name: "old"})
	cache.put("a", &entity.Location{Name: "new"})

	got, ok := cache.get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.Name)
}
