package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheSkipsErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("key", func() (string, error) { return "", errors.New("boom") })
	require.Error(t, err)
	assert.Zero(t, cache.Len())
}

func TestChartCacheDisabled(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "x", nil
	}
	_, _ = cache.GetOrRender("key", render)
	_, _ = cache.GetOrRender("key", render)
	assert.Equal(t, 2, calls)
}

func TestDatasetHashIsStable(t *testing.T) {
	a := []ChartPoint{{Label: "Admin", Value: 2}}
	b := []ChartPoint{{Label: "Admin", Value: 3}}
	assert.Equal(t, datasetHash(a), datasetHash(a))
	assert.NotEqual(t, datasetHash(a), datasetHash(b))
}

func TestChartCacheEvictsWhenFull(t *testing.T) {
	cache := NewChartCache(time.Minute).WithLimit(2)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	render := func(v string) func() (string, error) {
		return func() (string, error) { return v, nil }
	}

	_, err := cache.GetOrRender("a", render("a"))
	require.NoError(t, err)
	now = now.Add(10 * time.Second)
	_, err = cache.GetOrRender("b", render("b"))
	require.NoError(t, err)
	now = now.Add(10 * time.Second)
	_, err = cache.GetOrRender("c", render("c"))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	calls := 0
	html, err := cache.GetOrRender("b", func() (string, error) {
		calls++
		return "again", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "b", html)
	assert.Zero(t, calls)

	html, err = cache.GetOrRender("a", render("a2"))
	require.NoError(t, err)
	assert.Equal(t, "a2", html)
}

func TestChartCacheSweepsExpiredEntries(t *testing.T) {
	cache := NewChartCache(time.Minute).WithLimit(3)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	for _, key := range []string{"a", "b", "c"} {
		_, err := cache.GetOrRender(key, func() (string, error) { return key, nil })
		require.NoError(t, err)
	}
	now = now.Add(2 * time.Minute)
	_, err := cache.GetOrRender("d", func() (string, error) { return "d", nil })
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}
