package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkvxness/shelftui/internal/domain"
)

func samplePage(total int) domain.Page {
	return domain.Page{
		Books: []domain.Book{
			{ID: 1, Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "978-0-26-110221-7",
				Published: time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC)},
		},
		TotalBooks: total,
		PageSize:   10,
	}
}

func TestMemoryOnlyCache(t *testing.T) {
	cache, err := NewPageCache("", "")
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.GetPage(1, 10)
	assert.False(t, ok)

	require.NoError(t, cache.PutPage(1, 10, samplePage(42)))
	got, ok := cache.GetPage(1, 10)
	require.True(t, ok)
	assert.Equal(t, 42, got.TotalBooks)
	assert.Len(t, got.Books, 1)

	// Different page size is a different key
	_, ok = cache.GetPage(1, 20)
	assert.False(t, ok)
}

func TestPersistentCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cache, err := NewPageCache(dir, "http://localhost:8080")
	require.NoError(t, err)
	require.NoError(t, cache.PutPage(2, 10, samplePage(31)))
	require.NoError(t, cache.Close())

	// Reopen: the page survives in bolt and is promoted on read
	cache, err = NewPageCache(dir, "http://localhost:8080")
	require.NoError(t, err)
	defer cache.Close()

	got, ok := cache.GetPage(2, 10)
	require.True(t, ok)
	assert.Equal(t, 31, got.TotalBooks)
}

func TestServersGetSeparateDatabases(t *testing.T) {
	dir := t.TempDir()

	a, err := NewPageCache(dir, "http://server-a:8080")
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.PutPage(1, 10, samplePage(5)))

	b, err := NewPageCache(dir, "http://server-b:8080")
	require.NoError(t, err)
	defer b.Close()

	_, ok := b.GetPage(1, 10)
	assert.False(t, ok)
}

func TestInvalidateDropsAllPages(t *testing.T) {
	cache, err := NewPageCache(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.PutPage(1, 10, samplePage(20)))
	require.NoError(t, cache.PutPage(2, 10, samplePage(20)))

	require.NoError(t, cache.Invalidate())

	_, ok := cache.GetPage(1, 10)
	assert.False(t, ok)
	_, ok = cache.GetPage(2, 10)
	assert.False(t, ok)
}
