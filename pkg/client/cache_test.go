package client

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheDoMemoizes(t *testing.T) {
	cache := NewRequestCache()
	calls := 0

	fetch := func() ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	first, err := cache.Do("GET /api/properties", fetch)
	require.NoError(t, err)
	second, err := cache.Do("GET /api/properties", fetch)
	require.NoError(t, err)

	assert.Equal(t, "payload", string(first))
	assert.Equal(t, "payload", string(second))
	assert.Equal(t, 1, calls)
}

func TestCacheDeduplicatesInflight(t *testing.T) {
	cache := NewRequestCache()

	var calls int32
	release := make(chan struct{})
	fetch := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("shared"), nil
	}

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, err := cache.Do("GET /api/properties?page=1", fetch)
			assert.NoError(t, err)
			results[i] = body
		}(i)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, body := range results {
		assert.Equal(t, "shared", string(body))
	}
}

func TestCacheInvalidateByPrefix(t *testing.T) {
	cache := NewRequestCache()

	cache.Do("GET /api/favorites", func() ([]byte, error) { return []byte("a"), nil })
	cache.Do("GET /api/favorites?page=2", func() ([]byte, error) { return []byte("b"), nil })
	cache.Do("GET /api/properties", func() ([]byte, error) { return []byte("c"), nil })

	cache.Invalidate("GET /api/favorites")

	assert.Equal(t, 1, cache.Len())

	calls := 0
	cache.Do("GET /api/favorites", func() ([]byte, error) {
		calls++
		return []byte("fresh"), nil
	})
	assert.Equal(t, 1, calls)
}

func TestCacheClear(t *testing.T) {
	cache := NewRequestCache()

	cache.Do("GET /api/auth/user", func() ([]byte, error) { return []byte("me"), nil })
	require.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	cache := NewRequestCache()

	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, assert.AnError
		}
		return []byte("recovered"), nil
	}

	_, err := cache.Do("GET /api/currency/rates", fetch)
	assert.Error(t, err)

	body, err := cache.Do("GET /api/currency/rates", fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", string(body))
	assert.Equal(t, 2, calls)
}
