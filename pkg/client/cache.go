package client

import "sync"

// RequestCache memoizes GET responses by request descriptor. It is an
// explicit object owned by one Client, never shared ambient state, so
// logging out can drop everything a session saw with one Clear call.
type RequestCache struct {
	mu       sync.Mutex
	entries  map[string][]byte
	inflight map[string]*inflightCall
}

type inflightCall struct {
	done chan struct{}
	body []byte
	err  error
}

func NewRequestCache() *RequestCache {
	return &RequestCache{
		entries:  make(map[string][]byte),
		inflight: make(map[string]*inflightCall),
	}
}

// Do returns the cached response for key, or runs fetch once. Concurrent
// callers with the same key share a single in-flight fetch.
func (c *RequestCache) Do(key string, fetch func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()

	if body, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return body, nil
	}

	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-call.done
		return call.body, call.err
	}

	call := &inflightCall{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	call.body, call.err = fetch()

	c.mu.Lock()
	delete(c.inflight, key)
	if call.err == nil {
		c.entries[key] = call.body
	}
	c.mu.Unlock()

	close(call.done)
	return call.body, call.err
}

// Set stores a response directly, bypassing fetch. Used when a mutation
// already knows what the next read would return.
func (c *RequestCache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
}

// Invalidate drops every entry whose key starts with prefix. Mutations
// call this so the next read refetches.
func (c *RequestCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}

// Clear empties the cache. Called on logout.
func (c *RequestCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
}

// Len reports the number of cached responses.
func (c *RequestCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
