package client

import (
	"encoding/json"
	"os"
	"sort"
	"sync"
)

// GuestFavorites keeps the favorites of a visitor who has no account.
// Mutations apply to the in-memory set immediately; the backing JSON file
// is rewritten asynchronously after each change.
type GuestFavorites struct {
	mu   sync.Mutex
	path string
	ids  map[string]struct{}

	seq     uint64
	flushMu sync.Mutex
	written uint64
	flushWG sync.WaitGroup
}

// LoadGuestFavorites reads the set from path. A missing file yields an
// empty set; a corrupt file is an error.
func LoadGuestFavorites(path string) (*GuestFavorites, error) {
	g := &GuestFavorites{
		path: path,
		ids:  make(map[string]struct{}),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return g, nil
	}
	if err != nil {
		return nil, err
	}

	var stored []string
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	for _, id := range stored {
		g.ids[id] = struct{}{}
	}
	return g, nil
}

// Add records a favorite. Adding an existing id is a no-op.
func (g *GuestFavorites) Add(propertyID string) {
	g.mu.Lock()
	_, exists := g.ids[propertyID]
	if !exists {
		g.ids[propertyID] = struct{}{}
	}
	g.mu.Unlock()

	if !exists {
		g.scheduleFlush()
	}
}

// Remove drops a favorite. Removing an absent id is a no-op.
func (g *GuestFavorites) Remove(propertyID string) {
	g.mu.Lock()
	_, exists := g.ids[propertyID]
	if exists {
		delete(g.ids, propertyID)
	}
	g.mu.Unlock()

	if exists {
		g.scheduleFlush()
	}
}

// Toggle flips membership and reports the new state.
func (g *GuestFavorites) Toggle(propertyID string) bool {
	g.mu.Lock()
	_, exists := g.ids[propertyID]
	if exists {
		delete(g.ids, propertyID)
	} else {
		g.ids[propertyID] = struct{}{}
	}
	g.mu.Unlock()

	g.scheduleFlush()
	return !exists
}

func (g *GuestFavorites) Has(propertyID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.ids[propertyID]
	return ok
}

// All returns the ids in stable order.
func (g *GuestFavorites) All() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]string, 0, len(g.ids))
	for id := range g.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Flush waits for pending writes to hit disk. Tests and shutdown paths
// call it; normal operation never blocks on the file.
func (g *GuestFavorites) Flush() {
	g.flushWG.Wait()
}

func (g *GuestFavorites) scheduleFlush() {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.mu.Unlock()

	snapshot := g.All()

	g.flushWG.Add(1)
	go func() {
		defer g.flushWG.Done()
		g.write(seq, snapshot)
	}()
}

func (g *GuestFavorites) write(seq uint64, ids []string) {
	g.flushMu.Lock()
	defer g.flushMu.Unlock()

	// A newer snapshot already landed; writing this one would roll back.
	if seq <= g.written {
		return
	}
	g.written = seq

	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}

	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return
	}
	os.Rename(tmp, g.path)
}
