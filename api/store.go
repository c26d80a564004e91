package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imadama/Bol-scrapper/models"
)

type pendingEntry struct {
	listing models.Listing
	savedAt time.Time
}

// PendingStore holds scraped listings between scrape and confirm. Entries
// are edited in place via Update and leave the store on confirm; a janitor
// goroutine drops entries the operator abandoned.
type PendingStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*pendingEntry
}

// NewPendingStore creates a store whose entries expire after ttl.
func NewPendingStore(ttl time.Duration) *PendingStore {
	ps := &PendingStore{
		ttl:     ttl,
		entries: make(map[string]*pendingEntry),
	}

	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-ttl)
			ps.mu.Lock()
			for id, e := range ps.entries {
				if e.savedAt.Before(cutoff) {
					delete(ps.entries, id)
				}
			}
			ps.mu.Unlock()
		}
	}()

	return ps
}

// Put stores a listing and returns its record id.
func (ps *PendingStore) Put(l models.Listing) string {
	id := uuid.NewString()
	ps.mu.Lock()
	ps.entries[id] = &pendingEntry{listing: l, savedAt: time.Now()}
	ps.mu.Unlock()
	return id
}

// Get returns a copy of the pending listing.
func (ps *PendingStore) Get(id string) (models.Listing, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	e, ok := ps.entries[id]
	if !ok {
		return models.Listing{}, false
	}
	return e.listing, true
}

// Update applies an edit to the pending listing and returns the result.
func (ps *PendingStore) Update(id string, u *models.RecordUpdate) (models.Listing, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	e, ok := ps.entries[id]
	if !ok {
		return models.Listing{}, false
	}
	e.listing.Apply(u)
	e.savedAt = time.Now()
	return e.listing, true
}

// Remove takes the listing out of the store, returning it.
func (ps *PendingStore) Remove(id string) (models.Listing, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	e, ok := ps.entries[id]
	if !ok {
		return models.Listing{}, false
	}
	delete(ps.entries, id)
	return e.listing, true
}
