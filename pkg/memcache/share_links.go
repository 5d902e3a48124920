package memcache

import (
	"sync"
	"time"
)

// ShareLinkTTL is how long a freshly minted or re-shared link stays in
// the cache before lookups fall back to the database.
const ShareLinkTTL = 24 * time.Hour

// ShareLinkStore maps public share slugs to plan ids. Slugs are also
// persisted on the plan record; this cache only short-circuits the lookup
// for links that were minted recently.
type ShareLinkStore interface {
	Set(slug string, planID string, ttl time.Duration)

	// Lookup returns the plan id for slug if present and not expired.
	Lookup(slug string) (string, bool)
}

type entry struct {
	planID    string
	expiresAt time.Time
}

type ShareLinks struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewShareLinks() *ShareLinks {
	return &ShareLinks{
		data: make(map[string]entry),
	}
}

func (s *ShareLinks) Set(slug string, planID string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[slug] = entry{
		planID:    planID,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *ShareLinks) Lookup(slug string) (string, bool) {
	s.mu.RLock()
	e, ok := s.data[slug]
	s.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, slug) // cleanup expired
		s.mu.Unlock()
		return "", false
	}
	return e.planID, true
}
