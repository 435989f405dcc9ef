package memcache

import (
	"sync"
	"time"
)

// RecentItem is a lightweight pointer to a generated lecture or deck, kept
// for the dashboard's "recent" lists. The capped/expiring behavior matches
// what the web client used to keep in local storage: 3 lectures for 7 days,
// 5 decks for 30 days.
type RecentItem struct {
	ID      string
	Title   string
	AddedAt time.Time
}

type RecentItemStore interface {
	Add(userID string, item RecentItem)
	List(userID string) []RecentItem
}

type recentEntry struct {
	items []RecentItem
}

type RecentItems struct {
	mu    sync.RWMutex
	data  map[string]*recentEntry
	limit int
	ttl   time.Duration
}

func NewRecentItems(limit int, ttl time.Duration) *RecentItems {
	return &RecentItems{
		data:  make(map[string]*recentEntry),
		limit: limit,
		ttl:   ttl,
	}
}

// Add prepends the item and drops anything beyond the cap.
func (s *RecentItems) Add(userID string, item RecentItem) {
	if userID == "" {
		return
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[userID]
	if !ok {
		e = &recentEntry{}
		s.data[userID] = e
	}

	// Replace an existing entry for the same id instead of duplicating it.
	kept := make([]RecentItem, 0, len(e.items)+1)
	kept = append(kept, item)
	for _, it := range e.items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	if len(kept) > s.limit {
		kept = kept[:s.limit]
	}
	e.items = kept
}

// List returns unexpired items, newest first. Expired entries are pruned
// lazily here rather than by a background janitor.
func (s *RecentItems) List(userID string) []RecentItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[userID]
	if !ok {
		return nil
	}

	cutoff := time.Now().Add(-s.ttl)
	fresh := e.items[:0]
	for _, it := range e.items {
		if it.AddedAt.After(cutoff) {
			fresh = append(fresh, it)
		}
	}
	e.items = fresh

	out := make([]RecentItem, len(fresh))
	copy(out, fresh)
	return out
}

// RecentStores bundles the two recent lists so wiring can hand each feature
// its own cap and retention window.
type RecentStores struct {
	Lectures RecentItemStore
	Decks    RecentItemStore
}

func NewRecentStores() *RecentStores {
	return &RecentStores{
		Lectures: NewRecentItems(3, 7*24*time.Hour),
		Decks:    NewRecentItems(5, 30*24*time.Hour),
	}
}
