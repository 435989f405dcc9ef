package memcache

import (
	"fmt"
	"testing"
	"time"
)

func TestRecentItemsCap(t *testing.T) {
	store := NewRecentItems(3, time.Hour)

	for i := 0; i < 5; i++ {
		store.Add("user", RecentItem{ID: fmt.Sprintf("id-%d", i), Title: "t"})
	}

	items := store.List("user")
	if len(items) != 3 {
		t.Fatalf("got %d items, want cap of 3", len(items))
	}
	// Newest first, oldest dropped.
	if items[0].ID != "id-4" || items[2].ID != "id-2" {
		t.Errorf("unexpected order: %v", items)
	}
}

func TestRecentItemsDeduplicates(t *testing.T) {
	store := NewRecentItems(3, time.Hour)

	store.Add("user", RecentItem{ID: "a", Title: "first"})
	store.Add("user", RecentItem{ID: "b", Title: "other"})
	store.Add("user", RecentItem{ID: "a", Title: "updated"})

	items := store.List("user")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "a" || items[0].Title != "updated" {
		t.Errorf("re-added item should move to the front with new title: %v", items)
	}
}

func TestRecentItemsExpiry(t *testing.T) {
	store := NewRecentItems(5, time.Hour)

	store.Add("user", RecentItem{ID: "old", AddedAt: time.Now().Add(-2 * time.Hour)})
	store.Add("user", RecentItem{ID: "fresh"})

	items := store.List("user")
	if len(items) != 1 || items[0].ID != "fresh" {
		t.Errorf("expired items should be pruned on read: %v", items)
	}
}

func TestRecentItemsIsolatedPerUser(t *testing.T) {
	store := NewRecentItems(3, time.Hour)
	store.Add("alice", RecentItem{ID: "a"})

	if got := store.List("bob"); len(got) != 0 {
		t.Errorf("bob should have no items, got %v", got)
	}
	if store.List("alice")[0].ID != "a" {
		t.Error("alice's items missing")
	}
}

func TestRecentStoresDefaults(t *testing.T) {
	stores := NewRecentStores()
	if stores.Lectures == nil || stores.Decks == nil {
		t.Fatal("both recent stores must be initialized")
	}
}

func TestResetTokensSingleUse(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "user@example.com", time.Minute)

	if email, ok := store.Peek("tok"); !ok || email != "user@example.com" {
		t.Fatalf("peek = %q,%v", email, ok)
	}
	if got := store.Consume("tok"); got != "user@example.com" {
		t.Fatalf("consume = %q", got)
	}
	if got := store.Consume("tok"); got != "" {
		t.Error("token should be single-use")
	}
}

func TestResetTokensExpire(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "user@example.com", -time.Second)

	if got := store.Consume("tok"); got != "" {
		t.Errorf("expired token should not resolve, got %q", got)
	}
}
