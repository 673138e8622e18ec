package session

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMemoryStore_MarkVisit(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	first, err := store.MarkVisit(ctx, "session-a")
	if err != nil {
		t.Fatalf("MarkVisit: %v", err)
	}
	if !first {
		t.Error("first MarkVisit should report true")
	}

	again, err := store.MarkVisit(ctx, "session-a")
	if err != nil {
		t.Fatalf("MarkVisit: %v", err)
	}
	if again {
		t.Error("repeat MarkVisit should report false")
	}

	other, err := store.MarkVisit(ctx, "session-b")
	if err != nil {
		t.Fatalf("MarkVisit: %v", err)
	}
	if !other {
		t.Error("a different session should count as first")
	}
}

func TestMemoryStore_MarkerExpires(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	if first, _ := store.MarkVisit(ctx, "session-a"); !first {
		t.Fatal("first MarkVisit should report true")
	}

	time.Sleep(25 * time.Millisecond)

	if first, _ := store.MarkVisit(ctx, "session-a"); !first {
		t.Error("an expired marker should count as first again")
	}
}

func TestMemoryStore_DefaultTTL(t *testing.T) {
	store := NewMemoryStore(0)
	if store.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", store.ttl, DefaultTTL)
	}
}

func TestRedisStore_MarkVisit(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis integration test")
	}

	store, err := NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), time.Minute)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	id := "test-" + time.Now().Format("20060102150405.000")
	first, err := store.MarkVisit(ctx, id)
	if err != nil {
		t.Fatalf("MarkVisit: %v", err)
	}
	if !first {
		t.Error("first MarkVisit should report true")
	}
	if again, _ := store.MarkVisit(ctx, id); again {
		t.Error("repeat MarkVisit should report false")
	}
}
