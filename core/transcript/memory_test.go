package transcript

import (
	"context"
	"testing"
	"time"
)

func entryAt(role, content string, offset time.Duration) Entry {
	return Entry{
		ID:        content,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().Add(offset),
	}
}

func TestMemoryStoreLoadReturnsOldestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i, content := range []string{"first", "second", "third"} {
		if err := store.Append(ctx, Anonymous, entryAt("user", content, time.Duration(i))); err != nil {
			t.Fatalf("expected append to succeed, got %v", err)
		}
	}

	entries, err := store.Load(ctx, Anonymous, 2)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}

	if len(entries) != 2 || entries[0].Content != "second" || entries[1].Content != "third" {
		t.Fatalf("expected the two most recent entries oldest first, got %+v", entries)
	}
}

func TestMemoryStoreLoadIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Append(ctx, Anonymous, entryAt("user", "hello", 0))
	store.Append(ctx, Anonymous, entryAt("assistant", "hi there", 1))

	first, err := store.Load(ctx, Anonymous, 50)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}
	second, err := store.Load(ctx, Anonymous, 50)
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical results, got %d and %d entries", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical results at %d, got %+v and %+v", i, first[i], second[i])
		}
	}
}

func TestMemoryStoreClearIsScoped(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	authenticated := Scope{UserID: "user-1"}

	store.Append(ctx, Anonymous, entryAt("user", "anonymous entry", 0))
	store.Append(ctx, authenticated, entryAt("user", "authenticated entry", 0))

	if err := store.Clear(ctx, authenticated); err != nil {
		t.Fatalf("expected clear to succeed, got %v", err)
	}

	remaining, _ := store.Load(ctx, Anonymous, 50)
	if len(remaining) != 1 || remaining[0].Content != "anonymous entry" {
		t.Fatalf("expected the anonymous scope to be untouched, got %+v", remaining)
	}

	cleared, _ := store.Load(ctx, authenticated, 50)
	if len(cleared) != 0 {
		t.Fatalf("expected the authenticated scope to be empty, got %+v", cleared)
	}
}
