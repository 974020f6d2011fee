package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var out string
	if err := store.GetJSON(ctx, "missing", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.SetJSON(ctx, "k", "hello"); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}
	if err := store.GetJSON(ctx, "k", &out); err != nil || out != "hello" {
		t.Fatalf("GetJSON = (%q, %v)", out, err)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.GetJSON(ctx, "k", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("deleting a missing key must be a no-op, got %v", err)
	}
}

func TestMemoryStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	entries, err := store.ListJSON(ctx, "queue")
	if err != nil || len(entries) != 0 {
		t.Fatalf("missing list should be empty, got (%v, %v)", entries, err)
	}

	for _, v := range []int{1, 2, 3} {
		if err := store.AppendJSON(ctx, "queue", v); err != nil {
			t.Fatalf("AppendJSON failed: %v", err)
		}
	}

	entries, err = store.ListJSON(ctx, "queue")
	if err != nil {
		t.Fatalf("ListJSON failed: %v", err)
	}
	if len(entries) != 3 || entries[0] != "1" || entries[2] != "3" {
		t.Fatalf("entries must come back oldest first, got %v", entries)
	}
}

func TestMemoryStoreLastWriterWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.SetJSON(ctx, "k", "first"); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}
	if err := store.SetJSON(ctx, "k", "second"); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var out string
	if err := store.GetJSON(ctx, "k", &out); err != nil || out != "second" {
		t.Fatalf("GetJSON = (%q, %v), want second", out, err)
	}
}
