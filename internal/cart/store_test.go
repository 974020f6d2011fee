package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/karimbenali/boucherie-backend/pkg/kv"
)

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	store, err := NewStore(mem, func(sessionID string) string { return "cart:" + sessionID }, nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, mem
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	beef := testProduct("entrecote", "28.90")
	if _, err := store.AddItem(ctx, "s1", beef); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := store.UpdateQuantity(ctx, "s1", beef.ID, decimal.NewFromInt(2)); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}

	reloaded := store.Load(ctx, "s1")
	if len(reloaded.Items) != 1 {
		t.Fatalf("expected 1 item after reload, got %d", len(reloaded.Items))
	}
	item := reloaded.Items[0]
	if item.Product.ID != beef.ID || item.Product.Name != "entrecote" {
		t.Fatalf("product not preserved: %+v", item.Product)
	}
	if !item.QuantityKG.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("quantity not preserved: %s", item.QuantityKG)
	}
	if !item.Product.PricePerKG.Equal(decimal.RequireFromString("28.90")) {
		t.Fatalf("price not preserved: %s", item.Product.PricePerKG)
	}
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if _, err := store.AddItem(ctx, "s1", testProduct("a", "10.00")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if got := store.Load(ctx, "s2"); len(got.Items) != 0 {
		t.Fatalf("expected empty cart for other session, got %d items", len(got.Items))
	}
}

func TestStoreDiscardsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	mem.SetRaw("cart:s1", "{not json")

	if got := store.Load(ctx, "s1"); len(got.Items) != 0 {
		t.Fatalf("corrupt snapshot should yield empty cart, got %+v", got)
	}

	// the store stays usable afterwards
	if _, err := store.AddItem(ctx, "s1", testProduct("a", "10.00")); err != nil {
		t.Fatalf("AddItem after corrupt load failed: %v", err)
	}
	if got := store.Load(ctx, "s1"); len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
}

func TestStoreClearPersistsEmptyCart(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if _, err := store.AddItem(ctx, "s1", testProduct("a", "10.00")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := store.Load(ctx, "s1"); len(got.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(got.Items))
	}
}
