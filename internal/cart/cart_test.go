package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testProduct(name, price string) Product {
	return Product{
		ID:         uuid.New(),
		Name:       name,
		PricePerKG: decimal.RequireFromString(price),
	}
}

func TestAddItemMergesPerProduct(t *testing.T) {
	beef := testProduct("entrecote", "28.90")
	lamb := testProduct("gigot", "19.50")

	var c Cart
	c.AddItem(beef)
	c.AddItem(lamb)
	c.AddItem(beef)
	c.AddItem(beef)

	if len(c.Items) != 2 {
		t.Fatalf("expected one item per product, got %d items", len(c.Items))
	}
	if c.Items[0].Product.ID != beef.ID {
		t.Fatal("insertion order not preserved")
	}
	if !c.Items[0].QuantityKG.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected merged quantity 3, got %s", c.Items[0].QuantityKG)
	}
	if !c.Items[1].QuantityKG.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected quantity 1, got %s", c.Items[1].QuantityKG)
	}
}

func TestQuantityNeverDropsBelowOne(t *testing.T) {
	beef := testProduct("entrecote", "28.90")

	var c Cart
	c.AddItem(beef)
	c.AddItem(beef)
	c.AddItem(beef)

	c.UpdateQuantity(beef.ID, decimal.Zero)

	if len(c.Items) != 1 {
		t.Fatalf("update must not remove items, got %d items", len(c.Items))
	}
	if !c.Items[0].QuantityKG.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("quantity 0 should floor to 1, got %s", c.Items[0].QuantityKG)
	}

	c.UpdateQuantity(beef.ID, decimal.NewFromInt(-4))
	if !c.Items[0].QuantityKG.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("negative quantity should floor to 1, got %s", c.Items[0].QuantityKG)
	}
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	var c Cart
	c.AddItem(testProduct("entrecote", "28.90"))
	c.UpdateQuantity(uuid.New(), decimal.NewFromInt(5))
	if !c.Items[0].QuantityKG.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("unexpected quantity %s", c.Items[0].QuantityKG)
	}
}

func TestRemoveItem(t *testing.T) {
	beef := testProduct("entrecote", "28.90")
	lamb := testProduct("gigot", "19.50")

	var c Cart
	c.AddItem(beef)
	c.AddItem(lamb)

	c.RemoveItem(beef.ID)
	if len(c.Items) != 1 || c.Items[0].Product.ID != lamb.ID {
		t.Fatalf("unexpected items after removal: %+v", c.Items)
	}

	c.RemoveItem(uuid.New())
	if len(c.Items) != 1 {
		t.Fatal("removing an absent product must be a no-op")
	}
}

func TestTotalAndCount(t *testing.T) {
	a := testProduct("a", "12.50")
	b := testProduct("b", "8.00")

	var c Cart
	c.AddItem(a)
	c.AddItem(a)
	c.AddItem(b)

	if want := decimal.RequireFromString("33.00"); !c.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", c.Total(), want)
	}
	if want := decimal.NewFromInt(3); !c.Count().Equal(want) {
		t.Fatalf("count = %s, want %s", c.Count(), want)
	}

	c.UpdateQuantity(a.ID, decimal.RequireFromString("1.5"))
	if want := decimal.RequireFromString("26.75"); !c.Total().Equal(want) {
		t.Fatalf("total after fractional update = %s, want %s", c.Total(), want)
	}

	c.UpdateQuantity(a.ID, decimal.RequireFromString("0.5"))
	if want := decimal.RequireFromString("20.50"); !c.Total().Equal(want) {
		t.Fatalf("total after floored update = %s, want %s", c.Total(), want)
	}
}

func TestClear(t *testing.T) {
	var c Cart
	c.AddItem(testProduct("a", "12.50"))
	c.Clear()
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(c.Items))
	}
}
