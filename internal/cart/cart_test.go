package cart

import (
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

func TestAddItemAggregatesQuantity(t *testing.T) {
	t.Parallel()

	c := NewCart()
	id := uuid.New()

	if err := c.AddItem(Item{ProductID: id, Name: "Linen Shirt", PriceCents: 4500, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddItem(Item{ProductID: id, Name: "Linen Shirt", PriceCents: 4500, Quantity: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Items) != 1 {
		t.Fatalf("expected single line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected aggregated quantity 5, got %d", c.Items[0].Quantity)
	}
	if c.TotalQuantity != 5 || c.TotalAmountCents != 22500 {
		t.Fatalf("unexpected totals: qty=%d amount=%d", c.TotalQuantity, c.TotalAmountCents)
	}
}

func TestAddItemRejectsInvalidLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		item Item
	}{
		{"missing id", Item{Name: "Tote", PriceCents: 100, Quantity: 1}},
		{"missing name", Item{ProductID: uuid.New(), PriceCents: 100, Quantity: 1}},
		{"negative price", Item{ProductID: uuid.New(), Name: "Tote", PriceCents: -1, Quantity: 1}},
		{"zero quantity", Item{ProductID: uuid.New(), Name: "Tote", PriceCents: 100, Quantity: 0}},
		{"negative quantity", Item{ProductID: uuid.New(), Name: "Tote", PriceCents: 100, Quantity: -2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCart()
			err := c.AddItem(tc.item)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error code: %v", err)
			}
			if !c.IsEmpty() {
				t.Fatal("cart should remain empty after rejected add")
			}
		})
	}
}

func TestUpdateItemAutoRemovesNonPositive(t *testing.T) {
	t.Parallel()

	c := NewCart()
	id := uuid.New()
	if err := c.AddItem(Item{ProductID: id, Name: "Cap", PriceCents: 1500, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.UpdateItem(id, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Contains(id) {
		t.Fatal("expected line removed for zero quantity")
	}
	if c.TotalQuantity != 0 || c.TotalAmountCents != 0 {
		t.Fatalf("unexpected totals after removal: qty=%d amount=%d", c.TotalQuantity, c.TotalAmountCents)
	}
}

func TestUpdateItemSetsQuantityDirectly(t *testing.T) {
	t.Parallel()

	c := NewCart()
	id := uuid.New()
	if err := c.AddItem(Item{ProductID: id, Name: "Cap", PriceCents: 1500, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.UpdateItem(id, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, ok := c.Item(id)
	if !ok || item.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %+v", item)
	}
	if c.TotalAmountCents != 10500 {
		t.Fatalf("unexpected total amount: %d", c.TotalAmountCents)
	}
}

func TestUpdateItemUnknownProduct(t *testing.T) {
	t.Parallel()

	c := NewCart()
	err := c.UpdateItem(uuid.New(), 3)
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	t.Parallel()

	c := NewCart()
	id := uuid.New()
	if err := c.AddItem(Item{ProductID: id, Name: "Scarf", PriceCents: 2000, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.RemoveItem(uuid.New())
	if len(c.Items) != 1 || c.TotalQuantity != 1 {
		t.Fatalf("removing absent id should not change the cart: %+v", c)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	t.Parallel()

	c := NewCart()
	if err := c.AddItem(Item{ProductID: uuid.New(), Name: "Belt", PriceCents: 900, Quantity: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Clear()
	c.Clear()

	if !c.IsEmpty() || c.TotalQuantity != 0 || c.TotalAmountCents != 0 {
		t.Fatalf("expected empty cart, got %+v", c)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	c := NewCart()
	id := uuid.New()
	if err := c.AddItem(Item{ProductID: id, Name: "Boots", PriceCents: 12000, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := c.Snapshot()
	c.Clear()

	if len(snap) != 1 || snap[0].ProductID != id {
		t.Fatalf("snapshot should survive later mutations: %+v", snap)
	}
}

func TestTotalsAcrossMixedLines(t *testing.T) {
	t.Parallel()

	c := NewCart()
	a, b := uuid.New(), uuid.New()
	if err := c.AddItem(Item{ProductID: a, Name: "Shirt", PriceCents: 2599, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddItem(Item{ProductID: b, Name: "Jeans", PriceCents: 7999, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.TotalQuantity != 3 {
		t.Fatalf("expected total quantity 3, got %d", c.TotalQuantity)
	}
	if want := int64(2*2599 + 7999); c.TotalAmountCents != want {
		t.Fatalf("expected total amount %d, got %d", want, c.TotalAmountCents)
	}
}
