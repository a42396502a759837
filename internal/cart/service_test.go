package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewMemoryStore())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func addInput(productID, size, price string, qty int) AddItemInput {
	return AddItemInput{
		ProductID:   productID,
		ProductName: "Aventus Decant",
		Brand:       "Creed",
		Size:        size,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
	}
}

func TestAddItemMergeLaw(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "10.00", 1)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	item, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "10.00", 2))
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", item.Quantity)
	}

	items, err := svc.ListItems(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one line item, got %d", len(items))
	}
}

func TestAddItemKeepsSnapshotPrice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "10.00", 1)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	// catalog price changed mid-session; the existing line must keep 10.00
	item, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "12.00", 1))
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if got := item.UnitPrice.StringFixed(2); got != "10.00" {
		t.Fatalf("expected snapshot price 10.00, got %s", got)
	}
}

func TestCartTotalScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "15.00", 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "15.00", 1)); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := svc.ListItems(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one item with quantity 2, got %+v", items)
	}

	total, err := svc.Total(ctx, "s1")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if got := total.StringFixed(2); got != "30.00" {
		t.Fatalf("expected total 30.00, got %s", got)
	}
}

func TestTotalAdditivity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "15.00", 2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", addInput("P2", "10ml", "19.99", 3)); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := svc.ListItems(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Subtotal())
	}

	total, err := svc.Total(ctx, "s1")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.Equal(sum) {
		t.Fatalf("total %s != item sum %s", total, sum)
	}
}

func TestUpdateQuantityToZeroRemoves(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "15.00", 2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.UpdateQuantity(ctx, "s1", "P1", "5ml", 0); err != nil {
		t.Fatalf("update: %v", err)
	}

	items, err := svc.ListItems(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}

	// removing again is a no-op, not an error
	if err := svc.UpdateQuantity(ctx, "s1", "P1", "5ml", 0); err != nil {
		t.Fatalf("second update: %v", err)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.RemoveItem(ctx, "s1", "missing", "5ml"); err != nil {
		t.Fatalf("remove on empty cart: %v", err)
	}
}

func TestAddItemRejectsInvalidQuantity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "15.00", 0))
	if err == nil {
		t.Fatal("expected validation error for zero quantity")
	}
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected CodeValidation, got %v", err)
	}

	items, listErr := svc.ListItems(ctx, "s1")
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(items) != 0 {
		t.Fatal("cart must be unchanged after a rejected add")
	}
}

func TestTotalUnknownSessionIsZero(t *testing.T) {
	svc := newTestService(t)

	total, err := svc.Total(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero total, got %s", total)
	}
}

func TestListItemsPreservesInsertionOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ids := []string{"P3", "P1", "P2"}
	for _, id := range ids {
		if _, err := svc.AddItem(ctx, "s1", addInput(id, "5ml", "10.00", 1)); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	items, err := svc.ListItems(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, id := range ids {
		if items[i].ProductID != id {
			t.Fatalf("expected %s at position %d, got %s", id, i, items[i].ProductID)
		}
	}
}

func TestSessionIsolation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "10.00", 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx, "s2"); err != nil {
		t.Fatalf("clear other session: %v", err)
	}

	items, err := svc.ListItems(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatal("clearing one session must not touch another")
	}
}

func TestConcurrentAddsDoNotLoseIncrements(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, "s1", addInput("P1", "5ml", "10.00", 1)); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	items, err := svc.ListItems(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != workers {
		t.Fatalf("lost increments: expected quantity %d, got %d", workers, items[0].Quantity)
	}
}
