package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
)

// Service exposes the per-session cart operations.
type Service interface {
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (LineItem, error)
	UpdateQuantity(ctx context.Context, sessionID, productID, size string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, productID, size string) error
	ListItems(ctx context.Context, sessionID string) ([]LineItem, error)
	Clear(ctx context.Context, sessionID string) error
	Total(ctx context.Context, sessionID string) (decimal.Decimal, error)
}

// AddItemInput carries the snapshot data for one add-to-cart call.
type AddItemInput struct {
	ProductID   string
	ProductName string
	Brand       string
	Size        string
	UnitPrice   decimal.Decimal
	Quantity    int
}

type service struct {
	store Store
}

// NewService builds a cart service over the provided store.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store}, nil
}

// AddItem merges by (productID, size), incrementing quantity when the line
// already exists. The unit price is captured at call time and never
// re-derived from the catalog afterwards.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (LineItem, error) {
	if err := requireSession(sessionID); err != nil {
		return LineItem{}, err
	}
	if strings.TrimSpace(input.ProductID) == "" {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(input.Size) == "" {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}
	if input.Quantity < 1 {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	if input.UnitPrice.IsNegative() {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
	}

	item := s.store.Upsert(sessionID, LineItem{
		ProductID:   input.ProductID,
		ProductName: input.ProductName,
		Brand:       input.Brand,
		Size:        input.Size,
		UnitPrice:   input.UnitPrice,
		Quantity:    input.Quantity,
	})
	return item, nil
}

// UpdateQuantity sets the line's quantity to exactly the given value;
// quantity <= 0 removes the line. Updating a missing line is a no-op.
func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID, size string, quantity int) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	s.store.SetQuantity(sessionID, productID, size, quantity)
	return nil
}

// RemoveItem is an idempotent delete.
func (s *service) RemoveItem(ctx context.Context, sessionID, productID, size string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	s.store.Remove(sessionID, productID, size)
	return nil
}

// ListItems returns the session's line items in insertion order.
func (s *service) ListItems(ctx context.Context, sessionID string) ([]LineItem, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.store.List(sessionID), nil
}

// Clear drops all items for the session.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	s.store.Clear(sessionID)
	return nil
}

// Total sums unitPrice*quantity in decimal. Unknown sessions total to zero.
func (s *service) Total(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	if err := requireSession(sessionID); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range s.store.List(sessionID) {
		total = total.Add(item.Subtotal())
	}
	return total, nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
