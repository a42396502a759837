package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/decantiq/decantiq-backend/internal/cart"
	"github.com/decantiq/decantiq-backend/internal/orders"
	"github.com/decantiq/decantiq-backend/pkg/db/models"
	"github.com/decantiq/decantiq-backend/pkg/enums"
	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the checkout flow. Payment capture itself is external;
// Confirm is what the payment component calls back into on success.
type Service interface {
	Quote(ctx context.Context, sessionID string) (*QuoteResult, error)
	Confirm(ctx context.Context, sessionID string, input ConfirmInput) (*models.Order, error)
}

// QuoteResult is the cart snapshot handed to the payment step.
type QuoteResult struct {
	Items []cart.LineItem
	Total decimal.Decimal
}

// ConfirmInput carries the buyer data required to persist an order.
type ConfirmInput struct {
	Email          string
	IdempotencyKey string
}

type service struct {
	carts cart.Service
	repo  orders.Repository
	tx    txRunner
}

// NewService builds a checkout service over the cart and order stack.
func NewService(carts cart.Service, repo orders.Repository, tx txRunner) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{carts: carts, repo: repo, tx: tx}, nil
}

// Quote returns the session's line items and decimal total.
func (s *service) Quote(ctx context.Context, sessionID string) (*QuoteResult, error) {
	items, err := s.carts.ListItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	total, err := s.carts.Total(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Items: items, Total: total}, nil
}

// Confirm persists the cart as a confirmed order and clears the cart. When an
// idempotency key is supplied and an order already carries it, that order is
// returned unchanged instead of writing a duplicate.
func (s *service) Confirm(ctx context.Context, sessionID string, input ConfirmInput) (*models.Order, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	if key != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, key)
		if err == nil {
			return existing, nil
		}
		if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
			return nil, err
		}
	}

	items, err := s.carts.ListItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := buildOrder(sessionID, email, key, items)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, createErr := s.repo.WithTx(tx).Create(ctx, order)
		return createErr
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting order")
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return order, nil
}

func buildOrder(sessionID, email, idempotencyKey string, items []cart.LineItem) *models.Order {
	order := &models.Order{
		SessionID: sessionID,
		Email:     email,
		Status:    enums.OrderStatusConfirmed,
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = &idempotencyKey
	}

	var subtotal int64
	for _, item := range items {
		unitCents := toCents(item.UnitPrice)
		lineTotal := unitCents * int64(item.Quantity)
		subtotal += lineTotal
		order.Items = append(order.Items, models.OrderLineItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Brand:          item.Brand,
			Size:           item.Size,
			UnitPriceCents: unitCents,
			Quantity:       item.Quantity,
			TotalCents:     lineTotal,
		})
	}

	order.SubtotalCents = subtotal
	order.TotalCents = subtotal
	return order
}

// toCents converts a decimal amount to integer cents, rounding half-up at
// the second decimal place.
func toCents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}
