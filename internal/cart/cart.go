package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one row in a session cart, uniquely keyed by (ProductID, Size).
// UnitPrice is a snapshot captured when the item was first added; later
// catalog price changes never alter items already in the cart.
type LineItem struct {
	ProductID   string
	ProductName string
	Brand       string
	Size        string
	UnitPrice   decimal.Decimal
	Quantity    int
	AddedAt     time.Time
}

// Subtotal returns unit price times quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
