package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/decantiq/decantiq-backend/internal/catalog"
	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// Quote is the result of pricing one product size.
type Quote struct {
	Display      decimal.Decimal
	Original     decimal.Decimal
	IsDiscounted bool
}

// EffectivePrice computes the price to display for the chosen size and, when an
// offer applies, the original price shown struck through.
//
// A size missing from the product's size list falls back to the first declared
// size/price pair instead of failing; stale client selection state after a
// size-list edit must not break the storefront.
func EffectivePrice(product catalog.Product, size string) (Quote, error) {
	idx := indexOfSize(product.Sizes, size)

	if idx >= len(product.Prices) {
		return Quote{}, pkgerrors.New(pkgerrors.CodeInternal, "product prices are not aligned with sizes")
	}

	original, err := decimal.NewFromString(product.Prices[idx])
	if err != nil {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parsing product price")
	}

	pct, err := discountPercent(product)
	if err != nil {
		return Quote{}, err
	}

	if !product.IsOnOffer || pct.IsZero() {
		return Quote{Display: original, Original: original, IsDiscounted: false}, nil
	}

	multiplier := decimal.NewFromInt(1).Sub(pct.Div(oneHundred))
	display := original.Mul(multiplier).Round(2)
	return Quote{Display: display, Original: original, IsDiscounted: true}, nil
}

func indexOfSize(sizes []string, size string) int {
	for i, candidate := range sizes {
		if candidate == size {
			return i
		}
	}
	return 0
}

// discountPercent parses the product's discount and clamps it into [0,100].
// The write path rejects out-of-range values, so the clamp only matters for
// documents edited outside the API.
func discountPercent(product catalog.Product) (decimal.Decimal, error) {
	if product.DiscountPercentage == "" {
		return decimal.Zero, nil
	}
	pct, err := decimal.NewFromString(product.DiscountPercentage)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parsing discount percentage")
	}
	if pct.IsNegative() {
		return decimal.Zero, nil
	}
	if pct.GreaterThan(oneHundred) {
		return oneHundred, nil
	}
	return pct, nil
}
