package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/decantiq/decantiq-backend/internal/catalog"
)

func decantProduct() catalog.Product {
	return catalog.Product{
		ID:                 "p1",
		Name:               "Aventus",
		Brand:              "Creed",
		Sizes:              []string{"5ml", "10ml"},
		Prices:             []string{"15.00", "25.00"},
		IsOnOffer:          true,
		DiscountPercentage: "20",
	}
}

func TestEffectivePriceDiscountScenario(t *testing.T) {
	quote, err := EffectivePrice(decantProduct(), "10ml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := quote.Display.StringFixed(2); got != "20.00" {
		t.Fatalf("expected display 20.00, got %s", got)
	}
	if got := quote.Original.StringFixed(2); got != "25.00" {
		t.Fatalf("expected original 25.00, got %s", got)
	}
	if !quote.IsDiscounted {
		t.Fatal("expected IsDiscounted true")
	}
}

func TestEffectivePriceMonotonicity(t *testing.T) {
	percentages := []string{"0.01", "5", "33.33", "50", "99.99", "100"}
	for _, pct := range percentages {
		product := decantProduct()
		product.DiscountPercentage = pct

		quote, err := EffectivePrice(product, "10ml")
		if err != nil {
			t.Fatalf("pct %s: unexpected error: %v", pct, err)
		}
		if !quote.Display.LessThan(quote.Original) {
			t.Fatalf("pct %s: expected display %s < original %s", pct, quote.Display, quote.Original)
		}
	}
}

func TestEffectivePriceDiscountOffInvariance(t *testing.T) {
	product := decantProduct()
	product.IsOnOffer = false
	// stale discount value must not leak into the displayed price
	product.DiscountPercentage = "45"

	quote, err := EffectivePrice(product, "5ml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Display.Equal(quote.Original) {
		t.Fatalf("expected display == original, got %s vs %s", quote.Display, quote.Original)
	}
	if quote.IsDiscounted {
		t.Fatal("expected IsDiscounted false")
	}
}

func TestEffectivePriceZeroDiscountIsNotAnOffer(t *testing.T) {
	product := decantProduct()
	product.DiscountPercentage = "0"

	quote, err := EffectivePrice(product, "5ml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.IsDiscounted {
		t.Fatal("expected zero discount to report IsDiscounted false")
	}
	if !quote.Display.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("unexpected display %s", quote.Display)
	}
}

func TestEffectivePriceFallbackIdempotence(t *testing.T) {
	product := decantProduct()

	fallback, err := EffectivePrice(product, "nonexistent-size")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := EffectivePrice(product, product.Sizes[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !fallback.Display.Equal(first.Display) || !fallback.Original.Equal(first.Original) {
		t.Fatalf("fallback quote %v differs from first-size quote %v", fallback, first)
	}
}

func TestEffectivePriceHalfUpRounding(t *testing.T) {
	product := decantProduct()
	product.Prices = []string{"10.01", "25.00"}
	product.DiscountPercentage = "50"

	quote, err := EffectivePrice(product, "5ml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 10.01 * 0.5 = 5.005 rounds half-up to 5.01
	if got := quote.Display.StringFixed(2); got != "5.01" {
		t.Fatalf("expected 5.01, got %s", got)
	}
}

func TestEffectivePriceClampsOutOfRangeDiscount(t *testing.T) {
	product := decantProduct()
	product.DiscountPercentage = "250"

	quote, err := EffectivePrice(product, "10ml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Display.IsNegative() {
		t.Fatalf("display price must never go negative, got %s", quote.Display)
	}
	if !quote.Display.IsZero() {
		t.Fatalf("expected clamp to 100%% -> zero display, got %s", quote.Display)
	}
}

func TestEffectivePriceMalformedPrice(t *testing.T) {
	product := decantProduct()
	product.Prices = []string{"not-a-price", "25.00"}

	if _, err := EffectivePrice(product, "5ml"); err == nil {
		t.Fatal("expected error for malformed price")
	}
}
