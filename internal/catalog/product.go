package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
)

// CategoryAll is the sentinel that disables category/brand filtering.
const CategoryAll = "all"

// Product is an immutable catalog snapshot of one perfume decant listing.
// Sizes and Prices are index-aligned: Prices[i] is the decimal price string
// for Sizes[i].
type Product struct {
	ID                 string
	Name               string
	Brand              string
	Sizes              []string
	Prices             []string
	Category           string
	IsOnOffer          bool
	DiscountPercentage string
	OfferDescription   string
	Notes              []string
	Rating             float64
	InStock            bool
	ShowOnHomepage     bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Collection is a curated, ordered grouping of products for merchandising.
type Collection struct {
	ID          string
	Name        string
	Slug        string
	Description string
	ProductIDs  []string
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductInput carries the raw payload for product writes before validation.
type ProductInput struct {
	Name               string
	Brand              string
	Sizes              []string
	Prices             []string
	Category           string
	IsOnOffer          bool
	DiscountPercentage string
	OfferDescription   string
	Notes              []string
	Rating             float64
	InStock            bool
	ShowOnHomepage     bool
}

// ParseProduct normalizes and validates raw product data into a well-formed
// record. All write paths go through here so the pricing engine can assume
// aligned size/price tables and decimal-parsable price strings.
func ParseProduct(id string, input ProductInput) (Product, error) {
	product := Product{
		ID:                 strings.TrimSpace(id),
		Name:               strings.TrimSpace(input.Name),
		Brand:              strings.TrimSpace(input.Brand),
		Category:           strings.TrimSpace(input.Category),
		IsOnOffer:          input.IsOnOffer,
		DiscountPercentage: strings.TrimSpace(input.DiscountPercentage),
		OfferDescription:   strings.TrimSpace(input.OfferDescription),
		Rating:             input.Rating,
		InStock:            input.InStock,
		ShowOnHomepage:     input.ShowOnHomepage,
	}

	if product.Name == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if product.Brand == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product brand is required")
	}

	sizes, err := normalizeSizes(input.Sizes)
	if err != nil {
		return Product{}, err
	}
	product.Sizes = sizes

	prices, err := normalizePrices(input.Prices, len(sizes))
	if err != nil {
		return Product{}, err
	}
	product.Prices = prices

	if err := validateDiscount(product.DiscountPercentage); err != nil {
		return Product{}, err
	}

	if input.Rating < 0 || input.Rating > 5 {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}

	product.Notes = normalizeNotes(input.Notes)
	return product, nil
}

func normalizeSizes(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product requires at least one size")
	}
	seen := make(map[string]struct{}, len(raw))
	sizes := make([]string, 0, len(raw))
	for _, size := range raw {
		size = strings.TrimSpace(size)
		if size == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "size labels must be non-empty")
		}
		if _, dup := seen[size]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate size %q", size))
		}
		seen[size] = struct{}{}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

func normalizePrices(raw []string, sizeCount int) ([]string, error) {
	if len(raw) != sizeCount {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must align one-to-one with sizes")
	}
	prices := make([]string, 0, len(raw))
	for i, price := range raw {
		price = strings.TrimSpace(price)
		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("price at index %d is not a valid decimal", i))
		}
		if parsed.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("price at index %d must not be negative", i))
		}
		prices = append(prices, price)
	}
	return prices, nil
}

// validateDiscount rejects out-of-range percentages at write time. The
// original storefront never validated this field; accepting >100 would
// produce negative display prices.
func validateDiscount(raw string) error {
	if raw == "" {
		return nil
	}
	pct, err := decimal.NewFromString(raw)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percentage is not a valid decimal")
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 0 and 100")
	}
	return nil
}

func normalizeNotes(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	notes := make([]string, 0, len(raw))
	for _, note := range raw {
		note = strings.TrimSpace(note)
		if note == "" {
			continue
		}
		notes = append(notes, note)
	}
	return notes
}

// ParseCollection normalizes and validates a curated collection payload.
func ParseCollection(id string, input CollectionInput) (Collection, error) {
	collection := Collection{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.ToLower(strings.TrimSpace(input.Slug)),
		Description: strings.TrimSpace(input.Description),
		Position:    input.Position,
	}

	if collection.Name == "" {
		return Collection{}, pkgerrors.New(pkgerrors.CodeValidation, "collection name is required")
	}
	if collection.Slug == "" {
		return Collection{}, pkgerrors.New(pkgerrors.CodeValidation, "collection slug is required")
	}
	if strings.ContainsAny(collection.Slug, " /") {
		return Collection{}, pkgerrors.New(pkgerrors.CodeValidation, "collection slug must not contain spaces or slashes")
	}

	seen := make(map[string]struct{}, len(input.ProductIDs))
	for _, pid := range input.ProductIDs {
		pid = strings.TrimSpace(pid)
		if pid == "" {
			continue
		}
		if _, dup := seen[pid]; dup {
			continue
		}
		seen[pid] = struct{}{}
		collection.ProductIDs = append(collection.ProductIDs, pid)
	}

	return collection, nil
}

// CollectionInput carries the raw payload for collection writes.
type CollectionInput struct {
	Name        string
	Slug        string
	Description string
	ProductIDs  []string
	Position    int
}
