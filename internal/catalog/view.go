package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/decantiq/decantiq-backend/pkg/enums"
)

// ViewParams drives the catalog filter/sort view. Zero values disable the
// corresponding filter; Category and Brand also accept the "all" sentinel.
type ViewParams struct {
	SearchTerm   string
	Category     string
	Brand        string
	SortKey      enums.SortKey
	InStockOnly  bool
	HomepageOnly bool
}

// View filters and sorts a catalog snapshot. Filters are conjunctive, the
// sort is stable, and the input slice is never mutated.
func View(products []Product, params ViewParams) []Product {
	result := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(params.SearchTerm))

	for _, product := range products {
		if !matchesSearch(product, search) {
			continue
		}
		if !matchesExact(product.Category, params.Category) {
			continue
		}
		if !matchesExact(product.Brand, params.Brand) {
			continue
		}
		if params.InStockOnly && !product.InStock {
			continue
		}
		if params.HomepageOnly && !product.ShowOnHomepage {
			continue
		}
		result = append(result, product)
	}

	sortProducts(result, params.SortKey)
	return result
}

// matchesSearch does a case-insensitive substring match over name, brand and
// note tags. An empty term matches everything.
func matchesSearch(product Product, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(product.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(product.Brand), search) {
		return true
	}
	for _, note := range product.Notes {
		if strings.Contains(strings.ToLower(note), search) {
			return true
		}
	}
	return false
}

func matchesExact(value, filter string) bool {
	if filter == "" || filter == CategoryAll {
		return true
	}
	return value == filter
}

func sortProducts(products []Product, key enums.SortKey) {
	if !key.IsValid() {
		return
	}

	switch key {
	case enums.SortKeyName:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Name, products[j].Name) < 0
		})
	case enums.SortKeyBrand:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Brand, products[j].Brand) < 0
		})
	case enums.SortKeyPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return basePrice(products[i]).LessThan(basePrice(products[j]))
		})
	case enums.SortKeyPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return basePrice(products[j]).LessThan(basePrice(products[i]))
		})
	case enums.SortKeyRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}

// basePrice is the price at size index 0. Unparseable prices sort as zero so
// a single malformed document cannot take down the whole listing.
func basePrice(product Product) decimal.Decimal {
	if len(product.Prices) == 0 {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(product.Prices[0])
	if err != nil {
		return decimal.Zero
	}
	return price
}
