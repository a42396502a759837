package enums

import "fmt"

// SortKey enumerates the orderings the catalog view supports.
type SortKey string

const (
	SortKeyName      SortKey = "name"
	SortKeyBrand     SortKey = "brand"
	SortKeyPriceLow  SortKey = "price-low"
	SortKeyPriceHigh SortKey = "price-high"
	SortKeyRating    SortKey = "rating"
)

var validSortKeys = []SortKey{
	SortKeyName,
	SortKeyBrand,
	SortKeyPriceLow,
	SortKeyPriceHigh,
	SortKeyRating,
}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SortKey.
func (k SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
