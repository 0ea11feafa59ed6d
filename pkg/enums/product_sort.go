package enums

import "fmt"

// ProductSort selects the comparator for catalog listings.
type ProductSort string

const (
	ProductSortLatest    ProductSort = "latest"
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
)

var validProductSorts = []ProductSort{
	ProductSortLatest,
	ProductSortPriceLow,
	ProductSortPriceHigh,
}

func (p ProductSort) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductSort.
func (p ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductSort converts raw input into a ProductSort.
func ParseProductSort(value string) (ProductSort, error) {
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
