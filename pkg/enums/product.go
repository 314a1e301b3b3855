package enums

import (
	"fmt"
	"strings"
)

// ProductCategory represents the canonical grocery aisles supported by the catalog.
type ProductCategory string

const (
	ProductCategoryFruits     ProductCategory = "Fruits"
	ProductCategoryVegetables ProductCategory = "Vegetables"
	ProductCategoryDairy      ProductCategory = "Dairy"
	ProductCategoryBakery     ProductCategory = "Bakery"
	ProductCategoryGrains     ProductCategory = "Grains"
	ProductCategoryBeverages  ProductCategory = "Beverages"
	ProductCategoryMeat       ProductCategory = "Meat"
	ProductCategorySeafood    ProductCategory = "Seafood"
	ProductCategoryNuts       ProductCategory = "Nuts"
	ProductCategoryCondiments ProductCategory = "Condiments"
	ProductCategorySnacks     ProductCategory = "Snacks"

	// CategoryAll disables category filtering. It is never assigned to a product.
	CategoryAll ProductCategory = "All"
)

var validProductCategories = []ProductCategory{
	ProductCategoryFruits,
	ProductCategoryVegetables,
	ProductCategoryDairy,
	ProductCategoryBakery,
	ProductCategoryGrains,
	ProductCategoryBeverages,
	ProductCategoryMeat,
	ProductCategorySeafood,
	ProductCategoryNuts,
	ProductCategoryCondiments,
	ProductCategorySnacks,
}

// ProductCategories returns the assignable categories in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a category a product may carry.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsAll reports whether the value is the no-filter sentinel.
func (c ProductCategory) IsAll() bool {
	return c == "" || c == CategoryAll
}

// ParseProductCategory converts raw filter input into a ProductCategory.
// Matching is case-insensitive; blank input and "all" resolve to CategoryAll.
func ParseProductCategory(value string) (ProductCategory, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, string(CategoryAll)) {
		return CategoryAll, nil
	}
	for _, candidate := range validProductCategories {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// SortKey selects the ordering applied to catalog results.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
	SortByRating    SortKey = "rating"
)

var validSortKeys = []SortKey{
	SortByName,
	SortByPriceLow,
	SortByPriceHigh,
	SortByRating,
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

// ParseSortKey never fails: anything unrecognised orders by name.
func ParseSortKey(value string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	if key.IsValid() {
		return key
	}
	return SortByName
}
