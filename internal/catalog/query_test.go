package catalog

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/freshcart/pkg/enums"
)

func testProducts() []Product {
	return []Product{
		{ID: "1", Name: "Fresh Bananas", Description: "Sweet ripe bananas", Category: enums.ProductCategoryFruits, Price: 60, Rating: 4.5},
		{ID: "2", Name: "apple Juice", Description: "Cold pressed", Category: enums.ProductCategoryBeverages, Price: 110, Rating: 4.1},
		{ID: "3", Name: "Paneer", Description: "Soft cottage cheese", Category: enums.ProductCategoryDairy, Price: 90, Rating: 4.5},
		{ID: "4", Name: "Cashews", Description: "Roasted, goes well with fruits", Category: enums.ProductCategoryNuts, Price: 520, Rating: 4.7},
		{ID: "5", Name: "Ketchup", Description: "Tangy tomato", Category: enums.ProductCategoryCondiments, Price: 90, Rating: 4.2},
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyEmptyQueryAllReturnsWholeCatalog(t *testing.T) {
	// Listed in name order, so the default sort leaves catalog order intact.
	products := []Product{
		{ID: "2", Name: "apple Juice", Category: enums.ProductCategoryBeverages},
		{ID: "4", Name: "Cashews", Category: enums.ProductCategoryNuts},
		{ID: "1", Name: "Fresh Bananas", Category: enums.ProductCategoryFruits},
	}
	got := Apply(products, Query{Category: enums.CategoryAll})
	assert.Equal(t, ids(products), ids(got))

	assert.Len(t, Apply(testProducts(), Query{Category: enums.CategoryAll, Sort: enums.SortByRating}), len(testProducts()))
}

func TestApplyPriceLowScenario(t *testing.T) {
	products := []Product{
		{ID: "a", Name: "A", Category: enums.ProductCategoryFruits, Price: 100},
		{ID: "b", Name: "B", Category: enums.ProductCategoryFruits, Price: 50},
	}
	got := Apply(products, Query{Category: enums.CategoryAll, Sort: enums.SortByPriceLow})
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestApplyTextMatchesNameDescriptionAndCategory(t *testing.T) {
	products := testProducts()

	byName := Apply(products, Query{Text: "PANEER"})
	assert.Equal(t, []string{"3"}, ids(byName))

	byDescription := Apply(products, Query{Text: "tomato"})
	assert.Equal(t, []string{"5"}, ids(byDescription))

	// "fruits" hits product 1 by category and product 4 by description.
	byCategory := Apply(products, Query{Text: "fruits", Sort: enums.SortByPriceLow})
	assert.Equal(t, []string{"1", "4"}, ids(byCategory))

	assert.Len(t, Apply(products, Query{Text: ""}), len(products))
	assert.Empty(t, Apply(products, Query{Text: "   "}))
	assert.Empty(t, Apply(products, Query{Text: "caviar"}))
}

func TestApplyTextKeepsSurroundingSpaces(t *testing.T) {
	products := []Product{
		{ID: "1", Name: "Organic Milk", Category: enums.ProductCategoryDairy, Price: 70},
		{ID: "2", Name: "Milk Bread", Category: enums.ProductCategoryBakery, Price: 45},
	}
	assert.Equal(t, []string{"2"}, ids(Apply(products, Query{Text: "milk "})))
	assert.Equal(t, []string{"1"}, ids(Apply(products, Query{Text: " milk"})))
	assert.Equal(t, []string{"2", "1"}, ids(Apply(products, Query{Text: "milk"})))
}

func TestApplyCategoryAndTextAreCombined(t *testing.T) {
	products := testProducts()
	got := Apply(products, Query{Text: "fruits", Category: enums.ProductCategoryNuts})
	assert.Equal(t, []string{"4"}, ids(got))

	none := Apply(products, Query{Text: "paneer", Category: enums.ProductCategoryFruits})
	assert.Empty(t, none)
}

func TestApplySortKeys(t *testing.T) {
	products := testProducts()

	assert.Equal(t, []string{"1", "3", "5", "2", "4"}, ids(Apply(products, Query{Sort: enums.SortByPriceLow})))
	assert.Equal(t, []string{"4", "2", "3", "5", "1"}, ids(Apply(products, Query{Sort: enums.SortByPriceHigh})))
	assert.Equal(t, []string{"4", "1", "3", "5", "2"}, ids(Apply(products, Query{Sort: enums.SortByRating})))
}

func TestApplyNameSortIsLocaleAware(t *testing.T) {
	products := testProducts()
	got := Apply(products, Query{Sort: enums.SortByName})
	// Byte order would put "apple Juice" last; collation ignores case.
	assert.Equal(t, []string{"2", "4", "1", "5", "3"}, ids(got))
}

func TestApplyUnknownSortFallsBackToName(t *testing.T) {
	products := testProducts()
	assert.Equal(t,
		ids(Apply(products, Query{Sort: enums.SortByName})),
		ids(Apply(products, Query{Sort: "bestselling"})),
	)
}

func TestApplyIsIdempotent(t *testing.T) {
	products := testProducts()
	queries := []Query{
		{},
		{Text: "e", Sort: enums.SortByPriceHigh},
		{Category: enums.ProductCategoryDairy, Sort: enums.SortByRating},
		{Text: "fruits", Sort: enums.SortByPriceLow},
	}
	for _, q := range queries {
		once := Apply(products, q)
		twice := Apply(once, q)
		assert.Equal(t, ids(once), ids(twice), "query %+v", q)
	}
}

func TestApplyPriceSortsMirrorWithoutTies(t *testing.T) {
	products := []Product{
		{ID: "x", Name: "X", Category: enums.ProductCategorySnacks, Price: 20},
		{ID: "y", Name: "Y", Category: enums.ProductCategorySnacks, Price: 125},
		{ID: "z", Name: "Z", Category: enums.ProductCategorySnacks, Price: 75},
	}
	low := ids(Apply(products, Query{Sort: enums.SortByPriceLow}))
	high := ids(Apply(products, Query{Sort: enums.SortByPriceHigh}))
	slices.Reverse(low)
	assert.Equal(t, high, low)
}

func TestApplyTiesKeepCatalogOrder(t *testing.T) {
	products := testProducts()
	// Products 3 and 5 share price 90; products 1 and 3 share rating 4.5.
	low := ids(Apply(products, Query{Sort: enums.SortByPriceLow}))
	require.Equal(t, []string{"1", "3", "5", "2", "4"}, low)

	high := ids(Apply(products, Query{Sort: enums.SortByPriceHigh}))
	assert.Less(t, slices.Index(high, "3"), slices.Index(high, "5"))

	rating := ids(Apply(products, Query{Sort: enums.SortByRating}))
	assert.Less(t, slices.Index(rating, "1"), slices.Index(rating, "3"))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	products := testProducts()
	_ = Apply(products, Query{Text: "a", Sort: enums.SortByPriceHigh})
	if diff := cmp.Diff(testProducts(), products); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}
