package enums

import "testing"

func TestParseProductCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    ProductCategory
		wantErr bool
	}{
		{in: "Fruits", want: ProductCategoryFruits},
		{in: "  dairy ", want: ProductCategoryDairy},
		{in: "ALL", want: CategoryAll},
		{in: "", want: CategoryAll},
		{in: "Toys", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseProductCategory(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseProductCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoryAllIsNotAssignable(t *testing.T) {
	if CategoryAll.IsValid() {
		t.Fatal("sentinel must not be a valid product category")
	}
	if !CategoryAll.IsAll() || !ProductCategory("").IsAll() {
		t.Fatal("expected sentinel and blank to mean all")
	}
	if ProductCategorySnacks.IsAll() {
		t.Fatal("concrete category must not mean all")
	}
}

func TestProductCategoriesReturnsCopy(t *testing.T) {
	cats := ProductCategories()
	if len(cats) != 11 {
		t.Fatalf("expected 11 categories, got %d", len(cats))
	}
	cats[0] = "Mutated"
	if ProductCategories()[0] != ProductCategoryFruits {
		t.Fatal("ProductCategories leaked internal slice")
	}
}

func TestParseSortKeyFallsBackToName(t *testing.T) {
	cases := map[string]SortKey{
		"price-low":  SortByPriceLow,
		"PRICE-HIGH": SortByPriceHigh,
		"rating":     SortByRating,
		"name":       SortByName,
		"":           SortByName,
		"popularity": SortByName,
	}
	for in, want := range cases {
		if got := ParseSortKey(in); got != want {
			t.Fatalf("ParseSortKey(%q) = %q, want %q", in, got, want)
		}
	}
}
