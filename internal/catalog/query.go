package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/angelmondragon/freshcart/pkg/enums"
)

// Query captures the browse filters coming from the search bar and the
// category and sort controls.
type Query struct {
	Text     string
	Category enums.ProductCategory
	Sort     enums.SortKey
}

// Engine applies queries to product lists. The zero value collates names
// using English rules.
type Engine struct {
	Language language.Tag
}

// Apply filters and sorts with English name collation.
func Apply(products []Product, q Query) []Product {
	return Engine{}.Apply(products, q)
}

// Apply returns the products matching both the text and category filters,
// ordered by the query's sort key. The text is matched as typed, spaces
// included; only an empty text matches everything. The input slice is left
// untouched and products with equal sort keys keep their input order.
func (e Engine) Apply(products []Product, q Query) []Product {
	needle := strings.ToLower(q.Text)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		if !q.Category.IsAll() && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	switch enums.ParseSortKey(string(q.Sort)) {
	case enums.SortByPriceLow:
		slices.SortStableFunc(out, func(a, b Product) int { return compareFloat(a.Price, b.Price) })
	case enums.SortByPriceHigh:
		slices.SortStableFunc(out, func(a, b Product) int { return compareFloat(b.Price, a.Price) })
	case enums.SortByRating:
		slices.SortStableFunc(out, func(a, b Product) int { return compareFloat(b.Rating, a.Rating) })
	default:
		// collate.Collator keeps scratch buffers, so each call gets its own.
		col := collate.New(e.tag())
		slices.SortStableFunc(out, func(a, b Product) int { return col.CompareString(a.Name, b.Name) })
	}
	return out
}

func (e Engine) tag() language.Tag {
	if e.Language == language.Und {
		return language.English
	}
	return e.Language
}

func matchesText(p Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(string(p.Category)), needle)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
