package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/freshcart/pkg/enums"
	pkgerrors "github.com/angelmondragon/freshcart/pkg/errors"
	"github.com/angelmondragon/freshcart/pkg/pagination"
)

// Service exposes read access to the product catalog.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, id string) (*Product, error)
	Categories(ctx context.Context) []CategorySummary
}

type queryRecorder interface {
	ObserveCatalogQuery(sort string, results int)
}

// ListInput carries the browse filters plus the page window.
type ListInput struct {
	Query      Query
	Pagination pagination.Params
}

// ListResult is one page of the filtered and sorted catalog.
type ListResult struct {
	Items      []Product `json:"items"`
	Total      int       `json:"total"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// CategorySummary is a category facet with product counts.
type CategorySummary struct {
	Category enums.ProductCategory `json:"category"`
	Count    int                   `json:"count"`
	InStock  int                   `json:"in_stock"`
}

type service struct {
	catalog *Catalog
	engine  Engine
	metrics queryRecorder
}

// NewService constructs a catalog service over a loaded catalog.
// The recorder may be nil.
func NewService(catalog *Catalog, engine Engine, metrics queryRecorder) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	return &service{
		catalog: catalog,
		engine:  engine,
		metrics: metrics,
	}, nil
}

// List runs the query over the whole catalog and returns the requested page.
func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	matches := s.engine.Apply(s.catalog.All(), input.Query)

	page, next, err := pagination.Window(matches, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	if s.metrics != nil {
		s.metrics.ObserveCatalogQuery(enums.ParseSortKey(string(input.Query.Sort)).String(), len(matches))
	}

	return &ListResult{
		Items:      page,
		Total:      len(matches),
		NextCursor: next,
	}, nil
}

// Get returns a single product or NOT_FOUND.
func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.Invalid("product_id", "product id is required")
	}
	product, ok := s.catalog.Get(id)
	if !ok {
		return nil, pkgerrors.NotFound("product", id)
	}
	return &product, nil
}

// Categories lists the "All" facet followed by every category in display order.
func (s *service) Categories(ctx context.Context) []CategorySummary {
	byCategory := map[enums.ProductCategory]*CategorySummary{}
	all := CategorySummary{Category: enums.CategoryAll}
	for _, p := range s.catalog.All() {
		entry, ok := byCategory[p.Category]
		if !ok {
			entry = &CategorySummary{Category: p.Category}
			byCategory[p.Category] = entry
		}
		entry.Count++
		all.Count++
		if p.InStock {
			entry.InStock++
			all.InStock++
		}
	}

	out := []CategorySummary{all}
	for _, category := range enums.ProductCategories() {
		if entry, ok := byCategory[category]; ok {
			out = append(out, *entry)
			continue
		}
		out = append(out, CategorySummary{Category: category})
	}
	return out
}
