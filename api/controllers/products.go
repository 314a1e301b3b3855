package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/freshcart/api/responses"
	"github.com/angelmondragon/freshcart/api/validators"
	"github.com/angelmondragon/freshcart/internal/catalog"
	"github.com/angelmondragon/freshcart/pkg/enums"
	pkgerrors "github.com/angelmondragon/freshcart/pkg/errors"
	"github.com/angelmondragon/freshcart/pkg/logger"
	"github.com/angelmondragon/freshcart/pkg/pagination"
)

const (
	maxSearchLen = 100
	maxCursorLen = 64
)

// ListProducts serves the storefront grid: ?q=&category=&sort=&limit=&cursor=.
func ListProducts(svc catalog.Service, defaultLimit int, logg *logger.Logger) http.HandlerFunc {
	if defaultLimit <= 0 {
		defaultLimit = pagination.DefaultLimit
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		category, err := enums.ParseProductCategory(r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category").
				WithDetails(map[string]any{"field": "category", "allowed": enums.ProductCategories()}))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), catalog.ListInput{
			Query: catalog.Query{
				Text:     validators.ParseQueryText(r, "q", maxSearchLen),
				Category: category,
				Sort:     enums.ParseSortKey(r.URL.Query().Get("sort")),
			},
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: validators.ParseQueryString(r, "cursor", maxCursorLen),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductCategories lists the category facets with product counts.
func ProductCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Categories(r.Context()))
	}
}

// GetProduct returns a single product for the details page.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.Get(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
