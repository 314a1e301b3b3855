package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/freshcart/api/middleware"
	"github.com/angelmondragon/freshcart/api/responses"
	"github.com/angelmondragon/freshcart/api/validators"
	"github.com/angelmondragon/freshcart/internal/cart"
	pkgerrors "github.com/angelmondragon/freshcart/pkg/errors"
	"github.com/angelmondragon/freshcart/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type sessionEnder interface {
	End(sessionID string) bool
}

type cartResponse struct {
	SessionID string        `json:"session_id"`
	Cart      *cart.Summary `json:"cart"`
}

func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}
		summary, err := svc.Get(r.Context(), sessionID)
		writeCart(w, r, logg, sessionID, summary, err)
	}
}

// AddCartItem adds a product to the session cart, once per requested unit.
func AddCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}

		summary, err := svc.AddItem(r.Context(), sessionID, payload.ProductID, quantity)
		writeCart(w, r, logg, sessionID, summary, err)
	}
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func UpdateCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.SetQuantity(r.Context(), sessionID, chi.URLParam(r, "productId"), *payload.Quantity)
		writeCart(w, r, logg, sessionID, summary, err)
	}
}

func RemoveCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}
		summary, err := svc.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "productId"))
		writeCart(w, r, logg, sessionID, summary, err)
	}
}

func ClearCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := requireCart(w, r, svc, logg)
		if !ok {
			return
		}
		summary, err := svc.Clear(r.Context(), sessionID)
		writeCart(w, r, logg, sessionID, summary, err)
	}
}

// EndCartSession discards the session and its cart.
func EndCartSession(sessions sessionEnder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessions == nil || sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session unavailable"))
			return
		}
		ended := sessions.End(sessionID)
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "ended", ended), "cart.session.end")
		}
		responses.WriteSuccess(w, map[string]any{"session_id": sessionID, "ended": ended})
	}
}

func requireCart(w http.ResponseWriter, r *http.Request, svc cart.Service, logg *logger.Logger) (string, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return "", false
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required"))
		return "", false
	}
	return sessionID, true
}

func writeCart(w http.ResponseWriter, r *http.Request, logg *logger.Logger, sessionID string, summary *cart.Summary, err error) {
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	if logg != nil && summary != nil {
		logg.Debug(logg.WithCart(r.Context(), len(summary.Lines), summary.ItemCount, summary.Total), "cart.snapshot")
	}
	responses.WriteSuccess(w, cartResponse{SessionID: sessionID, Cart: summary})
}
