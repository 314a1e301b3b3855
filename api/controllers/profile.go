package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/freshcart/api/middleware"
	"github.com/angelmondragon/freshcart/api/responses"
	"github.com/angelmondragon/freshcart/internal/auth"
	"github.com/angelmondragon/freshcart/internal/users"
	pkgerrors "github.com/angelmondragon/freshcart/pkg/errors"
	"github.com/angelmondragon/freshcart/pkg/logger"
)

type profileResponse struct {
	*users.UserDTO
	Orders []users.OrderSummary `json:"orders"`
}

// Me returns the signed-in shopper's profile along with their order history.
func Me(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		profile, err := svc.Profile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profileResponse{UserDTO: profile, Orders: users.SampleOrderHistory()})
	}
}
