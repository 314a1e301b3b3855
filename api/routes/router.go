package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/freshcart/api/controllers"
	"github.com/angelmondragon/freshcart/api/middleware"
	"github.com/angelmondragon/freshcart/internal/auth"
	"github.com/angelmondragon/freshcart/internal/cart"
	"github.com/angelmondragon/freshcart/internal/catalog"
	"github.com/angelmondragon/freshcart/internal/reviews"
	"github.com/angelmondragon/freshcart/pkg/config"
	"github.com/angelmondragon/freshcart/pkg/logger"
	"github.com/angelmondragon/freshcart/pkg/ratelimit"
)

// cartSessions issues, recognises and ends shopper cart sessions.
type cartSessions interface {
	Create() string
	Exists(sessionID string) bool
	End(sessionID string) bool
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	readiness []controllers.ReadinessCheck,
	sessions cartSessions,
	rateCounter ratelimit.Counter,
	catalogService catalog.Service,
	cartService cart.Service,
	reviewService reviews.Service,
	authService auth.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins, cfg.Session.Header),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.Window,
		cfg.RateLimit.IPLimit,
		cfg.RateLimit.EmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.RateLimit.Window,
		cfg.RateLimit.IPLimit,
		cfg.RateLimit.EmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness...))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, cfg.Catalog.DefaultPageLimit, logg))
			r.Get("/categories", controllers.ProductCategories(catalogService, logg))
			r.Get("/{productId}", controllers.GetProduct(catalogService, logg))
			r.Get("/{productId}/reviews", controllers.ListProductReviews(reviewService, logg))
			r.With(middleware.RequireAuth(logg)).Post("/{productId}/reviews", controllers.SubmitProductReview(reviewService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Session.Header, sessions, logg))
			r.Get("/", controllers.GetCart(cartService, logg))
			r.Delete("/", controllers.ClearCart(cartService, logg))
			r.Delete("/session", controllers.EndCartSession(sessions, logg))
			r.Post("/items", controllers.AddCartItem(cartService, logg))
			r.Put("/items/{productId}", controllers.UpdateCartItem(cartService, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(cartService, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, rateCounter, logg)).Post("/login", controllers.AuthLogin(authService, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, rateCounter, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		})

		r.With(middleware.RequireAuth(logg)).Get("/me", controllers.Me(authService, logg))
	})

	return r
}
