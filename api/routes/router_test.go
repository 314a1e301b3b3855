package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/freshcart/internal/auth"
	"github.com/angelmondragon/freshcart/internal/cart"
	"github.com/angelmondragon/freshcart/internal/catalog"
	"github.com/angelmondragon/freshcart/internal/reviews"
	"github.com/angelmondragon/freshcart/internal/sessions"
	"github.com/angelmondragon/freshcart/internal/users"
	pkgAuth "github.com/angelmondragon/freshcart/pkg/auth"
	"github.com/angelmondragon/freshcart/pkg/config"
	"github.com/angelmondragon/freshcart/pkg/logger"
	"github.com/angelmondragon/freshcart/pkg/metrics"
	"github.com/angelmondragon/freshcart/pkg/ratelimit"
)

const sessionHeader = "X-Cart-Session"

type harness struct {
	handler  http.Handler
	cfg      *config.Config
	registry *sessions.Registry
	users    *users.Directory
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "router-secret", Issuer: "freshcart-test", ExpirationMinutes: 5},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8 * 1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		Catalog:   config.CatalogConfig{DefaultPageLimit: 50},
		Session:   config.SessionConfig{Header: sessionHeader, IdleTTL: time.Hour, MaxLineQuantity: 999},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		RateLimit: config.RateLimitConfig{Window: time.Minute, IPLimit: 3, EmailLimit: 3},
	}
}

func newHarness(t *testing.T) harness {
	t.Helper()
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	reg := prometheus.NewRegistry()
	storefront := metrics.NewStorefrontMetrics(reg)

	products, err := catalog.LoadSeed()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	catalogService, err := catalog.NewService(products, catalog.Engine{}, storefront)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	registry, err := sessions.NewRegistry(sessions.RegistryParams{Logger: logg, IdleTTL: cfg.Session.IdleTTL, Metrics: storefront})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	cartService, err := cart.NewService(cart.ServiceParams{
		Store:       registry,
		Products:    catalogService,
		Delivery:    cart.DeliveryPolicy{FreeThreshold: 500, FlatFee: 40},
		MaxQuantity: cfg.Session.MaxLineQuantity,
		Metrics:     storefront,
	})
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	reviewService, err := reviews.NewService(reviews.ServiceParams{Products: catalogService})
	if err != nil {
		t.Fatalf("review service: %v", err)
	}
	directory := users.NewDirectory()
	authService, err := auth.NewService(auth.ServiceParams{Users: directory, JWTConfig: cfg.JWT, PasswordConfig: cfg.Password})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	handler := NewRouter(cfg, logg, reg, nil, registry, ratelimit.NewMemoryCounter(nil),
		catalogService, cartService, reviewService, authService)
	return harness{handler: handler, cfg: cfg, registry: registry, users: directory}
}

func (h harness) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

type cartEnvelope struct {
	Data struct {
		SessionID string       `json:"session_id"`
		Cart      cart.Summary `json:"cart"`
	} `json:"data"`
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	h := newHarness(t)

	if rec := h.do(t, http.MethodGet, "/health/live", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("live: expected 200, got %d", rec.Code)
	}
	if rec := h.do(t, http.MethodGet, "/health/ready", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}

	h.do(t, http.MethodGet, "/api/v1/products?sort=rating", "", nil)
	rec := h.do(t, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `catalog_queries_total{sort="rating"} 1`) {
		t.Fatalf("expected catalog query counter, got:\n%s", rec.Body.String())
	}
}

func TestProductsRoutes(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/v1/products?q=milk&limit=5", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var list struct {
		Data catalog.ListResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Data.Total == 0 {
		t.Fatalf("expected milk to match seeded products")
	}

	id := list.Data.Items[0].ID
	if rec := h.do(t, http.MethodGet, "/api/v1/products/"+id, "", nil); rec.Code != http.StatusOK {
		t.Fatalf("get product: expected 200, got %d", rec.Code)
	}
	if rec := h.do(t, http.MethodGet, "/api/v1/products/"+id+"/reviews", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("list reviews: expected 200, got %d", rec.Code)
	}
	if rec := h.do(t, http.MethodGet, "/api/v1/products/categories", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("categories: expected 200, got %d", rec.Code)
	}
	if rec := h.do(t, http.MethodGet, "/api/v1/products/missing", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing product: expected 404, got %d", rec.Code)
	}
}

func TestCartSessionLifecycle(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	sessionID := rec.Header().Get(sessionHeader)
	if _, err := uuid.Parse(sessionID); err != nil {
		t.Fatalf("expected issued session id, got %q", sessionID)
	}
	headers := map[string]string{sessionHeader: sessionID}

	rec = h.do(t, http.MethodPost, "/api/v1/cart/items", `{"product_id":"1","quantity":2}`, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body cartEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.SessionID != sessionID || body.Data.Cart.ItemCount != 2 {
		t.Fatalf("unexpected cart after add: %+v", body.Data)
	}

	other := h.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	var otherBody cartEnvelope
	if err := json.Unmarshal(other.Body.Bytes(), &otherBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if otherBody.Data.Cart.ItemCount != 0 {
		t.Fatalf("expected a fresh session to start empty")
	}

	rec = h.do(t, http.MethodDelete, "/api/v1/cart", "", headers)
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Cart.ItemCount != 0 {
		t.Fatalf("expected cleared cart, got %d items", body.Data.Cart.ItemCount)
	}

	if rec := h.do(t, http.MethodDelete, "/api/v1/cart/session", "", headers); rec.Code != http.StatusOK {
		t.Fatalf("end session: expected 200, got %d", rec.Code)
	}
	if h.registry.Exists(sessionID) {
		t.Fatalf("expected session to be removed")
	}

	rec = h.do(t, http.MethodGet, "/api/v1/cart", "", headers)
	if reissued := rec.Header().Get(sessionHeader); reissued == sessionID || reissued == "" {
		t.Fatalf("expected an ended session to be replaced, got %q", reissued)
	}
}

func TestReviewRequiresToken(t *testing.T) {
	h := newHarness(t)
	body := `{"rating":4,"comment":"Fresh and sweet"}`

	if rec := h.do(t, http.MethodPost, "/api/v1/products/1/reviews", body, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	token, err := pkgAuth.MintAccessToken(h.cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Name:   "Asha",
		Email:  "asha@example.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	rec := h.do(t, http.MethodPost, "/api/v1/products/1/reviews", body, map[string]string{"Authorization": "Bearer " + token})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if rec := h.do(t, http.MethodGet, "/api/v1/products", "", map[string]string{"Authorization": "Bearer garbage"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected invalid token to be rejected, got %d", rec.Code)
	}
}

func TestRegisterLoginAndProfile(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/v1/auth/register", `{"name":"Asha","email":"asha@example.com","password":"correct-horse"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = h.do(t, http.MethodPost, "/api/v1/auth/login", `{"email":"ASHA@example.com","password":"correct-horse"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = h.do(t, http.MethodGet, "/api/v1/me", "", map[string]string{"Authorization": "Bearer " + login.Data.AccessToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "asha@example.com") {
		t.Fatalf("expected profile email, got %s", rec.Body.String())
	}

	if rec := h.do(t, http.MethodGet, "/api/v1/me", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", rec.Code)
	}
}

func TestLoginIsRateLimitedPerEmail(t *testing.T) {
	h := newHarness(t)
	body := `{"email":"nobody@example.com","password":"wrong-password"}`

	for i := 0; i < h.cfg.RateLimit.EmailLimit; i++ {
		if rec := h.do(t, http.MethodPost, "/api/v1/auth/login", body, nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}
	rec := h.do(t, http.MethodPost, "/api/v1/auth/login", body, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}
