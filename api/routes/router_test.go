package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/laundrypro-storefront/internal/backend"
	"github.com/angelmondragon/laundrypro-storefront/internal/catalog"
	checkoutsvc "github.com/angelmondragon/laundrypro-storefront/internal/checkout"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/internal/session"
	"github.com/angelmondragon/laundrypro-storefront/pkg/config"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
	"github.com/angelmondragon/laundrypro-storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves a two-item catalog and records order placements.
type fakeBackend struct {
	mu          sync.Mutex
	placements  int
	rejectOrder string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/services":
		io.WriteString(w, `[
			{"id":1,"name":"Wash & Fold","price":10,"unit":"per load","category":"washing"},
			{"id":2,"name":"Ironing","price":5,"unit":"per item","category":"pressing"}]`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/services/1":
		io.WriteString(w, `{"id":1,"name":"Wash & Fold","price":10,"unit":"per load","category":"washing"}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/services/2":
		io.WriteString(w, `{"id":2,"name":"Ironing","price":5,"unit":"per item","category":"pressing"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/orders":
		f.mu.Lock()
		f.placements++
		reject := f.rejectOrder
		f.mu.Unlock()
		if reject != "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": reject})
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = "ord-100"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"not found"}`)
	}
}

func (f *fakeBackend) placementCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.placements
}

func testConfig(backendURL string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "dev", LoginURL: "/login"},
		Backend: config.BackendConfig{BaseURL: backendURL, Timeout: time.Second, ServicesPath: "/api/services", OrdersPath: "/api/orders"},
		Session: config.SessionConfig{CookieName: "lp_session", IdleTTL: time.Hour},
		Checkout: config.CheckoutConfig{
			RateLimitWindow: time.Minute,
			RateLimitMax:    5,
			IdempotencyTTL:  time.Hour,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

type harness struct {
	server  *httptest.Server
	client  *http.Client
	backend *fakeBackend
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fb := &fakeBackend{}
	backendSrv := httptest.NewServer(fb)
	t.Cleanup(backendSrv.Close)

	cfg := testConfig(backendSrv.URL)
	logg := logger.Nop()
	registry := prometheus.NewRegistry()

	client, err := backend.New(cfg.Backend, nil, logg, metrics.NewBackendMetrics(registry))
	require.NoError(t, err)
	cat, err := catalog.New(client)
	require.NoError(t, err)
	ordersSvc, err := orders.NewService(client, logg)
	require.NoError(t, err)
	coordinator, err := checkoutsvc.NewCoordinator(client, logg, metrics.NewCheckoutMetrics(registry))
	require.NoError(t, err)

	router := NewRouter(cfg, logg, nil, session.NewManager(cfg.Session.IdleTTL), cat, coordinator, ordersSvc,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &harness{server: srv, client: &http.Client{Jar: jar}, backend: fb}
}

func (h *harness) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, h.server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := h.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func data(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	d, ok := payload["data"].(map[string]any)
	require.True(t, ok, "payload %v has no data object", payload)
	return d
}

const checkoutBody = `{"customerInfo":{"fullName":"Jane Doe","email":"jane@example.com","phone":"555-0100","address":"1 Main St"}}`

func TestHealthRoutes(t *testing.T) {
	h := newHarness(t)

	status, _ := h.do(t, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, status)

	status, body := h.do(t, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", data(t, body)["status"])
}

func TestMetricsRoute(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodGet, "/api/v1/catalog", "")

	resp, err := h.client.Get(h.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "backend_request_success_total")
}

func TestCatalogFiltersByCategory(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(t, http.MethodGet, "/api/v1/catalog?category=Pressing", "")
	require.Equal(t, http.StatusOK, status)
	list, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "Ironing", list[0].(map[string]any)["name"])
}

func TestCartTotalsAcrossRequests(t *testing.T) {
	h := newHarness(t)

	h.do(t, http.MethodPost, "/api/v1/cart/items", `{"serviceId":"1","quantity":2}`)
	h.do(t, http.MethodPost, "/api/v1/cart/items", `{"serviceId":"1","quantity":2}`)
	status, body := h.do(t, http.MethodPost, "/api/v1/cart/items", `{"serviceId":"2","quantity":1}`)
	require.Equal(t, http.StatusOK, status)

	cart := data(t, body)
	items := cart["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, float64(4), items[0].(map[string]any)["quantity"])
	totals := cart["totals"].(map[string]any)
	assert.Equal(t, "45.00", totals["subtotal"])
	assert.Equal(t, "4.50", totals["tax"])
	assert.Equal(t, "49.50", totals["total"])

	status, body = h.do(t, http.MethodDelete, "/api/v1/cart/items/2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, data(t, body)["items"], 1)

	status, body = h.do(t, http.MethodDelete, "/api/v1/cart/items/2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, data(t, body)["items"], 1)
}

func TestCheckoutEmptyCartMakesNoBackendCall(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error"].(map[string]any)["code"])
	assert.Zero(t, h.backend.placementCount())
}

func TestCheckoutSuccessRecordsOrderAndClearsCart(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodPost, "/api/v1/cart/items", `{"serviceId":"1","quantity":4}`)
	h.do(t, http.MethodPost, "/api/v1/cart/items", `{"serviceId":"2","quantity":1}`)

	status, body := h.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody)
	require.Equal(t, http.StatusCreated, status)
	order := data(t, body)
	assert.Equal(t, "ord-100", order["id"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "49.50", order["total"])

	_, body = h.do(t, http.MethodGet, "/api/v1/cart", "")
	assert.Empty(t, data(t, body)["items"])

	_, body = h.do(t, http.MethodGet, "/api/v1/orders", "")
	list := body["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "ord-100", list[0].(map[string]any)["id"])

	status, body = h.do(t, http.MethodGet, "/api/v1/orders/ord-100/tracking", "")
	require.Equal(t, http.StatusOK, status)
	steps := data(t, body)["steps"].([]any)
	assert.Len(t, steps, 4)
}

func TestCheckoutBackendRejectionSurfacesMessage(t *testing.T) {
	h := newHarness(t)
	h.backend.rejectOrder = "invalid address"
	h.do(t, http.MethodPost, "/api/v1/cart/items", `{"serviceId":"1","quantity":1}`)

	status, body := h.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody)
	assert.Equal(t, http.StatusBadRequest, status)
	apiErr := body["error"].(map[string]any)
	assert.Equal(t, "UPSTREAM_ERROR", apiErr["code"])
	assert.Equal(t, "invalid address", apiErr["message"])

	_, body = h.do(t, http.MethodGet, "/api/v1/cart", "")
	assert.Len(t, data(t, body)["items"], 1)
	_, body = h.do(t, http.MethodGet, "/api/v1/orders", "")
	assert.Empty(t, body["data"])
}

func TestExpiredBearerTokenGetsLoginHint(t *testing.T) {
	h := newHarness(t)

	// {"alg":"HS256","typ":"JWT"} . {"exp":1}
	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJleHAiOjF9.c2ln"
	req, err := http.NewRequest(http.MethodGet, h.server.URL+"/api/v1/cart", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := h.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	apiErr := body["error"].(map[string]any)
	assert.Equal(t, "/login", apiErr["login_url"])
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodPost, "/api/v1/cart/items", `{"serviceId":"1","quantity":1}`)

	other := &http.Client{}
	resp, err := other.Get(h.server.URL + "/api/v1/cart")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, data(t, body)["items"])
}

func TestLogoutEndsSession(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodPost, "/api/v1/cart/items", `{"serviceId":"1","quantity":1}`)

	status, _ := h.do(t, http.MethodPost, "/api/v1/session/logout", "")
	require.Equal(t, http.StatusOK, status)

	_, body := h.do(t, http.MethodGet, "/api/v1/cart", "")
	assert.Empty(t, data(t, body)["items"])
}
