package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/angelmondragon/laundrypro-storefront/internal/backend"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestBearerAuthForwardsToken(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	var forwarded string
	handler := BearerAuth(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = backend.BearerTokenFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if forwarded != token {
		t.Fatalf("expected token forwarded, got %q", forwarded)
	}
}

func TestBearerAuthAnonymousPassesThrough(t *testing.T) {
	called := false
	handler := BearerAuth(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if backend.BearerTokenFrom(r.Context()) != "" {
			t.Fatalf("no token expected")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	if !called {
		t.Fatalf("handler should run for anonymous requests")
	}
}

func TestBearerAuthOpaqueTokenPassesThrough(t *testing.T) {
	var forwarded string
	handler := BearerAuth(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = backend.BearerTokenFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer opaque-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if forwarded != "opaque-token" {
		t.Fatalf("expected opaque token forwarded, got %q", forwarded)
	}
}

func TestBearerAuthRejectsExpiredToken(t *testing.T) {
	now := time.Now()
	token := signedToken(t, now.Add(-time.Minute))
	called := false
	handler := LoginHint("/login")(BearerAuth(nil, func() time.Time { return now })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("handler must not run for expired token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code     string `json:"code"`
			LoginURL string `json:"login_url"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeUnauthorized) || payload.Error.LoginURL != "/login" {
		t.Fatalf("unexpected payload %+v", payload.Error)
	}
}

func TestBearerAuthRejectsNonBearerScheme(t *testing.T) {
	handler := BearerAuth(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
