package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/verdantcarry/veganbags-backend/pkg/auth"
	"github.com/verdantcarry/veganbags-backend/pkg/config"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
	"github.com/verdantcarry/veganbags-backend/pkg/logger"
)

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s *stubSessionVerifier) HasSession(context.Context, string) (bool, error) {
	return s.ok, s.err
}

func testAuthJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "middleware-secret",
		Issuer:            "veganbags-test",
		ExpirationMinutes: 15,
	}
}

func discardLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func mintTestToken(t *testing.T, userID uuid.UUID, role enums.UserRole, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testAuthJWTConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return token
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	mw := Auth(testAuthJWTConfig(), &stubSessionVerifier{ok: true}, discardLogger(t))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without credentials")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	mw := Auth(testAuthJWTConfig(), &stubSessionVerifier{ok: true}, discardLogger(t))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a bogus token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthMiddlewareSeedsContext(t *testing.T) {
	userID := uuid.New()
	token := mintTestToken(t, userID, enums.UserRoleOwner, "jti-42")

	mw := Auth(testAuthJWTConfig(), &stubSessionVerifier{ok: true}, discardLogger(t))
	var gotUser, gotRole, gotAccess string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		gotAccess = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotUser != userID.String() {
		t.Fatalf("expected user id %s got %q", userID, gotUser)
	}
	if gotRole != string(enums.UserRoleOwner) {
		t.Fatalf("expected owner role got %q", gotRole)
	}
	if gotAccess != "jti-42" {
		t.Fatalf("expected access id jti-42 got %q", gotAccess)
	}
}

func TestAuthMiddlewareRevokedSession(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.UserRoleUser, "jti-gone")

	mw := Auth(testAuthJWTConfig(), &stubSessionVerifier{ok: false}, discardLogger(t))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run after logout")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthMiddlewareSessionStoreFailure(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.UserRoleUser, "jti-err")

	mw := Auth(testAuthJWTConfig(), &stubSessionVerifier{err: errors.New("redis down")}, discardLogger(t))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run when sessions cannot be checked")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(string(enums.UserRoleOwner), discardLogger(t))
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/owner/orders", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleUser)))
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for shopper got %d", resp.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run for the wrong role")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/owner/orders", nil)
	req = req.WithContext(WithRole(req.Context(), string(enums.UserRoleOwner)))
	resp = httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || calls != 1 {
		t.Fatalf("expected owner to pass, status %d calls %d", resp.Code, calls)
	}
}
