package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	productsvc "github.com/verdantcarry/veganbags-backend/internal/products"
	pkgAuth "github.com/verdantcarry/veganbags-backend/pkg/auth"
	"github.com/verdantcarry/veganbags-backend/pkg/config"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
	"github.com/verdantcarry/veganbags-backend/pkg/logger"
)

type stubCatalog struct{}

func (stubCatalog) List(context.Context, productsvc.FilterParams) ([]productsvc.ProductResponse, error) {
	return []productsvc.ProductResponse{{ID: uuid.New(), Name: "City Tote"}}, nil
}

func (stubCatalog) Get(context.Context, uuid.UUID) (*productsvc.ProductResponse, error) {
	return &productsvc.ProductResponse{}, nil
}

func (stubCatalog) Create(context.Context, productsvc.CreateProductDTO) (*productsvc.ProductResponse, error) {
	return &productsvc.ProductResponse{}, nil
}

func (stubCatalog) Update(context.Context, uuid.UUID, productsvc.UpdateProductDTO) (*productsvc.ProductResponse, error) {
	return &productsvc.ProductResponse{}, nil
}

func (stubCatalog) Delete(context.Context, uuid.UUID) error { return nil }

func routerTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "veganbags-test",
			ExpirationMinutes: 15,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(RouterParams{
		Config:         routerTestConfig(),
		Logger:         logg,
		ProductService: stubCatalog{},
	})
}

func bearerFor(t *testing.T, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(routerTestConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return "Bearer " + token
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterPublicCatalog(t *testing.T) {
	router := newTestRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("catalog must be public, got %d", resp.Code)
	}
}

func TestRouterCartRequiresAuth(t *testing.T) {
	router := newTestRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterOwnerAreaGatedByRole(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/owner/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for shopper got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/owner/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, enums.UserRoleOwner))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner got %d", resp.Code)
	}
}

func TestRouterAuthenticatedPing(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
