package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantcarry/veganbags-backend/api/middleware"
	productsvc "github.com/verdantcarry/veganbags-backend/internal/products"
	"github.com/verdantcarry/veganbags-backend/pkg/enums"
)

type stubProductService struct {
	listFn   func(ctx context.Context, params productsvc.FilterParams) ([]productsvc.ProductResponse, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*productsvc.ProductResponse, error)
	createFn func(ctx context.Context, dto productsvc.CreateProductDTO) (*productsvc.ProductResponse, error)
	updateFn func(ctx context.Context, id uuid.UUID, dto productsvc.UpdateProductDTO) (*productsvc.ProductResponse, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (s stubProductService) List(ctx context.Context, params productsvc.FilterParams) ([]productsvc.ProductResponse, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return nil, nil
}

func (s stubProductService) Get(ctx context.Context, id uuid.UUID) (*productsvc.ProductResponse, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, nil
}

func (s stubProductService) Create(ctx context.Context, dto productsvc.CreateProductDTO) (*productsvc.ProductResponse, error) {
	if s.createFn != nil {
		return s.createFn(ctx, dto)
	}
	return nil, nil
}

func (s stubProductService) Update(ctx context.Context, id uuid.UUID, dto productsvc.UpdateProductDTO) (*productsvc.ProductResponse, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, dto)
	}
	return nil, nil
}

func (s stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func withShopper(req *http.Request, userID uuid.UUID, role enums.UserRole) *http.Request {
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, string(role))
	return req.WithContext(ctx)
}

func TestListProductsPassesFilters(t *testing.T) {
	listing := productsvc.ProductResponse{
		ID:       uuid.New(),
		Name:     "City Tote",
		Price:    decimal.RequireFromString("49.90"),
		Category: enums.BagCategoryTote,
		Material: "Cork",
	}

	svc := stubProductService{
		listFn: func(ctx context.Context, params productsvc.FilterParams) ([]productsvc.ProductResponse, error) {
			if params.Category != "tote" || params.Material != "cork" {
				t.Fatalf("unexpected filter params %+v", params)
			}
			return []productsvc.ProductResponse{listing}, nil
		},
	}

	handler := ListProducts(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/?category=tote&material=cork", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			Products  []productsvc.ProductResponse `json:"products"`
			Materials []string                     `json:"materials"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Products) != 1 || envelope.Data.Products[0].Name != "City Tote" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
	if len(envelope.Data.Materials) != 1 || envelope.Data.Materials[0] != "Cork" {
		t.Fatalf("expected materials facet, got %v", envelope.Data.Materials)
	}
}

func TestGetProductInvalidID(t *testing.T) {
	handler := GetProduct(stubProductService{}, nil)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "productID", "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOwnerCreateProduct(t *testing.T) {
	created := &productsvc.ProductResponse{ID: uuid.New(), Name: "Forest Backpack"}
	svc := stubProductService{
		createFn: func(ctx context.Context, dto productsvc.CreateProductDTO) (*productsvc.ProductResponse, error) {
			if dto.Name != "Forest Backpack" || dto.Category != enums.BagCategoryBackpack {
				t.Fatalf("unexpected dto %+v", dto)
			}
			return created, nil
		},
	}

	body := `{"name":"Forest Backpack","description":"Hemp daypack","price":"89.00","category":"Backpack","material":"Hemp","is_vegan":true,"image_url":"https://cdn.example.com/forest.jpg","stock":12}`
	handler := OwnerCreateProduct(svc, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var envelope struct {
		Data productsvc.ProductResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != created.ID {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestOwnerCreateProductRejectsUnknownFields(t *testing.T) {
	handler := OwnerCreateProduct(stubProductService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","sneaky":true}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOwnerUpdateProduct(t *testing.T) {
	productID := uuid.New()
	svc := stubProductService{
		updateFn: func(ctx context.Context, id uuid.UUID, dto productsvc.UpdateProductDTO) (*productsvc.ProductResponse, error) {
			if id != productID {
				t.Fatalf("unexpected id %s", id)
			}
			return &productsvc.ProductResponse{ID: id, Name: dto.Name}, nil
		},
	}

	body := `{"name":"City Tote v2","description":"Updated","price":"54.00","category":"Tote","material":"Cork","is_vegan":true,"image_url":"https://cdn.example.com/tote.jpg","stock":5}`
	handler := OwnerUpdateProduct(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body)), "productID", productID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestOwnerDeleteProduct(t *testing.T) {
	productID := uuid.New()
	var deleted uuid.UUID
	svc := stubProductService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}

	handler := OwnerDeleteProduct(svc, nil)
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "productID", productID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if deleted != productID {
		t.Fatalf("expected delete for %s, got %s", productID, deleted)
	}
}
