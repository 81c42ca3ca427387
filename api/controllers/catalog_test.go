package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubCatalogService struct {
	written     int
	err         error
	lastStoreID *uuid.UUID
}

func (s *stubCatalogService) Generate(ctx context.Context, storeID *uuid.UUID) (int, error) {
	s.lastStoreID = storeID
	return s.written, s.err
}

type stubPriceReader struct {
	row *models.CatalogPrice
	err error
}

func (s *stubPriceReader) PriceFor(ctx context.Context, storeID, purchasableID uuid.UUID) (*models.CatalogPrice, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.row, nil
}

func TestCatalogGenerateAllStores(t *testing.T) {
	service := &stubCatalogService{written: 42}
	handler := CatalogGenerate(service, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalog/generate", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if service.lastStoreID != nil {
		t.Fatalf("expected nil store id, got %v", service.lastStoreID)
	}

	var envelope struct {
		Data catalogGenerateResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.EntriesWritten != 42 {
		t.Fatalf("unexpected entries written: %d", envelope.Data.EntriesWritten)
	}
}

func TestCatalogGenerateSingleStore(t *testing.T) {
	storeID := uuid.New()
	service := &stubCatalogService{written: 7}
	handler := CatalogGenerate(service, nil)

	body := fmt.Sprintf(`{"store_id": "%s"}`, storeID)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalog/generate", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if service.lastStoreID == nil || *service.lastStoreID != storeID {
		t.Fatalf("expected store id %s, got %v", storeID, service.lastStoreID)
	}
}

func catalogPriceRequest(t *testing.T, storeID, purchasableID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/stores/"+storeID+"/prices/"+purchasableID, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("storeId", storeID)
	routeCtx.URLParams.Add("purchasableId", purchasableID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCatalogPriceSuccess(t *testing.T) {
	storeID := uuid.New()
	purchasableID := uuid.New()
	reader := &stubPriceReader{row: &models.CatalogPrice{
		StoreID:               storeID,
		PurchasableID:         purchasableID,
		PriceCents:            1000,
		PromotionalPriceCents: 900,
		HasPromotion:          true,
	}}
	handler := CatalogPrice(reader, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, catalogPriceRequest(t, storeID.String(), purchasableID.String()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCatalogPriceInvalidStoreID(t *testing.T) {
	handler := CatalogPrice(&stubPriceReader{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, catalogPriceRequest(t, "not-a-uuid", uuid.NewString()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogPriceNotFound(t *testing.T) {
	handler := CatalogPrice(&stubPriceReader{err: pkgerrors.New(pkgerrors.CodeNotFound, "catalog price not found")}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, catalogPriceRequest(t, uuid.NewString(), uuid.NewString()))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
