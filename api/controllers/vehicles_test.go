package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/ridgelinemoto/backend/pkg/errors"
	"github.com/ridgelinemoto/backend/pkg/types"
	"github.com/ridgelinemoto/backend/pkg/wps"
)

func TestVehicleMakes(t *testing.T) {
	stub := &stubCatalogService{
		makes: []wps.VehicleMake{{ID: "1", Name: "Honda"}, {ID: "2", Name: "Yamaha"}},
	}
	req := httptest.NewRequest(http.MethodGet, "/vehicles/makes", nil)
	rec := httptest.NewRecorder()
	VehicleMakes(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data.([]any)) != 2 {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestVehicleModelsRequiresMakeID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/vehicles/models", nil)
	rec := httptest.NewRecorder()
	VehicleModels(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVehicleYears(t *testing.T) {
	stub := &stubCatalogService{
		years: []wps.VehicleYear{{ID: "100", ModelID: "10", Year: 2024}},
	}
	req := httptest.NewRequest(http.MethodGet, "/vehicles/years?modelId=10", nil)
	rec := httptest.NewRecorder()
	VehicleYears(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestVehicleProductsPassesPageRequest(t *testing.T) {
	stub := &stubCatalogService{
		vehiclePage: &wps.ProductPage{
			Items: []wps.Product{{SKU: "CHN-1", Images: []string{}}},
			Page:  wps.PageInfo{Mode: wps.PageModeOffset, Page: 2, Count: 1},
		},
	}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/vehicles/42/products?page=2&pageSize=24", nil), "vehicleId", "42")
	rec := httptest.NewRecorder()
	VehicleProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Meta == nil {
		t.Fatalf("expected pagination meta")
	}
}

func TestVehicleCompatibility(t *testing.T) {
	stub := &stubCatalogService{compatible: true}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/vehicles/42/compatibility?sku=BRK-1", nil), "vehicleId", "42")
	rec := httptest.NewRecorder()
	VehicleCompatibility(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data := body.Data.(map[string]any)
	if data["compatible"] != true || data["sku"] != "BRK-1" {
		t.Fatalf("unexpected payload %v", data)
	}
}

func TestVehicleCompatibilityRequiresSKU(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/vehicles/42/compatibility", nil), "vehicleId", "42")
	rec := httptest.NewRecorder()
	VehicleCompatibility(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVehicleProductsRejectsOutOfRangePaging(t *testing.T) {
	for _, target := range []string{
		"/vehicles/42/products?page=-2",
		"/vehicles/42/products?pageSize=9999",
	} {
		req := withURLParam(httptest.NewRequest(http.MethodGet, target, nil), "vehicleId", "42")
		rec := httptest.NewRecorder()
		VehicleProducts(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestVehicleProductsUpstreamTimeout(t *testing.T) {
	stub := &stubCatalogService{
		vehicleErr: pkgerrors.New(pkgerrors.CodeTimeout, "request timed out"),
	}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/vehicles/42/products", nil), "vehicleId", "42")
	rec := httptest.NewRecorder()
	VehicleProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != string(pkgerrors.CodeTimeout) {
		t.Fatalf("unexpected code %s", body.Error)
	}
}
