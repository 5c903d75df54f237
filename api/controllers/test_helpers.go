package controllers

import (
	"context"
	"io"

	"github.com/ridgelinemoto/backend/pkg/logger"
	"github.com/ridgelinemoto/backend/pkg/wps"
)

// stubCatalogService records calls and returns canned values. Tests override
// only the fields they need.
type stubCatalogService struct {
	listFilters   *wps.ProductFilters
	listPage      *wps.ProductPage
	listErr       error
	productBySKU  *wps.Product
	productByID   *wps.Product
	productErr    error
	batchIDs      []string
	batchProducts []wps.Product
	batchErr      error
	makes         []wps.VehicleMake
	models        []wps.VehicleModel
	years         []wps.VehicleYear
	refErr        error
	vehiclePage   *wps.ProductPage
	vehicleErr    error
	compatible    bool
	compatErr     error
	connected     bool
}

func (s *stubCatalogService) ListProducts(ctx context.Context, filters wps.ProductFilters) (*wps.ProductPage, error) {
	s.listFilters = &filters
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.listPage != nil {
		return s.listPage, nil
	}
	return &wps.ProductPage{Items: []wps.Product{}}, nil
}

func (s *stubCatalogService) GetProductBySKU(ctx context.Context, sku string) (*wps.Product, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return s.productBySKU, nil
}

func (s *stubCatalogService) GetProductByID(ctx context.Context, id string) (*wps.Product, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return s.productByID, nil
}

func (s *stubCatalogService) GetProductsByIDs(ctx context.Context, ids []string) ([]wps.Product, error) {
	s.batchIDs = ids
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	return s.batchProducts, nil
}

func (s *stubCatalogService) VehicleMakes(ctx context.Context) ([]wps.VehicleMake, error) {
	return s.makes, s.refErr
}

func (s *stubCatalogService) VehicleModels(ctx context.Context, makeID string) ([]wps.VehicleModel, error) {
	return s.models, s.refErr
}

func (s *stubCatalogService) VehicleYears(ctx context.Context, modelID string) ([]wps.VehicleYear, error) {
	return s.years, s.refErr
}

func (s *stubCatalogService) VehicleProducts(ctx context.Context, vehicleID string, page wps.PageRequest) (*wps.ProductPage, error) {
	if s.vehicleErr != nil {
		return nil, s.vehicleErr
	}
	if s.vehiclePage != nil {
		return s.vehiclePage, nil
	}
	return &wps.ProductPage{Items: []wps.Product{}}, nil
}

func (s *stubCatalogService) CheckCompatibility(ctx context.Context, sku, vehicleID string) (bool, error) {
	return s.compatible, s.compatErr
}

func (s *stubCatalogService) TestConnection(ctx context.Context) bool {
	return s.connected
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Output: io.Discard})
}
