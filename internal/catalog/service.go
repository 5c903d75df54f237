package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ridgelinemoto/backend/pkg/config"
	pkgerrors "github.com/ridgelinemoto/backend/pkg/errors"
	"github.com/ridgelinemoto/backend/pkg/logger"
	"github.com/ridgelinemoto/backend/pkg/redis"
	"github.com/ridgelinemoto/backend/pkg/wps"
)

const batchLookupConcurrency = 4

// Client is the upstream catalog surface the service consumes.
type Client interface {
	ListProducts(ctx context.Context, filters wps.ProductFilters) (*wps.ProductPage, error)
	GetProductBySKU(ctx context.Context, sku string) (*wps.Product, error)
	GetProductByID(ctx context.Context, id string) (*wps.Product, error)
	ListVehicleMakes(ctx context.Context) ([]wps.VehicleMake, error)
	ListVehicleModels(ctx context.Context, makeID string) ([]wps.VehicleModel, error)
	ListVehicleYears(ctx context.Context, modelID string) ([]wps.VehicleYear, error)
	ListItemsForVehicle(ctx context.Context, vehicleID string, page wps.PageRequest) (*wps.ProductPage, error)
	CheckCompatibility(ctx context.Context, sku, vehicleID string) (bool, error)
	TestConnection(ctx context.Context) bool
}

// Cache is the subset of the redis client the service uses. It may be nil,
// in which case every lookup passes through to the upstream.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service exposes storefront catalog operations.
type Service interface {
	ListProducts(ctx context.Context, filters wps.ProductFilters) (*wps.ProductPage, error)
	GetProductBySKU(ctx context.Context, sku string) (*wps.Product, error)
	GetProductByID(ctx context.Context, id string) (*wps.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]wps.Product, error)
	VehicleMakes(ctx context.Context) ([]wps.VehicleMake, error)
	VehicleModels(ctx context.Context, makeID string) ([]wps.VehicleModel, error)
	VehicleYears(ctx context.Context, modelID string) ([]wps.VehicleYear, error)
	VehicleProducts(ctx context.Context, vehicleID string, page wps.PageRequest) (*wps.ProductPage, error)
	CheckCompatibility(ctx context.Context, sku, vehicleID string) (bool, error)
	TestConnection(ctx context.Context) bool
}

type service struct {
	client Client
	cache  Cache
	ttl    config.CacheConfig
	logger *logger.Logger
}

// NewService wires the catalog service. cache is optional; when nil the
// vehicle reference lists are fetched from the upstream on every call.
func NewService(client Client, cache Cache, ttl config.CacheConfig, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, errors.New("catalog client is required")
	}
	if logg == nil {
		return nil, errors.New("catalog logger is required")
	}
	return &service{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: logg,
	}, nil
}

func (s *service) ListProducts(ctx context.Context, filters wps.ProductFilters) (*wps.ProductPage, error) {
	return s.client.ListProducts(ctx, filters)
}

func (s *service) GetProductBySKU(ctx context.Context, sku string) (*wps.Product, error) {
	return s.client.GetProductBySKU(ctx, sku)
}

func (s *service) GetProductByID(ctx context.Context, id string) (*wps.Product, error) {
	return s.client.GetProductByID(ctx, id)
}

// GetProductsByIDs resolves a batch of product ids concurrently. Ids that do
// not resolve are skipped; any other failure fails the batch. Result order
// follows the requested order.
func (s *service) GetProductsByIDs(ctx context.Context, ids []string) ([]wps.Product, error) {
	if len(ids) == 0 {
		return []wps.Product{}, nil
	}

	found := make([]*wps.Product, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			product, err := s.client.GetProductByID(gctx, id)
			if err != nil {
				if pkgerrors.IsNotFound(err) {
					return nil
				}
				return err
			}
			found[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	products := make([]wps.Product, 0, len(ids))
	for _, p := range found {
		if p != nil {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (s *service) VehicleMakes(ctx context.Context) ([]wps.VehicleMake, error) {
	return fetchCached(ctx, s, redis.CacheKey("vehicle_makes", ""), s.ttl.MakesTTL, func(ctx context.Context) ([]wps.VehicleMake, error) {
		return s.client.ListVehicleMakes(ctx)
	})
}

func (s *service) VehicleModels(ctx context.Context, makeID string) ([]wps.VehicleModel, error) {
	return fetchCached(ctx, s, redis.CacheKey("vehicle_models", makeID), s.ttl.ModelsTTL, func(ctx context.Context) ([]wps.VehicleModel, error) {
		return s.client.ListVehicleModels(ctx, makeID)
	})
}

func (s *service) VehicleYears(ctx context.Context, modelID string) ([]wps.VehicleYear, error) {
	return fetchCached(ctx, s, redis.CacheKey("vehicle_years", modelID), s.ttl.YearsTTL, func(ctx context.Context) ([]wps.VehicleYear, error) {
		return s.client.ListVehicleYears(ctx, modelID)
	})
}

func (s *service) VehicleProducts(ctx context.Context, vehicleID string, page wps.PageRequest) (*wps.ProductPage, error) {
	return s.client.ListItemsForVehicle(ctx, vehicleID, page)
}

func (s *service) CheckCompatibility(ctx context.Context, sku, vehicleID string) (bool, error) {
	return s.client.CheckCompatibility(ctx, sku, vehicleID)
}

func (s *service) TestConnection(ctx context.Context) bool {
	return s.client.TestConnection(ctx)
}

// fetchCached reads a reference dataset through the cache. Cache failures
// degrade to a pass-through fetch; they never fail the request.
func fetchCached[T any](ctx context.Context, s *service, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var value T
			if jsonErr := json.Unmarshal([]byte(cached), &value); jsonErr == nil {
				return value, nil
			}
			// Corrupt entry; fall through to a fresh fetch.
		case !errors.Is(err, redis.Nil):
			s.logger.Warn(s.logger.WithField(ctx, "cache_key", key), "cache read failed, falling through")
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(value); jsonErr == nil {
			if setErr := s.cache.Set(ctx, key, string(payload), ttl); setErr != nil {
				s.logger.Warn(s.logger.WithField(ctx, "cache_key", key), "cache write failed")
			}
		}
	}
	return value, nil
}
