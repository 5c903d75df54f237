package wps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ridgelinemoto/backend/pkg/config"
	pkgerrors "github.com/ridgelinemoto/backend/pkg/errors"
	"github.com/ridgelinemoto/backend/pkg/logger"
	"github.com/ridgelinemoto/backend/pkg/metrics"
)

var errLoggerRequired = errors.New("wps logger is required")

// Client exposes the WPS catalog API with centralized auth, timeouts,
// logging, and error mapping. It performs no retries of its own; retry
// policy belongs to callers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cfg        config.WPSConfig
	logger     *logger.Logger
	metrics    *metrics.UpstreamMetrics
}

// NewClient validates the upstream configuration and builds the catalog
// client. Construction fails fast on a malformed base URL or missing token.
func NewClient(cfg config.WPSConfig, logg *logger.Logger, m *metrics.UpstreamMetrics) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:      strings.TrimSpace(cfg.Token),
		cfg:        cfg,
		logger:     logg,
		metrics:    m,
	}, nil
}

func (c *Client) cursorMode() bool {
	return c.cfg.PageStyle != config.PageStyleOffset
}

// ListProducts fetches one page of items matching the filters, enriches each
// item with its image set, and normalizes the result. Image enrichment is
// best-effort; a failed image fetch yields an empty image list for that item
// and never fails the page.
func (c *Client) ListProducts(ctx context.Context, filters ProductFilters) (*ProductPage, error) {
	var env envelope[[]rawItem]
	if err := c.get(ctx, "items", "/items", c.itemsQuery(filters), &env); err != nil {
		return nil, err
	}

	pageSize := c.clampPageSize(filters.PageSize)
	requested := PageRequest{Cursor: filters.Cursor, Page: filters.Page, PageSize: pageSize}
	info := pageInfoFromMeta(env.Meta, requested, pageSize, len(env.Data))

	images := c.enrichImages(ctx, env.Data)
	items := make([]Product, len(env.Data))
	for i, raw := range env.Data {
		items[i] = normalizeProduct(raw, images[i])
	}
	return &ProductPage{Items: items, Page: info}, nil
}

// GetProductBySKU resolves a product through the upstream filtered search.
// Zero matching rows map to a not-found error carrying the SKU.
func (c *Client) GetProductBySKU(ctx context.Context, sku string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}

	params := url.Values{}
	params.Set("filter[sku]", sku)
	params.Set("page[size]", "1")
	params.Set("include", "inventory,brand")

	var env envelope[[]rawItem]
	if err := c.get(ctx, "item_by_sku", "/items", params, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product with SKU '%s' not found", sku))
	}

	images := c.enrichImages(ctx, env.Data[:1])
	product := normalizeProduct(env.Data[0], images[0])
	return &product, nil
}

// GetProductByID fetches a product directly by vendor id. An upstream 404
// maps to not-found.
func (c *Client) GetProductByID(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	var env envelope[rawItem]
	err := c.get(ctx, "item_by_id", "/items/"+url.PathEscape(id), nil, &env)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product with id '%s' not found", id))
		}
		return nil, err
	}

	images := c.enrichImages(ctx, []rawItem{env.Data})
	product := normalizeProduct(env.Data, images[0])
	return &product, nil
}

// ListVehicleMakes returns the full makes dataset. The set is bounded, so a
// single oversized page is requested instead of paginating.
func (c *Client) ListVehicleMakes(ctx context.Context) ([]VehicleMake, error) {
	var env envelope[[]rawVehicleMake]
	if err := c.get(ctx, "vehicle_makes", "/vehiclemakes", referenceListQuery("", ""), &env); err != nil {
		return nil, err
	}
	makes := make([]VehicleMake, len(env.Data))
	for i, raw := range env.Data {
		makes[i] = normalizeMake(raw)
	}
	return makes, nil
}

// ListVehicleModels returns models, optionally filtered by make.
func (c *Client) ListVehicleModels(ctx context.Context, makeID string) ([]VehicleModel, error) {
	var env envelope[[]rawVehicleModel]
	if err := c.get(ctx, "vehicle_models", "/vehiclemodels", referenceListQuery("filter[make_id]", makeID), &env); err != nil {
		return nil, err
	}
	models := make([]VehicleModel, len(env.Data))
	for i, raw := range env.Data {
		models[i] = normalizeModel(raw)
	}
	return models, nil
}

// ListVehicleYears returns years, optionally filtered by model.
func (c *Client) ListVehicleYears(ctx context.Context, modelID string) ([]VehicleYear, error) {
	var env envelope[[]rawVehicleYear]
	if err := c.get(ctx, "vehicle_years", "/vehicleyears", referenceListQuery("filter[model_id]", modelID), &env); err != nil {
		return nil, err
	}
	years := make([]VehicleYear, len(env.Data))
	for i, raw := range env.Data {
		years[i] = normalizeYear(raw)
	}
	return years, nil
}

// ListItemsForVehicle fetches one page of items fitting the given vehicle,
// with the same enrichment and paging contract as ListProducts.
func (c *Client) ListItemsForVehicle(ctx context.Context, vehicleID string, page PageRequest) (*ProductPage, error) {
	raw, info, err := c.listVehicleItemsRaw(ctx, vehicleID, page)
	if err != nil {
		return nil, err
	}

	images := c.enrichImages(ctx, raw)
	items := make([]Product, len(raw))
	for i, r := range raw {
		items[i] = normalizeProduct(r, images[i])
	}
	return &ProductPage{Items: items, Page: info}, nil
}

// CheckCompatibility walks the vehicle's item pages until the SKU is found
// or the listing is exhausted. A hard page ceiling guards against upstream
// cursors that never terminate; hitting it reports not-compatible.
func (c *Client) CheckCompatibility(ctx context.Context, sku, vehicleID string) (bool, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" || strings.TrimSpace(vehicleID) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "sku and vehicle id are required")
	}

	req := PageRequest{PageSize: c.cfg.MaxPageSize}
	for fetched := 0; fetched < c.cfg.CompatibilityPageLimit; fetched++ {
		raw, info, err := c.listVehicleItemsRaw(ctx, vehicleID, req)
		if err != nil {
			return false, err
		}
		for _, item := range raw {
			if item.SKU == sku {
				return true, nil
			}
		}
		next, ok := info.NextRequest(c.cfg.MaxPageSize)
		if !ok {
			return false, nil
		}
		req = next
	}

	lctx := c.logger.WithFields(ctx, map[string]any{
		"sku":        sku,
		"vehicle_id": vehicleID,
		"page_limit": c.cfg.CompatibilityPageLimit,
	})
	c.logger.Warn(lctx, "compatibility walk hit page ceiling")
	return false, nil
}

// TestConnection issues one minimal request against the makes endpoint and
// reports reachability. Failures are swallowed; this is a health check, not
// a data operation.
func (c *Client) TestConnection(ctx context.Context) bool {
	params := url.Values{}
	params.Set("page[size]", "1")

	var env envelope[[]rawVehicleMake]
	if err := c.get(ctx, "test_connection", "/vehiclemakes", params, &env); err != nil {
		c.logger.Error(ctx, "wps connection test failed", err)
		return false
	}
	return true
}

func (c *Client) listVehicleItemsRaw(ctx context.Context, vehicleID string, page PageRequest) ([]rawItem, PageInfo, error) {
	if strings.TrimSpace(vehicleID) == "" {
		return nil, PageInfo{}, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id is required")
	}

	params := url.Values{}
	params.Set("include", "inventory,brand")
	c.applyPageParams(params, page)

	var env envelope[[]rawItem]
	endpoint := "/vehicles/" + url.PathEscape(strings.TrimSpace(vehicleID)) + "/items"
	if err := c.get(ctx, "vehicle_items", endpoint, params, &env); err != nil {
		return nil, PageInfo{}, err
	}

	pageSize := c.clampPageSize(page.PageSize)
	info := pageInfoFromMeta(env.Meta, page, pageSize, len(env.Data))
	return env.Data, info, nil
}

func referenceListQuery(filterKey, filterValue string) url.Values {
	params := url.Values{}
	params.Set("page[size]", fmt.Sprintf("%d", defaultReferenceListSize))
	if filterKey != "" && strings.TrimSpace(filterValue) != "" {
		params.Set(filterKey, strings.TrimSpace(filterValue))
	}
	return params
}

// get issues one authenticated request and decodes the JSON response into
// out. Non-2xx statuses are surfaced as typed errors with the upstream
// status preserved.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", op))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		mapped := c.mapTransportError(err, op)
		c.observeError(ctx, op, mapped)
		return mapped
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		mapped := c.mapStatusError(resp.StatusCode, op)
		c.observeError(ctx, op, mapped)
		return mapped
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		mapped := pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("decode %s response", op))
		c.observeError(ctx, op, mapped)
		return mapped
	}
	return nil
}

func (c *Client) mapTransportError(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return pkgerrors.Wrap(pkgerrors.CodeTimeout, err, fmt.Sprintf("wps %s timed out", op))
	}
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("wps %s failed", op))
}

func (c *Client) mapStatusError(status int, op string) error {
	if status == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("wps %s returned 404", op))
	}
	return pkgerrors.New(pkgerrors.CodeUpstream, fmt.Sprintf("wps %s returned status %d", op, status)).
		WithDetails(map[string]any{"status": status})
}

func (c *Client) observeError(ctx context.Context, op string, err error) {
	code := string(pkgerrors.CodeInternal)
	if typed := pkgerrors.As(err); typed != nil {
		code = string(typed.Code())
	}
	c.metrics.IncError(op, code)
	lctx := c.logger.WithFields(ctx, map[string]any{"operation": op, "error_code": code})
	c.logger.Error(lctx, "wps request failed", err)
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
