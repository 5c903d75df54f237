package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ridgelinemoto/backend/api/responses"
	"github.com/ridgelinemoto/backend/api/validators"
	"github.com/ridgelinemoto/backend/internal/catalog"
	pkgerrors "github.com/ridgelinemoto/backend/pkg/errors"
	"github.com/ridgelinemoto/backend/pkg/logger"
	"github.com/ridgelinemoto/backend/pkg/wps"
)

const maxBatchLookupIDs = 50

// ListProducts handles the storefront product listing with filters and
// pagination. Page position accepts either a cursor or a page number; a page
// size above the upstream maximum is clamped, never rejected.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filters, err := productFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMeta(w, page.Items, page.Page)
	}
}

// GetProductBySKU handles the product-detail lookup by vendor SKU.
func GetProductBySKU(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sku := strings.TrimSpace(chi.URLParam(r, "sku"))
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku is required"))
			return
		}

		product, err := svc.GetProductBySKU(r.Context(), sku)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// GetProductByID handles the product-detail lookup by vendor item id.
func GetProductByID(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "id is required"))
			return
		}

		product, err := svc.GetProductByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// GetProductsMultiple resolves a comma-separated batch of product ids. Ids
// that do not resolve are silently skipped; the response order follows the
// request order.
func GetProductsMultiple(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		raw, err := validators.RequiredQuery(r, "ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids := make([]string, 0)
		for _, id := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}
		if len(ids) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "ids must contain at least one id"))
			return
		}
		if len(ids) > maxBatchLookupIDs {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "too many ids requested").WithDetails(map[string]any{"max": maxBatchLookupIDs}))
			return
		}

		products, err := svc.GetProductsByIDs(r.Context(), ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// productListQuery carries the validation rules for the listing query
// string. A pageSize of zero means "unset" and is clamped to the storefront
// default downstream; sizes above the upstream ceiling are clamped too, so
// the max here only rejects absurd values.
type productListQuery struct {
	SortOrder string `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `json:"page" validate:"omitempty,min=1"`
	PageSize  int    `json:"pageSize" validate:"omitempty,min=1,max=1000"`
}

func productFiltersFromQuery(r *http.Request) (wps.ProductFilters, error) {
	query := r.URL.Query()

	// pageSize with limit as an accepted alias.
	pageSize := 0
	for _, key := range []string{"pageSize", "limit"} {
		if raw := strings.TrimSpace(query.Get(key)); raw != "" {
			value, err := validators.QueryInt(r, key)
			if err != nil {
				return wps.ProductFilters{}, err
			}
			pageSize = value
			break
		}
	}

	page, err := validators.QueryInt(r, "page")
	if err != nil {
		return wps.ProductFilters{}, err
	}

	parsed := productListQuery{
		SortOrder: strings.TrimSpace(query.Get("sortOrder")),
		Page:      page,
		PageSize:  pageSize,
	}
	if err := validators.ValidateStruct(&parsed); err != nil {
		return wps.ProductFilters{}, err
	}

	return wps.ProductFilters{
		Search:    strings.TrimSpace(query.Get("search")),
		Category:  strings.TrimSpace(query.Get("category")),
		BrandID:   strings.TrimSpace(query.Get("brandId")),
		VehicleID: strings.TrimSpace(query.Get("vehicleId")),
		SortBy:    strings.TrimSpace(query.Get("sortBy")),
		SortOrder: parsed.SortOrder,
		Cursor:    strings.TrimSpace(query.Get("cursor")),
		Page:      parsed.Page,
		PageSize:  parsed.PageSize,
	}, nil
}
