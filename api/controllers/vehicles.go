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

// VehicleMakes lists every vehicle make the catalog knows about.
func VehicleMakes(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		makes, err := svc.VehicleMakes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, makes)
	}
}

// VehicleModels lists the models for one make.
func VehicleModels(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		makeID, err := validators.RequiredQuery(r, "makeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		models, err := svc.VehicleModels(r.Context(), makeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, models)
	}
}

// VehicleYears lists the years for one model.
func VehicleYears(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		modelID, err := validators.RequiredQuery(r, "modelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		years, err := svc.VehicleYears(r.Context(), modelID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, years)
	}
}

// VehicleProducts lists the products that fit one vehicle, paginated.
func VehicleProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		vehicleID := strings.TrimSpace(chi.URLParam(r, "vehicleId"))
		if vehicleID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "vehicleId is required"))
			return
		}

		pageReq, err := pageRequestFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.VehicleProducts(r.Context(), vehicleID, pageReq)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMeta(w, page.Items, page.Page)
	}
}

// VehicleCompatibility reports whether a SKU fits a vehicle by walking the
// vehicle's fitment pages.
func VehicleCompatibility(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		vehicleID := strings.TrimSpace(chi.URLParam(r, "vehicleId"))
		if vehicleID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "vehicleId is required"))
			return
		}

		sku, err := validators.RequiredQuery(r, "sku")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		compatible, err := svc.CheckCompatibility(r.Context(), sku, vehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"sku":        sku,
			"vehicleId":  vehicleID,
			"compatible": compatible,
		})
	}
}

type vehiclePageQuery struct {
	Page     int `json:"page" validate:"omitempty,min=1"`
	PageSize int `json:"pageSize" validate:"omitempty,min=1,max=1000"`
}

func pageRequestFromQuery(r *http.Request) (wps.PageRequest, error) {
	query := r.URL.Query()

	pageSize := 0
	for _, key := range []string{"pageSize", "limit"} {
		if raw := strings.TrimSpace(query.Get(key)); raw != "" {
			value, err := validators.QueryInt(r, key)
			if err != nil {
				return wps.PageRequest{}, err
			}
			pageSize = value
			break
		}
	}

	page, err := validators.QueryInt(r, "page")
	if err != nil {
		return wps.PageRequest{}, err
	}

	parsed := vehiclePageQuery{Page: page, PageSize: pageSize}
	if err := validators.ValidateStruct(&parsed); err != nil {
		return wps.PageRequest{}, err
	}

	return wps.PageRequest{
		Cursor:   strings.TrimSpace(query.Get("cursor")),
		Page:     parsed.Page,
		PageSize: parsed.PageSize,
	}, nil
}
