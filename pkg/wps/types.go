package wps

import (
	"bytes"
	"strconv"
	"strings"
)

// Domain shapes returned to callers. These are stable regardless of vendor
// schema drift; every field is populated by the normalizers in normalize.go.

type Product struct {
	ID               string   `json:"id"`
	SKU              string   `json:"sku"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Price            float64  `json:"price"`
	ListPrice        float64  `json:"listPrice"`
	DealerPrice      float64  `json:"dealerPrice"`
	MappPrice        float64  `json:"mappPrice"`
	BrandID          string   `json:"brandId,omitempty"`
	ProductType      string   `json:"productType,omitempty"`
	Length           float64  `json:"length,omitempty"`
	Width            float64  `json:"width,omitempty"`
	Height           float64  `json:"height,omitempty"`
	Weight           float64  `json:"weight,omitempty"`
	UPC              string   `json:"upc,omitempty"`
	Status           string   `json:"status"`
	InStock          bool     `json:"inStock"`
	DropShipEligible bool     `json:"dropShipEligible"`
	Images           []string `json:"images"`
}

type VehicleMake struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type VehicleModel struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	MakeID string `json:"makeId"`
}

type VehicleYear struct {
	ID      string `json:"id"`
	Year    int    `json:"year"`
	ModelID string `json:"modelId"`
}

// ProductFilters is the request-side filter set. Values are read once per
// request; a change in any filter implies a fresh first-page request.
type ProductFilters struct {
	Search    string
	Category  string
	BrandID   string
	VehicleID string
	SortBy    string
	SortOrder string
	Page      int
	Cursor    string
	PageSize  int
}

// PageRequest positions a follow-up fetch within a paginated listing.
type PageRequest struct {
	Cursor   string
	Page     int
	PageSize int
}

// ProductPage is one normalized page of products plus its paging state.
type ProductPage struct {
	Items []Product `json:"items"`
	Page  PageInfo  `json:"pagination"`
}

// Raw vendor payloads. The vendor frequently ships numerics as quoted
// strings and has renamed fields across API revisions, so the raw schema is
// explicit here and all fallback logic lives in normalize.go.

type rawItem struct {
	ID                  flexID    `json:"id"`
	SKU                 string    `json:"sku"`
	Name                string    `json:"name"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Summary             string    `json:"summary"`
	Price               flexFloat `json:"price"`
	ListPrice           flexFloat `json:"list_price"`
	RetailPrice         flexFloat `json:"retail_price"`
	StandardDealerPrice flexFloat `json:"standard_dealer_price"`
	MappPrice           flexFloat `json:"mapp_price"`
	BrandID             flexID    `json:"brand_id"`
	ProductType         string    `json:"product_type"`
	Length              flexFloat `json:"length"`
	Width               flexFloat `json:"width"`
	Height              flexFloat `json:"height"`
	Weight              flexFloat `json:"weight"`
	UPC                 string    `json:"upc"`
	Status              string    `json:"status"`
	DropShipEligible    bool      `json:"drop_ship_eligible"`
}

type rawImage struct {
	URL      string `json:"url"`
	Src      string `json:"src"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

type rawVehicleMake struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

type rawVehicleModel struct {
	ID     flexID `json:"id"`
	Name   string `json:"name"`
	MakeID flexID `json:"make_id"`
}

type rawVehicleYear struct {
	ID      flexID    `json:"id"`
	Year    flexFloat `json:"year"`
	ModelID flexID    `json:"model_id"`
}

type rawCursor struct {
	Current *string `json:"current"`
	Prev    *string `json:"prev"`
	Next    *string `json:"next"`
	Count   int     `json:"count"`
}

type listMeta struct {
	Cursor  *rawCursor `json:"cursor"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}

type envelope[T any] struct {
	Data T         `json:"data"`
	Meta *listMeta `json:"meta"`
}

// flexFloat tolerates numerics arriving as numbers, quoted strings, null, or
// garbage. Anything unparseable becomes 0, never an unmarshal error.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	text := strings.Trim(string(trimmed), `"`)
	if text == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
		*f = flexFloat(v)
	}
	return nil
}

// flexID tolerates identifiers arriving as numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	*f = ""
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	*f = flexID(strings.Trim(string(trimmed), `"`))
	return nil
}

func (f flexID) String() string {
	return string(f)
}
