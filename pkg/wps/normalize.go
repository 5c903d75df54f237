package wps

import (
	"strings"
)

// statusActive is the sole in-stock signal the vendor emits. The match is
// exact and case-sensitive; "ACTIVE", "active", or anything else means not
// purchasable.
const statusActive = "Active"

func normalizeProduct(raw rawItem, images []string) Product {
	if images == nil {
		images = []string{}
	}

	price := float64(raw.Price)
	if price == 0 {
		if raw.ListPrice != 0 {
			price = float64(raw.ListPrice)
		} else {
			price = float64(raw.RetailPrice)
		}
	}

	name := raw.Name
	if name == "" {
		name = raw.Title
	}
	description := raw.Description
	if description == "" {
		description = raw.Summary
	}

	return Product{
		ID:               raw.ID.String(),
		SKU:              raw.SKU,
		Name:             name,
		Description:      description,
		Price:            price,
		ListPrice:        float64(raw.ListPrice),
		DealerPrice:      float64(raw.StandardDealerPrice),
		MappPrice:        float64(raw.MappPrice),
		BrandID:          raw.BrandID.String(),
		ProductType:      raw.ProductType,
		Length:           float64(raw.Length),
		Width:            float64(raw.Width),
		Height:           float64(raw.Height),
		Weight:           float64(raw.Weight),
		UPC:              raw.UPC,
		Status:           raw.Status,
		InStock:          raw.Status == statusActive,
		DropShipEligible: raw.DropShipEligible,
		Images:           images,
	}
}

func normalizeMake(raw rawVehicleMake) VehicleMake {
	return VehicleMake{
		ID:   raw.ID.String(),
		Name: raw.Name,
	}
}

func normalizeModel(raw rawVehicleModel) VehicleModel {
	return VehicleModel{
		ID:     raw.ID.String(),
		Name:   raw.Name,
		MakeID: raw.MakeID.String(),
	}
}

func normalizeYear(raw rawVehicleYear) VehicleYear {
	return VehicleYear{
		ID:      raw.ID.String(),
		Year:    int(raw.Year),
		ModelID: raw.ModelID.String(),
	}
}

// imageURL assembles a fully-qualified URL from the vendor's structured
// {domain, path, filename} triple, tolerating stray slashes on any side and
// a scheme-less domain.
func imageURL(domain, path, filename string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return ""
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + strings.TrimPrefix(domain, "//")
	}
	domain = strings.TrimRight(domain, "/")

	parts := []string{domain}
	if p := strings.Trim(strings.TrimSpace(path), "/"); p != "" {
		parts = append(parts, p)
	}
	if f := strings.TrimLeft(strings.TrimSpace(filename), "/"); f != "" {
		parts = append(parts, f)
	}
	return strings.Join(parts, "/")
}

func normalizeImages(raws []rawImage) []string {
	urls := make([]string, 0, len(raws))
	for _, raw := range raws {
		switch {
		case raw.URL != "":
			urls = append(urls, raw.URL)
		case raw.Src != "":
			urls = append(urls, raw.Src)
		default:
			if u := imageURL(raw.Domain, raw.Path, raw.Filename); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}
