package models

import (
	"strings"

	"github.com/yourorg/catalogadmin/internal/apperrors"
)

// Locations a product can be assigned to.
const (
	LocationShowroom = "Showroom"
	LocationIncoming = "En arrivage"
)

var Locations = []string{LocationShowroom, LocationIncoming}

// MetaUpdate is the partial update body for POST /products/{id}/meta.
type MetaUpdate struct {
	Location  *string `json:"localisation,omitempty"`
	Purchased *int    `json:"stock_acheter,omitempty"`
	Released  *int    `json:"stock_sorti,omitempty"`
}

func (m MetaUpdate) IsEmpty() bool {
	return m.Location == nil && m.Purchased == nil && m.Released == nil
}

// StockAdjustment is the edit form for a product's location and stock movement.
// Only one of Purchased and Released may be filled.
type StockAdjustment struct {
	Location  string
	Purchased int
	Released  int
}

func (a StockAdjustment) Validate(currentStock int) error {
	location := strings.TrimSpace(a.Location)
	if location == "" {
		return apperrors.NewValidationError("localisation", "location is required")
	}
	if !isKnownLocation(location) {
		return apperrors.NewValidationError("localisation", "location must be one of: "+strings.Join(Locations, ", "))
	}
	if a.Purchased < 0 || a.Released < 0 {
		return apperrors.NewValidationError("quantity", "quantities cannot be negative")
	}
	if a.Purchased == 0 && a.Released == 0 {
		return apperrors.NewValidationError("quantity", "a purchased or released quantity is required")
	}
	if a.Purchased > 0 && a.Released > 0 {
		return apperrors.NewValidationError("quantity", "only one of purchased or released can be set")
	}
	if a.Released > currentStock {
		return apperrors.NewValidationError("stock_sorti", "released quantity cannot exceed current stock")
	}
	return nil
}

// Projected returns the stock the server is expected to compute.
func (a StockAdjustment) Projected(currentStock int) int {
	if a.Purchased > 0 {
		return currentStock + a.Purchased
	}
	if a.Released > 0 {
		return max(0, currentStock-a.Released)
	}
	return currentStock
}

// StockUpdate is the outcome of an accepted stock adjustment.
type StockUpdate struct {
	Result         map[string]any
	CurrentStock   int
	ProjectedStock int
}

func (a StockAdjustment) MetaUpdate() MetaUpdate {
	var u MetaUpdate
	if location := strings.TrimSpace(a.Location); location != "" {
		u.Location = &location
	}
	if a.Purchased > 0 {
		n := a.Purchased
		u.Purchased = &n
	}
	if a.Released > 0 {
		n := a.Released
		u.Released = &n
	}
	return u
}

func isKnownLocation(location string) bool {
	for _, l := range Locations {
		if l == location {
			return true
		}
	}
	return false
}

// ImageFile is uploaded image content.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageSource is either file content or a remote URL.
type ImageSource struct {
	File *ImageFile
	URL  string
}

type ImageOptions struct {
	// Gallery appends to the gallery instead of replacing the primary image.
	Gallery bool
}

type ImageResult struct {
	ImageURL string `json:"image_url"`
}
