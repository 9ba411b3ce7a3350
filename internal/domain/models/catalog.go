package models

import "time"

// Package statuses. Only published packages are bookable.
const (
	PackageDraft     = "draft"
	PackagePublished = "published"
)

// Package is a bookable multi-day itinerary offering.
type Package struct {
	PackageID     string    `json:"package_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	NoOfDays      int       `json:"no_of_days"`
	IsTemplate    bool      `json:"is_template"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"is_active"`
	BasePrice     *float64  `json:"base_price"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Location is a visitable place referenced from itineraries.
type Location struct {
	LocationID   string    `json:"location_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	LocationType string    `json:"location_type,omitempty"`
	LocationURL  string    `json:"location_url,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ItineraryStop is one location visit inside a package day.
type ItineraryStop struct {
	ID         int64    `json:"id"`
	VisitOrder int      `json:"visit_order"`
	Notes      string   `json:"notes,omitempty"`
	Location   Location `json:"location"`
}

// PackageWithItinerary groups stops by day number.
type PackageWithItinerary struct {
	Package

	Itinerary map[int][]ItineraryStop `json:"itinerary"`
}

// ItineraryInput is one row of a full itinerary replacement.
type ItineraryInput struct {
	LocationID string `json:"location_id" validate:"required"`
	DayNumber  int    `json:"day_number" validate:"required,min=1"`
	VisitOrder int    `json:"visit_order" validate:"min=0"`
	Notes      string `json:"notes"`
}

// PackageUpdate supports partial updates via pointer presence.
type PackageUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	NoOfDays    *int     `json:"no_of_days"`
	IsTemplate  *bool    `json:"is_template"`
	Status      *string  `json:"status"`
	IsActive    *bool    `json:"is_active"`
	BasePrice   *float64 `json:"base_price"`
}

// PackageFilter narrows list queries.
type PackageFilter struct {
	Status     string
	IsActive   *bool
	IsTemplate *bool
	Search     string
}
