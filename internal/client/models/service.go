// Package models defines the client-side data model of the Evently catalog
// and the DTOs exchanged with the backend.
package models

import (
	"fmt"
	"time"
)

// Category classifies a service offering.
type Category string

const (
	CategoryVenue         Category = "venue"
	CategoryCatering      Category = "catering"
	CategoryPhotography   Category = "photography"
	CategoryEntertainment Category = "entertainment"
	CategoryDecor         Category = "decor"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryVenue,
	CategoryCatering,
	CategoryPhotography,
	CategoryEntertainment,
	CategoryDecor,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts a category name exactly as the backend spells it.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// ServiceRecord is a catalog item as returned by the backend. The client never
// holds an authoritative copy; every change round-trips to the backend.
type ServiceRecord struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrice   float64   `json:"basePrice"`
	Category    Category  `json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ServiceRegistration is the create/update payload.
type ServiceRegistration struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	BasePrice   float64  `json:"basePrice" validate:"gte=0"`
	Category    Category `json:"category" validate:"required,category"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// ListServiceResponse is the body of GET /api/services.
type ListServiceResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    []ServiceRecord `json:"data"`
}
