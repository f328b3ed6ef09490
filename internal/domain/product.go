package domain

import "time"

// ColorVariant is one color option of a product. Hex is the canonical
// identity used by the filter engine; SelectedClass is a purely cosmetic
// CSS hook carried through to the client.
type ColorVariant struct {
	Name          string `json:"name"`
	Hex           string `json:"hex"`
	SelectedClass string `json:"selected_class,omitempty"`
}

type Product struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Price        float64        `json:"price"`
	Rating       float64        `json:"rating"`
	CollectionID string         `json:"collection_id"`
	Colors       []ColorVariant `json:"colors"`
	Sizes        []string       `json:"sizes"`
	InStock      bool           `json:"in_stock"`
	Images       []string       `json:"images"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type Color struct {
	Name          string `json:"name"`
	Hex           string `json:"hex"`
	SelectedClass string `json:"selected_class,omitempty"`
}

// ProductFull is a product joined with its collection. Products whose
// collection no longer exists are excluded from full views entirely.
type ProductFull struct {
	Product
	Collection Collection `json:"collection"`
}
