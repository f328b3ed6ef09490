package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationItem is a denormalized snapshot of a cart line at submission
// time, so later catalog edits never alter historical reservations.
type ReservationItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	ColorHex  string  `json:"color_hex,omitempty"`
	Size      string  `json:"size,omitempty"`
	Image     string  `json:"image,omitempty"`
}

// Reservation is a placed order awaiting manual fulfillment. It is created
// once at checkout submission and its status is only ever mutated by store
// staff; the storefront never deletes one.
type Reservation struct {
	ID              uuid.UUID         `json:"id"`
	IdempotencyKey  string            `json:"-"`
	CustomerName    string            `json:"customer_name"`
	Mobile          string            `json:"mobile"`
	SecondaryMobile string            `json:"secondary_mobile,omitempty"`
	Address         string            `json:"address"`
	City            string            `json:"city"`
	Items           []ReservationItem `json:"items"`
	TotalAmount     float64           `json:"total_amount"`
	Status          string            `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

const ReservationStatusPending = "pending"
