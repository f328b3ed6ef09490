package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/cart"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/checkout"
)

type CheckoutHandler struct {
	service      *checkout.Service
	reservations checkout.Repository
	carts        *cart.Manager
	timeout      time.Duration
}

func NewCheckoutHandler(service *checkout.Service, reservations checkout.Repository, carts *cart.Manager, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service:      service,
		reservations: reservations,
		carts:        carts,
		timeout:      timeout,
	}
}

type ValidationErrorResponse struct {
	Error  string                `json:"error"`
	Code   string                `json:"code"`
	Fields []checkout.FieldError `json:"fields"`
}

// Submit drives the checkout submission. Validation failures respond 400
// with per-field messages and leave the cart untouched; only a successful
// insert clears it and returns the reservation id for the confirmation
// view.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	req.IdempotencyKey = r.Header.Get("Idempotency-Key")

	store := h.carts.Get(ctx, getSessionID(ctx))

	result, err := h.service.Submit(ctx, req, store)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  "validation failed",
				Code:   "validation_error",
				Fields: verr.Fields,
			})
			return
		}
		respondError(w, http.StatusInternalServerError, "backend_error", "could not place the order, please try again")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (h *CheckoutHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	reservation, err := h.reservations.GetReservationByID(ctx, id)
	if err != nil {
		if errors.Is(err, checkout.ErrReservationNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "reservation not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "backend_error", "could not load the reservation")
		return
	}
	respondJSON(w, http.StatusOK, reservation)
}
