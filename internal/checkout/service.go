package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/cart"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

// Request is the checkout form payload. IdempotencyKey is optional; when
// set, resubmitting the same key returns the original reservation instead
// of creating a second one.
type Request struct {
	FullName        string `json:"full_name"`
	Mobile          string `json:"mobile"`
	SecondaryMobile string `json:"secondary_mobile"`
	Address         string `json:"address"`
	City            string `json:"city"`
	IdempotencyKey  string `json:"-"`
}

type Result struct {
	ReservationID uuid.UUID `json:"id"`
	State         State     `json:"state"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failed field check so the form can show
// inline messages. It blocks submission entirely: no backend call is made
// and the cart is left untouched.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, f.Field)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit walks the submission states: validate the form and cart, snapshot
// the cart into a reservation, insert it, then clear the cart. On any
// failure before or during the insert no mutation happens, so the user can
// simply resubmit.
func (s *Service) Submit(ctx context.Context, req Request, cartStore *cart.Store) (*Result, error) {
	if verr := validate(req, cartStore.TotalItems()); verr != nil {
		log.Printf("checkout %s -> %s: %v", StateValidating, StateIdle, verr)
		return nil, verr
	}

	if req.IdempotencyKey != "" {
		existing, err := s.repo.GetReservationByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			log.Printf("duplicate submission for idempotency key %s, returning reservation %s", req.IdempotencyKey, existing.ID)
			return &Result{ReservationID: existing.ID, State: StateSucceeded}, nil
		}
		if !errors.Is(err, ErrIdempotencyKeyNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
	}

	reservation := s.snapshot(req, cartStore)

	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		log.Printf("checkout %s -> %s for reservation %s: %v", StateSubmitting, StateFailed, reservation.ID, err)
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	// Only a confirmed insert clears the cart; a failed one leaves the
	// user able to retry with everything still in place.
	cartStore.Clear(ctx)

	log.Printf("checkout %s: reservation %s for %d items", StateSucceeded, reservation.ID, len(reservation.Items))
	return &Result{ReservationID: reservation.ID, State: StateSucceeded}, nil
}

// snapshot denormalizes the current cart lines into the reservation so
// later catalog edits never change what was ordered.
func (s *Service) snapshot(req Request, cartStore *cart.Store) *domain.Reservation {
	lines := cartStore.Items()
	items := make([]domain.ReservationItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.ReservationItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Color:     line.Color,
			ColorHex:  line.ColorHex,
			Size:      line.Size,
			Image:     line.Image,
		})
	}

	now := s.now()
	return &domain.Reservation{
		ID:              uuid.New(),
		IdempotencyKey:  req.IdempotencyKey,
		CustomerName:    strings.TrimSpace(req.FullName),
		Mobile:          strings.TrimSpace(req.Mobile),
		SecondaryMobile: strings.TrimSpace(req.SecondaryMobile),
		Address:         strings.TrimSpace(req.Address),
		City:            strings.TrimSpace(req.City),
		Items:           items,
		TotalAmount:     cartStore.Subtotal(),
		Status:          domain.ReservationStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func validate(req Request, totalItems int) *ValidationError {
	var fields []FieldError

	required := []struct {
		field string
		value string
	}{
		{"full_name", req.FullName},
		{"mobile", req.Mobile},
		{"address", req.Address},
		{"city", req.City},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, FieldError{Field: f.field, Message: "required"})
		}
	}

	if totalItems == 0 {
		fields = append(fields, FieldError{Field: "items", Message: "cart is empty"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
