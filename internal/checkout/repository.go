package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

var (
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrDuplicateReservation   = errors.New("reservation already exists for this idempotency key")
	ErrIdempotencyKeyNotFound = errors.New("no reservation for idempotency key")
)

// Repository persists reservations. Consumers define this interface, not
// the Postgres implementation.
type Repository interface {
	CreateReservation(ctx context.Context, reservation *domain.Reservation) error
	GetReservationByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	GetReservationByIdempotencyKey(ctx context.Context, key string) (*domain.Reservation, error)
}
