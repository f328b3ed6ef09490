package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/checkout"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

// reservationRepoMock implements checkout.Repository for handler tests
type reservationRepoMock struct {
	mu        sync.Mutex
	created   *domain.Reservation
	createErr error
}

func (m *reservationRepoMock) CreateReservation(_ context.Context, reservation *domain.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.created = reservation
	return nil
}

func (m *reservationRepoMock) GetReservationByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.created != nil && m.created.ID == id {
		return m.created, nil
	}
	return nil, checkout.ErrReservationNotFound
}

func (m *reservationRepoMock) GetReservationByIdempotencyKey(context.Context, string) (*domain.Reservation, error) {
	return nil, checkout.ErrIdempotencyKeyNotFound
}

func newCheckoutHandler(repo *reservationRepoMock) (*CheckoutHandler, *CartHandler) {
	carts := newCartManager()
	service := checkout.NewService(repo)
	return NewCheckoutHandler(service, repo, carts, testTimeout),
		NewCartHandler(carts, stockedCatalog(), testTimeout)
}

func fillSessionCart(t *testing.T, cartHandler *CartHandler, sessionID string) {
	t.Helper()
	body := `{"product_id":"p1","quantity":2,"color_hex":"#000000","size":"M"}`
	recorder := httptest.NewRecorder()
	cartHandler.AddItem(recorder, withSession(httptest.NewRequest("POST", "/items", bytes.NewBufferString(body)), sessionID))
	require.Equal(t, http.StatusCreated, recorder.Code)
}

func TestSubmit_CreatesReservationAndClearsCart(t *testing.T) {
	repo := &reservationRepoMock{}
	handler, cartHandler := newCheckoutHandler(repo)
	fillSessionCart(t, cartHandler, "s1")

	body := `{"full_name":"Amina K","mobile":"0612345678","address":"12 Rue des Fleurs","city":"Casablanca"}`
	recorder := httptest.NewRecorder()
	handler.Submit(recorder, withSession(httptest.NewRequest("POST", "/checkout", bytes.NewBufferString(body)), "s1"))

	require.Equal(t, http.StatusCreated, recorder.Code)
	var result checkout.Result
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&result))
	assert.Equal(t, checkout.StateSucceeded, result.State)
	assert.NotEqual(t, uuid.Nil, result.ReservationID)

	require.NotNil(t, repo.created)
	assert.InDelta(t, 178, repo.created.TotalAmount, 1e-9)

	// The cart is empty after a confirmed submission.
	recorder = httptest.NewRecorder()
	cartHandler.GetCart(recorder, withSession(httptest.NewRequest("GET", "/", nil), "s1"))
	assert.Zero(t, decodeCart(t, recorder).TotalItems)
}

func TestSubmit_ValidationErrorsListFields(t *testing.T) {
	repo := &reservationRepoMock{}
	handler, cartHandler := newCheckoutHandler(repo)
	fillSessionCart(t, cartHandler, "s1")

	recorder := httptest.NewRecorder()
	handler.Submit(recorder, withSession(httptest.NewRequest("POST", "/checkout", bytes.NewBufferString(`{}`)), "s1"))

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Code)
	assert.Len(t, resp.Fields, 4)
	assert.Nil(t, repo.created)

	// The cart keeps its contents.
	recorder = httptest.NewRecorder()
	cartHandler.GetCart(recorder, withSession(httptest.NewRequest("GET", "/", nil), "s1"))
	assert.Equal(t, 2, decodeCart(t, recorder).TotalItems)
}

func TestSubmit_BackendFailure(t *testing.T) {
	repo := &reservationRepoMock{createErr: assert.AnError}
	handler, cartHandler := newCheckoutHandler(repo)
	fillSessionCart(t, cartHandler, "s1")

	body := `{"full_name":"Amina K","mobile":"0612345678","address":"12 Rue des Fleurs","city":"Casablanca"}`
	recorder := httptest.NewRecorder()
	handler.Submit(recorder, withSession(httptest.NewRequest("POST", "/checkout", bytes.NewBufferString(body)), "s1"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	recorder = httptest.NewRecorder()
	cartHandler.GetCart(recorder, withSession(httptest.NewRequest("GET", "/", nil), "s1"))
	assert.Equal(t, 2, decodeCart(t, recorder).TotalItems, "a failed submission keeps the cart")
}

func TestGetReservation(t *testing.T) {
	repo := &reservationRepoMock{}
	handler, cartHandler := newCheckoutHandler(repo)
	fillSessionCart(t, cartHandler, "s1")

	body := `{"full_name":"Amina K","mobile":"0612345678","address":"12 Rue des Fleurs","city":"Casablanca"}`
	recorder := httptest.NewRecorder()
	handler.Submit(recorder, withSession(httptest.NewRequest("POST", "/checkout", bytes.NewBufferString(body)), "s1"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	id := repo.created.ID.String()
	recorder = httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/orders/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

	handler.GetReservation(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var reservation domain.Reservation
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&reservation))
	assert.Equal(t, "Amina K", reservation.CustomerName)
	assert.Equal(t, domain.ReservationStatusPending, reservation.Status)
}

func TestGetReservation_NotFound(t *testing.T) {
	repo := &reservationRepoMock{}
	handler, _ := newCheckoutHandler(repo)

	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("GET", "/orders/"+id, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

		handler.GetReservation(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code, "id %s", id)
	}
}
