package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickshow/internal/application/services"
	"quickshow/internal/entities"
	"quickshow/internal/infrastructure/clients"
	"quickshow/internal/repository"
	"quickshow/internal/signature"
)

const webhookSecret = "whsec_test"

type eventBusMock struct {
	mu        sync.Mutex
	Published []any
	Err       error
}

func (m *eventBusMock) Publish(_ context.Context, event any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Published = append(m.Published, event)
	return nil
}

type webhookFixture struct {
	service  *services.PaymentWebhookService
	bookings *repository.BookingsRepoMock
	payments *clients.PaymentsMock
	bus      *eventBusMock
}

func newWebhookFixture() webhookFixture {
	bookings := repository.NewBookingsRepoMock()
	payments := &clients.PaymentsMock{}
	bus := &eventBusMock{}

	return webhookFixture{
		service: services.NewPaymentWebhookService(
			signature.NewVerifier(webhookSecret, time.Minute),
			payments,
			bookings,
			bus,
		),
		bookings: bookings,
		payments: payments,
		bus:      bus,
	}
}

func signedEvent(t *testing.T, event entities.PaymentEvent) (payload []byte, header string) {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	return payload, signature.SignHeader(webhookSecret, time.Now(), payload)
}

func unpaidBooking(t *testing.T, f webhookFixture) uuid.UUID {
	t.Helper()

	id, err := f.bookings.Create(context.Background(), entities.Booking{
		UserID:      "user_1",
		ShowID:      uuid.New(),
		Amount:      24,
		BookedSeats: []string{"A1", "A2"},
	})
	require.NoError(t, err)

	return id
}

func TestPaymentWebhookService_CheckoutCompleted(t *testing.T) {
	f := newWebhookFixture()
	bookingID := unpaidBooking(t, f)

	event := entities.PaymentEvent{ID: "evt_1", Type: entities.PaymentEventCheckoutCompleted}
	event.Data.Object = entities.PaymentObject{
		ID:       "cs_1",
		Metadata: map[string]string{entities.MetadataBookingID: bookingID.String()},
	}
	payload, header := signedEvent(t, event)

	err := f.service.HandleEvent(context.Background(), payload, header)
	require.NoError(t, err)

	booking, err := f.bookings.Get(context.Background(), bookingID)
	require.NoError(t, err)
	assert.True(t, booking.IsPaid)
	assert.Empty(t, booking.PaymentLink)

	require.Len(t, f.bus.Published, 1)
	confirmed, ok := f.bus.Published[0].(entities.BookingConfirmed_v1)
	require.True(t, ok)
	assert.Equal(t, bookingID.String(), confirmed.BookingID)
	assert.Equal(t, "evt_1", confirmed.Header.IdempotencyKey)
}

func TestPaymentWebhookService_InvalidSignature(t *testing.T) {
	f := newWebhookFixture()
	bookingID := unpaidBooking(t, f)

	event := entities.PaymentEvent{ID: "evt_1", Type: entities.PaymentEventCheckoutCompleted}
	event.Data.Object = entities.PaymentObject{
		Metadata: map[string]string{entities.MetadataBookingID: bookingID.String()},
	}
	payload, _ := signedEvent(t, event)
	header := signature.SignHeader("whsec_wrong", time.Now(), payload)

	err := f.service.HandleEvent(context.Background(), payload, header)
	assert.ErrorIs(t, err, entities.ErrSignatureInvalid)

	booking, err := f.bookings.Get(context.Background(), bookingID)
	require.NoError(t, err)
	assert.False(t, booking.IsPaid)
	assert.Empty(t, f.bus.Published)
}

func TestPaymentWebhookService_MalformedPayload(t *testing.T) {
	f := newWebhookFixture()

	payload := []byte(`{"id":`)
	header := signature.SignHeader(webhookSecret, time.Now(), payload)

	err := f.service.HandleEvent(context.Background(), payload, header)
	assert.ErrorIs(t, err, entities.ErrMalformedEvent)
}

func TestPaymentWebhookService_MissingBookingID(t *testing.T) {
	f := newWebhookFixture()

	event := entities.PaymentEvent{ID: "evt_1", Type: entities.PaymentEventCheckoutCompleted}
	event.Data.Object = entities.PaymentObject{ID: "cs_1"}
	payload, header := signedEvent(t, event)

	err := f.service.HandleEvent(context.Background(), payload, header)
	assert.ErrorIs(t, err, entities.ErrMissingBookingID)
	assert.Empty(t, f.bus.Published)
}

func TestPaymentWebhookService_BookingIDNotUUID(t *testing.T) {
	f := newWebhookFixture()

	event := entities.PaymentEvent{ID: "evt_1", Type: entities.PaymentEventCheckoutCompleted}
	event.Data.Object = entities.PaymentObject{
		Metadata: map[string]string{entities.MetadataBookingID: "not-a-uuid"},
	}
	payload, header := signedEvent(t, event)

	err := f.service.HandleEvent(context.Background(), payload, header)
	assert.ErrorIs(t, err, entities.ErrMalformedEvent)
}

func TestPaymentWebhookService_UnknownBooking(t *testing.T) {
	f := newWebhookFixture()

	event := entities.PaymentEvent{ID: "evt_1", Type: entities.PaymentEventCheckoutCompleted}
	event.Data.Object = entities.PaymentObject{
		Metadata: map[string]string{entities.MetadataBookingID: uuid.NewString()},
	}
	payload, header := signedEvent(t, event)

	// The booking is gone, redelivering can never succeed; the event is
	// acknowledged and nothing is published.
	err := f.service.HandleEvent(context.Background(), payload, header)
	require.NoError(t, err)
	assert.Empty(t, f.bus.Published)
}

func TestPaymentWebhookService_PaymentIntentSucceeded(t *testing.T) {
	f := newWebhookFixture()
	bookingID := unpaidBooking(t, f)

	f.payments.Sessions = []clients.CheckoutSession{{
		ID:            "cs_1",
		PaymentIntent: "pi_1",
		Metadata:      map[string]string{entities.MetadataBookingID: bookingID.String()},
	}}

	event := entities.PaymentEvent{ID: "evt_2", Type: entities.PaymentEventIntentSucceeded}
	event.Data.Object = entities.PaymentObject{ID: "pi_1"}
	payload, header := signedEvent(t, event)

	err := f.service.HandleEvent(context.Background(), payload, header)
	require.NoError(t, err)

	booking, err := f.bookings.Get(context.Background(), bookingID)
	require.NoError(t, err)
	assert.True(t, booking.IsPaid)
	require.Len(t, f.bus.Published, 1)
}

func TestPaymentWebhookService_PaymentIntentWithoutSession(t *testing.T) {
	f := newWebhookFixture()

	event := entities.PaymentEvent{ID: "evt_2", Type: entities.PaymentEventIntentSucceeded}
	event.Data.Object = entities.PaymentObject{ID: "pi_unknown"}
	payload, header := signedEvent(t, event)

	err := f.service.HandleEvent(context.Background(), payload, header)
	assert.ErrorIs(t, err, entities.ErrMissingBookingID)
}

func TestPaymentWebhookService_IgnoresUnknownEventType(t *testing.T) {
	f := newWebhookFixture()

	event := entities.PaymentEvent{ID: "evt_3", Type: "customer.created"}
	payload, header := signedEvent(t, event)

	err := f.service.HandleEvent(context.Background(), payload, header)
	require.NoError(t, err)
	assert.Empty(t, f.bus.Published)
}

func TestPaymentWebhookService_RedeliveryKeepsIdempotencyKey(t *testing.T) {
	f := newWebhookFixture()
	bookingID := unpaidBooking(t, f)

	event := entities.PaymentEvent{ID: "evt_1", Type: entities.PaymentEventCheckoutCompleted}
	event.Data.Object = entities.PaymentObject{
		Metadata: map[string]string{entities.MetadataBookingID: bookingID.String()},
	}
	payload, header := signedEvent(t, event)

	require.NoError(t, f.service.HandleEvent(context.Background(), payload, header))
	require.NoError(t, f.service.HandleEvent(context.Background(), payload, header))

	booking, err := f.bookings.Get(context.Background(), bookingID)
	require.NoError(t, err)
	assert.True(t, booking.IsPaid)

	// Both deliveries publish, but with the same idempotency key so
	// downstream consumers can dedupe.
	require.Len(t, f.bus.Published, 2)
	first := f.bus.Published[0].(entities.BookingConfirmed_v1)
	second := f.bus.Published[1].(entities.BookingConfirmed_v1)
	assert.Equal(t, first.Header.IdempotencyKey, second.Header.IdempotencyKey)
	assert.NotEqual(t, first.Header.ID, second.Header.ID)
}
