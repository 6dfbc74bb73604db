package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quickshow/internal/entities"
	"quickshow/internal/idempotency"
	"quickshow/internal/log"
)

type SignatureVerifier interface {
	Verify(payload []byte, header string, now time.Time) error
}

type BookingsPaymentRepository interface {
	MarkPaid(ctx context.Context, id uuid.UUID) error
}

type eventBus interface {
	Publish(ctx context.Context, event any) error
}

// PaymentWebhookService turns signed payment processor events into
// booking mutations plus a published BookingConfirmed event. All work
// is synchronous within the webhook request; only the confirmation
// email rides on the event.
type PaymentWebhookService struct {
	verifier     SignatureVerifier
	payments     PaymentsService
	bookingsRepo BookingsPaymentRepository
	eventBus     eventBus
}

func NewPaymentWebhookService(
	verifier SignatureVerifier,
	payments PaymentsService,
	bookingsRepo BookingsPaymentRepository,
	eventBus eventBus,
) *PaymentWebhookService {
	return &PaymentWebhookService{
		verifier:     verifier,
		payments:     payments,
		bookingsRepo: bookingsRepo,
		eventBus:     eventBus,
	}
}

// HandleEvent authenticates and applies one webhook delivery. The
// payload must be the raw request body; parsing it before verification
// would let a forged body through.
func (s *PaymentWebhookService) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	if err := s.verifier.Verify(payload, sigHeader, time.Now()); err != nil {
		return err
	}

	var event entities.PaymentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrMalformedEvent, err)
	}

	// Redeliveries of the same processor event produce the same
	// idempotency key on anything published downstream.
	if event.ID != "" {
		ctx = idempotency.WithKey(ctx, event.ID)
	}

	switch event.Type {
	case entities.PaymentEventCheckoutCompleted:
		bookingID := event.Data.Object.Metadata[entities.MetadataBookingID]
		if bookingID == "" {
			return entities.ErrMissingBookingID
		}
		return s.confirmBooking(ctx, bookingID)

	case entities.PaymentEventIntentSucceeded:
		// The intent object has no metadata of its own; recover the
		// booking id from the checkout session that opened it.
		sessions, err := s.payments.ListCheckoutSessions(ctx, event.Data.Object.ID)
		if err != nil {
			return fmt.Errorf("failed to resolve payment intent %s: %w", event.Data.Object.ID, err)
		}
		if len(sessions) == 0 {
			return fmt.Errorf("%w: no checkout session for payment intent %s",
				entities.ErrMissingBookingID, event.Data.Object.ID)
		}
		bookingID := sessions[0].Metadata[entities.MetadataBookingID]
		if bookingID == "" {
			return entities.ErrMissingBookingID
		}
		return s.confirmBooking(ctx, bookingID)

	default:
		// Unknown types are acknowledged, otherwise the processor
		// keeps redelivering them.
		log.FromContext(ctx).
			WithField("event_type", event.Type).
			Info("Ignoring unhandled payment event type")
		return nil
	}
}

func (s *PaymentWebhookService) confirmBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: booking id %q is not a UUID", entities.ErrMalformedEvent, bookingID)
	}

	if err := s.bookingsRepo.MarkPaid(ctx, id); err != nil {
		// A booking that no longer exists can never be confirmed;
		// acknowledge so the processor stops redelivering.
		if errors.Is(err, entities.ErrBookingNotFound) {
			log.FromContext(ctx).
				WithField("booking_id", bookingID).
				Warn("Payment confirmed for unknown booking, dropping event")
			return nil
		}
		return err
	}

	err = s.eventBus.Publish(ctx, entities.BookingConfirmed_v1{
		Header:    entities.NewEventHeaderWithIdempotencyKey(idempotency.GetKey(ctx)),
		BookingID: bookingID,
	})
	if err != nil {
		return fmt.Errorf("failed to publish booking confirmation: %w", err)
	}

	log.FromContext(ctx).
		WithField("booking_id", bookingID).
		Info("Booking marked as paid")

	return nil
}
