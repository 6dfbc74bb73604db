package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"

	"quickshow/internal/entities"
	"quickshow/internal/infrastructure/clients"
)

type BookingsRepository interface {
	Create(ctx context.Context, booking entities.Booking) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (entities.Booking, error)
	SetPaymentLink(ctx context.Context, id uuid.UUID, link string) error
	OccupiedSeats(ctx context.Context, showID uuid.UUID) ([]string, error)
	ListForUser(ctx context.Context, userID string) ([]entities.UserBooking, error)
}

type PaymentsService interface {
	CreateCheckoutSession(ctx context.Context, request clients.CreateCheckoutSessionRequest) (clients.CheckoutSession, error)
	ListCheckoutSessions(ctx context.Context, paymentIntentID string) ([]clients.CheckoutSession, error)
}

type CheckoutURLs struct {
	SuccessURL string
	CancelURL  string
}

type BookingsService struct {
	bookingsRepo BookingsRepository
	showsRepo    ShowsRepository
	moviesRepo   MoviesRepository
	payments     PaymentsService
	urls         CheckoutURLs
}

func NewBookingsService(
	bookingsRepo BookingsRepository,
	showsRepo ShowsRepository,
	moviesRepo MoviesRepository,
	payments PaymentsService,
	urls CheckoutURLs,
) *BookingsService {
	return &BookingsService{
		bookingsRepo: bookingsRepo,
		showsRepo:    showsRepo,
		moviesRepo:   moviesRepo,
		payments:     payments,
		urls:         urls,
	}
}

// CreateBooking reserves seats on a show and opens a checkout session
// for them. The booking is created unpaid; the webhook flips it to paid
// once the processor confirms the checkout.
func (s *BookingsService) CreateBooking(
	ctx context.Context,
	userID string,
	showID uuid.UUID,
	seats []string,
) (entities.Booking, error) {
	show, err := s.showsRepo.Get(ctx, showID)
	if err != nil {
		return entities.Booking{}, err
	}

	movie, err := s.moviesRepo.Get(ctx, show.MovieID)
	if err != nil {
		return entities.Booking{}, err
	}

	booking := entities.Booking{
		UserID:      userID,
		ShowID:      showID,
		Amount:      show.ShowPrice * float64(len(seats)),
		BookedSeats: seats,
	}

	bookingID, err := s.bookingsRepo.Create(ctx, booking)
	if err != nil {
		return entities.Booking{}, err
	}

	session, err := s.payments.CreateCheckoutSession(ctx, clients.CreateCheckoutSessionRequest{
		ClientReference: shortuuid.New(),
		AmountCents:     int64(math.Round(booking.Amount * 100)),
		Currency:        "usd",
		ProductName:     fmt.Sprintf("%s tickets", movie.Title),
		SuccessURL:      s.urls.SuccessURL,
		CancelURL:       s.urls.CancelURL,
		Metadata: map[string]string{
			entities.MetadataBookingID: bookingID.String(),
		},
	})
	if err != nil {
		return entities.Booking{}, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if err := s.bookingsRepo.SetPaymentLink(ctx, bookingID, session.URL); err != nil {
		return entities.Booking{}, err
	}

	booking.ID = bookingID
	booking.PaymentLink = session.URL

	return booking, nil
}

func (s *BookingsService) OccupiedSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	// The show must exist even when nothing is booked yet.
	if _, err := s.showsRepo.Get(ctx, showID); err != nil {
		return nil, err
	}

	return s.bookingsRepo.OccupiedSeats(ctx, showID)
}

func (s *BookingsService) UserBookings(ctx context.Context, userID string) ([]entities.UserBooking, error) {
	return s.bookingsRepo.ListForUser(ctx, userID)
}
