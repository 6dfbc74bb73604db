package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickshow/internal/entities"
	"quickshow/internal/infrastructure/clients"
	"quickshow/internal/interfaces/events"
	"quickshow/internal/repository"
)

func paidBookingFixture(t *testing.T) (*repository.BookingsRepoMock, uuid.UUID) {
	t.Helper()

	bookings := repository.NewBookingsRepoMock()

	showID := uuid.New()
	bookings.Movies["movie_1"] = entities.Movie{ID: "movie_1", Title: "Arrival"}
	bookings.Shows[showID] = entities.Show{
		ID:           showID,
		MovieID:      "movie_1",
		ShowDateTime: time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC),
		ShowPrice:    12,
	}
	bookings.Users["user_1"] = entities.User{
		ID:    "user_1",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}

	bookingID, err := bookings.Create(context.Background(), entities.Booking{
		UserID:      "user_1",
		ShowID:      showID,
		Amount:      24,
		BookedSeats: []string{"A1", "A2"},
	})
	require.NoError(t, err)
	require.NoError(t, bookings.MarkPaid(context.Background(), bookingID))

	return bookings, bookingID
}

func TestSendConfirmationEmailHandler(t *testing.T) {
	t.Run("sends the confirmation email", func(t *testing.T) {
		bookings, bookingID := paidBookingFixture(t)
		emailSender := &clients.EmailMock{}

		handler := events.SendConfirmationEmailHandler(bookings, emailSender)
		err := handler.Handle(context.Background(), &entities.BookingConfirmed_v1{
			Header:    entities.NewEventHeader(),
			BookingID: bookingID.String(),
		})
		require.NoError(t, err)

		require.Len(t, emailSender.Sent, 1)
		sent := emailSender.Sent[0]
		assert.Equal(t, "ada@example.com", sent.To)
		assert.Equal(t, "Your tickets for Arrival", sent.Subject)
		assert.Contains(t, sent.Body, "Ada Lovelace")
		assert.Contains(t, sent.Body, "A1, A2")
		assert.Contains(t, sent.Body, "$24.00")
		assert.Contains(t, sent.Body, bookingID.String())
	})

	t.Run("unknown booking is permanent", func(t *testing.T) {
		bookings, _ := paidBookingFixture(t)
		emailSender := &clients.EmailMock{}

		handler := events.SendConfirmationEmailHandler(bookings, emailSender)
		err := handler.Handle(context.Background(), &entities.BookingConfirmed_v1{
			Header:    entities.NewEventHeader(),
			BookingID: uuid.NewString(),
		})

		assert.ErrorIs(t, err, entities.ErrBookingNotFound)
		assert.True(t, entities.IsPermanent(err))
		assert.Zero(t, emailSender.SentCount())
	})

	t.Run("invalid booking id is permanent", func(t *testing.T) {
		bookings, _ := paidBookingFixture(t)
		emailSender := &clients.EmailMock{}

		handler := events.SendConfirmationEmailHandler(bookings, emailSender)
		err := handler.Handle(context.Background(), &entities.BookingConfirmed_v1{
			Header:    entities.NewEventHeader(),
			BookingID: "not-a-uuid",
		})

		assert.True(t, entities.IsPermanent(err))
	})

	t.Run("email gateway failure is transient", func(t *testing.T) {
		bookings, bookingID := paidBookingFixture(t)
		emailSender := &clients.EmailMock{Err: errors.New("gateway timeout")}

		handler := events.SendConfirmationEmailHandler(bookings, emailSender)
		err := handler.Handle(context.Background(), &entities.BookingConfirmed_v1{
			Header:    entities.NewEventHeader(),
			BookingID: bookingID.String(),
		})

		require.Error(t, err)
		assert.False(t, entities.IsPermanent(err))

		// The booking stays paid; only the email is retried.
		booking, err := bookings.Get(context.Background(), bookingID)
		require.NoError(t, err)
		assert.True(t, booking.IsPaid)
	})
}

func TestIdentityHandlers(t *testing.T) {
	usersRepo := repository.NewUsersRepoMock()
	identity := identitySyncStub{usersRepo: usersRepo}

	created := events.UserCreatedHandler(identity)
	err := created.Handle(context.Background(), &entities.UserCreated_v1{
		ID:             "user_1",
		EmailAddresses: []string{"ada@example.com"},
	})
	require.NoError(t, err)
	assert.Contains(t, usersRepo.Users, "user_1")

	deleted := events.UserDeletedHandler(identity)
	err = deleted.Handle(context.Background(), &entities.UserDeleted_v1{ID: "user_1"})
	require.NoError(t, err)
	assert.NotContains(t, usersRepo.Users, "user_1")
}

// identitySyncStub forwards straight to the repository, enough to prove
// the handlers unwrap payloads correctly.
type identitySyncStub struct {
	usersRepo *repository.UsersRepoMock
}

func (s identitySyncStub) UserCreated(ctx context.Context, event entities.UserCreated_v1) error {
	return s.usersRepo.Create(ctx, entities.User{ID: event.ID, Email: event.EmailAddresses[0]})
}

func (s identitySyncStub) UserUpdated(ctx context.Context, event entities.UserUpdated_v1) error {
	return s.usersRepo.Update(ctx, entities.User{ID: event.ID})
}

func (s identitySyncStub) UserDeleted(ctx context.Context, event entities.UserDeleted_v1) error {
	return s.usersRepo.Delete(ctx, event.ID)
}
