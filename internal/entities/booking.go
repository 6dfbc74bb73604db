package entities

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a user's reservation of seats on a show. IsPaid flips to
// true exactly once, when the payment processor confirms the checkout;
// re-applying the confirmation is harmless.
type Booking struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	ShowID      uuid.UUID  `json:"show_id" db:"show_id"`
	Amount      float64    `json:"amount" db:"amount"`
	BookedSeats StringList `json:"booked_seats" db:"booked_seats"`
	IsPaid      bool       `json:"is_paid" db:"is_paid"`
	PaymentLink string     `json:"payment_link" db:"payment_link"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// BookingConfirmation is the full graph needed to render the
// confirmation email: booking -> show -> movie and booking -> user.
type BookingConfirmation struct {
	Booking Booking `json:"booking"`
	Show    Show    `json:"show"`
	Movie   Movie   `json:"movie"`
	User    User    `json:"user"`
}

// UserBooking is a booking with its show and movie attached, as listed
// on a user's "my bookings" page.
type UserBooking struct {
	Booking Booking `json:"booking"`
	Show    Show    `json:"show"`
	Movie   Movie   `json:"movie"`
}
