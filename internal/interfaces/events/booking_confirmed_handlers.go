package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"

	"quickshow/internal/entities"
	"quickshow/internal/infrastructure/clients"
	"quickshow/internal/log"
)

// SendConfirmationEmailHandler mails the user once their booking is
// paid. A missing booking is permanent and dropped; an email gateway
// failure is retried, and never rolls back the paid flag.
func SendConfirmationEmailHandler(
	bookings BookingConfirmationReader,
	emailSender EmailSender,
) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"send_confirmation_email_handler",
		func(ctx context.Context, payload *entities.BookingConfirmed_v1) error {
			id, err := uuid.Parse(payload.BookingID)
			if err != nil {
				return fmt.Errorf("%w: invalid booking id %q", entities.ErrBookingNotFound, payload.BookingID)
			}

			confirmation, err := bookings.GetConfirmation(ctx, id)
			if err != nil {
				return err
			}

			subject, body := renderConfirmationEmail(confirmation)
			err = emailSender.Send(ctx, clients.SendEmailRequest{
				To:      confirmation.User.Email,
				Subject: subject,
				Body:    body,
			})
			if err != nil {
				return fmt.Errorf("failed to send confirmation email for booking %s: %w", payload.BookingID, err)
			}

			log.FromContext(ctx).
				WithField("booking_id", payload.BookingID).
				WithField("to", confirmation.User.Email).
				Info("Confirmation email sent")

			return nil
		},
	)
}

func renderConfirmationEmail(c entities.BookingConfirmation) (subject, body string) {
	subject = fmt.Sprintf("Your tickets for %s", c.Movie.Title)

	body = fmt.Sprintf(`Hi %s,

Your booking is confirmed!

Movie: %s
Showtime: %s
Seats: %s
Amount paid: $%.2f
Booking reference: %s

Enjoy the show!`,
		c.User.Name,
		c.Movie.Title,
		c.Show.ShowDateTime.Format("Monday, 2 January 2006 at 15:04"),
		strings.Join(c.Booking.BookedSeats, ", "),
		c.Booking.Amount,
		c.Booking.ID,
	)

	return subject, body
}
