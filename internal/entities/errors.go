package entities

import "errors"

var (
	// ErrSignatureInvalid means the webhook payload could not be
	// authenticated against the shared secret.
	ErrSignatureInvalid = errors.New("webhook signature verification failed")

	// ErrMalformedEvent means an authenticated webhook body could not
	// be decoded.
	ErrMalformedEvent = errors.New("malformed payment event")

	// ErrMissingBookingID means a payment event carried no booking id
	// in its metadata.
	ErrMissingBookingID = errors.New("missing booking id in event metadata")

	// ErrInvalidUserPayload means an identity event is missing the id or
	// any email address.
	ErrInvalidUserPayload = errors.New("identity event missing required fields")

	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrShowNotFound       = errors.New("show not found")
	ErrMovieNotFound      = errors.New("movie not found")
	ErrSeatsAlreadyBooked = errors.New("seats already booked for this show")
)

// IsPermanent reports whether an error can never succeed on redelivery.
// The event router drops such messages instead of retrying them.
func IsPermanent(err error) bool {
	for _, permanent := range []error{
		ErrMalformedEvent,
		ErrInvalidUserPayload,
		ErrUserAlreadyExists,
		ErrUserNotFound,
		ErrBookingNotFound,
		ErrMissingBookingID,
	} {
		if errors.Is(err, permanent) {
			return true
		}
	}
	return false
}
