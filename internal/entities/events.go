package entities

// Event distinguishes events owned by this service from events delivered
// by external systems. The topic prefix depends on it.
type Event interface {
	IsInternal() bool
}

// BookingConfirmed_v1 is published after a booking is marked paid.
type BookingConfirmed_v1 struct {
	Header    EventHeader `json:"header"`
	BookingID string      `json:"booking_id"`
}

func (e BookingConfirmed_v1) IsInternal() bool {
	return true
}

// Identity lifecycle events mirror the external identity provider's
// user.created / user.updated / user.deleted notifications.

type UserCreated_v1 struct {
	Header         EventHeader `json:"header"`
	ID             string      `json:"id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	EmailAddresses []string    `json:"email_addresses"`
	ImageURL       string      `json:"image_url"`
}

func (e UserCreated_v1) IsInternal() bool {
	return false
}

type UserUpdated_v1 struct {
	Header         EventHeader `json:"header"`
	ID             string      `json:"id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	EmailAddresses []string    `json:"email_addresses"`
	ImageURL       string      `json:"image_url"`
}

func (e UserUpdated_v1) IsInternal() bool {
	return false
}

type UserDeleted_v1 struct {
	Header EventHeader `json:"header"`
	ID     string      `json:"id"`
}

func (e UserDeleted_v1) IsInternal() bool {
	return false
}
