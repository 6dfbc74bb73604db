package entities

// Payment event types delivered by the payment processor's webhook.
const (
	PaymentEventCheckoutCompleted = "checkout.session.completed"
	PaymentEventIntentSucceeded   = "payment_intent.succeeded"
)

// MetadataBookingID is the metadata key carrying our booking id on
// checkout sessions.
const MetadataBookingID = "bookingId"

// PaymentEvent is the webhook envelope. Data.Object is a checkout
// session for checkout.session.completed and a payment intent for
// payment_intent.succeeded.
type PaymentEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object PaymentObject `json:"object"`
	} `json:"data"`
}

type PaymentObject struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}
