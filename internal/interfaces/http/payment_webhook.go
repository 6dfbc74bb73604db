package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"quickshow/internal/entities"
)

// SignatureHeader carries the payment processor's signature over the
// raw request body.
const SignatureHeader = "Payment-Signature"

type webhookResponse struct {
	Received bool `json:"received"`
}

// PaymentWebhookHandler accepts signed events from the payment
// processor. The body is verified before any parsing; a rejected event
// mutates nothing and the processor owns redelivery of 4xx/5xx
// responses.
func (s *Server) PaymentWebhookHandler(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusBadRequest, "failed to read request body")
	}

	err = s.webhookService.HandleEvent(ctx, payload, c.Request().Header.Get(SignatureHeader))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, webhookResponse{Received: true})
	case errors.Is(err, entities.ErrSignatureInvalid),
		errors.Is(err, entities.ErrMalformedEvent),
		errors.Is(err, entities.ErrMissingBookingID):
		return c.String(http.StatusBadRequest, err.Error())
	default:
		return c.String(http.StatusInternalServerError, "internal server error")
	}
}
