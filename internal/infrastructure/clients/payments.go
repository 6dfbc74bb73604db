package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PaymentsClient talks to the payment processor's REST API: creating
// checkout sessions for new bookings and resolving payment intents back
// to their sessions while handling webhooks.
type PaymentsClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewPaymentsClient(baseURL, apiKey string) *PaymentsClient {
	return &PaymentsClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

type CreateCheckoutSessionRequest struct {
	ClientReference string            `json:"client_reference_id"`
	AmountCents     int64             `json:"amount"`
	Currency        string            `json:"currency"`
	ProductName     string            `json:"product_name"`
	SuccessURL      string            `json:"success_url"`
	CancelURL       string            `json:"cancel_url"`
	Metadata        map[string]string `json:"metadata"`
}

func (c *PaymentsClient) CreateCheckoutSession(
	ctx context.Context,
	request CreateCheckoutSessionRequest,
) (CheckoutSession, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to marshal checkout session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return CheckoutSession{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to create checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return CheckoutSession{}, fmt.Errorf("unexpected status code from payments API: %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return CheckoutSession{}, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	return session, nil
}

// ListCheckoutSessions returns the sessions created for a payment
// intent. payment_intent.succeeded events only carry the intent id, so
// the booking id must be recovered from the session metadata.
func (c *PaymentsClient) ListCheckoutSessions(
	ctx context.Context,
	paymentIntentID string,
) ([]CheckoutSession, error) {
	endpoint := fmt.Sprintf("%s/v1/checkout/sessions?payment_intent=%s",
		c.baseURL, url.QueryEscape(paymentIntentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout sessions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from payments API: %d", resp.StatusCode)
	}

	var response struct {
		Data []CheckoutSession `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode checkout sessions: %w", err)
	}

	return response.Data, nil
}
