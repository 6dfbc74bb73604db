package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EmailClient delivers through a transactional email gateway's REST
// API. Delivery is best effort; the caller decides whether a failure is
// retried.
type EmailClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sender     string
}

func NewEmailClient(baseURL, apiKey, sender string) *EmailClient {
	return &EmailClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		sender:     sender,
	}
}

type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (c *EmailClient) Send(ctx context.Context, request SendEmailRequest) error {
	payload := struct {
		From string `json:"from"`
		SendEmailRequest
	}{
		From:             c.sender,
		SendEmailRequest: request,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code from email gateway: %d", resp.StatusCode)
	}

	return nil
}
