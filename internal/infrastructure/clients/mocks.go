package clients

import (
	"context"
	"sync"

	"quickshow/internal/entities"
)

// Hand-rolled mocks used across service and handler tests.

type PaymentsMock struct {
	mu sync.Mutex

	CreatedSessions []CreateCheckoutSessionRequest
	Sessions        []CheckoutSession
	Err             error
}

func (m *PaymentsMock) CreateCheckoutSession(
	_ context.Context,
	request CreateCheckoutSessionRequest,
) (CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return CheckoutSession{}, m.Err
	}

	m.CreatedSessions = append(m.CreatedSessions, request)
	return CheckoutSession{
		ID:       "cs_mock",
		URL:      "https://payments.example.com/c/cs_mock",
		Metadata: request.Metadata,
	}, nil
}

func (m *PaymentsMock) ListCheckoutSessions(_ context.Context, _ string) ([]CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Sessions, nil
}

type EmailMock struct {
	mu sync.Mutex

	Sent []SendEmailRequest
	Err  error
}

func (m *EmailMock) Send(_ context.Context, request SendEmailRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.Sent = append(m.Sent, request)
	return nil
}

func (m *EmailMock) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.Sent)
}

type MovieCatalogMock struct {
	mu sync.Mutex

	Movies []entities.Movie
	Err    error
}

func (m *MovieCatalogMock) NowPlaying(_ context.Context) ([]entities.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Movies, nil
}

func (m *MovieCatalogMock) GetMovie(_ context.Context, id string) (entities.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return entities.Movie{}, m.Err
	}
	for _, movie := range m.Movies {
		if movie.ID == id {
			return movie, nil
		}
	}
	return entities.Movie{}, entities.ErrMovieNotFound
}
