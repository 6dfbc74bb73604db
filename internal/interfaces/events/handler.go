package events

import (
	"context"

	"github.com/google/uuid"

	"quickshow/internal/entities"
	"quickshow/internal/infrastructure/clients"
)

// Capabilities the event handlers depend on. Declared here so tests can
// swap the live clients and repositories.

type EmailSender interface {
	Send(ctx context.Context, request clients.SendEmailRequest) error
}

type BookingConfirmationReader interface {
	GetConfirmation(ctx context.Context, id uuid.UUID) (entities.BookingConfirmation, error)
}

type IdentitySync interface {
	UserCreated(ctx context.Context, event entities.UserCreated_v1) error
	UserUpdated(ctx context.Context, event entities.UserUpdated_v1) error
	UserDeleted(ctx context.Context, event entities.UserDeleted_v1) error
}
