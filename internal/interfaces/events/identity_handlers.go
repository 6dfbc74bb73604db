package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"quickshow/internal/entities"
)

// Identity lifecycle handlers, one per provider event type. Validation
// failures and conflicts are permanent; the provider owns redelivery of
// transient failures.

func UserCreatedHandler(identity IdentitySync) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"user_created_handler",
		func(ctx context.Context, payload *entities.UserCreated_v1) error {
			return identity.UserCreated(ctx, *payload)
		},
	)
}

func UserUpdatedHandler(identity IdentitySync) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"user_updated_handler",
		func(ctx context.Context, payload *entities.UserUpdated_v1) error {
			return identity.UserUpdated(ctx, *payload)
		},
	)
}

func UserDeletedHandler(identity IdentitySync) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"user_deleted_handler",
		func(ctx context.Context, payload *entities.UserDeleted_v1) error {
			return identity.UserDeleted(ctx, *payload)
		},
	)
}
