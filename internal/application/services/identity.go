package services

import (
	"context"
	"fmt"
	"strings"

	"quickshow/internal/entities"
	"quickshow/internal/log"
)

type UsersRepository interface {
	Create(ctx context.Context, user entities.User) error
	Update(ctx context.Context, user entities.User) error
	Delete(ctx context.Context, id string) error
}

// IdentitySyncService mirrors identity provider lifecycle events into
// user records. It never creates users on its own; the provider is the
// source of truth.
type IdentitySyncService struct {
	usersRepo UsersRepository
}

func NewIdentitySyncService(usersRepo UsersRepository) *IdentitySyncService {
	return &IdentitySyncService{usersRepo: usersRepo}
}

func (s *IdentitySyncService) UserCreated(ctx context.Context, event entities.UserCreated_v1) error {
	user, err := userFromIdentity(event.ID, event.FirstName, event.LastName, event.EmailAddresses, event.ImageURL)
	if err != nil {
		return err
	}

	if err := s.usersRepo.Create(ctx, user); err != nil {
		return err
	}

	log.FromContext(ctx).WithField("user_id", user.ID).Info("User created from identity event")
	return nil
}

// UserUpdated requires the user to exist already; a create that lost
// the race is redelivered by the provider, not upserted here.
func (s *IdentitySyncService) UserUpdated(ctx context.Context, event entities.UserUpdated_v1) error {
	user, err := userFromIdentity(event.ID, event.FirstName, event.LastName, event.EmailAddresses, event.ImageURL)
	if err != nil {
		return err
	}

	if err := s.usersRepo.Update(ctx, user); err != nil {
		return err
	}

	log.FromContext(ctx).WithField("user_id", user.ID).Info("User updated from identity event")
	return nil
}

func (s *IdentitySyncService) UserDeleted(ctx context.Context, event entities.UserDeleted_v1) error {
	if event.ID == "" {
		return fmt.Errorf("%w: missing user id", entities.ErrInvalidUserPayload)
	}

	if err := s.usersRepo.Delete(ctx, event.ID); err != nil {
		return err
	}

	log.FromContext(ctx).WithField("user_id", event.ID).Info("User deleted from identity event")
	return nil
}

func userFromIdentity(id, firstName, lastName string, emails []string, imageURL string) (entities.User, error) {
	if id == "" {
		return entities.User{}, fmt.Errorf("%w: missing user id", entities.ErrInvalidUserPayload)
	}
	if len(emails) == 0 || emails[0] == "" {
		return entities.User{}, fmt.Errorf("%w: no email address for user %s", entities.ErrInvalidUserPayload, id)
	}

	image := imageURL
	if image == "" {
		image = entities.DefaultAvatarURL
	}

	return entities.User{
		ID:    id,
		Name:  strings.TrimSpace(firstName + " " + lastName),
		Email: emails[0],
		Image: image,
	}, nil
}
