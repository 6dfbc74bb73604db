package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickshow/internal/application/services"
	"quickshow/internal/entities"
	"quickshow/internal/repository"
)

func TestIdentitySyncService_UserCreated(t *testing.T) {
	usersRepo := repository.NewUsersRepoMock()
	service := services.NewIdentitySyncService(usersRepo)

	t.Run("creates user with composed name", func(t *testing.T) {
		err := service.UserCreated(context.Background(), entities.UserCreated_v1{
			ID:             "user_1",
			FirstName:      "Ada",
			LastName:       "Lovelace",
			EmailAddresses: []string{"ada@example.com"},
			ImageURL:       "https://img.example.com/ada.png",
		})
		require.NoError(t, err)

		user, err := usersRepo.Get(context.Background(), "user_1")
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "https://img.example.com/ada.png", user.Image)
	})

	t.Run("missing image falls back to default avatar", func(t *testing.T) {
		err := service.UserCreated(context.Background(), entities.UserCreated_v1{
			ID:             "user_2",
			FirstName:      "Grace",
			EmailAddresses: []string{"grace@example.com"},
		})
		require.NoError(t, err)

		user, err := usersRepo.Get(context.Background(), "user_2")
		require.NoError(t, err)
		assert.Equal(t, "Grace", user.Name)
		assert.Equal(t, entities.DefaultAvatarURL, user.Image)
	})

	t.Run("missing email is rejected", func(t *testing.T) {
		err := service.UserCreated(context.Background(), entities.UserCreated_v1{
			ID:        "user_3",
			FirstName: "No",
			LastName:  "Email",
		})
		assert.ErrorIs(t, err, entities.ErrInvalidUserPayload)
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		err := service.UserCreated(context.Background(), entities.UserCreated_v1{
			EmailAddresses: []string{"nobody@example.com"},
		})
		assert.ErrorIs(t, err, entities.ErrInvalidUserPayload)
	})

	t.Run("duplicate create conflicts", func(t *testing.T) {
		err := service.UserCreated(context.Background(), entities.UserCreated_v1{
			ID:             "user_1",
			FirstName:      "Ada",
			LastName:       "Lovelace",
			EmailAddresses: []string{"ada@example.com"},
		})
		assert.ErrorIs(t, err, entities.ErrUserAlreadyExists)
	})
}

func TestIdentitySyncService_UserUpdated(t *testing.T) {
	usersRepo := repository.NewUsersRepoMock()
	usersRepo.Users["user_1"] = entities.User{
		ID:    "user_1",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}
	service := services.NewIdentitySyncService(usersRepo)

	t.Run("updates existing user", func(t *testing.T) {
		err := service.UserUpdated(context.Background(), entities.UserUpdated_v1{
			ID:             "user_1",
			FirstName:      "Ada",
			LastName:       "King",
			EmailAddresses: []string{"ada.king@example.com"},
		})
		require.NoError(t, err)

		user, err := usersRepo.Get(context.Background(), "user_1")
		require.NoError(t, err)
		assert.Equal(t, "Ada King", user.Name)
		assert.Equal(t, "ada.king@example.com", user.Email)
	})

	t.Run("unknown user is not upserted", func(t *testing.T) {
		err := service.UserUpdated(context.Background(), entities.UserUpdated_v1{
			ID:             "user_unknown",
			FirstName:      "Ghost",
			EmailAddresses: []string{"ghost@example.com"},
		})
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestIdentitySyncService_UserDeleted(t *testing.T) {
	usersRepo := repository.NewUsersRepoMock()
	usersRepo.Users["user_1"] = entities.User{ID: "user_1"}
	service := services.NewIdentitySyncService(usersRepo)

	t.Run("deletes existing user", func(t *testing.T) {
		err := service.UserDeleted(context.Background(), entities.UserDeleted_v1{ID: "user_1"})
		require.NoError(t, err)

		_, err = usersRepo.Get(context.Background(), "user_1")
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("deleting an absent user succeeds", func(t *testing.T) {
		err := service.UserDeleted(context.Background(), entities.UserDeleted_v1{ID: "user_gone"})
		assert.NoError(t, err)
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		err := service.UserDeleted(context.Background(), entities.UserDeleted_v1{})
		assert.ErrorIs(t, err, entities.ErrInvalidUserPayload)
	})
}
