package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quickshow/internal/db"
	"quickshow/internal/entities"
)

type UsersRepo struct {
	db *db.Handle
}

func NewUsersRepo(handle *db.Handle) *UsersRepo {
	return &UsersRepo{db: handle}
}

func (r *UsersRepo) Create(ctx context.Context, user entities.User) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (
			id, name, email, image
		) VALUES (
			$1, $2, $3, $4
		)`

	_, err = conn.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Image)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", entities.ErrUserAlreadyExists, user.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UsersRepo) Update(ctx context.Context, user entities.User) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET name = $2, email = $3, image = $4, updated_at = now()
		WHERE id = $1`

	res, err := conn.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.Image)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check user update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", entities.ErrUserNotFound, user.ID)
	}

	return nil
}

// Delete removes the user if present. Deleting an unknown id succeeds,
// so replayed deletion events stay harmless.
func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	_, err = conn.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (r *UsersRepo) Get(ctx context.Context, id string) (entities.User, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return entities.User{}, err
	}

	var user entities.User
	err = conn.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
