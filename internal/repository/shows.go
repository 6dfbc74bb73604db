package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"quickshow/internal/db"
	"quickshow/internal/entities"
)

type ShowsRepo struct {
	db *db.Handle
}

func NewShowsRepo(handle *db.Handle) *ShowsRepo {
	return &ShowsRepo{db: handle}
}

func (r *ShowsRepo) Create(ctx context.Context, show entities.Show) (uuid.UUID, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	query := `
		INSERT INTO shows (
			movie_id, show_date_time, show_price
		) VALUES (
			$1, $2, $3
		) RETURNING id`

	err = conn.QueryRowContext(ctx, query,
		show.MovieID,
		show.ShowDateTime,
		show.ShowPrice,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create show: %w", err)
	}

	return id, nil
}

func (r *ShowsRepo) Get(ctx context.Context, id uuid.UUID) (entities.Show, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return entities.Show{}, err
	}

	var show entities.Show
	err = conn.GetContext(ctx, &show, `SELECT * FROM shows WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Show{}, entities.ErrShowNotFound
	}
	if err != nil {
		return entities.Show{}, fmt.Errorf("failed to get show: %w", err)
	}

	return show, nil
}

// ListUpcoming returns the next upcoming show per movie, for the
// landing page's "now showing" strip.
func (r *ShowsRepo) ListUpcoming(ctx context.Context) ([]entities.Show, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var shows []entities.Show
	query := `
		SELECT DISTINCT ON (movie_id) *
		FROM shows
		WHERE show_date_time > now()
		ORDER BY movie_id, show_date_time`

	err = conn.SelectContext(ctx, &shows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming shows: %w", err)
	}

	return shows, nil
}

func (r *ShowsRepo) ListForMovie(ctx context.Context, movieID string) ([]entities.Show, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var shows []entities.Show
	query := `
		SELECT * FROM shows
		WHERE movie_id = $1 AND show_date_time > now()
		ORDER BY show_date_time`

	err = conn.SelectContext(ctx, &shows, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows for movie: %w", err)
	}

	return shows, nil
}
