package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quickshow/internal/db"
	"quickshow/internal/entities"
)

type MoviesRepo struct {
	db *db.Handle
}

func NewMoviesRepo(handle *db.Handle) *MoviesRepo {
	return &MoviesRepo{db: handle}
}

// Upsert stores a catalog movie, refreshing its fields if it is already
// known. Catalog data is owned by the external movie database.
func (r *MoviesRepo) Upsert(ctx context.Context, movie entities.Movie) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO movies (
			id, title, overview, poster_path, backdrop_path, release_date,
			original_language, tagline, genres, casts, vote_average, runtime_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			overview = EXCLUDED.overview,
			poster_path = EXCLUDED.poster_path,
			backdrop_path = EXCLUDED.backdrop_path,
			release_date = EXCLUDED.release_date,
			original_language = EXCLUDED.original_language,
			tagline = EXCLUDED.tagline,
			genres = EXCLUDED.genres,
			casts = EXCLUDED.casts,
			vote_average = EXCLUDED.vote_average,
			runtime_minutes = EXCLUDED.runtime_minutes,
			updated_at = now()`

	_, err = conn.ExecContext(ctx, query,
		movie.ID,
		movie.Title,
		movie.Overview,
		movie.PosterPath,
		movie.BackdropPath,
		movie.ReleaseDate,
		movie.OriginalLanguage,
		movie.Tagline,
		movie.Genres,
		movie.Casts,
		movie.VoteAverage,
		movie.RuntimeMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert movie: %w", err)
	}

	return nil
}

func (r *MoviesRepo) Get(ctx context.Context, id string) (entities.Movie, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return entities.Movie{}, err
	}

	var movie entities.Movie
	err = conn.GetContext(ctx, &movie, `SELECT * FROM movies WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Movie{}, entities.ErrMovieNotFound
	}
	if err != nil {
		return entities.Movie{}, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

func (r *MoviesRepo) List(ctx context.Context) ([]entities.Movie, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var movies []entities.Movie
	err = conn.SelectContext(ctx, &movies, `SELECT * FROM movies ORDER BY release_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	return movies, nil
}
