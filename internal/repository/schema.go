package repository

import (
	"context"
	"fmt"

	"quickshow/internal/db"
)

func InitializeDBSchema(ctx context.Context, handle *db.Handle) error {
	conn, err := handle.Acquire(ctx)
	if err != nil {
		return err
	}

	statements := []string{
		`
CREATE TABLE IF NOT EXISTS movies (
	id VARCHAR(64) PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	overview TEXT NOT NULL DEFAULT '',
	poster_path VARCHAR(512) NOT NULL DEFAULT '',
	backdrop_path VARCHAR(512) NOT NULL DEFAULT '',
	release_date DATE NOT NULL,
	original_language VARCHAR(8) NOT NULL DEFAULT 'en',
	tagline TEXT NOT NULL DEFAULT '',
	genres JSONB NOT NULL DEFAULT '[]',
	casts JSONB NOT NULL DEFAULT '[]',
	vote_average NUMERIC(4, 2) NOT NULL DEFAULT 0,
	runtime_minutes INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`
CREATE TABLE IF NOT EXISTS shows (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	movie_id VARCHAR(64) NOT NULL REFERENCES movies (id),
	show_date_time TIMESTAMPTZ NOT NULL,
	show_price NUMERIC(10, 2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	image VARCHAR(512) NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`
CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id VARCHAR(64) NOT NULL,
	show_id UUID NOT NULL REFERENCES shows (id),
	amount NUMERIC(10, 2) NOT NULL,
	booked_seats JSONB NOT NULL DEFAULT '[]',
	is_paid BOOLEAN NOT NULL DEFAULT FALSE,
	payment_link TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	}

	for _, stmt := range statements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return nil
}
