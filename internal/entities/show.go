package entities

import (
	"time"

	"github.com/google/uuid"
)

// Show is a scheduled screening of a movie. Immutable after creation.
type Show struct {
	ID           uuid.UUID `json:"id" db:"id"`
	MovieID      string    `json:"movie_id" db:"movie_id"`
	ShowDateTime time.Time `json:"show_date_time" db:"show_date_time"`
	ShowPrice    float64   `json:"show_price" db:"show_price"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
