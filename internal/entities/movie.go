package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Movie is a catalog entry keyed by the external movie database's id.
type Movie struct {
	ID               string     `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Overview         string     `json:"overview" db:"overview"`
	PosterPath       string     `json:"poster_path" db:"poster_path"`
	BackdropPath     string     `json:"backdrop_path" db:"backdrop_path"`
	ReleaseDate      time.Time  `json:"release_date" db:"release_date"`
	OriginalLanguage string     `json:"original_language" db:"original_language"`
	Tagline          string     `json:"tagline" db:"tagline"`
	Genres           StringList `json:"genres" db:"genres"`
	Casts            CastList   `json:"casts" db:"casts"`
	VoteAverage      float64    `json:"vote_average" db:"vote_average"`
	RuntimeMinutes   int        `json:"runtime" db:"runtime_minutes"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// CastList is stored as a jsonb column.
type CastList []CastMember

func (c CastList) Value() (driver.Value, error) {
	if c == nil {
		c = CastList{}
	}
	return json.Marshal(c)
}

func (c *CastList) Scan(src any) error {
	return scanJSON(src, c)
}

// StringList is stored as a jsonb column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(src any) error {
	return scanJSON(src, s)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
}
