package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"quickshow/internal/entities"
)

// MovieCatalogClient reads from the external movie database (the TMDB
// compatible API): now-playing listings and full movie records with
// credits.
type MovieCatalogClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewMovieCatalogClient(baseURL, apiKey string) *MovieCatalogClient {
	return &MovieCatalogClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type catalogMovie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	Tagline          string  `json:"tagline"`
	VoteAverage      float64 `json:"vote_average"`
	Runtime          int     `json:"runtime"`
	Genres           []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []struct {
			Name        string `json:"name"`
			Character   string `json:"character"`
			ProfilePath string `json:"profile_path"`
		} `json:"cast"`
	} `json:"credits"`
}

func (c *MovieCatalogClient) NowPlaying(ctx context.Context) ([]entities.Movie, error) {
	var response struct {
		Results []catalogMovie `json:"results"`
	}

	err := c.get(ctx, "/movie/now_playing", &response)
	if err != nil {
		return nil, err
	}

	movies := make([]entities.Movie, 0, len(response.Results))
	for _, m := range response.Results {
		movies = append(movies, toMovie(m))
	}

	return movies, nil
}

func (c *MovieCatalogClient) GetMovie(ctx context.Context, id string) (entities.Movie, error) {
	var m catalogMovie

	err := c.get(ctx, "/movie/"+id+"?append_to_response=credits", &m)
	if err != nil {
		return entities.Movie{}, err
	}

	return toMovie(m), nil
}

func (c *MovieCatalogClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query movie catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entities.ErrMovieNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from movie catalog: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode movie catalog response: %w", err)
	}

	return nil
}

func toMovie(m catalogMovie) entities.Movie {
	movie := entities.Movie{
		ID:               strconv.FormatInt(m.ID, 10),
		Title:            m.Title,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		OriginalLanguage: m.OriginalLanguage,
		Tagline:          m.Tagline,
		VoteAverage:      m.VoteAverage,
		RuntimeMinutes:   m.Runtime,
		Genres:           entities.StringList{},
		Casts:            entities.CastList{},
	}

	if released, err := time.Parse("2006-01-02", m.ReleaseDate); err == nil {
		movie.ReleaseDate = released
	}
	for _, genre := range m.Genres {
		movie.Genres = append(movie.Genres, genre.Name)
	}
	for _, cast := range m.Credits.Cast {
		movie.Casts = append(movie.Casts, entities.CastMember{
			Name:        cast.Name,
			Character:   cast.Character,
			ProfilePath: cast.ProfilePath,
		})
	}

	return movie
}
