package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"quickshow/internal/entities"
)

type ShowsRepository interface {
	Create(ctx context.Context, show entities.Show) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (entities.Show, error)
	ListUpcoming(ctx context.Context) ([]entities.Show, error)
	ListForMovie(ctx context.Context, movieID string) ([]entities.Show, error)
}

type ShowsService struct {
	showsRepo  ShowsRepository
	moviesRepo MoviesRepository
	catalog    MovieCatalogService
}

func NewShowsService(
	showsRepo ShowsRepository,
	moviesRepo MoviesRepository,
	catalog MovieCatalogService,
) *ShowsService {
	return &ShowsService{
		showsRepo:  showsRepo,
		moviesRepo: moviesRepo,
		catalog:    catalog,
	}
}

// CreateShows schedules screenings of a movie. An unknown movie is
// fetched from the external catalog and persisted first.
func (s *ShowsService) CreateShows(
	ctx context.Context,
	movieID string,
	showTimes []time.Time,
	price float64,
) ([]uuid.UUID, error) {
	_, err := s.moviesRepo.Get(ctx, movieID)
	if errors.Is(err, entities.ErrMovieNotFound) {
		movie, catalogErr := s.catalog.GetMovie(ctx, movieID)
		if catalogErr != nil {
			return nil, fmt.Errorf("failed to fetch movie %s from catalog: %w", movieID, catalogErr)
		}
		if err := s.moviesRepo.Upsert(ctx, movie); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(showTimes))
	for _, showTime := range showTimes {
		id, err := s.showsRepo.Create(ctx, entities.Show{
			MovieID:      movieID,
			ShowDateTime: showTime,
			ShowPrice:    price,
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *ShowsService) ListUpcoming(ctx context.Context) ([]entities.Show, error) {
	return s.showsRepo.ListUpcoming(ctx)
}

// ShowsForMovie returns the movie together with its upcoming shows.
func (s *ShowsService) ShowsForMovie(ctx context.Context, movieID string) (entities.Movie, []entities.Show, error) {
	movie, err := s.moviesRepo.Get(ctx, movieID)
	if err != nil {
		return entities.Movie{}, nil, err
	}

	shows, err := s.showsRepo.ListForMovie(ctx, movieID)
	if err != nil {
		return entities.Movie{}, nil, err
	}

	return movie, shows, nil
}
