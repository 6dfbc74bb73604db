package services

import (
	"context"

	"quickshow/internal/entities"
)

type MovieCatalogService interface {
	NowPlaying(ctx context.Context) ([]entities.Movie, error)
	GetMovie(ctx context.Context, id string) (entities.Movie, error)
}

type MoviesRepository interface {
	Upsert(ctx context.Context, movie entities.Movie) error
	Get(ctx context.Context, id string) (entities.Movie, error)
	List(ctx context.Context) ([]entities.Movie, error)
}

type MoviesService struct {
	catalog    MovieCatalogService
	moviesRepo MoviesRepository
}

func NewMoviesService(catalog MovieCatalogService, moviesRepo MoviesRepository) *MoviesService {
	return &MoviesService{
		catalog:    catalog,
		moviesRepo: moviesRepo,
	}
}

// NowPlaying proxies the external catalog's now-playing list.
func (s *MoviesService) NowPlaying(ctx context.Context) ([]entities.Movie, error) {
	return s.catalog.NowPlaying(ctx)
}

// List returns the movies that have been scheduled locally.
func (s *MoviesService) List(ctx context.Context) ([]entities.Movie, error) {
	return s.moviesRepo.List(ctx)
}
