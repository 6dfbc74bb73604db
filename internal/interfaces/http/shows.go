package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"quickshow/internal/entities"
)

type CreateShowsRequest struct {
	MovieID   string      `json:"movie_id" validate:"required"`
	ShowTimes []time.Time `json:"show_times" validate:"required,min=1"`
	ShowPrice float64     `json:"show_price" validate:"required,gt=0"`
}

type CreateShowsResponse struct {
	ShowIDs []uuid.UUID `json:"show_ids"`
}

func (s *Server) CreateShowsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var request CreateShowsRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if err := c.Validate(&request); err != nil {
		return err
	}

	ids, err := s.showsService.CreateShows(ctx, request.MovieID, request.ShowTimes, request.ShowPrice)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreateShowsResponse{ShowIDs: ids})
}

func (s *Server) ListShowsHandler(c echo.Context) error {
	shows, err := s.showsService.ListUpcoming(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shows)
}

type ShowsForMovieResponse struct {
	Movie entities.Movie  `json:"movie"`
	Shows []entities.Show `json:"shows"`
}

func (s *Server) ShowsForMovieHandler(c echo.Context) error {
	movie, shows, err := s.showsService.ShowsForMovie(c.Request().Context(), c.Param("id"))
	if errors.Is(err, entities.ErrMovieNotFound) {
		return c.String(http.StatusNotFound, "movie not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ShowsForMovieResponse{Movie: movie, Shows: shows})
}

func (s *Server) OccupiedSeatsHandler(c echo.Context) error {
	showID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.String(http.StatusBadRequest, "show_id is not a valid UUID")
	}

	seats, err := s.bookingsService.OccupiedSeats(c.Request().Context(), showID)
	if errors.Is(err, entities.ErrShowNotFound) {
		return c.String(http.StatusNotFound, "show not found")
	}
	if err != nil {
		return err
	}

	if seats == nil {
		seats = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"occupied_seats": seats})
}
