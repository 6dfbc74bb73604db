package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) ListMoviesHandler(c echo.Context) error {
	movies, err := s.moviesService.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, movies)
}

// NowPlayingHandler proxies the external movie catalog's now-playing
// list for the landing page.
func (s *Server) NowPlayingHandler(c echo.Context) error {
	movies, err := s.moviesService.NowPlaying(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "movie catalog unavailable")
	}

	return c.JSON(http.StatusOK, movies)
}
