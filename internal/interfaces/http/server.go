package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"quickshow/internal/application/services"
	"quickshow/internal/log"
)

type Server struct {
	e    *echo.Echo
	addr string

	webhookService  *services.PaymentWebhookService
	moviesService   *services.MoviesService
	showsService    *services.ShowsService
	bookingsService *services.BookingsService
}

func NewServer(
	e *echo.Echo,
	addr string,
	webhookService *services.PaymentWebhookService,
	moviesService *services.MoviesService,
	showsService *services.ShowsService,
	bookingsService *services.BookingsService,
	routerIsRunning func() bool,
) *Server {
	srv := &Server{
		e:               e,
		addr:            addr,
		webhookService:  webhookService,
		moviesService:   moviesService,
		showsService:    showsService,
		bookingsService: bookingsService,
	}

	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.Use(middleware.Recover())
	e.Use(correlationMiddleware)
	e.Use(loggingMiddleware)

	// The webhook handler reads the raw body itself; no body-parsing
	// middleware may run ahead of it.
	e.POST("/payments/webhook", srv.PaymentWebhookHandler)

	e.GET("/movies", srv.ListMoviesHandler)
	e.GET("/movies/now-playing", srv.NowPlayingHandler)

	e.POST("/shows", srv.CreateShowsHandler)
	e.GET("/shows", srv.ListShowsHandler)
	// Echo requires one param name per segment position, so both
	// routes use :id even though one is a movie id and one a show id.
	e.GET("/shows/:id", srv.ShowsForMovieHandler)
	e.GET("/shows/:id/seats", srv.OccupiedSeatsHandler)

	e.POST("/bookings", srv.CreateBookingHandler)
	e.GET("/users/:user_id/bookings", srv.UserBookingsHandler)

	e.GET("/health", func(c echo.Context) error {
		if !routerIsRunning() {
			return c.String(http.StatusServiceUnavailable, "event router is not running")
		}
		return c.String(http.StatusOK, "ok")
	})

	return srv
}

func (s *Server) Start() error {
	err := s.e.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log.FromContext(c.Request().Context()).
			WithField("method", c.Request().Method).
			WithField("path", c.Request().URL.Path).
			Info("Handling a request")

		err := next(c)

		if err != nil {
			log.FromContext(c.Request().Context()).
				WithField("path", c.Request().URL.Path).
				WithField("error", err).
				Error("Request handling error")
		}

		return err
	}
}
