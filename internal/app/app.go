package app

import (
	"context"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"quickshow/internal/application/services"
	"quickshow/internal/config"
	"quickshow/internal/db"
	"quickshow/internal/infrastructure/event_publisher"
	"quickshow/internal/interfaces/events"
	"quickshow/internal/interfaces/http"
	"quickshow/internal/repository"
	"quickshow/internal/signature"
)

type App struct {
	logger zerolog.Logger
	router *message.Router
	srv    *http.Server
	db     *db.Handle
}

func NewApp(
	cfg *config.Config,
	watermillLogger watermill.LoggerAdapter,
	payments services.PaymentsService,
	emailSender events.EmailSender,
	catalog services.MovieCatalogService,
	redisClient *redis.Client,
	dbHandle *db.Handle,
) (*App, error) {
	moviesRepo := repository.NewMoviesRepo(dbHandle)
	showsRepo := repository.NewShowsRepo(dbHandle)
	bookingsRepo := repository.NewBookingsRepo(dbHandle)
	usersRepo := repository.NewUsersRepo(dbHandle)

	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, err
	}

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: redisClient,
	}, watermillLogger)
	if err != nil {
		return nil, err
	}

	eventBus, err := events.NewEventBus(
		event_publisher.CorrelationPublisherDecorator{Publisher: publisher},
		watermillLogger,
	)
	if err != nil {
		return nil, err
	}

	verifier := signature.NewVerifier(cfg.Payments.WebhookSecret, cfg.Payments.Tolerance)

	webhookService := services.NewPaymentWebhookService(verifier, payments, bookingsRepo, eventBus)
	moviesService := services.NewMoviesService(catalog, moviesRepo)
	showsService := services.NewShowsService(showsRepo, moviesRepo, catalog)
	bookingsService := services.NewBookingsService(bookingsRepo, showsRepo, moviesRepo, payments,
		services.CheckoutURLs{
			SuccessURL: cfg.Payments.SuccessURL,
			CancelURL:  cfg.Payments.CancelURL,
		})
	identityService := services.NewIdentitySyncService(usersRepo)

	srv := http.NewServer(
		echo.New(),
		":"+cfg.App.Port,
		webhookService,
		moviesService,
		showsService,
		bookingsService,
		router.IsRunning,
	)

	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(events.CorrelationIDMiddleware)
	router.AddMiddleware(events.LoggingMiddleware)

	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          watermillLogger,
	}.Middleware)

	// Permanent failures must not reach the retry middleware.
	router.AddMiddleware(events.SkipPermanentErrorsMiddleware)

	marshaler := cqrs.JSONMarshaler{
		GenerateName: cqrs.StructName,
	}
	processor, err := events.NewEventProcessor(router, redisClient, marshaler, watermillLogger)
	if err != nil {
		return nil, err
	}

	err = processor.AddHandlers(
		events.SendConfirmationEmailHandler(bookingsRepo, emailSender),

		events.UserCreatedHandler(identityService),
		events.UserUpdatedHandler(identityService),
		events.UserDeletedHandler(identityService),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		logger: zerolog.New(os.Stdout),
		router: router,
		srv:    srv,
		db:     dbHandle,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := repository.InitializeDBSchema(ctx, a.db); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Msg("starting event router")
		return a.router.Run(ctx)
	})

	g.Go(func() error {
		<-a.router.Running()
		a.logger.Info().Msg("event router is running")

		a.logger.Info().Msg("starting http server")
		return a.srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()

		err := a.srv.Stop(context.Background())
		if err != nil {
			a.logger.Err(err).Msg("error stopping http server")
		}

		return err
	})

	return g.Wait()
}
