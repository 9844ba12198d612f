package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MikhailRaia/shortener-form/internal/config"
	"github.com/MikhailRaia/shortener-form/internal/generator"
	"github.com/MikhailRaia/shortener-form/internal/handler"
	"github.com/MikhailRaia/shortener-form/internal/middleware"
	"github.com/MikhailRaia/shortener-form/internal/page"
	"github.com/MikhailRaia/shortener-form/internal/proto"
	"github.com/MikhailRaia/shortener-form/internal/session"
	"github.com/MikhailRaia/shortener-form/internal/shortener"
	"github.com/MikhailRaia/shortener-form/internal/shortener/grpcclient"
	"github.com/MikhailRaia/shortener-form/internal/shortener/httpclient"
	"github.com/MikhailRaia/shortener-form/internal/shortener/mock"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
)

const (
	shutdownTimeout      = 10 * time.Second
	backendClientTimeout = 30 * time.Second
)

type App struct {
	config       *config.Config
	closeService func() error
	pages        *session.Store[*page.Page]
	janitor      *session.Janitor
	handler      http.Handler
	grpcServer   *grpc.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	service, closeService, err := newService(cfg)
	if err != nil {
		return nil, err
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret, err = generator.NewSecret(generator.SessionSecretSize)
		if err != nil {
			if closeErr := closeService(); closeErr != nil {
				log.Error().Err(closeErr).Msg("Failed to close shortening backend")
			}
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		log.Warn().Msg("No session secret configured, sessions will not survive a restart")
	}

	pages := session.NewStore(func() *page.Page {
		return page.New(service)
	})

	janitorConfig := session.DefaultJanitorConfig()
	janitorConfig.IdleTTL = cfg.SessionIdleTTL
	if janitorConfig.IdleTTL > 0 && janitorConfig.IdleTTL < janitorConfig.Interval {
		janitorConfig.Interval = janitorConfig.IdleTTL
	}

	sessions := middleware.NewSessionMiddleware(session.NewTokens(secret))
	httpHandler := handler.NewHandler(pages, sessions)

	a := &App{
		config:       cfg,
		closeService: closeService,
		pages:        pages,
		janitor:      session.NewJanitor(pages, janitorConfig),
		handler:      httpHandler.RegisterRoutes(),
	}

	if cfg.GRPCServerAddress != "" {
		a.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(middleware.UnaryServerLogger))
		proto.RegisterShorteningServiceServer(a.grpcServer, handler.NewShorteningGRPCServer(service))
	}

	return a, nil
}

// newService builds the configured shortening backend and its cleanup func.
func newService(cfg *config.Config) (shortener.Service, func() error, error) {
	noop := func() error { return nil }

	switch cfg.ShortenerBackend {
	case config.BackendMock:
		log.Info().Str("baseURL", cfg.MockBaseURL).Dur("delay", cfg.MockDelay).Msg("Using mock shortening backend")
		return mock.NewService(cfg.MockBaseURL, cfg.MockDelay), noop, nil
	case config.BackendHTTP:
		client, err := httpclient.NewClient(cfg.ShortenerAddress, &http.Client{Timeout: backendClientTimeout})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("address", cfg.ShortenerAddress).Msg("Using HTTP shortening backend")
		return client, noop, nil
	case config.BackendGRPC:
		client, err := grpcclient.Dial(cfg.ShortenerAddress)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("address", cfg.ShortenerAddress).Msg("Using gRPC shortening backend")
		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.ShortenerBackend)
	}
}

// Run serves until ctx is cancelled or a server fails, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	if a.config.SessionIdleTTL > 0 {
		a.janitor.Start()
	}

	server := &http.Server{
		Addr:    a.config.ServerAddress,
		Handler: a.handler,
	}

	errCh := make(chan error, 2)

	go func() {
		log.Info().Str("address", a.config.ServerAddress).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.grpcServer != nil {
		lis, err := net.Listen("tcp", a.config.GRPCServerAddress)
		if err != nil {
			a.shutdown(server)
			return fmt.Errorf("grpc listen: %w", err)
		}

		go func() {
			log.Info().Str("address", a.config.GRPCServerAddress).Msg("Starting gRPC server")
			if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case runErr = <-errCh:
		log.Error().Err(runErr).Msg("Server failed")
	}

	a.shutdown(server)
	return runErr
}

func (a *App) shutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// In-flight submissions finish before the server returns.
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	if a.grpcServer != nil {
		a.grpcServer.GracefulStop()
	}

	if err := a.janitor.Shutdown(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Session janitor shutdown failed")
	}

	if err := a.closeService(); err != nil {
		log.Error().Err(err).Msg("Failed to close shortening backend")
	}

	log.Info().Int("sessions", a.pages.Len()).Msg("Application stopped")
}
