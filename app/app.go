package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/golf-tournament/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// App holds the tournament server: its HTTP router, event bus, optional NATS
// connection and the tournament module.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry

	pubsub *gochannel.GoChannel
	nc     *nats.Conn
	router chi.Router
	module *tournament.Module
}

// NewApp builds the server around an initial tournament state.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, tracer trace.Tracer, initial tournamentdomain.State) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, watermill.NewSlogLogger(logger))

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		pubsub:   pubsub,
	}

	var forwarder *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err := connectNATS(cfg.NATS.URL, logger)
		if err != nil {
			pubsub.Close()
			return nil, err
		}
		app.nc = nc
		forwarder = nc
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	if cfg.Observability.MetricsAddress == "" {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}
	app.router = router

	deps := tournament.Deps{
		Logger:     logger,
		Tracer:     tracer,
		Registry:   registry,
		PubSub:     pubsub,
		HTTPRouter: router,
	}
	if forwarder != nil {
		deps.Forwarder = forwarder
	}

	module, err := tournament.NewModule(ctx, cfg, deps, initial)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize tournament module: %w", err)
	}
	app.module = module

	return app, nil
}

func connectNATS(url string, logger *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("golf-tournament"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", attr.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", attr.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("NATS forwarding enabled", attr.String("url", url))
	return nc, nil
}

// Handler returns the HTTP handler serving the API.
func (app *App) Handler() http.Handler {
	return app.router
}

// Module returns the tournament module.
func (app *App) Module() *tournament.Module {
	return app.module
}

// Run serves HTTP and processes score events until ctx is cancelled or one
// of them fails.
func (app *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	servers := []*http.Server{{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if addr := app.Config.Observability.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{Registry: app.Registry}))
		servers = append(servers, &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second})
	}

	g.Go(func() error {
		return app.module.Run(gctx)
	})

	for _, srv := range servers {
		g.Go(func() error {
			app.Logger.Info("HTTP server listening", attr.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.HTTP.ShutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// Close releases the module, event bus and NATS connection.
func (app *App) Close() {
	if app.module != nil {
		if err := app.module.Close(); err != nil {
			app.Logger.Error("Failed to close tournament module", attr.Error(err))
		}
	}
	if err := app.pubsub.Close(); err != nil {
		app.Logger.Error("Failed to close event bus", attr.Error(err))
	}
	if app.nc != nil {
		if err := app.nc.Drain(); err != nil {
			app.Logger.Error("Failed to drain NATS connection", attr.Error(err))
		}
	}
}
