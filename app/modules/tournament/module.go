package tournament

import (
	"context"
	"fmt"
	"log/slog"

	tournamentservice "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/export"
	tournamenthandlers "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/handlers"
	tournamentmetrics "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/metrics"
	tournamentrouter "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/router"
	"github.com/Black-And-White-Club/golf-tournament/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// PubSub is the in-process event bus the module publishes score events on
// and consumes them from.
type PubSub interface {
	message.Publisher
	message.Subscriber
}

// Deps are the process-wide collaborators the module is built from.
type Deps struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry prometheus.Registerer
	PubSub   PubSub
	// Forwarder is nil when NATS forwarding is off.
	Forwarder tournamenthandlers.Forwarder
	// HTTPRouter is nil for CLI use; no routes are mounted then.
	HTTPRouter chi.Router
}

// Module represents the tournament module.
type Module struct {
	config     *config.Config
	service    tournamentservice.Service
	handlers   tournamenthandlers.Handlers
	router     *tournamentrouter.TournamentRouter
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// NewModule creates the tournament module around an initial state.
func NewModule(ctx context.Context, cfg *config.Config, deps Deps, initial tournamentdomain.State) (*Module, error) {
	logger := deps.Logger
	logger.InfoContext(ctx, "Initializing tournament module")

	var metrics tournamentmetrics.TournamentMetrics = tournamentmetrics.NoOpMetrics{}
	if deps.Registry != nil {
		metrics = tournamentmetrics.NewPrometheusMetrics(deps.Registry)
	}

	var publisher message.Publisher
	if deps.PubSub != nil {
		publisher = deps.PubSub
	}

	service := tournamentservice.NewTournamentService(
		tournamentservice.NewStore(initial),
		publisher,
		logger,
		metrics,
		deps.Tracer,
		ServiceOptions(cfg),
	)

	handlers := tournamenthandlers.NewTournamentHandlers(service, deps.Forwarder, logger, deps.Tracer, metrics, tournamenthandlers.Options{
		ForwardSubject: cfg.NATS.Subject,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		Palette:        export.DefaultPalette,
	})

	module := &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		logger:   logger,
	}

	if deps.PubSub != nil {
		wmLogger := watermill.NewSlogLogger(logger)
		wmRouter, err := message.NewRouter(message.RouterConfig{}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create event router: %w", err)
		}
		router := tournamentrouter.NewTournamentRouter(logger, wmRouter, deps.PubSub, deps.PubSub, deps.Tracer, deps.Registry)
		if err := router.Configure(ctx, handlers, deps.Forwarder != nil); err != nil {
			return nil, fmt.Errorf("failed to configure event router: %w", err)
		}
		module.router = router
	}

	if deps.HTTPRouter != nil {
		limiter := tournamenthandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.ScoreRateLimit), cfg.HTTP.ScoreRateBurst)
		tournamenthandlers.RegisterRoutes(deps.HTTPRouter, handlers, limiter)
	}

	return module, nil
}

// ServiceOptions maps the scoring section onto service options.
func ServiceOptions(cfg *config.Config) tournamentservice.Options {
	return tournamentservice.Options{
		EnforceBounds: cfg.Scoring.BoundsEnforced(),
		Bounds: tournamentdomain.ScoreBounds{
			Min: cfg.Scoring.MinScore,
			Max: cfg.Scoring.MaxScore,
		},
	}
}

// Run starts the event router and blocks until ctx is done.
func (m *Module) Run(ctx context.Context) error {
	m.logger.InfoContext(ctx, "Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if m.router == nil {
		<-ctx.Done()
		return nil
	}
	if err := m.router.Run(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Tournament event router stopped with error", "error", err)
		return fmt.Errorf("tournament event router: %w", err)
	}
	m.logger.InfoContext(ctx, "Tournament module goroutine stopped")
	return nil
}

// Close stops the tournament module.
func (m *Module) Close() error {
	m.logger.Info("Stopping tournament module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.router != nil {
		if err := m.router.Close(); err != nil {
			m.logger.Error("Error stopping tournament router", "error", err)
			return fmt.Errorf("error stopping router: %w", err)
		}
	}

	m.logger.Info("Tournament module stopped")
	return nil
}

// Service returns the tournament service for the CLI and other modules.
func (m *Module) Service() tournamentservice.Service {
	return m.service
}

// Running is closed once the event router has subscribed its handlers. It
// is nil when the module has no event bus.
func (m *Module) Running() chan struct{} {
	if m.router == nil {
		return nil
	}
	return m.router.Router.Running()
}
