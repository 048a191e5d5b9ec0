package tournamentrouter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	tracingfrolfbot "github.com/Black-And-White-Club/frolf-bot-shared/observability/otel/tracing"
	tournamentevents "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain/events"
	tournamenthandlers "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// PoisonTopic receives score events whose handlers kept failing after
// retries.
const PoisonTopic = "tournament.poison.v1"

// TournamentRouter wires score event handlers onto a watermill router.
type TournamentRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
	retryInterval  time.Duration
}

// NewTournamentRouter creates the router. A nil registry disables router
// metrics.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
	registry prometheus.Registerer,
) *TournamentRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "tournament", "events")
		metricsBuilder = &builder
	}
	return &TournamentRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
		retryInterval:  100 * time.Millisecond,
	}
}

// Configure adds middleware and registers handlers. The forwarding handler
// is only registered when forward is true.
func (r *TournamentRouter) Configure(routerCtx context.Context, handlers tournamenthandlers.Handlers, forward bool) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	poison, err := middleware.PoisonQueue(r.publisher, PoisonTopic)
	if err != nil {
		return fmt.Errorf("failed to create poison queue: %w", err)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		poison,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: r.retryInterval,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
		tracingfrolfbot.TraceHandler(r.tracer),
	)

	return r.RegisterHandlers(routerCtx, handlers, forward)
}

// RegisterHandlers subscribes handlers to the score topic.
func (r *TournamentRouter) RegisterHandlers(ctx context.Context, handlers tournamenthandlers.Handlers, forward bool) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		"tournament.track." + tournamentevents.ScoreUpdatedV1: handlers.HandleScoreUpdated,
	}
	if forward {
		eventsToHandlers["tournament.forward."+tournamentevents.ScoreUpdatedV1] = handlers.HandleForwardScoreUpdated
	}

	for handlerName, handlerFunc := range eventsToHandlers {
		r.Router.AddHandler(
			handlerName,
			tournamentevents.ScoreUpdatedV1,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("handler", handlerName),
						attr.String("message_id", msg.UUID),
						attr.String("correlation_id", middleware.MessageCorrelationID(msg)),
						attr.Error(err),
					)
					return nil, err
				}
				return messages, nil
			},
		)
	}
	return nil
}

// Run blocks until ctx is cancelled or the router stops.
func (r *TournamentRouter) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

func (r *TournamentRouter) Close() error {
	return r.Router.Close()
}
