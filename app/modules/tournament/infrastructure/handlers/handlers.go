package tournamenthandlers

import (
	"log/slog"
	"time"

	tournamentservice "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/application"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/export"
	tournamentmetrics "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/metrics"
	"github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/parsers"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
)

// Forwarder republishes score events outside the process. *nats.Conn
// satisfies it.
type Forwarder interface {
	PublishMsg(m *nats.Msg) error
}

// Options configures the handlers.
type Options struct {
	// ForwardSubject is the NATS subject score events are forwarded to.
	ForwardSubject string
	// MaxUploadBytes caps a scorecard upload.
	MaxUploadBytes int64
	Palette        export.Palette
}

// TournamentHandlers implements the Handlers interface.
type TournamentHandlers struct {
	service   tournamentservice.Service
	forwarder Forwarder
	parsers   *parsers.Factory
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   tournamentmetrics.TournamentMetrics
	options   Options
	now       func() time.Time
}

// NewTournamentHandlers creates the handlers. forwarder may be nil, in which
// case HandleForwardScoreUpdated drops events.
func NewTournamentHandlers(
	service tournamentservice.Service,
	forwarder Forwarder,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics tournamentmetrics.TournamentMetrics,
	options Options,
) Handlers {
	return &TournamentHandlers{
		service:   service,
		forwarder: forwarder,
		parsers:   parsers.NewFactory(),
		logger:    logger,
		tracer:    tracer,
		metrics:   metrics,
		options:   options,
		now:       time.Now,
	}
}
