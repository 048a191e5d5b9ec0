package tournamentservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	tournamentmetrics "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/infrastructure/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Options tunes how score input is validated.
type Options struct {
	// EnforceBounds rejects scores outside Bounds with ErrScoreOutOfRange.
	EnforceBounds bool
	Bounds        tournamentdomain.ScoreBounds
}

// DefaultOptions enforces the 1-15 scorecard range.
func DefaultOptions() Options {
	return Options{EnforceBounds: true, Bounds: tournamentdomain.DefaultScoreBounds}
}

// TournamentService implements the Service interface.
type TournamentService struct {
	store     *Store
	publisher message.Publisher
	logger    *slog.Logger
	metrics   tournamentmetrics.TournamentMetrics
	tracer    trace.Tracer
	options   Options
	now       func() time.Time
}

// NewTournamentService creates a new TournamentService. publisher may be nil,
// in which case score changes are applied without announcing them.
func NewTournamentService(
	store *Store,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics tournamentmetrics.TournamentMetrics,
	tracer trace.Tracer,
	options Options,
) *TournamentService {
	return &TournamentService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		options:   options,
		now:       time.Now,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *TournamentService,
	ctx context.Context,
	operationName string,
	subjectKey string,
	subjectID int,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.Int(subjectKey, subjectID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.Int(subjectKey, subjectID),
		attr.String("correlation_id", CorrelationID(ctx)),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.Int(subjectKey, subjectID),
				attr.String("correlation_id", CorrelationID(ctx)),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.String("operation", operationName),
			attr.Int(subjectKey, subjectID),
			attr.String("correlation_id", CorrelationID(ctx)),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, wrappedErr.Error())
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.String("operation", operationName),
			attr.Int(subjectKey, subjectID),
			attr.String("correlation_id", CorrelationID(ctx)),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.Int(subjectKey, subjectID),
			attr.String("correlation_id", CorrelationID(ctx)),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

type correlationIDKey struct{}

// WithCorrelationID tags ctx so logs and published events can be tied back
// to the request that caused them.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the id set by WithCorrelationID, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}
