package tournamenthandlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	tournamentevents "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain/events"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleScoreUpdated keeps the per-player progress gauge current and logs
// the change.
func (h *TournamentHandlers) HandleScoreUpdated(msg *message.Message) ([]*message.Message, error) {
	ctx, span := h.tracer.Start(msg.Context(), "HandleScoreUpdated", trace.WithAttributes(
		attribute.String("message_id", msg.UUID),
	))
	defer span.End()

	var payload tournamentevents.ScoreUpdatedPayloadV1
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad payload")
		// Redelivery cannot fix a malformed payload.
		h.logger.ErrorContext(ctx, "Dropping malformed score event",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return nil, nil
	}

	h.metrics.RecordHolesEntered(ctx, strconv.Itoa(payload.PlayerID), payload.HolesPlayed)

	h.logger.InfoContext(ctx, "Score updated",
		attr.String("correlation_id", middleware.MessageCorrelationID(msg)),
		attr.Int("team_id", payload.TeamID),
		attr.Int("player_id", payload.PlayerID),
		attr.String("player_name", payload.PlayerName),
		attr.Int("hole", payload.HoleIndex+1),
		attr.Any("score", payload.Score),
		attr.Int("gross", payload.Gross),
		attr.Int("holes_played", payload.HolesPlayed),
	)
	return nil, nil
}

// HandleForwardScoreUpdated republishes the event payload on the configured
// NATS subject, carrying the correlation id as a header.
func (h *TournamentHandlers) HandleForwardScoreUpdated(msg *message.Message) ([]*message.Message, error) {
	if h.forwarder == nil {
		return nil, nil
	}
	ctx, span := h.tracer.Start(msg.Context(), "HandleForwardScoreUpdated", trace.WithAttributes(
		attribute.String("message_id", msg.UUID),
		attribute.String("subject", h.options.ForwardSubject),
	))
	defer span.End()

	out := nats.NewMsg(h.options.ForwardSubject)
	out.Data = msg.Payload
	out.Header.Set(nats.MsgIdHdr, msg.UUID)
	if id := middleware.MessageCorrelationID(msg); id != "" {
		out.Header.Set(tournamentevents.MetadataCorrelationID, id)
	}

	if err := h.forwarder.PublishMsg(out); err != nil {
		h.metrics.RecordEventForwarded(ctx, h.options.ForwardSubject, false)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.ErrorContext(ctx, "Failed to forward score event",
			attr.String("subject", h.options.ForwardSubject),
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return nil, fmt.Errorf("forward to %s: %w", h.options.ForwardSubject, err)
	}

	h.metrics.RecordEventForwarded(ctx, h.options.ForwardSubject, true)
	return nil, nil
}
