package tournamentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain/events"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// UpdateScoreRequest addresses one hole of one player. HoleIndex is 0-based;
// Value is the raw input, blank to clear the hole.
type UpdateScoreRequest struct {
	TeamID    int    `json:"team_id"`
	PlayerID  int    `json:"player_id"`
	HoleIndex int    `json:"hole_index"`
	Value     string `json:"value"`
}

// ScoreUpdate describes an applied change and the player's new totals.
type ScoreUpdate struct {
	TeamID      int     `json:"team_id"`
	PlayerID    int     `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	HoleIndex   int     `json:"hole_index"`
	Score       *int    `json:"score"`
	Previous    *int    `json:"previous"`
	Gross       int     `json:"gross"`
	Net         float64 `json:"net"`
	HolesPlayed int     `json:"holes_played"`
}

// UpdateScore records (or clears) one hole score and announces the change.
func (s *TournamentService) UpdateScore(ctx context.Context, req UpdateScoreRequest) (results.OperationResult[ScoreUpdate, error], error) {
	return withTelemetry(s, ctx, "UpdateScore", "player_id", req.PlayerID, func(ctx context.Context) (results.OperationResult[ScoreUpdate, error], error) {
		return s.applyScore(ctx, req)
	})
}

func (s *TournamentService) applyScore(ctx context.Context, req UpdateScoreRequest) (results.OperationResult[ScoreUpdate, error], error) {
	score, err := tournamentdomain.ParseScore(req.Value)
	if err != nil {
		s.metrics.RecordScoreRejected(ctx, rejectionReason(err))
		return results.FailureResult[ScoreUpdate](err), nil
	}
	if s.options.EnforceBounds {
		if err := s.options.Bounds.Check(score); err != nil {
			s.metrics.RecordScoreRejected(ctx, rejectionReason(err))
			return results.FailureResult[ScoreUpdate](err), nil
		}
	}

	before, after, err := s.store.Apply(func(state tournamentdomain.State) (tournamentdomain.State, error) {
		return state.SetScore(req.TeamID, req.PlayerID, req.HoleIndex, score)
	})
	if err != nil {
		s.metrics.RecordScoreRejected(ctx, rejectionReason(err))
		if IsDomainFailure(err) {
			return results.FailureResult[ScoreUpdate](err), nil
		}
		return results.OperationResult[ScoreUpdate, error]{}, err
	}

	prevRef, _ := before.FindPlayer(req.PlayerID)
	ref, _ := after.FindPlayer(req.PlayerID)
	update := ScoreUpdate{
		TeamID:      req.TeamID,
		PlayerID:    req.PlayerID,
		PlayerName:  ref.Name,
		HoleIndex:   req.HoleIndex,
		Score:       ref.Scores[req.HoleIndex],
		Previous:    prevRef.Scores[req.HoleIndex],
		Gross:       tournamentdomain.PlayerGross(ref.Player),
		Net:         tournamentdomain.PlayerNet(ref.Player),
		HolesPlayed: tournamentdomain.HolesPlayed(ref.Player),
	}

	s.metrics.RecordScoreUpdate(ctx, string(ref.TeamGroup), update.Score == nil)
	s.publishScoreUpdated(ctx, update)

	return results.SuccessResult[ScoreUpdate, error](update), nil
}

// publishScoreUpdated announces an applied change. A publish failure is
// logged and does not undo the update.
func (s *TournamentService) publishScoreUpdated(ctx context.Context, update ScoreUpdate) {
	if s.publisher == nil {
		return
	}

	payload := tournamentevents.ScoreUpdatedPayloadV1{
		TeamID:      update.TeamID,
		PlayerID:    update.PlayerID,
		PlayerName:  update.PlayerName,
		HoleIndex:   update.HoleIndex,
		Score:       update.Score,
		Previous:    update.Previous,
		Gross:       update.Gross,
		Net:         update.Net,
		HolesPlayed: update.HolesPlayed,
		UpdatedAt:   s.now().UTC(),
	}

	msg, err := newEventMessage(ctx, tournamentevents.ScoreUpdatedV1, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build score event",
			attr.Int("player_id", update.PlayerID),
			attr.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(tournamentevents.ScoreUpdatedV1, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish score event",
			attr.String("topic", tournamentevents.ScoreUpdatedV1),
			attr.String("msg_uuid", msg.UUID),
			attr.Int("player_id", update.PlayerID),
			attr.Error(err),
		)
		return
	}

	s.logger.InfoContext(ctx, "Published score event",
		attr.String("topic", tournamentevents.ScoreUpdatedV1),
		attr.String("msg_uuid", msg.UUID),
		attr.Int("player_id", update.PlayerID),
		attr.Int("hole", update.HoleIndex+1),
		attr.String("score", scoreLabel(update.Score)),
		attr.String("previous", scoreLabel(update.Previous)),
	)
}

func newEventMessage(ctx context.Context, topic string, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set(tournamentevents.MetadataTopic, topic)

	correlationID := CorrelationID(ctx)
	if correlationID == "" {
		correlationID = msg.UUID
	}
	middleware.SetCorrelationID(correlationID, msg)
	msg.SetContext(ctx)
	return msg, nil
}

// scoreLabel formats a score for logs; nil is an empty hole.
func scoreLabel(score *int) string {
	if score == nil {
		return "-"
	}
	return strconv.Itoa(*score)
}
