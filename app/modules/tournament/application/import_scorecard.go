package tournamentservice

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// ScoreEntry is one parsed cell of an uploaded scorecard.
type ScoreEntry struct {
	PlayerID  int    `json:"player_id"`
	HoleIndex int    `json:"hole_index"`
	Value     string `json:"value"`
}

// RejectedEntry is an entry that did not apply, with the reason.
type RejectedEntry struct {
	ScoreEntry
	Reason string `json:"reason"`
}

// ImportSummary reports how a scorecard import went.
type ImportSummary struct {
	TeamID   int             `json:"team_id"`
	Applied  int             `json:"applied"`
	Rejected []RejectedEntry `json:"rejected"`
}

// ImportScorecard applies entries in order through the same path as
// UpdateScore. Entries that fail are collected in the summary; the rest
// still apply.
func (s *TournamentService) ImportScorecard(ctx context.Context, teamID int, entries []ScoreEntry) (results.OperationResult[ImportSummary, error], error) {
	return withTelemetry(s, ctx, "ImportScorecard", "team_id", teamID, func(ctx context.Context) (results.OperationResult[ImportSummary, error], error) {
		if len(entries) == 0 {
			return results.FailureResult[ImportSummary](ErrEmptyImport), nil
		}
		if _, ok := s.store.Snapshot().FindTeam(teamID); !ok {
			return results.FailureResult[ImportSummary](fmt.Errorf("%w: %d", tournamentdomain.ErrTeamNotFound, teamID)), nil
		}

		summary := ImportSummary{TeamID: teamID, Rejected: []RejectedEntry{}}
		for _, entry := range entries {
			result, err := s.applyScore(ctx, UpdateScoreRequest{
				TeamID:    teamID,
				PlayerID:  entry.PlayerID,
				HoleIndex: entry.HoleIndex,
				Value:     entry.Value,
			})
			if err != nil {
				return results.OperationResult[ImportSummary, error]{}, err
			}
			if result.IsFailure() {
				summary.Rejected = append(summary.Rejected, RejectedEntry{
					ScoreEntry: entry,
					Reason:     (*result.Failure).Error(),
				})
				continue
			}
			summary.Applied++
		}

		if summary.Applied == 0 {
			s.logger.WarnContext(ctx, "Scorecard import applied nothing",
				attr.Int("team_id", teamID),
				attr.Int("rejected", len(summary.Rejected)),
			)
		}
		return results.SuccessResult[ImportSummary, error](summary), nil
	})
}

// FailureError unwraps a result's failure into a plain error, or nil.
func FailureError[S any](result results.OperationResult[S, error]) error {
	if result.Failure == nil {
		return nil
	}
	return *result.Failure
}
