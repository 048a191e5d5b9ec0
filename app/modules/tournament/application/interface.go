package tournamentservice

import (
	"context"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// Service defines the tournament operations exposed to handlers and the CLI.
type Service interface {
	// Reads. All of them work on a single snapshot of the state.
	GetCourse(ctx context.Context) tournamentdomain.Course
	GetTeams(ctx context.Context) []tournamentdomain.Team
	GetPairings(ctx context.Context) []tournamentdomain.Pairing
	Snapshot(ctx context.Context) tournamentdomain.State
	FindPlayer(ctx context.Context, playerID int) (tournamentdomain.PlayerRef, error)
	StrokesReceived(ctx context.Context, handicapIndex float64, strokeIndex int) (int, error)
	GroupLeaderboard(ctx context.Context, group tournamentdomain.Group) []tournamentdomain.TeamStanding
	IndividualLeaderboard(ctx context.Context) []tournamentdomain.PlayerStanding
	PairingDetail(ctx context.Context, pairingID int) (PairingDetail, error)
	Scorecard(ctx context.Context, playerID int) (Scorecard, error)
	ResolveView(ctx context.Context, view tournamentdomain.View) (Screen, error)

	// UpdateScore is the only mutator. Domain failures (unknown ids, bad
	// input, out-of-range score) are returned as the result's Failure.
	UpdateScore(ctx context.Context, req UpdateScoreRequest) (results.OperationResult[ScoreUpdate, error], error)

	// ImportScorecard applies a batch of hole scores for one team.
	ImportScorecard(ctx context.Context, teamID int, entries []ScoreEntry) (results.OperationResult[ImportSummary, error], error)
}
