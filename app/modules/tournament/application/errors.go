package tournamentservice

import (
	"errors"
	"fmt"
	"math"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// Service-level errors. Domain failures (unknown ids, bad input) come back
// as the result's Failure; these are returned as plain errors.
var (
	// ErrEmptyImport indicates a scorecard file produced no entries.
	ErrEmptyImport = errors.New("scorecard import contained no scores")

	// ErrInvalidStrokeIndex indicates a stroke index outside 1..18.
	ErrInvalidStrokeIndex = errors.New("stroke index must be between 1 and 18")

	// ErrInvalidHandicap indicates a negative or non-finite handicap index.
	ErrInvalidHandicap = errors.New("handicap must be a finite, non-negative number")
)

// ValidateHandicap rejects negative and non-finite handicap indexes.
func ValidateHandicap(handicapIndex float64) error {
	if math.IsNaN(handicapIndex) || math.IsInf(handicapIndex, 0) || handicapIndex < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidHandicap, handicapIndex)
	}
	return nil
}

// rejectionReason maps a domain failure to a short metrics label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, tournamentdomain.ErrTeamNotFound):
		return "team_not_found"
	case errors.Is(err, tournamentdomain.ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, tournamentdomain.ErrHoleOutOfRange):
		return "hole_out_of_range"
	case errors.Is(err, tournamentdomain.ErrInvalidScore):
		return "invalid_score"
	case errors.Is(err, tournamentdomain.ErrScoreOutOfRange):
		return "score_out_of_range"
	default:
		return "other"
	}
}

// IsDomainFailure reports whether err is one of the expected, non-fatal
// update failures.
func IsDomainFailure(err error) bool {
	return rejectionReason(err) != "other"
}
