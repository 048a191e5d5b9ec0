package tournamentservice

import (
	"context"
	"fmt"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// PairingPlayer is one resolved player of a pairing with their running totals.
type PairingPlayer struct {
	tournamentdomain.PlayerRef
	Gross          int                             `json:"gross"`
	Net            float64                         `json:"net"`
	HolesPlayed    int                             `json:"holes_played"`
	HasRound       bool                            `json:"has_round"`
	CourseHandicap int                             `json:"course_handicap"`
	Strokes        [tournamentdomain.HoleCount]int `json:"strokes"`
}

// PairingDetail is a pairing with both sides resolved.
type PairingDetail struct {
	Pairing tournamentdomain.Pairing `json:"pairing"`
	Team1   []PairingPlayer          `json:"team1"`
	Team2   []PairingPlayer          `json:"team2"`
}

// ScorecardHole is one column of a scorecard.
type ScorecardHole struct {
	Number      int  `json:"number"`
	Par         int  `json:"par"`
	StrokeIndex int  `json:"stroke_index"`
	Yardage     int  `json:"yardage"`
	Strokes     int  `json:"strokes"`
	Score       *int `json:"score"`
}

// Scorecard is a player's card with OUT/IN/TOT subtotals.
type Scorecard struct {
	CourseName     string                     `json:"course_name"`
	Tees           string                     `json:"tees"`
	Player         tournamentdomain.PlayerRef `json:"player"`
	Holes          []ScorecardHole            `json:"holes"`
	ParOut         int                        `json:"par_out"`
	ParIn          int                        `json:"par_in"`
	ParTotal       int                        `json:"par_total"`
	Out            int                        `json:"out"`
	In             int                        `json:"in"`
	Gross          int                        `json:"gross"`
	Net            float64                    `json:"net"`
	CourseHandicap int                        `json:"course_handicap"`
	TotalStrokes   int                        `json:"total_strokes"`
	HolesPlayed    int                        `json:"holes_played"`
	HasRound       bool                       `json:"has_round"`
}

func (s *TournamentService) GetCourse(ctx context.Context) tournamentdomain.Course {
	return s.store.Snapshot().Course
}

// GetTeams returns a copy of the roster; changing it does not touch the
// live state.
func (s *TournamentService) GetTeams(ctx context.Context) []tournamentdomain.Team {
	return tournamentdomain.CloneTeams(s.store.Snapshot().Teams)
}

func (s *TournamentService) GetPairings(ctx context.Context) []tournamentdomain.Pairing {
	return s.store.Snapshot().Clone().Pairings
}

// Snapshot returns a copy of the whole state, for exports.
func (s *TournamentService) Snapshot(ctx context.Context) tournamentdomain.State {
	return s.store.Snapshot().Clone()
}

// FindPlayer resolves a player id to the player and its team.
func (s *TournamentService) FindPlayer(ctx context.Context, playerID int) (tournamentdomain.PlayerRef, error) {
	ref, ok := s.store.Snapshot().FindPlayer(playerID)
	if !ok {
		return tournamentdomain.PlayerRef{}, fmt.Errorf("%w: %d", tournamentdomain.ErrPlayerNotFound, playerID)
	}
	return ref, nil
}

// StrokesReceived is the allocation rule for a single hole.
func (s *TournamentService) StrokesReceived(ctx context.Context, handicapIndex float64, strokeIndex int) (int, error) {
	if err := ValidateHandicap(handicapIndex); err != nil {
		return 0, err
	}
	if strokeIndex < 1 || strokeIndex > tournamentdomain.HoleCount {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidStrokeIndex, strokeIndex)
	}
	return tournamentdomain.StrokesReceived(handicapIndex, strokeIndex), nil
}

func (s *TournamentService) GroupLeaderboard(ctx context.Context, group tournamentdomain.Group) []tournamentdomain.TeamStanding {
	return tournamentdomain.GroupLeaderboard(s.store.Snapshot().Teams, group)
}

func (s *TournamentService) IndividualLeaderboard(ctx context.Context) []tournamentdomain.PlayerStanding {
	return tournamentdomain.IndividualLeaderboard(s.store.Snapshot().Teams)
}

// PairingDetail resolves the four players of a pairing. Ids that no longer
// resolve to a rostered player are skipped.
func (s *TournamentService) PairingDetail(ctx context.Context, pairingID int) (PairingDetail, error) {
	state := s.store.Snapshot()
	pairing, ok := state.FindPairing(pairingID)
	if !ok {
		return PairingDetail{}, fmt.Errorf("%w: %d", tournamentdomain.ErrPairingNotFound, pairingID)
	}

	detail := PairingDetail{Pairing: pairing}
	detail.Team1 = resolveSide(state, pairing.Team1PlayerIDs)
	detail.Team2 = resolveSide(state, pairing.Team2PlayerIDs)
	return detail, nil
}

func resolveSide(state tournamentdomain.State, ids [2]int) []PairingPlayer {
	side := make([]PairingPlayer, 0, len(ids))
	for _, id := range ids {
		ref, ok := state.FindPlayer(id)
		if !ok {
			continue
		}
		side = append(side, PairingPlayer{
			PlayerRef:      ref,
			Gross:          tournamentdomain.PlayerGross(ref.Player),
			Net:            tournamentdomain.PlayerNet(ref.Player),
			HolesPlayed:    tournamentdomain.HolesPlayed(ref.Player),
			HasRound:       tournamentdomain.HasRound(ref.Player),
			CourseHandicap: tournamentdomain.RoundHandicap(ref.HandicapIndex),
			Strokes:        tournamentdomain.Allocation(state.Course, ref.HandicapIndex),
		})
	}
	return side
}

// Scorecard builds the hole-by-hole card for one player.
func (s *TournamentService) Scorecard(ctx context.Context, playerID int) (Scorecard, error) {
	state := s.store.Snapshot()
	ref, ok := state.FindPlayer(playerID)
	if !ok {
		return Scorecard{}, fmt.Errorf("%w: %d", tournamentdomain.ErrPlayerNotFound, playerID)
	}
	return buildScorecard(state.Course, ref), nil
}

func buildScorecard(course tournamentdomain.Course, ref tournamentdomain.PlayerRef) Scorecard {
	alloc := tournamentdomain.Allocation(course, ref.HandicapIndex)
	holes := make([]ScorecardHole, tournamentdomain.HoleCount)
	for i, h := range course.Holes {
		holes[i] = ScorecardHole{
			Number:      h.Number,
			Par:         h.Par,
			StrokeIndex: h.StrokeIndex,
			Yardage:     h.Yardage,
			Strokes:     alloc[i],
			Score:       ref.Scores[i],
		}
	}

	total := 0
	for _, n := range alloc {
		total += n
	}

	return Scorecard{
		CourseName:     course.Name,
		Tees:           course.Tees,
		Player:         ref,
		Holes:          holes,
		ParOut:         course.ParOut(),
		ParIn:          course.ParIn(),
		ParTotal:       course.ParTotal(),
		Out:            tournamentdomain.FrontNine(ref.Player),
		In:             tournamentdomain.BackNine(ref.Player),
		Gross:          tournamentdomain.PlayerGross(ref.Player),
		Net:            tournamentdomain.PlayerNet(ref.Player),
		CourseHandicap: tournamentdomain.RoundHandicap(ref.HandicapIndex),
		TotalStrokes:   total,
		HolesPlayed:    tournamentdomain.HolesPlayed(ref.Player),
		HasRound:       tournamentdomain.HasRound(ref.Player),
	}
}
