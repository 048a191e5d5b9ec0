package tournamentservice

import (
	"context"
	"fmt"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// GroupBoard is the team leaderboard of one group.
type GroupBoard struct {
	Group     tournamentdomain.Group          `json:"group"`
	Standings []tournamentdomain.TeamStanding `json:"standings"`
}

// Leaderboard is everything the leaderboard screen shows.
type Leaderboard struct {
	Groups     []GroupBoard                      `json:"groups"`
	Individual []tournamentdomain.PlayerStanding `json:"individual"`
}

// Screen is a view resolved against the current state. Exactly one of the
// content fields is set, matching Kind.
type Screen struct {
	Kind       tournamentdomain.ViewKind `json:"kind"`
	Params     map[string]string         `json:"params"`
	BackKind   tournamentdomain.ViewKind `json:"back_kind"`
	BackParams map[string]string         `json:"back_params"`

	Pairings      []tournamentdomain.Pairing `json:"pairings,omitempty"`
	PairingDetail *PairingDetail             `json:"pairing_detail,omitempty"`
	Leaderboard   *Leaderboard               `json:"leaderboard,omitempty"`
	Scorecard     *Scorecard                 `json:"scorecard,omitempty"`
}

// ResolveView loads the data for a screen from one snapshot.
func (s *TournamentService) ResolveView(ctx context.Context, view tournamentdomain.View) (Screen, error) {
	if view == nil {
		view = tournamentdomain.PairingsView{}
	}
	state := s.store.Snapshot()
	back := tournamentdomain.Back(view)
	screen := Screen{
		Kind:       view.Kind(),
		Params:     tournamentdomain.Params(view),
		BackKind:   back.Kind(),
		BackParams: tournamentdomain.Params(back),
	}

	switch v := view.(type) {
	case tournamentdomain.PairingsView:
		screen.Pairings = state.Pairings
	case tournamentdomain.PairingDetailView:
		pairing, ok := state.FindPairing(v.PairingID)
		if !ok {
			return Screen{}, fmt.Errorf("%w: %d", tournamentdomain.ErrPairingNotFound, v.PairingID)
		}
		screen.PairingDetail = &PairingDetail{
			Pairing: pairing,
			Team1:   resolveSide(state, pairing.Team1PlayerIDs),
			Team2:   resolveSide(state, pairing.Team2PlayerIDs),
		}
	case tournamentdomain.LeaderboardView:
		board := buildLeaderboard(state.Teams)
		screen.Leaderboard = &board
	case tournamentdomain.ScorecardView:
		ref, ok := state.FindPlayer(v.PlayerID)
		if !ok {
			return Screen{}, fmt.Errorf("%w: %d", tournamentdomain.ErrPlayerNotFound, v.PlayerID)
		}
		card := buildScorecard(state.Course, ref)
		screen.Scorecard = &card
	default:
		return Screen{}, fmt.Errorf("%w: %T", tournamentdomain.ErrUnknownView, view)
	}
	return screen, nil
}

func buildLeaderboard(teams []tournamentdomain.Team) Leaderboard {
	board := Leaderboard{Individual: tournamentdomain.IndividualLeaderboard(teams)}
	for _, g := range tournamentdomain.Groups {
		board.Groups = append(board.Groups, GroupBoard{
			Group:     g,
			Standings: tournamentdomain.GroupLeaderboard(teams, g),
		})
	}
	return board
}
