package tournamentdomain

import (
	"fmt"
	"strconv"
)

// ViewKind names the screens of the scoring companion.
type ViewKind string

const (
	ViewPairings      ViewKind = "pairings"
	ViewPairingDetail ViewKind = "pairing-detail"
	ViewLeaderboard   ViewKind = "leaderboard"
	ViewScorecard     ViewKind = "scorecard"
)

// View is the current screen. The set of implementations is closed:
// PairingsView, PairingDetailView, LeaderboardView and ScorecardView.
type View interface {
	Kind() ViewKind
	isView()
}

// PairingsView lists every pairing.
type PairingsView struct{}

// PairingDetailView shows the four players of one pairing.
type PairingDetailView struct {
	PairingID int
}

// LeaderboardView shows the group and individual standings.
type LeaderboardView struct{}

// ScorecardView shows one player's card. PairingID is set when the card was
// opened from a pairing, so Back can return there.
type ScorecardView struct {
	PlayerID  int
	PairingID *int
}

func (PairingsView) Kind() ViewKind      { return ViewPairings }
func (PairingDetailView) Kind() ViewKind { return ViewPairingDetail }
func (LeaderboardView) Kind() ViewKind   { return ViewLeaderboard }
func (ScorecardView) Kind() ViewKind     { return ViewScorecard }

func (PairingsView) isView()      {}
func (PairingDetailView) isView() {}
func (LeaderboardView) isView()   {}
func (ScorecardView) isView()     {}

// OpenPairing moves to a pairing's detail screen.
func OpenPairing(pairingID int) View {
	return PairingDetailView{PairingID: pairingID}
}

// OpenScorecard moves to a player's card, remembering the pairing when the
// card is opened from a pairing detail screen.
func OpenScorecard(from View, playerID int) View {
	next := ScorecardView{PlayerID: playerID}
	switch v := from.(type) {
	case PairingDetailView:
		id := v.PairingID
		next.PairingID = &id
	case ScorecardView:
		next.PairingID = v.PairingID
	}
	return next
}

// ToggleLeaderboard flips between the leaderboard and the pairing list.
func ToggleLeaderboard(v View) View {
	if _, ok := v.(LeaderboardView); ok {
		return PairingsView{}
	}
	return LeaderboardView{}
}

// Back returns to the previous screen.
func Back(v View) View {
	switch v := v.(type) {
	case ScorecardView:
		if v.PairingID != nil {
			return PairingDetailView{PairingID: *v.PairingID}
		}
		return PairingsView{}
	default:
		return PairingsView{}
	}
}

// ParseView builds a view from its kind and the selection parameters the
// kind requires ("pairing_id", "player_id").
func ParseView(kind string, params map[string]string) (View, error) {
	switch ViewKind(kind) {
	case ViewPairings, "":
		return PairingsView{}, nil
	case ViewLeaderboard:
		return LeaderboardView{}, nil
	case ViewPairingDetail:
		id, err := intParam(params, "pairing_id")
		if err != nil {
			return nil, err
		}
		return OpenPairing(id), nil
	case ViewScorecard:
		id, err := intParam(params, "player_id")
		if err != nil {
			return nil, err
		}
		v := ScorecardView{PlayerID: id}
		if _, ok := params["pairing_id"]; ok {
			pid, err := intParam(params, "pairing_id")
			if err != nil {
				return nil, err
			}
			v.PairingID = &pid
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, kind)
	}
}

// Params is the inverse of ParseView.
func Params(v View) map[string]string {
	out := map[string]string{}
	switch v := v.(type) {
	case PairingDetailView:
		out["pairing_id"] = strconv.Itoa(v.PairingID)
	case ScorecardView:
		out["player_id"] = strconv.Itoa(v.PlayerID)
		if v.PairingID != nil {
			out["pairing_id"] = strconv.Itoa(*v.PairingID)
		}
	}
	return out
}

func intParam(params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrUnknownView, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrUnknownView, key, raw)
	}
	return v, nil
}
