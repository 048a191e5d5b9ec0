package tournamentdomain

import (
	"fmt"
	"strconv"
	"strings"
)

// State is the whole tournament at a point in time. It is treated as an
// immutable value: UpdateScore returns a new State and never writes through
// the receiver, so a snapshot handed to a reader stays stable.
type State struct {
	Course   Course    `json:"course"`
	Teams    []Team    `json:"teams"`
	Pairings []Pairing `json:"pairings"`
}

// ScoreBounds is the accepted range for a recorded score.
type ScoreBounds struct {
	Min int
	Max int
}

// DefaultScoreBounds matches the scorecard input widget (1-15).
var DefaultScoreBounds = ScoreBounds{Min: 1, Max: 15}

// Check returns ErrScoreOutOfRange for a non-nil score outside the bounds.
// A nil score (a cleared hole) always passes.
func (b ScoreBounds) Check(score *int) error {
	if score == nil {
		return nil
	}
	if *score < b.Min || *score > b.Max {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrScoreOutOfRange, *score, b.Min, b.Max)
	}
	return nil
}

// ParseScore converts raw input into a score. Blank input clears the hole
// and yields nil.
func ParseScore(raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	return &v, nil
}

// UpdateScore parses raw and records it for one player's hole.
//
// Unknown ids, an out-of-range hole index or unparsable input leave the state
// as it was; the returned error says why. On success only the targeted team's
// player slice is copied, every other team shares its data with s.
func (s State) UpdateScore(teamID, playerID, holeIndex int, raw string) (State, error) {
	score, err := ParseScore(raw)
	if err != nil {
		return s, err
	}
	return s.SetScore(teamID, playerID, holeIndex, score)
}

// SetScore is UpdateScore with an already parsed value.
func (s State) SetScore(teamID, playerID, holeIndex int, score *int) (State, error) {
	if holeIndex < 0 || holeIndex >= HoleCount {
		return s, fmt.Errorf("%w: %d", ErrHoleOutOfRange, holeIndex)
	}

	ti := s.teamIndex(teamID)
	if ti < 0 {
		return s, fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
	}
	team := s.Teams[ti]

	pi := -1
	for i, p := range team.Players {
		if p.ID == playerID {
			pi = i
			break
		}
	}
	if pi < 0 {
		return s, fmt.Errorf("%w: %d on team %d", ErrPlayerNotFound, playerID, teamID)
	}

	players := make([]Player, len(team.Players))
	copy(players, team.Players)
	// Player.Scores is an array, so this assignment leaves the old card alone.
	players[pi].Scores[holeIndex] = copyScore(score)
	team.Players = players

	teams := make([]Team, len(s.Teams))
	copy(teams, s.Teams)
	teams[ti] = team

	next := s
	next.Teams = teams
	return next, nil
}

// Clone returns a deep copy of s. Nothing reachable from the copy, score
// pointers included, is shared with s.
func (s State) Clone() State {
	next := s
	next.Teams = CloneTeams(s.Teams)
	if s.Pairings != nil {
		next.Pairings = append([]Pairing(nil), s.Pairings...)
	}
	return next
}

// CloneTeams deep-copies a roster.
func CloneTeams(teams []Team) []Team {
	if teams == nil {
		return nil
	}
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = t
		if t.Players == nil {
			continue
		}
		out[i].Players = make([]Player, len(t.Players))
		for j, p := range t.Players {
			for h, score := range p.Scores {
				p.Scores[h] = copyScore(score)
			}
			out[i].Players[j] = p
		}
	}
	return out
}

// FindTeam looks up a team by id.
func (s State) FindTeam(teamID int) (Team, bool) {
	if i := s.teamIndex(teamID); i >= 0 {
		return s.Teams[i], true
	}
	return Team{}, false
}

// FindPlayer resolves a player id to the player and its owning team.
func (s State) FindPlayer(playerID int) (PlayerRef, bool) {
	for _, t := range s.Teams {
		for _, p := range t.Players {
			if p.ID == playerID {
				p.TeamID = t.ID
				return PlayerRef{Player: p, TeamName: t.Name, TeamGroup: t.Group}, true
			}
		}
	}
	return PlayerRef{}, false
}

// FindPairing looks up a pairing by id.
func (s State) FindPairing(pairingID int) (Pairing, bool) {
	for _, p := range s.Pairings {
		if p.ID == pairingID {
			return p, true
		}
	}
	return Pairing{}, false
}

func (s State) teamIndex(teamID int) int {
	for i, t := range s.Teams {
		if t.ID == teamID {
			return i
		}
	}
	return -1
}

func copyScore(score *int) *int {
	if score == nil {
		return nil
	}
	v := *score
	return &v
}
