package tournamentdomain

import (
	"fmt"
	"strings"
)

// Group is the flight a team competes in.
type Group string

const (
	GroupA Group = "A"
	GroupB Group = "B"
)

// Groups lists the flights in display order.
var Groups = []Group{GroupA, GroupB}

// ParseGroup accepts "A"/"B" in any case.
func ParseGroup(s string) (Group, error) {
	switch Group(strings.ToUpper(strings.TrimSpace(s))) {
	case GroupA:
		return GroupA, nil
	case GroupB:
		return GroupB, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGroup, s)
	}
}

// Player is a rostered golfer. Scores holds one entry per hole (index = hole
// number - 1); a nil entry means the hole has not been entered yet.
type Player struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	HandicapIndex float64         `json:"handicap_index"`
	Scores        [HoleCount]*int `json:"scores"`
	TeamID        int             `json:"team_id"`
}

// Score returns the recorded score at holeIndex (0-based).
func (p Player) Score(holeIndex int) (int, bool) {
	if holeIndex < 0 || holeIndex >= HoleCount || p.Scores[holeIndex] == nil {
		return 0, false
	}
	return *p.Scores[holeIndex], true
}

// Team owns its players; a player never appears on two teams.
type Team struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Group   Group    `json:"group"`
	Players []Player `json:"players"`
}

// Pairing groups two players from each side for a head-to-head match.
// It only affects display grouping, never scoring.
type Pairing struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Team1PlayerIDs [2]int `json:"team1_player_ids"`
	Team2PlayerIDs [2]int `json:"team2_player_ids"`
}

// PlayerIDs returns the four players of the pairing, side one first.
func (p Pairing) PlayerIDs() []int {
	return []int{p.Team1PlayerIDs[0], p.Team1PlayerIDs[1], p.Team2PlayerIDs[0], p.Team2PlayerIDs[1]}
}

// PlayerRef is a player joined with its owning team.
type PlayerRef struct {
	Player
	TeamName  string `json:"team_name"`
	TeamGroup Group  `json:"team_group"`
}
