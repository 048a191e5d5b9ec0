// Package fixture loads the course, roster and pairings a tournament starts
// with.
package fixture

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

// ErrInvalidFixture wraps every structural problem found while loading.
var ErrInvalidFixture = errors.New("invalid tournament fixture")

type file struct {
	Course   course    `yaml:"course"`
	Teams    []team    `yaml:"teams"`
	Pairings []pairing `yaml:"pairings"`
}

type course struct {
	Name  string `yaml:"name"`
	Tees  string `yaml:"tees"`
	Holes []hole `yaml:"holes"`
}

type hole struct {
	Number      int `yaml:"number"`
	Par         int `yaml:"par"`
	StrokeIndex int `yaml:"stroke_index"`
	Yardage     int `yaml:"yardage"`
}

type team struct {
	ID      int      `yaml:"id"`
	Name    string   `yaml:"name"`
	Group   string   `yaml:"group"`
	Players []player `yaml:"players"`
}

type player struct {
	ID            int     `yaml:"id"`
	Name          string  `yaml:"name"`
	HandicapIndex float64 `yaml:"handicap_index"`
}

type pairing struct {
	ID             int    `yaml:"id"`
	Name           string `yaml:"name"`
	Team1PlayerIDs [2]int `yaml:"team1_player_ids"`
	Team2PlayerIDs [2]int `yaml:"team2_player_ids"`
}

// Default returns the embedded Recreation Park tournament.
func Default() (tournamentdomain.State, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture file. An empty path loads the embedded default.
func Load(path string) (tournamentdomain.State, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tournamentdomain.State{}, fmt.Errorf("fixture.Load: read %q: %w", path, err)
	}
	state, err := Parse(data)
	if err != nil {
		return tournamentdomain.State{}, fmt.Errorf("fixture.Load: %q: %w", path, err)
	}
	return state, nil
}

// Parse decodes fixture YAML into an initial state with every score empty.
func Parse(data []byte) (tournamentdomain.State, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return tournamentdomain.State{}, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	state := tournamentdomain.State{
		Course: tournamentdomain.Course{Name: f.Course.Name, Tees: f.Course.Tees},
	}

	if len(f.Course.Holes) != tournamentdomain.HoleCount {
		return tournamentdomain.State{}, fmt.Errorf("%w: course has %d holes, want %d",
			ErrInvalidFixture, len(f.Course.Holes), tournamentdomain.HoleCount)
	}
	for i, h := range f.Course.Holes {
		if h.StrokeIndex < 1 || h.StrokeIndex > tournamentdomain.HoleCount {
			return tournamentdomain.State{}, fmt.Errorf("%w: hole %d stroke index %d", ErrInvalidFixture, h.Number, h.StrokeIndex)
		}
		state.Course.Holes[i] = tournamentdomain.Hole{
			Number:      h.Number,
			Par:         h.Par,
			StrokeIndex: h.StrokeIndex,
			Yardage:     h.Yardage,
		}
	}

	seen := map[int]int{}
	for _, t := range f.Teams {
		group, err := tournamentdomain.ParseGroup(t.Group)
		if err != nil {
			return tournamentdomain.State{}, fmt.Errorf("%w: team %d: %v", ErrInvalidFixture, t.ID, err)
		}
		out := tournamentdomain.Team{ID: t.ID, Name: t.Name, Group: group}
		for _, p := range t.Players {
			if other, dup := seen[p.ID]; dup {
				return tournamentdomain.State{}, fmt.Errorf("%w: player %d on teams %d and %d", ErrInvalidFixture, p.ID, other, t.ID)
			}
			seen[p.ID] = t.ID
			out.Players = append(out.Players, tournamentdomain.Player{
				ID:            p.ID,
				Name:          p.Name,
				HandicapIndex: p.HandicapIndex,
				TeamID:        t.ID,
			})
		}
		state.Teams = append(state.Teams, out)
	}

	for _, p := range f.Pairings {
		for _, id := range append(p.Team1PlayerIDs[:], p.Team2PlayerIDs[:]...) {
			if _, ok := seen[id]; !ok {
				return tournamentdomain.State{}, fmt.Errorf("%w: pairing %d references unknown player %d", ErrInvalidFixture, p.ID, id)
			}
		}
		state.Pairings = append(state.Pairings, tournamentdomain.Pairing{
			ID:             p.ID,
			Name:           p.Name,
			Team1PlayerIDs: p.Team1PlayerIDs,
			Team2PlayerIDs: p.Team2PlayerIDs,
		})
	}

	return state, nil
}
