package tournamentdomain

import (
	"sort"
	"strconv"
)

// TeamStanding is one row of a group leaderboard.
type TeamStanding struct {
	Team  Team    `json:"team"`
	Gross int     `json:"gross"`
	Net   float64 `json:"net"`
}

// PlayerStanding is one row of the individual leaderboard. Rank is zero and
// Ranked false for players with no strokes recorded.
type PlayerStanding struct {
	Player    Player  `json:"player"`
	TeamID    int     `json:"team_id"`
	TeamName  string  `json:"team_name"`
	TeamGroup Group   `json:"team_group"`
	Gross     int     `json:"gross"`
	Net       float64 `json:"net"`
	Rank      int     `json:"rank"`
	Ranked    bool    `json:"ranked"`
}

// GroupLeaderboard returns the teams of one group ordered by net score,
// lowest first. Equal nets keep roster order.
func GroupLeaderboard(teams []Team, group Group) []TeamStanding {
	standings := make([]TeamStanding, 0, len(teams))
	for _, t := range teams {
		if t.Group != group {
			continue
		}
		standings = append(standings, TeamStanding{
			Team:  t,
			Gross: TeamGross(t),
			Net:   TeamNet(t),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Net < standings[j].Net
	})
	return standings
}

// IndividualLeaderboard ranks every player across all teams by net score.
//
// Players without strokes go to the end unranked, in roster order. A ranked
// player whose net equals the previous row's net shares that row's rank;
// only the immediately preceding row is compared, which is enough because
// equal nets are adjacent after sorting.
func IndividualLeaderboard(teams []Team) []PlayerStanding {
	var ranked, unranked []PlayerStanding
	for _, t := range teams {
		for _, p := range t.Players {
			row := PlayerStanding{
				Player:    p,
				TeamID:    t.ID,
				TeamName:  t.Name,
				TeamGroup: t.Group,
				Gross:     PlayerGross(p),
				Net:       PlayerNet(p),
			}
			if row.Gross == 0 {
				unranked = append(unranked, row)
				continue
			}
			ranked = append(ranked, row)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Net < ranked[j].Net
	})

	for i := range ranked {
		ranked[i].Ranked = true
		if i > 0 && ranked[i-1].Net == ranked[i].Net {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}

	out := make([]PlayerStanding, 0, len(ranked)+len(unranked))
	out = append(out, ranked...)
	return append(out, unranked...)
}

// DisplayRank renders the rank column; unranked rows print "-".
func (s PlayerStanding) DisplayRank() string {
	if !s.Ranked {
		return "-"
	}
	return strconv.Itoa(s.Rank)
}
