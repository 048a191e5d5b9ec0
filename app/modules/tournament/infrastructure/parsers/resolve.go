package parsers

import (
	"sort"
	"strconv"
	"strings"

	tournamentservice "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// Entries matches each row to a player of team, by id or by case-insensitive
// name, and flattens the card into score entries ordered by player then
// hole. Rows that match nobody are returned in unmatched.
func Entries(card *ParsedScorecard, team tournamentdomain.Team) (entries []tournamentservice.ScoreEntry, unmatched []string) {
	for _, row := range card.Rows {
		player, ok := matchPlayer(row.Player, team)
		if !ok {
			unmatched = append(unmatched, row.Player)
			continue
		}

		holes := make([]int, 0, len(row.Holes))
		for hole := range row.Holes {
			holes = append(holes, hole)
		}
		sort.Ints(holes)

		for _, hole := range holes {
			entries = append(entries, tournamentservice.ScoreEntry{
				PlayerID:  player.ID,
				HoleIndex: hole - 1,
				Value:     row.Holes[hole],
			})
		}
	}
	return entries, unmatched
}

func matchPlayer(key string, team tournamentdomain.Team) (tournamentdomain.Player, bool) {
	if id, err := strconv.Atoi(key); err == nil {
		for _, p := range team.Players {
			if p.ID == id {
				return p, true
			}
		}
		return tournamentdomain.Player{}, false
	}
	for _, p := range team.Players {
		if strings.EqualFold(strings.TrimSpace(p.Name), key) {
			return p, true
		}
	}
	return tournamentdomain.Player{}, false
}
