package parsers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
)

// ErrNoHoleColumns is returned when the header has no 1..18 columns.
var ErrNoHoleColumns = errors.New("scorecard header has no hole columns (1-18)")

// fromRows turns a header + data grid into a ParsedScorecard. The first
// column names the player; columns headed 1..18 are holes; a row whose first
// cell is PAR is read as the par line.
func fromRows(rows [][]string, fileName string) (*ParsedScorecard, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: scorecard must contain a header and at least one player row", fileName)
	}

	holeCols := findHoleColumns(rows[0])
	if len(holeCols) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoHoleColumns)
	}

	card := &ParsedScorecard{}
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		player := strings.TrimSpace(row[0])
		if player == "" {
			continue
		}

		if isParRow(player) {
			card.Pars = extractPars(row, holeCols)
			continue
		}

		holes := map[int]string{}
		for col, hole := range holeCols {
			if col >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[col]); v != "" {
				holes[hole] = v
			}
		}
		card.Rows = append(card.Rows, PlayerRow{Player: player, Holes: holes})
	}

	if len(card.Rows) == 0 {
		return nil, fmt.Errorf("%s: no player rows found", fileName)
	}
	return card, nil
}

// findHoleColumns maps column index to hole number for headers "1".."18"
// (also accepting "H1" / "Hole 1").
func findHoleColumns(header []string) map[int]int {
	cols := map[int]int{}
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		name = strings.TrimPrefix(name, "hole")
		name = strings.TrimPrefix(name, "h")
		name = strings.TrimSpace(name)
		n, err := strconv.Atoi(name)
		if err != nil || n < 1 || n > tournamentdomain.HoleCount {
			continue
		}
		cols[i] = n
	}
	return cols
}

func isParRow(firstCell string) bool {
	return strings.EqualFold(strings.TrimSpace(firstCell), "par")
}

func extractPars(row []string, holeCols map[int]int) map[int]int {
	pars := map[int]int{}
	for col, hole := range holeCols {
		if col >= len(row) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(row[col])); err == nil {
			pars[hole] = n
		}
	}
	return pars
}
