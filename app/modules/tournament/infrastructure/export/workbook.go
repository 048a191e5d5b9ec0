// Package export renders tournament standings for use outside the app: an
// Excel workbook, a PNG chart and an S3 upload of either.
package export

import (
	"bytes"
	"fmt"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/golf-tournament/app/modules/tournament/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the standings workbook.
const (
	SheetIndividual = "Individual"
	SheetScores     = "Scores"
)

// GroupSheet names the team leaderboard sheet of one group.
func GroupSheet(g tournamentdomain.Group) string {
	return "Group " + string(g)
}

// WriteStandings renders both group leaderboards, the individual leaderboard
// and the raw hole scores into an xlsx workbook.
func WriteStandings(state tournamentdomain.State, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	for i, g := range tournamentdomain.Groups {
		name := GroupSheet(g)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}

		rows := [][]interface{}{{"Position", "Team", "Gross", "Handicap", "Net"}}
		for pos, st := range tournamentdomain.GroupLeaderboard(state.Teams, g) {
			rows = append(rows, []interface{}{
				pos + 1, st.Team.Name, st.Gross, tournamentdomain.TeamHandicap(st.Team), st.Net,
			})
		}
		if err := writeRows(f, name, rows); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetIndividual); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", SheetIndividual, err)
	}
	rows := [][]interface{}{{"Rank", "Player", "Team", "Handicap", "Gross", "Net"}}
	for _, st := range tournamentdomain.IndividualLeaderboard(state.Teams) {
		var net interface{} = "-"
		if st.Ranked {
			net = st.Net
		}
		rows = append(rows, []interface{}{
			st.DisplayRank(), st.Player.Name, st.TeamName, st.Player.HandicapIndex, st.Gross, net,
		})
	}
	if err := writeRows(f, SheetIndividual, rows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetScores); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", SheetScores, err)
	}
	header := []interface{}{"Player"}
	for _, h := range state.Course.Holes {
		header = append(header, h.Number)
	}
	header = append(header, "Out", "In", "Gross")
	par := []interface{}{"PAR"}
	for _, h := range state.Course.Holes {
		par = append(par, h.Par)
	}
	par = append(par, state.Course.ParOut(), state.Course.ParIn(), state.Course.ParTotal())
	rows = [][]interface{}{header, par}
	for _, t := range state.Teams {
		for _, p := range t.Players {
			row := []interface{}{p.Name}
			for i := range p.Scores {
				if s, ok := p.Score(i); ok {
					row = append(row, s)
				} else {
					row = append(row, "")
				}
			}
			row = append(row, tournamentdomain.FrontNine(p), tournamentdomain.BackNine(p), tournamentdomain.PlayerGross(p))
			rows = append(rows, row)
		}
	}
	rows = append(rows, []interface{}{}, []interface{}{"Generated", generatedAt.UTC().Format(time.RFC3339)})
	if err := writeRows(f, SheetScores, rows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
