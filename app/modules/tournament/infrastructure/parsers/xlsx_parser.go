package parsers

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

// ScorecardSheet is read in preference to the first sheet when a workbook
// has one by that name.
const ScorecardSheet = "Scorecard"

// XLSXParser reads a workbook laid out like the CSV format.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(fileData []byte, fileName string) (*ParsedScorecard, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(fileData))
	if err != nil {
		return nil, fmt.Errorf("%s: not a readable workbook: %w", fileName, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", fileName)
	}
	sheet := sheets[0]
	if slices.Contains(sheets, ScorecardSheet) {
		sheet = ScorecardSheet
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: reading sheet %q: %w", fileName, sheet, err)
	}
	return fromRows(rows, fileName)
}
