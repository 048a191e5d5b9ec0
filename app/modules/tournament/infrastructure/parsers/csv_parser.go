package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVParser implements the Parser interface for CSV scorecard files.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads CSV data. Expected layout: header "player,1,2,...,18", an
// optional PAR row, then one row per player.
func (p *CSVParser) Parse(fileData []byte, fileName string) (*ParsedScorecard, error) {
	reader := csv.NewReader(bytes.NewReader(fileData))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return fromRows(rows, fileName)
}
