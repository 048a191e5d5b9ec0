package parsers

// Parser defines the interface for scorecard parsers.
type Parser interface {
	// Parse reads scorecard data and returns a ParsedScorecard.
	// fileData should contain the raw file bytes.
	// fileName is optional and used in error messages.
	Parse(fileData []byte, fileName string) (*ParsedScorecard, error)
}

// ParsedScorecard is the hole-by-hole content of an uploaded card.
type ParsedScorecard struct {
	Rows []PlayerRow
	// Pars holds the PAR row when the card has one, keyed by hole number.
	Pars map[int]int
}

// PlayerRow is one player's line. Player is whatever the first column held
// (a name or a numeric id); Holes maps hole number (1-18) to the raw cell.
// Empty cells are left out, so an import never clears a hole.
type PlayerRow struct {
	Player string
	Holes  map[int]string
}
