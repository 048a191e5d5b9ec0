package parsers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFile is returned for anything that is not CSV or XLSX.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Factory picks a scorecard parser by file extension.
type Factory struct {
	byExt map[string]func() Parser
}

func NewFactory() *Factory {
	return &Factory{byExt: map[string]func() Parser{
		".csv":  func() Parser { return NewCSVParser() },
		".xlsx": func() Parser { return NewXLSXParser() },
	}}
}

// GetParser matches the extension case-insensitively.
func (f *Factory) GetParser(fileName string) (Parser, error) {
	newParser, ok := f.byExt[strings.ToLower(filepath.Ext(fileName))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want .csv or .xlsx)", ErrUnsupportedFile, fileName)
	}
	return newParser(), nil
}
