package brokers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// readRecords reads a whole CSV stream with the given separator. Rows may
// have varying lengths: broker exports are not strict about trailing fields.
func readRecords(r io.Reader, sep rune) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

// normalizeCol canonicalizes a header cell the way every dialect is indexed:
// trimmed, spaces replaced by underscores, parentheses dropped.
func normalizeCol(c string) string {
	c = strings.TrimSpace(c)
	c = strings.ReplaceAll(c, " ", "_")
	c = strings.ReplaceAll(c, "(", "")
	c = strings.ReplaceAll(c, ")", "")
	return c
}

// colIndex maps normalized column names to their position.
func colIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, c := range header {
		idx[normalizeCol(c)] = i
	}
	return idx
}

// field returns the named cell of a row, or "" when the row is short or the
// column is absent.
func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// dec parses a plain decimal value, treating blanks as zero.
func dec(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// euroDec parses a European-formatted decimal: "1.234,56" → 1234.56.
func euroDec(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid European decimal %q: %w", s, err)
	}
	return v, nil
}
