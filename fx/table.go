// Package fx converts monetary amounts into the reporting currency using a
// table of historical daily exchange rates.
//
// The table format is the ECB reference-rate history CSV: a Date column
// followed by one column per currency code, rates expressed as
// foreign-currency units per 1 EUR, one row per trading day. Missing dates
// are non-trading days and resolve to the most recent earlier row.
package fx

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/date"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownCurrency is returned when the rate table has no column for
	// the requested currency code.
	ErrUnknownCurrency = errors.New("currency not present in rate table")
	// ErrRateNotFound is returned when no rate exists within MaxLookback
	// days before the requested date.
	ErrRateNotFound = errors.New("no rate found within lookback window")
)

// MaxLookback bounds the backward search for the most recent trading day.
// The longest market closures are a few days; a gap beyond this means the
// table does not cover the requested date at all.
const MaxLookback = 10

// Table is an immutable in-memory daily exchange rate table. It is safe to
// share across goroutines once loaded.
type Table struct {
	currencies map[string]bool
	rows       map[date.Date]map[string]decimal.Decimal
}

// Parse reads a rate table from an ECB-style CSV stream.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // the ECB file carries a trailing comma

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read rate table header: %w", err)
	}
	if len(header) < 2 || strings.TrimSpace(header[0]) != "Date" {
		return nil, fmt.Errorf("unexpected rate table header %q, want a Date column first", header)
	}

	t := &Table{
		currencies: make(map[string]bool),
		rows:       make(map[date.Date]map[string]decimal.Decimal),
	}
	codes := make([]string, len(header))
	for i, c := range header[1:] {
		code := strings.TrimSpace(c)
		codes[i+1] = code
		if code != "" {
			t.currencies[code] = true
		}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read rate table row: %w", err)
		}
		on, err := date.Parse(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("rate table row has an invalid date: %w", err)
		}
		row := make(map[string]decimal.Decimal, len(record)-1)
		for i := 1; i < len(record) && i < len(codes); i++ {
			val := strings.TrimSpace(record[i])
			if val == "" || val == "N/A" || codes[i] == "" {
				continue // currency not quoted on that day
			}
			rate, err := decimal.NewFromString(val)
			if err != nil {
				return nil, fmt.Errorf("invalid rate %q for %s on %s: %w", val, codes[i], on, err)
			}
			row[codes[i]] = rate
		}
		t.rows[on] = row
	}
	return t, nil
}

// Load reads a rate table from a CSV file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open rate table %q: %w", path, err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse rate table %q: %w", path, err)
	}
	return t, nil
}

// Currencies reports whether the table quotes the given currency at all.
func (t *Table) Currencies() []string {
	codes := make([]string, 0, len(t.currencies))
	for c := range t.currencies {
		codes = append(codes, c)
	}
	return codes
}

// Rate returns the exchange rate (foreign units per 1 EUR) for a currency on
// a date, falling back to the most recent earlier trading day, at most
// MaxLookback days back. The effective quote date is returned alongside.
func (t *Table) Rate(currency string, on date.Date) (decimal.Decimal, date.Date, error) {
	if !t.currencies[currency] {
		return decimal.Zero, date.Date{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}
	day := on
	for i := 0; i <= MaxLookback; i++ {
		if row, ok := t.rows[day]; ok {
			if rate, ok := row[currency]; ok {
				return rate, day, nil
			}
		}
		day = day.Add(-1)
	}
	return decimal.Zero, date.Date{}, fmt.Errorf("%w: %s on %s", ErrRateNotFound, currency, on)
}

// ToEUR converts an amount into EUR as of a date, quantized to cents.
// Amounts already in EUR are returned unchanged, without a lookup.
func (t *Table) ToEUR(m finreport.Money, on date.Date) (finreport.Money, error) {
	if m.Currency() == finreport.EUR {
		return m, nil
	}
	rate, _, err := t.Rate(m.Currency(), on)
	if err != nil {
		return finreport.Money{}, err
	}
	return finreport.M(m.Amount().Div(rate), finreport.EUR).RoundCents(), nil
}

// FromEUR converts an EUR amount into a foreign currency as of a date. The
// result keeps its full digits: quantization is only applied when producing
// EUR figures.
func (t *Table) FromEUR(m finreport.Money, currency string, on date.Date) (finreport.Money, error) {
	if currency == finreport.EUR {
		return m, nil
	}
	rate, _, err := t.Rate(currency, on)
	if err != nil {
		return finreport.Money{}, err
	}
	return finreport.M(m.Amount().Mul(rate), currency), nil
}
