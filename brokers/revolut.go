package brokers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/finreport/finreport"
	"github.com/shopspring/decimal"
)

// spanishMonths maps the month abbreviations Revolut uses in its Spanish
// locale exports to month numbers.
var spanishMonths = map[string]time.Month{
	"ene": time.January, "feb": time.February, "mar": time.March,
	"abr": time.April, "mayo": time.May, "jun": time.June,
	"jul": time.July, "ago": time.August, "sept": time.September,
	"oct": time.October, "nov": time.November, "dic": time.December,
}

// parseSpanishDatetime parses timestamps like "31 dic 2024, 1:29:07".
func parseSpanishDatetime(s string) (time.Time, error) {
	datePart, timePart, ok := strings.Cut(s, ",")
	if !ok {
		return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
	}
	df := strings.Fields(datePart)
	tf := strings.Split(strings.TrimSpace(timePart), ":")
	if len(df) != 3 || len(tf) != 3 {
		return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
	}
	month, ok := spanishMonths[strings.ToLower(df[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month in %q", s)
	}
	day, err := strconv.Atoi(df[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
	}
	year, err := strconv.Atoi(df[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
	}
	var hms [3]int
	for i, f := range tf {
		if hms[i], err = strconv.Atoi(f); err != nil {
			return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
		}
	}
	return time.Date(year, month, day, hms[0], hms[1], hms[2], 0, time.UTC), nil
}

// Revolut parses Revolut savings account statements:
//
//	Date;Description;Value, EUR;Price per share;Quantity of shares
//
// An interest payout spans several rows sharing a timestamp (the payout, its
// tax, sometimes a fee), so rows are grouped by timestamp and folded into a
// single interest record with the fee already netted out.
type Revolut struct {
	cfg Config
}

func (p *Revolut) Name() string { return "Revolut" }

func (p *Revolut) Parse() ([]finreport.Operation, error) {
	paths, err := p.cfg.files()
	if err != nil {
		return nil, err
	}
	var ops []finreport.Operation
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		fileOps, err := p.parseFile(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ops = append(ops, fileOps...)
	}
	return ops, nil
}

type revolutRow struct {
	desc  string
	value decimal.Decimal
}

func (p *Revolut) parseFile(r io.Reader) ([]finreport.Operation, error) {
	sep := string(p.cfg.sep())
	groups := make(map[time.Time][]revolutRow)

	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		parts := strings.Split(line, sep)
		if len(parts) < 3 {
			continue
		}
		on, err := parseSpanishDatetime(parts[0])
		if err != nil {
			continue
		}
		value, err := dec(strings.ReplaceAll(parts[2], ",", "."))
		if err != nil {
			continue
		}
		groups[on] = append(groups[on], revolutRow{desc: parts[1], value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	whens := make([]time.Time, 0, len(groups))
	for on := range groups {
		whens = append(whens, on)
	}
	sort.Slice(whens, func(i, j int) bool { return whens[i].Before(whens[j]) })

	var ops []finreport.Operation
	for _, on := range whens {
		rows := groups[on]
		if len(rows) == 1 && isRevolutCashMove(rows[0].desc) {
			continue
		}
		var gross, tax, fee decimal.Decimal
		for _, row := range rows {
			switch {
			case strings.Contains(row.desc, "Interest PAID"):
				gross = gross.Add(row.value)
			case strings.Contains(row.desc, "Tax"):
				tax = tax.Add(row.value)
			case strings.Contains(row.desc, "Fee"):
				fee = fee.Add(row.value)
			}
		}
		ops = append(ops, finreport.Interest{
			Gross:  finreport.M(gross.Sub(fee), finreport.EUR),
			Tax:    finreport.M(tax, finreport.EUR),
			Date:   on,
			Source: "Revolut Savings",
		})
	}
	return ops, nil
}

// isRevolutCashMove reports whether a lone statement row is a deposit,
// withdrawal or internal reinvestment rather than an interest payout.
func isRevolutCashMove(desc string) bool {
	for _, marker := range []string{"WITHDRAWN", "Reinvested", "BUY EUR", "SELL EUR"} {
		if strings.Contains(desc, marker) {
			return true
		}
	}
	return false
}
