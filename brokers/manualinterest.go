package brokers

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/date"
	"github.com/finreport/finreport/fx"
)

// ManualInterest parses hand-maintained interest records:
//
//	year;quantity;currency;tax;source
//
// for income that no platform exports (bank accounts, closed platforms).
// Each row becomes one interest record dated January 1 of its year. Rows in
// a foreign currency are converted to EUR at that date.
type ManualInterest struct {
	cfg   Config
	rates *fx.Table
}

func (p *ManualInterest) Name() string { return "Manual interest" }

func (p *ManualInterest) Parse() ([]finreport.Operation, error) {
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

func (p *ManualInterest) parseFile(r io.Reader) ([]finreport.Operation, error) {
	header, rows, err := readRecords(r, p.cfg.sep())
	if err != nil {
		return nil, err
	}
	idx := colIndex(header)

	var ops []finreport.Operation
	for _, row := range rows {
		year, err := strconv.Atoi(field(row, idx, "year"))
		if err != nil {
			continue
		}
		quantity, err := dec(field(row, idx, "quantity"))
		if err != nil {
			continue
		}
		taxAmount, err := dec(field(row, idx, "tax"))
		if err != nil {
			continue
		}
		currency := field(row, idx, "currency")
		if err := finreport.ValidateCurrency(currency); err != nil {
			return nil, err
		}

		on := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		gross := finreport.M(quantity, currency)
		tax := finreport.M(taxAmount, currency)
		if currency != finreport.EUR {
			if p.rates == nil {
				return nil, fmt.Errorf("row in %s needs an fx rate table", currency)
			}
			if gross, err = p.rates.ToEUR(gross, date.Of(on)); err != nil {
				return nil, err
			}
			if tax, err = p.rates.ToEUR(tax, date.Of(on)); err != nil {
				return nil, err
			}
		}

		ops = append(ops, finreport.Interest{
			Gross:  gross,
			Tax:    tax,
			Date:   on,
			Source: field(row, idx, "source"),
		})
	}
	return ops, nil
}
