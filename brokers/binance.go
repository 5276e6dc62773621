package brokers

import (
	"fmt"
	"io"
	"os"

	"github.com/finreport/finreport"
)

// Binance parses the Binance capital-gains export:
//
//	Currency name,Currency amount,Acquired,Sold,Proceeds (EUR),Cost basis (EUR),Gains (EUR),Holding period (Days),Transaction type,Label
//
// Each row is a realized disposal with its acquisition already attributed, so
// it expands into a synthetic buy/sell pair; the matching engine then
// recomputes the P/L from the pair like for any other platform.
type Binance struct {
	cfg Config
}

func (p *Binance) Name() string { return "Binance" }

func (p *Binance) Parse() ([]finreport.Operation, error) {
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

func (p *Binance) parseFile(r io.Reader) ([]finreport.Operation, error) {
	header, rows, err := readRecords(r, p.cfg.sep())
	if err != nil {
		return nil, err
	}
	idx := colIndex(header)

	var ops []finreport.Operation
	for _, row := range rows {
		name := field(row, idx, "Currency_name")
		amount, err := dec(field(row, idx, "Currency_amount"))
		if err != nil {
			return nil, fmt.Errorf("invalid currency amount for %s: %w", name, err)
		}
		if amount.IsZero() {
			continue
		}
		acquired, err := parseTimestamp(field(row, idx, "Acquired"))
		if err != nil {
			return nil, err
		}
		sold, err := parseTimestamp(field(row, idx, "Sold"))
		if err != nil {
			return nil, err
		}
		proceeds, err := dec(field(row, idx, "Proceeds_EUR"))
		if err != nil {
			return nil, fmt.Errorf("invalid proceeds for %s: %w", name, err)
		}
		cost, err := dec(field(row, idx, "Cost_basis_EUR"))
		if err != nil {
			return nil, fmt.Errorf("invalid cost basis for %s: %w", name, err)
		}

		asset, err := finreport.NewAsset(name, "", name)
		if err != nil {
			return nil, err
		}
		qty := finreport.Q(amount)

		buy, err := finreport.NewBuy(asset, finreport.M(cost.Div(amount), finreport.EUR), qty, finreport.Money{}, acquired)
		if err != nil {
			return nil, err
		}
		sell, err := finreport.NewSell(asset, finreport.M(proceeds.Div(amount), finreport.EUR), qty, finreport.Money{}, finreport.Money{}, sold)
		if err != nil {
			return nil, err
		}
		ops = append(ops, buy, sell)
	}
	return ops, nil
}
