package brokers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/date"
	"github.com/finreport/finreport/fx"
)

// Bitget parses Bitget exports, which come in two dialects:
//
//	Format A: Date;Direction;Coin;Futures;Transaction amount;Average Price;Realized P/L;NetProfits;Fee
//	Format B: Date;Trading pair;Direction;Price;Amount;Total;Fee
//
// Directions containing "open" (A) or equal to "buy" (B) become buys, those
// containing "close"/"liquidation" (A) or equal to "sell" (B) become sells.
// Amounts are quoted in stablecoins and converted to EUR at each row's date.
type Bitget struct {
	cfg   Config
	rates *fx.Table
}

func (p *Bitget) Name() string { return "Bitget" }

func (p *Bitget) Parse() ([]finreport.Operation, error) {
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

func (p *Bitget) parseFile(r io.Reader) ([]finreport.Operation, error) {
	header, rows, err := readRecords(r, p.cfg.sep())
	if err != nil {
		return nil, err
	}
	idx := colIndex(header)

	switch {
	case has(idx, "Direction", "Coin", "Futures", "Transaction_amount", "Average_Price", "Fee"):
		return p.parseFutures(rows, idx)
	case has(idx, "Trading_pair", "Direction", "Price", "Amount", "Fee"):
		return p.parseSpot(rows, idx)
	default:
		return nil, fmt.Errorf("unrecognized Bitget export header %v", header)
	}
}

func has(idx map[string]int, cols ...string) bool {
	for _, c := range cols {
		if _, ok := idx[c]; !ok {
			return false
		}
	}
	return true
}

func (p *Bitget) parseFutures(rows [][]string, idx map[string]int) ([]finreport.Operation, error) {
	var ops []finreport.Operation
	for _, row := range rows {
		on, err := parseTimestamp(field(row, idx, "Date"))
		if err != nil {
			return nil, err
		}
		direction := strings.ToLower(field(row, idx, "Direction"))
		coin := field(row, idx, "Coin")
		pair := field(row, idx, "Futures")
		amt, err := dec(field(row, idx, "Transaction_amount"))
		if err != nil {
			return nil, fmt.Errorf("invalid amount for %q: %w", pair, err)
		}
		price, err := dec(field(row, idx, "Average_Price"))
		if err != nil {
			return nil, fmt.Errorf("invalid price for %q: %w", pair, err)
		}
		fee, err := dec(field(row, idx, "Fee"))
		if err != nil {
			return nil, fmt.Errorf("invalid fee for %q: %w", pair, err)
		}

		name := strings.ReplaceAll(pair, coin, "")
		asset, err := finreport.NewAsset(name, "", name)
		if err != nil {
			return nil, err
		}
		unitPrice, err := p.rates.ToEUR(finreport.M(price, fiat(coin)), date.Of(on))
		if err != nil {
			return nil, err
		}
		commission, err := p.rates.ToEUR(finreport.M(fee.Abs(), fiat(coin)), date.Of(on))
		if err != nil {
			return nil, err
		}

		switch {
		case strings.Contains(direction, "open"):
			buy, err := finreport.NewBuy(asset, unitPrice, finreport.Q(amt), commission, on)
			if err != nil {
				return nil, err
			}
			ops = append(ops, buy)
		case strings.Contains(direction, "close"), strings.Contains(direction, "liquidation"):
			sell, err := finreport.NewSell(asset, unitPrice, finreport.Q(amt), commission, finreport.Money{}, on)
			if err != nil {
				return nil, err
			}
			ops = append(ops, sell)
		}
	}
	return ops, nil
}

func (p *Bitget) parseSpot(rows [][]string, idx map[string]int) ([]finreport.Operation, error) {
	var ops []finreport.Operation
	for _, row := range rows {
		on, err := parseTimestamp(field(row, idx, "Date"))
		if err != nil {
			return nil, err
		}
		pair := field(row, idx, "Trading_pair")
		direction := strings.ToLower(field(row, idx, "Direction"))
		price, err := dec(field(row, idx, "Price"))
		if err != nil {
			return nil, fmt.Errorf("invalid price for %q: %w", pair, err)
		}
		amt, err := dec(field(row, idx, "Amount"))
		if err != nil {
			return nil, fmt.Errorf("invalid amount for %q: %w", pair, err)
		}
		fee, err := dec(field(row, idx, "Fee"))
		if err != nil {
			return nil, fmt.Errorf("invalid fee for %q: %w", pair, err)
		}

		base, quote, ok := strings.Cut(pair, "/")
		if !ok {
			// pairs like "BTCUSDT" concatenate a 3-letter base
			base, quote = pair[:3], pair[3:]
		}
		asset, err := finreport.NewAsset(base, "", base)
		if err != nil {
			return nil, err
		}
		unitPrice, err := p.rates.ToEUR(finreport.M(price, fiat(quote)), date.Of(on))
		if err != nil {
			return nil, err
		}
		commission, err := p.rates.ToEUR(finreport.M(fee.Abs(), fiat(quote)), date.Of(on))
		if err != nil {
			return nil, err
		}

		switch direction {
		case "buy":
			buy, err := finreport.NewBuy(asset, unitPrice, finreport.Q(amt), commission, on)
			if err != nil {
				return nil, err
			}
			ops = append(ops, buy)
		case "sell":
			sell, err := finreport.NewSell(asset, unitPrice, finreport.Q(amt), commission, finreport.Money{}, on)
			if err != nil {
				return nil, err
			}
			ops = append(ops, sell)
		}
	}
	return ops, nil
}
