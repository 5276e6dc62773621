package brokers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/date"
	"github.com/finreport/finreport/fx"
)

// stablecoins pegged 1:1 to a fiat currency quoted in the rate table.
var stablecoins = map[string]string{
	"USDT": "USD",
	"USDC": "USD",
}

// fiat maps a crypto quote currency to its rate-table equivalent.
func fiat(code string) string {
	if c, ok := stablecoins[code]; ok {
		return c
	}
	return code
}

// BingX parses BingX perpetual futures exports:
//
//	Time(UTC+8),Pair,Type,DealPrice,Quantity,Fee,Fee Coin
//
// Open Long rows become buys, Close Long and Liquidation Long rows become
// sells. Prices are quoted in the pair's stablecoin and converted to EUR at
// each row's date.
type BingX struct {
	cfg   Config
	rates *fx.Table
}

func (p *BingX) Name() string { return "BingX" }

func (p *BingX) Parse() ([]finreport.Operation, error) {
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

func (p *BingX) parseFile(r io.Reader) ([]finreport.Operation, error) {
	header, rows, err := readRecords(r, p.cfg.sep())
	if err != nil {
		return nil, err
	}
	idx := colIndex(header)

	var ops []finreport.Operation
	for _, row := range rows {
		on, err := parseTimestamp(field(row, idx, "TimeUTC+8"))
		if err != nil {
			return nil, err
		}
		pair := field(row, idx, "Pair")
		base, quote, ok := strings.Cut(pair, "-")
		if !ok {
			return nil, fmt.Errorf("unsupported pair %q on %s", pair, on.Format(time.DateOnly))
		}
		price, err := dec(field(row, idx, "DealPrice"))
		if err != nil {
			return nil, fmt.Errorf("invalid price for %q: %w", pair, err)
		}
		qty, err := dec(field(row, idx, "Quantity"))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for %q: %w", pair, err)
		}
		fee, err := dec(field(row, idx, "Fee"))
		if err != nil {
			return nil, fmt.Errorf("invalid fee for %q: %w", pair, err)
		}
		feeCoin := field(row, idx, "Fee_Coin")
		if feeCoin == "" {
			feeCoin = "USDT"
		}

		unitPrice, err := p.rates.ToEUR(finreport.M(price, fiat(quote)), date.Of(on))
		if err != nil {
			return nil, err
		}
		commission, err := p.rates.ToEUR(finreport.M(fee.Abs(), fiat(feeCoin)), date.Of(on))
		if err != nil {
			return nil, err
		}

		asset, err := finreport.NewAsset(base, "", base)
		if err != nil {
			return nil, err
		}

		switch field(row, idx, "Type") {
		case "Open Long":
			buy, err := finreport.NewBuy(asset, unitPrice, finreport.Q(qty), commission, on)
			if err != nil {
				return nil, err
			}
			ops = append(ops, buy)
		case "Close Long", "Liquidation Long":
			sell, err := finreport.NewSell(asset, unitPrice, finreport.Q(qty), commission, finreport.Money{}, on)
			if err != nil {
				return nil, err
			}
			ops = append(ops, sell)
		default:
			// funding fees and transfers are ignored
		}
	}
	return ops, nil
}
