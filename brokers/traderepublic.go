package brokers

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/finreport/finreport"
	"github.com/shopspring/decimal"
)

// TradeRepublic parses Trade Republic transaction exports:
//
//	Fecha;Tipo;Nota;ISIN;Cantidad;Valor;Comisiones
//
// One row per settled transaction, amounts in EUR, outflows negative.
type TradeRepublic struct {
	cfg Config
}

func (p *TradeRepublic) Name() string { return "Trade Republic" }

func (p *TradeRepublic) Parse() ([]finreport.Operation, error) {
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

func (p *TradeRepublic) parseFile(r io.Reader) ([]finreport.Operation, error) {
	header, rows, err := readRecords(r, p.cfg.sep())
	if err != nil {
		return nil, err
	}
	idx := colIndex(header)

	var ops []finreport.Operation
	for _, row := range rows {
		kind := field(row, idx, "Tipo")
		on, err := parseTimestamp(field(row, idx, "Fecha"))
		if err != nil {
			return nil, err
		}
		amount, err := dec(field(row, idx, "Valor"))
		if err != nil {
			return nil, fmt.Errorf("invalid value on %s: %w", on.Format(time.DateOnly), err)
		}
		name := field(row, idx, "Nota")
		if name == "" {
			name = "Undefined"
		}
		isin := field(row, idx, "ISIN")
		quantity := decimal.NewFromInt(1)
		if q := field(row, idx, "Cantidad"); q != "" {
			if quantity, err = dec(q); err != nil {
				return nil, fmt.Errorf("invalid quantity on %s: %w", on.Format(time.DateOnly), err)
			}
		}
		if !quantity.IsPositive() {
			return nil, fmt.Errorf("invalid quantity %s on %s", quantity, on.Format(time.DateOnly))
		}
		commission, err := dec(field(row, idx, "Comisiones"))
		if err != nil {
			return nil, fmt.Errorf("invalid commission on %s: %w", on.Format(time.DateOnly), err)
		}
		commission = commission.Abs()

		asset, err := finreport.NewAsset(name, isin, "")
		if err != nil {
			return nil, err
		}
		unitPrice := finreport.M(amount.Abs().Div(quantity), finreport.EUR)

		switch kind {
		case "Compra":
			buy, err := finreport.NewBuy(asset, unitPrice, finreport.Q(quantity), finreport.M(commission, finreport.EUR), on)
			if err != nil {
				return nil, err
			}
			ops = append(ops, buy)
		case "Venta":
			sell, err := finreport.NewSell(asset, unitPrice, finreport.Q(quantity), finreport.M(commission, finreport.EUR), finreport.Money{}, on)
			if err != nil {
				return nil, err
			}
			ops = append(ops, sell)
		case "Dividendo":
			ops = append(ops, finreport.Dividend{Asset: asset, Gross: finreport.M(amount.Abs(), finreport.EUR), Date: on})
		case "Intereses":
			ops = append(ops, finreport.Interest{Gross: finreport.M(amount.Abs(), finreport.EUR), Date: on, Source: p.Name()})
		default:
			// deposits, card payments and other cash movements are not
			// performance relevant
		}
	}
	return ops, nil
}

// parseTimestamp accepts the date formats seen across exports: ISO date,
// ISO datetime, or ISO with a T separator.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.DateTime, time.RFC3339, "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}
