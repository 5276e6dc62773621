package brokers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/finreport/finreport"
	"github.com/shopspring/decimal"
)

// XTB parses the two XTB exports, both with European decimals:
//
//	cash_path:   Free-funds interest and dividend movements, one row per
//	             cash entry; the payout and its tax rows land seconds apart
//	             and are folded back together by grouping nearby rows.
//	trades_path: closed positions with both legs on one row, under a
//	             two-line header ("Compra"/"Venta" spanning sub-columns).
type XTB struct {
	cfg Config
}

func (p *XTB) Name() string { return "XTB" }

func (p *XTB) Parse() ([]finreport.Operation, error) {
	var ops []finreport.Operation
	if p.cfg.CashPath != "" {
		f, err := os.Open(p.cfg.CashPath)
		if err != nil {
			return nil, err
		}
		cash, err := p.parseCash(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.cfg.CashPath, err)
		}
		ops = append(ops, cash...)
	}
	if p.cfg.TradesPath != "" {
		f, err := os.Open(p.cfg.TradesPath)
		if err != nil {
			return nil, err
		}
		trades, err := p.parseTrades(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.cfg.TradesPath, err)
		}
		ops = append(ops, trades...)
	}
	return ops, nil
}

type xtbCashRow struct {
	when   time.Time
	typ    string
	desc   string
	symbol string
	amount decimal.Decimal
}

// groupThreshold is the gap beyond which consecutive cash rows are treated
// as separate movements. A payout and its tax row settle within seconds.
const groupThreshold = 10 * time.Second

func (p *XTB) parseCash(r io.Reader) ([]finreport.Operation, error) {
	sep := string(p.cfg.sep())

	var rows []xtbCashRow
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
		if len(parts) < 6 {
			return nil, fmt.Errorf("malformed cash row %q", line)
		}
		when, err := time.Parse("02/01/2006 15:04:05", strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, err
		}
		amount, err := euroDec(parts[5])
		if err != nil {
			return nil, err
		}
		rows = append(rows, xtbCashRow{
			when:   when,
			typ:    strings.TrimSpace(parts[1]),
			desc:   strings.TrimSpace(parts[3]),
			symbol: strings.TrimSpace(parts[4]),
			amount: amount,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].when.Before(rows[j].when) })

	var ops []finreport.Operation
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].when.Sub(rows[end-1].when) <= groupThreshold {
			end++
		}
		ops = append(ops, p.cashGroup(rows[start:end])...)
		start = end
	}
	return ops, nil
}

// cashGroup folds one burst of cash rows into interest and dividend records.
func (p *XTB) cashGroup(rows []xtbCashRow) []finreport.Operation {
	on := rows[0].when

	var grossInterest, taxInterest decimal.Decimal
	dividends := make(map[string][]xtbCashRow)
	for _, row := range rows {
		switch row.typ {
		case "Free-funds Interest":
			grossInterest = grossInterest.Add(row.amount)
		case "Free-funds Interest Tax":
			taxInterest = taxInterest.Add(row.amount)
		case "DIVIDENT", "Withholding Tax":
			dividends[row.symbol] = append(dividends[row.symbol], row)
		}
	}

	var ops []finreport.Operation
	if grossInterest.IsPositive() {
		ops = append(ops, finreport.Interest{
			Gross:  finreport.M(grossInterest, finreport.EUR),
			Tax:    finreport.M(taxInterest.Abs(), finreport.EUR),
			Date:   on,
			Source: p.Name(),
		})
	}

	symbols := make([]string, 0, len(dividends))
	for symbol := range dividends {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		var gross, tax decimal.Decimal
		for _, row := range dividends[symbol] {
			if strings.Contains(row.typ, "Tax") {
				tax = tax.Add(row.amount)
			} else {
				gross = gross.Add(row.amount)
			}
		}
		if !gross.IsPositive() {
			continue
		}
		asset, err := finreport.NewAsset(symbol, "", symbol)
		if err != nil {
			continue
		}
		ops = append(ops, finreport.Dividend{
			Asset: asset,
			Gross: finreport.M(gross, finreport.EUR),
			Tax:   finreport.M(tax.Abs(), finreport.EUR),
			Date:  on,
		})
	}
	return ops
}

func (p *XTB) parseTrades(r io.Reader) ([]finreport.Operation, error) {
	sep := string(p.cfg.sep())

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, nil
	}

	// Merge the two header lines. The first line carries the leg name
	// ("Compra", "Venta") only on its first sub-column, so it carries
	// forward until the next non-empty cell.
	hdr1 := strings.Split(lines[0], sep)
	hdr2 := strings.Split(lines[1], sep)
	cols := make([]string, 0, len(hdr1))
	prev := ""
	for i, c1 := range hdr1 {
		c1 = strings.TrimSpace(c1)
		if c1 == "" {
			c1 = prev
		}
		c2 := ""
		if i < len(hdr2) {
			c2 = strings.TrimSpace(hdr2[i])
		}
		if c2 != "" {
			cols = append(cols, normalizeCol(c1+"_"+c2))
		} else {
			cols = append(cols, normalizeCol(c1))
		}
		prev = c1
	}
	idx := colIndex(cols)

	var ops []finreport.Operation
	for _, line := range lines[2:] {
		if strings.TrimSpace(strings.ReplaceAll(line, sep, "")) == "" {
			continue
		}
		row := strings.Split(line, sep)

		name := field(row, idx, "Nombre")
		isin := field(row, idx, "ISIN")
		ticker := field(row, idx, "Ticker")
		vol, err := euroDec(field(row, idx, "Volumen"))
		if err != nil {
			return nil, fmt.Errorf("invalid volume for %q: %w", name, err)
		}
		if vol.IsZero() {
			continue
		}

		buyDate, err := time.Parse("02/01/2006", field(row, idx, "Compra_Fecha"))
		if err != nil {
			return nil, err
		}
		buyAmount, err := euroDec(field(row, idx, "Compra_Importe_transacción_EUR"))
		if err != nil {
			return nil, fmt.Errorf("invalid buy amount for %q: %w", name, err)
		}
		sellDate, err := time.Parse("02/01/2006", field(row, idx, "Venta_Fecha"))
		if err != nil {
			return nil, err
		}
		sellAmount, err := euroDec(field(row, idx, "Venta_Importe_transacción_EUR"))
		if err != nil {
			return nil, fmt.Errorf("invalid sell amount for %q: %w", name, err)
		}

		commission, err := euroDec(field(row, idx, "Comisión_transacción_EUR"))
		if err != nil {
			return nil, err
		}
		rollovers, err := euroDec(field(row, idx, "Rollovers_EUR"))
		if err != nil {
			return nil, err
		}
		swaps, err := euroDec(field(row, idx, "Swaps_EUR"))
		if err != nil {
			return nil, err
		}
		totalCommission := commission.Add(rollovers.Abs()).Add(swaps.Abs())

		tax, err := euroDec(field(row, idx, "Impuesto_sobre_transacciones_financieras_o_similares_EUR"))
		if err != nil {
			return nil, err
		}

		// Short positions report the legs in open/close order; swap the
		// dates so the buy leg always precedes the sell leg.
		if field(row, idx, "Posición") == "Bajista" {
			buyDate, sellDate = sellDate, buyDate
		}

		asset, err := finreport.NewAsset(name, isin, ticker)
		if err != nil {
			return nil, err
		}
		qty := finreport.Q(vol)
		buy, err := finreport.NewBuy(asset, finreport.M(buyAmount.Div(vol), finreport.EUR), qty, finreport.Money{}, buyDate)
		if err != nil {
			return nil, err
		}
		sell, err := finreport.NewSell(asset, finreport.M(sellAmount.Div(vol), finreport.EUR), qty, finreport.M(totalCommission, finreport.EUR), finreport.M(tax, finreport.EUR), sellDate)
		if err != nil {
			return nil, err
		}

		// Cross-check against the net result the export itself reports.
		net, err := euroDec(field(row, idx, "Resultado_neto_EUR"))
		if err != nil {
			return nil, err
		}
		computed := sellAmount.Sub(buyAmount).Sub(totalCommission)
		if net.Sub(computed).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
			return nil, fmt.Errorf("net result mismatch for %q: reported %s, computed %s", name, net, computed)
		}

		ops = append(ops, buy, sell)
	}
	return ops, nil
}
