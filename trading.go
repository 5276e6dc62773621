package finreport

import (
	"slices"
	"strings"
)

// AssetTrade records one FIFO match event: a (possibly partial) buy lot
// consumed by a (possibly partial) sell quantity. Buy is a snapshot carrying
// only the matched quantity; Sell is the originating sell, repeated on every
// trade it is split across.
type AssetTrade struct {
	Buy  BuyOperation
	Sell SellOperation
	PNL  Money
}

// AssetPNL aggregates the realized performance of a single asset key over the
// processing year.
type AssetPNL struct {
	Asset     Asset        // metadata recorded on first encounter of the key
	PNL       Money        // sum of all trade P/L, EUR
	Trades    []AssetTrade // in match order
	TotalBuy  Money        // matched buy notional, EUR
	TotalSell Money        // matched sell notional, EUR
	Unmatched Quantity     // sell quantity that found no open lot to consume
}

// TradingPerformance is the realized P/L report for one year, one entry per
// asset key that had at least one qualifying sell.
type TradingPerformance struct {
	Year   int
	Assets []*AssetPNL
}

// Total returns the sum of all per-asset realized P/L.
func (p *TradingPerformance) Total() Money {
	total := M(0, EUR)
	for _, a := range p.Assets {
		total = total.Add(a.PNL)
	}
	return total
}

// openLot tracks the unconsumed remainder of a buy. The original operation is
// never mutated: remaining lives only inside the engine, so running the
// engine twice over the same input yields identical output.
type openLot struct {
	buy       BuyOperation
	remaining Quantity
}

// NewTradingPerformance computes realized profit and loss per asset for the
// given year using strict first-in-first-out lot consumption.
//
// All operations must already be normalized to EUR. Buys of any year open
// lots; only sells dated in the target year consume them. Sells from other
// years are skipped entirely, so a multi-year dataset must be reprocessed
// from its beginning for each reporting year.
//
// A sell's commission is charged in full against the first trade line it
// produces; prorating across split matches would change per-trade figures
// without changing the asset total.
func NewTradingPerformance(ops []Operation, year int) *TradingPerformance {
	queues := make(map[string][]*openLot)
	results := make(map[string]*AssetPNL)

	for _, op := range SortOperations(ops) {
		switch v := op.(type) {
		case BuyOperation:
			key := v.Asset.Key()
			queues[key] = append(queues[key], &openLot{buy: v, remaining: v.Quantity})

		case SellOperation:
			if v.Date.Year() != year {
				continue
			}
			key := v.Asset.Key()
			rec, ok := results[key]
			if !ok {
				rec = &AssetPNL{
					Asset:     v.Asset,
					PNL:       M(0, EUR),
					TotalBuy:  M(0, EUR),
					TotalSell: M(0, EUR),
				}
				results[key] = rec
			}

			remaining := v.Quantity
			queue := queues[key]
			first := true
			for remaining.IsPositive() && len(queue) > 0 {
				lot := queue[0]
				match := remaining.Min(lot.remaining)

				pnl := v.UnitPrice.Sub(lot.buy.UnitPrice).Mul(match)
				if first {
					pnl = pnl.Sub(v.Commission)
					first = false
				}

				partial := lot.buy
				partial.Quantity = match
				rec.Trades = append(rec.Trades, AssetTrade{Buy: partial, Sell: v, PNL: pnl})
				rec.PNL = rec.PNL.Add(pnl)
				rec.TotalBuy = rec.TotalBuy.Add(lot.buy.UnitPrice.Mul(match))
				rec.TotalSell = rec.TotalSell.Add(v.UnitPrice.Mul(match))

				lot.remaining = lot.remaining.Sub(match)
				remaining = remaining.Sub(match)
				if lot.remaining.IsZero() {
					queue = queue[1:]
				}
			}
			queues[key] = queue
			// Leftover sell quantity means missing buy history or a data
			// quality problem; it is reported, not swallowed.
			rec.Unmatched = rec.Unmatched.Add(remaining)

		case Dividend, Interest:
			// passive income, handled by NewSavingPerformance
		}
	}

	report := &TradingPerformance{Year: year}
	for _, rec := range results {
		report.Assets = append(report.Assets, rec)
	}
	slices.SortFunc(report.Assets, func(a, b *AssetPNL) int {
		return strings.Compare(a.Asset.Key(), b.Asset.Key())
	})
	return report
}
