package finreport

import (
	"testing"
	"time"
)

var (
	eth = Asset{Name: "Ethereum", Ticker: "ETH"}
	btc = Asset{Name: "Bitcoin", Ticker: "BTC"}
	msf = Asset{Name: "Microsoft", ISIN: "US5949181045", Ticker: "MSFT"}
)

// eur is a helper for tests to create euro money from const
func eur(v float64) Money { return M(v, EUR) }

// q is a helper for tests to create quantities from const
func q(v float64) Quantity { return Q(v) }

// day is a helper for tests to create a midnight timestamp
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buy(t *testing.T, asset Asset, unitPrice Money, quantity Quantity, commission Money, on time.Time) BuyOperation {
	t.Helper()
	op, err := NewBuy(asset, unitPrice, quantity, commission, on)
	if err != nil {
		t.Fatalf("NewBuy() error = %v", err)
	}
	return op
}

func sell(t *testing.T, asset Asset, unitPrice Money, quantity Quantity, commission, tax Money, on time.Time) SellOperation {
	t.Helper()
	op, err := NewSell(asset, unitPrice, quantity, commission, tax, on)
	if err != nil {
		t.Fatalf("NewSell() error = %v", err)
	}
	return op
}
