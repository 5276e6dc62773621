package fx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/date"
	"github.com/shopspring/decimal"
)

// ratesCSV covers a Thursday/Friday and skips the weekend, like the real
// ECB history file does.
const ratesCSV = `Date,USD,JPY,GBP,
2024-03-07,1.0914,161.03,0.85495,
2024-03-08,1.0930,160.55,0.85320,
2024-03-11,1.0926,160.86,0.85221,
`

func table(t *testing.T) *Table {
	t.Helper()
	tbl, err := Parse(strings.NewReader(ratesCSV))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tbl
}

func TestParse_RejectsMissingDateColumn(t *testing.T) {
	if _, err := Parse(strings.NewReader("USD,JPY\n1.09,160\n")); err == nil {
		t.Error("expected an error for a header without a Date column")
	}
}

func TestRate_TradingDay(t *testing.T) {
	tbl := table(t)
	rate, effective, err := tbl.Rate("USD", date.New(2024, time.March, 8))
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if want := decimal.RequireFromString("1.0930"); !rate.Equal(want) {
		t.Errorf("rate = %s, want %s", rate, want)
	}
	if want := date.New(2024, time.March, 8); effective != want {
		t.Errorf("effective = %s, want %s", effective, want)
	}
}

func TestRate_WeekendFallsBackToFriday(t *testing.T) {
	tbl := table(t)
	for _, on := range []date.Date{
		date.New(2024, time.March, 9),  // Saturday
		date.New(2024, time.March, 10), // Sunday
	} {
		rate, effective, err := tbl.Rate("USD", on)
		if err != nil {
			t.Fatalf("Rate(%s) error = %v", on, err)
		}
		if want := decimal.RequireFromString("1.0930"); !rate.Equal(want) {
			t.Errorf("Rate(%s) = %s, want Friday's %s", on, rate, want)
		}
		if want := date.New(2024, time.March, 8); effective != want {
			t.Errorf("Rate(%s) effective = %s, want %s", on, effective, want)
		}
	}
}

func TestRate_LookbackIsBounded(t *testing.T) {
	tbl := table(t)
	_, _, err := tbl.Rate("USD", date.New(2024, time.March, 30))
	if !errors.Is(err, ErrRateNotFound) {
		t.Errorf("error = %v, want ErrRateNotFound", err)
	}
}

func TestRate_UnknownCurrency(t *testing.T) {
	tbl := table(t)
	_, _, err := tbl.Rate("XYZ", date.New(2024, time.March, 8))
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("error = %v, want ErrUnknownCurrency", err)
	}
}

func TestToEUR(t *testing.T) {
	tbl := table(t)
	on := date.New(2024, time.March, 8)

	got, err := tbl.ToEUR(finreport.M(1.0930, "USD"), on)
	if err != nil {
		t.Fatalf("ToEUR() error = %v", err)
	}
	if want := finreport.M(1, finreport.EUR); !got.Equal(want) {
		t.Errorf("ToEUR() = %s, want %s", got, want)
	}

	// EUR input is returned as-is, even on a date the table does not cover.
	got, err = tbl.ToEUR(finreport.M(42, finreport.EUR), date.New(1999, time.January, 1))
	if err != nil {
		t.Fatalf("ToEUR(EUR) error = %v", err)
	}
	if want := finreport.M(42, finreport.EUR); !got.Equal(want) {
		t.Errorf("ToEUR(EUR) = %s, want %s", got, want)
	}
}

func TestToEUR_QuantizesToCents(t *testing.T) {
	tbl := table(t)
	got, err := tbl.ToEUR(finreport.M(100, "JPY"), date.New(2024, time.March, 8))
	if err != nil {
		t.Fatalf("ToEUR() error = %v", err)
	}
	// 100 / 160.55 = 0.62285...
	if want := finreport.M(0.62, finreport.EUR); !got.Equal(want) {
		t.Errorf("ToEUR() = %s, want %s", got, want)
	}
}

func TestFromEUR_RoundTripWithinACent(t *testing.T) {
	tbl := table(t)
	on := date.New(2024, time.March, 8)

	usd, err := tbl.FromEUR(finreport.M(100, finreport.EUR), "USD", on)
	if err != nil {
		t.Fatalf("FromEUR() error = %v", err)
	}
	back, err := tbl.ToEUR(usd, on)
	if err != nil {
		t.Fatalf("ToEUR() error = %v", err)
	}
	diff := back.Sub(finreport.M(100, finreport.EUR))
	if diff.Amount().Abs().GreaterThan(decimal.RequireFromString("0.01")) {
		t.Errorf("round trip drifted by %s", diff)
	}
}

func TestCache_LoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.csv")
	if err := os.WriteFile(path, []byte(ratesCSV), 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache()
	first, err := cache.Table(path)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	// A later rewrite must not be observed: the first load wins.
	if err := os.WriteFile(path, []byte("Date,USD,\n2024-03-08,2.0,\n"), 0644); err != nil {
		t.Fatal(err)
	}
	second, err := cache.Table(path)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if first != second {
		t.Error("cache returned a different table for the same path")
	}
}
