package finreport

import (
	"testing"
	"time"
)

func TestSavingPerformance_SumsDividendsAndInterests(t *testing.T) {
	ops := []Operation{
		Dividend{Asset: msf, Gross: eur(12.50), Tax: eur(1.85), Date: day(2024, time.March, 14)},
		Interest{Gross: eur(4.10), Tax: eur(0.78), Date: day(2024, time.April, 1), Source: "Revolut Savings"},
		Interest{Gross: eur(2), Date: day(2024, time.May, 1), Source: "XTB"},
	}

	report := NewSavingPerformance(ops, 2024)

	if want := eur(18.60); !report.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", report.Total, want)
	}
	if want := eur(2.63); !report.Tax.Equal(want) {
		t.Errorf("Tax = %s, want %s", report.Tax, want)
	}
	if len(report.Records) != 3 {
		t.Errorf("Records = %d, want 3", len(report.Records))
	}
}

func TestSavingPerformance_FiltersByYear(t *testing.T) {
	ops := []Operation{
		Interest{Gross: eur(10), Date: day(2023, time.December, 31), Source: "XTB"},
		Interest{Gross: eur(20), Date: day(2024, time.January, 1), Source: "XTB"},
		Dividend{Asset: msf, Gross: eur(5), Date: day(2025, time.January, 1)},
	}

	report := NewSavingPerformance(ops, 2024)

	if want := eur(20); !report.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", report.Total, want)
	}
	if len(report.Records) != 1 {
		t.Errorf("Records = %d, want 1", len(report.Records))
	}
}

func TestSavingPerformance_IgnoresTrading(t *testing.T) {
	ops := []Operation{
		buy(t, eth, eur(100), q(1), Money{}, day(2024, time.January, 1)),
		sell(t, eth, eur(150), q(1), Money{}, Money{}, day(2024, time.June, 1)),
	}

	report := NewSavingPerformance(ops, 2024)

	if !report.Total.IsZero() {
		t.Errorf("Total = %s, want 0", report.Total)
	}
	if len(report.Records) != 0 {
		t.Errorf("Records = %d, want 0", len(report.Records))
	}
}

func TestSavingPerformance_RecordsSortedByDate(t *testing.T) {
	ops := []Operation{
		Interest{Gross: eur(2), Date: day(2024, time.June, 1), Source: "B"},
		Interest{Gross: eur(1), Date: day(2024, time.January, 1), Source: "A"},
	}

	report := NewSavingPerformance(ops, 2024)

	if len(report.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(report.Records))
	}
	if got := report.Records[0].(Interest).Source; got != "A" {
		t.Errorf("Records[0].Source = %q, want %q", got, "A")
	}
}
