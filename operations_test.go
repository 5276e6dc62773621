package finreport

import (
	"testing"
	"time"
)

func TestNewBuy_RejectsNonPositiveQuantity(t *testing.T) {
	for _, quantity := range []Quantity{q(0), q(-1)} {
		if _, err := NewBuy(eth, eur(100), quantity, Money{}, day(2024, time.January, 1)); err == nil {
			t.Errorf("NewBuy(quantity=%s) expected an error", quantity)
		}
	}
}

func TestNewSell_RejectsNonPositiveQuantity(t *testing.T) {
	if _, err := NewSell(eth, eur(100), q(0), Money{}, Money{}, day(2024, time.January, 1)); err == nil {
		t.Error("NewSell(quantity=0) expected an error")
	}
}

func TestSortOperations_ChronologicalAndStable(t *testing.T) {
	on := day(2024, time.March, 8)
	divA := Dividend{Asset: eth, Gross: eur(1), Date: on}
	divB := Dividend{Asset: btc, Gross: eur(2), Date: on}
	ops := []Operation{
		Interest{Gross: eur(1), Date: on},
		divB,
		sell(t, eth, eur(110), q(1), Money{}, Money{}, on),
		divA,
		buy(t, eth, eur(100), q(1), Money{}, day(2024, time.March, 7)),
		buy(t, eth, eur(105), q(1), Money{}, on),
	}

	sorted := SortOperations(ops)

	kinds := make([]OpKind, len(sorted))
	for i, op := range sorted {
		kinds[i] = op.Kind()
	}
	want := []OpKind{KindBuy, KindBuy, KindSell, KindDividend, KindDividend, KindInterest}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	// Stability: the two same-day dividends keep their declaration order.
	if !sorted[3].(Dividend).Gross.Equal(divB.Gross) {
		t.Error("same-timestamp dividends were reordered")
	}
	// Inputs are untouched.
	if ops[0].Kind() != KindInterest {
		t.Error("SortOperations reordered its input slice")
	}
}
