package finreport

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeOperations(t *testing.T) {
	ops := []Operation{
		buy(t, msf, eur(300.50), q(10), eur(1), day(2024, time.January, 2)),
		sell(t, msf, eur(350), q(10), eur(1), eur(2.50), day(2024, time.June, 2)),
		Dividend{Asset: msf, Gross: eur(12.50), Tax: eur(1.85), Date: day(2024, time.March, 14)},
		Interest{Gross: eur(4.10), Date: day(2024, time.April, 1), Source: "Revolut Savings"},
	}

	var buf bytes.Buffer
	if err := EncodeOperations(&buf, ops); err != nil {
		t.Fatalf("EncodeOperations() error = %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != len(ops) {
		t.Errorf("encoded %d lines, want %d", got, len(ops))
	}

	decoded, err := DecodeOperations(&buf)
	if err != nil {
		t.Fatalf("DecodeOperations() error = %v", err)
	}
	if len(decoded) != len(ops) {
		t.Fatalf("decoded %d operations, want %d", len(decoded), len(ops))
	}
	for i := range ops {
		if decoded[i].Kind() != ops[i].Kind() {
			t.Errorf("decoded[%d].Kind() = %s, want %s", i, decoded[i].Kind(), ops[i].Kind())
		}
		if !decoded[i].When().Equal(ops[i].When()) {
			t.Errorf("decoded[%d].When() = %s, want %s", i, decoded[i].When(), ops[i].When())
		}
	}
	s := decoded[1].(SellOperation)
	if !s.UnitPrice.Equal(eur(350)) || !s.Tax.Equal(eur(2.50)) {
		t.Errorf("decoded sell = %+v", s)
	}
}

func TestDecodeOperations_RejectsUnknownKind(t *testing.T) {
	in := strings.NewReader(`{"kind":"transfer","date":"2024-01-01T00:00:00Z"}` + "\n")
	if _, err := DecodeOperations(in); err == nil {
		t.Error("expected an error for unknown kind")
	}
}

func TestDecodeOperations_ValidatesQuantity(t *testing.T) {
	in := strings.NewReader(`{"kind":"buy","date":"2024-01-01T00:00:00Z","asset":{"name":"X"},"unitPrice":{"amount":1,"currency":"EUR"},"quantity":0}` + "\n")
	if _, err := DecodeOperations(in); err == nil {
		t.Error("expected an error for zero quantity")
	}
}
