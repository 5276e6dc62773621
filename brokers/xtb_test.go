package brokers

import (
	"strings"
	"testing"
	"time"

	"github.com/finreport/finreport"
)

func TestXTB_CashGroupsInterestAndDividends(t *testing.T) {
	in := `ID;Type;Time;Comment;Symbol;Amount
1;Free-funds Interest;02/01/2024 10:00:00;Free-funds interest;;1,50
2;Free-funds Interest Tax;02/01/2024 10:00:05;Free-funds interest tax;;-0,29
3;DIVIDENT;15/03/2024 12:00:00;MSFT.US dividend;MSFT.US;10,00
4;Withholding Tax;15/03/2024 12:00:03;MSFT.US withholding;MSFT.US;-1,50
5;Deposit;20/03/2024 09:00:00;wire;;500,00
`
	p := &XTB{}
	ops, err := p.parseCash(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCash() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("parsed %d operations, want 2 (deposits skipped)", len(ops))
	}

	i := ops[0].(finreport.Interest)
	if !i.Gross.Equal(eur(t, "1.50")) {
		t.Errorf("interest gross = %s, want %s", i.Gross, eur(t, "1.50"))
	}
	if !i.Tax.Equal(eur(t, "0.29")) {
		t.Errorf("interest tax = %s, want %s", i.Tax, eur(t, "0.29"))
	}
	if i.Source != "XTB" {
		t.Errorf("interest source = %q", i.Source)
	}

	d := ops[1].(finreport.Dividend)
	if d.Asset.Name != "MSFT.US" {
		t.Errorf("dividend asset = %q", d.Asset.Name)
	}
	if !d.Gross.Equal(eur(t, "10")) {
		t.Errorf("dividend gross = %s, want %s", d.Gross, eur(t, "10"))
	}
	if !d.Tax.Equal(eur(t, "1.50")) {
		t.Errorf("dividend tax = %s, want %s", d.Tax, eur(t, "1.50"))
	}
}

func TestXTB_CashRowsBeyondThresholdSplit(t *testing.T) {
	// Two payouts 11 seconds apart are distinct movements.
	in := `ID;Type;Time;Comment;Symbol;Amount
1;Free-funds Interest;02/01/2024 10:00:00;interest;;1,00
2;Free-funds Interest;02/01/2024 10:00:11;interest;;2,00
`
	p := &XTB{}
	ops, err := p.parseCash(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCash() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("parsed %d operations, want 2", len(ops))
	}
}

func TestXTB_Trades(t *testing.T) {
	in := `Nombre;ISIN;Ticker;Volumen;Posición;Compra;;Venta;;Comisión transacción;Rollovers;Swaps;Impuesto sobre transacciones financieras o similares;Resultado neto
;;;;;Fecha;Importe transacción (EUR);Fecha;Importe transacción (EUR);(EUR);(EUR);(EUR);(EUR);(EUR)
Apple;US0378331005;AAPL.US;10;Alcista;02/01/2024;1.500,00;15/03/2024;1.800,00;5,00;0,00;0,00;2,50;295,00
`
	p := &XTB{}
	ops, err := p.parseTrades(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("parsed %d operations, want a buy/sell pair", len(ops))
	}

	b := ops[0].(finreport.BuyOperation)
	if !b.UnitPrice.Equal(eur(t, "150")) {
		t.Errorf("buy unit price = %s, want %s", b.UnitPrice, eur(t, "150"))
	}
	if b.Asset.ISIN != "US0378331005" {
		t.Errorf("buy ISIN = %q", b.Asset.ISIN)
	}
	if want := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC); !b.Date.Equal(want) {
		t.Errorf("buy date = %s, want %s", b.Date, want)
	}

	s := ops[1].(finreport.SellOperation)
	if !s.UnitPrice.Equal(eur(t, "180")) {
		t.Errorf("sell unit price = %s, want %s", s.UnitPrice, eur(t, "180"))
	}
	if !s.Commission.Equal(eur(t, "5")) {
		t.Errorf("sell commission = %s, want %s", s.Commission, eur(t, "5"))
	}
	if !s.Tax.Equal(eur(t, "2.50")) {
		t.Errorf("sell tax = %s, want %s", s.Tax, eur(t, "2.50"))
	}
}

func TestXTB_TradesShortPositionSwapsDates(t *testing.T) {
	in := `Nombre;ISIN;Ticker;Volumen;Posición;Compra;;Venta;;Comisión transacción;Rollovers;Swaps;Impuesto sobre transacciones financieras o similares;Resultado neto
;;;;;Fecha;Importe transacción (EUR);Fecha;Importe transacción (EUR);(EUR);(EUR);(EUR);(EUR);(EUR)
Gold;;GOLD;1;Bajista;15/03/2024;90,00;02/01/2024;100,00;0,00;0,00;0,00;0,00;10,00
`
	p := &XTB{}
	ops, err := p.parseTrades(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseTrades() error = %v", err)
	}
	b := ops[0].(finreport.BuyOperation)
	s := ops[1].(finreport.SellOperation)
	if !b.Date.Before(s.Date) {
		t.Errorf("buy date %s should precede sell date %s", b.Date, s.Date)
	}
}

func TestXTB_TradesRejectsInconsistentNetResult(t *testing.T) {
	in := `Nombre;ISIN;Ticker;Volumen;Posición;Compra;;Venta;;Comisión transacción;Rollovers;Swaps;Impuesto sobre transacciones financieras o similares;Resultado neto
;;;;;Fecha;Importe transacción (EUR);Fecha;Importe transacción (EUR);(EUR);(EUR);(EUR);(EUR);(EUR)
Apple;US0378331005;AAPL.US;10;Alcista;02/01/2024;1.500,00;15/03/2024;1.800,00;5,00;0,00;0,00;0,00;999,00
`
	p := &XTB{}
	if _, err := p.parseTrades(strings.NewReader(in)); err == nil {
		t.Error("expected an error for a net result that does not add up")
	}
}
