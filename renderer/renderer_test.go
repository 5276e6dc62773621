package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/finreport/finreport"
)

func operations(t *testing.T) []finreport.Operation {
	t.Helper()
	asset, err := finreport.NewAsset("Microsoft", "US5949181045", "MSFT")
	if err != nil {
		t.Fatal(err)
	}
	buy, err := finreport.NewBuy(asset, finreport.M(300, finreport.EUR), finreport.Q(10), finreport.M(1, finreport.EUR),
		time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	sell, err := finreport.NewSell(asset, finreport.M(350, finreport.EUR), finreport.Q(10), finreport.M(1, finreport.EUR), finreport.Money{},
		time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	return []finreport.Operation{
		buy, sell,
		finreport.Interest{
			Gross:  finreport.M(4.10, finreport.EUR),
			Tax:    finreport.M(0.78, finreport.EUR),
			Date:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			Source: "Revolut Savings",
		},
	}
}

func TestTradingMarkdown(t *testing.T) {
	report := finreport.NewTradingPerformance(operations(t), 2024)
	md := TradingMarkdown(report)

	for _, want := range []string{
		"# Trading Report 2024",
		"Microsoft (US5949181045)",
		"+€499.00", // (350-300)*10 - 1
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q:\n%s", want, md)
		}
	}
}

func TestTradingMarkdown_Empty(t *testing.T) {
	report := finreport.NewTradingPerformance(nil, 2024)
	if md := TradingMarkdown(report); !strings.Contains(md, "No realized trades") {
		t.Errorf("empty report markdown = %q", md)
	}
}

func TestSavingMarkdown(t *testing.T) {
	report := finreport.NewSavingPerformance(operations(t), 2024)
	md := SavingMarkdown(report)

	for _, want := range []string{
		"# Passive Income Report 2024",
		"Revolut Savings",
		"€4.10",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q:\n%s", want, md)
		}
	}
}

func TestRawMarkdown_SortsChronologically(t *testing.T) {
	md := RawMarkdown(operations(t))
	if strings.Index(md, "Bought") > strings.Index(md, "Sold") {
		t.Errorf("operations not in chronological order:\n%s", md)
	}
}

func TestHTML(t *testing.T) {
	report := finreport.NewTradingPerformance(operations(t), 2024)
	html, err := HTML(TradingMarkdown(report))
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<table>", "Microsoft"} {
		if !strings.Contains(html, want) {
			t.Errorf("html misses %q", want)
		}
	}
}
