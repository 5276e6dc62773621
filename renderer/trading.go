// Package renderer produces the human-readable report documents out of the
// computed performance structures. The primary output format is markdown; an
// HTML conversion is available for reports meant to be archived or shared.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/finreport/finreport"
)

func TradingMarkdown(report *finreport.TradingPerformance) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Trading Report %d\n\n", report.Year)

	if len(report.Assets) == 0 {
		fmt.Fprintln(&b, "No realized trades this year.")
		return b.String()
	}

	fmt.Fprint(&b, "## Realized P/L per Asset\n\n")
	fmt.Fprintln(&b, "| Asset | Trades | Total Buy | Total Sell | P/L |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, a := range report.Assets {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			a.Asset,
			len(a.Trades),
			a.TotalBuy,
			a.TotalSell,
			a.PNL.SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** |\n\n", report.Total().SignedString())

	for _, a := range report.Assets {
		fmt.Fprintf(&b, "## %s\n\n", a.Asset)
		fmt.Fprintln(&b, "| Bought | Sold | Quantity | Buy Price | Sell Price | P/L |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
		for _, tr := range a.Trades {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				tr.Buy.Date.Format(time.DateOnly),
				tr.Sell.Date.Format(time.DateOnly),
				tr.Buy.Quantity,
				tr.Buy.UnitPrice,
				tr.Sell.UnitPrice,
				tr.PNL.SignedString(),
			)
		}
		fmt.Fprintln(&b)
		if !a.Unmatched.IsZero() {
			fmt.Fprintf(&b, "> %s sold units had no matching purchase on record.\n\n", a.Unmatched)
		}
	}

	return b.String()
}
