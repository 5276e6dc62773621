package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/finreport/finreport"
)

func SavingMarkdown(report *finreport.SavingPerformance) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Passive Income Report %d\n\n", report.Year)

	if len(report.Records) == 0 {
		fmt.Fprintln(&b, "No dividend or interest income this year.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Kind | Source | Gross | Tax |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|")
	for _, record := range report.Records {
		var source string
		var gross, tax finreport.Money
		switch v := record.(type) {
		case finreport.Dividend:
			source, gross, tax = v.Asset.String(), v.Gross, v.Tax
		case finreport.Interest:
			source, gross, tax = v.Source, v.Gross, v.Tax
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			record.When().Format(time.DateOnly),
			record.Kind(),
			source,
			gross,
			tax,
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | **%s** |\n", report.Total, report.Tax)

	return b.String()
}
