package finreport

// SavingPerformance is the passive income report for one year: every dividend
// and interest payment dated in the year, with gross and tax totals.
type SavingPerformance struct {
	Year    int
	Total   Money // sum of gross amounts, EUR
	Tax     Money // sum of withheld taxes, EUR
	Records []Operation
}

// NewSavingPerformance filters dividend and interest operations to the target
// year and sums their gross EUR amounts. Records are returned sorted by date.
func NewSavingPerformance(ops []Operation, year int) *SavingPerformance {
	report := &SavingPerformance{
		Year:  year,
		Total: M(0, EUR),
		Tax:   M(0, EUR),
	}

	for _, op := range SortOperations(ops) {
		switch v := op.(type) {
		case Dividend:
			if v.Date.Year() != year {
				continue
			}
			report.Total = report.Total.Add(v.Gross)
			report.Tax = report.Tax.Add(v.Tax)
			report.Records = append(report.Records, v)
		case Interest:
			if v.Date.Year() != year {
				continue
			}
			report.Total = report.Total.Add(v.Gross)
			report.Tax = report.Tax.Add(v.Tax)
			report.Records = append(report.Records, v)
		case BuyOperation, SellOperation:
			// trading, handled by NewTradingPerformance
		}
	}
	return report
}
