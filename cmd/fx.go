package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/date"
	"github.com/finreport/finreport/fx"
	"github.com/google/subcommands"
)

type fxCmd struct {
	ratesFile string
	on        string
	update    bool
	feed      string
}

func (*fxCmd) Name() string     { return "fx" }
func (*fxCmd) Synopsis() string { return "convert currencies and update the rate history" }
func (*fxCmd) Usage() string {
	return `finreport fx [-table <rates.csv>] [-on <date>] <amount> <currency>
finreport fx -update [-table <rates.csv>]

  Converts an amount into EUR at a historical daily rate, or fetches the
  latest daily quotes into the rate history file.

Usage Examples:
# What were 100 US dollars worth on new year's eve?
$ finreport fx -on 2024-12-31 100 USD

# Refresh the table with today's quotes.
$ finreport fx -update

`
}

func (p *fxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ratesFile, "table", defaultRatesFile(), "Exchange rate history CSV")
	f.StringVar(&p.on, "on", "", "Conversion date, today when empty")
	f.BoolVar(&p.update, "update", false, "Fetch the latest daily rates into the table")
	f.StringVar(&p.feed, "feed", fx.DefaultFeedURL, "Rate feed URL")
}

func (p *fxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.update {
		return p.runUpdate()
	}
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <amount> <currency>")
		return subcommands.ExitUsageError
	}

	amount, err := finreport.ParseMoney(f.Arg(0), f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := finreport.ValidateCurrency(f.Arg(1)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if amount.Currency() == finreport.EUR {
		fmt.Printf("%s = %s\n", amount, amount)
		return subcommands.ExitSuccess
	}

	on := date.Today()
	if p.on != "" {
		if on, err = date.Parse(p.on); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	table, err := rateCache.Table(p.ratesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	converted, err := table.ToEUR(amount, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// Report the quote date actually used, weekends resolve backwards.
	_, effective, err := table.Rate(amount.Currency(), on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s = %s (rate of %s)\n", amount, converted, effective)
	return subcommands.ExitSuccess
}

func (p *fxCmd) runUpdate() subcommands.ExitStatus {
	client := &http.Client{Timeout: 30 * time.Second}
	on, rates, err := fx.Fetch(client, p.feed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rates: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := fx.UpdateFile(p.ratesFile, on, rates); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating %q: %v\n", p.ratesFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %s with %d rates for %s\n", p.ratesFile, len(rates), on)
	return subcommands.ExitSuccess
}
