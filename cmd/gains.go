package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/renderer"
	"github.com/google/subcommands"
)

type gainsCmd struct {
	year   int
	output string
	html   bool
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized profit and loss report for a year" }
func (*gainsCmd) Usage() string {
	return `finreport gains [-year <year>] <operations.jsonl>...

  Computes the realized profit and loss per asset for the given year using
  first-in-first-out lot matching over the normalized operations. Feed the
  full multi-year history: purchases from earlier years still back this
  year's sales.

Usage Examples:
# Report on last year's trades across all platforms.
$ finreport gains tr.jsonl xtb.jsonl binance.jsonl

`
}

func (p *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", defaultYear(), "Reporting year")
	f.StringVar(&p.output, "o", "", "Output file, pretty-printed to the terminal when empty")
	f.BoolVar(&p.html, "html", false, "Write HTML instead of markdown")
}

func (p *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no operations files given")
		return subcommands.ExitUsageError
	}
	ops, err := readOperations(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report := finreport.NewTradingPerformance(ops, p.year)
	md := renderer.TradingMarkdown(report)
	if p.html {
		html, err := renderer.HTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return writeDocument(p.output, html)
	}
	return writeDocument(p.output, md)
}
