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

type incomeCmd struct {
	year   int
	output string
	html   bool
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "passive income report for a year" }
func (*incomeCmd) Usage() string {
	return `finreport income [-year <year>] <operations.jsonl>...

  Sums the dividend and interest payments dated in the given year, with
  their withheld taxes.

Usage Examples:
$ finreport income -year 2024 tr.jsonl revolut.jsonl

`
}

func (p *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.year, "year", defaultYear(), "Reporting year")
	f.StringVar(&p.output, "o", "", "Output file, pretty-printed to the terminal when empty")
	f.BoolVar(&p.html, "html", false, "Write HTML instead of markdown")
}

func (p *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no operations files given")
		return subcommands.ExitUsageError
	}
	ops, err := readOperations(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report := finreport.NewSavingPerformance(ops, p.year)
	md := renderer.SavingMarkdown(report)
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
