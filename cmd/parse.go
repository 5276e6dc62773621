package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/brokers"
	"github.com/google/subcommands"
)

type parseCmd struct {
	kind       string
	path       string
	sep        string
	cashPath   string
	tradesPath string
	ratesFile  string
	output     string
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parse one platform export into normalized operations" }
func (*parseCmd) Usage() string {
	return `finreport parse -type <platform> -path <file-or-dir> [-o <file>]

  Parses a platform export and writes the normalized operations as JSONL,
  one operation per line, to stdout or to the -o file. The result is the
  input of the gains and income commands.

Usage Examples:
# Parse a Trade Republic export folder.
$ finreport parse -type traderepublic -path exports/tr/ -o tr.jsonl

# XTB ships two files.
$ finreport parse -type xtb -cash cash.csv -trades trades.csv -o xtb.jsonl

`
}

func (p *parseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.kind, "type", "", "Platform type (traderepublic, xtb, revolut, binance, bingx, bitget, manualinterest)")
	f.StringVar(&p.path, "path", "", "Export file or directory")
	f.StringVar(&p.sep, "sep", "", "CSV field separator, platform default when empty")
	f.StringVar(&p.cashPath, "cash", "", "Cash operations export (xtb)")
	f.StringVar(&p.tradesPath, "trades", "", "Closed trades export (xtb)")
	f.StringVar(&p.ratesFile, "rates", defaultRatesFile(), "Exchange rate history CSV")
	f.StringVar(&p.output, "o", "", "Output file, stdout when empty")
}

func (p *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := brokers.Config{Path: p.path, Sep: p.sep, CashPath: p.cashPath, TradesPath: p.tradesPath}

	// Only some platforms need rates; EUR-only parsing works without a rate
	// table on disk, so an unavailable table is a warning here.
	rates, err := rateCache.Table(p.ratesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: rate table unavailable: %v\n", err)
		rates = nil
	}

	parser, err := brokers.New(p.kind, cfg, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ops, err := parser.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s export: %v\n", parser.Name(), err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if p.output != "" {
		out, err = os.Create(p.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", p.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}
	if err := finreport.EncodeOperations(out, finreport.SortOperations(ops)); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding operations: %v\n", err)
		return subcommands.ExitFailure
	}
	if p.output != "" {
		fmt.Printf("Wrote %d operations to %s\n", len(ops), p.output)
	}
	return subcommands.ExitSuccess
}
