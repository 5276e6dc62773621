package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/brokers"
	"github.com/finreport/finreport/renderer"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

// pipelineConfig is the YAML description of a full reporting run: which
// exports to parse and what to produce from them.
type pipelineConfig struct {
	Year    int            `yaml:"year"`
	Rates   string         `yaml:"rates"`
	Output  string         `yaml:"output"` // .html extension switches the format
	Sources []sourceConfig `yaml:"sources"`
}

type sourceConfig struct {
	Type           string `yaml:"type"`
	brokers.Config `yaml:",inline"`
}

type reportCmd struct {
	configFile string
	raw        bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "run the whole pipeline from a configuration file" }
func (*reportCmd) Usage() string {
	return `finreport report -c <config.yaml>

  Parses every configured export, merges the operations and writes the
  trading and passive income reports for the configured year.

  Configuration example:

    year: 2024
    rates: rates.csv
    output: report-2024.md
    sources:
      - type: traderepublic
        path: exports/tr/
      - type: xtb
        cash_path: exports/xtb-cash.csv
        trades_path: exports/xtb-trades.csv
      - type: bingx
        path: exports/bingx/
        sep: ","

`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.configFile, "c", "finreport.yaml", "Pipeline configuration file")
	f.BoolVar(&p.raw, "raw", false, "Append the normalized operation list to the report")
}

func (p *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadPipelineConfig(p.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	// A missing rate table only matters for sources that need one; those
	// fail with a clear message at construction.
	rates, err := rateCache.Table(cfg.Rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: rate table unavailable: %v\n", err)
		rates = nil
	}

	var ops []finreport.Operation
	for _, src := range cfg.Sources {
		parser, err := brokers.New(src.Type, src.Config, rates)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		srcOps, err := parser.Parse()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s export: %v\n", parser.Name(), err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "%s: %d operations\n", parser.Name(), len(srcOps))
		ops = append(ops, srcOps...)
	}

	var b strings.Builder
	b.WriteString(renderer.TradingMarkdown(finreport.NewTradingPerformance(ops, cfg.Year)))
	b.WriteString("\n")
	b.WriteString(renderer.SavingMarkdown(finreport.NewSavingPerformance(ops, cfg.Year)))
	if p.raw {
		b.WriteString("\n")
		b.WriteString(renderer.RawMarkdown(ops))
	}

	content := b.String()
	if strings.HasSuffix(cfg.Output, ".html") {
		if content, err = renderer.HTML(content); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return writeDocument(cfg.Output, content)
}

func loadPipelineConfig(path string) (*pipelineConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read configuration: %w", err)
	}
	cfg := &pipelineConfig{Year: defaultYear(), Rates: defaultRatesFile()}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("configuration %q declares no sources", path)
	}
	return cfg, nil
}
