// Package brokers parses platform-specific transaction export files into
// normalized finreport operations.
//
// Each supported platform has its own CSV dialect; the parsers here absorb
// those differences and emit operations already normalized to EUR. Parsers
// that read exports quoted in foreign currencies convert amounts with the
// historical rate table at each row's date, so downstream processors never
// see anything but EUR.
package brokers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/fx"
)

// Config holds the source location settings of one configured input.
type Config struct {
	Path       string `yaml:"path"`        // single file or directory
	Glob       string `yaml:"glob"`        // filename pattern within a directory
	Sep        string `yaml:"sep"`         // CSV field separator
	CashPath   string `yaml:"cash_path"`   // xtb: cash operations export
	TradesPath string `yaml:"trades_path"` // xtb: closed trades export
}

func (c Config) sep() rune {
	if c.Sep == "" {
		return ';'
	}
	return []rune(c.Sep)[0]
}

// files resolves the configured path to the list of export files to parse.
func (c Config) files() ([]string, error) {
	info, err := os.Stat(c.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot access export path %q: %w", c.Path, err)
	}
	if !info.IsDir() {
		return []string{c.Path}, nil
	}
	glob := c.Glob
	if glob == "" {
		glob = "*.csv"
	}
	matches, err := filepath.Glob(filepath.Join(c.Path, glob))
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", glob, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no export files matching %q in %q", glob, c.Path)
	}
	return matches, nil
}

// Parser is a data-source adapter: it reads one platform's export files and
// returns the normalized operations they contain.
type Parser interface {
	Name() string
	Parse() ([]finreport.Operation, error)
}

// New instantiates a parser by its configured type name. Parsers for
// platforms that quote in foreign currencies need the historical rate table.
func New(kind string, cfg Config, rates *fx.Table) (Parser, error) {
	switch kind {
	case "traderepublic":
		return &TradeRepublic{cfg: cfg}, nil
	case "binance":
		return &Binance{cfg: cfg}, nil
	case "bingx":
		if rates == nil {
			return nil, fmt.Errorf("parser %q needs an fx rate table", kind)
		}
		return &BingX{cfg: cfg, rates: rates}, nil
	case "bitget":
		if rates == nil {
			return nil, fmt.Errorf("parser %q needs an fx rate table", kind)
		}
		return &Bitget{cfg: cfg, rates: rates}, nil
	case "revolut":
		return &Revolut{cfg: cfg}, nil
	case "xtb":
		return &XTB{cfg: cfg}, nil
	case "manualinterest":
		return &ManualInterest{cfg: cfg, rates: rates}, nil
	default:
		return nil, fmt.Errorf("unknown parser type %q", kind)
	}
}
