// Package cmd implements the CLI application that turns broker exports into
// yearly tax reports.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/finreport/finreport"
	"github.com/finreport/finreport/fx"
	"github.com/google/subcommands"
)

// Commands lists every subcommand in registration order.
var Commands = []subcommands.Command{
	&parseCmd{},
	&reportCmd{},
	&gainsCmd{},
	&incomeCmd{},
	&fxCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// share one rate cache across commands.
var rateCache = fx.NewCache()

// envOr returns the value of an environment variable, or a fallback. A .env
// file next to the working directory is loaded at startup.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// defaultRatesFile is where commands look for the rate history unless told
// otherwise.
func defaultRatesFile() string {
	return envOr("FINREPORT_RATES", "rates.csv")
}

// readOperations loads and merges the JSONL operation files given as command
// arguments.
func readOperations(paths []string) ([]finreport.Operation, error) {
	var ops []finreport.Operation
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open operations file: %w", err)
		}
		fileOps, err := finreport.DecodeOperations(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ops = append(ops, fileOps...)
	}
	return ops, nil
}

// writeDocument writes a report to a file, or prints it nicely to the
// terminal when no output file is configured.
func writeDocument(output, content string) subcommands.ExitStatus {
	if output == "" {
		printMarkdown(content)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(output, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s\n", output)
	return subcommands.ExitSuccess
}

// defaultYear is the default reporting year. Tax declarations cover the
// previous calendar year, not the running one.
func defaultYear() int {
	return time.Now().Year() - 1
}
