package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/finreport/finreport/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A .env file can hold FINREPORT_RATES and friends; absence is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	// Shell completion: invoked by the completion hook, exits early when
	// COMP_LINE is set, a no-op otherwise.
	completer()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completer() {
	jsonl := predict.Files("*.jsonl")
	csv := predict.Files("*.csv")
	complete.Complete("finreport", &complete.Command{
		Sub: map[string]*complete.Command{
			"parse": {Flags: map[string]complete.Predictor{
				"type":   predict.Set{"traderepublic", "xtb", "revolut", "binance", "bingx", "bitget", "manualinterest"},
				"path":   predict.Files("*"),
				"cash":   csv,
				"trades": csv,
				"rates":  csv,
				"o":      jsonl,
			}},
			"report": {Flags: map[string]complete.Predictor{
				"c": predict.Files("*.yaml"),
			}},
			"gains":  {Args: jsonl},
			"income": {Args: jsonl},
			"fx":     {Flags: map[string]complete.Predictor{"table": csv}},
			"topic":  {Args: predict.Set{"readme", "matching", "rates", "sources"}},
		},
	})
}
