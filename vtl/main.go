// Command vtl analyses Oura ring sleep, activity and readiness data.
//
//	vtl -csv export.csv sleep
//	vtl -token <token> -from 2024-01-01 trends -x sleep_score -y readiness_score
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/vitals/cmd"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	// Answers the shell completion requests, and exits.
	cmd.Completion(flag.CommandLine).Complete(name)

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *cmd.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	os.Exit(int(commander.Execute(context.Background())))
}
