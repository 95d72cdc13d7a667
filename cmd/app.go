// Package cmd implements the vtl CLI application: it loads Oura health data from a CSV export or
// the Oura API and prints sleep, activity and readiness analyses.
package cmd

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/etnz/vitals/ouraapi"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// EnvToken is the environment variable read when -token is not set.
const EnvToken = "VITALS_API_TOKEN"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	csvFile    = flag.String("csv", "", "Oura CSV export to analyse instead of fetching from the API")
	apiToken   = flag.String("token", "", "Oura personal access token, defaults to $"+EnvToken+" then the config file")
	fromDate   = flag.String("from", "", "First day to fetch from the API, defaults to 'days' before -to")
	toDate     = flag.String("to", "", "Last day to fetch from the API, defaults to today")
	configFile = flag.String("config", DefaultConfigPath(), "Path to the YAML config file")
	plain      = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

	// Verbose enables debug logs.
	Verbose = flag.Bool("v", false, "Verbose logging")
)

// session holds the dataset currently analysed.
var session vitals.Session

// errNoSource is returned when neither a CSV file nor an API token is available.
var errNoSource = errors.New("no data source: use -csv <file>, -token <token> or $" + EnvToken)

// groups lists the subcommands, by group.
var groups = []struct {
	name     string
	commands []subcommands.Command
}{
	{"views", []subcommands.Command{overviewCmd, sleepCmd, activityCmd, readinessCmd, &trendsCmd{}}},
	{"data", []subcommands.Command{&fetchCmd{}}},
	{"assistant", []subcommands.Command{&assistCmd{}}},
	{"documentation", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	for _, g := range groups {
		for _, sub := range g.commands {
			c.Register(sub, g.name)
		}
	}
}

// loadDataset loads the dataset selected by the common flags into the session.
func loadDataset(ctx context.Context) (*vitals.Dataset, error) {
	if *csvFile != "" {
		t, err := readCSV(*csvFile)
		if err != nil {
			return nil, err
		}
		return session.Replace(t, vitals.FromFile), nil
	}

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	token := cmp.Or(*apiToken, os.Getenv(EnvToken), cfg.Token)
	if token == "" {
		return nil, errNoSource
	}
	r, err := period(*fromDate, *toDate, cfg.Days, date.Today())
	if err != nil {
		return nil, err
	}
	log.Debug().Stringer("range", r).Msg("fetching from the Oura API")
	t, err := ouraapi.Load(ctx, cfg.client(token), r)
	if err != nil {
		return nil, err
	}
	return session.Replace(t, vitals.FromAPI), nil
}

// readCSV decodes the CSV file at path.
func readCSV(path string) (*vitals.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open CSV file: %w", err)
	}
	defer f.Close()
	t, err := vitals.DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV file %q: %w", path, err)
	}
	log.Debug().Str("file", path).Int("days", t.Len()).Strs("dropped", t.Dropped()).Msg("CSV loaded")
	return t, nil
}

// period returns the range to fetch. An empty 'to' is today, an empty 'from' is 'days' days
// before 'to'.
func period(from, to string, days int, today date.Date) (date.Range, error) {
	end := today
	if to != "" {
		var err error
		if end, err = date.Parse(to); err != nil {
			return date.Range{}, fmt.Errorf("invalid -to: %w", err)
		}
	}
	if from == "" {
		return date.LastDays(end, days), nil
	}
	start, err := date.Parse(from)
	if err != nil {
		return date.Range{}, fmt.Errorf("invalid -from: %w", err)
	}
	return date.NewRange(start, end), nil
}

// failure prints err and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, errNoSource) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
