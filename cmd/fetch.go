package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/vitals"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	output string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches the daily collections and writes them as CSV" }
func (*fetchCmd) Usage() string {
	return `vtl -token <token> [-from <date>] [-to <date>] fetch [-o <file>]

Fetches the daily sleep, activity and readiness collections of the Oura API,
merges them by day and writes the unified table as CSV.

The file can be analysed later with 'vtl -csv <file> <view>'.
A domain that cannot be fetched is reported and left out of the table.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "-", "Output CSV file, '-' for stdout")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := loadDataset(ctx)
	if err != nil {
		return failure(err)
	}
	if err := c.write(ds.Table); err != nil {
		return failure(err)
	}
	if c.output != "-" {
		fmt.Fprintf(os.Stderr, "Successfully wrote %d days to %s\n", ds.Table.Len(), c.output)
	}
	return subcommands.ExitSuccess
}

// write encodes t into the output file.
func (c *fetchCmd) write(t *vitals.Table) (err error) {
	var w io.Writer = os.Stdout
	if c.output != "-" {
		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return vitals.EncodeCSV(w, t)
}
