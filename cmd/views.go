package cmd

import (
	"context"
	"flag"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/renderer"
	"github.com/google/subcommands"
)

// viewCmd prints one analytic view of the dataset.
type viewCmd struct {
	name     string
	synopsis string
	usage    string
	view     func(*vitals.Dataset) *renderer.View
}

var overviewCmd = &viewCmd{
	name:     "overview",
	synopsis: "display the number of days, the average scores and the raw data",
	usage: `vtl [-csv <file> | -token <token>] overview

  Displays the daily overview: the number of days covered, the average sleep,
  readiness and activity scores, and every loaded column day by day.
`,
	view: renderer.Overview,
}

var sleepCmd = &viewCmd{
	name:     "sleep",
	synopsis: "display the sleep analysis",
	usage: `vtl [-csv <file> | -token <token>] sleep

  Displays the sleep score over time, the sleep duration in hours and the sleep
  stages contributors.
`,
	view: func(ds *vitals.Dataset) *renderer.View { return renderer.Sleep(ds.Table) },
}

var activityCmd = &viewCmd{
	name:     "activity",
	synopsis: "display the activity analysis",
	usage: `vtl [-csv <file> | -token <token>] activity

  Displays the activity score, the daily steps and the active calories.
`,
	view: func(ds *vitals.Dataset) *renderer.View { return renderer.Activity(ds.Table) },
}

var readinessCmd = &viewCmd{
	name:     "readiness",
	synopsis: "display the readiness analysis",
	usage: `vtl [-csv <file> | -token <token>] readiness

  Displays the readiness score and its distribution, the temperature deviation
  and the resting heart rate.
`,
	view: func(ds *vitals.Dataset) *renderer.View { return renderer.Readiness(ds.Table) },
}

func (c *viewCmd) Name() string           { return c.name }
func (c *viewCmd) Synopsis() string       { return c.synopsis }
func (c *viewCmd) Usage() string          { return c.usage }
func (c *viewCmd) SetFlags(*flag.FlagSet) {}

func (c *viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := loadDataset(ctx)
	if err != nil {
		return failure(err)
	}
	printMarkdown(c.view(ds).Markdown())
	return subcommands.ExitSuccess
}

type trendsCmd struct {
	x, y string
}

func (*trendsCmd) Name() string     { return "trends" }
func (*trendsCmd) Synopsis() string { return "display a trend line and the correlation matrix" }
func (*trendsCmd) Usage() string {
	return `vtl [-csv <file> | -token <token>] trends [-x <column>] [-y <column>]

  Displays the ordinary least squares trend of column y against column x, and
  the Pearson correlation between every pair of columns.

  Both columns default to the first columns of the dataset.
`
}

func (c *trendsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.x, "x", "", "Column on the horizontal axis")
	f.StringVar(&c.y, "y", "", "Column on the vertical axis")
}

func (c *trendsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ds, err := loadDataset(ctx)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.Trends(ds.Table, c.x, c.y).Markdown())
	return subcommands.ExitSuccess
}
