package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/etnz/vitals/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	model string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant about your data"
}
func (*assistCmd) Usage() string {
	return `vtl [-csv <file> | -token <token>] assist [-model <model>] [question...]

  Starts an interactive session with a Gemini assistant that can read the loaded
  dataset. The question given on the command line is asked first.

  The Gemini API key is read from $GOOGLE_API_KEY or $GEMINI_API_KEY.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "Gemini model, defaults to the config file model")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := loadDataset(ctx); err != nil {
		return failure(err)
	}
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return failure(err)
	}
	model := c.model
	if model == "" {
		model = cfg.Model
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return failure(err)
	}

	a := agent.New(os.Stdout, os.Stdin, agent.NewCoach(model, &session))
	a.Print = func(w io.Writer, answer string) { writeMarkdown(w, answer, *plain) }

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}
