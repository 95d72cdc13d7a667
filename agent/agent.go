// Package agent implements a chat assistant answering questions about a vitals dataset with
// Gemini function calling.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/docs"
	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w     io.Writer
	r     *bufio.Reader
	Coach *Expert
	// Print displays an answer, defaults to writing it as is.
	Print func(w io.Writer, answer string)
}

// New creates an agent writing to w and reading the user's questions from r.
func New(w io.Writer, r io.Reader, coach *Expert) *Agent {
	return &Agent{
		w:     w,
		r:     bufio.NewReader(r),
		Coach: coach,
		Print: func(w io.Writer, answer string) { fmt.Fprintln(w, answer) },
	}
}

// NewCoach returns the expert in charge of the user's health data held by s.
func NewCoach(model string, s *vitals.Session) *Expert {
	tools := Tools(s)
	return &Expert{
		Name:        "Coach",
		Description: "The Coach reads the user's daily sleep, activity and readiness data.",
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a health coach reading the user's Oura ring data: one row per day with the sleep,
			activity and readiness scores and their contributors.

			Use the available tools to ground every figure you give:
			  - Summary to know the period and the columns
			  - View to read the day by day reports
			  - Trend to relate two columns

			A missing value means the ring did not report it for that day, never treat it as zero.
			Answer in markdown, keep it short, and never give a medical diagnosis.

			` + must(docs.GetTopics("columns", "metrics"))}}},
		},
		Library: NewLibrary(tools),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

const prompt = "assist> "

// Run starts the interactive session. prompts are asked first, then the user's questions are
// read until "bye" or the end of the input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Coach.chat == nil {
		if err := a.Coach.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to vitals assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if errors.Is(err, io.EOF) {
				return nil // Clean exit on Ctrl+D
			}
			if err != nil {
				return err
			}
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		answer, err := a.Coach.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.Print(a.w, answer)
	}
}
