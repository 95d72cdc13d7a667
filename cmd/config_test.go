package cmd

import (
	"flag"
	"path/filepath"
	"slices"
	"testing"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/ouraapi"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/time/rate"
)

func TestLoadConfig(t *testing.T) {
	path := createTempFile(t, "config.yaml", `
token: abc
days: 7
rate: 2.5
`)
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error = %v", err)
	}
	want := &Config{Token: "abc", BaseURL: ouraapi.DefaultBaseURL, Days: 7, Rate: 2.5, Model: defaultModel}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}

	c := got.client("xyz")
	if c.Token != "xyz" || c.BaseURL != ouraapi.DefaultBaseURL || c.Limiter.Limit() != rate.Limit(2.5) {
		t.Errorf("client() = %+v", c)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	got, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error = %v", err)
	}
	want := &Config{BaseURL: ouraapi.DefaultBaseURL, Days: defaultDays, Rate: defaultRate, Model: defaultModel}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	if _, err := LoadConfig(createTempFile(t, "config.yaml", "days: [1, 2]\n")); err == nil {
		t.Errorf("LoadConfig() on an invalid file must fail")
	}
}

func TestCompletion(t *testing.T) {
	root := flag.NewFlagSet("vtl", flag.ContinueOnError)
	root.String("csv", "", "")
	root.Bool("v", false, "")

	c := Completion(root)
	for _, name := range []string{"csv", "v"} {
		if _, ok := c.Flags[name]; !ok {
			t.Errorf("Completion() has no flag %q", name)
		}
	}
	for _, name := range []string{"overview", "sleep", "activity", "readiness", "trends", "fetch", "assist", "topic", "help"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no subcommand %q", name)
		}
	}
	if got := c.Sub["topic"].Args.Predict(""); !slices.Contains(got, "metrics") {
		t.Errorf("topic predicts %v, want the topics", got)
	}
	x, ok := c.Sub["trends"].Flags["x"]
	if !ok {
		t.Fatalf("Completion() trends has no -x flag")
	}
	if got := x.Predict(""); !slices.Contains(got, vitals.SleepScore) {
		t.Errorf("trends -x predicts %v, want the column names", got)
	}
}
