package cmd

import (
	"flag"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// columns predicts the canonical column names.
func columns() predict.Set {
	var cols []string
	for _, d := range vitals.Domains {
		cols = append(cols, d.Columns()...)
	}
	return predict.Set(cols)
}

// flagPredictors predict the flags whose values have a known shape.
var flagPredictors = map[string]complete.Predictor{
	"csv":    predict.Files("*.csv"),
	"config": predict.Files("*.yaml"),
	"o":      predict.Files("*.csv"),
	"x":      columns(),
	"y":      columns(),
	"model":  predict.Set{"gemini-2.5-flash", "gemini-2.5-pro"},
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of vtl, whose global flags are defined in root.
//
// A main package calls Completion(flag.CommandLine).Complete("vtl") before parsing the flags.
func Completion(root *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(root),
	}
	var names []string
	for _, g := range groups {
		for _, sub := range g.commands {
			fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
			sub.SetFlags(fs)
			c.Sub[sub.Name()] = &complete.Command{Flags: predictFlags(fs)}
			if sub.Name() == "topic" {
				c.Sub[sub.Name()].Args = predict.Set(docs.AllTopics())
			}
			names = append(names, sub.Name())
		}
	}
	c.Sub["help"] = &complete.Command{Args: predict.Set(names)}
	c.Sub["flags"] = &complete.Command{}
	return c
}
