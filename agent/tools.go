package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/renderer"
	"google.golang.org/genai"
)

// errNoDataset is returned by the tools when the session has no dataset.
var errNoDataset = errors.New("no dataset is loaded")

// Func implements a Function with a closure. Errors are reported to the model in the "error"
// field of the response.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, args map[string]any) (map[string]any, error)
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: id, Name: f.Decl.Name}
	out, err := f.Func(ctx, args)
	if err != nil {
		resp.Response = map[string]any{"error": err.Error()}
		return resp
	}
	resp.Response = out
	return resp
}

// Tools returns the functions reading the current dataset of s.
func Tools(s *vitals.Session) []*Func {
	return []*Func{summaryFunc(s), viewFunc(s), trendFunc(s)}
}

// current returns the table of the current dataset.
func current(s *vitals.Session) (*vitals.Dataset, error) {
	ds := s.Current()
	if ds == nil {
		return nil, errNoDataset
	}
	return ds, nil
}

// number converts v to a json number, nil when undefined.
func number(v vitals.Value) any {
	if x, ok := v.Float64(); ok {
		return x
	}
	return nil
}

// stringArg returns the string argument 'name'.
func stringArg(args map[string]any, name string) (string, error) {
	s, ok := args[name].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("missing string argument %q, got %T", name, args[name])
	}
	return s, nil
}

func summaryFunc(s *vitals.Session) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary describes the loaded health dataset: where it comes from, the first and last day,
			the number of days, and for every column its mean and the number of days with a value.
			A null mean means there is no value at all for this column. The first and last day are null
			when the dataset has no day.`,
			Parameters: &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		},
		Func: func(_ context.Context, _ map[string]any) (map[string]any, error) {
			ds, err := current(s)
			if err != nil {
				return nil, err
			}
			d := vitals.Derive(ds.Table)
			columns := make([]any, 0, len(d.Means))
			for _, col := range ds.Table.Columns() {
				columns = append(columns, map[string]any{
					"name":     col,
					"mean":     number(d.Mean(col)),
					"coverage": d.Coverage[col],
				})
			}
			summary := map[string]any{
				"origin":  ds.Origin.String(),
				"from":    nil,
				"to":      nil,
				"days":    d.Days,
				"columns": columns,
			}
			if d.Days > 0 {
				summary["from"], summary["to"] = d.From.String(), d.To.String()
			}
			return summary, nil
		},
	}
}

// views are the markdown views the model can read.
var views = map[string]func(*vitals.Dataset) *renderer.View{
	"overview":  renderer.Overview,
	"sleep":     func(ds *vitals.Dataset) *renderer.View { return renderer.Sleep(ds.Table) },
	"activity":  func(ds *vitals.Dataset) *renderer.View { return renderer.Activity(ds.Table) },
	"readiness": func(ds *vitals.Dataset) *renderer.View { return renderer.Readiness(ds.Table) },
}

func viewFunc(s *vitals.Session) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "View",
			Description: `View returns a markdown report of the loaded dataset. The overview lists every value day by day,
			the other views show scores over time with their 7-day rolling average and distributions.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The view to read.",
						Enum:        []string{"overview", "sleep", "activity", "readiness"},
					},
				},
				Required: []string{"name"},
			},
		},
		Func: func(_ context.Context, args map[string]any) (map[string]any, error) {
			ds, err := current(s)
			if err != nil {
				return nil, err
			}
			name, err := stringArg(args, "name")
			if err != nil {
				return nil, err
			}
			view, ok := views[name]
			if !ok {
				return nil, fmt.Errorf("unknown view %q", name)
			}
			return map[string]any{"markdown": view(ds).Markdown()}, nil
		},
	}
}

func trendFunc(s *vitals.Session) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Trend",
			Description: `Trend fits y = slope * x + intercept by ordinary least squares on the days where both columns
			have a value, and returns the Pearson correlation between them. Use Summary to know the column names.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"x": {Type: genai.TypeString, Description: "The explanatory column."},
					"y": {Type: genai.TypeString, Description: "The explained column."},
				},
				Required: []string{"x", "y"},
			},
		},
		Func: func(_ context.Context, args map[string]any) (map[string]any, error) {
			ds, err := current(s)
			if err != nil {
				return nil, err
			}
			x, err := stringArg(args, "x")
			if err != nil {
				return nil, err
			}
			y, err := stringArg(args, "y")
			if err != nil {
				return nil, err
			}
			for _, col := range []string{x, y} {
				if !ds.Table.Has(col) {
					return nil, fmt.Errorf("unknown column %q", col)
				}
			}
			out := map[string]any{
				"correlation": number(vitals.Correlate(ds.Table, x, y).At(x, y)),
			}
			line, ok := vitals.Trend(ds.Table, x, y)
			if !ok {
				out["trend"] = "not enough data for a trend line"
				return out, nil
			}
			out["slope"] = line.Slope
			out["intercept"] = line.Intercept
			out["r2"] = number(line.R2)
			out["n"] = line.N
			return out, nil
		},
	}
}
