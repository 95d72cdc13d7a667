package renderer

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/vitals"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline is the structure of a rendered markdown document.
type outline struct {
	headings []string
	tables   []int // number of body rows of each table.
}

// parse parses md as github flavoured markdown and returns its outline.
func parse(t *testing.T, md string) outline {
	t.Helper()
	src := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser().Parse(text.NewReader(src))

	var o outline
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			var b bytes.Buffer
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					b.Write(txt.Segment.Value(src))
				}
			}
			o.headings = append(o.headings, b.String())
		case east.KindTable:
			rows := 0
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if c.Kind() == east.KindTableRow {
					rows++
				}
			}
			o.tables = append(o.tables, rows)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("cannot walk markdown: %v", err)
	}
	return o
}

func decode(t *testing.T, csv string) *vitals.Table {
	t.Helper()
	tbl, err := vitals.DecodeCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("invalid test table: %v", err)
	}
	return tbl
}

const sample = `date,sleep_score,total_sleep_duration,deep_sleep,rem_sleep,light_sleep,activity_score,steps,calories,readiness_score,temperature_deviation,resting_heart_rate
2024-01-01,80,25200,70,60,50,70,5000,300,,,
2024-01-02,,,,,,,,,90,-0.2,85
`

func TestOverview(t *testing.T) {
	md := Overview(&vitals.Dataset{Table: decode(t, sample), Origin: vitals.FromAPI}).Markdown()
	o := parse(t, md)

	if want := []string{"Daily Overview", "Raw Data"}; !slices.Equal(o.headings, want) {
		t.Errorf("Overview() headings = %v want %v", o.headings, want)
	}
	if want := []int{4, 2}; !slices.Equal(o.tables, want) {
		t.Errorf("Overview() table rows = %v want %v\n%s", o.tables, want, md)
	}
	for _, want := range []string{
		"| Total Days | 2 |",
		"| Avg Sleep Score | 80.0 |",
		"| Avg Readiness | 90.0 |",
		"| Avg Activity | 70.0 |",
		"Loaded from api: 2024-01-01 to 2024-01-02",
		"| 2024-01-02 |",
		"| -0.2 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Overview() does not contain %q:\n%s", want, md)
		}
	}
}

func TestOverviewWithoutDataset(t *testing.T) {
	o := parse(t, Overview(nil).Markdown())
	if len(o.tables) != 0 {
		t.Errorf("Overview(nil) has %d tables want 0", len(o.tables))
	}
}

func TestEmptyTable(t *testing.T) {
	empty := decode(t, "")
	for name, v := range map[string]*View{
		"overview":  Overview(&vitals.Dataset{Table: empty, Origin: vitals.FromFile}),
		"sleep":     Sleep(empty),
		"activity":  Activity(empty),
		"readiness": Readiness(empty),
		"trends":    Trends(empty, "", ""),
	} {
		md := v.Markdown()
		if !strings.Contains(md, "No data available.") {
			t.Errorf("%s view of an empty table does not say so:\n%s", name, md)
		}
		if o := parse(t, md); len(o.tables) != 0 {
			t.Errorf("%s view of an empty table has %d tables want 0", name, len(o.tables))
		}
	}
}

func TestSleep(t *testing.T) {
	md := Sleep(decode(t, sample)).Markdown()
	o := parse(t, md)
	want := []string{
		"Sleep Analysis",
		"Sleep Score Over Time",
		"Sleep Duration Distribution (hours)",
		"Sleep Duration Over Time",
		"Sleep Stages",
	}
	if !slices.Equal(o.headings, want) {
		t.Errorf("Sleep() headings = %v want %v", o.headings, want)
	}
	if !strings.Contains(md, "| Average Sleep Duration | 7.0 hours |") {
		t.Errorf("Sleep() does not show 7.0 hours:\n%s", md)
	}
}

func TestMissingDomain(t *testing.T) {
	tbl := decode(t, "date,readiness_score\n2024-01-01,90\n")
	for name, v := range map[string]*View{
		"sleep":    Sleep(tbl),
		"activity": Activity(tbl),
	} {
		if md := v.Markdown(); !strings.Contains(md, "No "+name+" data available.") {
			t.Errorf("%s view without %s data:\n%s", name, name, md)
		}
	}
	md := Readiness(tbl).Markdown()
	if !strings.Contains(md, "| Avg Readiness | 90.0 |") {
		t.Errorf("Readiness() does not show the average:\n%s", md)
	}
}

func TestActivityUndefinedAverage(t *testing.T) {
	// steps exist as a column but have no value.
	md := Activity(decode(t, "date,activity_score,steps\n2024-01-01,70,\n")).Markdown()
	if !strings.Contains(md, "| Average Steps | n/a |") {
		t.Errorf("Activity() must render an undefined average as n/a:\n%s", md)
	}
}

func TestTrends(t *testing.T) {
	tbl := decode(t, "date,x,y,z\n2024-01-01,1,3,\n2024-01-02,2,5,1\n2024-01-03,3,7,\n")
	md := Trends(tbl, "x", "y").Markdown()
	o := parse(t, md)
	if want := []string{"Trends & Correlations", "x vs y", "Correlation Matrix"}; !slices.Equal(o.headings, want) {
		t.Errorf("Trends() headings = %v want %v", o.headings, want)
	}
	if want := []int{3, 3}; !slices.Equal(o.tables, want) {
		t.Errorf("Trends() table rows = %v want %v", o.tables, want)
	}
	for _, want := range []string{"y = 2.00 × x + 1.00", "| n/a |"} {
		if !strings.Contains(md, want) {
			t.Errorf("Trends() does not contain %q:\n%s", want, md)
		}
	}

	md = Trends(tbl, "x", "z").Markdown()
	if !strings.Contains(md, "Not enough data for a trend line.") {
		t.Errorf("Trends(x, z) with a single pair must not draw a line:\n%s", md)
	}
	if md := Trends(tbl, "x", "nope").Markdown(); !strings.Contains(md, `Unknown column "nope"`) {
		t.Errorf("Trends(x, nope) must report the unknown column:\n%s", md)
	}
}

func TestExtremeValues(t *testing.T) {
	// every sum of these values overflows.
	const extreme = `date,sleep_score,total_sleep_duration,activity_score,steps,readiness_score,resting_heart_rate
2024-01-01,1e308,1e308,1e308,-1.5e308,1e308,1e308
2024-01-02,1e308,1e308,1e308,1.5e308,1e308,1e308
`
	tbl := decode(t, extreme)
	views := map[string]func() *View{
		"overview":  func() *View { return Overview(&vitals.Dataset{Table: tbl, Origin: vitals.FromFile}) },
		"sleep":     func() *View { return Sleep(tbl) },
		"activity":  func() *View { return Activity(tbl) },
		"readiness": func() *View { return Readiness(tbl) },
		"trends":    func() *View { return Trends(tbl, vitals.SleepScore, vitals.Steps) },
	}
	for name, view := range views {
		t.Run(name, func(t *testing.T) {
			md := view().Markdown()
			if strings.Contains(md, "+Inf") || strings.Contains(md, "-Inf") || strings.Contains(md, "NaN") {
				t.Errorf("%s view displays a non finite number:\n%s", name, md)
			}
		})
	}

	md := Overview(&vitals.Dataset{Table: tbl, Origin: vitals.FromFile}).Markdown()
	if !strings.Contains(md, "| Avg Sleep Score | n/a |") {
		t.Errorf("Overview() must render an overflowing average as n/a:\n%s", md)
	}
	if md := Trends(tbl, vitals.SleepScore, vitals.Steps).Markdown(); !strings.Contains(md, "Not enough data for a trend line.") {
		t.Errorf("Trends() must not draw an overflowing trend line:\n%s", md)
	}
}
