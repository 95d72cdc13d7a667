// Package renderer renders the analytic views of a vitals dataset as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// Stat is a single headline metric.
type Stat struct {
	Label string
	Value string
}

// Bar is one histogram bucket.
type Bar struct {
	Range string
	Count int
	Bar   string
}

// Section is a titled block of a view: an optional note, an optional table and an optional
// histogram.
type Section struct {
	Title  string
	Note   string
	Header []string
	Rows   [][]string
	Bars   []Bar
}

// View is a complete report page. When Info is set the view has nothing else to show.
type View struct {
	Title    string
	Subtitle string
	Info     string
	Stats    []Stat
	Sections []Section
}

// Markdown renders the view.
func (v *View) Markdown() string {
	partials := map[string]string{
		"stats":   "stats.md",
		"section": "section.md",
	}
	return renderTemplate("view", "view.md", partials, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, path.Join("templates", mainFile))
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, path.Join("templates", file))
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
