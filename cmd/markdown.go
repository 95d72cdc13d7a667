package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// printMarkdown renders md for the terminal on stdout.
func printMarkdown(md string) { writeMarkdown(os.Stdout, md, *plain) }

// writeMarkdown writes md to w, rendered by glamour unless raw is set. Rendering failures fall back
// to the raw markdown.
func writeMarkdown(w io.Writer, md string, raw bool) {
	if raw {
		fmt.Fprint(w, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Warn().Err(err).Msg("cannot create markdown renderer")
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Warn().Err(err).Msg("cannot render markdown")
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}
