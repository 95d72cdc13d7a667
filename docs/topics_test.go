package docs

import (
	"bufio"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in the index can be loaded, and every topic is listed in the index.
	index, err := GetTopic(Index)
	if err != nil {
		t.Fatalf("failed to get the index: %v", err)
	}

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(strings.NewReader(index))
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			listed = append(listed, strings.TrimSpace(matches[1]))
		}
	}

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}
	for _, topic := range AllTopics() {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in %s.md", topic, Index)
		}
	}
}

func TestUnknownTopic(t *testing.T) {
	if _, err := GetTopic("dates"); err == nil {
		t.Errorf("GetTopic(dates) must fail")
	}
}

func TestAllTopics(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) unexpected error = %v", err)
	}
	// one level 1 heading per topic.
	if got, want := len(headings(t, all, 1)), len(AllTopics()); got != want {
		t.Errorf("GetTopic(*) has %d titles want %d", got, want)
	}
}

func TestSingleTitle(t *testing.T) {
	for _, topic := range append(AllTopics(), Index) {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatalf("failed to get topic %q: %v", topic, err)
		}
		if got := headings(t, content, 1); len(got) != 1 {
			t.Errorf("topic %q has titles %v want exactly one", topic, got)
		}
	}
}

// headings returns the text of the headings of the given level.
func headings(t *testing.T, md string, level int) []string {
	t.Helper()
	src := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var titles []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok || h.Level != level {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if txt, ok := c.(*ast.Text); ok {
				b.Write(txt.Segment.Value(src))
			}
		}
		titles = append(titles, b.String())
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return titles
}
