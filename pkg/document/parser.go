package document

import (
	"fmt"
	"regexp"
	"strings"
)

// Messages attached to empty trees. These are user-facing and surfaced
// verbatim by the CLI and HTTP API.
const (
	msgEmptyInput = "document is empty"
	msgNoTitle    = "no top-level heading found; start the document with '# Title'"
)

var (
	headingPattern   = regexp.MustCompile(`^(#{1,6})[ \t]+(.+)$`)
	unorderedPattern = regexp.MustCompile(`^[-*+][ \t]+(.+)$`)
	orderedPattern   = regexp.MustCompile(`^[0-9]+\.[ \t]+(.+)$`)
)

// heading is a tokenized heading line before tree construction.
type heading struct {
	level  int
	text   string
	offset int
}

// listItem is a tokenized list line before association.
type listItem struct {
	text   string
	offset int
}

// Parse builds a document tree from markdown text.
//
// Parse never fails: blank input or input without a level-1 heading yields
// an empty tree whose Message explains why. The first heading in the
// document becomes the Title regardless of its literal level; level-2
// headings open Sections, level-3 headings open Subsections under the most
// recent Section, and list items are attached by offset association.
func Parse(text string) *Tree {
	headings, items := tokenize(text)

	if len(headings) == 0 {
		if strings.TrimSpace(text) == "" {
			return &Tree{Message: msgEmptyInput}
		}
		return &Tree{Message: msgNoTitle}
	}

	hasTitle := false
	for _, h := range headings {
		if h.level == 1 {
			hasTitle = true
			break
		}
	}
	if !hasTitle {
		return &Tree{Message: msgNoTitle}
	}

	tree := build(headings)
	associate(tree, items)
	return tree
}

// tokenize scans the input line by line, recording the character offset of
// each line start. Heading and list lines become tokens; prose produces
// nothing.
func tokenize(text string) ([]heading, []listItem) {
	var (
		headings []heading
		items    []listItem
	)

	offset := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			headings = append(headings, heading{
				level:  len(m[1]),
				text:   strings.TrimSpace(m[2]),
				offset: offset,
			})
		} else if itemText, ok := matchListLine(line); ok {
			items = append(items, listItem{
				text:   itemText,
				offset: offset,
			})
		}

		offset += len(raw) + 1
	}

	return headings, items
}

// matchListLine strips the list marker and surrounding whitespace from a
// list line. Leading indentation is tolerated but carries no meaning: the
// dialect infers hierarchy from offsets, not indentation.
func matchListLine(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if m := unorderedPattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := orderedPattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// build constructs the heading skeleton: Title, Sections, Subsections.
//
// The first heading becomes the Title whatever its level. Level-2 headings
// open Sections under the Title and reset the current Subsection. Level-3
// headings open Subsections under the most recent Section; a level-3
// heading before any Section is dropped. Level-1 headings after the first
// and levels 4–6 are documentation and produce no nodes.
func build(headings []heading) *Tree {
	root := &Node{
		ID:           "title",
		Text:         headings[0].text,
		Kind:         KindTitle,
		SourceOffset: headings[0].offset,
	}

	var current *Node
	sectionSeq := 0

	for _, h := range headings[1:] {
		switch h.level {
		case 2:
			sectionSeq++
			current = &Node{
				ID:           fmt.Sprintf("section-%d", sectionSeq),
				Text:         h.text,
				Kind:         KindSection,
				SourceOffset: h.offset,
			}
			root.AddChild(current)
		case 3:
			if current == nil {
				continue
			}
			subSeq := 0
			for _, c := range current.Children {
				if c.Kind == KindSubsection {
					subSeq++
				}
			}
			current.AddChild(&Node{
				ID:           fmt.Sprintf("%s-sub-%d", current.ID, subSeq+1),
				Text:         h.text,
				Kind:         KindSubsection,
				SourceOffset: h.offset,
			})
		}
	}

	return &Tree{Root: root}
}
