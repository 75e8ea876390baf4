package layout

import "strings"

// depth identifies a node's position in the hierarchy for sizing purposes.
// Items under a Subsection sit one depth below items directly under a
// Section.
type depth int

const (
	depthTitle depth = iota
	depthSection
	depthSubsection
	depthItem
	depthSubItem
)

// Per-depth box scale relative to the configured base dimensions.
var depthScales = map[depth]float64{
	depthTitle:      1.0,
	depthSection:    1.0,
	depthSubsection: 0.9,
	depthItem:       0.8,
	depthSubItem:    0.7,
}

// Per-depth character budget: labels longer than this wrap onto additional
// lines instead of widening the box.
var depthCharBudgets = map[depth]int{
	depthTitle:      20,
	depthSection:    18,
	depthSubsection: 16,
	depthItem:       14,
	depthSubItem:    12,
}

// Text metrics in world units. Approximate a monospace-ish label font;
// exact glyph widths are a renderer concern.
const (
	charWidth  = 9.0
	lineHeight = 22.0
	boxPadX    = 12.0
	boxPadY    = 8.0
)

// sizeBox computes the box dimensions and wrapped label lines for a node of
// the given depth. Results never fall below the legibility floors.
func sizeBox(text string, d depth, cfg Config) (width, height float64, lines []string) {
	scale := depthScales[d]
	lines = wrapText(text, depthCharBudgets[d])

	longest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}

	width = float64(longest)*charWidth*scale + 2*boxPadX
	if cap := cfg.NodeWidth * scale; width > cap && cap > MinNodeWidth {
		width = cap
	}
	if width < MinNodeWidth {
		width = MinNodeWidth
	}

	height = float64(len(lines))*lineHeight*scale + 2*boxPadY
	if height < MinNodeHeight {
		height = MinNodeHeight
	}

	return width, height, lines
}

// wrapText greedily wraps text at word boundaries so no line exceeds budget
// runes. Words longer than the budget are hard-split.
func wrapText(text string, budget int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}
	if budget <= 0 {
		return []string{text}
	}

	var (
		lines   []string
		current strings.Builder
		width   int // runes on the current line; Builder.Len counts bytes
	)

	flush := func() {
		if width > 0 {
			lines = append(lines, current.String())
			current.Reset()
			width = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)

		// Hard-split oversized words.
		for len(runes) > budget {
			flush()
			lines = append(lines, string(runes[:budget]))
			runes = runes[budget:]
		}
		word = string(runes)

		switch {
		case width == 0:
			current.WriteString(word)
			width = len(runes)
		case width+1+len(runes) <= budget:
			current.WriteByte(' ')
			current.WriteString(word)
			width += 1 + len(runes)
		default:
			flush()
			current.WriteString(word)
			width = len(runes)
		}
	}
	flush()

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
