package document

import "fmt"

// associate attaches list items to the tree by offset comparison.
//
// For each item, in ascending offset order, the owner is the last Section
// whose offset is at or before the item's offset. Within that Section, the
// item descends into the last Subsection at or before it, unless a later
// Section starts between the Subsection and the item (the Subsection is
// then superseded and the item belongs to the later Section's scan).
// Items preceding every Section attach directly to the Title.
func associate(t *Tree, items []listItem) {
	if t.IsEmpty() {
		return
	}

	sections := t.Sections()

	for i, it := range items {
		node := &Node{
			ID:           fmt.Sprintf("item-%d", i+1),
			Text:         it.text,
			Kind:         KindItem,
			SourceOffset: it.offset,
		}

		sec, nextOffset := owningSection(sections, it.offset)
		if sec == nil {
			t.Root.AddChild(node)
			continue
		}

		if sub := owningSubsection(sec, it.offset, nextOffset); sub != nil {
			sub.AddChild(node)
		} else {
			sec.AddChild(node)
		}
	}
}

// owningSection returns the last Section at or before offset, along with the
// offset of the Section that follows it (-1 if none).
func owningSection(sections []*Node, offset int) (*Node, int) {
	var sec *Node
	next := -1
	for i, s := range sections {
		if s.SourceOffset > offset {
			break
		}
		sec = s
		if i+1 < len(sections) {
			next = sections[i+1].SourceOffset
		} else {
			next = -1
		}
	}
	return sec, next
}

// owningSubsection returns the last Subsection of sec at or before offset.
// A candidate is discarded when the next Section starts at or before the
// item, which supersedes every Subsection of sec.
func owningSubsection(sec *Node, offset, nextSectionOffset int) *Node {
	var sub *Node
	for _, c := range sec.Children {
		if c.Kind != KindSubsection {
			continue
		}
		if c.SourceOffset > offset {
			break
		}
		if nextSectionOffset >= 0 && nextSectionOffset <= offset {
			return nil
		}
		sub = c
	}
	return sub
}
