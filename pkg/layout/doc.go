// Package layout assigns 2D positions to a parsed document tree.
//
// # Placement Model
//
// The Title sits at the canvas center. Sections are distributed evenly on a
// circle around it (section i of n at angle i·2π/n). Below that, each branch
// picks a placement strategy:
//
//   - Subsections go on an intermediate circle around their Section,
//     spanning a fixed 144° arc centered on the Section's own angle. Each
//     Subsection's items repeat the pattern on a 108° arc at reduced radius.
//   - A Section's direct items either stack vertically beside the Section
//     (item count at or above the bullet threshold) or fan out radially on
//     a 252° arc with a guaranteed minimum angular step.
//
// Strategy selection goes through an explicit table keyed by branch shape
// (see strategies.go) so the readability tradeoff stays testable in
// isolation from the tree walk.
//
// # Sizing
//
// Box sizes derive from text length with legibility floors of 80×40 units.
// Boxes shrink by depth (Section 100%, Subsection 90%, Item 80%, nested
// item 70%) and long labels wrap onto multiple lines instead of widening
// the box past its per-level character budget.
//
// # Guarantees
//
// Layout is deterministic: identical tree and config always produce
// identical coordinates. Every node of the tree receives a position. An
// empty tree yields an empty node list, never an error.
package layout
