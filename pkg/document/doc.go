// Package document parses a restricted markdown dialect into a hierarchical
// document tree suitable for mind map layout.
//
// # Dialect
//
// The recognized dialect is intentionally small (full CommonMark support is
// out of scope):
//
//   - Headings: a run of 1–6 '#' characters followed by whitespace and text.
//     Levels 1–3 are structural; levels 4–6 are treated as documentation and
//     produce no nodes.
//   - List items: lines starting with '-', '*', '+' or "digits." followed by
//     whitespace. Ordered and unordered items are equivalent.
//   - Everything else is prose and is ignored.
//
// # Structure
//
// The first heading in the document becomes the Title, regardless of its
// literal level. Subsequent level-2 headings open Sections, level-3 headings
// open Subsections under the most recently opened Section. List items are
// attached to the nearest enclosing Section or Subsection by comparing
// character offsets (see [associate]); items appearing before any heading
// fall back to the Title.
//
// # Offsets
//
// Every node records the character index of its originating line in the
// input text (SourceOffset). Offsets are the sole ordering key used for
// association. This offset heuristic stands in for explicit nesting markers
// and is known to be fragile for documents with out-of-order or duplicated
// headings; that behavior is deliberate and documented rather than a defect.
//
// # Errors
//
// Parse never returns an error. Malformed or empty input yields an empty
// [Tree] carrying a human-readable message, which callers must treat as a
// legitimate terminal state.
package document
