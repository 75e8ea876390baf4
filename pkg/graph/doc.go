// Package graph defines the serialization surface of a laid-out mind map.
//
// # Overview
//
// The layout engine produces a [Scene]: positioned nodes plus the tiered
// parent→child connections derived from the document tree. The Scene is the
// complete contract with downstream renderers — a renderer draws each node
// as a rectangle centered at (X, Y) sized Width×Height with the wrapped
// Lines as its label, and each connection as a line between the two
// endpoint centers. Nothing in this package touches a drawing surface.
//
// The format is designed for round-trip fidelity: a Scene written with
// [WriteSceneFile] reads back identically with [ReadSceneFile].
//
// # Connections
//
// [BuildConnections] derives connections from a document tree, tiered by
// the parent's kind: Title→Section edges are primary, Section→child edges
// secondary, Subsection→Item edges tertiary. For a valid tree the
// connection count is exactly nodeCount−1. A connection whose endpoint is
// missing from the node set is dropped silently, never reported.
package graph
