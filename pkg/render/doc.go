// Package render provides shared artifact conversion utilities.
//
// The dot subpackage turns laid-out scenes into Graphviz diagrams. This
// package holds the format converters layered on top of SVG output.
package render
