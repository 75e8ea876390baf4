package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// converterBinary is the external tool used for SVG conversion. The SVG
// produced by the dot subpackage is the canonical artifact; PDF and PNG are
// derived from it here rather than rendered separately.
const converterBinary = "rsvg-convert"

// ToPDF converts a rendered mind map SVG to PDF.
// Requires librsvg on the PATH.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts a rendered mind map SVG to PNG at the given scale factor.
// A scale of 2.0 doubles the pixel dimensions of the SVG canvas.
// Requires librsvg on the PATH.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// convert pipes the SVG through rsvg-convert to the requested format.
func convert(svg []byte, format string, extra ...string) ([]byte, error) {
	if _, err := exec.LookPath(converterBinary); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.Command(converterBinary, append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", converterBinary, err, stderr.String())
	}
	return stdout.Bytes(), nil
}
