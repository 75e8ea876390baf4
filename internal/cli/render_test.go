package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tillvoss/mindweave/pkg/pipeline"
)

func TestWriteArtifactsSingleFormat(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "map.svg")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		input:     "notes.md",
		output:    out,
		stats:     pipeline.Stats{NodeCount: 3, ConnectionCount: 2},
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("output = %q, want %q", data, "<svg/>")
	}
}

func TestWriteArtifactsMultipleFormats(t *testing.T) {
	dir := t.TempDir()

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"svg": []byte("<svg/>"),
			"dot": []byte("graph mindmap {}"),
		},
		formats: []string{"svg", "dot"},
		input:   "notes.md",
		output:  filepath.Join(dir, "map"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	for _, name := range []string{"map.svg", "map.dot"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}
}

func TestWriteArtifactsMissingFormat(t *testing.T) {
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{},
		formats:   []string{"svg"},
		input:     "notes.md",
		output:    filepath.Join(t.TempDir(), "map.svg"),
	})
	if err == nil {
		t.Error("writeArtifacts() should fail when an artifact is missing")
	}
}
