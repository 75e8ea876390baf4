package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Tree Serialization API
// =============================================================================

// MarshalTree converts a Tree to pretty-printed JSON bytes.
func MarshalTree(t *Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTree(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalTree deserializes JSON bytes into a Tree.
func UnmarshalTree(data []byte) (*Tree, error) {
	return ReadTree(bytes.NewReader(data))
}

// WriteTree writes a Tree as indented JSON to an io.Writer.
func WriteTree(t *Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadTree decodes a JSON Tree from an io.Reader.
func ReadTree(r io.Reader) (*Tree, error) {
	var t Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &t, nil
}

// WriteTreeFile writes a Tree to a JSON file.
// The file is created with 0644 permissions.
func WriteTreeFile(t *Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(t, f)
}

// ReadTreeFile reads a Tree from a JSON file.
func ReadTreeFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}
