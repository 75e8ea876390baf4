package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Scene Serialization API
// =============================================================================

// MarshalScene converts a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteScene(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalScene deserializes JSON bytes into a Scene.
func UnmarshalScene(data []byte) (Scene, error) {
	return ReadScene(bytes.NewReader(data))
}

// WriteScene writes a Scene as indented JSON to an io.Writer.
func WriteScene(s Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadScene decodes a JSON Scene from an io.Reader.
func ReadScene(r io.Reader) (Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Scene{}, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}

// WriteSceneFile writes a Scene to a JSON file.
// The file is created with 0644 permissions.
func WriteSceneFile(s Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteScene(s, f)
}

// ReadSceneFile reads a Scene from a JSON file.
func ReadSceneFile(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScene(f)
}
