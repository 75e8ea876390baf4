package graph

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleScene() Scene {
	return Scene{
		Nodes: []Node{
			{ID: "title", Text: "T", Kind: "title", X: 800, Y: 600, Width: 80, Height: 40, Lines: []string{"T"}},
			{ID: "section-1", Text: "A", Kind: "section", X: 1160, Y: 600, Width: 80, Height: 40, Angle: 0, Lines: []string{"A"}},
			{ID: "item-1", Text: "x", Kind: "item", X: 1340, Y: 600, Width: 80, Height: 40, Lines: []string{"x"}},
		},
		Connections: []Connection{
			{From: "title", To: "section-1", Tier: TierPrimary},
			{From: "section-1", To: "item-1", Tier: TierSecondary},
		},
	}
}

func TestSceneRoundTrip(t *testing.T) {
	want := sampleScene()

	data, err := MarshalScene(want)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}
	got, err := UnmarshalScene(data)
	if err != nil {
		t.Fatalf("UnmarshalScene: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSceneFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	want := sampleScene()

	if err := WriteSceneFile(want, path); err != nil {
		t.Fatalf("WriteSceneFile: %v", err)
	}
	got, err := ReadSceneFile(path)
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch")
	}
}

func TestReadSceneFileMissing(t *testing.T) {
	_, err := ReadSceneFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(errUnwrapAll(err)) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}

func errUnwrapAll(err error) error {
	for {
		type unwrapper interface{ Unwrap() error }
		u, ok := err.(unwrapper)
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}

func TestSceneBounds(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		want  [4]float64
		ok    bool
	}{
		{name: "Empty", scene: Scene{}, ok: false},
		{
			name: "Single",
			scene: Scene{Nodes: []Node{
				{ID: "a", X: 500, Y: 500, Width: 100, Height: 100},
			}},
			want: [4]float64{450, 450, 550, 550},
			ok:   true,
		},
		{
			name: "Two",
			scene: Scene{Nodes: []Node{
				{ID: "a", X: 0, Y: 0, Width: 80, Height: 40},
				{ID: "b", X: 200, Y: -100, Width: 80, Height: 40},
			}},
			want: [4]float64{-40, -120, 240, 20},
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minX, minY, maxX, maxY, ok := tt.scene.Bounds()
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			got := [4]float64{minX, minY, maxX, maxY}
			if got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeByID(t *testing.T) {
	s := sampleScene()
	if n := s.NodeByID("section-1"); n == nil || n.Text != "A" {
		t.Errorf("NodeByID(section-1) = %+v", n)
	}
	if n := s.NodeByID("missing"); n != nil {
		t.Errorf("NodeByID(missing) = %+v, want nil", n)
	}
}
