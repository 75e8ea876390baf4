package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func testCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestRootCommand(t *testing.T) {
	root := testCLI().RootCommand()

	if root.Use != "mindweave" {
		t.Errorf("Use = %q, want %q", root.Use, "mindweave")
	}

	want := []string{"parse", "scene", "render", "view", "serve", "cache", "completion"}
	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := testCLI()
	c.SetLogLevel(log.DebugLevel)

	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want %v", c.Logger.GetLevel(), log.DebugLevel)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single", "png", []string{"png"}},
		{"multiple", "svg,png,dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewCacheNoCache(t *testing.T) {
	store, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true) error: %v", err)
	}
	defer store.Close()

	// The null cache never stores anything.
	if err := store.Set(t.Context(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, hit, _ := store.Get(t.Context(), "k"); hit {
		t.Error("null cache should never hit")
	}
}
