package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/forcegraph/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "forcegraph version "+version) {
		t.Errorf("output = %q", out)
	}
}

func TestBench(t *testing.T) {
	out, err := execute(t, "bench", "--frames", "20", "--nodes", "12", "--edges", "8")
	if err != nil {
		t.Fatalf("bench failed: %v\n%s", err, out)
	}
	for _, want := range []string{"frames     20", "nodes      12", "edges      8", "pairs      132"} {
		if !strings.Contains(out, want) {
			t.Errorf("bench output missing %q:\n%s", want, out)
		}
	}
}

func TestBenchRejectsBadFlags(t *testing.T) {
	if _, err := execute(t, "bench", "--frames", "0"); err == nil {
		t.Error("expected error for zero frames")
	}
	if _, err := execute(t, "bench", "--frames", "1", "--nodes", "2", "--profile", "gpu"); err == nil {
		t.Error("expected error for unknown profile mode")
	}
}

func TestConfigShowAppliesFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forcegraph.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  damping: 0.9\n"), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "show", "--config", path, "--log-level", "debug")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if cfg.Physics.Damping != 0.9 || cfg.Logging.Level != "debug" {
		t.Errorf("effective config = %+v %+v", cfg.Physics, cfg.Logging)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  damping: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "bench", "--config", path, "--frames", "1"); err == nil || !strings.Contains(err.Error(), "damping") {
		t.Errorf("expected damping validation error, got %v", err)
	}
}
