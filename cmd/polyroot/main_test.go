package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/polyroot/internal/export"
	"github.com/san-kum/polyroot/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	root := newRootCmd()
	want := []string{"format", "eval", "diff", "root", "scan", "plot", "explore",
		"presets", "list", "show", "export-json", "export-svg"}
	for _, name := range want {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestExportOutDefaults(t *testing.T) {
	root := newRootCmd()

	tests := []struct {
		command string
		want    string
	}{
		{"export-json", ""},
		{"export-svg", "polyroot.svg"},
	}
	for _, tt := range tests {
		c, _, err := root.Find([]string{tt.command})
		if err != nil {
			t.Fatalf("find %s: %v", tt.command, err)
		}
		if got := c.Flags().Lookup("out").DefValue; got != tt.want {
			t.Errorf("%s --out default = %q, want %q", tt.command, got, tt.want)
		}
	}
}

func TestFormatAndDiff(t *testing.T) {
	out, err := execute(t, "format", "1x^3 -2x^2 -11x + 12")
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if out != "1x^3 -2x^2 -11x + 12\n" {
		t.Errorf("format output = %q", out)
	}

	out, err = execute(t, "diff", "1x^3 -2x^2 -11x + 12")
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if out != "3x^2 -4x -11\n" {
		t.Errorf("diff output = %q", out)
	}
}

func TestExportJSON_StdoutByDefault(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	data := filepath.Join(dir, "data")

	if _, err := execute(t, "root", "1x^2 -2", "-g", "1", "--save", "--data", data); err != nil {
		t.Fatalf("root failed: %v", err)
	}
	runs, err := storage.New(data).List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one stored run, got %d (%v)", len(runs), err)
	}

	out, err := execute(t, "export-json", "--data", data, runs[0].ID)
	if err != nil {
		t.Fatalf("export-json failed: %v", err)
	}

	var got export.RunData
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stdout is not a run: %v\n%s", err, out)
	}
	if got.ID != runs[0].ID || len(got.Steps) == 0 {
		t.Errorf("unexpected export: id %q, %d steps", got.ID, len(got.Steps))
	}
	if _, err := os.Stat(filepath.Join(dir, "polyroot.svg")); !os.IsNotExist(err) {
		t.Error("export-json wrote polyroot.svg")
	}
}

func TestExportJSON_DivergedRun(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data")

	_, err := execute(t, "root", "1x^2 + 1", "-g", "1e-320", "--save", "--divergence-bound", "0", "--data", data)
	if err == nil {
		t.Fatal("expected the run to diverge")
	}
	runs, err := storage.New(data).List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one stored run, got %d (%v)", len(runs), err)
	}

	out, err := execute(t, "export-json", "--data", data, runs[0].ID)
	if err != nil {
		t.Fatalf("export-json failed: %v", err)
	}
	if !strings.Contains(out, `"next": null`) {
		t.Errorf("expected null iterate in %s", out)
	}
}
