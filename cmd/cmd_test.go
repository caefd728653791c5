package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSectionsCommand(t *testing.T) {
	out, err := run(t, "sections")
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if !strings.Contains(out, "Brigade Training Platform (10 sections)") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "#web-menus") {
		t.Errorf("missing fragment column:\n%s", out)
	}
}

func TestSectionsJSON(t *testing.T) {
	out, err := run(t, "sections", "--json")
	if err != nil {
		t.Fatalf("sections --json: %v", err)
	}
	var doc struct {
		Groups   []string          `json:"groups"`
		Sections []json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(doc.Groups) != 2 || len(doc.Sections) != 10 {
		t.Errorf("groups=%v sections=%d", doc.Groups, len(doc.Sections))
	}
	sectionsCmd.Flags().Set("json", "false")
}

func TestFragmentCommands(t *testing.T) {
	out, err := run(t, "fragment", "encode", "mobile", "quizzes")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.TrimSpace(out) != "#mobile-quizzes" {
		t.Errorf("encode = %q", out)
	}

	out, err = run(t, "fragment", "decode", "#WEB-Menus")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out, "web-menus\t") {
		t.Errorf("decode = %q", out)
	}

	if _, err := run(t, "fragment", "decode", "#kitchen-menus"); err == nil {
		t.Error("expected an error for an unknown group")
	}
	if _, err := run(t, "fragment", "encode", "web", "nope"); err == nil {
		t.Error("expected an error for an unknown section")
	}
}

func TestExportCommand(t *testing.T) {
	t.Setenv("CI", "true")
	dir := filepath.Join(t.TempDir(), "out")

	if _, err := run(t, "export", "--out", dir); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, want := range []string{
		"brigade dev\n",
		"not found, using defaults",
		`built-in demo, "Brigade Training Platform" with 10 sections`,
		"memory",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version --short: %v", err)
	}
	if out != "brigade dev\n" {
		t.Errorf("version --short = %q", out)
	}
	versionCmd.Flags().Set("short", "false")
}
