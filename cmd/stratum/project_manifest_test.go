package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProjectManifestSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stratum.toml"), `[dump]
format = "json"
trailing_comma = true

[analysis]
fixtures = "fixtures"
max_diagnostics = 7
`)
	nested := filepath.Join(root, "fixtures", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("manifest not found: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	cfg := m.Config
	if cfg.Dump.Format != "json" || !cfg.Dump.TrailingComma || cfg.Analysis.MaxDiagnostics != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if got, want := m.fixtureDir(), filepath.Join(root, "fixtures"); got != want {
		t.Fatalf("fixtureDir = %q, want %q", got, want)
	}
}

func TestLoadProjectConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"format":   "[dump]\nformat = \"yaml\"\n",
		"negative": "[analysis]\nmax_diagnostics = -1\n",
		"unknown":  "[dump]\ncolour = true\n",
		"syntax":   "[dump\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "stratum.toml")
			writeFile(t, path, content)
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), path) {
				t.Fatalf("want error naming %s, got %v", path, err)
			}
		})
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.toml"), "")
	writeFile(t, filepath.Join(dir, "sub", "a.toml"), "")
	writeFile(t, filepath.Join(dir, "stratum.toml"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	single := filepath.Join(dir, "b.toml")

	got, err := expandInputs([]string{dir, single})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "b.toml"), filepath.Join(dir, "sub", "a.toml"), single}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
	if _, err := expandInputs([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("missing input accepted")
	}
	if _, err := expandInputs([]string{t.TempDir()}); err == nil {
		t.Fatalf("empty directory accepted")
	}
}
