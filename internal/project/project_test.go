package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestFindManifestWalksUpFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	path, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected to find the manifest")
	}
	want := filepath.Join(root, ManifestFileName)
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
}

func TestFindManifestNotFound(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no manifest to be found in an empty directory tree")
	}
}

func TestAllow64BitOpsDefaultsTrue(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "mute_warnings = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Allow64BitOps() {
		t.Fatal("expected allow_64bit_ops to default to true when absent")
	}
	if !cfg.MuteWarnings() {
		t.Fatal("expected mute_warnings to be true")
	}
}

func TestAllow64BitOpsExplicitFalse(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "allow_64bit_ops = false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Allow64BitOps() {
		t.Fatal("expected allow_64bit_ops to honor an explicit false")
	}
}

func TestDumpTargetsAreValidated(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "dump = [\"ast\", \"bogus\"]\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown dump target")
	}
}

func TestDumpTargetsAccepted(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "dump = [\"ast\", \"scope\", \"types\"]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Dump()) != 3 {
		t.Fatalf("expected 3 dump targets, got %v", cfg.Dump())
	}
}

func TestLoadManifestEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "allow_64bit_ops = false\nmute_warnings = true\n")
	sub := filepath.Join(root, "pkg")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	manifest, ok, err := LoadManifest(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a manifest to be found")
	}
	if manifest.Root != root {
		t.Fatalf("expected root %s, got %s", root, manifest.Root)
	}
	if manifest.Config.Allow64BitOps() {
		t.Fatal("expected allow_64bit_ops to be false")
	}
}
