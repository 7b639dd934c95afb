// Package project loads a compilation's turing.toml manifest: the
// compiler options (64-bit constant evaluation width, warning muting,
// default dump targets) a driver invocation falls back to once command
// line flags are exhausted.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestFileName is the well-known manifest name searched for by
// FindManifest, the Turing analogue of the teacher's surge.toml.
const ManifestFileName = "turing.toml"

// DumpTargets enumerates the dump kinds a manifest's dump list may name
// (the driver's ast/scope/types dump formats).
var DumpTargets = []string{"ast", "scope", "types"}

// IsValidDumpTarget reports whether name is one of DumpTargets.
func IsValidDumpTarget(name string) bool {
	for _, t := range DumpTargets {
		if t == name {
			return true
		}
	}
	return false
}

// Config is turing.toml's decoded shape: allow_64bit_ops, mute_warnings and
// dump are top-level keys, not nested under a table. Allow64BitOps defaults
// to true (Open Question: full u64/i64 constant-evaluation width unless a
// manifest opts into the narrower 32-bit behavior).
type Config struct {
	Allow64BitOpsKey *bool    `toml:"allow_64bit_ops"`
	MuteWarningsKey  bool     `toml:"mute_warnings"`
	DumpKey          []string `toml:"dump"`
}

// Allow64BitOps resolves the manifest's allow_64bit_ops key, defaulting to
// true when the key is absent.
func (c Config) Allow64BitOps() bool {
	if c.Allow64BitOpsKey == nil {
		return true
	}
	return *c.Allow64BitOpsKey
}

// MuteWarnings resolves the manifest's mute_warnings key.
func (c Config) MuteWarnings() bool { return c.MuteWarningsKey }

// Dump resolves the manifest's dump target list.
func (c Config) Dump() []string { return c.DumpKey }

// Manifest is a loaded turing.toml plus the filesystem location it was
// found at.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// FindManifest walks up from startDir looking for turing.toml, the same
// upward-search shape as the teacher's surge.toml lookup: each directory
// is tried in turn until the filesystem root is reached without a match.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(statErr) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses and validates the manifest at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	for _, target := range cfg.DumpKey {
		if !IsValidDumpTarget(target) {
			return Config{}, fmt.Errorf("%s: dump names unknown target %q (want one of %s)",
				path, target, strings.Join(DumpTargets, ", "))
		}
	}
	return cfg, nil
}

// LoadManifest finds and parses the turing.toml governing startDir. ok is
// false (with a nil error) when no manifest exists anywhere above
// startDir, the signal a driver uses to fall back to built-in defaults.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}
