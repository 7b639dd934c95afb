package main

import (
	"testing"

	"turingc/internal/project"
)

func TestValidateDumpTargetsAcceptsKnownNames(t *testing.T) {
	if err := validateDumpTargets([]string{"ast", "types"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateDumpTargets(nil); err != nil {
		t.Fatalf("unexpected error for empty target list: %v", err)
	}
}

func TestValidateDumpTargetsRejectsUnknownName(t *testing.T) {
	err := validateDumpTargets([]string{"ast", "bogus"})
	if err == nil {
		t.Fatal("expected an error for an unknown dump target")
	}
}

func TestResolveMuteWarnings(t *testing.T) {
	cases := []struct {
		name       string
		manifest   bool
		flag       bool
		wantResult bool
	}{
		{"both off", false, false, false},
		{"flag only", false, true, true},
		{"manifest only", true, false, true},
		{"both on", true, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := project.Config{MuteWarningsKey: tc.manifest}
			if got := resolveMuteWarnings(cfg, tc.flag); got != tc.wantResult {
				t.Fatalf("resolveMuteWarnings(%v, %v) = %v, want %v", tc.manifest, tc.flag, got, tc.wantResult)
			}
		})
	}
}

func TestResolveAllow64BitOpsDefaultsToManifest(t *testing.T) {
	narrow := false
	cfg := project.Config{Allow64BitOpsKey: &narrow}
	if got := resolveAllow64BitOps(cfg, true, false); got != false {
		t.Fatalf("expected manifest value to win when the flag was not set, got %v", got)
	}
}

func TestResolveAllow64BitOpsFlagOverridesManifest(t *testing.T) {
	narrow := false
	cfg := project.Config{Allow64BitOpsKey: &narrow}
	if got := resolveAllow64BitOps(cfg, true, true); got != true {
		t.Fatalf("expected the explicit flag to override the manifest, got %v", got)
	}
}

func TestResolveAllow64BitOpsDefaultsToTrueWithNoManifest(t *testing.T) {
	cfg := project.Config{}
	if got := resolveAllow64BitOps(cfg, false, false); got != true {
		t.Fatalf("expected the built-in default (true) with no manifest and no flag, got %v", got)
	}
}
