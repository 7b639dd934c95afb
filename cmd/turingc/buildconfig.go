package main

import (
	"fmt"

	"turingc/internal/project"
)

// validateDumpTargets rejects any --dump value that isn't one of
// project.DumpTargets, the same check turing.toml's own dump key goes
// through in internal/project.Load.
func validateDumpTargets(targets []string) error {
	for _, target := range targets {
		if !project.IsValidDumpTarget(target) {
			return fmt.Errorf("--dump names unknown target %q", target)
		}
	}
	return nil
}

// resolveMuteWarnings applies config precedence flags > manifest: the
// manifest's mute_warnings is honored, but either source muting warnings
// is enough to mute them (there is no flag for un-muting a manifest that
// already mutes).
func resolveMuteWarnings(cfg project.Config, flagValue bool) bool {
	return cfg.MuteWarnings() || flagValue
}

// resolveAllow64BitOps applies config precedence flags > manifest >
// built-in default: the manifest's value is used unless the user
// explicitly passed --allow-64bit-ops on the command line.
func resolveAllow64BitOps(cfg project.Config, flagValue, flagChanged bool) bool {
	if flagChanged {
		return flagValue
	}
	return cfg.Allow64BitOps()
}
