package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"turingc/internal/diag"
	"turingc/internal/hir"
	"turingc/internal/ids"
	"turingc/internal/parser"
	"turingc/internal/project"
	"turingc/internal/sema"
	"turingc/internal/snapshot"
	"turingc/internal/source"
	"turingc/internal/symbols"
	"turingc/internal/types"
)

var buildCmd = &cobra.Command{
	Use:   "build <path>",
	Short: "Parse, lower and validate a Turing source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringSlice("dump", nil, "structured dumps to print (ast, scope, types)")
	buildCmd.Flags().Bool("mute-warnings", false, "suppress warning-severity diagnostics")
	buildCmd.Flags().Bool("only-parser", false, "stop after parsing; skip lowering and validation")
	buildCmd.Flags().Bool("allow-64bit-ops", true, "permit 64-bit integer literals and operators")
	buildCmd.Flags().String("dump-cache", "", "directory used to cache structured dump output between runs")
}

func runBuild(cmd *cobra.Command, args []string) error {
	path := args[0]
	dumpTargets, err := cmd.Flags().GetStringSlice("dump")
	if err != nil {
		return err
	}
	if err := validateDumpTargets(dumpTargets); err != nil {
		return err
	}

	muteWarningsFlag, err := cmd.Flags().GetBool("mute-warnings")
	if err != nil {
		return err
	}
	onlyParser, err := cmd.Flags().GetBool("only-parser")
	if err != nil {
		return err
	}
	allow64Flag, err := cmd.Flags().GetBool("allow-64bit-ops")
	if err != nil {
		return err
	}
	dumpCacheDir, err := cmd.Flags().GetString("dump-cache")
	if err != nil {
		return err
	}
	colorValue, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	manifest, manifestFound, err := project.LoadManifest(filepath.Dir(path))
	if err != nil {
		return err
	}
	cfg := project.Config{}
	if manifestFound {
		cfg = manifest.Config
	}
	if len(dumpTargets) == 0 {
		dumpTargets = cfg.Dump()
	}
	muteWarnings := resolveMuteWarnings(cfg, muteWarningsFlag)
	allow64 := resolveAllow64BitOps(cfg, allow64Flag, cmd.Flags().Changed("allow-64bit-ops"))

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fs := source.NewFileSet()
	fileID := fs.Add(path, content)
	in := source.NewInterner()
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.NewBagReporter(bag)

	result := parser.ParseFile(fs.Get(fileID), in, parser.Options{
		Reporter:      rep,
		MaxErrors:     maxDiagnostics,
		Allow64BitOps: allow64,
	})

	var unit *hir.Unit
	if !onlyParser {
		unit = hir.Lower(result.Root)
		sema.Check(unit, ids.UnitID(1), sema.Options{
			Allow64BitOps: allow64,
			MuteWarnings:  muteWarnings,
			In:            in,
		}, rep)
	}

	bag.Sort()
	useColor, err := resolveColor(colorValue, os.Stdout)
	if err != nil {
		return err
	}
	renderDiagnostics(os.Stdout, bag, fs, useColor)

	if len(dumpTargets) > 0 {
		if unit == nil {
			return fmt.Errorf("--dump requires lowering; remove --only-parser")
		}
		if err := runDumps(os.Stdout, unit, in, dumpTargets, content, dumpCacheDir); err != nil {
			return err
		}
	}

	if bag.HasErrors() {
		return fmt.Errorf("%s: build failed with errors", path)
	}
	return nil
}

// runDumps renders each requested dump target, consulting and populating a
// snapshot.Cache at cacheDir when one is configured.
func runDumps(w io.Writer, unit *hir.Unit, in *source.Interner, targets []string, content []byte, cacheDir string) error {
	var cache *snapshot.Cache
	var key snapshot.Digest
	if cacheDir != "" {
		c, err := snapshot.Open(cacheDir)
		if err != nil {
			return err
		}
		cache = c
		key = snapshot.Key(content, targets)
		if payload, ok, err := cache.Get(key); err == nil && ok {
			return renderPayload(w, payload, targets)
		}
	}

	var ast *hir.Node
	var scopes []symbols.ScopeDump
	var typeEntries []types.EntryDump
	for _, target := range targets {
		switch target {
		case "ast":
			ast = hir.BuildAST(unit, in)
		case "scope":
			scopes = symbols.DumpScopes(unit.Scope, in)
		case "types":
			typeEntries = types.Dump(unit.Types)
		}
	}

	payload := snapshot.NewPayload(ast, scopes, typeEntries)
	if cache != nil {
		if err := cache.Put(key, payload); err != nil {
			return err
		}
	}
	return renderPayload(w, payload, targets)
}

func renderPayload(w io.Writer, payload *snapshot.Payload, targets []string) error {
	for _, target := range targets {
		fmt.Fprintf(w, "== %s ==\n", target)
		switch target {
		case "ast":
			if payload.AST == nil {
				continue
			}
			if err := hir.NewPrinter(w).Print(payload.AST); err != nil {
				return err
			}
		case "scope":
			if err := symbols.RenderScopes(w, payload.Scopes); err != nil {
				return err
			}
		case "types":
			if err := types.RenderTypes(w, payload.Types); err != nil {
				return err
			}
		}
	}
	return nil
}
