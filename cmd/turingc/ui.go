package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"turingc/internal/diag"
	"turingc/internal/hir"
	"turingc/internal/ids"
	"turingc/internal/parser"
	"turingc/internal/project"
	"turingc/internal/sema"
	"turingc/internal/source"
	"turingc/internal/symbols"
	"turingc/internal/types"
	"turingc/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui <path>",
	Short: "Browse a unit's AST, scope and type dumps and its diagnostics interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	path := args[0]

	manifest, manifestFound, err := project.LoadManifest(filepath.Dir(path))
	if err != nil {
		return err
	}
	cfg := project.Config{}
	if manifestFound {
		cfg = manifest.Config
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fs := source.NewFileSet()
	fileID := fs.Add(path, content)
	in := source.NewInterner()
	bag := diag.NewBag(0)
	rep := diag.NewBagReporter(bag)

	result := parser.ParseFile(fs.Get(fileID), in, parser.Options{
		Reporter:      rep,
		Allow64BitOps: cfg.Allow64BitOps(),
	})
	unit := hir.Lower(result.Root)
	sema.Check(unit, ids.UnitID(1), sema.Options{
		Allow64BitOps: cfg.Allow64BitOps(),
		MuteWarnings:  cfg.MuteWarnings(),
		In:            in,
	}, rep)
	bag.Sort()

	sections := []ui.Section{
		{Title: "ast", Body: renderAST(unit, in)},
		{Title: "scope", Body: renderScopes(unit, in)},
		{Title: "types", Body: renderTypes(unit)},
	}
	if bag.Len() > 0 {
		var sb strings.Builder
		useColor, _ := resolveColor("off", os.Stdout)
		renderDiagnostics(&sb, bag, fs, useColor)
		sections = append(sections, ui.Section{Title: "diagnostics", Body: sb.String()})
	}

	program := tea.NewProgram(ui.NewBrowser(path, sections), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func renderAST(unit *hir.Unit, in *source.Interner) string {
	var sb strings.Builder
	_ = hir.Dump(&sb, unit, in)
	return sb.String()
}

func renderScopes(unit *hir.Unit, in *source.Interner) string {
	var sb strings.Builder
	_ = symbols.RenderScopes(&sb, symbols.DumpScopes(unit.Scope, in))
	return sb.String()
}

func renderTypes(unit *hir.Unit) string {
	var sb strings.Builder
	_ = types.RenderTypes(&sb, types.Dump(unit.Types))
	return sb.String()
}
