package symbols

import (
	"fmt"
	"io"
	"sort"

	"turingc/internal/source"
)

// EntryDump is one identifier's row in a scope's dump table.
type EntryDump struct {
	Name    string
	Attrs   []string
	Usages  int
	Defined bool
}

// ScopeDump is one scope frame's rendered table, the structured form
// internal/snapshot caches and the "scope" dump format renders (spec
// section 6: "per-scope table of identifier names, attributes, and
// usage counts").
type ScopeDump struct {
	Index   int
	Kind    string
	Entries []EntryDump
}

// DumpScopes renders every scope u ever opened, in opening order, using
// in to resolve interned names. Scopes are read from UnitScope.Scopes()
// rather than from the (possibly-popped) stack, since UnitScope retains
// every scope's own name map after PopScope.
func DumpScopes(u *UnitScope, in *source.Interner) []ScopeDump {
	infos := u.Scopes()
	out := make([]ScopeDump, len(infos))
	for i, info := range infos {
		entries := make([]EntryDump, 0, len(info.Names))
		for nameID, defID := range info.Names {
			name := fmt.Sprintf("str#%d", nameID)
			if in != nil {
				if s, ok := in.Lookup(nameID); ok {
					name = s
				}
			}
			ident := u.Idents.Get(defID)
			entry := EntryDump{Name: name}
			if ident != nil {
				entry.Usages = ident.Usages
				entry.Defined = ident.IsDeclared
				entry.Attrs = identAttrs(ident)
			}
			entries = append(entries, entry)
		}
		sort.Slice(entries, func(a, b int) bool { return entries[a].Name < entries[b].Name })
		out[i] = ScopeDump{Index: i, Kind: info.Kind.String(), Entries: entries}
	}
	return out
}

func identAttrs(ident *Identifier) []string {
	var attrs []string
	if ident.IsConst {
		attrs = append(attrs, "const")
	}
	if ident.IsTypedef {
		attrs = append(attrs, "typedef")
	}
	if ident.IsPervasive {
		attrs = append(attrs, "pervasive")
	}
	if ident.IsCompileEval {
		attrs = append(attrs, "compile-eval")
	}
	if !ident.IsDeclared {
		attrs = append(attrs, "undeclared")
	}
	return attrs
}

// RenderScopes writes scopes as a plain-text table to w, one scope per
// section and one identifier per line.
func RenderScopes(w io.Writer, scopes []ScopeDump) error {
	for _, s := range scopes {
		if _, err := fmt.Fprintf(w, "scope #%d (%s)\n", s.Index, s.Kind); err != nil {
			return err
		}
		for _, e := range s.Entries {
			attrs := "-"
			if len(e.Attrs) > 0 {
				attrs = fmt.Sprintf("%v", e.Attrs)
			}
			if _, err := fmt.Fprintf(w, "  %-20s attrs=%-30s usages=%d\n", e.Name, attrs, e.Usages); err != nil {
				return err
			}
		}
	}
	return nil
}
