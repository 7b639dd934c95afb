package types

import (
	"fmt"
	"io"

	"turingc/internal/ids"
)

// EntryDump is one type arena slot's rendered row, the structured form
// the "types" dump format walks (spec section 6: "the type arena in
// declaration order, one entry per line, with arena indices").
type EntryDump struct {
	Index ids.TypeIdx
	Kind  string
	Repr  string
}

// Dump walks t in declaration order and produces one EntryDump per
// descriptor.
func Dump(t *Table) []EntryDump {
	slice := t.Slice()
	out := make([]EntryDump, len(slice))
	for i, ty := range slice {
		idx := ids.TypeIdx(i + 1) // arena indices are 1-based.
		out[i] = EntryDump{Index: idx, Kind: ty.Kind.String(), Repr: reprType(ty)}
	}
	return out
}

// reprType gives a short structural summary of ty's distinguishing
// fields, the same single-line-per-entry shape the "types" dump uses.
func reprType(ty Type) string {
	switch ty.Kind {
	case KindSizedChar, KindSizedString:
		if ty.IsStar {
			return "size=*"
		}
		return fmt.Sprintf("size=expr#%d", ty.Size)
	case KindName:
		return fmt.Sprintf("ref=expr#%d", ty.NameRef)
	case KindArray:
		return fmt.Sprintf("ranges=%d flexible=%v elem=%s", len(ty.Ranges), ty.IsFlexible, reprRef(ty.Elem))
	case KindPointer:
		return fmt.Sprintf("unchecked=%v to=%s", ty.Unchecked, reprRef(ty.To))
	case KindSet:
		return fmt.Sprintf("index=%s", reprRef(ty.Index))
	case KindEnum:
		return fmt.Sprintf("fields=%d", len(ty.Fields))
	case KindEnumField:
		return fmt.Sprintf("parent=type#%d ordinal=%d", ty.Parent, ty.Ordinal)
	case KindRange:
		if ty.End.IsValid() {
			return fmt.Sprintf("start=expr#%d end=expr#%d", ty.Start, ty.End)
		}
		return fmt.Sprintf("start=expr#%d end=*", ty.Start)
	case KindFunction:
		return fmt.Sprintf("function=%v params=%d result=%s", ty.IsFunction, len(ty.Params), reprRef(ty.Result))
	case KindAlias:
		return fmt.Sprintf("alias-to=%s", reprRef(ty.AliasTo))
	case KindForward:
		return fmt.Sprintf("resolved=%v", ty.Resolved)
	default:
		return ""
	}
}

func reprRef(r TypeRef) string {
	if r.IsPrimitive() {
		return r.Prim.String()
	}
	if !r.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("type#%d", r.Named)
}

// RenderTypes writes entries as a plain-text table, one entry per line.
func RenderTypes(w io.Writer, entries []EntryDump) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%4d  %-14s %s\n", e.Index, e.Kind, e.Repr); err != nil {
			return err
		}
	}
	return nil
}
