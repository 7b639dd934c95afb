// Package types implements the type table: an append-only arena of Type
// descriptors keyed by TypeIdx, plus the TypeRef sum used everywhere else
// to refer to either a bare primitive or an arena-resident named type
// (spec section 4.6's TypeTable).
package types

import (
	"turingc/internal/arena"
	"turingc/internal/ids"
	"turingc/internal/source"
)

// PrimitiveKind enumerates Turing's built-in scalar types. Primitives
// never live in the type arena (spec section 4.6's invariant).
type PrimitiveKind uint8

const (
	Invalid PrimitiveKind = iota
	Int
	Int1
	Int2
	Int4
	Nat
	Nat1
	Nat2
	Nat4
	Real
	Real4
	Real8
	Boolean
	Addressint
	Char
	Str
)

func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case Int, Int1, Int2, Int4, Nat, Nat1, Nat2, Nat4, Addressint:
		return true
	default:
		return false
	}
}

func (k PrimitiveKind) IsReal() bool {
	switch k {
	case Real, Real4, Real8:
		return true
	default:
		return false
	}
}

func (k PrimitiveKind) IsNumber() bool { return k.IsInteger() || k.IsReal() }

func (k PrimitiveKind) String() string {
	switch k {
	case Int:
		return "int"
	case Int1:
		return "int1"
	case Int2:
		return "int2"
	case Int4:
		return "int4"
	case Nat:
		return "nat"
	case Nat1:
		return "nat1"
	case Nat2:
		return "nat2"
	case Nat4:
		return "nat4"
	case Real:
		return "real"
	case Real4:
		return "real4"
	case Real8:
		return "real8"
	case Boolean:
		return "boolean"
	case Addressint:
		return "addressint"
	case Char:
		return "char"
	case Str:
		return "string"
	default:
		return "<invalid type>"
	}
}

// RefKind discriminates TypeRef's two shapes.
type RefKind uint8

const (
	RefInvalid RefKind = iota
	RefPrimitive
	RefNamed
)

// TypeRef is either a Primitive(kind) or a Named(TypeIdx) (spec section
// 3's "A TypeRef is either a Primitive(kind) or Named(TypeIdx)").
//
// LitStrLen/HasLitStrLen let a string literal expression's inferred type
// carry its own character count without an arena-resident sized-string
// declaration backing it: Prim == Str with HasLitStrLen set means "this
// string value's static type is exactly string(LitStrLen)", the same
// compile-time-known width a declared `string(N)` gets, so charSeqLen
// can size-check a literal against a fixed-width target (spec section
// 4.8 rule 5) instead of treating every `string`-kind value as
// runtime-checked (rule 6).
type TypeRef struct {
	Kind  RefKind
	Prim  PrimitiveKind
	Named ids.TypeIdx

	LitStrLen    uint64
	HasLitStrLen bool
}

func PrimRef(k PrimitiveKind) TypeRef  { return TypeRef{Kind: RefPrimitive, Prim: k} }
func NamedRef(idx ids.TypeIdx) TypeRef { return TypeRef{Kind: RefNamed, Named: idx} }

// LitStringRef is a string literal's static type: string, sized to its
// own character count.
func LitStringRef(length uint64) TypeRef {
	return TypeRef{Kind: RefPrimitive, Prim: Str, LitStrLen: length, HasLitStrLen: true}
}

func (r TypeRef) IsValid() bool     { return r.Kind != RefInvalid }
func (r TypeRef) IsPrimitive() bool { return r.Kind == RefPrimitive }

// TypeError is the placeholder substituted for a subtree the validator
// could not resolve (spec section 4.7: "replaces the checked subtree's
// type with TypeError; subsequent checks... suppress further
// diagnostics"). Modeled as an otherwise-unused primitive slot rather than
// a sentinel TypeIdx so it composes with plain TypeRef equality checks.
var TypeError = TypeRef{Kind: RefPrimitive, Prim: Invalid}

func (r TypeRef) IsError() bool { return r.Kind == RefPrimitive && r.Prim == Invalid }

// Kind discriminates the variants an arena-resident Type descriptor can
// take (spec section 3's Ty entity).
type Kind uint8

const (
	KindInvalid Kind = iota
	KindSizedChar
	KindSizedString
	KindName
	KindArray
	KindPointer
	KindSet
	KindEnum
	KindEnumField
	KindRange
	KindFunction
	KindAlias
	KindForward
)

// Param is one entry in a function/procedure type's parameter list.
type Param struct {
	Name source.StringID
	Type TypeRef
}

// Type is one arena-resident type descriptor. Fields are grouped by which
// Kind makes them meaningful, the same single-struct-multi-payload shape
// used by token.Token for lexical payloads.
type Type struct {
	Kind Kind
	Span source.Span

	// SizedChar / SizedString: Size is the compile-time length
	// expression; IsStar marks the '*' spelling (valid only in
	// subprogram parameters), in which case Size is NoExprIdx.
	Size   ids.ExprIdx
	IsStar bool

	// Name: an unresolved reference in type position, awaiting the
	// validator to resolve it to a concrete TypeRef.
	NameRef ids.ExprIdx

	// Array
	Ranges     []TypeRef
	Elem       TypeRef
	IsFlexible bool

	// Pointer
	Unchecked bool
	To        TypeRef

	// Set index / EnumField parent-as-ref / Range base: these never
	// overlap on one descriptor, so they share one field.
	Index TypeRef

	// Enum
	Fields []ids.DefID

	// EnumField
	Parent  ids.TypeIdx
	Ordinal int

	// Range
	Start ids.ExprIdx
	End   ids.ExprIdx // NoExprIdx when the upper bound is '*'
	Base  TypeRef

	// Function / Procedure
	Params     []Param
	Result     TypeRef // zero value (RefInvalid) for a procedure
	IsFunction bool

	// Alias
	AliasTo TypeRef

	// Forward
	Resolved bool
}

// Table is the per-unit type arena (spec section 4.6's TypeTable).
type Table struct {
	arena *arena.Arena[Type]
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{arena: arena.New[Type](64)}
}

// Declare appends ty and returns its new TypeIdx.
func (t *Table) Declare(ty Type) ids.TypeIdx {
	return ids.TypeIdx(t.arena.Alloc(ty))
}

// Get returns the descriptor at idx, or nil if idx is invalid.
func (t *Table) Get(idx ids.TypeIdx) *Type {
	return t.arena.Get(uint32(idx))
}

// Replace overwrites the descriptor at idx in place, used to close a
// Forward with its resolved body or retarget an Alias.
func (t *Table) Replace(idx ids.TypeIdx, ty Type) {
	t.arena.Set(uint32(idx), ty)
}

// Len returns the number of descriptors declared so far.
func (t *Table) Len() uint32 { return t.arena.Len() }

// Slice returns a copy of every descriptor in declaration order, the
// shape the "types" dump format walks (spec section 6: "the type arena
// in declaration order, one entry per line, with arena indices").
func (t *Table) Slice() []Type { return t.arena.Slice() }

// String renders k's Kind tag, used by the "types" dump format.
func (k Kind) String() string {
	switch k {
	case KindSizedChar:
		return "sized_char"
	case KindSizedString:
		return "sized_string"
	case KindName:
		return "name"
	case KindArray:
		return "array"
	case KindPointer:
		return "pointer"
	case KindSet:
		return "set"
	case KindEnum:
		return "enum"
	case KindEnumField:
		return "enum_field"
	case KindRange:
		return "range"
	case KindFunction:
		return "function"
	case KindAlias:
		return "alias"
	case KindForward:
		return "forward"
	default:
		return "invalid"
	}
}

// Dealias follows Alias links, and a resolved Forward's AliasTo link,
// until a non-alias TypeRef is reached. A cycle (which the validator is
// expected to reject before it reaches here) stops the walk rather than
// looping forever.
func (t *Table) Dealias(ref TypeRef) TypeRef {
	visited := make(map[ids.TypeIdx]bool)
	for ref.Kind == RefNamed {
		ty := t.Get(ref.Named)
		if ty == nil {
			return ref
		}
		if ty.Kind != KindAlias && !(ty.Kind == KindForward && ty.Resolved) {
			return ref
		}
		if visited[ref.Named] {
			return ref
		}
		visited[ref.Named] = true
		ref = ty.AliasTo
	}
	return ref
}
