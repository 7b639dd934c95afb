package consteval

import (
	"turingc/internal/hir"
	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/token"
)

type state uint8

const (
	stateUnevaluated state = iota
	stateEvaluating
	stateValue
	stateError
)

type entry struct {
	state state
	unit  ids.UnitID
	root  ids.ExprIdx
	value ConstValue
	err   Spanned
}

// ConstExprIdx is an opaque handle into a Ctx's table of deferred
// expressions, returned by DeferExpr.
type ConstExprIdx uint32

const NoConstExprIdx ConstExprIdx = 0

// Ctx evaluates compile-time expressions for one compilation unit, with
// cycle detection (spec section 4.9). Concurrent validation of several
// units uses one Ctx per unit (spec section 5), rather than one Ctx
// shared across units.
type Ctx struct {
	unit    *hir.Unit
	unitID  ids.UnitID
	allow64 bool
	entries []entry
	vars    map[ids.DefID]ConstExprIdx
}

// NewCtx returns a Ctx bound to unit. allow64 selects whether an integer
// literal's default width is 32 or 64 bits (the allow_64bit_ops project
// setting).
func NewCtx(unit *hir.Unit, unitID ids.UnitID, allow64 bool) *Ctx {
	return &Ctx{unit: unit, unitID: unitID, allow64: allow64, entries: make([]entry, 1)}
}

// DeferExpr registers root for later evaluation and returns its handle.
// unit is recorded on the entry for cross-checking by callers that track
// multiple units; evaluation itself always reads from the Ctx's own
// bound unit.
func (c *Ctx) DeferExpr(unit ids.UnitID, root ids.ExprIdx) ConstExprIdx {
	idx := ConstExprIdx(len(c.entries))
	c.entries = append(c.entries, entry{state: stateUnevaluated, unit: unit, root: root})
	return idx
}

// AddVar associates def with the const expression that initializes it,
// so a later Name reference to def resolves through EvalVar/EvalExpr.
func (c *Ctx) AddVar(def ids.GlobalDefID, ce ConstExprIdx) {
	if c.vars == nil {
		c.vars = make(map[ids.DefID]ConstExprIdx)
	}
	c.vars[def.Def] = ce
}

// EvalExpr evaluates ce, caching the resulting value or error on its
// entry so repeated lookups are free.
func (c *Ctx) EvalExpr(ce ConstExprIdx) (ConstValue, *Spanned) {
	e := &c.entries[ce]
	switch e.state {
	case stateValue:
		return e.value, nil
	case stateError:
		return ConstValue{}, &e.err
	case stateEvaluating:
		e.state = stateError
		e.err = Spanned{Err: EvalCycle, Span: c.spanOf(e.root)}
		return ConstValue{}, &e.err
	}
	e.state = stateEvaluating
	val, err := c.run(e.root)
	if err != nil {
		e.state = stateError
		e.err = *err
		return ConstValue{}, &e.err
	}
	e.state = stateValue
	e.value = val
	return val, nil
}

// EvalVar evaluates the constant bound to def via AddVar.
func (c *Ctx) EvalVar(def ids.GlobalDefID) (ConstValue, *Spanned) {
	ce, ok := c.vars[def.Def]
	if !ok {
		span := source.Span{}
		if ident := c.unit.Scope.Idents.Get(def.Def); ident != nil {
			span = ident.Span
		}
		return ConstValue{}, &Spanned{Err: NoConstExpr, Span: span}
	}
	return c.EvalExpr(ce)
}

func (c *Ctx) spanOf(idx ids.ExprIdx) source.Span {
	if e := c.unit.Exprs.Get(idx); e != nil {
		return e.Span
	}
	return source.Span{}
}

type workKind uint8

const (
	workExpr workKind = iota
	workOp
)

type opWork struct {
	op    token.Kind
	span  source.Span
	arity int
}

type workItem struct {
	kind workKind
	expr ids.ExprIdx
	op   opWork
}

// run evaluates root with the two explicit stacks spec section 4.9
// mandates (eval_stack of work items, operand_stack of computed values)
// instead of recursing directly on the expression tree, so a deeply
// nested constant expression cannot overflow the call stack.
func (c *Ctx) run(root ids.ExprIdx) (ConstValue, *Spanned) {
	evalStack := []workItem{{kind: workExpr, expr: root}}
	var operandStack []ConstValue

	for len(evalStack) > 0 {
		item := evalStack[len(evalStack)-1]
		evalStack = evalStack[:len(evalStack)-1]

		if item.kind == workOp {
			val, err := c.applyOp(item.op, &operandStack)
			if err != nil {
				return ConstValue{}, err
			}
			operandStack = append(operandStack, val)
			continue
		}

		e := c.unit.Exprs.Get(item.expr)
		if e == nil {
			return ConstValue{}, &Spanned{Err: MissingExpr}
		}
		switch e.Kind {
		case hir.ExprMissing:
			return ConstValue{}, &Spanned{Err: MissingExpr, Span: e.Span}

		case hir.ExprLiteral:
			v, err := c.literalValue(e)
			if err != nil {
				return ConstValue{}, err
			}
			operandStack = append(operandStack, v)

		case hir.ExprParen:
			evalStack = append(evalStack, workItem{kind: workExpr, expr: e.Inner})

		case hir.ExprBinary:
			// Op pushed first so it is consumed only after both operands
			// have produced their values; LHS pushed last so it is
			// evaluated first.
			evalStack = append(evalStack, workItem{kind: workOp, op: opWork{op: e.Op, span: e.OpSpan, arity: 2}})
			evalStack = append(evalStack, workItem{kind: workExpr, expr: e.RHS})
			evalStack = append(evalStack, workItem{kind: workExpr, expr: e.LHS})

		case hir.ExprUnary:
			evalStack = append(evalStack, workItem{kind: workOp, op: opWork{op: e.Op, span: e.OpSpan, arity: 1}})
			evalStack = append(evalStack, workItem{kind: workExpr, expr: e.RHS})

		case hir.ExprName:
			v, err := c.evalName(e)
			if err != nil {
				return ConstValue{}, err
			}
			operandStack = append(operandStack, v)

		default:
			return ConstValue{}, &Spanned{Err: MissingExpr, Span: e.Span}
		}
	}

	if len(operandStack) != 1 {
		return ConstValue{}, &Spanned{Err: WrongType}
	}
	return operandStack[0], nil
}

func (c *Ctx) evalName(e *hir.Expr) (ConstValue, *Spanned) {
	ident := c.unit.Scope.Idents.Get(e.Def)
	if ident == nil || !ident.IsConst {
		return ConstValue{}, &Spanned{Err: NoConstExpr, Span: e.Span}
	}
	ce, ok := c.vars[e.Def]
	if !ok {
		return ConstValue{}, &Spanned{Err: NoConstExpr, Span: ident.Span}
	}
	return c.EvalExpr(ce)
}

func (c *Ctx) literalValue(e *hir.Expr) (ConstValue, *Spanned) {
	width := 32
	if c.allow64 {
		width = 64
	}
	switch e.LitKind {
	case hir.LitInt:
		return ConstValue{Kind: ValInteger, Int: ConstInt{Bits: e.IntVal, Width: width}}, nil
	case hir.LitReal:
		return ConstValue{Kind: ValReal, Real: e.RealVal}, nil
	case hir.LitBool:
		return ConstValue{Kind: ValBool, Bool: e.BoolVal}, nil
	case hir.LitChar:
		return ConstValue{Kind: ValInteger, Int: ConstInt{Bits: uint64(e.CharVal), Width: width}}, nil
	default:
		// LitString has no ConstValue representation.
		return ConstValue{}, &Spanned{Err: UnsupportedValue, Span: e.Span}
	}
}
