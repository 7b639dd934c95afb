package sema

import (
	"turingc/internal/consteval"
	"turingc/internal/diag"
	"turingc/internal/ids"
	"turingc/internal/source"
)

func (v *validator) errorAt(span source.Span, code diag.Code, msg string) {
	if v.rep != nil {
		v.rep.Report(code, diag.SevError, span, msg, nil, nil)
	}
}

func (v *validator) warnAt(span source.Span, code diag.Code, msg string) {
	if v.rep != nil && !v.opts.MuteWarnings {
		v.rep.Report(code, diag.SevWarning, span, msg, nil, nil)
	}
}

// spanOf returns idx's HIR span, or a zero Span if idx is not resident
// in this unit's expression arena.
func (v *validator) spanOf(idx ids.ExprIdx) source.Span {
	if e := v.unit.Exprs.Get(idx); e != nil {
		return e.Span
	}
	return source.Span{}
}

// evalConst defers and evaluates idx through this unit's ConstEvalCtx in
// one call; repeated calls on the same idx re-evaluate (DeferExpr always
// allocates a fresh handle), so callers that need memoized evaluation of
// a const declaration's own initializer should go through
// bindTopLevelConsts' pre-registered handle instead via EvalVar.
func (v *validator) evalConst(idx ids.ExprIdx) (consteval.ConstValue, *consteval.Spanned) {
	ce := v.consts.DeferExpr(v.unitID, idx)
	return v.consts.EvalExpr(ce)
}

// reportConstErr surfaces a ConstEvalCtx error at its own span, unless
// it has already been reported once (spec section 4.9: "Reported
// (already reported, suppress)").
func (v *validator) reportConstErr(err *consteval.Spanned) {
	if err == nil || err.Err == consteval.Reported {
		return
	}
	v.errorAt(err.Span, err.Err.Code(), err.Err.String())
}
