package hir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"turingc/internal/ids"
	"turingc/internal/source"
	"turingc/internal/token"
	"turingc/internal/types"
)

// Node is one S-expression node of a structured AST dump: a label plus
// an ordered list of children. Dump builds a Node tree from a Unit's HIR
// rather than writing text directly, so the same tree backs both the
// "ast" text dump and internal/snapshot's msgpack caching of the
// structured form.
type Node struct {
	Label    string
	Children []*Node
}

// opLabel strips token.Kind.String()'s diagnostic-message quoting
// ("'+'" -> "+") so operator/keyword labels read as bare S-expression
// atoms rather than quoted prose.
func opLabel(k token.Kind) string {
	return strings.Trim(k.String(), "'")
}

func leaf(label string) *Node { return &Node{Label: label} }

func node(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// Printer renders a Node tree as an indented S-expression, the "ast"
// dump format (spec section 6: "S-expression-like pretty print of the
// HIR root block; deterministic ordering").
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// Dump builds the structured AST for u's top-level statements and writes
// its S-expression rendering to w.
func Dump(w io.Writer, u *Unit, in *source.Interner) error {
	root := BuildAST(u, in)
	return NewPrinter(w).Print(root)
}

// BuildAST walks u's Top statement list and produces the structured Node
// tree a dump renders or a snapshot serializes.
func BuildAST(u *Unit, in *source.Interner) *Node {
	d := &dumper{u: u, in: in}
	return node("block", d.stmts(u.Top)...)
}

type dumper struct {
	u  *Unit
	in *source.Interner
}

func (d *dumper) name(id source.StringID) string {
	if d.in == nil {
		return fmt.Sprintf("str#%d", id)
	}
	s, ok := d.in.Lookup(id)
	if !ok {
		return fmt.Sprintf("str#%d", id)
	}
	return s
}

func (d *dumper) stmts(idxs []ids.StmtIdx) []*Node {
	out := make([]*Node, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, d.stmt(idx))
	}
	return out
}

func (d *dumper) stmt(idx ids.StmtIdx) *Node {
	if !idx.IsValid() {
		return leaf("missing")
	}
	s := d.u.Stmts.Get(idx)
	if s == nil {
		return leaf("missing")
	}
	switch s.Kind {
	case StmtConstVar:
		label := "var"
		if s.IsConst {
			label = "const"
		}
		n := node(label, node("names", d.defNames(s.Names)...))
		if s.Tail == TailTypeSpec || s.Tail == TailBoth {
			n.Children = append(n.Children, node("type", d.typeRef(s.TailType)))
		}
		if s.Tail == TailInitExpr || s.Tail == TailBoth {
			n.Children = append(n.Children, node("init", d.expr(s.TailInit)))
		}
		return n

	case StmtAssign:
		return node("assign", leaf(opLabel(s.Op)), node("target", d.expr(s.Expr)), node("value", d.expr(s.RHS)))

	case StmtPut:
		return node("put", d.exprs(s.Items)...)

	case StmtGet:
		return node("get", d.exprs(s.Items)...)

	case StmtBlock:
		return node("block", d.stmts(s.Body)...)

	case StmtIf:
		n := node("if", node("cond", d.expr(s.Cond)), node("then", d.stmts(s.Body)...))
		for _, arm := range s.Elifs {
			n.Children = append(n.Children, node("elsif", node("cond", d.expr(arm.Cond)), node("then", d.stmts(arm.Body)...)))
		}
		if s.Else != nil {
			n.Children = append(n.Children, node("else", d.stmts(s.Else)...))
		}
		return n

	case StmtLoop:
		return node("loop", d.stmts(s.Body)...)

	case StmtExit:
		if s.When.IsValid() {
			return node("exit", node("when", d.expr(s.When)))
		}
		return leaf("exit")

	case StmtFor:
		n := node("for",
			leaf("var:"+d.defName(s.LoopVar)),
			node("range", d.typeRef(s.Range)),
		)
		if s.Decreasing {
			n.Children = append(n.Children, leaf("decreasing"))
		}
		if s.Step.IsValid() {
			n.Children = append(n.Children, node("step", d.expr(s.Step)))
		}
		n.Children = append(n.Children, node("body", d.stmts(s.Body)...))
		return n

	case StmtCase:
		n := node("case", node("selector", d.expr(s.Expr)))
		for _, arm := range s.Arms {
			if arm.Labels == nil {
				n.Children = append(n.Children, node("default", d.stmts(arm.Body)...))
				continue
			}
			n.Children = append(n.Children, node("arm", node("labels", d.exprs(arm.Labels)...), node("body", d.stmts(arm.Body)...)))
		}
		return n

	case StmtExprKeyword:
		if s.Expr.IsValid() {
			return node(opLabel(s.Keyword), d.expr(s.Expr))
		}
		return leaf(opLabel(s.Keyword))

	case StmtReturn:
		return leaf("return")

	case StmtChecked:
		return node(opLabel(s.Keyword), d.stmts(s.Body)...)

	case StmtProcCall:
		return node("call", d.expr(s.Expr))

	case StmtTypeDecl:
		n := node("type-decl", leaf(d.defName(s.Name)))
		if s.IsForward {
			n.Children = append(n.Children, leaf("forward"))
		} else {
			n.Children = append(n.Children, d.typeRef(s.DeclType))
		}
		return n

	case StmtSubprogram:
		label := "procedure"
		if s.IsFunction {
			label = "function"
		}
		n := node(label, leaf(d.defName(s.Name)), node("params", d.defNames(s.Params)...))
		if s.IsFunction {
			n.Children = append(n.Children, node("result", d.typeRef(s.Result)))
		}
		n.Children = append(n.Children, node("body", d.stmts(s.Body)...))
		return n

	default:
		return leaf("missing")
	}
}

func (d *dumper) defName(id ids.DefID) string {
	ident := d.u.Scope.Idents.Get(id)
	if ident == nil {
		return "?"
	}
	return d.name(ident.Name)
}

func (d *dumper) defNames(ds []ids.DefID) []*Node {
	out := make([]*Node, 0, len(ds))
	for _, id := range ds {
		out = append(out, leaf(d.defName(id)))
	}
	return out
}

func (d *dumper) exprs(idxs []ids.ExprIdx) []*Node {
	out := make([]*Node, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, d.expr(idx))
	}
	return out
}

func (d *dumper) expr(idx ids.ExprIdx) *Node {
	if !idx.IsValid() {
		return leaf("missing")
	}
	e := d.u.Exprs.Get(idx)
	if e == nil {
		return leaf("missing")
	}
	switch e.Kind {
	case ExprLiteral:
		switch e.LitKind {
		case LitInt:
			return leaf(strconv.FormatUint(e.IntVal, 10))
		case LitReal:
			return leaf(strconv.FormatFloat(e.RealVal, 'g', -1, 64))
		case LitString:
			return leaf(strconv.Quote(d.name(e.StrVal)))
		case LitChar:
			return leaf(strconv.QuoteRune(e.CharVal))
		case LitBool:
			return leaf(strconv.FormatBool(e.BoolVal))
		default:
			return leaf("invalid-literal")
		}
	case ExprBinary:
		return node(opLabel(e.Op), d.expr(e.LHS), d.expr(e.RHS))
	case ExprUnary:
		return node(opLabel(e.Op), d.expr(e.RHS))
	case ExprParen:
		return node("paren", d.expr(e.Inner))
	case ExprName:
		return leaf(d.defName(e.Def))
	default:
		return leaf("missing")
	}
}

func (d *dumper) typeRef(ref types.TypeRef) *Node {
	if ref.IsPrimitive() {
		return leaf(ref.Prim.String())
	}
	if !ref.IsValid() {
		return leaf("<invalid-type>")
	}
	ty := d.u.Types.Get(ref.Named)
	if ty == nil {
		return leaf(fmt.Sprintf("type#%d", ref.Named))
	}
	switch ty.Kind {
	case types.KindName:
		return node("named-type", d.expr(ty.NameRef))
	case types.KindPointer:
		label := "pointer"
		if ty.Unchecked {
			label = "unchecked-pointer"
		}
		return node(label, d.typeRef(ty.To))
	case types.KindArray:
		n := node("array")
		for _, r := range ty.Ranges {
			n.Children = append(n.Children, d.typeRef(r))
		}
		n.Children = append(n.Children, node("elem", d.typeRef(ty.Elem)))
		return n
	case types.KindSet:
		return node("set", d.typeRef(ty.Index))
	case types.KindRange:
		if ty.End.IsValid() {
			return node("range", d.expr(ty.Start), d.expr(ty.End))
		}
		return node("range", d.expr(ty.Start), leaf("*"))
	case types.KindEnum:
		n := node("enum")
		for _, fid := range ty.Fields {
			n.Children = append(n.Children, leaf(d.defName(fid)))
		}
		return n
	case types.KindSizedString, types.KindSizedChar:
		label := "sized-string"
		if ty.Kind == types.KindSizedChar {
			label = "sized-char"
		}
		if ty.IsStar {
			return node(label, leaf("*"))
		}
		return node(label, d.expr(ty.Size))
	case types.KindFunction:
		label := "procedure-type"
		if ty.IsFunction {
			label = "function-type"
		}
		n := node(label)
		for _, p := range ty.Params {
			n.Children = append(n.Children, node("param:"+d.name(p.Name), d.typeRef(p.Type)))
		}
		if ty.IsFunction {
			n.Children = append(n.Children, node("result", d.typeRef(ty.Result)))
		}
		return n
	case types.KindAlias:
		return node("alias", d.typeRef(ty.AliasTo))
	case types.KindForward:
		if ty.Resolved {
			return node("forward-resolved", d.typeRef(ty.AliasTo))
		}
		return leaf("forward")
	default:
		return leaf(fmt.Sprintf("type#%d", ref.Named))
	}
}

// Print writes n as an indented S-expression to p's writer.
func (p *Printer) Print(n *Node) error {
	p.printNode(n)
	return nil
}

func (p *Printer) printNode(n *Node) {
	if n == nil {
		p.write("()")
		return
	}
	if len(n.Children) == 0 {
		p.write(n.Label)
		return
	}
	p.write("(" + n.Label)
	p.indent++
	for _, c := range n.Children {
		p.write("\n")
		p.writeIndent()
		p.printNode(c)
	}
	p.indent--
	p.write(")")
}

func (p *Printer) writeIndent() {
	p.write(strings.Repeat("  ", p.indent))
}

func (p *Printer) write(s string) { fmt.Fprint(p.w, s) }
