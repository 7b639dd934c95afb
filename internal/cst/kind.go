// Package cst implements the lossless concrete syntax tree: an untyped
// tree of Node/Leaf elements that preserves every byte of source
// (including trivia) so it can be printed back out exactly, per spec
// section 3's SyntaxTree.
package cst

// Kind classifies a Node. Unlike token.Kind this describes syntactic
// constructs, not lexical ones.
type Kind uint16

const (
	InvalidKind Kind = iota
	ErrorNode        // recovery placeholder wrapping unexpected tokens

	SourceFile

	// Declarations.
	ConstDecl
	VarDecl
	TypeDecl
	ProcDecl
	FuncDecl
	ParamList
	Param

	// Statements.
	BlockStmt
	AssignStmt
	ProcCallStmt
	IfStmt
	ElsifClause
	ElseClause
	LoopStmt
	ExitStmt
	ForStmt
	CaseStmt
	CaseArm
	InvariantStmt
	AssertStmt
	SignalStmt
	PauseStmt
	ResultStmt
	ReturnStmt
	CheckedStmt
	UncheckedStmt
	PutStmt
	GetStmt

	// Expressions.
	NameExpr
	LiteralExpr
	ParenExpr
	BinaryExpr
	UnaryExpr
	CallExpr
	DotExpr
	DerefExpr
	FollowExpr
	ConversionExpr
	ArgList

	// Types.
	NameType
	PrimitiveType
	SizedStringType
	SizedCharType
	PointerType
	ArrayType
	FlexibleArrayType
	SetType
	EnumType
	EnumFieldList
	RangeType
	FunctionType
	ProcedureType
	CollectionType
	ConditionType
	RecordType
	UnionType
	FieldList

	// Internal groupings shared across constructs.
	NameList
	ExprList
)
