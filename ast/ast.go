/*
File   : mypl/ast/ast.go

Package ast defines MyPL's closed set of abstract syntax tree node types.
Nodes are plain data — no behavior is attached to them (per the teacher's
Visitor-dispatch convention in parser/node.go, generalized here to the
pattern-matching alternative spec.md §9 explicitly allows: the checker and
the code generator each walk the tree with a type switch instead of a
shared Accept/Visitor contract, since the two passes need different
return shapes).
*/
package ast

import "github.com/akashmaji946/mypl/token"

// DataType is a type reference: an is_array flag plus the type_name
// token. type_name is one of the base types (int|double|bool|string), the
// keyword void, or a user struct name.
type DataType struct {
	IsArray  bool
	TypeName token.Token
}

// Program is the root of a MyPL AST: a list of struct definitions
// followed by a list of function definitions.
type Program struct {
	Structs []*StructDef
	Funs    []*FunDef
}

// StructDef declares a named struct type with an ordered list of fields.
type StructDef struct {
	Name   token.Token
	Fields []*VarDef
}

// FunDef declares a function: its return type, name, ordered parameters,
// and statement body.
type FunDef struct {
	ReturnType DataType
	Name       token.Token
	Params     []*VarDef
	Stmts      []Stmt
}

// VarDef names a typed variable — used for struct fields, function
// parameters, and the declared side of a VarDecl.
type VarDef struct {
	Type DataType
	Name token.Token
}

// Stmt is implemented by every statement-position AST node.
type Stmt interface{ stmtNode() }

// VarDecl declares a local variable, with an optional initializer.
type VarDecl struct {
	VarDef *VarDef
	Expr   *Expr // nil if uninitialized
}

func (*VarDecl) stmtNode() {}

// VarRef is one step of a dotted/indexed path: a name, with an optional
// array-index expression.
type VarRef struct {
	Name      token.Token
	ArrayExpr *Expr // nil if this step is not indexed
}

// AssignStmt assigns Expr to the lvalue path named by LValue (at least one
// VarRef; the last element may carry an array index).
type AssignStmt struct {
	LValue []*VarRef
	Expr   *Expr
}

func (*AssignStmt) stmtNode() {}

// BasicIf is the condition+body shared by the if-part and every elseif.
type BasicIf struct {
	Condition *Expr
	Stmts     []Stmt
}

// IfStmt is a full if/elseif*/else? construct.
type IfStmt struct {
	IfPart    *BasicIf
	ElseIfs   []*BasicIf
	ElseStmts []Stmt
}

func (*IfStmt) stmtNode() {}

// WhileStmt is a condition-guarded loop.
type WhileStmt struct {
	Condition *Expr
	Stmts     []Stmt
}

func (*WhileStmt) stmtNode() {}

// ForStmt is a C-style counted loop: an initializing VarDecl, a
// condition, and a per-iteration AssignStmt.
type ForStmt struct {
	VarDecl    *VarDecl
	Condition  *Expr
	AssignStmt *AssignStmt
	Stmts      []Stmt
}

func (*ForStmt) stmtNode() {}

// ReturnStmt returns the value of Expr from the enclosing function. MyPL
// has no bare `return;` — Expr is always present.
type ReturnStmt struct {
	Expr *Expr
}

func (*ReturnStmt) stmtNode() {}

// TryCatchStmt runs TryStmts, diverting to CatchStmts on a trappable
// runtime fault. catch carries no exception binder.
type TryCatchStmt struct {
	TryStmts   []Stmt
	CatchStmts []Stmt
}

func (*TryCatchStmt) stmtNode() {}

// RValue is implemented by every r-value-position AST node.
type RValue interface{ rvalueNode() }

// CallExpr calls a function (built-in or user-defined) with the given
// arguments. It is both a standalone statement (a bare call) and an
// RValue (a call used inside an expression).
type CallExpr struct {
	FunName token.Token
	Args    []*Expr
}

func (*CallExpr) stmtNode()   {}
func (*CallExpr) rvalueNode() {}

// SimpleRValue is a literal: int, double, string, bool or null token.
type SimpleRValue struct {
	Value token.Token
}

func (*SimpleRValue) rvalueNode() {}

// NewRValue allocates a struct (ArrayExpr nil, StructParams populated) or
// an array (ArrayExpr populated, StructParams nil) — exactly one of the
// two is ever present.
type NewRValue struct {
	TypeName     token.Token
	ArrayExpr    *Expr
	StructParams []*Expr
}

func (*NewRValue) rvalueNode() {}

// VarRValue reads a variable through a non-empty dotted/indexed path.
type VarRValue struct {
	Path []*VarRef
}

func (*VarRValue) rvalueNode() {}

// Term is implemented by SimpleTerm and ComplexTerm.
type Term interface{ termNode() }

// SimpleTerm wraps a bare RValue.
type SimpleTerm struct {
	RValue RValue
}

func (*SimpleTerm) termNode() {}

// ComplexTerm wraps a parenthesized sub-expression.
type ComplexTerm struct {
	Expr *Expr
}

func (*ComplexTerm) termNode() {}

// Expr is MyPL's single expression node: either `not First`, or
// `First Op Rest`, or a bare First — Op and Rest are both present or both
// absent (spec.md invariant). Operator precedence is deliberately not
// encoded: Rest chains right-leaning with no precedence climbing, so
// evaluation follows the parse tree shape exactly (spec.md §4.2, §9).
type Expr struct {
	NotOp bool
	First Term
	Op    *token.Token
	Rest  *Expr
}
