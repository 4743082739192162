package codegen

import (
	"strconv"
	"strings"

	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/bytecode"
	"github.com/akashmaji946/mypl/token"
)

// genExpr emits the right-leaning, uniform-precedence Expr tree exactly
// as parsed — 'not' applies to First, then an optional Op combines First
// with Rest (spec §9: no precedence climbing, no re-association).
func (g *CodeGenerator) genExpr(e *ast.Expr) {
	if e.Op != nil {
		first := e.First
		if e.NotOp {
			first = &ast.ComplexTerm{Expr: &ast.Expr{NotOp: true, First: e.First}}
		}
		g.genBinOp(*e.Op, first, e.Rest)
		return
	}
	if e.NotOp {
		g.genTerm(e.First)
		g.emit(bytecode.New(bytecode.NOT))
		return
	}
	g.genTerm(e.First)
}

// genBinOp emits first/rest operand code and the operator's opcode, with
// the reference's `>`/`>=` special case: swap operand emission order and
// reuse CMPLT/CMPLE rather than adding dedicated opcodes.
func (g *CodeGenerator) genBinOp(op token.Token, first ast.Term, rest *ast.Expr) {
	switch op.Kind {
	case token.PLUS:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.ADD))
	case token.MINUS:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.SUB))
	case token.TIMES:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.MUL))
	case token.DIVIDE:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.DIV))
	case token.LESS:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.CMPLT))
	case token.GREATER:
		g.genExpr(rest)
		g.genTerm(first)
		g.emit(bytecode.New(bytecode.CMPLT))
	case token.LESS_EQ:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.CMPLE))
	case token.GREATER_EQ:
		g.genExpr(rest)
		g.genTerm(first)
		g.emit(bytecode.New(bytecode.CMPLE))
	case token.AND:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.AND))
	case token.OR:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.OR))
	case token.EQUAL:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.CMPEQ))
	case token.NOT_EQUAL:
		g.genTerm(first)
		g.genExpr(rest)
		g.emit(bytecode.New(bytecode.CMPNE))
	}
}

func (g *CodeGenerator) genTerm(t ast.Term) {
	switch tt := t.(type) {
	case *ast.SimpleTerm:
		g.genRValue(tt.RValue)
	case *ast.ComplexTerm:
		g.genExpr(tt.Expr)
	}
}

func (g *CodeGenerator) genRValue(rv ast.RValue) {
	switch v := rv.(type) {
	case *ast.SimpleRValue:
		g.genSimpleRValue(v)
	case *ast.NewRValue:
		g.genNewRValue(v)
	case *ast.VarRValue:
		g.genVarRValue(v)
	case *ast.CallExpr:
		g.genCallExpr(v)
	}
}

// genSimpleRValue decodes the literal's lexeme and pushes its Go-typed
// value — int64/float64/string/bool/nil — spec §4.4.
func (g *CodeGenerator) genSimpleRValue(v *ast.SimpleRValue) {
	lexeme := v.Value.Lexeme
	switch v.Value.Kind {
	case token.INT_VAL:
		n, _ := strconv.ParseInt(lexeme, 10, 64)
		g.emit(bytecode.NewWithOperand(bytecode.PUSH, n))
	case token.DOUBLE_VAL:
		f, _ := strconv.ParseFloat(lexeme, 64)
		g.emit(bytecode.NewWithOperand(bytecode.PUSH, f))
	case token.STRING_VAL:
		decoded := strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(lexeme)
		g.emit(bytecode.NewWithOperand(bytecode.PUSH, decoded))
	case token.BOOL_VAL:
		g.emit(bytecode.NewWithOperand(bytecode.PUSH, lexeme == "true"))
	case token.NULL_VAL:
		g.emit(bytecode.New(bytecode.PUSH))
	}
}

// genNewRValue emits ALLOCS+DUP+SETF per declared field (struct form) or
// the size expression followed by ALLOCA (array form).
func (g *CodeGenerator) genNewRValue(v *ast.NewRValue) {
	if v.ArrayExpr != nil {
		g.genExpr(v.ArrayExpr)
		g.emit(bytecode.New(bytecode.ALLOCA))
		return
	}
	sd := g.structDefs[v.TypeName.Lexeme]
	g.emit(bytecode.New(bytecode.ALLOCS))
	for i, field := range sd.Fields {
		g.emit(bytecode.New(bytecode.DUP))
		g.genExpr(v.StructParams[i])
		g.emit(bytecode.NewWithOperand(bytecode.SETF, field.Name.Lexeme))
	}
}

// genVarRValue emits the head load (plus an index dereference if the
// head is subscripted) followed by a GETF/GETI chain for each subsequent
// path step.
func (g *CodeGenerator) genVarRValue(v *ast.VarRValue) {
	head := v.Path[0]
	slot, _ := g.varTable.Get(head.Name.Lexeme)
	g.emit(bytecode.NewWithOperand(bytecode.LOAD, slot))
	if head.ArrayExpr != nil {
		g.genExpr(head.ArrayExpr)
		g.emit(bytecode.New(bytecode.GETI))
	}
	for _, step := range v.Path[1:] {
		g.emit(bytecode.NewWithOperand(bytecode.GETF, step.Name.Lexeme))
		if step.ArrayExpr != nil {
			g.genExpr(step.ArrayExpr)
			g.emit(bytecode.New(bytecode.GETI))
		}
	}
}

// builtinOpcode maps a built-in name to its dedicated argument-taking
// opcode; print/input are handled separately (print is variadic-arity-1
// but its opcode name differs from its built-in name; input takes none).
var builtinOpcode = map[string]bytecode.OpCode{
	"stoi":   bytecode.TOINT,
	"dtoi":   bytecode.TOINT,
	"stod":   bytecode.TODBL,
	"itod":   bytecode.TODBL,
	"dtos":   bytecode.TOSTR,
	"itos":   bytecode.TOSTR,
	"length": bytecode.LEN,
}

func (g *CodeGenerator) genCallExpr(call *ast.CallExpr) {
	name := call.FunName.Lexeme
	switch name {
	case "print":
		g.genExpr(call.Args[0])
		g.emit(bytecode.New(bytecode.WRITE))
	case "input":
		g.emit(bytecode.New(bytecode.READ))
	case "get":
		g.genExpr(call.Args[0])
		g.genExpr(call.Args[1])
		g.emit(bytecode.New(bytecode.GETC))
	default:
		if op, ok := builtinOpcode[name]; ok {
			g.genExpr(call.Args[0])
			g.emit(bytecode.New(op))
			return
		}
		for _, arg := range call.Args {
			g.genExpr(arg)
		}
		g.emit(bytecode.NewWithOperand(bytecode.CALL, name))
	}
}
