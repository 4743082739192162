/*
File   : mypl/codegen/codegen.go

Package codegen compiles a checked ast.Program into one bytecode.FrameTemplate
per function. It walks the AST with a type switch (mirroring checker's
dispatch style) rather than a Visitor contract, and owns a VarTable (scoped
name→slot) plus a struct_defs map used to emit ALLOCS/SETF in declared
field order for struct literals.
*/
package codegen

import (
	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/bytecode"
)

// CodeGenerator accumulates one FrameTemplate per function as it walks
// the program. A CodeGenerator is single-use.
type CodeGenerator struct {
	frames     map[string]*bytecode.FrameTemplate
	currTmpl   *bytecode.FrameTemplate
	varTable   *VarTable
	structDefs map[string]*ast.StructDef
}

func newCodeGenerator() *CodeGenerator {
	return &CodeGenerator{
		frames:     make(map[string]*bytecode.FrameTemplate),
		structDefs: make(map[string]*ast.StructDef),
	}
}

// Generate compiles a checked program, returning one FrameTemplate per
// function keyed by function name.
func Generate(prog *ast.Program) map[string]*bytecode.FrameTemplate {
	g := newCodeGenerator()
	for _, sd := range prog.Structs {
		g.structDefs[sd.Name.Lexeme] = sd
	}
	for _, fd := range prog.Funs {
		g.genFunDef(fd)
	}
	return g.frames
}

func (g *CodeGenerator) emit(instr bytecode.Instruction) int {
	return g.currTmpl.Add(instr)
}

// genFunDef compiles one function into a fresh FrameTemplate: params and
// body share a single VarTable scope, parameters are STOREd in
// declaration order (the caller arranges the operand stack so this lands
// them correctly — see bytecode CALL semantics), and a trailing
// `PUSH null; RET` is appended whenever the body doesn't already end in a
// ReturnStmt. Each function gets its own fresh VarTable: slot numbering
// is local to the frame it will run in.
func (g *CodeGenerator) genFunDef(fd *ast.FunDef) {
	g.currTmpl = &bytecode.FrameTemplate{FunctionName: fd.Name.Lexeme}
	g.varTable = NewVarTable()
	g.varTable.Push()

	for _, param := range fd.Params {
		slot := g.varTable.Add(param.Name.Lexeme)
		g.emit(bytecode.NewWithOperand(bytecode.STORE, slot))
	}
	g.currTmpl.ArgCount = len(fd.Params)

	for _, stmt := range fd.Stmts {
		g.genStmt(stmt)
	}

	if !endsInReturn(fd.Stmts) {
		g.emit(bytecode.New(bytecode.PUSH))
		g.emit(bytecode.New(bytecode.RET))
	}

	g.varTable.Pop()
	g.frames[fd.Name.Lexeme] = g.currTmpl
}

func endsInReturn(stmts []ast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*ast.ReturnStmt)
	return ok
}
