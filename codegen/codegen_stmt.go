package codegen

import (
	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/bytecode"
)

// genStmt dispatches on the concrete Stmt variant.
func (g *CodeGenerator) genStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		g.genVarDecl(s)
	case *ast.AssignStmt:
		g.genAssignStmt(s)
	case *ast.IfStmt:
		g.genIfStmt(s)
	case *ast.WhileStmt:
		g.genWhileStmt(s)
	case *ast.ForStmt:
		g.genForStmt(s)
	case *ast.ReturnStmt:
		g.genReturnStmt(s)
	case *ast.TryCatchStmt:
		g.genTryCatchStmt(s)
	case *ast.CallExpr:
		// A call used as a statement still leaves its result value on the
		// operand stack (matching the reference code generator, which
		// never emits a discard here); harmless since nothing below the
		// current frame's in-flight values is ever addressed by position.
		g.genCallExpr(s)
	}
}

// genBlock runs stmts inside a fresh VarTable scope.
func (g *CodeGenerator) genBlock(stmts []ast.Stmt) {
	g.varTable.Push()
	for _, stmt := range stmts {
		g.genStmt(stmt)
	}
	g.varTable.Pop()
}

func (g *CodeGenerator) genVarDecl(vd *ast.VarDecl) {
	if vd.Expr != nil {
		g.genExpr(vd.Expr)
	} else {
		g.emit(bytecode.New(bytecode.PUSH))
	}
	slot := g.varTable.Add(vd.VarDef.Name.Lexeme)
	g.emit(bytecode.NewWithOperand(bytecode.STORE, slot))
}

// genAssignStmt emits a STORE/SETI (single element) or SETF/SETI (dotted
// chain) depending on whether the path's last element carries an array
// index; in a chain, an indexed head or intermediate step is dereferenced
// with GETI on the way — spec §4.4.
func (g *CodeGenerator) genAssignStmt(as *ast.AssignStmt) {
	path := as.LValue
	head := path[0]
	slot, _ := g.varTable.Get(head.Name.Lexeme)

	if len(path) == 1 {
		if head.ArrayExpr != nil {
			g.emit(bytecode.NewWithOperand(bytecode.LOAD, slot))
			g.genExpr(head.ArrayExpr)
			g.genExpr(as.Expr)
			g.emit(bytecode.New(bytecode.SETI))
		} else {
			g.genExpr(as.Expr)
			g.emit(bytecode.NewWithOperand(bytecode.STORE, slot))
		}
		return
	}

	last := path[len(path)-1]
	if head.ArrayExpr == nil {
		g.emit(bytecode.NewWithOperand(bytecode.LOAD, slot))
	} else {
		g.emit(bytecode.NewWithOperand(bytecode.LOAD, slot))
		g.genExpr(head.ArrayExpr)
		g.emit(bytecode.New(bytecode.GETI))
	}
	for _, mid := range path[1 : len(path)-1] {
		g.emit(bytecode.NewWithOperand(bytecode.GETF, mid.Name.Lexeme))
		if mid.ArrayExpr != nil {
			g.genExpr(mid.ArrayExpr)
			g.emit(bytecode.New(bytecode.GETI))
		}
	}
	if last.ArrayExpr != nil {
		g.emit(bytecode.NewWithOperand(bytecode.GETF, last.Name.Lexeme))
		g.genExpr(last.ArrayExpr)
		g.genExpr(as.Expr)
		g.emit(bytecode.New(bytecode.SETI))
		return
	}
	g.genExpr(as.Expr)
	g.emit(bytecode.NewWithOperand(bytecode.SETF, last.Name.Lexeme))
}

func (g *CodeGenerator) genCondition(e *ast.Expr) {
	g.genExpr(e)
}

// genIfStmt emits the condition/body/landing-pad triple for the if-part
// and each elseif, then the else body unconditionally — with no
// end-of-construct bridging jump, preserving the reference's observable
// fallthrough behavior (spec §9).
func (g *CodeGenerator) genIfStmt(ifs *ast.IfStmt) {
	g.genBasicIf(ifs.IfPart)
	for _, ei := range ifs.ElseIfs {
		g.genBasicIf(ei)
	}
	if ifs.ElseStmts != nil {
		g.genBlock(ifs.ElseStmts)
	}
}

func (g *CodeGenerator) genBasicIf(bi *ast.BasicIf) {
	g.genCondition(bi.Condition)
	jmpIdx := g.emit(bytecode.NewWithOperand(bytecode.JMPF, -1))
	g.genBlock(bi.Stmts)
	g.emit(bytecode.New(bytecode.NOP))
	g.currTmpl.Patch(jmpIdx, g.currTmpl.Len()-1)
}

func (g *CodeGenerator) genWhileStmt(ws *ast.WhileStmt) {
	start := g.currTmpl.Len()
	g.genCondition(ws.Condition)
	jmpIdx := g.emit(bytecode.NewWithOperand(bytecode.JMPF, -1))
	g.genBlock(ws.Stmts)
	g.emit(bytecode.NewWithOperand(bytecode.JMP, start))
	g.emit(bytecode.New(bytecode.NOP))
	g.currTmpl.Patch(jmpIdx, g.currTmpl.Len()-1)
}

func (g *CodeGenerator) genForStmt(fs *ast.ForStmt) {
	g.varTable.Push()
	g.genVarDecl(fs.VarDecl)

	start := g.currTmpl.Len()
	g.genCondition(fs.Condition)
	jmpIdx := g.emit(bytecode.NewWithOperand(bytecode.JMPF, -1))

	g.genBlock(fs.Stmts)
	g.genAssignStmt(fs.AssignStmt)
	g.emit(bytecode.NewWithOperand(bytecode.JMP, start))
	g.emit(bytecode.New(bytecode.NOP))
	g.currTmpl.Patch(jmpIdx, g.currTmpl.Len()-1)

	g.varTable.Pop()
}

func (g *CodeGenerator) genTryCatchStmt(tc *ast.TryCatchStmt) {
	g.emit(bytecode.New(bytecode.TRY_START))
	g.genBlock(tc.TryStmts)
	g.emit(bytecode.New(bytecode.TRY_END))

	g.emit(bytecode.New(bytecode.CATCH_START))
	g.genBlock(tc.CatchStmts)
	g.emit(bytecode.New(bytecode.CATCH_END))
}

func (g *CodeGenerator) genReturnStmt(rs *ast.ReturnStmt) {
	g.genExpr(rs.Expr)
	g.emit(bytecode.New(bytecode.RET))
}
