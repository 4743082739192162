package checker

import (
	"fmt"

	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/token"
)

// checkStmt dispatches on the concrete Stmt variant.
func (c *Checker) checkStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return c.checkVarDecl(s)
	case *ast.AssignStmt:
		return c.checkAssignStmt(s)
	case *ast.IfStmt:
		return c.checkIfStmt(s)
	case *ast.WhileStmt:
		return c.checkWhileStmt(s)
	case *ast.ForStmt:
		return c.checkForStmt(s)
	case *ast.ReturnStmt:
		return c.checkReturnStmt(s)
	case *ast.TryCatchStmt:
		return c.checkTryCatchStmt(s)
	case *ast.CallExpr:
		_, err := c.checkCallExpr(s)
		return err
	default:
		return fmt.Errorf("checker: unhandled statement type %T", stmt)
	}
}

// checkBlock opens a fresh scope, checks every statement in it, and
// closes the scope again — used for every construct whose body is a
// nested Block (if/elseif/else, while, for's inner body, try/catch).
func (c *Checker) checkBlock(stmts []ast.Stmt) error {
	c.scopes.Push()
	defer c.scopes.Pop()
	for _, stmt := range stmts {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkVarDecl(vd *ast.VarDecl) error {
	name := vd.VarDef.Name
	if c.scopes.DeclaredInCurrentScope(name.Lexeme) {
		return c.errorAt(fmt.Sprintf("%s is already declared in this scope", name.Lexeme), name)
	}
	if err := c.checkDeclaredTypeExists(vd.VarDef.Type); err != nil {
		return err
	}
	if vd.Expr != nil {
		et, err := c.checkExpr(vd.Expr)
		if err != nil {
			return err
		}
		if !isAssignable(vd.VarDef.Type, et) {
			return c.errorAt(fmt.Sprintf("cannot initialize %s with an incompatible value", name.Lexeme), name)
		}
	}
	c.scopes.Declare(name.Lexeme, vd.VarDef.Type)
	return nil
}

func (c *Checker) checkAssignStmt(as *ast.AssignStmt) error {
	targetType, err := c.resolvePath(as.LValue)
	if err != nil {
		return err
	}
	rhsType, err := c.checkExpr(as.Expr)
	if err != nil {
		return err
	}
	if !isAssignable(targetType, rhsType) {
		return c.errorAt("assignment has an incompatible value type", as.LValue[0].Name)
	}
	return nil
}

// checkCondition requires a non-array bool expression, as used by
// if/elseif/while/for.
func (c *Checker) checkCondition(e *ast.Expr) error {
	t, err := c.checkExpr(e)
	if err != nil {
		return err
	}
	if t.IsArray || t.TypeName.Kind != token.BOOL_TYPE {
		return c.errorAt("condition must be a bool expression", exprAnchor(e))
	}
	return nil
}

func (c *Checker) checkBasicIf(bi *ast.BasicIf) error {
	if err := c.checkCondition(bi.Condition); err != nil {
		return err
	}
	return c.checkBlock(bi.Stmts)
}

func (c *Checker) checkIfStmt(ifs *ast.IfStmt) error {
	if err := c.checkBasicIf(ifs.IfPart); err != nil {
		return err
	}
	for _, ei := range ifs.ElseIfs {
		if err := c.checkBasicIf(ei); err != nil {
			return err
		}
	}
	if ifs.ElseStmts != nil {
		return c.checkBlock(ifs.ElseStmts)
	}
	return nil
}

func (c *Checker) checkWhileStmt(ws *ast.WhileStmt) error {
	if err := c.checkCondition(ws.Condition); err != nil {
		return err
	}
	return c.checkBlock(ws.Stmts)
}

// checkForStmt mirrors the code generator's scope nesting (spec.md
// §4.4): the init VarDecl and the step AssignStmt live in an outer
// scope that the loop body's own Block scope nests inside.
func (c *Checker) checkForStmt(fs *ast.ForStmt) error {
	c.scopes.Push()
	defer c.scopes.Pop()

	if err := c.checkVarDecl(fs.VarDecl); err != nil {
		return err
	}
	if err := c.checkCondition(fs.Condition); err != nil {
		return err
	}
	if err := c.checkBlock(fs.Stmts); err != nil {
		return err
	}
	return c.checkAssignStmt(fs.AssignStmt)
}

func (c *Checker) checkTryCatchStmt(tc *ast.TryCatchStmt) error {
	if err := c.checkBlock(tc.TryStmts); err != nil {
		return err
	}
	return c.checkBlock(tc.CatchStmts)
}

func (c *Checker) checkReturnStmt(rs *ast.ReturnStmt) error {
	declared, _ := c.scopes.Lookup("return")
	et, err := c.checkExpr(rs.Expr)
	if err != nil {
		return err
	}
	if !isAssignable(declared, et) {
		return c.errorAt("return value does not match the function's declared return type", exprAnchor(rs.Expr))
	}
	return nil
}
