/*
File : mypl/checker/checker.go

Package checker implements MyPL's semantic (static) analysis pass:
struct/function uniqueness, the required `main` signature, scoped
variable declaration/lookup, and the full typing rule set of spec.md
§4.3. It walks the validated AST with a type switch over the concrete
node types (ast.Stmt, ast.RValue, ast.Term — see ast/ast.go) rather
than a shared Accept/Visitor contract, per spec.md §9's explicit
"pattern matching" alternative; and it threads every intermediate type
as an explicit return value instead of an implicit `curr_type` field.
*/
package checker

import (
	"fmt"

	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/mplerr"
	"github.com/akashmaji946/mypl/token"
)

// Checker holds the global declaration tables and the active scope
// stack for one Check pass. A Checker is single-use.
type Checker struct {
	structs map[string]*ast.StructDef
	funs    map[string]*ast.FunDef
	scopes  *SymbolTable
}

func newChecker() *Checker {
	return &Checker{
		structs: make(map[string]*ast.StructDef),
		funs:    make(map[string]*ast.FunDef),
		scopes:  NewSymbolTable(),
	}
}

// Check runs the semantic checker over prog, returning the first
// mplerr.StaticError encountered, or nil if the program is well-formed.
func Check(prog *ast.Program) error {
	c := newChecker()
	return c.checkProgram(prog)
}

func (c *Checker) errorAt(message string, tok token.Token) error {
	return mplerr.NewStaticError(message, tok.Line, tok.Column)
}

func (c *Checker) checkProgram(prog *ast.Program) error {
	for _, sd := range prog.Structs {
		if _, dup := c.structs[sd.Name.Lexeme]; dup {
			return c.errorAt(fmt.Sprintf("struct %s is already declared", sd.Name.Lexeme), sd.Name)
		}
		c.structs[sd.Name.Lexeme] = sd
	}
	for _, sd := range prog.Structs {
		for _, field := range sd.Fields {
			if err := c.checkDeclaredTypeExists(field.Type); err != nil {
				return err
			}
		}
	}
	for _, fd := range prog.Funs {
		if BuiltIns[fd.Name.Lexeme] {
			return c.errorAt(fmt.Sprintf("function %s redefines a built-in", fd.Name.Lexeme), fd.Name)
		}
		if _, dup := c.funs[fd.Name.Lexeme]; dup {
			return c.errorAt(fmt.Sprintf("function %s is already declared", fd.Name.Lexeme), fd.Name)
		}
		c.funs[fd.Name.Lexeme] = fd
	}
	mainFd, ok := c.funs["main"]
	if !ok {
		return mplerr.NewStaticErrorUnlocated("program has no main function")
	}
	if mainFd.ReturnType.TypeName.Kind != token.VOID_TYPE || len(mainFd.Params) != 0 {
		return c.errorAt("main must return void and take no parameters", mainFd.Name)
	}
	for _, fd := range prog.Funs {
		if err := c.checkFunDef(fd); err != nil {
			return err
		}
	}
	return nil
}

// checkDeclaredTypeExists validates that an ID-named DataType refers to
// a declared struct. Base types and arrays thereof need no validation.
func (c *Checker) checkDeclaredTypeExists(dt ast.DataType) error {
	if dt.TypeName.Kind != token.ID {
		return nil
	}
	if _, ok := c.structs[dt.TypeName.Lexeme]; !ok {
		return c.errorAt(fmt.Sprintf("unknown type %s", dt.TypeName.Lexeme), dt.TypeName)
	}
	return nil
}

// checkFunDef validates one function body. Parameters and the body
// share a single scope (the body is not a nested block); the return
// type is installed under the reserved key "return" for ReturnStmt to
// check against (spec.md §4.3: "installed under the reserved key
// return at function entry").
func (c *Checker) checkFunDef(fd *ast.FunDef) error {
	c.scopes.Push()
	defer c.scopes.Pop()

	if err := c.checkDeclaredTypeExists(fd.ReturnType); err != nil {
		return err
	}
	c.scopes.Declare("return", fd.ReturnType)

	for _, param := range fd.Params {
		if err := c.checkDeclaredTypeExists(param.Type); err != nil {
			return err
		}
		c.scopes.Declare(param.Name.Lexeme, param.Type)
	}
	for _, stmt := range fd.Stmts {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// builtinArity gives the fixed parameter count of each built-in.
var builtinArity = map[string]int{
	"print": 1, "input": 0, "itos": 1, "itod": 1,
	"dtos": 1, "dtoi": 1, "stoi": 1, "stod": 1,
	"length": 1, "get": 2,
}

// checkBuiltinCall enforces the fixed signatures of spec.md §4.3's
// built-in table.
func (c *Checker) checkBuiltinCall(call *ast.CallExpr) (ast.DataType, error) {
	name := call.FunName.Lexeme
	if len(call.Args) != builtinArity[name] {
		return ast.DataType{}, c.errorAt(
			fmt.Sprintf("%s expects %d argument(s), got %d", name, builtinArity[name], len(call.Args)),
			call.FunName)
	}
	argType := func(i int) (ast.DataType, error) { return c.checkExpr(call.Args[i]) }

	switch name {
	case "print":
		t, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if t.IsArray || !isBaseScalarKind(t.TypeName.Kind) {
			return ast.DataType{}, c.errorAt("print requires a non-array base-type argument", call.FunName)
		}
		return voidType(), nil
	case "input":
		return stringType(), nil
	case "stoi":
		t, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if t.IsArray || t.TypeName.Kind != token.STRING_TYPE {
			return ast.DataType{}, c.errorAt("stoi requires a string argument", call.FunName)
		}
		return intType(), nil
	case "stod":
		t, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if t.IsArray || t.TypeName.Kind != token.STRING_TYPE {
			return ast.DataType{}, c.errorAt("stod requires a string argument", call.FunName)
		}
		return doubleType(), nil
	case "itos":
		t, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if t.IsArray || t.TypeName.Kind != token.INT_TYPE {
			return ast.DataType{}, c.errorAt("itos requires an int argument", call.FunName)
		}
		return stringType(), nil
	case "itod":
		t, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if t.IsArray || t.TypeName.Kind != token.INT_TYPE {
			return ast.DataType{}, c.errorAt("itod requires an int argument", call.FunName)
		}
		return doubleType(), nil
	case "dtoi":
		t, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if t.IsArray || t.TypeName.Kind != token.DOUBLE_TYPE {
			return ast.DataType{}, c.errorAt("dtoi requires a double argument", call.FunName)
		}
		return intType(), nil
	case "dtos":
		t, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if t.IsArray || t.TypeName.Kind != token.DOUBLE_TYPE {
			return ast.DataType{}, c.errorAt("dtos requires a double argument", call.FunName)
		}
		return stringType(), nil
	case "length":
		t, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if !t.IsArray && t.TypeName.Kind != token.STRING_TYPE {
			return ast.DataType{}, c.errorAt("length requires a string or array argument", call.FunName)
		}
		return intType(), nil
	case "get":
		idx, err := argType(0)
		if err != nil {
			return ast.DataType{}, err
		}
		if idx.IsArray || idx.TypeName.Kind != token.INT_TYPE {
			return ast.DataType{}, c.errorAt("get's first argument must be an int", call.FunName)
		}
		s, err := argType(1)
		if err != nil {
			return ast.DataType{}, err
		}
		if s.IsArray || s.TypeName.Kind != token.STRING_TYPE {
			return ast.DataType{}, c.errorAt("get's second argument must be a string", call.FunName)
		}
		return stringType(), nil
	default:
		return ast.DataType{}, c.errorAt("unknown built-in "+name, call.FunName)
	}
}

// checkCallExpr dispatches to a built-in or a user-defined function.
func (c *Checker) checkCallExpr(call *ast.CallExpr) (ast.DataType, error) {
	name := call.FunName.Lexeme
	if BuiltIns[name] {
		return c.checkBuiltinCall(call)
	}
	fd, ok := c.funs[name]
	if !ok {
		return ast.DataType{}, c.errorAt(fmt.Sprintf("call to undeclared function %s", name), call.FunName)
	}
	if len(call.Args) != len(fd.Params) {
		return ast.DataType{}, c.errorAt(
			fmt.Sprintf("expected %d argument(s) for %s, got %d", len(fd.Params), name, len(call.Args)),
			call.FunName)
	}
	for i, arg := range call.Args {
		at, err := c.checkExpr(arg)
		if err != nil {
			return ast.DataType{}, err
		}
		if !isAssignable(fd.Params[i].Type, at) {
			return ast.DataType{}, c.errorAt(
				fmt.Sprintf("argument %d of %s has the wrong type", i+1, name), call.FunName)
		}
	}
	return fd.ReturnType, nil
}
