package checker

import (
	"fmt"

	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/token"
)

// exprAnchor finds a representative source token for an Expr, used to
// locate a static error raised against it.
func exprAnchor(e *ast.Expr) token.Token {
	if e.Op != nil {
		return *e.Op
	}
	return termAnchor(e.First)
}

func termAnchor(t ast.Term) token.Token {
	switch tt := t.(type) {
	case *ast.SimpleTerm:
		return rvalueAnchor(tt.RValue)
	case *ast.ComplexTerm:
		return exprAnchor(tt.Expr)
	default:
		return token.Token{}
	}
}

func rvalueAnchor(rv ast.RValue) token.Token {
	switch v := rv.(type) {
	case *ast.SimpleRValue:
		return v.Value
	case *ast.NewRValue:
		return v.TypeName
	case *ast.VarRValue:
		return v.Path[0].Name
	case *ast.CallExpr:
		return v.FunName
	default:
		return token.Token{}
	}
}

// checkExpr types an Expr: 'not' applies only to First, then an
// optional Op combines the (possibly negated) First with Rest. The
// parse tree is right-leaning with uniform precedence (spec.md §9) —
// the checker evaluates it exactly as parsed, never re-associating.
func (c *Checker) checkExpr(e *ast.Expr) (ast.DataType, error) {
	firstType, err := c.checkTerm(e.First)
	if err != nil {
		return ast.DataType{}, err
	}
	if e.NotOp {
		if firstType.IsArray || firstType.TypeName.Kind != token.BOOL_TYPE {
			return ast.DataType{}, c.errorAt("not requires a bool operand", termAnchor(e.First))
		}
	}
	if e.Op == nil {
		return firstType, nil
	}
	restType, err := c.checkExpr(e.Rest)
	if err != nil {
		return ast.DataType{}, err
	}
	return c.checkBinOp(*e.Op, firstType, restType)
}

func (c *Checker) checkBinOp(op token.Token, lt, rt ast.DataType) (ast.DataType, error) {
	switch op.Kind {
	case token.PLUS:
		if !sameType(lt, rt) || !isOneOfKind(lt.TypeName.Kind, token.INT_TYPE, token.DOUBLE_TYPE, token.STRING_TYPE) {
			return ast.DataType{}, c.errorAt("+ requires two int, double or string operands of the same type", op)
		}
		return lt, nil
	case token.MINUS, token.TIMES, token.DIVIDE:
		if !sameType(lt, rt) || !isOneOfKind(lt.TypeName.Kind, token.INT_TYPE, token.DOUBLE_TYPE) {
			return ast.DataType{}, c.errorAt(fmt.Sprintf("%s requires two int or double operands of the same type", op.Lexeme), op)
		}
		return lt, nil
	case token.LESS, token.GREATER, token.LESS_EQ, token.GREATER_EQ:
		if !sameType(lt, rt) || !isOneOfKind(lt.TypeName.Kind, token.INT_TYPE, token.DOUBLE_TYPE, token.STRING_TYPE) {
			return ast.DataType{}, c.errorAt(fmt.Sprintf("%s requires two int, double or string operands of the same type", op.Lexeme), op)
		}
		return boolType(), nil
	case token.EQUAL, token.NOT_EQUAL:
		if !isAssignable(lt, rt) && !isAssignable(rt, lt) {
			return ast.DataType{}, c.errorAt(fmt.Sprintf("%s requires two compatible operand types", op.Lexeme), op)
		}
		return boolType(), nil
	case token.AND, token.OR:
		if lt.IsArray || lt.TypeName.Kind != token.BOOL_TYPE || rt.IsArray || rt.TypeName.Kind != token.BOOL_TYPE {
			return ast.DataType{}, c.errorAt(fmt.Sprintf("%s requires two bool operands", op.Lexeme), op)
		}
		return boolType(), nil
	default:
		return ast.DataType{}, c.errorAt("unknown operator "+op.Lexeme, op)
	}
}

func isOneOfKind(k token.Kind, kinds ...token.Kind) bool {
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (c *Checker) checkTerm(t ast.Term) (ast.DataType, error) {
	switch tt := t.(type) {
	case *ast.SimpleTerm:
		return c.checkRValue(tt.RValue)
	case *ast.ComplexTerm:
		return c.checkExpr(tt.Expr)
	default:
		return ast.DataType{}, fmt.Errorf("checker: unhandled term type %T", t)
	}
}

func (c *Checker) checkRValue(rv ast.RValue) (ast.DataType, error) {
	switch v := rv.(type) {
	case *ast.SimpleRValue:
		return c.checkSimpleRValue(v)
	case *ast.NewRValue:
		return c.checkNewRValue(v)
	case *ast.VarRValue:
		return c.resolvePath(v.Path)
	case *ast.CallExpr:
		return c.checkCallExpr(v)
	default:
		return ast.DataType{}, fmt.Errorf("checker: unhandled rvalue type %T", rv)
	}
}

func (c *Checker) checkSimpleRValue(v *ast.SimpleRValue) (ast.DataType, error) {
	switch v.Value.Kind {
	case token.INT_VAL:
		return intType(), nil
	case token.DOUBLE_VAL:
		return doubleType(), nil
	case token.STRING_VAL:
		return stringType(), nil
	case token.BOOL_VAL:
		return boolType(), nil
	case token.NULL_VAL:
		return synthType(token.NULL_VAL, "null"), nil
	default:
		return ast.DataType{}, c.errorAt("unrecognized literal", v.Value)
	}
}

// checkNewRValue types `new T[n]` (array) and `new S(a1, ..., ak)`
// (struct) — exactly one of ArrayExpr/StructParams is populated.
func (c *Checker) checkNewRValue(v *ast.NewRValue) (ast.DataType, error) {
	if v.ArrayExpr != nil {
		sizeType, err := c.checkExpr(v.ArrayExpr)
		if err != nil {
			return ast.DataType{}, err
		}
		if sizeType.IsArray || sizeType.TypeName.Kind != token.INT_TYPE {
			return ast.DataType{}, c.errorAt("array size must be an int", v.TypeName)
		}
		if err := c.checkDeclaredTypeExists(ast.DataType{TypeName: v.TypeName}); err != nil {
			return ast.DataType{}, err
		}
		return ast.DataType{IsArray: true, TypeName: v.TypeName}, nil
	}

	sd, ok := c.structs[v.TypeName.Lexeme]
	if !ok {
		return ast.DataType{}, c.errorAt("unknown struct type "+v.TypeName.Lexeme, v.TypeName)
	}
	if len(v.StructParams) != len(sd.Fields) {
		return ast.DataType{}, c.errorAt(
			fmt.Sprintf("struct %s takes %d field value(s), got %d", v.TypeName.Lexeme, len(sd.Fields), len(v.StructParams)),
			v.TypeName)
	}
	for i, param := range v.StructParams {
		pt, err := c.checkExpr(param)
		if err != nil {
			return ast.DataType{}, err
		}
		if !isAssignable(sd.Fields[i].Type, pt) {
			return ast.DataType{}, c.errorAt(
				fmt.Sprintf("field %s of %s has an incompatible value", sd.Fields[i].Name.Lexeme, v.TypeName.Lexeme),
				v.TypeName)
		}
	}
	return ast.DataType{TypeName: v.TypeName}, nil
}

// resolvePath types a dotted/indexed variable path: the head must be a
// declared variable; each subsequent step selects a field of the
// current struct type; an index at any step dereferences one array
// dimension (spec.md §4.3).
func (c *Checker) resolvePath(path []*ast.VarRef) (ast.DataType, error) {
	head := path[0]
	curr, ok := c.scopes.Lookup(head.Name.Lexeme)
	if !ok {
		return ast.DataType{}, c.errorAt("undeclared variable "+head.Name.Lexeme, head.Name)
	}
	var err error
	curr, err = c.applyIndex(curr, head)
	if err != nil {
		return ast.DataType{}, err
	}
	for _, step := range path[1:] {
		if curr.IsArray || curr.TypeName.Kind != token.ID {
			return ast.DataType{}, c.errorAt("cannot select a field on a non-struct value", step.Name)
		}
		sd := c.structs[curr.TypeName.Lexeme]
		field, ok := fieldType(sd, step.Name.Lexeme)
		if !ok {
			return ast.DataType{}, c.errorAt(fmt.Sprintf("struct %s has no field %s", sd.Name.Lexeme, step.Name.Lexeme), step.Name)
		}
		curr, err = c.applyIndex(field, step)
		if err != nil {
			return ast.DataType{}, err
		}
	}
	return curr, nil
}

// applyIndex dereferences one array dimension of t if ref carries an
// index expression.
func (c *Checker) applyIndex(t ast.DataType, ref *ast.VarRef) (ast.DataType, error) {
	if ref.ArrayExpr == nil {
		return t, nil
	}
	if !t.IsArray {
		return ast.DataType{}, c.errorAt(ref.Name.Lexeme+" is not an array", ref.Name)
	}
	idxType, err := c.checkExpr(ref.ArrayExpr)
	if err != nil {
		return ast.DataType{}, err
	}
	if idxType.IsArray || idxType.TypeName.Kind != token.INT_TYPE {
		return ast.DataType{}, c.errorAt("array index must be an int", ref.Name)
	}
	return elementType(t), nil
}

func fieldType(sd *ast.StructDef, name string) (ast.DataType, bool) {
	for _, f := range sd.Fields {
		if f.Name.Lexeme == name {
			return f.Type, true
		}
	}
	return ast.DataType{}, false
}
