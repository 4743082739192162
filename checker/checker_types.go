package checker

import "github.com/akashmaji946/mypl/ast"
import "github.com/akashmaji946/mypl/token"

// BuiltIns is the closed set of built-in function names a user
// function may not redefine (spec.md §4.3).
var BuiltIns = map[string]bool{
	"print": true, "input": true, "itos": true, "itod": true,
	"dtos": true, "dtoi": true, "stoi": true, "stod": true,
	"length": true, "get": true,
}

func synthType(kind token.Kind, lexeme string) ast.DataType {
	return ast.DataType{TypeName: token.New(kind, lexeme, 0, 0)}
}

func intType() ast.DataType    { return synthType(token.INT_TYPE, "int") }
func doubleType() ast.DataType { return synthType(token.DOUBLE_TYPE, "double") }
func stringType() ast.DataType { return synthType(token.STRING_TYPE, "string") }
func boolType() ast.DataType   { return synthType(token.BOOL_TYPE, "bool") }
func voidType() ast.DataType   { return synthType(token.VOID_TYPE, "void") }

func isNullType(dt ast.DataType) bool { return dt.TypeName.Kind == token.NULL_VAL }

func isBaseScalarKind(k token.Kind) bool {
	switch k {
	case token.INT_TYPE, token.DOUBLE_TYPE, token.BOOL_TYPE, token.STRING_TYPE:
		return true
	}
	return false
}

// sameType reports whether two non-null DataTypes denote exactly the
// same type: same array-ness, and either the same base-type kind or
// (for struct types) the same struct name.
func sameType(a, b ast.DataType) bool {
	if a.IsArray != b.IsArray {
		return false
	}
	if a.TypeName.Kind == token.ID && b.TypeName.Kind == token.ID {
		return a.TypeName.Lexeme == b.TypeName.Lexeme
	}
	return a.TypeName.Kind == b.TypeName.Kind
}

// isAssignable reports whether a value of type `value` may be stored
// into a slot declared as `slot` — null is compatible with any
// non-void slot (array or not); otherwise the types must match exactly
// (spec.md §4.3).
func isAssignable(slot, value ast.DataType) bool {
	if isNullType(value) {
		return slot.TypeName.Kind != token.VOID_TYPE
	}
	return sameType(slot, value)
}

// elementType strips one array dimension off an array DataType.
func elementType(arr ast.DataType) ast.DataType {
	return ast.DataType{IsArray: false, TypeName: arr.TypeName}
}
