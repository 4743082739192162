/*
File   : mypl/token/token.go

Package token defines the fixed token vocabulary produced by the lexer and
consumed by the parser, checker and code generator.
*/
package token

import "fmt"

// Kind identifies the lexical category of a Token. MyPL's token set is
// closed — no user syntax extends it.
type Kind string

// The full, closed set of token kinds recognized by the lexer (spec §6).
const (
	DOT       Kind = "DOT"
	COMMA     Kind = "COMMA"
	LPAREN    Kind = "LPAREN"
	RPAREN    Kind = "RPAREN"
	LBRACE    Kind = "LBRACE"
	RBRACE    Kind = "RBRACE"
	SEMICOLON Kind = "SEMICOLON"
	LBRACKET  Kind = "LBRACKET"
	RBRACKET  Kind = "RBRACKET"

	TIMES  Kind = "TIMES"
	DIVIDE Kind = "DIVIDE"
	PLUS   Kind = "PLUS"
	MINUS  Kind = "MINUS"

	ASSIGN     Kind = "ASSIGN"
	LESS       Kind = "LESS"
	GREATER    Kind = "GREATER"
	LESS_EQ    Kind = "LESS_EQ"
	GREATER_EQ Kind = "GREATER_EQ"
	EQUAL      Kind = "EQUAL"
	NOT_EQUAL  Kind = "NOT_EQUAL"

	INT_VAL    Kind = "INT_VAL"
	DOUBLE_VAL Kind = "DOUBLE_VAL"
	STRING_VAL Kind = "STRING_VAL"
	BOOL_VAL   Kind = "BOOL_VAL"
	NULL_VAL   Kind = "NULL_VAL"

	ID Kind = "ID"

	INT_TYPE    Kind = "INT_TYPE"
	DOUBLE_TYPE Kind = "DOUBLE_TYPE"
	BOOL_TYPE   Kind = "BOOL_TYPE"
	STRING_TYPE Kind = "STRING_TYPE"
	VOID_TYPE   Kind = "VOID_TYPE"

	STRUCT Kind = "STRUCT"
	ARRAY  Kind = "ARRAY"

	WHILE  Kind = "WHILE"
	FOR    Kind = "FOR"
	IF     Kind = "IF"
	ELSEIF Kind = "ELSEIF"
	ELSE   Kind = "ELSE"

	NEW    Kind = "NEW"
	RETURN Kind = "RETURN"

	AND Kind = "AND"
	OR  Kind = "OR"
	NOT Kind = "NOT"

	TRY     Kind = "TRY"
	CATCH   Kind = "CATCH"
	AS      Kind = "AS"
	ZERODIV Kind = "ZERODIV"

	COMMENT Kind = "COMMENT"
	EOS     Kind = "EOS"
)

// Keywords maps reserved-word lexemes to their token kind. Identifiers that
// match an entry become that reserved kind; everything else lexes as ID.
var Keywords = map[string]Kind{
	"int":           INT_TYPE,
	"double":        DOUBLE_TYPE,
	"bool":          BOOL_TYPE,
	"string":        STRING_TYPE,
	"void":          VOID_TYPE,
	"struct":        STRUCT,
	"array":         ARRAY,
	"while":         WHILE,
	"for":           FOR,
	"if":            IF,
	"elseif":        ELSEIF,
	"else":          ELSE,
	"new":           NEW,
	"return":        RETURN,
	"and":           AND,
	"or":            OR,
	"not":           NOT,
	"true":          BOOL_VAL,
	"false":         BOOL_VAL,
	"null":          NULL_VAL,
	"try":           TRY,
	"catch":         CATCH,
	"as":            AS,
	"ZeroDivError":  ZERODIV,
}

// Token is an immutable value record: a lexical kind, its verbatim source
// lexeme (for strings, the interior without quotes), and the 1-based
// line/column where it begins.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

// New builds a Token at the given source position.
func New(kind Kind, lexeme string, line, column int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Column: column}
}

// String renders the token for debugging and error messages.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Kind, t.Lexeme, t.Line, t.Column)
}
