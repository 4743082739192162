/*
File   : mypl/mplerr/mplerr.go

Package mplerr defines the four located error kinds that can be raised
while running the MyPL pipeline: lexer, parser, static (semantic) and VM
errors. Each is fatal to its phase — the pipeline does not attempt partial
recovery once one is raised.
*/
package mplerr

import "fmt"

// LexerError reports a malformed token or invalid character.
type LexerError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("Lexer Error: %s at line %d, column %d", e.Message, e.Line, e.Column)
}

// NewLexerError builds a located LexerError.
func NewLexerError(message string, line, column int) *LexerError {
	return &LexerError{Message: message, Line: line, Column: column}
}

// ParserError reports an unexpected token during parsing. Its message
// always begins with "Parser Error" per spec.
type ParserError struct {
	Message string
	Lexeme  string
	Line    int
	Column  int
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("Parser Error: %s ('%s') at line %d, column %d", e.Message, e.Lexeme, e.Line, e.Column)
}

// NewParserError builds a located ParserError.
func NewParserError(message, lexeme string, line, column int) *ParserError {
	return &ParserError{Message: message, Lexeme: lexeme, Line: line, Column: column}
}

// StaticError reports a typing, scoping or declaration violation found by
// the semantic checker.
type StaticError struct {
	Message string
	Line    int
	Column  int
	Located bool
}

func (e *StaticError) Error() string {
	if !e.Located {
		return fmt.Sprintf("Static Error: %s", e.Message)
	}
	return fmt.Sprintf("Static Error: %s at line %d, column %d", e.Message, e.Line, e.Column)
}

// NewStaticError builds a located StaticError.
func NewStaticError(message string, line, column int) *StaticError {
	return &StaticError{Message: message, Line: line, Column: column, Located: true}
}

// NewStaticErrorUnlocated builds a StaticError with no source location
// (used for program-wide violations like a missing main function).
func NewStaticErrorUnlocated(message string) *StaticError {
	return &StaticError{Message: message}
}

// VMError reports a runtime fault. It carries the name of the function
// executing and the program counter of the trapping instruction.
type VMError struct {
	Message  string
	Function string
	PC       int
	Instr    string
}

func (e *VMError) Error() string {
	return fmt.Sprintf("VM Error: %s (in %s at %d: %s)", e.Message, e.Function, e.PC, e.Instr)
}

// NewVMError builds a VMError located by function name, pc and the
// trapping instruction's textual form.
func NewVMError(message, function string, pc int, instr string) *VMError {
	return &VMError{Message: message, Function: function, PC: pc, Instr: instr}
}
