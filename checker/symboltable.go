package checker

import "github.com/akashmaji946/mypl/ast"

// SymbolTable is a push/pop stack of scopes mapping a name to its
// DataType. Lookup searches from the innermost scope outward; a name
// may only be declared once per scope (spec.md §4.3 invariant: no
// shadowing within the same scope).
type SymbolTable struct {
	scopes []map[string]ast.DataType
}

// NewSymbolTable returns an empty table with no open scopes.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Push opens a new, empty scope.
func (s *SymbolTable) Push() {
	s.scopes = append(s.scopes, make(map[string]ast.DataType))
}

// Pop closes the innermost scope.
func (s *SymbolTable) Pop() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Declare binds name to dt in the innermost scope, overwriting any
// existing binding for name in that scope.
func (s *SymbolTable) Declare(name string, dt ast.DataType) {
	s.scopes[len(s.scopes)-1][name] = dt
}

// DeclaredInCurrentScope reports whether name is already bound in the
// innermost scope.
func (s *SymbolTable) DeclaredInCurrentScope(name string) bool {
	_, ok := s.scopes[len(s.scopes)-1][name]
	return ok
}

// Lookup searches outward from the innermost scope for name.
func (s *SymbolTable) Lookup(name string) (ast.DataType, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if dt, ok := s.scopes[i][name]; ok {
			return dt, true
		}
	}
	return ast.DataType{}, false
}
