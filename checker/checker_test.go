package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/mypl/mplerr"
	"github.com/akashmaji946/mypl/parser"
)

func checkSrc(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err, "source must parse cleanly")
	return Check(prog)
}

func TestCheck_EndToEndScenarios(t *testing.T) {
	srcs := []string{
		`void main() { print("hello"); }`,
		`void main() { int s = 0; for (int i = 0; i <= 10; i = i + 1) { s = s + i; } print(itos(s)); }`,
		`void main() { array int a = new int[3]; a[0]=1; a[1]=2; a[2]=3; print(itos(a[0]+a[1]+a[2])); }`,
		`struct P { int x; int y; } void main() { P p = new P(3,4); print(itos(p.x*p.x + p.y*p.y)); }`,
		`void main() { try { int x = stoi("oops"); } catch { print("ERR"); } }`,
		`void main() { array int a = new int[2]; try { a[5] = 1; } catch { print("oob"); } }`,
	}
	for i, src := range srcs {
		err := checkSrc(t, src)
		assert.NoError(t, err, "scenario %d: %s", i+1, src)
	}
}

func TestCheck_MissingMainIsStaticError(t *testing.T) {
	err := checkSrc(t, `void notmain() {}`)
	require.Error(t, err)
	var serr *mplerr.StaticError
	require.ErrorAs(t, err, &serr)
	assert.False(t, serr.Located)
}

func TestCheck_MainWithParamsIsError(t *testing.T) {
	err := checkSrc(t, `void main(int x) {}`)
	require.Error(t, err)
}

func TestCheck_MainNonVoidIsError(t *testing.T) {
	err := checkSrc(t, `int main() { return 0; }`)
	require.Error(t, err)
}

func TestCheck_DuplicateStructIsError(t *testing.T) {
	err := checkSrc(t, `struct S { int x; } struct S { int y; } void main() {}`)
	require.Error(t, err)
}

func TestCheck_DuplicateFunctionIsError(t *testing.T) {
	err := checkSrc(t, `void f() {} void f() {} void main() {}`)
	require.Error(t, err)
}

func TestCheck_RedefiningBuiltinIsError(t *testing.T) {
	err := checkSrc(t, `void print() {} void main() {}`)
	require.Error(t, err)
}

func TestCheck_UndeclaredVariableIsError(t *testing.T) {
	err := checkSrc(t, `void main() { x = 1; }`)
	require.Error(t, err)
}

func TestCheck_ShadowingSameScopeIsError(t *testing.T) {
	err := checkSrc(t, `void main() { int x = 1; int x = 2; }`)
	require.Error(t, err)
}

func TestCheck_ShadowingOuterScopeIsLegal(t *testing.T) {
	err := checkSrc(t, `void main() { int x = 1; if (true) { int x = 2; print(itos(x)); } }`)
	assert.NoError(t, err)
}

func TestCheck_TypeMismatchInInitializerIsError(t *testing.T) {
	err := checkSrc(t, `void main() { int x = "oops"; }`)
	require.Error(t, err)
}

func TestCheck_NullAssignableToAnyNonVoidType(t *testing.T) {
	err := checkSrc(t, `void main() { int x = null; array int a = null; }`)
	assert.NoError(t, err)
}

func TestCheck_ArithmeticRequiresMatchingNumericTypes(t *testing.T) {
	err := checkSrc(t, `void main() { int x = 1 + 2.0; }`)
	require.Error(t, err)
}

func TestCheck_PlusOnStringsIsLegal(t *testing.T) {
	err := checkSrc(t, `void main() { string s = "a" + "b"; }`)
	assert.NoError(t, err)
}

func TestCheck_MinusOnStringsIsError(t *testing.T) {
	err := checkSrc(t, `void main() { string s = "a" - "b"; }`)
	require.Error(t, err)
}

func TestCheck_AndRequiresBoolOperands(t *testing.T) {
	err := checkSrc(t, `void main() { bool b = 1 and 2; }`)
	require.Error(t, err)
}

func TestCheck_EqualityAllowsMixedWithNull(t *testing.T) {
	err := checkSrc(t, `void main() { int x = 1; bool b = x == null; }`)
	assert.NoError(t, err)
}

func TestCheck_ConditionMustBeBool(t *testing.T) {
	err := checkSrc(t, `void main() { if (1) { } }`)
	require.Error(t, err)
}

func TestCheck_ArrayIndexMustBeInt(t *testing.T) {
	err := checkSrc(t, `void main() { array int a = new int[1]; int x = a["0"]; }`)
	require.Error(t, err)
}

func TestCheck_StructFieldCountMismatchIsError(t *testing.T) {
	err := checkSrc(t, `struct P { int x; int y; } void main() { P p = new P(1); }`)
	require.Error(t, err)
}

func TestCheck_StructFieldAccessOnUnknownField(t *testing.T) {
	err := checkSrc(t, `struct P { int x; } void main() { P p = new P(1); int z = p.y; }`)
	require.Error(t, err)
}

func TestCheck_PrintRejectsStruct(t *testing.T) {
	err := checkSrc(t, `struct P { int x; } void main() { P p = new P(1); print(p); }`)
	require.Error(t, err)
}

func TestCheck_PrintRejectsArray(t *testing.T) {
	err := checkSrc(t, `void main() { array int a = new int[1]; print(a); }`)
	require.Error(t, err)
}

func TestCheck_LengthAcceptsStringOrArray(t *testing.T) {
	err := checkSrc(t, `void main() { array int a = new int[1]; int n = length(a); int m = length("hi"); }`)
	assert.NoError(t, err)
}

func TestCheck_UserFunctionCallArityAndTypes(t *testing.T) {
	err := checkSrc(t, `int add(int a, int b) { return a + b; } void main() { int x = add(1, 2); }`)
	assert.NoError(t, err)

	err = checkSrc(t, `int add(int a, int b) { return a + b; } void main() { int x = add(1); }`)
	require.Error(t, err)

	err = checkSrc(t, `int add(int a, int b) { return a + b; } void main() { int x = add(1, "two"); }`)
	require.Error(t, err)
}

func TestCheck_ReturnTypeMismatchIsError(t *testing.T) {
	err := checkSrc(t, `int f() { return "oops"; } void main() {}`)
	require.Error(t, err)
}

func TestCheck_ForLoopStepVisibleToCondition(t *testing.T) {
	err := checkSrc(t, `void main() { for (int i = 0; i < 3; i = i + 1) { } }`)
	assert.NoError(t, err)
}
