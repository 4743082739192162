package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/mypl/bytecode"
	"github.com/akashmaji946/mypl/checker"
	"github.com/akashmaji946/mypl/parser"
)

func compile(t *testing.T, src string) map[string]*bytecode.FrameTemplate {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	require.NoError(t, checker.Check(prog))
	return Generate(prog)
}

func opcodes(instrs []bytecode.Instruction) []bytecode.OpCode {
	ops := make([]bytecode.OpCode, len(instrs))
	for i, ins := range instrs {
		ops[i] = ins.OpCode
	}
	return ops
}

func TestGenerate_EmptyMainGetsPushNullRet(t *testing.T) {
	frames := compile(t, `void main() {}`)
	main := frames["main"]
	require.NotNil(t, main)
	assert.Equal(t, []bytecode.OpCode{bytecode.PUSH, bytecode.RET}, opcodes(main.Instructions))
}

func TestGenerate_ReturnStmtSuppressesTrailingPushRet(t *testing.T) {
	frames := compile(t, `int f() { return 1; } void main() {}`)
	f := frames["f"]
	require.NotNil(t, f)
	assert.Equal(t, []bytecode.OpCode{bytecode.PUSH, bytecode.RET}, opcodes(f.Instructions))
	assert.Equal(t, int64(1), f.Instructions[0].Operand)
}

func TestGenerate_VarDeclEmitsStore(t *testing.T) {
	frames := compile(t, `void main() { int x = 5; }`)
	main := frames["main"]
	ops := opcodes(main.Instructions)
	assert.Equal(t, []bytecode.OpCode{bytecode.PUSH, bytecode.STORE, bytecode.PUSH, bytecode.RET}, ops)
	assert.Equal(t, int64(5), main.Instructions[0].Operand)
	assert.Equal(t, 0, main.Instructions[1].Operand)
}

func TestGenerate_SimpleAssignEmitsStore(t *testing.T) {
	frames := compile(t, `void main() { int x = 0; x = 9; }`)
	main := frames["main"]
	ops := opcodes(main.Instructions)
	// PUSH 0, STORE 0, PUSH 9, STORE 0, PUSH null, RET
	assert.Equal(t, []bytecode.OpCode{
		bytecode.PUSH, bytecode.STORE, bytecode.PUSH, bytecode.STORE, bytecode.PUSH, bytecode.RET,
	}, ops)
}

func TestGenerate_ArrayElementAssignEmitsSeti(t *testing.T) {
	frames := compile(t, `void main() { array int a = new int[3]; a[0] = 7; }`)
	main := frames["main"]
	ops := opcodes(main.Instructions)
	assert.Contains(t, ops, bytecode.ALLOCA)
	assert.Contains(t, ops, bytecode.SETI)
}

func TestGenerate_StructFieldAssignEmitsSetf(t *testing.T) {
	frames := compile(t, `struct P { int x; } void main() { P p = new P(1); p.x = 2; }`)
	main := frames["main"]
	ops := opcodes(main.Instructions)
	assert.Contains(t, ops, bytecode.ALLOCS)
	assert.Contains(t, ops, bytecode.SETF)
}

func TestGenerate_IfStmtHasBackpatchedJmpfAndNop(t *testing.T) {
	frames := compile(t, `void main() { if (true) { int x = 1; } }`)
	main := frames["main"]
	jmpfIdx := -1
	for i, ins := range main.Instructions {
		if ins.OpCode == bytecode.JMPF {
			jmpfIdx = i
		}
	}
	require.GreaterOrEqual(t, jmpfIdx, 0)
	target := main.Instructions[jmpfIdx].Operand.(int)
	assert.Equal(t, bytecode.NOP, main.Instructions[target].OpCode)
}

func TestGenerate_WhileStmtJumpsBackToConditionStart(t *testing.T) {
	frames := compile(t, `void main() { int i = 0; while (i < 3) { i = i + 1; } }`)
	main := frames["main"]
	var jmpIdx, jmpfIdx int = -1, -1
	for i, ins := range main.Instructions {
		switch ins.OpCode {
		case bytecode.JMP:
			jmpIdx = i
		case bytecode.JMPF:
			jmpfIdx = i
		}
	}
	require.GreaterOrEqual(t, jmpIdx, 0)
	require.GreaterOrEqual(t, jmpfIdx, 0)
	backTarget := main.Instructions[jmpIdx].Operand.(int)
	assert.Less(t, backTarget, jmpIdx)
	fwdTarget := main.Instructions[jmpfIdx].Operand.(int)
	assert.Equal(t, bytecode.NOP, main.Instructions[fwdTarget].OpCode)
}

func TestGenerate_GreaterThanSwapsOperandsAndUsesCmplt(t *testing.T) {
	frames := compile(t, `void main() { bool b = 1 > 2; }`)
	main := frames["main"]
	ops := opcodes(main.Instructions)
	// PUSH 2, PUSH 1, CMPLT, STORE ...
	require.True(t, len(ops) >= 3)
	assert.Equal(t, bytecode.PUSH, ops[0])
	assert.Equal(t, int64(2), main.Instructions[0].Operand)
	assert.Equal(t, bytecode.PUSH, ops[1])
	assert.Equal(t, int64(1), main.Instructions[1].Operand)
	assert.Equal(t, bytecode.CMPLT, ops[2])
}

func TestGenerate_BuiltinCallsUseDedicatedOpcodes(t *testing.T) {
	frames := compile(t, `void main() { print(itos(stoi("3"))); }`)
	main := frames["main"]
	ops := opcodes(main.Instructions)
	assert.Contains(t, ops, bytecode.TOINT)
	assert.Contains(t, ops, bytecode.TOSTR)
	assert.Contains(t, ops, bytecode.WRITE)
	assert.NotContains(t, ops, bytecode.CALL)
}

func TestGenerate_UserFunctionCallEmitsCall(t *testing.T) {
	frames := compile(t, `int inc(int a) { return a + 1; } void main() { int x = inc(1); }`)
	main := frames["main"]
	ops := opcodes(main.Instructions)
	assert.Contains(t, ops, bytecode.CALL)
	for _, ins := range main.Instructions {
		if ins.OpCode == bytecode.CALL {
			assert.Equal(t, "inc", ins.Operand)
		}
	}
}

func TestGenerate_StringLiteralDecodesEscapes(t *testing.T) {
	frames := compile(t, `void main() { string s = "a\nb\tc"; }`)
	main := frames["main"]
	assert.Equal(t, "a\nb\tc", main.Instructions[0].Operand)
}

func TestGenerate_TryCatchEmitsMarkersInOrder(t *testing.T) {
	frames := compile(t, `void main() { try { int x = stoi("bad"); } catch { print("oops"); } }`)
	main := frames["main"]
	ops := opcodes(main.Instructions)
	assert.Equal(t, []bytecode.OpCode{bytecode.TRY_START}, ops[:1])
	var tryEndIdx, catchStartIdx, catchEndIdx int = -1, -1, -1
	for i, op := range ops {
		switch op {
		case bytecode.TRY_END:
			tryEndIdx = i
		case bytecode.CATCH_START:
			catchStartIdx = i
		case bytecode.CATCH_END:
			catchEndIdx = i
		}
	}
	assert.True(t, tryEndIdx < catchStartIdx)
	assert.True(t, catchStartIdx < catchEndIdx)
}
