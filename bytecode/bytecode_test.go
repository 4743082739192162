package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_StringNoOperand(t *testing.T) {
	i := New(NOP)
	assert.Equal(t, "NOP", i.String())
}

func TestInstruction_StringWithOperand(t *testing.T) {
	i := NewWithOperand(PUSH, 42)
	assert.Equal(t, "PUSH(42)", i.String())
}

func TestFrameTemplate_AddReturnsIndex(t *testing.T) {
	ft := &FrameTemplate{FunctionName: "main"}
	i0 := ft.Add(New(PUSH))
	i1 := ft.Add(New(POP))
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)
	assert.Equal(t, 2, ft.Len())
}

func TestFrameTemplate_Patch(t *testing.T) {
	ft := &FrameTemplate{FunctionName: "main"}
	jmpIdx := ft.Add(NewWithOperand(JMPF, -1))
	ft.Add(New(NOP))
	ft.Patch(jmpIdx, ft.Len()-1)
	assert.Equal(t, 1, ft.Instructions[jmpIdx].Operand)
}
