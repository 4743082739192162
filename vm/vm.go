/*
File   : mypl/vm/vm.go

Package vm implements MyPL's stack-based virtual machine: it loads one
bytecode.FrameTemplate per function, runs the "main" template to
completion, and maintains the two heaps (struct, array) that give struct
and array values shared-by-reference semantics (spec §4.5, §5).
*/
package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/mypl/bytecode"
	"github.com/akashmaji946/mypl/mplerr"
)

// Frame is one function activation: a program counter into its template's
// instruction list, a frame-local operand stack, and a slot array for
// declared variables.
type Frame struct {
	Template     *bytecode.FrameTemplate
	PC           int
	OperandStack []Value
	Variables    []Value
}

func newFrame(tmpl *bytecode.FrameTemplate) *Frame {
	return &Frame{Template: tmpl}
}

func (f *Frame) push(v Value) {
	f.OperandStack = append(f.OperandStack, v)
}

func (f *Frame) pop() Value {
	n := len(f.OperandStack)
	v := f.OperandStack[n-1]
	f.OperandStack = f.OperandStack[:n-1]
	return v
}

func (f *Frame) top() Value {
	return f.OperandStack[len(f.OperandStack)-1]
}

// handler is one active try/catch protection: the frame it was pushed
// from, and the instruction index of that frame's CATCH_START marker.
type handler struct {
	frame    *Frame
	catchIdx int
}

// VM owns the struct/array heaps, the loaded frame templates, and the
// active call stack for one run. Output and input are redirectable
// (defaulting to os.Stdout/os.Stdin) so tests can capture WRITE output
// and script READ input, mirroring how the teacher's tree-walker
// evaluator exposes Writer/Reader.
type VM struct {
	structHeap map[oid]map[string]Value
	arrayHeap  map[oid][]Value
	nextObjID  oid

	frameTemplates map[string]*bytecode.FrameTemplate
	callStack      []*Frame
	handlers       []handler

	Writer io.Writer
	Reader *bufio.Reader
}

// New creates a VM with no loaded frame templates.
func New() *VM {
	return &VM{
		structHeap:     make(map[oid]map[string]Value),
		arrayHeap:      make(map[oid][]Value),
		nextObjID:      firstObjectID,
		frameTemplates: make(map[string]*bytecode.FrameTemplate),
		Writer:         os.Stdout,
		Reader:         bufio.NewReader(os.Stdin),
	}
}

// SetWriter redirects WRITE output.
func (vm *VM) SetWriter(w io.Writer) { vm.Writer = w }

// SetReader redirects READ input.
func (vm *VM) SetReader(r io.Reader) { vm.Reader = bufio.NewReader(r) }

// AddFrameTemplate registers a compiled function for later CALL dispatch
// and for Run to locate "main".
func (vm *VM) AddFrameTemplate(tmpl *bytecode.FrameTemplate) {
	vm.frameTemplates[tmpl.FunctionName] = tmpl
}

// Load registers every template produced by codegen.Generate.
func (vm *VM) Load(templates map[string]*bytecode.FrameTemplate) {
	for _, tmpl := range templates {
		vm.AddFrameTemplate(tmpl)
	}
}

func (vm *VM) fault(frame *Frame, message string) error {
	pc := frame.PC - 1
	instr := frame.Template.Instructions[pc]
	return mplerr.NewVMError(message, frame.Template.FunctionName, pc, instr.String())
}

// Run instantiates a frame from the "main" template and executes until
// the call stack empties (normal return) or a non-trappable fault aborts
// the run.
func (vm *VM) Run() error {
	tmpl, ok := vm.frameTemplates["main"]
	if !ok {
		return mplerr.NewVMError("no \"main\" function", "", 0, "")
	}
	frame := newFrame(tmpl)
	vm.callStack = append(vm.callStack, frame)

	for len(vm.callStack) > 0 && frame.PC < len(frame.Template.Instructions) {
		instr := frame.Template.Instructions[frame.PC]
		frame.PC++

		next, faultErr := vm.step(frame, instr)
		if faultErr != nil {
			recovered, target := vm.recover(frame, faultErr)
			if !recovered {
				return faultErr
			}
			frame = target
			continue
		}
		if next != nil {
			frame = next
		}
		if len(vm.callStack) == 0 {
			break
		}
	}
	return nil
}

// step executes one instruction against frame. It returns a non-nil
// *Frame when control transfers to a different frame (CALL/RET), and a
// non-nil error for any fault (trappable or not) — the caller decides
// whether a handler can absorb it.
func (vm *VM) step(frame *Frame, instr bytecode.Instruction) (*Frame, error) {
	switch instr.OpCode {
	case bytecode.PUSH:
		frame.push(instr.Operand)
		return nil, nil
	case bytecode.POP:
		frame.pop()
		return nil, nil
	case bytecode.STORE:
		return nil, vm.execStore(frame, instr)
	case bytecode.LOAD:
		return nil, vm.execLoad(frame, instr)

	case bytecode.ADD, bytecode.SUB, bytecode.MUL, bytecode.DIV:
		return nil, vm.execArith(frame, instr)
	case bytecode.AND, bytecode.OR, bytecode.NOT:
		return nil, vm.execBool(frame, instr)
	case bytecode.CMPLT, bytecode.CMPLE, bytecode.CMPEQ, bytecode.CMPNE:
		return nil, vm.execCompare(frame, instr)

	case bytecode.JMP:
		frame.PC = instr.Operand.(int)
		return nil, nil
	case bytecode.JMPF:
		x := frame.pop()
		if x == false {
			frame.PC = instr.Operand.(int)
		}
		return nil, nil

	case bytecode.CALL:
		return vm.execCall(frame, instr)
	case bytecode.RET:
		return vm.execRet(frame)

	case bytecode.WRITE:
		vm.execWrite(frame)
		return nil, nil
	case bytecode.READ:
		vm.execRead(frame)
		return nil, nil

	case bytecode.TOINT:
		return nil, vm.execToInt(frame)
	case bytecode.TODBL:
		return nil, vm.execToDbl(frame)
	case bytecode.TOSTR:
		return nil, vm.execToStr(frame)
	case bytecode.LEN:
		return nil, vm.execLen(frame)
	case bytecode.GETC:
		return nil, vm.execGetC(frame)

	case bytecode.ALLOCS:
		vm.execAllocS(frame)
		return nil, nil
	case bytecode.SETF:
		return nil, vm.execSetF(frame, instr)
	case bytecode.GETF:
		return nil, vm.execGetF(frame, instr)
	case bytecode.ALLOCA:
		return nil, vm.execAllocA(frame)
	case bytecode.SETI:
		return nil, vm.execSetI(frame)
	case bytecode.GETI:
		return nil, vm.execGetI(frame)

	case bytecode.DUP:
		x := frame.top()
		frame.push(x)
		return nil, nil
	case bytecode.NOP:
		return nil, nil

	case bytecode.TRY_START:
		vm.execTryStart(frame)
		return nil, nil
	case bytecode.TRY_END:
		vm.execTryEnd()
		// The try body finished without a trappable fault: resume just past
		// the matching CATCH_END so the catch body is skipped.
		depth := 0
		for i := frame.PC; i < len(frame.Template.Instructions); i++ {
			switch frame.Template.Instructions[i].OpCode {
			case bytecode.TRY_START:
				depth++
			case bytecode.CATCH_END:
				if depth == 0 {
					frame.PC = i + 1
					return nil, nil
				}
				depth--
			}
		}
		return nil, nil
	case bytecode.CATCH_START, bytecode.CATCH_END:
		return nil, nil

	default:
		return nil, vm.fault(frame, fmt.Sprintf("unsupported operation %s", instr))
	}
}

func (vm *VM) execStore(frame *Frame, instr bytecode.Instruction) error {
	addr := instr.Operand.(int)
	value := frame.pop()
	for len(frame.Variables) <= addr {
		frame.Variables = append(frame.Variables, nil)
	}
	frame.Variables[addr] = value
	return nil
}

func (vm *VM) execLoad(frame *Frame, instr bytecode.Instruction) error {
	addr := instr.Operand.(int)
	frame.push(frame.Variables[addr])
	return nil
}
