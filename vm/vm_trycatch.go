package vm

import (
	"errors"

	"github.com/akashmaji946/mypl/bytecode"
)

// execTryStart pushes a handler recording the enclosing frame and the
// instruction index of the matching CATCH_START. The code generator
// always emits TRY_START; try-body; TRY_END; CATCH_START; catch-body;
// CATCH_END for one construct (spec §4.4), so a nested try/catch inside
// the try-body contributes its own complete TRY_START...CATCH_END span;
// bracket-matching on those two markers (rather than a plain forward
// search for the next CATCH_START) is what lets this skip over any
// nested construct's own CATCH_START and land on the enclosing one.
func (vm *VM) execTryStart(frame *Frame) {
	instrs := frame.Template.Instructions
	catchIdx := frame.PC
	depth := 1
	for catchIdx < len(instrs) {
		switch instrs[catchIdx].OpCode {
		case bytecode.TRY_START:
			depth++
		case bytecode.CATCH_END:
			depth--
		case bytecode.CATCH_START:
			if depth == 1 {
				vm.handlers = append(vm.handlers, handler{frame: frame, catchIdx: catchIdx})
				return
			}
		}
		catchIdx++
	}
	vm.handlers = append(vm.handlers, handler{frame: frame, catchIdx: catchIdx})
}

// execTryEnd discards the handler pushed by the matching TRY_START — the
// protected body completed without a trappable fault.
func (vm *VM) execTryEnd() {
	vm.handlers = vm.handlers[:len(vm.handlers)-1]
}

// dropHandlersFor removes every handler owned by frame. A `return` inside
// a try-body pops frame via RET before its TRY_END ever runs, and the
// call-stack unwind in recover below discards frames directly without
// running their RET — either way, any handler still pointing at a frame
// that is gone must be discarded with it, or a later fault would pop that
// stale handler, fail to find its frame during unwind, and be reported
// fatal even though a live outer handler is still waiting.
func (vm *VM) dropHandlersFor(frame *Frame) {
	kept := vm.handlers[:0]
	for _, h := range vm.handlers {
		if h.frame != frame {
			kept = append(kept, h)
		}
	}
	vm.handlers = kept
}

// recover attempts to route a fault to the innermost active handler: pop
// it, unwind the call stack down to its owning frame (discarding any
// deeper frames entered since TRY_START, along with any handlers they
// still held), and jump that frame to its catch block. Returns (false,
// nil) when no handler is active or the fault is not of a trappable kind,
// meaning the fault is fatal.
func (vm *VM) recover(faulting *Frame, err error) (bool, *Frame) {
	if !trappable(err) || len(vm.handlers) == 0 {
		return false, nil
	}
	h := vm.handlers[len(vm.handlers)-1]
	vm.handlers = vm.handlers[:len(vm.handlers)-1]

	for len(vm.callStack) > 0 && vm.callStack[len(vm.callStack)-1] != h.frame {
		discarded := vm.callStack[len(vm.callStack)-1]
		vm.callStack = vm.callStack[:len(vm.callStack)-1]
		vm.dropHandlersFor(discarded)
	}
	if len(vm.callStack) == 0 {
		return false, nil
	}
	h.frame.PC = h.catchIdx
	_ = faulting
	return true, h.frame
}

// trappableFault marks a fault as absorbable by an active try/catch
// handler. Trappability is a property of the specific failure, not of the
// opcode that raised it: SETI/GETI fault both on an out-of-range index
// (trappable, spec §4.5/§7) and on a null array location or non-int index
// (always fatal), so gating on opcode alone would wrongly let a null/bad
// index fault be caught.
type trappableFault struct {
	err error
}

func (t *trappableFault) Error() string { return t.err.Error() }
func (t *trappableFault) Unwrap() error { return t.err }

// trapFault builds a VM fault and marks it trappable.
func (vm *VM) trapFault(frame *Frame, message string) error {
	return &trappableFault{err: vm.fault(frame, message)}
}

// trappable reports whether err was raised via trapFault.
func trappable(err error) bool {
	var t *trappableFault
	return errors.As(err, &t)
}
