package vm

import "github.com/akashmaji946/mypl/bytecode"

// execCall pushes a new frame for the callee, moving arg_count values
// from the caller's operand stack onto the callee's — popped one at a
// time (LIFO) so the callee's own prologue STOREs land them in
// declaration order (spec §4.5).
func (vm *VM) execCall(frame *Frame, instr bytecode.Instruction) (*Frame, error) {
	name := instr.Operand.(string)
	tmpl, ok := vm.frameTemplates[name]
	if !ok {
		return nil, vm.fault(frame, "call to undefined function "+name)
	}
	callee := newFrame(tmpl)
	for i := 0; i < tmpl.ArgCount; i++ {
		callee.push(frame.pop())
	}
	vm.callStack = append(vm.callStack, callee)
	return callee, nil
}

// execRet pops the return value and the current frame, then hands the
// value to the new top frame (the caller), if any. A `return` inside a
// try-body emits RET before that try's TRY_END ever runs, so any handler
// still registered against the popping frame must be dropped here too —
// otherwise it outlives its frame and recover (vm_trycatch.go) finds a
// dead frame while unwinding and wrongly treats the fault as fatal.
func (vm *VM) execRet(frame *Frame) (*Frame, error) {
	returnVal := frame.pop()
	vm.callStack = vm.callStack[:len(vm.callStack)-1]
	vm.dropHandlersFor(frame)
	if len(vm.callStack) == 0 {
		return nil, nil
	}
	caller := vm.callStack[len(vm.callStack)-1]
	caller.push(returnVal)
	return caller, nil
}
