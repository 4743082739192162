package vm

import "github.com/akashmaji946/mypl/bytecode"

// execAllocS allocates a fresh, empty struct record and pushes its oid.
func (vm *VM) execAllocS(frame *Frame) {
	id := vm.nextObjID
	vm.nextObjID++
	vm.structHeap[id] = make(map[string]Value)
	frame.push(id)
}

func (vm *VM) execSetF(frame *Frame, instr bytecode.Instruction) error {
	field := instr.Operand.(string)
	value := frame.pop()
	target := frame.pop()
	id, ok := target.(oid)
	if !ok {
		return vm.fault(frame, "cannot set a field on a null value")
	}
	vm.structHeap[id][field] = value
	return nil
}

func (vm *VM) execGetF(frame *Frame, instr bytecode.Instruction) error {
	field := instr.Operand.(string)
	target := frame.pop()
	id, ok := target.(oid)
	if !ok {
		return vm.fault(frame, "cannot read a field from a null value")
	}
	frame.push(vm.structHeap[id][field])
	return nil
}

// execAllocA allocates a fresh array of n nulls and pushes its oid. A
// negative or non-int size is a fatal fault, never trappable.
func (vm *VM) execAllocA(frame *Frame) error {
	size := frame.pop()
	n, ok := size.(int64)
	if !ok || n < 0 {
		return vm.fault(frame, "array size must be a non-negative int")
	}
	id := vm.nextObjID
	vm.nextObjID++
	vm.arrayHeap[id] = make([]Value, n)
	frame.push(id)
	return nil
}

// execSetI implements SETI. Only an out-of-bounds index is a trappable
// fault (spec §4.5/§7); a null array location or a non-int index is
// listed among the fatal faults ("null operand id in heap access") and
// must abort even inside an active try.
func (vm *VM) execSetI(frame *Frame) error {
	value := frame.pop()
	index := frame.pop()
	target := frame.pop()
	id, okID := target.(oid)
	idx, okIdx := index.(int64)
	if !okID {
		return vm.fault(frame, "array location cannot be null")
	}
	if !okIdx {
		return vm.fault(frame, "array index must be an int")
	}
	arr := vm.arrayHeap[id]
	if idx < 0 || int(idx) >= len(arr) {
		return vm.trapFault(frame, "array index out of bounds")
	}
	arr[idx] = value
	return nil
}

// execGetI implements GETI. Only an out-of-bounds index is a trappable
// fault; a null array location or a non-int index is always fatal.
func (vm *VM) execGetI(frame *Frame) error {
	index := frame.pop()
	target := frame.pop()
	id, okID := target.(oid)
	idx, okIdx := index.(int64)
	if !okID {
		return vm.fault(frame, "array location cannot be null")
	}
	if !okIdx {
		return vm.fault(frame, "array index must be an int")
	}
	arr := vm.arrayHeap[id]
	if idx < 0 || int(idx) >= len(arr) {
		return vm.trapFault(frame, "array index out of bounds")
	}
	frame.push(arr[idx])
	return nil
}
