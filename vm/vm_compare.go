package vm

import "github.com/akashmaji946/mypl/bytecode"

// execCompare implements CMPLT/CMPLE/CMPEQ/CMPNE. Ordering comparisons
// reject null operands; equality comparisons accept them (spec §4.5).
func (vm *VM) execCompare(frame *Frame, instr bytecode.Instruction) error {
	x := frame.pop()
	y := frame.pop()

	switch instr.OpCode {
	case bytecode.CMPEQ:
		frame.push(valuesEqual(y, x))
		return nil
	case bytecode.CMPNE:
		frame.push(!valuesEqual(y, x))
		return nil
	}

	if x == nil || y == nil {
		return vm.fault(frame, "cannot order-compare null values")
	}
	less, ok := lessThan(y, x)
	if !ok {
		return vm.fault(frame, "mismatched or non-orderable operand types")
	}
	if instr.OpCode == bytecode.CMPLT {
		frame.push(less)
	} else {
		frame.push(less || valuesEqual(y, x))
	}
	return nil
}

func lessThan(y, x Value) (bool, bool) {
	switch yv := y.(type) {
	case int64:
		if xv, ok := x.(int64); ok {
			return yv < xv, true
		}
	case float64:
		if xv, ok := x.(float64); ok {
			return yv < xv, true
		}
	case string:
		if xv, ok := x.(string); ok {
			return yv < xv, true
		}
	}
	return false, false
}

func valuesEqual(y, x Value) bool {
	if y == nil || x == nil {
		return y == nil && x == nil
	}
	return y == x
}
