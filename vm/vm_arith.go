package vm

import (
	"math"

	"github.com/akashmaji946/mypl/bytecode"
)

// execArith implements ADD/SUB/MUL/DIV. Both operands must be non-null
// numerics of the same type (ADD also concatenates two strings); integer
// MUL/DIV between two ints floors the result back to an integer (spec §4.5).
func (vm *VM) execArith(frame *Frame, instr bytecode.Instruction) error {
	x := frame.pop()
	y := frame.pop()
	if x == nil || y == nil {
		return vm.fault(frame, "cannot operate on null values")
	}

	switch instr.OpCode {
	case bytecode.ADD:
		switch yv := y.(type) {
		case int64:
			if xv, ok := x.(int64); ok {
				frame.push(yv + xv)
				return nil
			}
		case float64:
			if xv, ok := x.(float64); ok {
				frame.push(yv + xv)
				return nil
			}
		case string:
			if xv, ok := x.(string); ok {
				frame.push(yv + xv)
				return nil
			}
		}
		return vm.fault(frame, "mismatched operand types in +")
	case bytecode.SUB:
		yi, xi, yf, xf, ok := numPair(y, x)
		if !ok {
			return vm.fault(frame, "mismatched operand types in -")
		}
		if yi != nil {
			frame.push(*yi - *xi)
		} else {
			frame.push(*yf - *xf)
		}
		return nil
	case bytecode.MUL:
		yi, xi, yf, xf, ok := numPair(y, x)
		if !ok {
			return vm.fault(frame, "mismatched operand types in *")
		}
		if yi != nil {
			frame.push(*yi * *xi)
		} else {
			frame.push(*yf * *xf)
		}
		return nil
	case bytecode.DIV:
		yi, xi, yf, xf, ok := numPair(y, x)
		if !ok {
			return vm.fault(frame, "mismatched operand types in /")
		}
		if yi != nil {
			if *xi == 0 {
				return vm.fault(frame, "division by zero")
			}
			frame.push(int64(math.Floor(float64(*yi) / float64(*xi))))
		} else {
			if *xf == 0 {
				return vm.fault(frame, "division by zero")
			}
			frame.push(*yf / *xf)
		}
		return nil
	}
	return vm.fault(frame, "unreachable arithmetic opcode")
}

// numPair classifies y,x as either both int64 or both float64. Returns
// ok=false on any other combination (including one-int-one-double, which
// the checker never allows through in the first place).
func numPair(y, x Value) (yi, xi *int64, yf, xf *float64, ok bool) {
	if yv, isY := y.(int64); isY {
		if xv, isX := x.(int64); isX {
			return &yv, &xv, nil, nil, true
		}
		return nil, nil, nil, nil, false
	}
	if yv, isY := y.(float64); isY {
		if xv, isX := x.(float64); isX {
			return nil, nil, &yv, &xv, true
		}
	}
	return nil, nil, nil, nil, false
}

// execBool implements AND/OR/NOT over genuine Go bools (a deliberate
// departure from the reference's 'true'/'false' string representation).
func (vm *VM) execBool(frame *Frame, instr bytecode.Instruction) error {
	if instr.OpCode == bytecode.NOT {
		x := frame.pop()
		xb, ok := x.(bool)
		if !ok {
			return vm.fault(frame, "cannot negate a null value")
		}
		frame.push(!xb)
		return nil
	}
	x := frame.pop()
	y := frame.pop()
	xb, xok := x.(bool)
	yb, yok := y.(bool)
	if !xok || !yok {
		return vm.fault(frame, "cannot logically combine null values")
	}
	if instr.OpCode == bytecode.AND {
		frame.push(yb && xb)
	} else {
		frame.push(yb || xb)
	}
	return nil
}
