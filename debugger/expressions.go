package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

// ExpressionEvaluator evaluates the small expression language accepted by
// debugger commands: integer literals, x0-x31/pc/sp/ra/f0-f31 register
// reads, [addr]/*addr memory dereferences, $N value-history references, and
// the binary operators +,-,*,/,&,|,^,<<,>>. There is no grouping with
// parentheses. An expression is split at the leftmost occurrence of the
// first operator found in the order <<, >>, &, |, ^, +, -, *, / and both
// sides are evaluated recursively, so a chain of one operator groups to the
// right: 10 - 2 - 3 evaluates as 10 - (2 - 3).
type ExpressionEvaluator struct {
	valueHistory []uint32
	valueNumber  int
}

func NewExpressionEvaluator() *ExpressionEvaluator {
	return &ExpressionEvaluator{valueHistory: make([]uint32, 0)}
}

// EvaluateExpression evaluates expr and records the result in the value
// history so a later expression can reference it as $N.
func (e *ExpressionEvaluator) EvaluateExpression(expr string, s *vm.State, symbols map[string]uint32) (uint32, error) {
	result, err := e.evaluate(expr, s, symbols)
	if err != nil {
		return 0, err
	}
	e.valueHistory = append(e.valueHistory, result)
	e.valueNumber = len(e.valueHistory)
	return result, nil
}

// Evaluate evaluates expr as a breakpoint/watchpoint condition: nonzero is
// true.
func (e *ExpressionEvaluator) Evaluate(expr string, s *vm.State, symbols map[string]uint32) (bool, error) {
	result, err := e.evaluate(expr, s, symbols)
	if err != nil {
		return false, err
	}
	return result != 0, nil
}

func (e *ExpressionEvaluator) GetValueNumber() int { return e.valueNumber }

func (e *ExpressionEvaluator) GetValue(number int) (uint32, error) {
	if number < 1 || number > len(e.valueHistory) {
		return 0, fmt.Errorf("value $%d not in history", number)
	}
	return e.valueHistory[number-1], nil
}

func (e *ExpressionEvaluator) Reset() {
	e.valueHistory = e.valueHistory[:0]
	e.valueNumber = 0
}

func (e *ExpressionEvaluator) evaluate(expr string, s *vm.State, symbols map[string]uint32) (uint32, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, fmt.Errorf("empty expression")
	}

	if val, err := e.trySimpleEval(expr, s, symbols); err == nil {
		return val, nil
	}

	// Binary operators, longest token first so << and >> aren't split by <, >.
	operators := []string{"<<", ">>", "&", "|", "^", "+", "-", "*", "/"}
	for _, op := range operators {
		patterns := []string{" " + op + " ", " " + op, op + " "}
		for _, pattern := range patterns {
			idx := strings.Index(expr, pattern)
			if idx < 0 {
				continue
			}

			opPos := idx
			if pattern[0] == ' ' {
				opPos++
			}

			left := strings.TrimSpace(expr[:opPos])
			right := strings.TrimSpace(expr[opPos+len(op):])
			if left == "" || right == "" {
				continue
			}

			leftVal, err := e.evaluate(left, s, symbols)
			if err != nil {
				continue
			}
			rightVal, err := e.evaluate(right, s, symbols)
			if err != nil {
				continue
			}
			return applyOperator(leftVal, rightVal, op)
		}
	}

	return 0, fmt.Errorf("invalid expression: %s", expr)
}

func (e *ExpressionEvaluator) trySimpleEval(expr string, s *vm.State, symbols map[string]uint32) (uint32, error) {
	expr = strings.TrimSpace(expr)

	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		addr, err := e.evaluate(strings.TrimSpace(expr[1:len(expr)-1]), s, symbols)
		if err != nil {
			return 0, err
		}
		return s.Memory.LoadU32(addr), nil
	}

	if strings.HasPrefix(expr, "*") {
		addr, err := e.evaluate(strings.TrimSpace(expr[1:]), s, symbols)
		if err != nil {
			return 0, err
		}
		return s.Memory.LoadU32(addr), nil
	}

	if strings.HasPrefix(expr, "$") {
		num, err := strconv.Atoi(expr[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid value reference: %s", expr)
		}
		return e.GetValue(num)
	}

	if val, err := evalRegister(expr, s); err == nil {
		return val, nil
	}

	if addr, exists := symbols[expr]; exists {
		return addr, nil
	}

	if val, err := parseNumber(expr); err == nil {
		return val, nil
	}

	return 0, fmt.Errorf("unknown identifier: %s", expr)
}

// evalRegister resolves x0-x31, the aliases pc/sp/ra, and f0-f31.
func evalRegister(expr string, s *vm.State) (uint32, error) {
	expr = strings.ToLower(expr)

	switch expr {
	case "pc":
		return s.PC, nil
	case "sp":
		return s.Regs[2], nil
	case "ra":
		return s.Regs[1], nil
	}

	if strings.HasPrefix(expr, "x") {
		var n int
		if _, err := fmt.Sscanf(expr, "x%d", &n); err == nil && n >= 0 && n <= 31 {
			return s.Regs[n], nil
		}
	}

	if strings.HasPrefix(expr, "f") {
		var n int
		if _, err := fmt.Sscanf(expr, "f%d", &n); err == nil && n >= 0 && n <= 31 {
			return s.FRegs[n], nil
		}
	}

	return 0, fmt.Errorf("not a register")
}

func parseNumber(expr string) (uint32, error) {
	expr = strings.TrimSpace(expr)

	if strings.HasPrefix(strings.ToLower(expr), "0x") {
		val, err := strconv.ParseUint(expr[2:], 16, 32)
		if err != nil {
			return 0, err
		}
		return uint32(val), nil
	}

	if strings.HasPrefix(expr, "0b") || strings.HasPrefix(expr, "0B") {
		val, err := strconv.ParseUint(expr[2:], 2, 32)
		if err != nil {
			return 0, err
		}
		return uint32(val), nil
	}

	if strings.HasPrefix(expr, "0") && len(expr) > 1 {
		val, err := strconv.ParseUint(expr, 8, 32)
		if err != nil {
			return 0, err
		}
		return uint32(val), nil
	}

	val, err := strconv.ParseInt(expr, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(val), nil
}

func applyOperator(left, right uint32, op string) (uint32, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return left / right, nil
	case "&":
		return left & right, nil
	case "|":
		return left | right, nil
	case "^":
		return left ^ right, nil
	case "<<":
		return left << right, nil
	case ">>":
		return left >> right, nil
	default:
		return 0, fmt.Errorf("unknown operator: %s", op)
	}
}
