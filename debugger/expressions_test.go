package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

func TestExpressionEvaluator_IntegerLiterals(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()

	cases := map[string]uint32{
		"42":     42,
		"0x2A":   42,
		"0b101":  5,
		"010":    8,
		"-1":     0xFFFFFFFF,
	}
	for expr, want := range cases {
		got, err := e.EvaluateExpression(expr, s, nil)
		assert.NoError(t, err, expr)
		assert.Equal(t, want, got, expr)
	}
}

func TestExpressionEvaluator_Registers(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()
	s.SetReg(5, 0x1234)
	s.PC = 0x8000
	s.FRegs[2] = 0x3F800000

	got, err := e.EvaluateExpression("x5", s, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x1234), got)

	got, err = e.EvaluateExpression("pc", s, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x8000), got)

	got, err = e.EvaluateExpression("sp", s, nil)
	assert.NoError(t, err)
	assert.Equal(t, s.Regs[2], got)

	got, err = e.EvaluateExpression("f2", s, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x3F800000), got)
}

func TestExpressionEvaluator_MemoryDereference(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()
	s.Memory.StoreU32(0x1000, 0xCAFEBABE)

	got, err := e.EvaluateExpression("[0x1000]", s, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), got)

	got, err = e.EvaluateExpression("*0x1000", s, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), got)
}

func TestExpressionEvaluator_Symbols(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()
	symbols := map[string]uint32{"main": 0x400}

	got, err := e.EvaluateExpression("main", s, symbols)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x400), got)
}

func TestExpressionEvaluator_BinaryOperators(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()
	s.SetReg(1, 10)
	s.SetReg(2, 3)

	cases := map[string]uint32{
		"x1 + x2": 13,
		"x1 - x2": 7,
		"x1 * x2": 30,
		"x1 / x2": 3,
		"x1 & x2": 2,
		"x1 | x2": 11,
		"x1 ^ x2": 9,
		"x1 << 2": 40,
		"x1 >> 1": 5,
	}
	for expr, want := range cases {
		got, err := e.EvaluateExpression(expr, s, nil)
		assert.NoError(t, err, expr)
		assert.Equal(t, want, got, expr)
	}
}

func TestExpressionEvaluator_DivisionByZero(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()

	_, err := e.EvaluateExpression("1 / 0", s, nil)
	assert.Error(t, err)
}

func TestExpressionEvaluator_ValueHistory(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()

	_, err := e.EvaluateExpression("42", s, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, e.GetValueNumber())

	got, err := e.EvaluateExpression("$1", s, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(42), got)

	e.Reset()
	assert.Equal(t, 0, e.GetValueNumber())
	_, err = e.GetValue(1)
	assert.Error(t, err)
}

func TestExpressionEvaluator_Evaluate_AsCondition(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()
	s.SetReg(1, 5)

	ok, err := e.Evaluate("x1", s, nil)
	assert.NoError(t, err)
	assert.True(t, ok)

	s.SetReg(1, 0)
	ok, err = e.Evaluate("x1", s, nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestExpressionEvaluator_UnknownIdentifier(t *testing.T) {
	e := NewExpressionEvaluator()
	s := vm.NewState()

	_, err := e.EvaluateExpression("nonexistent", s, nil)
	assert.Error(t, err)
}
