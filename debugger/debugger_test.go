package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

func newTestDebugger() *Debugger {
	return NewDebugger(vm.NewInterpreter(), 0)
}

func TestNewDebugger_Defaults(t *testing.T) {
	d := newTestDebugger()

	assert.False(t, d.Running)
	assert.Equal(t, StepNone, d.StepMode)
	assert.NotNil(t, d.Breakpoints)
	assert.NotNil(t, d.Watchpoints)
	assert.NotNil(t, d.History)
	assert.NotNil(t, d.Evaluator)
}

func TestExecuteCommand_UnknownCommand(t *testing.T) {
	d := newTestDebugger()
	err := d.ExecuteCommand("frobnicate")
	assert.Error(t, err)
}

func TestExecuteCommand_RepeatsLastOnEmptyLine(t *testing.T) {
	d := newTestDebugger()

	assert.NoError(t, d.ExecuteCommand("break 0x1000"))
	d.GetOutput()

	assert.NoError(t, d.ExecuteCommand(""))
	assert.Equal(t, 1, d.Breakpoints.Count(), "empty line should re-run the last breakpoint command")
}

func TestExecuteCommand_BreakAndDelete(t *testing.T) {
	d := newTestDebugger()

	assert.NoError(t, d.ExecuteCommand("break 0x1000"))
	assert.Equal(t, 1, d.Breakpoints.Count())

	assert.NoError(t, d.ExecuteCommand("delete 1"))
	assert.Equal(t, 0, d.Breakpoints.Count())
}

func TestShouldBreak_HitsEnabledBreakpoint(t *testing.T) {
	d := newTestDebugger()
	d.Breakpoints.Add(0x1000, false, "")
	d.Interp.State.PC = 0x1000

	shouldBreak, reason := d.ShouldBreak()
	assert.True(t, shouldBreak)
	assert.Contains(t, reason, "breakpoint")
}

func TestShouldBreak_SkipsDisabledBreakpoint(t *testing.T) {
	d := newTestDebugger()
	bp := d.Breakpoints.Add(0x1000, false, "")
	assert.NoError(t, d.Breakpoints.Disable(bp.ID))
	d.Interp.State.PC = 0x1000

	shouldBreak, _ := d.ShouldBreak()
	assert.False(t, shouldBreak)
}

func TestShouldBreak_ConditionalBreakpoint(t *testing.T) {
	d := newTestDebugger()
	d.Breakpoints.Add(0x1000, false, "x1")
	d.Interp.State.PC = 0x1000
	d.Interp.State.SetReg(1, 0)

	shouldBreak, _ := d.ShouldBreak()
	assert.False(t, shouldBreak, "zero condition should not break")

	d.Interp.State.SetReg(1, 1)
	shouldBreak, _ = d.ShouldBreak()
	assert.True(t, shouldBreak)
}

func TestShouldBreak_SingleStep(t *testing.T) {
	d := newTestDebugger()
	d.StepMode = StepSingle

	shouldBreak, reason := d.ShouldBreak()
	assert.True(t, shouldBreak)
	assert.Equal(t, "single step", reason)
	assert.Equal(t, StepNone, d.StepMode, "single step mode should clear itself")
}

func TestSetStepOver_PlainInstructionFallsBackToSingleStep(t *testing.T) {
	d := newTestDebugger()
	d.Interp.State.Memory.StoreU32(0, 0x00000013) // addi x0, x0, 0 (a nop)

	d.SetStepOver()
	assert.Equal(t, StepSingle, d.StepMode)
	assert.True(t, d.Running)
}

func TestSetStepOver_CallArmsStepOver(t *testing.T) {
	d := newTestDebugger()
	// jal ra, 0 (opcode 0x6F, rd=ra=1 != 0) at PC 0.
	d.Interp.State.Memory.StoreU32(0, 0x000000EF)

	d.SetStepOver()
	assert.Equal(t, StepOver, d.StepMode)
	assert.Equal(t, uint32(4), d.StepOverReturnPC)
}

func TestResolveAddress_SymbolThenLiteral(t *testing.T) {
	d := newTestDebugger()
	d.LoadSymbols(map[string]uint32{"main": 0x400})

	addr, err := d.ResolveAddress("main")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x400), addr)

	addr, err = d.ResolveAddress("0x1000")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x1000), addr)

	addr, err = d.ResolveAddress("100")
	assert.NoError(t, err)
	assert.Equal(t, uint32(100), addr)
}
