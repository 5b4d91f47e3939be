package debugger

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

// StepMode selects how ShouldBreak decides to pause execution between
// commands.
type StepMode int

const (
	StepNone StepMode = iota
	StepSingle
	StepOver
	StepOut
)

const (
	opJAL  = 0x6F
	opJALR = 0x67
)

// Debugger wraps an Interpreter with breakpoints, watchpoints, command
// history, and expression evaluation for interactive or scripted control.
type Debugger struct {
	Interp *vm.Interpreter

	Breakpoints *BreakpointManager
	Watchpoints *WatchpointManager
	History     *CommandHistory
	Evaluator   *ExpressionEvaluator

	Running           bool
	StepMode          StepMode
	StepOverReturnPC  uint32

	Symbols   map[string]uint32
	SourceMap map[uint32]string

	LastCommand string
	Output      strings.Builder
}

// NewDebugger wraps interp with debugger state. historySize configures the
// command history bound (see config.Debugger.HistorySize); non-positive
// falls back to the default.
func NewDebugger(interp *vm.Interpreter, historySize int) *Debugger {
	return &Debugger{
		Interp:      interp,
		Breakpoints: NewBreakpointManager(),
		Watchpoints: NewWatchpointManager(),
		History:     NewCommandHistory(historySize),
		Evaluator:   NewExpressionEvaluator(),
		StepMode:    StepNone,
		Symbols:     make(map[string]uint32),
		SourceMap:   make(map[uint32]string),
	}
}

func (d *Debugger) LoadSymbols(symbols map[string]uint32)     { d.Symbols = symbols }
func (d *Debugger) LoadSourceMap(sourceMap map[uint32]string) { d.SourceMap = sourceMap }

// ResolveAddress resolves a symbol name, falling back to a decimal or
// 0x-prefixed hex literal.
func (d *Debugger) ResolveAddress(addrStr string) (uint32, error) {
	if addr, exists := d.Symbols[addrStr]; exists {
		return addr, nil
	}

	if strings.HasPrefix(addrStr, "0x") || strings.HasPrefix(addrStr, "0X") {
		var addr uint32
		if _, err := fmt.Sscanf(addrStr, "0x%x", &addr); err != nil {
			return 0, fmt.Errorf("invalid address: %s", addrStr)
		}
		return addr, nil
	}

	var addr uint32
	if _, err := fmt.Sscanf(addrStr, "%d", &addr); err != nil {
		return 0, fmt.Errorf("invalid address: %s", addrStr)
	}
	return addr, nil
}

// ExecuteCommand parses one command line (repeating LastCommand on an
// empty line, gdb-style) and dispatches it.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "run", "r":
		return d.cmdRun(args)
	case "continue", "c":
		return d.cmdContinue(args)
	case "step", "s", "si":
		return d.cmdStep(args)
	case "next", "n":
		return d.cmdNext(args)

	case "break", "b":
		return d.cmdBreak(args)
	case "tbreak", "tb":
		return d.cmdTBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "enable":
		return d.cmdEnable(args)
	case "disable":
		return d.cmdDisable(args)

	case "watch", "w":
		return d.cmdWatch(args)

	case "print", "p":
		return d.cmdPrint(args)
	case "x":
		return d.cmdExamine(args)
	case "info", "i":
		return d.cmdInfo(args)
	case "backtrace", "bt", "where":
		return d.cmdBacktrace(args)

	case "set":
		return d.cmdSet(args)

	case "reset":
		return d.cmdReset(args)

	case "help", "h", "?":
		return d.cmdHelp(args)

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// ShouldBreak decides whether execution should pause before the
// instruction at the interpreter's current PC runs.
func (d *Debugger) ShouldBreak() (bool, string) {
	pc := d.Interp.State.PC

	switch d.StepMode {
	case StepSingle:
		d.StepMode = StepNone
		return true, "single step"
	case StepOver:
		if pc == d.StepOverReturnPC {
			d.StepMode = StepNone
			return true, "step over complete"
		}
	case StepOut:
	}

	if bp := d.Breakpoints.At(pc); bp != nil {
		if !bp.Enabled {
			return false, ""
		}
		if bp.Condition != "" {
			ok, err := d.Evaluator.Evaluate(bp.Condition, d.Interp.State, d.Symbols)
			if err != nil {
				return true, fmt.Sprintf("breakpoint %d (condition error: %v)", bp.ID, err)
			}
			if !ok {
				return false, ""
			}
		}
		snapshot := d.Breakpoints.Hit(pc)
		return true, fmt.Sprintf("breakpoint %d", snapshot.ID)
	}

	if wp, changed := d.Watchpoints.Check(d.Interp.State); changed {
		return true, fmt.Sprintf("watchpoint %d: %s", wp.ID, wp.Expression)
	}

	return false, ""
}

func (d *Debugger) GetOutput() string {
	out := d.Output.String()
	d.Output.Reset()
	return out
}

func (d *Debugger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

func (d *Debugger) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}

// SetStepOver arms StepOver if the instruction at PC is a call (JAL/JALR
// with a link register other than x0), otherwise falls back to a plain
// single step.
func (d *Debugger) SetStepOver() {
	word := d.Interp.State.Memory.LoadU32(d.Interp.State.PC)
	opcode := word & 0x7F
	rd := (word >> 7) & 0x1F

	isCall := (opcode == opJAL || opcode == opJALR) && rd != 0
	if isCall {
		d.StepOverReturnPC = d.Interp.State.PC + 4
		d.StepMode = StepOver
	} else {
		d.StepMode = StepSingle
	}
	d.Running = true
}

func (d *Debugger) SetStepOut() {
	d.StepMode = StepOut
	d.Running = true
}
