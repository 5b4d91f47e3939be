package debugger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func (d *Debugger) cmdRun(args []string) error {
	d.Running = true
	d.StepMode = StepNone
	d.Println("Starting program execution...")
	return nil
}

func (d *Debugger) cmdContinue(args []string) error {
	d.Running = true
	d.StepMode = StepNone
	d.Println("Continuing...")
	return nil
}

func (d *Debugger) cmdStep(args []string) error {
	d.StepMode = StepSingle
	d.Running = true
	return nil
}

func (d *Debugger) cmdNext(args []string) error {
	d.SetStepOver()
	return nil
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address|label> [if <condition>]")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	var condition string
	if len(args) > 1 && strings.ToLower(args[1]) == "if" {
		condition = strings.Join(args[2:], " ")
	}

	bp := d.Breakpoints.Add(address, false, condition)
	if condition != "" {
		d.Printf("Breakpoint %d at 0x%08X (condition: %s)\n", bp.ID, address, condition)
	} else {
		d.Printf("Breakpoint %d at 0x%08X\n", bp.ID, address)
	}
	return nil
}

func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address|label>")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	bp := d.Breakpoints.Add(address, true, "")
	d.Printf("Temporary breakpoint %d at 0x%08X\n", bp.ID, address)
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.DeleteByID(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

func (d *Debugger) cmdEnable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: enable <breakpoint-id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.Enable(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d enabled\n", id)
	return nil
}

func (d *Debugger) cmdDisable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disable <breakpoint-id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}
	if err := d.Breakpoints.Disable(id); err != nil {
		return err
	}
	d.Printf("Breakpoint %d disabled\n", id)
	return nil
}

// cmdWatch adds a watchpoint on an integer register (x0-x31, sp, ra), a
// float register (f0-f31), or a memory word ([addr] or a bare address).
func (d *Debugger) cmdWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: watch <register|[address]>")
	}

	expression := strings.Join(args, " ")
	kind, register, address, err := d.parseWatchExpression(expression)
	if err != nil {
		return err
	}

	wp := d.Watchpoints.Add(kind, expression, address, register)
	if err := d.Watchpoints.Seed(wp.ID, d.Interp.State); err != nil {
		_ = d.Watchpoints.Delete(wp.ID)
		return err
	}

	d.Printf("Watchpoint %d: %s\n", wp.ID, expression)
	return nil
}

func (d *Debugger) parseWatchExpression(expr string) (kind WatchKind, register int, address uint32, err error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	switch expr {
	case "pc":
		return WatchIntReg, -1, 0, fmt.Errorf("pc cannot be watched as a register; use a memory breakpoint")
	case "sp":
		return WatchIntReg, 2, 0, nil
	case "ra":
		return WatchIntReg, 1, 0, nil
	}

	if strings.HasPrefix(expr, "x") {
		var n int
		if _, scanErr := fmt.Sscanf(expr, "x%d", &n); scanErr == nil && n >= 0 && n <= 31 {
			return WatchIntReg, n, 0, nil
		}
	}

	if strings.HasPrefix(expr, "f") {
		var n int
		if _, scanErr := fmt.Sscanf(expr, "f%d", &n); scanErr == nil && n >= 0 && n <= 31 {
			return WatchFloatReg, n, 0, nil
		}
	}

	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		addrStr := strings.TrimSuffix(strings.TrimPrefix(expr, "["), "]")
		addr, resolveErr := d.ResolveAddress(addrStr)
		if resolveErr != nil {
			return WatchMemory, 0, 0, resolveErr
		}
		return WatchMemory, 0, addr, nil
	}

	addr, resolveErr := d.ResolveAddress(expr)
	if resolveErr != nil {
		return WatchMemory, 0, 0, fmt.Errorf("invalid watch expression: %s", expr)
	}
	return WatchMemory, 0, addr, nil
}

func (d *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: print <expression>")
	}

	expression := strings.Join(args, " ")
	result, err := d.Evaluator.EvaluateExpression(expression, d.Interp.State, d.Symbols)
	if err != nil {
		return err
	}

	if result > uint32(math.MaxInt32) {
		d.Printf("$%d = 0x%08X (%d)\n", d.Evaluator.GetValueNumber(), result, result)
	} else {
		d.Printf("$%d = 0x%08X (%d)\n", d.Evaluator.GetValueNumber(), result, int32(result))
	}
	return nil
}

// cmdExamine implements gdb-style x/NFU <address>: N repetitions, format
// x/d/u/o/t, unit b/h/w.
func (d *Debugger) cmdExamine(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: x[/nfu] <address>\n  n: count, f: format (x/d/u/o/t), u: unit size (b/h/w)")
	}

	count := 1
	format := 'x'
	unit := 'w'
	addrArg := args[0]

	if strings.HasPrefix(args[0], "/") {
		formatStr := args[0][1:]
		if len(args) < 2 {
			return fmt.Errorf("missing address")
		}
		addrArg = args[1]

		i := 0
		for i < len(formatStr) && formatStr[i] >= '0' && formatStr[i] <= '9' {
			i++
		}
		if i > 0 {
			if n, err := strconv.Atoi(formatStr[:i]); err == nil {
				count = n
			}
			formatStr = formatStr[i:]
		}
		if len(formatStr) > 0 {
			format = rune(formatStr[0])
			formatStr = formatStr[1:]
		}
		if len(formatStr) > 0 {
			unit = rune(formatStr[0])
		}
	}

	address, err := d.ResolveAddress(addrArg)
	if err != nil {
		return err
	}

	mem := d.Interp.State.Memory
	d.Printf("0x%08X:", address)
	for i := 0; i < count; i++ {
		var value uint32
		switch unit {
		case 'b':
			value = uint32(mem.LoadByte(address))
			address++
		case 'h':
			value = uint32(mem.LoadU16(address))
			address += 2
		default:
			value = mem.LoadU32(address)
			address += 4
		}

		switch format {
		case 'd':
			d.Printf(" %d", int32(value))
		case 'u':
			d.Printf(" %d", value)
		case 'o':
			d.Printf(" %o", value)
		case 't':
			d.Printf(" %b", value)
		default:
			d.Printf(" 0x%08X", value)
		}
	}
	d.Println()
	return nil
}

func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info <registers|breakpoints|watchpoints|stack>")
	}

	switch strings.ToLower(args[0]) {
	case "registers", "reg", "r":
		return d.showRegisters()
	case "breakpoints", "break", "b":
		return d.showBreakpoints()
	case "watchpoints", "watch", "w":
		return d.showWatchpoints()
	case "stack", "s":
		return d.showStack()
	default:
		return fmt.Errorf("unknown info command: %s", args[0])
	}
}

var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

func (d *Debugger) showRegisters() error {
	d.Println("Registers:")
	s := d.Interp.State
	for i := 0; i < 32; i += RegisterGroupSize {
		var line strings.Builder
		for j := i; j < i+RegisterGroupSize && j < 32; j++ {
			fmt.Fprintf(&line, "x%-2d(%-3s)=0x%08X  ", j, abiNames[j], s.Regs[j])
		}
		d.Println(strings.TrimRight(line.String(), " "))
	}
	d.Printf("  pc = 0x%08X (%d)\n", s.PC, int32(s.PC))
	return nil
}

func (d *Debugger) showBreakpoints() error {
	breakpoints := d.Breakpoints.All()
	if len(breakpoints) == 0 {
		d.Println("No breakpoints")
		return nil
	}

	d.Println("Breakpoints:")
	for _, bp := range breakpoints {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}
		temp := ""
		if bp.Temporary {
			temp = " (temporary)"
		}
		condition := ""
		if bp.Condition != "" {
			condition = fmt.Sprintf(" if %s", bp.Condition)
		}
		d.Printf("  %d: 0x%08X %s%s%s (hit %d times)\n", bp.ID, bp.Address, status, temp, condition, bp.HitCount)
	}
	return nil
}

func (d *Debugger) showWatchpoints() error {
	watchpoints := d.Watchpoints.All()
	if len(watchpoints) == 0 {
		d.Println("No watchpoints")
		return nil
	}

	d.Println("Watchpoints:")
	for _, wp := range watchpoints {
		status := "enabled"
		if !wp.Enabled {
			status = "disabled"
		}
		d.Printf("  %d: %s %s (hit %d times, last value: 0x%08X)\n", wp.ID, wp.Expression, status, wp.HitCount, wp.LastValue)
	}
	return nil
}

func (d *Debugger) showStack() error {
	sp := d.Interp.State.Regs[2]
	d.Printf("Stack (sp = 0x%08X):\n", sp)

	mem := d.Interp.State.Memory
	for i := 0; i < StackDisplayWords; i++ {
		addr := sp + uint32(i*4)
		value := mem.LoadU32(addr)
		d.Printf("  0x%08X: 0x%08X (%d)\n", addr, value, int32(value))
	}
	return nil
}

func (d *Debugger) cmdBacktrace(args []string) error {
	s := d.Interp.State
	d.Println("Call stack:")
	d.Printf("  #0  pc=0x%08X\n", s.PC)
	if s.Regs[1] != 0 {
		d.Printf("  #1  ra=0x%08X\n", s.Regs[1])
	}
	return nil
}

func (d *Debugger) cmdSet(args []string) error {
	if len(args) < 3 || args[1] != "=" {
		return fmt.Errorf("usage: set <register|*address> = <value>")
	}

	target := strings.ToLower(args[0])
	value, err := d.Evaluator.EvaluateExpression(args[2], d.Interp.State, d.Symbols)
	if err != nil {
		return err
	}

	if strings.HasPrefix(target, "*") {
		address, err := d.ResolveAddress(target[1:])
		if err != nil {
			return err
		}
		d.Interp.State.Memory.StoreU32(address, value)
		d.Printf("Memory 0x%08X set to 0x%08X\n", address, value)
		return nil
	}

	if strings.HasPrefix(target, "f") {
		var reg int
		if _, err := fmt.Sscanf(target, "f%d", &reg); err == nil && reg >= 0 && reg <= 31 {
			d.Interp.State.FRegs[reg] = value
			d.Printf("Register %s set to 0x%08X\n", target, value)
			return nil
		}
	}

	switch target {
	case "sp":
		d.Interp.State.SetReg(2, value)
	case "ra":
		d.Interp.State.SetReg(1, value)
	case "pc":
		d.Interp.State.PC = value
	default:
		var reg uint8
		n, err := fmt.Sscanf(target, "x%d", &reg)
		if err != nil || n != 1 || reg > 31 {
			return fmt.Errorf("invalid target: %s", target)
		}
		d.Interp.State.SetReg(reg, value)
	}

	d.Printf("Register %s set to 0x%08X\n", target, value)
	return nil
}

func (d *Debugger) cmdReset(args []string) error {
	s := d.Interp.State
	s.Regs = [32]uint32{}
	s.FRegs = [32]uint32{}
	s.PC = 0
	d.StepMode = StepNone
	d.Running = false
	d.Println("Registers and PC reset (memory untouched)")
	return nil
}

func (d *Debugger) cmdHelp(args []string) error {
	if len(args) > 0 {
		return d.showCommandHelp(args[0])
	}

	d.Println("RV32 Debugger Commands:")
	d.Println()
	d.Println("Execution Control:")
	d.Println("  run (r)           - Start program execution")
	d.Println("  continue (c)      - Continue execution")
	d.Println("  step (s, si)      - Execute single instruction")
	d.Println("  next (n)          - Step over function calls")
	d.Println()
	d.Println("Breakpoints:")
	d.Println("  break (b) <addr>  - Set breakpoint")
	d.Println("  tbreak (tb) <addr>- Set temporary breakpoint")
	d.Println("  delete (d) [id]   - Delete breakpoint(s)")
	d.Println("  enable <id>       - Enable breakpoint")
	d.Println("  disable <id>      - Disable breakpoint")
	d.Println()
	d.Println("Watchpoints:")
	d.Println("  watch (w) <expr>  - Watch a register or [address]")
	d.Println()
	d.Println("Inspection:")
	d.Println("  print (p) <expr>  - Evaluate expression")
	d.Println("  x[/nfu] <addr>    - Examine memory")
	d.Println("  info (i) <what>   - Show information")
	d.Println("  backtrace (bt)    - Show call stack")
	d.Println()
	d.Println("Modification:")
	d.Println("  set <var> = <val> - Modify register/memory")
	d.Println()
	d.Println("Control:")
	d.Println("  reset             - Reset registers and PC")
	d.Println("  help (h, ?)       - Show this help")
	d.Println()
	d.Println("Type 'help <command>' for detailed help on a specific command.")
	return nil
}

func (d *Debugger) showCommandHelp(cmd string) error {
	helpText := map[string]string{
		"break": "break <address|label> [if <condition>]\n  Set a breakpoint. An optional condition is re-evaluated on every hit.",
		"step":  "step\n  Execute a single instruction.",
		"next":  "next\n  Step over JAL/JALR calls; single-steps everything else.",
		"print": "print <expression>\n  Evaluate and print an expression (registers, memory, symbols, arithmetic).",
		"x":     "x[/nfu] <address>\n  Examine memory.\n  n: count, f: format (x/d/u/o/t), u: unit (b/h/w)",
		"info":  "info <registers|breakpoints|watchpoints|stack>\n  Display information about program state.",
	}

	if help, exists := helpText[cmd]; exists {
		d.Println(help)
		return nil
	}
	return fmt.Errorf("no help available for command: %s", cmd)
}
