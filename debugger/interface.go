package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

// RunCLI runs the line-oriented command-line debugger loop, reading
// commands from stdin until quit/q/exit or EOF.
func RunCLI(dbg *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(rv32-dbg) ")

		if !scanner.Scan() {
			break
		}

		cmdLine := strings.TrimSpace(scanner.Text())
		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Println("Exiting debugger...")
			break
		}

		if err := dbg.ExecuteCommand(cmdLine); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		if output := dbg.GetOutput(); output != "" {
			fmt.Print(output)
		}

		if dbg.Running {
			runUntilStop(dbg)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return nil
}

func runUntilStop(dbg *Debugger) {
	for dbg.Running {
		if shouldBreak, reason := dbg.ShouldBreak(); shouldBreak {
			dbg.Running = false
			fmt.Printf("Stopped: %s at PC=0x%08X\n", reason, dbg.Interp.State.PC)
			return
		}

		status := dbg.Interp.Step()
		switch status {
		case vm.Success:
			continue
		case vm.ProgramExit:
			dbg.Running = false
			fmt.Printf("Program exited with code %d\n", int32(dbg.Interp.State.Regs[10]))
			return
		default:
			dbg.Running = false
			fmt.Printf("Runtime trap: %s at PC=0x%08X\n", status, dbg.Interp.State.PC)
			return
		}
	}
}

// RunTUI launches the tview-based text user interface.
func RunTUI(dbg *Debugger) error {
	tui := NewTUI(dbg)
	return tui.Run()
}
