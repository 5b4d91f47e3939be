// Package gui is a minimal Fyne desktop front end for the RV32 simulator:
// load an ELF, drive it with Run/Step/Reset, and watch the integer
// register file and captured stdout update live. Breakpoints, watchpoints,
// and disassembly live in the tview debugger instead, matching how the
// teacher keeps its Wails GUI and its TUI as two distinct front ends over
// the same core.
package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/lookbusy1344/rv32i-sim/loader"
	"github.com/lookbusy1344/rv32i-sim/vm"
)

// App is the Fyne application wrapping one Interpreter.
type App struct {
	fyneApp fyne.App
	window  fyne.Window

	mu     sync.Mutex
	interp *vm.Interpreter
	loaded string

	registers binding.String
	output    binding.String
	status    binding.String

	running bool
}

// NewApp constructs the window and wires its toolbar to a fresh
// Interpreter. Call Run to block and show it.
func NewApp() *App {
	a := &App{
		fyneApp:   app.New(),
		interp:    vm.NewInterpreter(),
		registers: binding.NewString(),
		output:    binding.NewString(),
		status:    binding.NewString(),
	}
	a.window = a.fyneApp.NewWindow("RV32 Simulator")
	a.window.Resize(fyne.NewSize(720, 540))
	a.buildUI()
	a.refresh()
	return a
}

func (a *App) buildUI() {
	loadBtn := widget.NewButton("Load ELF...", a.onLoad)
	runBtn := widget.NewButton("Run", a.onRun)
	stepBtn := widget.NewButton("Step", a.onStep)
	resetBtn := widget.NewButton("Reset", a.onReset)

	toolbar := container.NewHBox(loadBtn, runBtn, stepBtn, resetBtn)

	regLabel := widget.NewLabelWithData(a.registers)
	regLabel.Wrapping = fyne.TextWrapOff
	regLabel.TextStyle = fyne.TextStyle{Monospace: true}

	outLabel := widget.NewLabelWithData(a.output)
	outLabel.Wrapping = fyne.TextWrapWord
	outLabel.TextStyle = fyne.TextStyle{Monospace: true}
	outScroll := container.NewVScroll(outLabel)

	statusLabel := widget.NewLabelWithData(a.status)

	content := container.NewBorder(
		toolbar,
		statusLabel,
		nil,
		nil,
		container.NewVSplit(regLabel, outScroll),
	)

	a.window.SetContent(content)
}

// Run shows the window and blocks until it's closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}

func (a *App) onLoad() {
	dialog := widget.NewEntry()
	dialog.SetPlaceHolder("/path/to/program.elf")
	form := widget.NewForm(widget.NewFormItem("ELF path", dialog))
	form.OnSubmit = func() {
		a.loadELF(dialog.Text)
	}

	popup := widget.NewModalPopUp(container.NewVBox(form), a.window.Canvas())
	form.OnSubmit = func() {
		popup.Hide()
		a.loadELF(dialog.Text)
	}
	popup.Show()
}

func (a *App) loadELF(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	interp := vm.NewInterpreter()
	result, err := loader.LoadELF(interp.State.Memory, path, []string{path}, nil)
	if err != nil {
		_ = a.status.Set(fmt.Sprintf("load failed: %v", err))
		return
	}
	interp.State.PC = result.Entry
	interp.State.SetReg(2, result.SP)
	interp.SetBrk(result.HighWater)
	interp.SetStdout(&bindingWriter{b: a.output})

	a.interp = interp
	a.loaded = path
	_ = a.status.Set(fmt.Sprintf("loaded %s", path))
	a.refreshLocked()
}

// bindingWriter appends guest stdout writes to a binding.String so the
// output pane updates as the program runs, without caring whether the
// write came from the UI goroutine or runLoop's background goroutine.
type bindingWriter struct {
	mu sync.Mutex
	b  binding.String
}

func (w *bindingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	existing, _ := w.b.Get()
	_ = w.b.Set(existing + string(p))
	return len(p), nil
}

func (a *App) onStep() {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := a.interp.Step()
	a.reportStatusLocked(status)
	a.refreshLocked()
}

func (a *App) onRun() {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return
	}
	a.running = true
	a.mu.Unlock()

	go a.runLoop()
}

func (a *App) runLoop() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	for range ticker.C {
		a.mu.Lock()
		status := a.interp.Step()
		stop := status != vm.Success
		if stop {
			a.reportStatusLocked(status)
		}
		a.refreshLocked()
		running := a.running && !stop
		a.running = running
		a.mu.Unlock()

		if !running {
			return
		}
	}
}

func (a *App) onReset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	path := a.loaded
	a.interp = vm.NewInterpreter()
	a.interp.SetStdout(&bindingWriter{b: a.output})
	if path != "" {
		result, err := loader.LoadELF(a.interp.State.Memory, path, []string{path}, nil)
		if err != nil {
			_ = a.status.Set(fmt.Sprintf("reload failed: %v", err))
		} else {
			a.interp.State.PC = result.Entry
			a.interp.State.SetReg(2, result.SP)
			a.interp.SetBrk(result.HighWater)
		}
	}
	_ = a.status.Set("reset")
	a.refreshLocked()
}

func (a *App) reportStatusLocked(status vm.ExecutionStatus) {
	switch status {
	case vm.Success:
		return
	case vm.ProgramExit:
		_ = a.status.Set(fmt.Sprintf("exited with code %d", int32(a.interp.State.Regs[10])))
	default:
		_ = a.status.Set(fmt.Sprintf("trap: %s at pc=0x%08X", status, a.interp.State.PC))
	}
}

// refresh is safe to call from the UI goroutine only.
func (a *App) refresh() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refreshLocked()
}

func (a *App) refreshLocked() {
	s := a.interp.State
	var b strings.Builder
	for i := 0; i < 32; i += 4 {
		for j := i; j < i+4; j++ {
			fmt.Fprintf(&b, "x%-2d=0x%08X  ", j, s.Regs[j])
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "pc =0x%08X", s.PC)
	_ = a.registers.Set(b.String())
}
