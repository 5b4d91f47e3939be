package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lookbusy1344/rv32i-sim/config"
	"github.com/lookbusy1344/rv32i-sim/debugger"
	"github.com/lookbusy1344/rv32i-sim/gui"
	"github.com/lookbusy1344/rv32i-sim/loader"
	"github.com/lookbusy1344/rv32i-sim/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		debugMode   = flag.Bool("debug", false, "Start in debugger mode (CLI)")
		tuiMode     = flag.Bool("tui", false, "Start in TUI debugger mode")
		guiMode     = flag.Bool("gui", false, "Start in desktop GUI mode")
		maxCycles   = flag.Uint64("max-cycles", 1_000_000, "Maximum CPU cycles before halt")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
		configPath  = flag.String("config", "", "Config file path (default: platform config dir)")

		enableTrace = flag.Bool("trace", false, "Enable execution trace")
		traceFile   = flag.String("trace-file", "", "Trace output file (default: trace.log in log dir)")
		traceMax    = flag.Int("trace-max-entries", 100_000, "Maximum trace entries (0 = unbounded)")

		enableStats = flag.Bool("stats", false, "Enable performance statistics")
		statsFile   = flag.String("stats-file", "", "Statistics output file (default: stats.<format> in log dir)")
		statsFormat = flag.String("stats-format", "json", "Statistics format: json, csv, html")

		enableCoverage = flag.Bool("coverage", false, "Enable code coverage tracking")
		coverageFile   = flag.String("coverage-file", "", "Coverage output file (default: coverage.txt in log dir)")

		enableRegisterTrace = flag.Bool("register-trace", false, "Enable register access pattern tracing")

		enableStackTrace = flag.Bool("stack-trace", false, "Enable stack high/low-water tracing")
		stackFloor       = flag.Uint("stack-floor", 0, "Halt-guard lower bound for sp (0 = unbounded)")
		stackCeil        = flag.Uint("stack-ceil", 0, "Halt-guard upper bound for sp (0 = unbounded)")
		stackGuard       = flag.Bool("stack-guard", false, "Halt execution on a stack-trace bounds violation")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("RV32 Simulator %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *guiMode {
		gui.NewApp().Run()
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no ELF file specified")
		fmt.Fprintln(os.Stderr, "Run with -help for usage")
		os.Exit(1)
	}
	elfFile := args[0]
	guestArgs := args

	interp := vm.NewInterpreter()
	interp.CycleLimit = *maxCycles

	result, err := loader.LoadELF(interp.State.Memory, elfFile, guestArgs, os.Environ())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ELF file: %v\n", err)
		os.Exit(1)
	}
	interp.State.PC = result.Entry
	interp.State.SetReg(2, result.SP)
	interp.SetBrk(result.HighWater)

	if *verboseMode {
		fmt.Printf("Entry point: 0x%08X\n", result.Entry)
		fmt.Printf("Stack: top=0x%08X sp=0x%08X, %d segment(s) loaded\n", result.StackTop, result.SP, result.Segments)
	}

	var traceWriter, statsWriter, coverageWriter *os.File
	defer closeIfOpen(traceWriter)
	defer closeIfOpen(statsWriter)
	defer closeIfOpen(coverageWriter)

	if *enableTrace {
		path := *traceFile
		if path == "" {
			path = filepath.Join(config.GetLogPath(), "trace.log")
		}
		traceWriter, err = os.Create(path) // #nosec G304 -- user-specified trace output path
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating trace file: %v\n", err)
			os.Exit(1)
		}
		interp.Trace = vm.NewExecutionTrace(*traceMax)
		if *verboseMode {
			fmt.Printf("Execution trace enabled: %s\n", path)
		}
	}

	if *enableStats {
		interp.Stats = vm.NewPerformanceStatistics()
		if *verboseMode {
			fmt.Println("Performance statistics enabled")
		}
	}

	if *enableCoverage {
		path := *coverageFile
		if path == "" {
			path = filepath.Join(config.GetLogPath(), "coverage.txt")
		}
		coverageWriter, err = os.Create(path) // #nosec G304 -- user-specified coverage output path
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating coverage file: %v\n", err)
			os.Exit(1)
		}
		interp.Cover = vm.NewCodeCoverage()
		if *verboseMode {
			fmt.Printf("Code coverage enabled: %s\n", path)
		}
	}

	if *enableRegisterTrace {
		interp.Regs = vm.NewRegisterTrace()
		if *verboseMode {
			fmt.Println("Register access tracing enabled")
		}
	}

	if *enableStackTrace || *stackGuard {
		interp.Stack = vm.NewStackTrace(uint32(*stackFloor), uint32(*stackCeil))
		if *verboseMode {
			fmt.Println("Stack trace enabled")
		}
	}

	if *debugMode || *tuiMode {
		dbg := debugger.NewDebugger(interp, cfg.Debugger.HistorySize)

		if *tuiMode {
			if err := debugger.RunTUI(dbg); err != nil {
				fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Println("RV32 Debugger - Type 'help' for commands")
			fmt.Printf("Program loaded: %s\n", elfFile)
			fmt.Println()
			if err := debugger.RunCLI(dbg); err != nil {
				fmt.Fprintf(os.Stderr, "Debugger error: %v\n", err)
				os.Exit(1)
			}
		}
		flushDiagnostics(interp, traceWriter, statsWriter, coverageWriter, *statsFormat, *verboseMode)
		return
	}

	if *verboseMode {
		fmt.Println("Starting execution...")
	}

	exitCode := runDirect(interp, *stackGuard, *verboseMode)

	if *statsFile != "" || *enableStats {
		path := *statsFile
		if path == "" {
			path = filepath.Join(config.GetLogPath(), "stats."+statsExtension(*statsFormat))
		}
		statsWriter, err = os.Create(path) // #nosec G304 -- user-specified statistics output path
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating statistics file: %v\n", err)
		}
	}

	flushDiagnostics(interp, traceWriter, statsWriter, coverageWriter, *statsFormat, *verboseMode)

	os.Exit(exitCode)
}

// runDirect loops Step until the program exits or traps, honoring an
// optional stack-guard halt once a violation has been observed. It returns
// the process exit code to propagate to the host shell.
func runDirect(interp *vm.Interpreter, stackGuard bool, verbose bool) int {
	for {
		status := interp.Step()

		if stackGuard && interp.Stack != nil && interp.Stack.Violations > 0 {
			fmt.Fprintf(os.Stderr, "\nStack guard violation at PC=0x%08X (sp=0x%08X)\n", interp.State.PC, interp.State.Regs[2])
			return 1
		}

		switch status {
		case vm.Success:
			continue
		case vm.ProgramExit:
			exitCode := int32(interp.State.Regs[10])
			if verbose {
				fmt.Printf("\nExecution complete, exit code %d\n", exitCode)
			}
			return int(exitCode)
		default:
			fmt.Fprintf(os.Stderr, "\nRuntime trap %s at PC=0x%08X\n", status, interp.State.PC)
			return 1
		}
	}
}

func flushDiagnostics(interp *vm.Interpreter, traceWriter, statsWriter, coverageWriter *os.File, statsFormat string, verbose bool) {
	if interp.Trace != nil && traceWriter != nil {
		if err := interp.Trace.Flush(traceWriter); err != nil {
			fmt.Fprintf(os.Stderr, "Error flushing execution trace: %v\n", err)
		} else if verbose {
			fmt.Printf("Execution trace written (%d entries)\n", interp.Trace.Len())
		}
	}

	if interp.Stats != nil && statsWriter != nil {
		var err error
		switch statsFormat {
		case "csv":
			err = interp.Stats.ExportCSV(statsWriter)
		case "html":
			err = interp.Stats.ExportHTML(statsWriter)
		default:
			err = interp.Stats.ExportJSON(statsWriter)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting statistics: %v\n", err)
		} else if verbose {
			fmt.Printf("Statistics exported (%d cycles)\n", interp.Stats.Total())
		}
	}

	if interp.Cover != nil && coverageWriter != nil {
		if err := interp.Cover.WriteReport(coverageWriter); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing coverage report: %v\n", err)
		} else if verbose {
			fmt.Printf("Coverage: %d distinct addresses executed\n", interp.Cover.Count())
		}
	}

	if interp.Stack != nil && verbose {
		fmt.Printf("Stack: low=0x%08X high=0x%08X violations=%d\n", interp.Stack.Low, interp.Stack.High, interp.Stack.Violations)
	}

	if interp.Regs != nil && verbose {
		fmt.Printf("Hottest integer register: x%d\n", interp.Regs.HottestInt())
	}
}

func statsExtension(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "html":
		return "html"
	default:
		return "json"
	}
}

func closeIfOpen(f *os.File) {
	if f != nil {
		_ = f.Close()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func printHelp() {
	fmt.Printf(`RV32 Simulator %s

Usage: rv32i-sim [options] <elf-file> [guest-args...]
       rv32i-sim -gui

Options:
  -help                 Show this help message
  -version              Show version information
  -debug                Start in debugger mode (CLI)
  -tui                  Start in TUI debugger mode
  -gui                  Start in desktop GUI mode (no ELF file required)
  -max-cycles N         Set maximum CPU cycles (default: 1000000)
  -verbose              Enable verbose output
  -config FILE          Config file path (default: platform config dir)

Tracing & Performance Options:
  -trace                Enable execution trace
  -trace-file FILE      Trace output file (default: trace.log in log dir)
  -trace-max-entries N  Cap trace entries, 0 = unbounded (default: 100000)
  -stats                Enable performance statistics
  -stats-file FILE      Statistics output file (default: stats.<format> in log dir)
  -stats-format FMT     Statistics format: json, csv, html (default: json)

Diagnostic Modes:
  -coverage             Enable code coverage tracking
  -coverage-file FILE   Coverage output file (default: coverage.txt in log dir)
  -register-trace       Enable register access pattern tracing
  -stack-trace          Enable stack high/low-water tracing
  -stack-floor N        Halt-guard lower bound for sp (0 = unbounded)
  -stack-ceil N         Halt-guard upper bound for sp (0 = unbounded)
  -stack-guard          Halt execution on a stack-trace bounds violation

Examples:
  # Run a program directly
  rv32i-sim program.elf

  # Run with the command-line debugger
  rv32i-sim -debug program.elf

  # Run with the TUI debugger
  rv32i-sim -tui program.elf

  # Start the desktop GUI
  rv32i-sim -gui

  # Run with execution trace and performance statistics
  rv32i-sim -trace -stats -verbose program.elf

  # Run with a stack guard that halts if sp rises above the initial stack top
  rv32i-sim -stack-trace -stack-ceil 0x80000000 -stack-guard program.elf
`, Version)
}
