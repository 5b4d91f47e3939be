package debugger

// TUI display update cadence.
const (
	// DisplayUpdateFrequency is a redraw interval in cycles. The TUI does
	// not read it: it redraws once after each command has finished.
	DisplayUpdateFrequency = 100
)

// Disassembly view context.
const (
	CodeContextLinesBefore        = 20
	CodeContextLinesAfter         = 80
	CodeContextLinesBeforeCompact = 5
	CodeContextLinesAfterCompact  = 10
)

// Memory hex dump view.
const (
	MemoryDisplayRows       = 16
	MemoryDisplayColumns    = 16
	MemoryDisplayBytesPerRow = 16
)

// Stack view.
const (
	StackDisplayWords        = 16
	StackDisplayBytes        = StackDisplayWords * 4
	StackInspectionMaxOffset = 16
)

// Register view. "info registers" lists RV32's 32 integer registers 8 to a
// row instead of the 5 that fit ARM's 16-register file.
const (
	RegisterGroupSize = 8
	RegisterViewRows  = 11
)
