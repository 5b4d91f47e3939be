package vm

import (
	"fmt"
	"io"
)

// ExecutionTrace records a per-cycle log of (pc, dispatch key), optionally
// capped at MaxEntries, and flushes to a writer as text. Every recorded
// cycle is kept; there is no PC or register filter.
type ExecutionTrace struct {
	MaxEntries int
	entries    []traceEntry
}

type traceEntry struct {
	pc  uint32
	key uint32
}

// NewExecutionTrace returns a trace capped at maxEntries (0 means
// unbounded).
func NewExecutionTrace(maxEntries int) *ExecutionTrace {
	return &ExecutionTrace{MaxEntries: maxEntries}
}

// Record appends one cycle's fetch address and dispatch key.
func (t *ExecutionTrace) Record(pc, key uint32) {
	if t.MaxEntries > 0 && len(t.entries) >= t.MaxEntries {
		return
	}
	t.entries = append(t.entries, traceEntry{pc: pc, key: key})
}

// Flush writes the accumulated trace as plain text, one line per cycle.
func (t *ExecutionTrace) Flush(w io.Writer) error {
	for i, e := range t.entries {
		if _, err := fmt.Fprintf(w, "%6d pc=0x%08x key=0x%06x\n", i, e.pc, e.key); err != nil {
			return err
		}
	}
	return nil
}

// Len reports how many cycles have been recorded.
func (t *ExecutionTrace) Len() int { return len(t.entries) }
