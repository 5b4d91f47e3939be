// Package integration hand-encodes small RV32IM(+F) programs with the
// encoder package and runs them through the real interpreter end to end,
// the same round trip an ELF-loaded binary takes, reproducing the
// isqrt/bubblesort scenarios by synthesized instruction stream instead of a
// cross-compiled C toolchain.
package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookbusy1344/rv32i-sim/encoder"
	"github.com/lookbusy1344/rv32i-sim/vm"
)

// load copies words into memory starting at address 0, one instruction per
// word.
func load(in *vm.Interpreter, words []uint32) {
	for i, w := range words {
		in.State.Memory.StoreU32(uint32(i*4), w)
	}
}

// runToExit steps the interpreter until ProgramExit or a trap, bounded so a
// mis-encoded program fails the test instead of looping forever.
func runToExit(t *testing.T, in *vm.Interpreter) vm.ExecutionStatus {
	t.Helper()
	const maxSteps = 100_000
	for i := 0; i < maxSteps; i++ {
		status := in.Step()
		if status != vm.Success {
			return status
		}
	}
	t.Fatalf("program did not halt within %d steps", maxSteps)
	return vm.TrapIllegal
}

// TestIntegerSquareRoot builds a repeated-subtraction-free integer
// square-root loop (the same algorithm isqrt.c implements): find the
// largest i such that i*i <= n, then exit with i as the exit code.
func TestIntegerSquareRoot(t *testing.T) {
	const n = 9
	const startLoop = 1
	const done = 6

	words := []uint32{
		encoder.Addi(2, 0, 0),                  // 0: i = 0
		encoder.Addi(3, 2, 1),                  // 1 (startLoop): t = i + 1
		encoder.Mul(4, 3, 3),                   // 2: t2 = t * t
		encoder.Blt(1, 4, int32((done-3)*4)),   // 3: if n < t2 goto done
		encoder.Add(2, 3, 0),                   // 4: i = t
		encoder.Jal(0, int32((startLoop-5)*4)), // 5: goto startLoop
		encoder.Add(10, 2, 0),                  // 6 (done): a0 = i
		encoder.Addi(17, 0, 93),                // 7: a7 = exit syscall
		encoder.Ecall(),                        // 8
	}

	in := vm.NewInterpreter()
	load(in, words)
	in.State.SetReg(1, n)

	status := runToExit(t, in)
	assert.Equal(t, vm.ProgramExit, status)
	assert.Equal(t, uint32(3), in.State.Regs[10], "isqrt(9) should be 3")
}

// TestBubbleSortSimple sorts a fixed four-element array with a fully
// unrolled compare-and-swap network instead of a nested branching loop:
// four elements need at most three bubble passes of three compares each,
// which is small enough to encode directly and avoids the address-
// arithmetic fragility of hand-assembling nested loop branches.
func TestBubbleSortSimple(t *testing.T) {
	const base = 0x400

	// compareSwap(j) compares words at base+4*j and base+4*(j+1) and swaps
	// them if out of order, using registers x5 (a), x6 (b), x7 (scratch).
	compareSwap := func(j int) []uint32 {
		addrA := int32(base + 4*j)
		addrB := int32(base + 4*(j+1))
		// the branch sits at relative instruction index 2 (after the two
		// loads); skipping the two stores lands on relative index 5, the
		// first instruction after this block.
		const skipDistance = (5 - 2) * 4
		return []uint32{
			encoder.Lw(5, 0, addrA),         // a = mem[addrA]  (x0 base, absolute addr via imm)
			encoder.Lw(6, 0, addrB),         // b = mem[addrB]
			encoder.Bge(6, 5, skipDistance), // if b >= a, already ordered: skip the swap
			encoder.Sw(0, 5, addrB),         // mem[addrB] = a
			encoder.Sw(0, 6, addrA),         // mem[addrA] = b
		}
	}

	var words []uint32
	// Three bubble passes over a 4-element array is always sufficient.
	for pass := 0; pass < 3; pass++ {
		for j := 0; j < 3; j++ {
			words = append(words, compareSwap(j)...)
		}
	}
	words = append(words,
		encoder.Addi(17, 0, 93), // a7 = exit syscall
		encoder.Addi(10, 0, 0),  // a0 = 0
		encoder.Ecall(),
	)

	in := vm.NewInterpreter()
	load(in, words)
	initial := []uint32{3, 3, 1, 2}
	for i, v := range initial {
		in.State.Memory.StoreU32(uint32(base+4*i), v)
	}

	status := runToExit(t, in)
	assert.Equal(t, vm.ProgramExit, status)

	got := make([]uint32, len(initial))
	for i := range got {
		got[i] = in.State.Memory.LoadU32(uint32(base + 4*i))
	}
	assert.Equal(t, []uint32{1, 2, 3, 3}, got)
}

// TestFloatSmoke exercises a minimal F-extension path: load two floats via
// FMV.W.X from integer registers, add them, and convert the result back to
// an integer.
func TestFloatSmoke(t *testing.T) {
	words := []uint32{
		encoder.FmvWX(1, 1),     // f1 = bits of x1
		encoder.FmvWX(2, 2),     // f2 = bits of x2
		encoder.FaddS(3, 1, 2),  // f3 = f1 + f2
		encoder.FcvtWS(10, 3),   // a0 = (int)f3
		encoder.Addi(17, 0, 93), // a7 = exit syscall
		encoder.Ecall(),
	}

	in := vm.NewInterpreter()
	load(in, words)
	// 2.0f and 3.0f as raw IEEE-754 bit patterns.
	in.State.SetReg(1, 0x40000000)
	in.State.SetReg(2, 0x40400000)

	status := runToExit(t, in)
	assert.Equal(t, vm.ProgramExit, status)
	assert.Equal(t, uint32(5), in.State.Regs[10], "2.0 + 3.0 should convert to integer 5")
}
