package encoder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

// decodeAndStep runs a single synthesized instruction through the real
// decoder and dispatch table, the same round trip an ELF-loaded program
// would take, to ground the encoder against vm's own Decode/Step.
func decodeAndStep(t *testing.T, word uint32, setup func(s *vm.State)) *vm.State {
	t.Helper()
	in := vm.NewInterpreter()
	if setup != nil {
		setup(in.State)
	}
	in.State.Memory.StoreU32(0, word)
	status := in.Step()
	assert.Equal(t, vm.Success, status)
	return in.State
}

func TestEncoder_Add(t *testing.T) {
	s := decodeAndStep(t, Add(3, 1, 2), func(s *vm.State) {
		s.Regs[1] = 2
		s.Regs[2] = 3
	})
	assert.Equal(t, uint32(5), s.Regs[3])
}

func TestEncoder_Addi(t *testing.T) {
	s := decodeAndStep(t, Addi(1, 0, -10), nil)
	assert.Equal(t, uint32(0xFFFFFFF6), s.Regs[1]) // -10
}

func TestEncoder_Lw_Sw_RoundTrip(t *testing.T) {
	in := vm.NewInterpreter()
	in.State.Regs[1] = 0x2000
	in.State.Regs[2] = 0x1234
	in.State.Memory.StoreU32(0, Sw(1, 2, 0))
	in.State.Memory.StoreU32(4, Lw(3, 1, 0))
	in.Step()
	in.Step()
	assert.Equal(t, uint32(0x1234), in.State.Regs[3])
}

func TestEncoder_BeqTaken(t *testing.T) {
	s := decodeAndStep(t, Beq(1, 2, 8), func(s *vm.State) {
		s.Regs[1] = 9
		s.Regs[2] = 9
	})
	assert.Equal(t, uint32(8), s.PC)
}

func TestEncoder_JalLinksReturnAddress(t *testing.T) {
	s := decodeAndStep(t, Jal(1, 4), nil)
	assert.Equal(t, uint32(4), s.Regs[1])
	assert.Equal(t, uint32(4), s.PC)
}

func TestEncoder_Lui(t *testing.T) {
	s := decodeAndStep(t, Lui(5, 0x12345000), nil)
	assert.Equal(t, uint32(0x12345000), s.Regs[5])
}

func TestEncoder_Mul(t *testing.T) {
	s := decodeAndStep(t, Mul(3, 1, 2), func(s *vm.State) {
		s.Regs[1] = 6
		s.Regs[2] = 7
	})
	assert.Equal(t, uint32(42), s.Regs[3])
}

func TestEncoder_ZbbClz(t *testing.T) {
	s := decodeAndStep(t, Clz(2, 1), func(s *vm.State) {
		s.Regs[1] = 1
	})
	assert.Equal(t, uint32(31), s.Regs[2])
}

func TestEncoder_ZbbRori(t *testing.T) {
	s := decodeAndStep(t, Rori(2, 1, 1), func(s *vm.State) {
		s.Regs[1] = 1
	})
	assert.Equal(t, uint32(0x80000000), s.Regs[2])
}

func TestEncoder_FaddS(t *testing.T) {
	in := vm.NewInterpreter()
	in.State.FRegs[1] = floatBits(2.0)
	in.State.FRegs[2] = floatBits(3.0)
	in.State.Memory.StoreU32(0, FaddS(3, 1, 2))
	in.Step()
	assert.Equal(t, floatBits(5.0), in.State.FRegs[3])
}

func TestEncoder_Ecall(t *testing.T) {
	in := vm.NewInterpreter()
	in.State.Regs[17] = 93 // exit
	in.State.Regs[10] = 9
	in.State.Memory.StoreU32(0, Ecall())
	res := in.Run()
	assert.Equal(t, vm.ProgramExit, res.Status)
	assert.Equal(t, int32(9), res.ExitCode)
}

func floatBits(f float32) uint32 { return math.Float32bits(f) }
