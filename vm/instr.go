package vm

// Instr is the decoded-instruction record produced by Decode and consumed by
// exactly one handler. Branch/jump targets are computed relative to PC, the
// address the word was fetched from, never the loop's live program counter.
type Instr struct {
	PC                uint32
	Rd, Rs1, Rs2, Rs3 uint8
	Imm               int32
}
