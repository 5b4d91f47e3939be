package vm

// Branch predicates (B form). formatB applies pc+imm/pc+4 selection.
func brEq(a, b uint32) bool  { return a == b }
func brNe(a, b uint32) bool  { return a != b }
func brLt(a, b uint32) bool  { return int32(a) < int32(b) }
func brGe(a, b uint32) bool  { return int32(a) >= int32(b) }
func brLtu(a, b uint32) bool { return a < b }
func brGeu(a, b uint32) bool { return a >= b }

// lui writes the pre-shifted upper immediate directly.
func lui(s *State, in Instr) ExecutionStatus {
	s.SetReg(in.Rd, uint32(in.Imm))
	s.PC = in.PC + 4
	return Success
}

// auipc writes pc + imm.
func auipc(s *State, in Instr) ExecutionStatus {
	s.SetReg(in.Rd, in.PC+uint32(in.Imm))
	s.PC = in.PC + 4
	return Success
}

// jal writes pc+4 into rd (if nonzero) and jumps to pc + imm.
func jal(s *State, in Instr) ExecutionStatus {
	s.SetReg(in.Rd, in.PC+4)
	s.PC = uint32(int32(in.PC) + in.Imm)
	return Success
}

// jalr writes pc+4 into rd and jumps to (regs[rs1]+imm) with the low bit
// cleared, per the RISC-V spec.
func jalr(s *State, in Instr) ExecutionStatus {
	target := uint32(int32(s.Regs[in.Rs1])+in.Imm) &^ 1
	s.SetReg(in.Rd, in.PC+4)
	s.PC = target
	return Success
}
