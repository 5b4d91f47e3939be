package vm

// Handler is the function value stored in the dispatch table: given a
// decoded record and the mutable state, it performs the instruction's
// effect and returns an outcome. One function per (format, operation) pair,
// built by closing an operation's semantic over the format's operand
// fetch/writeback/pc-update behavior.
type Handler func(*State, Instr) ExecutionStatus

// formatR fetches two integer register operands, writes the integer result
// (guarded against rd==0), and advances pc by 4.
func formatR(op func(a, b uint32) uint32) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		r := op(s.Regs[in.Rs1], s.Regs[in.Rs2])
		s.SetReg(in.Rd, r)
		s.PC = in.PC + 4
		return Success
	}
}

// formatI fetches one integer register operand and the sign-extended
// immediate, writes the integer result, and advances pc by 4.
func formatI(op func(a uint32, imm int32) uint32) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		r := op(s.Regs[in.Rs1], in.Imm)
		s.SetReg(in.Rd, r)
		s.PC = in.PC + 4
		return Success
	}
}

// formatFR fetches two float register operands, writes the float result
// with no zero-register guard, and advances pc by 4.
func formatFR(op func(a, b uint32) uint32) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		s.FRegs[in.Rd] = op(s.FRegs[in.Rs1], s.FRegs[in.Rs2])
		s.PC = in.PC + 4
		return Success
	}
}

// formatFR4 is the three-operand fused form (FMADD and friends).
func formatFR4(op func(a, b, c uint32) uint32) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		s.FRegs[in.Rd] = op(s.FRegs[in.Rs1], s.FRegs[in.Rs2], s.FRegs[in.Rs3])
		s.PC = in.PC + 4
		return Success
	}
}

// formatF2I fetches two float register operands, writes the integer result
// (guarded against rd==0), and advances pc by 4. Covers FEQ/FLT/FLE and the
// FCVT.W*.S / FMV.X.W / FCLASS.S family (which ignore the second operand).
func formatF2I(op func(a, b uint32) uint32) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		r := op(s.FRegs[in.Rs1], s.FRegs[in.Rs2])
		s.SetReg(in.Rd, r)
		s.PC = in.PC + 4
		return Success
	}
}

// formatI2F fetches one integer register operand, writes the float result
// with no zero-register guard, and advances pc by 4. Covers FCVT.S.W(U) and
// FMV.W.X.
func formatI2F(op func(a uint32) uint32) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		s.FRegs[in.Rd] = op(s.Regs[in.Rs1])
		s.PC = in.PC + 4
		return Success
	}
}

// formatB evaluates a two-register predicate; on true it branches relative
// to the instruction's own pc, otherwise it falls through to pc+4.
func formatB(cond func(a, b uint32) bool) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		if cond(s.Regs[in.Rs1], s.Regs[in.Rs2]) {
			s.PC = uint32(int32(in.PC) + in.Imm)
		} else {
			s.PC = in.PC + 4
		}
		return Success
	}
}

// formatUnary fetches one integer register operand and writes the integer
// result, for the Zbb forms (CLZ, CTZ, CPOP, SEXT.B, SEXT.H, ORC.B, REV8)
// whose second field is a synthetic selector rather than a real operand.
func formatUnary(op func(a uint32) uint32) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		s.SetReg(in.Rd, op(s.Regs[in.Rs1]))
		s.PC = in.PC + 4
		return Success
	}
}

// formatRotImm is RORI: one register operand plus a shift amount carried in
// the immediate field.
func formatRotImm(op func(a uint32, sh int32) uint32) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		s.SetReg(in.Rd, op(s.Regs[in.Rs1], in.Imm))
		s.PC = in.PC + 4
		return Success
	}
}
