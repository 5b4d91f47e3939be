package vm

// Loads and stores. Effective address = regs[rs1] + sign_extend(imm); all
// accesses go through Memory and may be unaligned.

func formatLoad(width int, signed bool) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		addr := uint32(int32(s.Regs[in.Rs1]) + in.Imm)
		var v uint32
		switch width {
		case 1:
			b := s.Memory.LoadByte(addr)
			if signed {
				v = uint32(int32(int8(b)))
			} else {
				v = uint32(b)
			}
		case 2:
			h := s.Memory.LoadU16(addr)
			if signed {
				v = uint32(int32(int16(h)))
			} else {
				v = uint32(h)
			}
		default:
			v = s.Memory.LoadU32(addr)
		}
		s.SetReg(in.Rd, v)
		s.PC = in.PC + 4
		return Success
	}
}

func formatStore(width int) Handler {
	return func(s *State, in Instr) ExecutionStatus {
		addr := uint32(int32(s.Regs[in.Rs1]) + in.Imm)
		val := s.Regs[in.Rs2]
		switch width {
		case 1:
			s.Memory.StoreByte(addr, byte(val))
		case 2:
			s.Memory.StoreU16(addr, uint16(val))
		default:
			s.Memory.StoreU32(addr, val)
		}
		s.PC = in.PC + 4
		return Success
	}
}

// formatFLoad loads a raw 32-bit pattern into a float register; float
// registers have no zero-register convention so there is no rd guard.
func formatFLoad(s *State, in Instr) ExecutionStatus {
	addr := uint32(int32(s.Regs[in.Rs1]) + in.Imm)
	s.FRegs[in.Rd] = s.Memory.LoadU32(addr)
	s.PC = in.PC + 4
	return Success
}

// formatFStore stores a raw 32-bit float pattern.
func formatFStore(s *State, in Instr) ExecutionStatus {
	addr := uint32(int32(s.Regs[in.Rs1]) + in.Imm)
	s.Memory.StoreU32(addr, s.FRegs[in.Rs2])
	s.PC = in.PC + 4
	return Success
}
