package vm

// Decode maps a 32-bit instruction word and its fetch address to a decoded
// record and a 32-bit dispatch key. Pure function: no memory access, no
// state mutation, depends only on word and pc.
func Decode(word, pc uint32) (Instr, uint32) {
	opcode := word & 0x7F
	funct3 := (word >> 12) & 0x7
	funct7 := (word >> 25) & 0x7F

	in := Instr{
		PC:  pc,
		Rd:  uint8((word >> 7) & 0x1F),
		Rs1: uint8((word >> 15) & 0x1F),
		Rs2: uint8((word >> 20) & 0x1F),
		Rs3: uint8((word >> 27) & 0x1F),
	}

	switch opcode {
	case opR, opFOp:
		// No immediate; operands come from Rs1/Rs2.
	case opI, opLoad, opJALR, opFLoad:
		in.Imm = signExtend(word>>20, 12)
	case opS, opFStore:
		lo := (word >> 7) & 0x1F
		hi := (word >> 25) & 0x7F
		in.Imm = signExtend((hi<<5)|lo, 12)
	case opB:
		b12 := (word >> 31) & 0x1
		b11 := (word >> 7) & 0x1
		b10_5 := (word >> 25) & 0x3F
		b4_1 := (word >> 8) & 0xF
		raw := (b12 << 12) | (b11 << 11) | (b10_5 << 5) | (b4_1 << 1)
		in.Imm = signExtend(raw, 13)
	case opLUI, opAUIPC:
		in.Imm = int32(word & 0xFFFFF000)
	case opJAL:
		b20 := (word >> 31) & 0x1
		b19_12 := (word >> 12) & 0xFF
		b11 := (word >> 20) & 0x1
		b10_1 := (word >> 21) & 0x3FF
		raw := (b20 << 20) | (b19_12 << 12) | (b11 << 11) | (b10_1 << 1)
		in.Imm = signExtend(raw, 21)
	case opFMadd, opFMsub, opFNmsub, opFNmadd:
		// Rs3 already extracted above; no sign-extended immediate.
	}

	return in, dispatchKey(opcode, funct3, funct7, in)
}

// signExtend treats the low `bits` bits of v as a two's-complement value and
// sign-extends it to int32.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

// dispatchKey packs the natural 24-bit key, substituting one of the
// synthetic Zbb keys when the I-format shift encoding actually names a Zbb
// unary form. Where the funct3/funct7 bit positions carry immediate bits
// (U/J formats, and funct7 in I/S/B formats other than the shifts), those
// fields are packed as zero.
func dispatchKey(opcode, funct3, funct7 uint32, in Instr) uint32 {
	if opcode == opI {
		if funct3 == 0x1 && funct7 == zbbFunct7Counters {
			switch in.Rs2 {
			case 0:
				return zbbKeyCLZ
			case 1:
				return zbbKeyCTZ
			case 2:
				return zbbKeyCPOP
			case 4:
				return zbbKeySEXTB
			case 5:
				return zbbKeySEXTH
			}
		}
		if funct3 == 0x5 {
			switch funct7 {
			case zbbFunct7RORI:
				return zbbKeyRORI
			case zbbFunct7ORCB:
				return zbbKeyORCB
			case zbbFunct7REV8:
				return zbbKeyREV8
			}
		}
	}
	if opcode == opFMadd || opcode == opFMsub || opcode == opFNmsub || opcode == opFNmadd {
		// funct7's low bits are rs3/fmt, not a real function selector for
		// these formats; the opcode alone (RV32F only supports fmt=S)
		// identifies the operation.
		return key(opcode, 0, 0)
	}
	if opcode == opFOp && (funct7 == fpFCVTW || funct7 == fpFCVTS) {
		// rs2 selects W vs WU; the natural 24-bit key can't carry it, so it
		// is folded in above the natural key range (bit 24).
		return fcvtKey(opcode, funct3, funct7, uint32(in.Rs2))
	}
	switch opcode {
	case opLUI, opAUIPC, opJAL:
		return key(opcode, 0, 0)
	case opLoad, opS, opB, opJALR, opFLoad, opFStore:
		return key(opcode, funct3, 0)
	case opI:
		if funct3 != 0x1 && funct3 != 0x5 {
			return key(opcode, funct3, 0)
		}
	}
	return key(opcode, funct3, funct7)
}
