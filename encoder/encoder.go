// Package encoder synthesizes RV32IM/F/Zbb instruction words from mnemonic
// and operand values. It has no text assembly syntax and no symbol table —
// SPEC_FULL.md scopes program input to pre-built ELF binaries (see
// package loader) — this package exists purely so tests and small
// standalone tools can build instruction streams without hand-packing bit
// fields themselves.
package encoder

// Opcode constants, mirrored from vm/opcodes.go: the encoder is a
// standalone package (no dependency on vm) so it keeps its own copy of the
// field layout rather than importing unexported constants.
const (
	opR      = 0x33
	opI      = 0x13
	opLoad   = 0x03
	opS      = 0x23
	opB      = 0x63
	opLUI    = 0x37
	opAUIPC  = 0x17
	opJAL    = 0x6F
	opJALR   = 0x67
	opSystem = 0x73
	opFLoad  = 0x07
	opFStore = 0x27
	opFMadd  = 0x43
	opFMsub  = 0x47
	opFNmsub = 0x4B
	opFNmadd = 0x4F
	opFOp    = 0x53
)

// R encodes an R-type instruction: opcode | funct3 | funct7, operating on rd,
// rs1, rs2.
func R(opcode, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return (funct7 << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcode
}

// I encodes an I-type instruction: a 12-bit sign-extended immediate, rs1,
// rd.
func I(opcode, funct3, rd, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcode
}

// S encodes an S-type instruction: a 12-bit sign-extended immediate split
// across two fields, rs1, rs2.
func S(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	lo := u & 0x1F
	hi := (u >> 5) & 0x7F
	return (hi << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (lo << 7) | opcode
}

// B encodes a branch instruction: a 13-bit sign-extended, always-even
// immediate scattered across non-contiguous fields.
func B(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	b12 := (u >> 12) & 1
	b11 := (u >> 11) & 1
	b10_5 := (u >> 5) & 0x3F
	b4_1 := (u >> 1) & 0xF
	return (b12 << 31) | (b10_5 << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (b4_1 << 8) | (b11 << 7) | opcode
}

// U encodes a U-type instruction: a 20-bit immediate pre-shifted into the
// upper bits.
func U(opcode, rd uint32, imm int32) uint32 {
	return (uint32(imm) & 0xFFFFF000) | (rd << 7) | opcode
}

// J encodes a jump instruction: a 21-bit sign-extended, always-even
// immediate scattered across non-contiguous fields.
func J(opcode, rd uint32, imm int32) uint32 {
	u := uint32(imm)
	b20 := (u >> 20) & 1
	b19_12 := (u >> 12) & 0xFF
	b11 := (u >> 11) & 1
	b10_1 := (u >> 1) & 0x3FF
	return (b20 << 31) | (b10_1 << 21) | (b11 << 20) | (b19_12 << 12) | (rd << 7) | opcode
}

// R4 encodes the fused-multiply-add family's four-register form (rs3 in the
// top five bits in place of funct7).
func R4(opcode, funct3, rd, rs1, rs2, rs3 uint32) uint32 {
	return (rs3 << 27) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcode
}

// Integer register-register ALU mnemonics (funct7=0x00 unless noted).
func Add(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x0, 0x00, rd, rs1, rs2) }
func Sub(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x0, 0x20, rd, rs1, rs2) }
func Sll(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x1, 0x00, rd, rs1, rs2) }
func Slt(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x2, 0x00, rd, rs1, rs2) }
func Sltu(rd, rs1, rs2 uint32) uint32 { return R(opR, 0x3, 0x00, rd, rs1, rs2) }
func Xor(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x4, 0x00, rd, rs1, rs2) }
func Srl(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x5, 0x00, rd, rs1, rs2) }
func Sra(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x5, 0x20, rd, rs1, rs2) }
func Or(rd, rs1, rs2 uint32) uint32   { return R(opR, 0x6, 0x00, rd, rs1, rs2) }
func And(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x7, 0x00, rd, rs1, rs2) }

// M-extension mnemonics (funct7=0x01).
func Mul(rd, rs1, rs2 uint32) uint32    { return R(opR, 0x0, 0x01, rd, rs1, rs2) }
func Mulh(rd, rs1, rs2 uint32) uint32   { return R(opR, 0x1, 0x01, rd, rs1, rs2) }
func Mulhsu(rd, rs1, rs2 uint32) uint32 { return R(opR, 0x2, 0x01, rd, rs1, rs2) }
func Mulhu(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x3, 0x01, rd, rs1, rs2) }
func Div(rd, rs1, rs2 uint32) uint32    { return R(opR, 0x4, 0x01, rd, rs1, rs2) }
func Divu(rd, rs1, rs2 uint32) uint32   { return R(opR, 0x5, 0x01, rd, rs1, rs2) }
func Rem(rd, rs1, rs2 uint32) uint32    { return R(opR, 0x6, 0x01, rd, rs1, rs2) }
func Remu(rd, rs1, rs2 uint32) uint32   { return R(opR, 0x7, 0x01, rd, rs1, rs2) }

// Immediate ALU mnemonics.
func Addi(rd, rs1 uint32, imm int32) uint32  { return I(opI, 0x0, rd, rs1, imm) }
func Slti(rd, rs1 uint32, imm int32) uint32  { return I(opI, 0x2, rd, rs1, imm) }
func Sltiu(rd, rs1 uint32, imm int32) uint32 { return I(opI, 0x3, rd, rs1, imm) }
func Xori(rd, rs1 uint32, imm int32) uint32  { return I(opI, 0x4, rd, rs1, imm) }
func Ori(rd, rs1 uint32, imm int32) uint32   { return I(opI, 0x6, rd, rs1, imm) }
func Andi(rd, rs1 uint32, imm int32) uint32  { return I(opI, 0x7, rd, rs1, imm) }
func Slli(rd, rs1, shamt uint32) uint32      { return I(opI, 0x1, rd, rs1, int32(shamt)) }
func Srli(rd, rs1, shamt uint32) uint32      { return I(opI, 0x5, rd, rs1, int32(shamt)) }
func Srai(rd, rs1, shamt uint32) uint32      { return I(opI, 0x5, rd, rs1, int32(shamt|(0x20<<5))) }

// Loads and stores.
func Lb(rd, rs1 uint32, imm int32) uint32  { return I(opLoad, 0x0, rd, rs1, imm) }
func Lh(rd, rs1 uint32, imm int32) uint32  { return I(opLoad, 0x1, rd, rs1, imm) }
func Lw(rd, rs1 uint32, imm int32) uint32  { return I(opLoad, 0x2, rd, rs1, imm) }
func Lbu(rd, rs1 uint32, imm int32) uint32 { return I(opLoad, 0x4, rd, rs1, imm) }
func Lhu(rd, rs1 uint32, imm int32) uint32 { return I(opLoad, 0x5, rd, rs1, imm) }

func Sb(rs1, rs2 uint32, imm int32) uint32 { return S(opS, 0x0, rs1, rs2, imm) }
func Sh(rs1, rs2 uint32, imm int32) uint32 { return S(opS, 0x1, rs1, rs2, imm) }
func Sw(rs1, rs2 uint32, imm int32) uint32 { return S(opS, 0x2, rs1, rs2, imm) }

// Branches.
func Beq(rs1, rs2 uint32, imm int32) uint32  { return B(opB, 0x0, rs1, rs2, imm) }
func Bne(rs1, rs2 uint32, imm int32) uint32  { return B(opB, 0x1, rs1, rs2, imm) }
func Blt(rs1, rs2 uint32, imm int32) uint32  { return B(opB, 0x4, rs1, rs2, imm) }
func Bge(rs1, rs2 uint32, imm int32) uint32  { return B(opB, 0x5, rs1, rs2, imm) }
func Bltu(rs1, rs2 uint32, imm int32) uint32 { return B(opB, 0x6, rs1, rs2, imm) }
func Bgeu(rs1, rs2 uint32, imm int32) uint32 { return B(opB, 0x7, rs1, rs2, imm) }

// Upper-immediate and jumps.
func Lui(rd uint32, imm int32) uint32   { return U(opLUI, rd, imm) }
func Auipc(rd uint32, imm int32) uint32 { return U(opAUIPC, rd, imm) }
func Jal(rd uint32, imm int32) uint32   { return J(opJAL, rd, imm) }
func Jalr(rd, rs1 uint32, imm int32) uint32 {
	return I(opJALR, 0x0, rd, rs1, imm)
}

// Ecall triggers the host syscall shim.
func Ecall() uint32 { return R(opSystem, 0x0, 0x00, 0, 0, 0) }

// Zbb bit-manipulation mnemonics.
func Andn(rd, rs1, rs2 uint32) uint32 { return R(opR, 0x7, 0x20, rd, rs1, rs2) }
func Orn(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x6, 0x20, rd, rs1, rs2) }
func Xnor(rd, rs1, rs2 uint32) uint32 { return R(opR, 0x4, 0x20, rd, rs1, rs2) }
func Min(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x4, 0x05, rd, rs1, rs2) }
func Max(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x5, 0x05, rd, rs1, rs2) }
func Minu(rd, rs1, rs2 uint32) uint32 { return R(opR, 0x6, 0x05, rd, rs1, rs2) }
func Maxu(rd, rs1, rs2 uint32) uint32 { return R(opR, 0x7, 0x05, rd, rs1, rs2) }
func Rol(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x1, 0x30, rd, rs1, rs2) }
func Ror(rd, rs1, rs2 uint32) uint32  { return R(opR, 0x5, 0x30, rd, rs1, rs2) }
func ZextH(rd, rs1 uint32) uint32     { return R(opR, 0x4, 0x04, rd, rs1, 0) }

func Clz(rd, rs1 uint32) uint32   { return R(opI, 0x1, 0x30, rd, rs1, 0) }
func Ctz(rd, rs1 uint32) uint32   { return R(opI, 0x1, 0x30, rd, rs1, 1) }
func Cpop(rd, rs1 uint32) uint32  { return R(opI, 0x1, 0x30, rd, rs1, 2) }
func SextB(rd, rs1 uint32) uint32 { return R(opI, 0x1, 0x30, rd, rs1, 4) }
func SextH(rd, rs1 uint32) uint32 { return R(opI, 0x1, 0x30, rd, rs1, 5) }
func Rori(rd, rs1, shamt uint32) uint32 { return R(opI, 0x5, 0x30, rd, rs1, shamt) }
func Orcb(rd, rs1 uint32) uint32        { return R(opI, 0x5, 0x14, rd, rs1, 0) }
func Rev8(rd, rs1 uint32) uint32        { return R(opI, 0x5, 0x34, rd, rs1, 0) }

// Float loads/stores.
func Flw(rd, rs1 uint32, imm int32) uint32 { return I(opFLoad, 0x2, rd, rs1, imm) }
func Fsw(rs1, rs2 uint32, imm int32) uint32 { return S(opFStore, 0x2, rs1, rs2, imm) }

// Float arithmetic (funct3 carries the rounding mode; 0x7 ("dynamic") is
// used throughout since the interpreter ignores it).
const rmDyn = 0x7

func FaddS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, rmDyn, 0x00, rd, rs1, rs2) }
func FsubS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, rmDyn, 0x04, rd, rs1, rs2) }
func FmulS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, rmDyn, 0x08, rd, rs1, rs2) }
func FdivS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, rmDyn, 0x0C, rd, rs1, rs2) }
func FsqrtS(rd, rs1 uint32) uint32     { return R(opFOp, rmDyn, 0x2C, rd, rs1, 0) }

func FsgnjS(rd, rs1, rs2 uint32) uint32  { return R(opFOp, 0x0, 0x10, rd, rs1, rs2) }
func FsgnjnS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, 0x1, 0x10, rd, rs1, rs2) }
func FsgnjxS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, 0x2, 0x10, rd, rs1, rs2) }

func FminS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, 0x0, 0x14, rd, rs1, rs2) }
func FmaxS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, 0x1, 0x14, rd, rs1, rs2) }

func FeqS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, 0x2, 0x50, rd, rs1, rs2) }
func FltS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, 0x1, 0x50, rd, rs1, rs2) }
func FleS(rd, rs1, rs2 uint32) uint32 { return R(opFOp, 0x0, 0x50, rd, rs1, rs2) }

func FcvtWS(rd, rs1 uint32) uint32  { return R(opFOp, rmDyn, 0x60, rd, rs1, 0) }
func FcvtWuS(rd, rs1 uint32) uint32 { return R(opFOp, rmDyn, 0x60, rd, rs1, 1) }
func FcvtSW(rd, rs1 uint32) uint32  { return R(opFOp, rmDyn, 0x68, rd, rs1, 0) }
func FcvtSWu(rd, rs1 uint32) uint32 { return R(opFOp, rmDyn, 0x68, rd, rs1, 1) }

func FmvXW(rd, rs1 uint32) uint32    { return R(opFOp, 0x0, 0x70, rd, rs1, 0) }
func FclassS(rd, rs1 uint32) uint32  { return R(opFOp, 0x1, 0x70, rd, rs1, 0) }
func FmvWX(rd, rs1 uint32) uint32    { return R(opFOp, 0x0, 0x78, rd, rs1, 0) }

func FmaddS(rd, rs1, rs2, rs3 uint32) uint32  { return R4(opFMadd, 0, rd, rs1, rs2, rs3) }
func FmsubS(rd, rs1, rs2, rs3 uint32) uint32  { return R4(opFMsub, 0, rd, rs1, rs2, rs3) }
func FnmsubS(rd, rs1, rs2, rs3 uint32) uint32 { return R4(opFNmsub, 0, rd, rs1, rs2, rs3) }
func FnmaddS(rd, rs1, rs2, rs3 uint32) uint32 { return R4(opFNmadd, 0, rd, rs1, rs2, rs3) }
