package vm

// Base RV32 opcodes (bits 0..6 of the instruction word).
const (
	opR      = 0x33 // R-type: ADD/SUB/.../MUL/DIV/... and Zbb ANDN/ORN/.../MIN/MAX
	opI      = 0x13 // I-type: ADDI/SLTI/.../SLLI/SRLI/SRAI, plus Zbb CLZ/CTZ/CPOP/SEXT/RORI/ORC.B/REV8
	opLoad   = 0x03 // LB/LH/LW/LBU/LHU
	opS      = 0x23 // SB/SH/SW
	opB      = 0x63 // BEQ/BNE/BLT/BGE/BLTU/BGEU
	opLUI    = 0x37
	opAUIPC  = 0x17
	opJAL    = 0x6F
	opJALR   = 0x67
	opSystem = 0x73 // ECALL
	opFLoad  = 0x07 // FLW
	opFStore = 0x27 // FSW
	opFMadd  = 0x43 // FMADD.S
	opFMsub  = 0x47 // FMSUB.S
	opFNmsub = 0x4B // FNMSUB.S
	opFNmadd = 0x4F // FNMADD.S
	opFOp    = 0x53 // FADD.S, FSUB.S, FSGNJ.S, FEQ.S, FCVT.W.S, FMV.X.W, ...
)

// funct7 selectors within opFOp.
const (
	fpFADD    = 0x00
	fpFSUB    = 0x04
	fpFMUL    = 0x08
	fpFDIV    = 0x0C
	fpFSQRT   = 0x2C
	fpFSGNJ   = 0x10 // funct3 selects FSGNJ(0)/FSGNJN(1)/FSGNJX(2)
	fpFMINMAX = 0x14 // funct3 selects FMIN(0)/FMAX(1)
	fpFCMP    = 0x50 // funct3 selects FLE(0)/FLT(1)/FEQ(2)
	fpFCVTW   = 0x60 // rs2 selects FCVT.W.S(0)/FCVT.WU.S(1)
	fpFCVTS   = 0x68 // rs2 selects FCVT.S.W(0)/FCVT.S.WU(1)
	fpFMVXW   = 0x70 // funct3 selects FMV.X.W(0)/FCLASS.S(1)
	fpFMVWX   = 0x78
)

// Dispatch keys for the Zbb unary forms that alias I-format shift encodings.
// These share opcode/funct3/funct7 with SLLI/SRLI/SRAI/RORI and are split by
// the rs2 (or, for RORI/ORC.B/REV8, the funct7) field instead.
const (
	zbbKeyCLZ   = 0x80000100
	zbbKeyCTZ   = 0x80000101
	zbbKeyCPOP  = 0x80000102
	zbbKeySEXTB = 0x80000103
	zbbKeySEXTH = 0x80000104
	zbbKeyRORI  = 0x80000105
	zbbKeyORCB  = 0x80000106
	zbbKeyREV8  = 0x80000107
)

// funct7 values distinguishing the Zbb I-format unary/rotate forms from
// plain shifts, within opI.
const (
	zbbFunct7Counters = 0x30 // CLZ/CTZ/CPOP/SEXT.B/SEXT.H share this with funct3=0x1
	zbbFunct7RORI     = 0x30 // RORI, funct3=0x5
	zbbFunct7ORCB     = 0x14 // ORC.B, funct3=0x5
	zbbFunct7REV8     = 0x34 // REV8, funct3=0x5
)

// key packs (opcode, funct3, funct7) into the 24-bit primary dispatch key.
func key(opcode, funct3, funct7 uint32) uint32 {
	return opcode | (funct3 << 8) | (funct7 << 16)
}
