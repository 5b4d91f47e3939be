package vm

// Interpreter owns the register file, memory, and dispatch table for one
// program's lifetime. The table is built once at construction and is
// read-only thereafter; handlers are pure functions of state and the
// decoded record, reentrant across sequential cycles but not designed for
// concurrent invocation on the same state.
type Interpreter struct {
	State      *State
	handlers   map[uint32]Handler
	CycleLimit uint64

	// Optional diagnostics, nil unless explicitly enabled.
	Trace *ExecutionTrace
	Regs  *RegisterTrace
	Cover *CodeCoverage
	Stack *StackTrace
	Stats *PerformanceStatistics

	files *fileTable
	brk   uint32
}

// NewInterpreter returns an interpreter with an empty state and the full
// RV32IM/F/Zbb dispatch table registered.
func NewInterpreter() *Interpreter {
	in := &Interpreter{
		State:      NewState(),
		handlers:   make(map[uint32]Handler),
		CycleLimit: 1_000_000,
		files:      newFileTable(),
	}
	in.registerHandlers()
	return in
}

func (in *Interpreter) registerHandlers() {
	h := in.handlers

	// R-type integer ALU.
	h[key(opR, 0x0, 0x00)] = formatR(aluAdd)
	h[key(opR, 0x0, 0x20)] = formatR(aluSub)
	h[key(opR, 0x1, 0x00)] = formatR(aluSll)
	h[key(opR, 0x2, 0x00)] = formatR(aluSlt)
	h[key(opR, 0x3, 0x00)] = formatR(aluSltu)
	h[key(opR, 0x4, 0x00)] = formatR(aluXor)
	h[key(opR, 0x5, 0x00)] = formatR(aluSrl)
	h[key(opR, 0x5, 0x20)] = formatR(aluSra)
	h[key(opR, 0x6, 0x00)] = formatR(aluOr)
	h[key(opR, 0x7, 0x00)] = formatR(aluAnd)

	// I-type integer ALU.
	h[key(opI, 0x0, 0x00)] = formatI(aluAddi)
	h[key(opI, 0x2, 0x00)] = formatI(aluSlti)
	h[key(opI, 0x3, 0x00)] = formatI(aluSltiu)
	h[key(opI, 0x4, 0x00)] = formatI(aluXori)
	h[key(opI, 0x6, 0x00)] = formatI(aluOri)
	h[key(opI, 0x7, 0x00)] = formatI(aluAndi)
	h[key(opI, 0x1, 0x00)] = formatI(aluSlli)
	h[key(opI, 0x5, 0x00)] = formatI(aluSrli)
	h[key(opI, 0x5, 0x20)] = formatI(aluSrai)

	// Loads / stores.
	h[key(opLoad, 0x0, 0x00)] = formatLoad(1, true)
	h[key(opLoad, 0x1, 0x00)] = formatLoad(2, true)
	h[key(opLoad, 0x2, 0x00)] = formatLoad(4, false)
	h[key(opLoad, 0x4, 0x00)] = formatLoad(1, false)
	h[key(opLoad, 0x5, 0x00)] = formatLoad(2, false)

	h[key(opS, 0x0, 0x00)] = formatStore(1)
	h[key(opS, 0x1, 0x00)] = formatStore(2)
	h[key(opS, 0x2, 0x00)] = formatStore(4)

	// Branches.
	h[key(opB, 0x0, 0x00)] = formatB(brEq)
	h[key(opB, 0x1, 0x00)] = formatB(brNe)
	h[key(opB, 0x4, 0x00)] = formatB(brLt)
	h[key(opB, 0x5, 0x00)] = formatB(brGe)
	h[key(opB, 0x6, 0x00)] = formatB(brLtu)
	h[key(opB, 0x7, 0x00)] = formatB(brGeu)

	// Upper-immediate and jumps.
	h[key(opLUI, 0x0, 0x00)] = lui
	h[key(opAUIPC, 0x0, 0x00)] = auipc
	h[key(opJAL, 0x0, 0x00)] = jal
	h[key(opJALR, 0x0, 0x00)] = jalr

	// M extension: funct7 = 0x01 on the R-type opcode.
	h[key(opR, 0x0, 0x01)] = formatR(mulMul)
	h[key(opR, 0x1, 0x01)] = formatR(mulMulh)
	h[key(opR, 0x2, 0x01)] = formatR(mulMulhsu)
	h[key(opR, 0x3, 0x01)] = formatR(mulMulhu)
	h[key(opR, 0x4, 0x01)] = formatR(mulDiv)
	h[key(opR, 0x5, 0x01)] = formatR(mulDivu)
	h[key(opR, 0x6, 0x01)] = formatR(mulRem)
	h[key(opR, 0x7, 0x01)] = formatR(mulRemu)

	// F extension.
	h[key(opFLoad, 0x2, 0x00)] = formatFLoad
	h[key(opFStore, 0x2, 0x00)] = formatFStore

	registerRoundingModeVariants(h, opFOp, fpFADD, formatFR(fpAdd))
	registerRoundingModeVariants(h, opFOp, fpFSUB, formatFR(fpSub))
	registerRoundingModeVariants(h, opFOp, fpFMUL, formatFR(fpMul))
	registerRoundingModeVariants(h, opFOp, fpFDIV, formatFR(fpDiv))
	registerRoundingModeVariants(h, opFOp, fpFSQRT, formatFR(fpSqrt))

	h[key(opFOp, 0x0, fpFSGNJ)] = formatFR(fpSgnj)
	h[key(opFOp, 0x1, fpFSGNJ)] = formatFR(fpSgnjn)
	h[key(opFOp, 0x2, fpFSGNJ)] = formatFR(fpSgnjx)

	h[key(opFOp, 0x0, fpFMINMAX)] = formatFR(fpMin)
	h[key(opFOp, 0x1, fpFMINMAX)] = formatFR(fpMax)

	h[key(opFOp, 0x2, fpFCMP)] = formatF2I(fpEq)
	h[key(opFOp, 0x1, fpFCMP)] = formatF2I(fpLt)
	h[key(opFOp, 0x0, fpFCMP)] = formatF2I(fpLe)

	registerRoundingModeVariantsByRs2(h, opFOp, fpFCVTW, 0, formatF2I(fpCvtWS))
	registerRoundingModeVariantsByRs2(h, opFOp, fpFCVTW, 1, formatF2I(fpCvtWUS))
	registerRoundingModeVariantsByRs2(h, opFOp, fpFCVTS, 0, formatI2F(fpCvtSW))
	registerRoundingModeVariantsByRs2(h, opFOp, fpFCVTS, 1, formatI2F(fpCvtSWU))

	h[key(opFOp, 0x0, fpFMVXW)] = formatF2I(fpMvXW)
	h[key(opFOp, 0x1, fpFMVXW)] = formatF2I(fpClass)
	h[key(opFOp, 0x0, fpFMVWX)] = formatI2F(fpMvWX)

	h[key(opFMadd, 0, 0)] = formatFR4(fpMadd)
	h[key(opFMsub, 0, 0)] = formatFR4(fpMsub)
	h[key(opFNmadd, 0, 0)] = formatFR4(fpNmadd)
	h[key(opFNmsub, 0, 0)] = formatFR4(fpNmsub)

	// Zbb: R-type forms.
	h[key(opR, 0x7, 0x20)] = formatR(zbbAndn)
	h[key(opR, 0x6, 0x20)] = formatR(zbbOrn)
	h[key(opR, 0x4, 0x20)] = formatR(zbbXnor)
	h[key(opR, 0x4, 0x05)] = formatR(zbbMin)
	h[key(opR, 0x5, 0x05)] = formatR(zbbMax)
	h[key(opR, 0x6, 0x05)] = formatR(zbbMinu)
	h[key(opR, 0x7, 0x05)] = formatR(zbbMaxu)
	h[key(opR, 0x1, 0x30)] = formatR(zbbRol)
	h[key(opR, 0x5, 0x30)] = formatR(zbbRor)

	// Zbb: synthetic I-format unary/rotate forms.
	h[zbbKeyCLZ] = formatUnary(zbbClz)
	h[zbbKeyCTZ] = formatUnary(zbbCtz)
	h[zbbKeyCPOP] = formatUnary(zbbCpop)
	h[zbbKeySEXTB] = formatUnary(zbbSextB)
	h[zbbKeySEXTH] = formatUnary(zbbSextH)
	h[zbbKeyRORI] = formatRotImm(zbbRori)
	h[zbbKeyORCB] = formatUnary(zbbOrcb)
	h[zbbKeyREV8] = formatUnary(zbbRev8)

	// ZEXT.H shares the R-type encoding (OP, funct3=100, funct7=0000100)
	// used by the 64-bit PACKW alias; on RV32 it is unambiguous.
	h[key(opR, 0x4, 0x04)] = formatR(func(a, _ uint32) uint32 { return zbbZextH(a) })

	// ECALL delegates to the host syscall shim; see syscall.go. The handler
	// closes over the owning Interpreter so the shim can reach its
	// per-instance file table and stdin reader.
	h[key(opSystem, 0x0, 0x00)] = func(s *State, _ Instr) ExecutionStatus {
		return in.handleEcall(s)
	}
}

// registerRoundingModeVariants registers the same handler for all eight
// rounding-mode encodings of funct3, since the rounding-mode field is
// ignored throughout (per spec.md §4.4 / §9).
func registerRoundingModeVariants(h map[uint32]Handler, opcode, funct7 uint32, handler Handler) {
	for rm := uint32(0); rm < 8; rm++ {
		h[key(opcode, rm, funct7)] = handler
	}
}

// registerRoundingModeVariantsByRs2 registers the FCVT family, whose W vs WU
// selector lives in rs2 rather than funct3/funct7; Decode folds that
// selector into the key via fcvtKey so the two forms don't collide.
func registerRoundingModeVariantsByRs2(h map[uint32]Handler, opcode, funct7, rs2sel uint32, handler Handler) {
	for rm := uint32(0); rm < 8; rm++ {
		h[fcvtKey(opcode, rm, funct7, rs2sel)] = handler
	}
}

// fcvtKey extends the natural key with the rs2 selector bit shifted above
// the 24-bit natural key range (bit 24), disjoint from both the natural
// keys and the Zbb synthetic range (bit 31 set).
func fcvtKey(opcode, funct3, funct7, rs2sel uint32) uint32 {
	return key(opcode, funct3, funct7) | (rs2sel << 24)
}

// Step executes exactly one cycle: fetch, decode, dispatch, zero-register
// re-assertion.
func (in *Interpreter) Step() ExecutionStatus {
	s := in.State
	word := s.Memory.LoadU32(s.PC)
	decoded, k := Decode(word, s.PC)

	if in.Cover != nil {
		in.Cover.Record(s.PC)
	}
	if in.Trace != nil {
		in.Trace.Record(s.PC, k)
	}
	if in.Regs != nil {
		in.Regs.RecordBefore(decoded)
	}

	handler, ok := in.handlers[k]
	if !ok {
		return TrapIllegal
	}

	status := handler(s, decoded)
	s.ZeroGuard()

	if in.Stack != nil {
		in.Stack.Observe(s.Regs[2])
	}
	if in.Stats != nil {
		in.Stats.Record(k)
	}
	if in.Regs != nil {
		in.Regs.RecordAfter(decoded, s)
	}

	return status
}

// Run drives Step until a trap, ProgramExit, or the cycle limit. Reaching
// the cycle limit surfaces as TrapIllegal (timeout), keeping the
// consumer-visible error taxonomy small.
func (in *Interpreter) Run() ExecutionResult {
	var cycles uint64
	for cycles = 0; cycles < in.CycleLimit; cycles++ {
		pc := in.State.PC
		status := in.Step()

		if status == ProgramExit {
			return ExecutionResult{
				Status:   ProgramExit,
				PC:       in.State.PC,
				Cycles:   cycles + 1,
				ExitCode: int32(in.State.Regs[10]),
			}
		}
		if status != Success {
			return ExecutionResult{Status: status, PC: pc, Cycles: cycles + 1}
		}
	}
	return ExecutionResult{Status: TrapIllegal, PC: in.State.PC, Cycles: cycles}
}
