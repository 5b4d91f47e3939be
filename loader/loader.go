// Package loader places an on-disk RV32 ELF binary into a vm.Memory:
// PT_LOAD segments copied into memory and a Linux-style argv/envp/auxv stack
// frame laid out below the stack top. LoadELF reports the entry point and
// the initial stack pointer; the caller sets PC and sp from them.
package loader

import (
	"fmt"
	"os"

	"github.com/yalue/elf_reader"

	"github.com/lookbusy1344/rv32i-sim/vm"
)

// ptLoad is the ELF program header type for a loadable segment (PT_LOAD),
// per the ELF specification; elf_reader exposes the raw type code rather
// than a named Go constant for it.
const ptLoad = 1

const (
	defaultStackTop = 0x80000000
	stackSize       = 1 << 20 // 1 MiB
)

// LoadResult describes where a loaded program ended up, for the caller
// (main.go, the debugger, the GUI) to report or seed further config from.
type LoadResult struct {
	Entry     uint32
	HighWater uint32 // one past the highest byte any PT_LOAD segment occupies
	StackTop  uint32
	SP        uint32 // initial stack pointer, below argc/argv/envp/auxv
	Segments  int
}

// LoadELF reads the ELF file at path, copies every PT_LOAD segment into mem,
// and returns where execution should begin plus the layout metadata needed
// to initialize the stack and program break.
func LoadELF(mem *vm.Memory, path string, args, env []string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ELF file: %w", err)
	}

	f, err := elf_reader.ParseELFFile(data)
	if err != nil {
		return nil, fmt.Errorf("parsing ELF file: %w", err)
	}

	res := &LoadResult{StackTop: defaultStackTop}

	count := f.GetProgramHeaderCount()
	for i := uint16(0); i < count; i++ {
		ph, err := f.GetProgramHeader(i)
		if err != nil {
			return nil, fmt.Errorf("reading program header %d: %w", i, err)
		}
		if uint32(ph.GetType()) != ptLoad {
			continue
		}

		offset := ph.GetFileOffset()
		fileSize := ph.GetFileSize()
		memSize := ph.GetMemorySize()
		vaddr := uint32(ph.GetVirtualAddress())

		if offset+fileSize > uint64(len(data)) {
			return nil, fmt.Errorf("program header %d file range exceeds file size", i)
		}
		mem.WriteBytes(vaddr, data[offset:offset+fileSize])

		// The part of memSize beyond fileSize is BSS: already zero because
		// Memory reads unwritten addresses as zero, so nothing to do here.
		top := vaddr + uint32(memSize)
		if top > res.HighWater {
			res.HighWater = top
		}
		res.Segments++
	}

	if res.Segments == 0 {
		return nil, fmt.Errorf("%s: no PT_LOAD segments found", path)
	}

	res.Entry = uint32(f.GetEntryPoint())
	res.SP = layoutStack(mem, res.StackTop, args, env)

	return res, nil
}

// layoutStack writes argc, argv, envp, and a minimal auxv (just AT_NULL)
// below the stack pointer, mirroring the Linux process-startup convention
// the syscall shim's read/write/exit/brk surface expects a guest to see.
func layoutStack(mem *vm.Memory, stackTop uint32, args, env []string) uint32 {
	sp := stackTop

	// Copy string bytes (args then env), recording each one's final address.
	strAddrs := make([]uint32, 0, len(args)+len(env))
	for _, s := range append(append([]string{}, args...), env...) {
		b := append([]byte(s), 0)
		sp -= uint32(len(b))
		mem.WriteBytes(sp, b)
		strAddrs = append(strAddrs, sp)
	}

	// Align sp to a 4-byte boundary before the pointer tables.
	sp &^= 3

	// auxv: a single AT_NULL (0) terminator, two words.
	sp -= 8
	mem.StoreU32(sp, 0)
	mem.StoreU32(sp+4, 0)

	// envp: pointers then a NULL terminator.
	envAddrs := strAddrs[len(args):]
	sp -= uint32(len(envAddrs)+1) * 4
	envpBase := sp
	for i, a := range envAddrs {
		mem.StoreU32(envpBase+uint32(i)*4, a)
	}
	mem.StoreU32(envpBase+uint32(len(envAddrs))*4, 0)

	// argv: pointers then a NULL terminator.
	argAddrs := strAddrs[:len(args)]
	sp -= uint32(len(argAddrs)+1) * 4
	argvBase := sp
	for i, a := range argAddrs {
		mem.StoreU32(argvBase+uint32(i)*4, a)
	}
	mem.StoreU32(argvBase+uint32(len(argAddrs))*4, 0)

	// argc.
	sp -= 4
	mem.StoreU32(sp, uint32(len(args)))

	return sp
}
