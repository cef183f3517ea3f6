package vm

import (
	"fmt"

	"github.com/jamsch0/uni-project-svm/mem"
)

// Tracer receives per-instruction and per-syscall notifications when
// verbose tracing is enabled. Implementations live outside this
// package (see the cmd tools), since verbose-logging UX is a host
// concern (spec.md §1 non-goals).
type Tracer interface {
	TraceStep(pc uint32, size int, opcode byte)
	TraceSyscall(number uint32)
}

// BreakpointHost receives a register snapshot when a BREAK instruction
// executes with breakpoints enabled, and blocks until the host signals
// that execution should continue. A nil BreakpointHost makes BREAK a
// no-op, matching spec.md §4.3's headless default.
type BreakpointHost interface {
	Break(snapshot [8]uint32)
}

// VM is the execution core: register file, paged memory, open-file
// table, and the flags that gate verbose tracing and breakpoints.
type VM struct {
	Regs  Registers
	Mem   *mem.Memory
	Files *FileTable

	Verbose            bool
	BreakpointsEnabled bool

	Tracer    Tracer
	BreakHost BreakpointHost

	ExitCode int32
	exited   bool
}

// New constructs a VM from a byte image, loading it at address 0 of a
// freshly allocated paged memory with the given page size. Construction
// zeroes all registers, sets PC=0, sets SP=0xFFFFFFFC, then writes the
// image. It fails if the image exceeds the 2^32-byte address space.
func New(image []byte, pageSize uint32) (*VM, error) {
	if uint64(len(image)) > mem.AddressSpaceSize {
		return nil, &ProgramTooLargeError{Size: uint64(len(image))}
	}
	m, err := mem.New(pageSize)
	if err != nil {
		return nil, fmt.Errorf("vm: %w", err)
	}

	v := &VM{
		Mem:   m,
		Files: newFileTable(),
	}
	v.Regs.Reset()
	v.Mem.Write(0, image)
	return v, nil
}

// Close closes every open file in the VM's file table. Safe to call
// more than once.
func (v *VM) Close() error {
	return v.Files.closeAll()
}

// Exited reports whether a sys_exit call has terminated the run.
func (v *VM) Exited() bool {
	return v.exited
}
