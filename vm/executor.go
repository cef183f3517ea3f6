package vm

import (
	"context"
	"fmt"

	"github.com/jamsch0/uni-project-svm/isa"
)

// Run executes instructions until sys_exit terminates the run, a
// decode failure aborts it, or ctx is cancelled. It returns the error
// that ended the run; a clean sys_exit yields nil.
func (v *VM) Run(ctx context.Context) error {
	for !v.exited {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step fetches, decodes, and executes a single instruction.
func (v *VM) Step() error {
	pcBefore := v.Regs.PC()
	word := v.Mem.ReadU32(pcBefore)

	inst, err := isa.Decode(word)
	if err != nil {
		return fmt.Errorf("fetch at 0x%08x: %w", pcBefore, err)
	}

	size := inst.Op.Size()
	v.Regs.SetPC(pcBefore + uint32(size))

	if v.Tracer != nil {
		v.Tracer.TraceStep(pcBefore, size, byte(inst.Op))
	}

	return v.execute(inst)
}

// execute carries out inst's semantics. All taken branches — both
// BEZ/BNZ (Immediate-shape) and BEQ/BNE/BLT/BGE/BLTU/BGEU (Store-shape)
// — add their offset to the already-incremented PC, since the fetch
// loop advances PC before execute runs.
func (v *VM) execute(inst isa.Instruction) error {
	r := &v.Regs.R

	switch inst.Op {
	case isa.ADD, isa.CADD:
		r[inst.Rd] = r[inst.Rs1] + r[inst.Rs2]
	case isa.SUB, isa.CSUB:
		r[inst.Rd] = r[inst.Rs1] - r[inst.Rs2]
	case isa.AND, isa.CAND:
		r[inst.Rd] = r[inst.Rs1] & r[inst.Rs2]
	case isa.OR, isa.COR:
		r[inst.Rd] = r[inst.Rs1] | r[inst.Rs2]
	case isa.XOR, isa.CXOR:
		r[inst.Rd] = r[inst.Rs1] ^ r[inst.Rs2]
	case isa.SLL, isa.CSLL:
		r[inst.Rd] = r[inst.Rs1] << (r[inst.Rs2] & 0x1f)
	case isa.SRL, isa.CSRL:
		r[inst.Rd] = r[inst.Rs1] >> (r[inst.Rs2] & 0x1f)
	case isa.SRA, isa.CSRA:
		r[inst.Rd] = uint32(int32(r[inst.Rs1]) >> (r[inst.Rs2] & 0x1f))
	case isa.CMV:
		r[inst.Rd] = r[inst.Rs2]

	case isa.ADDI, isa.CADDI:
		r[inst.Rd] = r[inst.Rs1] + inst.Imm
	case isa.ANDI, isa.CANDI:
		r[inst.Rd] = r[inst.Rs1] & inst.Imm
	case isa.ORI, isa.CORI:
		r[inst.Rd] = r[inst.Rs1] | inst.Imm
	case isa.XORI, isa.CXORI:
		r[inst.Rd] = r[inst.Rs1] ^ inst.Imm
	case isa.SLLI, isa.CSLLI:
		r[inst.Rd] = r[inst.Rs1] << (inst.Imm & 0x1f)
	case isa.SRLI, isa.CSRLI:
		r[inst.Rd] = r[inst.Rs1] >> (inst.Imm & 0x1f)
	case isa.SRAI, isa.CSRAI:
		r[inst.Rd] = uint32(int32(r[inst.Rs1]) >> (inst.Imm & 0x1f))

	case isa.LI, isa.CLI:
		r[inst.Rd] = inst.Imm
	case isa.LUI, isa.CLUI:
		r[inst.Rd] = inst.Imm

	case isa.LOAD, isa.CLOAD:
		r[inst.Rd] = v.Mem.ReadU32(r[inst.Rs1] + inst.Imm)
	case isa.STORE, isa.CSTORE:
		v.Mem.WriteU32(r[inst.Rs1]+inst.Imm, r[inst.Rs2])

	case isa.BEZ, isa.CBEZ:
		if r[inst.Rs1] == 0 {
			r[RegPC] = v.Regs.PC() + inst.Imm
		}
	case isa.BNZ, isa.CBNZ:
		if r[inst.Rs1] != 0 {
			r[RegPC] = v.Regs.PC() + inst.Imm
		}

	case isa.BEQ:
		if r[inst.Rs1] == r[inst.Rs2] {
			r[RegPC] = v.Regs.PC() + inst.Imm
		}
	case isa.BNE:
		if r[inst.Rs1] != r[inst.Rs2] {
			r[RegPC] = v.Regs.PC() + inst.Imm
		}
	case isa.BLT:
		if int32(r[inst.Rs1]) < int32(r[inst.Rs2]) {
			r[RegPC] = v.Regs.PC() + inst.Imm
		}
	case isa.BGE:
		if int32(r[inst.Rs1]) >= int32(r[inst.Rs2]) {
			r[RegPC] = v.Regs.PC() + inst.Imm
		}
	case isa.BLTU:
		if r[inst.Rs1] < r[inst.Rs2] {
			r[RegPC] = v.Regs.PC() + inst.Imm
		}
	case isa.BGEU:
		if r[inst.Rs1] >= r[inst.Rs2] {
			r[RegPC] = v.Regs.PC() + inst.Imm
		}

	case isa.CALL, isa.CCALL:
		return v.syscall(inst.Imm & 0xffff)

	case isa.BREAK, isa.CBREAK:
		v.breakpoint()

	default:
		return fmt.Errorf("vm: unhandled opcode %v", inst.Op)
	}
	return nil
}

// breakpoint publishes a register snapshot to the host and blocks
// until it signals "continue". It never terminates the run; with
// breakpoints disabled or no host attached it is a no-op.
func (v *VM) breakpoint() {
	if !v.BreakpointsEnabled || v.BreakHost == nil {
		return
	}
	var snap [8]uint32
	copy(snap[:], v.Regs.R[:8])
	v.BreakHost.Break(snap)
}
