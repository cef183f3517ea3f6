package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jamsch0/uni-project-svm/isa"
)

func TestStepADDWide(t *testing.T) {
	// spec.md §8 scenario 1: ADD r0,r0,r1 starting from a zeroed
	// register file. PC (r0) advances by the instruction size before
	// the add executes, so r0 ends up 4, not 0.
	m, err := New([]byte{0x02, 0x00, 0x01, 0x00}, 4096)
	require.NoError(t, err)
	m.Regs.R[RegSP] = 0 // New starts SP at 0xFFFFFFFC; zero it for this scenario
	require.NoError(t, m.Step())
	require.Equal(t, uint32(4), m.Regs.PC())
	require.Equal(t, uint32(0), m.Regs.R[1], "r1 must be unchanged")
	require.Equal(t, uint32(4), m.Regs.R[0])
}

func TestStepADDI(t *testing.T) {
	// spec.md §8 scenario 2: ADDI r0,r0,4 — PC increments, then adds
	// the immediate on top of the new PC value.
	m, err := New([]byte{0x12, 0x00, 0x04, 0x00}, 4096)
	require.NoError(t, err)
	require.NoError(t, m.Step())
	require.Equal(t, uint32(8), m.Regs.PC())
}

func TestStoreBranchUsesPostIncrementPC(t *testing.T) {
	inst := isa.NewStore(isa.BEQ, 1, 1, 20)
	image := isa.Encode(inst)
	m, err := New(image, 4096)
	require.NoError(t, err)
	require.NoError(t, m.Step())
	require.Equal(t, uint32(24), m.Regs.PC(), "post-increment base 4 + offset 20")
}

func TestImmediateBranchUsesPostIncrementPC(t *testing.T) {
	inst := isa.NewImmediate(isa.BEZ, 2, 2, 20)
	image := isa.Encode(inst)
	m, err := New(image, 4096)
	require.NoError(t, err)
	require.NoError(t, m.Step())
	require.Equal(t, uint32(24), m.Regs.PC(), "post-increment base 4 + offset 20")
}

func TestLoadStoreRoundTrip(t *testing.T) {
	// store r1 <- r2 at addr r1+0, then load it back into r3.
	store := isa.Encode(isa.NewStore(isa.STORE, 1, 2, 0))
	load := isa.Encode(isa.NewImmediate(isa.LOAD, 3, 1, 0))
	image := append(append([]byte{}, store...), load...)

	m, err := New(image, 4096)
	require.NoError(t, err)
	m.Regs.R[1] = 0x2000
	m.Regs.R[2] = 0xCAFEBABE
	require.NoError(t, m.Step())
	require.NoError(t, m.Step())
	require.Equal(t, uint32(0xCAFEBABE), m.Regs.R[3])
}

func TestShiftAmountsMaskedTo5Bits(t *testing.T) {
	inst := isa.NewRegister(isa.SLL, 3, 1, 2)
	image := isa.Encode(inst)
	m, err := New(image, 4096)
	require.NoError(t, err)
	m.Regs.R[1] = 1
	m.Regs.R[2] = 33 // masked to 1
	require.NoError(t, m.Step())
	require.Equal(t, uint32(2), m.Regs.R[3], "1 << (33 & 0x1f)")
}

func TestSRAArithmeticShift(t *testing.T) {
	inst := isa.NewRegister(isa.SRA, 3, 1, 2)
	image := isa.Encode(inst)
	m, err := New(image, 4096)
	require.NoError(t, err)
	m.Regs.R[1] = 0x80000000
	m.Regs.R[2] = 4
	require.NoError(t, m.Step())
	require.Equal(t, uint32(0xF8000000), m.Regs.R[3], "sign-extended")
}

func TestDecodeFailureAbortsRun(t *testing.T) {
	m, err := New([]byte{0x00, 0x00, 0x00, 0x00}, 4096)
	require.NoError(t, err)
	require.Error(t, m.Step(), "reserved opcode 0x00 must fail to decode")
}

func TestSysExitTerminatesRun(t *testing.T) {
	call := isa.Encode(isa.NewImmediate(isa.CALL, 0, 0, 0))
	m, err := New(call, 4096)
	require.NoError(t, err)
	m.Regs.R[RegArg0] = 7
	require.NoError(t, m.Step())
	require.True(t, m.Exited())
	require.Equal(t, int32(7), m.ExitCode)
}
