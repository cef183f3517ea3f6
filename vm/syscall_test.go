package vm

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyscallWrite(t *testing.T) {
	// spec.md §8 scenario 6: an open-file-table slot 0 (handle 3)
	// pointing at a writable file, r4..r6 = {3, 0, 13}, guest memory at
	// 0 holding "Hello, World!" (13 bytes).
	f, err := os.CreateTemp(t.TempDir(), "svm-write-*")
	require.NoError(t, err)
	defer f.Close()

	m, err := New(nil, 4096)
	require.NoError(t, err)
	handle := m.Files.open(f)
	require.Equal(t, uint32(3), handle, "first open should land in slot 0 / handle 3")

	msg := "Hello, World!"
	m.Mem.Write(0, []byte(msg))
	m.Regs.R[RegArg0] = handle
	m.Regs.R[RegArg0+1] = 0
	m.Regs.R[RegArg0+2] = uint32(len(msg))

	require.NoError(t, m.syscall(sysWrite))
	require.Equal(t, uint32(len(msg)), m.Regs.R[RegRet])

	got, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	require.Equal(t, msg, string(got))
}

func TestSyscallWriteToStdinReturnsNegativeOne(t *testing.T) {
	m, err := New(nil, 4096)
	require.NoError(t, err)
	m.Regs.R[RegArg0] = handleStdin
	m.Regs.R[RegArg0+1] = 0
	m.Regs.R[RegArg0+2] = 0
	require.NoError(t, m.syscall(sysWrite))
	require.Equal(t, uint32(negOne), m.Regs.R[RegRet])
}

func TestSyscallUnknownNumberErrors(t *testing.T) {
	m, err := New(nil, 4096)
	require.NoError(t, err)
	require.Error(t, m.syscall(99), "syscall 99 is not defined")
}

func TestSyscallCloseFreesSlot(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "svm-close-*")
	require.NoError(t, err)
	m, err := New(nil, 4096)
	require.NoError(t, err)
	handle := m.Files.open(f)
	m.Regs.R[RegArg0] = handle
	require.NoError(t, m.syscall(sysClose))
	require.Equal(t, uint32(0), m.Regs.R[RegRet])
	require.Nil(t, m.Files.lookup(handle), "handle should be freed after close")
}
