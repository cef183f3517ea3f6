package mem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmappedReadReturnsZeroWithoutAllocating(t *testing.T) {
	m, err := New(4096)
	require.NoError(t, err)

	buf := make([]byte, 64)
	m.Read(0x1000, buf)
	require.Equal(t, make([]byte, 64), buf, "unmapped read must be zero-filled")
	require.Equal(t, 0, m.AllocatedPages(), "unmapped read must not allocate")
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	m, err := New(256)
	require.NoError(t, err)

	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	m.Write(250, want) // crosses a page boundary at offset 256

	got := make([]byte, len(want))
	m.Read(250, got)
	require.Equal(t, want, got, "page-crossing round trip")
}

func TestWrapsAroundAddressSpace(t *testing.T) {
	m, err := New(4096)
	require.NoError(t, err)

	want := []byte{0xaa, 0xbb, 0xcc, 0xdd}
	m.Write(0xFFFFFFFE, want)

	got := make([]byte, len(want))
	m.Read(0xFFFFFFFE, got)
	require.Equal(t, want, got, "write must wrap modulo 2^32")
}

func TestU32LittleEndian(t *testing.T) {
	m, err := New(4096)
	require.NoError(t, err)

	m.WriteU32(100, 0x12345678)
	buf := make([]byte, 4)
	m.Read(100, buf)
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, buf)
	require.Equal(t, uint32(0x12345678), m.ReadU32(100))
}

func TestNewRejectsPageSizeNotDividingAddressSpace(t *testing.T) {
	_, err := New(3)
	require.Error(t, err, "page size must divide 2^32")
}
