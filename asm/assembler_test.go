package asm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssembleSimpleAdd(t *testing.T) {
	out, err := Assemble("t.sasm", "add r0, r0, r1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x00, 0x01, 0x00}, out)
}

func TestAssembleAddImmediate(t *testing.T) {
	out, err := Assemble("t.sasm", "addi r0, r0, 4")
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x00, 0x04, 0x00}, out)
}

func TestAssembleRelativeLabelBackward(t *testing.T) {
	src := "label:\n add r2, r2, r3\n addi r0, r0, $label\n"
	out, err := Assemble("t.sasm", src)
	require.NoError(t, err)
	require.Equal(t, []byte{0x82, 0x10, 0x03, 0x00, 0x12, 0x00, 0xf8, 0xff}, out)
}

func TestAssembleAbsoluteLabelForward(t *testing.T) {
	src := "load r0, r2, %label\nlabel:\n"
	out, err := Assemble("t.sasm", src)
	require.NoError(t, err)
	require.Equal(t, []byte{0x34, 0x10, 0x04, 0x00}, out)
}

func TestAssembleBytesPseudoOp(t *testing.T) {
	out, err := Assemble("t.sasm", `bytes "Hi\n\0"`)
	require.NoError(t, err)
	require.Equal(t, []byte{'H', 'i', '\n', 0}, out)
}

func TestAssembleUndefinedLabelErrors(t *testing.T) {
	_, err := Assemble("t.sasm", "addi r0, r0, $nope")
	require.Error(t, err)
	require.IsType(t, &UndefinedLabelError{}, err)
}

func TestAssembleRejectsDuplicateLabel(t *testing.T) {
	_, err := Assemble("t.sasm", "a: break\na: break\n")
	require.Error(t, err)
}

func TestAssembleCompressedLoadStoreIndependentRegisters(t *testing.T) {
	// c.load/c.store each carry two independent 2-bit register fields
	// (spec.md §4.4's I-shape/S-shape, not a two-address CR form), so
	// rd and rs1 (or rs1 and rs2) need not match.
	load, err := Assemble("t.sasm", "c.load r1, r2, 2")
	require.NoError(t, err)
	require.Equal(t, []byte{0x75, 0x11}, load)

	store, err := Assemble("t.sasm", "c.store r1, r2, 2")
	require.NoError(t, err)
	require.Equal(t, []byte{0x77, 0x11}, store)
}

func TestAssembleComments(t *testing.T) {
	out, err := Assemble("t.sasm", "# just a comment\n\nbreak # trailing comment\n")
	require.NoError(t, err)
	require.Equal(t, []byte{0x3e, 0x00, 0x00, 0x00}, out)
}
