package asm

import "github.com/jamsch0/uni-project-svm/isa"

// immKind distinguishes the three forms an immediate operand can take
// in source text.
type immKind int

const (
	immLiteral immKind = iota
	immAbsoluteLabel
	immRelativeLabel
)

// immRef is an unresolved immediate: either a literal value already
// known in pass one, or a reference to a label resolved in pass two.
type immRef struct {
	kind  immKind
	value uint32
	label string
}

// itemKind distinguishes a real instruction from a raw byte literal
// emitted by the `bytes` pseudo-op.
type itemKind int

const (
	itemInstruction itemKind = iota
	itemBytes
)

// item is one placeholder-IR entry produced by pass one: either an
// instruction whose immediate may still need label resolution, or a
// run of raw bytes.
type item struct {
	kind itemKind
	pos  Position
	addr uint32

	op    isa.OpCode
	shape isa.Shape
	rd    uint8
	rs1   uint8
	rs2   uint8
	imm   immRef

	raw []byte
}

// size reports the number of bytes this item contributes to the image.
func (it *item) size() int {
	if it.kind == itemBytes {
		return len(it.raw)
	}
	return it.op.Size()
}
