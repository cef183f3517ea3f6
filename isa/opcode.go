// Package isa defines the instruction set: the opcode enumeration, the
// four instruction shapes, and byte-exact encode/decode for the wide
// (32-bit) and compressed (16-bit) instruction forms.
package isa

import "fmt"

// OpCode is a 6-bit instruction discriminant. Bit 0 of the discriminant
// selects the size class: even values are wide (4-byte) instructions,
// odd values are compressed (2-byte) instructions. This is the only rule
// that determines size; Size must never consult anything else.
type OpCode byte

const (
	ADD  OpCode = 0x02
	CADD OpCode = 0x03
	SUB  OpCode = 0x04
	CSUB OpCode = 0x05
	AND  OpCode = 0x06
	CAND OpCode = 0x07
	OR   OpCode = 0x08
	COR  OpCode = 0x09
	XOR  OpCode = 0x0a
	CXOR OpCode = 0x0b
	SLL  OpCode = 0x0c
	CSLL OpCode = 0x0d
	SRL  OpCode = 0x0e
	CSRL OpCode = 0x0f
	SRA  OpCode = 0x10
	CSRA OpCode = 0x11

	ADDI  OpCode = 0x12
	CADDI OpCode = 0x13
	ANDI  OpCode = 0x14
	CANDI OpCode = 0x15
	ORI   OpCode = 0x16
	CORI  OpCode = 0x17
	XORI  OpCode = 0x18
	CXORI OpCode = 0x19
	SLLI  OpCode = 0x1a
	CSLLI OpCode = 0x1b
	SRLI  OpCode = 0x1c
	CSRLI OpCode = 0x1d
	SRAI  OpCode = 0x1e
	CSRAI OpCode = 0x1f

	BEZ  OpCode = 0x20
	CBEZ OpCode = 0x21
	BNZ  OpCode = 0x22
	CBNZ OpCode = 0x23

	BEQ   OpCode = 0x24
	BNE   OpCode = 0x26
	BLT   OpCode = 0x28
	BGE   OpCode = 0x2a
	BLTU  OpCode = 0x2c
	BGEU  OpCode = 0x2e

	LI   OpCode = 0x30
	CLI  OpCode = 0x31
	LUI  OpCode = 0x32
	CLUI OpCode = 0x33

	LOAD  OpCode = 0x34
	CLOAD OpCode = 0x35
	STORE OpCode = 0x36
	CSTORE OpCode = 0x37

	CMV OpCode = 0x39

	CALL  OpCode = 0x3c
	CCALL OpCode = 0x3d
	BREAK OpCode = 0x3e
	CBREAK OpCode = 0x3f
)

// Compressed reports whether the opcode discriminates a 16-bit
// instruction (odd value). Wide opcodes are even.
func (op OpCode) Compressed() bool {
	return op&1 == 1
}

// Size returns the encoded instruction size in bytes: 4 for wide
// (even) opcodes, 2 for compressed (odd) opcodes. Determined solely by
// bit 0 of the discriminant, never by a lookup table.
func (op OpCode) Size() int {
	if op.Compressed() {
		return 2
	}
	return 4
}

// mnemonics names every defined discriminant for diagnostics; it plays
// no part in size determination or encoding.
var mnemonics = map[OpCode]string{
	ADD: "add", CADD: "c.add", SUB: "sub", CSUB: "c.sub",
	AND: "and", CAND: "c.and", OR: "or", COR: "c.or",
	XOR: "xor", CXOR: "c.xor", SLL: "sll", CSLL: "c.sll",
	SRL: "srl", CSRL: "c.srl", SRA: "sra", CSRA: "c.sra",
	ADDI: "addi", CADDI: "c.addi", ANDI: "andi", CANDI: "c.andi",
	ORI: "ori", CORI: "c.ori", XORI: "xori", CXORI: "c.xori",
	SLLI: "slli", CSLLI: "c.slli", SRLI: "srli", CSRLI: "c.srli",
	SRAI: "srai", CSRAI: "c.srai",
	BEZ: "bez", CBEZ: "c.bez", BNZ: "bnz", CBNZ: "c.bnz",
	BEQ: "beq", BNE: "bne", BLT: "blt", BGE: "bge", BLTU: "blt.u", BGEU: "bge.u",
	LI: "li", CLI: "c.li", LUI: "lui", CLUI: "c.lui",
	LOAD: "load", CLOAD: "c.load", STORE: "store", CSTORE: "c.store",
	CMV:   "mv",
	CALL:  "call", CCALL: "c.call", BREAK: "break", CBREAK: "c.break",
}

// String returns the mnemonic for op, or a hex placeholder for
// reserved/unknown discriminants.
func (op OpCode) String() string {
	if name, ok := mnemonics[op]; ok {
		return name
	}
	return fmt.Sprintf("<unknown opcode 0x%02x>", byte(op))
}

// Valid reports whether op is one of the discriminants defined in the
// table above. 0x00 and 0x01 and all other undefined values are
// reserved and must be rejected by the decoder.
func (op OpCode) Valid() bool {
	_, ok := mnemonics[op]
	return ok
}
