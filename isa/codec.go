package isa

// Decode decodes a fetched 32-bit little-endian word into an
// Instruction. Only the low 16 bits are consulted when the opcode is
// compressed (odd); callers may pass the full 32-bit fetch result
// unconditionally.
func Decode(word uint32) (Instruction, error) {
	op := OpCode(word & 0x3f)
	if !op.Valid() {
		return Instruction{}, InvalidOpCode(byte(word & 0x3f))
	}
	if op.Compressed() {
		return decodeCompressed(op, uint16(word))
	}
	return decodeWide(op, word)
}

// Encode emits the little-endian byte encoding of inst: 4 bytes for a
// wide (even) opcode, 2 bytes for a compressed (odd) opcode.
func Encode(inst Instruction) []byte {
	if inst.Op.Compressed() {
		w := encodeCompressed(inst)
		return []byte{byte(w), byte(w >> 8)}
	}
	w := encodeWide(inst)
	return []byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
}

// signExtend sign-extends the low `bits` bits of v to a full 32-bit
// two's-complement value.
func signExtend(v uint32, bits uint) uint32 {
	shift := 32 - bits
	return uint32(int32(v<<shift) >> shift)
}

func decodeWide(op OpCode, word uint32) (Instruction, error) {
	switch shapeOf(op) {
	case ShapeRegister:
		rd := uint8((word >> 6) & 0x1f)
		rs1 := uint8((word >> 11) & 0x1f)
		rs2 := uint8((word >> 16) & 0x1f)
		return NewRegister(op, rd, rs1, rs2), nil
	case ShapeImmediate:
		rd := uint8((word >> 6) & 0x1f)
		rs1 := uint8((word >> 11) & 0x1f)
		imm := signExtend((word>>16)&0xffff, 16)
		return NewImmediate(op, rd, rs1, imm), nil
	case ShapeStore:
		rs1 := uint8((word >> 11) & 0x1f)
		rs2 := uint8((word >> 16) & 0x1f)
		lo := (word >> 6) & 0x1f
		hi := (word >> 21) & 0x7ff
		imm := signExtend(lo|(hi<<5), 16)
		return NewStore(op, rs1, rs2, imm), nil
	case ShapeUpper:
		rd := uint8((word >> 6) & 0x1f)
		raw := (word >> 16) & 0xffff
		return NewUpper(op, rd, raw<<16), nil
	}
	return Instruction{}, InvalidOpCode(byte(op))
}

func encodeWide(inst Instruction) uint32 {
	switch inst.Shape {
	case ShapeRegister:
		return uint32(inst.Op) |
			uint32(inst.Rd&0x1f)<<6 |
			uint32(inst.Rs1&0x1f)<<11 |
			uint32(inst.Rs2&0x1f)<<16
	case ShapeImmediate:
		return uint32(inst.Op) |
			uint32(inst.Rd&0x1f)<<6 |
			uint32(inst.Rs1&0x1f)<<11 |
			(inst.Imm&0xffff)<<16
	case ShapeStore:
		lo := inst.Imm & 0x1f
		hi := (inst.Imm >> 5) & 0x7ff
		return uint32(inst.Op) |
			lo<<6 |
			uint32(inst.Rs1&0x1f)<<11 |
			uint32(inst.Rs2&0x1f)<<16 |
			hi<<21
	case ShapeUpper:
		return uint32(inst.Op) |
			uint32(inst.Rd&0x1f)<<6 |
			((inst.Imm >> 16) & 0xffff) << 16
	}
	return uint32(inst.Op)
}

// decodeCompressed dispatches a 16-bit compressed word to its shape
// based on the opcode family; CMV is the only CR-shape mnemonic that
// ignores Rs1.
func decodeCompressed(op OpCode, word uint16) (Instruction, error) {
	switch op {
	case CADD, CSUB, CAND, COR, CXOR, CSLL, CSRL, CSRA, CMV:
		rd := uint8((word >> 6) & 0x7)
		rs2 := uint8((word >> 11) & 0x7)
		return NewRegister(op, rd, rd, rs2), nil
	case CADDI, CANDI, CORI, CXORI, CSLLI, CSRLI, CSRAI, CLI, CBEZ, CBNZ:
		rd := uint8((word >> 6) & 0x7)
		imm := signExtend(uint32(word>>9)&0x7f, 7)
		return NewImmediate(op, rd, rd, imm), nil
	case CLUI:
		rd := uint8((word >> 6) & 0x7)
		raw := signExtend(uint32(word>>9)&0x7f, 7)
		return NewUpper(op, rd, raw<<7), nil
	case CLOAD:
		rd := uint8((word >> 6) & 0x3)
		rs1 := uint8((word >> 11) & 0x3)
		imm := decodeCLImm(word)
		return NewImmediate(op, rd, rs1, imm), nil
	case CSTORE:
		rs1 := uint8((word >> 6) & 0x3)
		rs2 := uint8((word >> 11) & 0x3)
		imm := decodeCLImm(word)
		return NewStore(op, rs1, rs2, imm), nil
	case CCALL:
		imm := signExtend(uint32(word>>9)&0x7f, 7)
		return NewImmediate(op, 0, 0, imm), nil
	case CBREAK:
		return NewImmediate(op, 0, 0, 0), nil
	}
	return Instruction{}, InvalidOpCode(byte(op))
}

// decodeCLImm reconstructs the 7-bit signed CL/CS immediate from its
// two split fields: imm[3:1] in bits 8-10 and imm[6:4] in bits 13-15.
// Bit 0 is never encoded and is always 0 — a preserved quirk producing
// 0xFFFFFFFE (not 0xFFFFFFFF) for the all-ones encoding.
func decodeCLImm(word uint16) uint32 {
	lo := uint32(word&0x700) >> 7  // imm[3:1]
	hi := uint32(word&0xe000) >> 9 // imm[6:4]
	return signExtend(lo|hi, 7)
}

func encodeCompressed(inst Instruction) uint16 {
	switch inst.Op {
	case CADD, CSUB, CAND, COR, CXOR, CSLL, CSRL, CSRA, CMV:
		return uint16(inst.Op) |
			uint16(inst.Rd&0x7)<<6 |
			uint16(inst.Rs2&0x7)<<11
	case CADDI, CANDI, CORI, CXORI, CSLLI, CSRLI, CSRAI, CLI, CBEZ, CBNZ:
		return uint16(inst.Op) |
			uint16(inst.Rd&0x7)<<6 |
			uint16(inst.Imm&0x7f)<<9
	case CLUI:
		raw := (inst.Imm >> 7) & 0x7f
		return uint16(inst.Op) |
			uint16(inst.Rd&0x7)<<6 |
			uint16(raw)<<9
	case CLOAD:
		return uint16(inst.Op) |
			uint16(inst.Rd&0x3)<<6 |
			uint16(inst.Rs1&0x3)<<11 |
			encodeCLImm(inst.Imm)
	case CSTORE:
		return uint16(inst.Op) |
			uint16(inst.Rs1&0x3)<<6 |
			uint16(inst.Rs2&0x3)<<11 |
			encodeCLImm(inst.Imm)
	case CCALL:
		return uint16(inst.Op) | uint16(inst.Imm&0x7f)<<9
	case CBREAK:
		return uint16(inst.Op)
	}
	return uint16(inst.Op)
}

// encodeCLImm packs imm's bits [3:1] into bits 8-10 and bits [6:4]
// into bits 13-15; bit 0 is dropped (see decodeCLImm).
func encodeCLImm(imm uint32) uint16 {
	lo := uint16(imm<<7) & 0x0700
	hi := uint16(imm<<9) & 0xe000
	return lo | hi
}
