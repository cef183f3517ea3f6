package isa

import "fmt"

// InvalidOpCodeError is returned when the low 6 bits of a fetched word
// do not name a defined opcode (the reserved/unknown discriminant
// cases of §3, including 0x00 and 0x01).
type InvalidOpCodeError struct {
	Bits byte
}

func (e *InvalidOpCodeError) Error() string {
	return fmt.Sprintf("isa: invalid opcode 0x%02x", e.Bits)
}

// InvalidOpCode builds an InvalidOpCodeError for the given 6-bit value.
func InvalidOpCode(bits byte) error {
	return &InvalidOpCodeError{Bits: bits & 0x3f}
}
