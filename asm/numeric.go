package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNumber parses a numeric literal: an optional leading sign
// followed by an optional radix prefix (0b/0o/0x, case-insensitive,
// default decimal) and digits in that radix. A negative value is
// returned as its two's-complement 32-bit bit pattern.
func parseNumber(lit string) (uint32, error) {
	s := lit
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		base = 2
		s = s[2:]
	case strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O"):
		base = 8
		s = s[2:]
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	}

	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric literal %q: %w", lit, err)
	}
	if neg {
		return uint32(-int64(v)), nil
	}
	return uint32(v), nil
}
