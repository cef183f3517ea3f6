package asm

import (
	"strings"

	"github.com/jamsch0/uni-project-svm/isa"
)

// Assemble runs the two-pass translation described in spec.md §4.4:
// pass one tokenizes every line, records label addresses, and builds
// the placeholder-IR item list; pass two resolves label immediates
// and invokes the codec encoder. filename is used only for
// diagnostics.
func Assemble(filename, source string) ([]byte, error) {
	labels := make(map[string]uint32)
	var items []*item

	addr := uint32(0)
	lines := strings.Split(source, "\n")
	for i, raw := range lines {
		pos := Position{Filename: filename, Line: i + 1}
		line := stripComment(raw)
		if line == "" {
			continue
		}

		toks, err := lexLine(line, pos)
		if err != nil {
			return nil, err
		}
		label, it, err := parseLine(toks, pos)
		if err != nil {
			return nil, err
		}

		if label != "" {
			if _, exists := labels[label]; exists {
				return nil, newError(pos, "label %q already defined", label)
			}
			labels[label] = addr
		}
		if it != nil {
			it.addr = addr
			items = append(items, it)
			addr += uint32(it.size())
		}
	}

	var out []byte
	for _, it := range items {
		if it.kind == itemBytes {
			out = append(out, it.raw...)
			continue
		}

		nextAddr := it.addr + uint32(it.size())
		imm, err := resolveImm(it.imm, labels, it.pos, nextAddr)
		if err != nil {
			return nil, err
		}

		var inst isa.Instruction
		switch it.shape {
		case isa.ShapeRegister:
			inst = isa.NewRegister(it.op, it.rd, it.rs1, it.rs2)
		case isa.ShapeImmediate:
			inst = isa.NewImmediate(it.op, it.rd, it.rs1, imm)
		case isa.ShapeStore:
			inst = isa.NewStore(it.op, it.rs1, it.rs2, imm)
		case isa.ShapeUpper:
			inst = isa.NewUpper(it.op, it.rd, imm)
		}
		out = append(out, isa.Encode(inst)...)
	}
	return out, nil
}

func resolveImm(ref immRef, labels map[string]uint32, pos Position, nextAddr uint32) (uint32, error) {
	switch ref.kind {
	case immLiteral:
		return ref.value, nil
	case immAbsoluteLabel:
		v, ok := labels[ref.label]
		if !ok {
			return 0, &UndefinedLabelError{Pos: pos, Name: ref.label}
		}
		return v, nil
	case immRelativeLabel:
		v, ok := labels[ref.label]
		if !ok {
			return 0, &UndefinedLabelError{Pos: pos, Name: ref.label}
		}
		return v - nextAddr, nil
	}
	return 0, nil
}
