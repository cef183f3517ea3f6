package asm

import (
	"strconv"
	"strings"

	"github.com/jamsch0/uni-project-svm/isa"
)

// cursor walks a token slice, consuming tokens for one line's parse.
type cursor struct {
	toks []Token
	pos  Position
}

func (c *cursor) atEnd() bool { return len(c.toks) == 0 }

func (c *cursor) peek() (Token, bool) {
	if c.atEnd() {
		return Token{}, false
	}
	return c.toks[0], true
}

func (c *cursor) next() (Token, bool) {
	t, ok := c.peek()
	if ok {
		c.toks = c.toks[1:]
	}
	return t, ok
}

func (c *cursor) expect(tt TokenType, what string) (Token, error) {
	t, ok := c.next()
	if !ok || t.Type != tt {
		return Token{}, newError(c.pos, "expected %s", what)
	}
	return t, nil
}

func (c *cursor) expectComma() error {
	_, err := c.expect(TokenComma, "','")
	return err
}

// parseRegister consumes an identifier token of the form r0..r31.
func (c *cursor) parseRegister() (uint8, error) {
	t, err := c.expect(TokenIdentifier, "register operand")
	if err != nil {
		return 0, err
	}
	lit := strings.ToLower(t.Literal)
	if len(lit) < 2 || lit[0] != 'r' {
		return 0, newError(c.pos, "invalid register operand %q", t.Literal)
	}
	n, err := strconv.Atoi(lit[1:])
	if err != nil || n < 0 || n > 31 {
		return 0, newError(c.pos, "invalid register operand %q", t.Literal)
	}
	return uint8(n), nil
}

// parseImm consumes one of the three immediate forms: a numeric
// literal, `%label` (absolute), or `$label` (relative).
func (c *cursor) parseImm() (immRef, error) {
	t, ok := c.peek()
	if !ok {
		return immRef{}, newError(c.pos, "expected immediate operand")
	}
	switch t.Type {
	case TokenNumber:
		c.next()
		v, err := parseNumber(t.Literal)
		if err != nil {
			return immRef{}, newError(c.pos, "%s", err)
		}
		return immRef{kind: immLiteral, value: v}, nil
	case TokenPercent:
		c.next()
		name, err := c.expect(TokenIdentifier, "label name after '%'")
		if err != nil {
			return immRef{}, err
		}
		return immRef{kind: immAbsoluteLabel, label: name.Literal}, nil
	case TokenDollar:
		c.next()
		name, err := c.expect(TokenIdentifier, "label name after '$'")
		if err != nil {
			return immRef{}, err
		}
		return immRef{kind: immRelativeLabel, label: name.Literal}, nil
	default:
		return immRef{}, newError(c.pos, "invalid immediate operand %q", t.Literal)
	}
}

// parseLine parses one already-tokenized, comment-stripped source
// line into an optional label and an optional placeholder item.
func parseLine(toks []Token, pos Position) (label string, it *item, err error) {
	if len(toks) == 0 {
		return "", nil, nil
	}

	if toks[0].Type == TokenIdentifier && len(toks) > 1 && toks[1].Type == TokenColon {
		label = toks[0].Literal
		toks = toks[2:]
	}
	if len(toks) == 0 {
		return label, nil, nil
	}

	c := &cursor{toks: toks, pos: pos}
	mnemonicTok, err := c.expect(TokenIdentifier, "mnemonic")
	if err != nil {
		return "", nil, err
	}
	mnemonic := strings.ToLower(mnemonicTok.Literal)

	if mnemonic == "bytes" {
		strTok, err := c.expect(TokenString, "string literal after 'bytes'")
		if err != nil {
			return "", nil, err
		}
		return label, &item{kind: itemBytes, pos: pos, raw: processEscapes(strTok.Literal)}, nil
	}

	entry, ok := mnemonicTable[mnemonic]
	if !ok {
		return "", nil, newError(pos, "unknown mnemonic %q", mnemonicTok.Literal)
	}

	it, err = parseOperands(c, entry, pos)
	if err != nil {
		return "", nil, err
	}
	return label, it, nil
}

func parseOperands(c *cursor, entry mnemonicEntry, pos Position) (*item, error) {
	it := &item{kind: itemInstruction, pos: pos, op: entry.op, shape: isa.ShapeOf(entry.op)}

	switch entry.syntax {
	case synRRR:
		rd, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		rs1, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		rs2, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		it.rd, it.rs1, it.rs2 = rd, rs1, rs2

	case synRR:
		rd, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		rs2, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		it.rd, it.rs1, it.rs2 = rd, rd, rs2

	case synRRI:
		rd, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		rs1, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		imm, err := c.parseImm()
		if err != nil {
			return nil, err
		}
		it.rd, it.rs1, it.imm = rd, rs1, imm

	case synRI:
		rd, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		imm, err := c.parseImm()
		if err != nil {
			return nil, err
		}
		it.rd, it.rs1, it.imm = rd, rd, imm

	case synSRI:
		rs1, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		rs2, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		imm, err := c.parseImm()
		if err != nil {
			return nil, err
		}
		it.rs1, it.rs2, it.imm = rs1, rs2, imm

	case synUI:
		rd, err := c.parseRegister()
		if err != nil {
			return nil, err
		}
		if err := c.expectComma(); err != nil {
			return nil, err
		}
		imm, err := c.parseImm()
		if err != nil {
			return nil, err
		}
		it.rd, it.imm = rd, imm

	case synImmOnly:
		imm, err := c.parseImm()
		if err != nil {
			return nil, err
		}
		it.imm = imm

	case synNone:
		// no operands
	}

	if !c.atEnd() {
		t, _ := c.peek()
		return nil, newError(pos, "unexpected trailing token %q", t.Literal)
	}
	return it, nil
}
