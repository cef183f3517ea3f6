package asm

import "github.com/jamsch0/uni-project-svm/isa"

// syntax describes the operand grammar a mnemonic expects, which is
// finer-grained than isa.Shape: compressed two-address forms (CR/CI)
// take fewer operands than their wide counterparts even though both
// decode to the same isa.Shape.
type syntax int

const (
	synRRR     syntax = iota // rd, rs1, rs2
	synRR                    // rd, rs2 (rs1 = rd)
	synRRI                   // rd, rs1, imm
	synRI                    // rd, imm (rs1 = rd)
	synSRI                   // rs1, rs2, imm
	synUI                    // rd, imm
	synImmOnly               // imm
	synNone                  // (no operands)
)

type mnemonicEntry struct {
	op     isa.OpCode
	syntax syntax
}

var mnemonicTable = map[string]mnemonicEntry{
	"add": {isa.ADD, synRRR}, "sub": {isa.SUB, synRRR},
	"and": {isa.AND, synRRR}, "or": {isa.OR, synRRR}, "xor": {isa.XOR, synRRR},
	"sll": {isa.SLL, synRRR}, "srl": {isa.SRL, synRRR}, "sra": {isa.SRA, synRRR},

	"c.add": {isa.CADD, synRR}, "c.sub": {isa.CSUB, synRR},
	"c.and": {isa.CAND, synRR}, "c.or": {isa.COR, synRR}, "c.xor": {isa.CXOR, synRR},
	"c.sll": {isa.CSLL, synRR}, "c.srl": {isa.CSRL, synRR}, "c.sra": {isa.CSRA, synRR},
	"mv": {isa.CMV, synRR},

	"addi": {isa.ADDI, synRRI}, "andi": {isa.ANDI, synRRI}, "ori": {isa.ORI, synRRI},
	"xori": {isa.XORI, synRRI}, "slli": {isa.SLLI, synRRI}, "srli": {isa.SRLI, synRRI},
	"srai": {isa.SRAI, synRRI}, "load": {isa.LOAD, synRRI}, "c.load": {isa.CLOAD, synRRI},

	"li": {isa.LI, synRI}, "bez": {isa.BEZ, synRI}, "bnz": {isa.BNZ, synRI},
	"c.addi": {isa.CADDI, synRI}, "c.andi": {isa.CANDI, synRI}, "c.ori": {isa.CORI, synRI},
	"c.xori": {isa.CXORI, synRI}, "c.slli": {isa.CSLLI, synRI}, "c.srli": {isa.CSRLI, synRI},
	"c.srai": {isa.CSRAI, synRI}, "c.li": {isa.CLI, synRI},
	"c.bez": {isa.CBEZ, synRI}, "c.bnz": {isa.CBNZ, synRI},

	"store": {isa.STORE, synSRI}, "c.store": {isa.CSTORE, synSRI},
	"beq": {isa.BEQ, synSRI}, "bne": {isa.BNE, synSRI},
	"blt": {isa.BLT, synSRI}, "bge": {isa.BGE, synSRI},
	"blt.u": {isa.BLTU, synSRI}, "bge.u": {isa.BGEU, synSRI},

	"lui": {isa.LUI, synUI}, "c.lui": {isa.CLUI, synUI},

	"call": {isa.CALL, synImmOnly}, "c.call": {isa.CCALL, synImmOnly},

	"break": {isa.BREAK, synNone}, "c.break": {isa.CBREAK, synNone},
}
