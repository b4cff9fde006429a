// Package insts provides SAP instruction definitions, encoding, and decoding.
package insts

import "fmt"

// Word is the machine's 16-bit signed storage unit. Memory, the
// accumulator, and encoded instructions are all Words.
type Word int16

// Op represents a SAP opcode.
type Op uint8

// SAP opcodes. The 4-bit opcode field makes this a closed set of 16
// operations; NOP occupies encoding zero so a zeroed memory word is inert.
const (
	OpNOP Op = iota
	OpLDA
	OpSTA
	OpADD
	OpSUB
	OpMUL
	OpDIV
	OpAND
	OpOR
	OpXOR
	OpCMP
	OpJMP
	OpJZ
	OpJNZ
	OpJSR
	OpRTS
)

var opNames = [...]string{
	"NOP", "LDA", "STA", "ADD", "SUB", "MUL", "DIV", "AND",
	"OR", "XOR", "CMP", "JMP", "JZ", "JNZ", "JSR", "RTS",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("OP%X", uint8(o))
}

// AddrMode represents an addressing mode.
type AddrMode uint8

// Addressing modes.
const (
	ModeImmediate AddrMode = 0 // operand is a signed 10-bit value
	ModeDirect    AddrMode = 1 // operand is a memory address
	ModeIndirect  AddrMode = 2 // operand addresses a pointer to the value
	ModeIndexed   AddrMode = 3 // operand + X register is the address
)

var modeNames = [...]string{"immediate", "direct", "indirect", "indexed"}

func (m AddrMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode%d", uint8(m))
}

// Instruction represents a decoded SAP instruction.
type Instruction struct {
	Op      Op       // Operation code
	Mode    AddrMode // Addressing mode
	Operand uint16   // Raw 10-bit operand field
	Raw     Word     // The word the instruction was decoded from
}

// Imm returns the operand as a sign-extended 10-bit two's-complement
// immediate, in the range -512..511.
func (i Instruction) Imm() Word {
	v := i.Operand & operandMask
	if v&0x200 != 0 {
		v |= 0xFC00
	}
	return Word(v)
}

// RTSAction is the decoded form of an RTS instruction. The operand field
// is overloaded: zero returns from a subroutine, any other value halts the
// machine with that value as the exit code.
type RTSAction struct {
	Halt     bool
	ExitCode Word
}

// RTS resolves the operand overload into an explicit action.
func (i Instruction) RTS() RTSAction {
	if i.Operand&operandMask == 0 {
		return RTSAction{}
	}
	return RTSAction{Halt: true, ExitCode: i.Imm()}
}

// String formats the instruction as assembly text. NOP takes no operand,
// and RTS is printed bare even when its operand carries an exit code.
func (i Instruction) String() string {
	switch i.Op {
	case OpNOP, OpRTS:
		return i.Op.String()
	}
	return i.Op.String() + " " + i.operandText()
}

// operandText renders the operand with its addressing-mode prefix.
func (i Instruction) operandText() string {
	switch i.Mode {
	case ModeImmediate:
		return fmt.Sprintf("#%d", i.Imm())
	case ModeIndirect:
		return fmt.Sprintf("@%d", i.Operand)
	case ModeIndexed:
		return fmt.Sprintf("%d,X", i.Operand)
	default:
		return fmt.Sprintf("%d", i.Operand)
	}
}
