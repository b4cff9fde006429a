// Package insts provides SAP instruction definitions, encoding, and decoding.
package insts

// Instruction word layout: opcode bits 15-12, mode bits 11-10,
// operand bits 9-0.
const (
	opcodeShift = 12
	opcodeMask  = 0xF
	modeShift   = 10
	modeMask    = 0x3
	operandMask = 0x3FF
)

// Encode packs an opcode, addressing mode, and operand into an instruction
// word. Each field is masked to its bit width before packing, so
// out-of-range inputs are silently truncated; callers are expected to pass
// validated values.
func Encode(op Op, mode AddrMode, operand uint16) Word {
	return Word((uint16(op)&opcodeMask)<<opcodeShift |
		(uint16(mode)&modeMask)<<modeShift |
		operand&operandMask)
}

// Decoder decodes SAP instruction words.
type Decoder struct{}

// NewDecoder creates a new SAP instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode unpacks a 16-bit instruction word. It is the exact inverse of
// Encode and cannot fail: every 4-bit opcode pattern names an operation.
func (d *Decoder) Decode(word Word) Instruction {
	u := uint16(word)
	return Instruction{
		Op:      Op(u >> opcodeShift & opcodeMask),
		Mode:    AddrMode(u >> modeShift & modeMask),
		Operand: u & operandMask,
		Raw:     word,
	}
}
