// Package vm provides the SAP virtual machine.
package vm

import "github.com/sarchlab/sapsim/insts"

// CPU represents the SAP register file. The accumulator is the sole
// arithmetic register; X is used only by indexed addressing.
type CPU struct {
	// PC is the program counter.
	PC uint16

	// SP is the call-stack pointer. The stack holds return addresses
	// only and grows downward from the configured stack top.
	SP uint16

	// Acc is the accumulator.
	Acc insts.Word

	// X is the index register.
	X uint16

	// IR is the last fetched raw instruction word.
	IR insts.Word

	// Flags holds the condition flags.
	Flags Flags
}

// Flags represents the four condition flag bits.
type Flags struct {
	// Z is the zero flag.
	Z bool
	// N is the negative flag.
	N bool
	// C is the carry flag.
	C bool
	// V is the overflow flag. C and V are computed as the same
	// range-exceeded bit in this machine; see ALU.SetArith.
	V bool
}
