// Package vm provides the SAP virtual machine.
package vm

import (
	"math"

	"github.com/sarchlab/sapsim/insts"
)

// ALU implements the machine's arithmetic and logic operations on the
// accumulator.
type ALU struct {
	cpu *CPU
}

// NewALU creates a new ALU connected to the given CPU.
func NewALU(cpu *CPU) *ALU {
	return &ALU{cpu: cpu}
}

// Load moves a value into the accumulator: acc = v. No arithmetic occurs,
// so carry and overflow are always cleared.
func (a *ALU) Load(v insts.Word) {
	a.cpu.Acc = v
	a.SetLogic(v)
}

// Add performs acc = acc + v.
func (a *ALU) Add(v insts.Word) {
	wide := int32(a.cpu.Acc) + int32(v)
	a.cpu.Acc = insts.Word(wide)
	a.SetArith(wide)
}

// Sub performs acc = acc - v.
func (a *ALU) Sub(v insts.Word) {
	wide := int32(a.cpu.Acc) - int32(v)
	a.cpu.Acc = insts.Word(wide)
	a.SetArith(wide)
}

// Mul performs acc = acc * v.
func (a *ALU) Mul(v insts.Word) {
	wide := int32(a.cpu.Acc) * int32(v)
	a.cpu.Acc = insts.Word(wide)
	a.SetArith(wide)
}

// Div performs acc = acc / v. The caller must reject a zero divisor first;
// division by zero is a fault, never a flag state.
func (a *ALU) Div(v insts.Word) {
	wide := int32(a.cpu.Acc) / int32(v)
	a.cpu.Acc = insts.Word(wide)
	a.SetArith(wide)
}

// And performs acc = acc & v.
func (a *ALU) And(v insts.Word) {
	a.cpu.Acc &= v
	a.SetLogic(a.cpu.Acc)
}

// Or performs acc = acc | v.
func (a *ALU) Or(v insts.Word) {
	a.cpu.Acc |= v
	a.SetLogic(a.cpu.Acc)
}

// Xor performs acc = acc ^ v.
func (a *ALU) Xor(v insts.Word) {
	a.cpu.Acc ^= v
	a.SetLogic(a.cpu.Acc)
}

// Cmp computes acc - v and updates flags only; the accumulator is
// unchanged.
func (a *ALU) Cmp(v insts.Word) {
	a.SetArith(int32(a.cpu.Acc) - int32(v))
}

// SetArith updates flags from a wide intermediate result. Zero and
// negative come from the intermediate, not the truncated accumulator.
// Carry and overflow are the same computed bit: set iff the intermediate
// does not fit in a signed 16-bit word.
func (a *ALU) SetArith(wide int32) {
	outOfRange := wide < math.MinInt16 || wide > math.MaxInt16
	a.cpu.Flags = Flags{
		Z: wide == 0,
		N: wide < 0,
		C: outOfRange,
		V: outOfRange,
	}
}

// SetLogic updates flags from a bitwise result. Carry and overflow are
// always cleared.
func (a *ALU) SetLogic(result insts.Word) {
	a.cpu.Flags = Flags{
		Z: result == 0,
		N: result < 0,
	}
}
