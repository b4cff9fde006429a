// Package vm provides the SAP virtual machine.
package vm

import (
	"fmt"

	"github.com/sarchlab/sapsim/insts"
)

// resolveValue produces the readable value for an instruction's
// (addressing mode, operand) pair.
func (v *VM) resolveValue(inst insts.Instruction) (insts.Word, *MachineError) {
	if inst.Mode == insts.ModeImmediate {
		return inst.Imm(), nil
	}
	addr, err := v.resolveAddr(inst)
	if err != nil {
		return 0, err
	}
	return v.mem.At(addr), nil
}

// resolveAddr produces the writable address for an instruction's
// (addressing mode, operand) pair. Immediate mode has no address, so a
// store through it is a fault.
func (v *VM) resolveAddr(inst insts.Instruction) (uint16, *MachineError) {
	switch inst.Mode {
	case insts.ModeImmediate:
		return 0, v.fault(ErrStoreToImmediate, "")
	case insts.ModeDirect:
		return v.checkAddr(int(inst.Operand))
	case insts.ModeIndirect:
		// One level of pointer chasing; both the pointer cell and the
		// address it holds must be valid.
		ptrAddr, err := v.checkAddr(int(inst.Operand))
		if err != nil {
			return 0, err
		}
		return v.checkAddr(int(v.mem.At(ptrAddr)))
	case insts.ModeIndexed:
		return v.checkAddr(int(inst.Operand) + int(v.cpu.X))
	default:
		return 0, v.fault(ErrInvalidMode, inst.Mode.String())
	}
}

// checkAddr validates an address against [0, MemorySize). The arithmetic
// is done in int so an out-of-range indexed sum or negative pointer is
// reported as-is rather than silently wrapped.
func (v *VM) checkAddr(addr int) (uint16, *MachineError) {
	if addr < 0 || addr >= MemorySize {
		return 0, v.fault(ErrInvalidAddress, fmt.Sprintf("address %d", addr))
	}
	return uint16(addr), nil
}
