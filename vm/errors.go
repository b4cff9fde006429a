// Package vm provides the SAP virtual machine.
package vm

import (
	"errors"
	"fmt"
)

// Execution faults. Every fault is fatal to the current run: the machine
// transitions to StateError and performs no further memory access until
// Reset.
var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidMode      = errors.New("invalid addressing mode")
	ErrStoreToImmediate = errors.New("cannot store to immediate")
	ErrDivideByZero     = errors.New("division by zero")
	ErrStackOverflow    = errors.New("stack overflow")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrInvalidOpcode    = errors.New("invalid opcode")
	ErrPCOutOfBounds    = errors.New("program counter out of bounds")
)

// Breakpoint management errors.
var (
	ErrBreakpointExists    = errors.New("breakpoint already set")
	ErrBreakpointTableFull = errors.New("breakpoint table full")
	ErrBreakpointNotFound  = errors.New("no breakpoint at address")
)

// MachineError records an execution fault together with the program
// counter of the instruction that raised it.
type MachineError struct {
	// Err is one of the fault sentinels above.
	Err error

	// PC is the address of the faulting instruction.
	PC uint16

	// Detail describes the offending value, such as the out-of-range
	// address.
	Detail string
}

func (e *MachineError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at pc %d", e.Err, e.PC)
	}
	return fmt.Sprintf("%v at pc %d: %s", e.Err, e.PC, e.Detail)
}

func (e *MachineError) Unwrap() error {
	return e.Err
}
