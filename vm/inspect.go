// Package vm provides the SAP virtual machine.
package vm

import (
	"fmt"
)

// Snapshot is a read-only copy of machine state for display. Nothing in it
// feeds back into the machine.
type Snapshot struct {
	CPU    CPU
	State  State
	Cycles uint64
}

// Snapshot copies the current register file, state, and cycle count.
func (v *VM) Snapshot() Snapshot {
	return Snapshot{
		CPU:    *v.cpu,
		State:  v.state,
		Cycles: v.cycleCount,
	}
}

// String renders the snapshot as a two-line register/flag report.
func (s Snapshot) String() string {
	f := s.CPU.Flags
	flagBits := func(set bool, name string) string {
		if set {
			return name
		}
		return "-"
	}
	return fmt.Sprintf(
		"pc=%04d sp=%04d acc=%d x=%d ir=%04X\nflags=[%s%s%s%s] state=%s cycles=%d",
		s.CPU.PC, s.CPU.SP, s.CPU.Acc, s.CPU.X, uint16(s.CPU.IR),
		flagBits(f.Z, "Z"), flagBits(f.N, "N"), flagBits(f.C, "C"), flagBits(f.V, "V"),
		s.State, s.Cycles)
}

// Disassemble renders count instructions starting at start, one line per
// word, clamped to memory bounds.
func (v *VM) Disassemble(start uint16, count int) []string {
	words := v.mem.Range(start, count)
	lines := make([]string, 0, len(words))
	for i, w := range words {
		inst := v.decoder.Decode(w)
		lines = append(lines, fmt.Sprintf("%04d  %04X  %s",
			int(start)+i, uint16(w), inst))
	}
	return lines
}
