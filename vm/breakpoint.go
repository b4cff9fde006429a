// Package vm provides the SAP virtual machine.
package vm

import "fmt"

// Breakpoint is a watched address. While enabled, stepping at its address
// reports a breakpoint before the instruction there executes.
type Breakpoint struct {
	// Addr is the watched address.
	Addr uint16

	// Enabled is cleared instead of deleting the slot when the
	// breakpoint is removed.
	Enabled bool

	// HitCount is incremented every time execution reaches Addr while
	// the breakpoint is enabled.
	HitCount uint64

	// Condition is stored for image compatibility; it is never
	// evaluated.
	Condition string
}

// AddBreakpoint sets a breakpoint at addr. A disabled slot is reused when
// one exists; otherwise the table grows up to the configured cap.
func (v *VM) AddBreakpoint(addr uint16) error {
	if int(addr) >= MemorySize {
		return fmt.Errorf("%w: address %d", ErrInvalidAddress, addr)
	}
	for i := range v.breakpoints {
		if v.breakpoints[i].Enabled && v.breakpoints[i].Addr == addr {
			return fmt.Errorf("%w: %d", ErrBreakpointExists, addr)
		}
	}
	for i := range v.breakpoints {
		if !v.breakpoints[i].Enabled {
			v.breakpoints[i] = Breakpoint{Addr: addr, Enabled: true}
			return nil
		}
	}
	if len(v.breakpoints) >= v.cfg.MaxBreakpoints {
		return fmt.Errorf("%w: limit %d", ErrBreakpointTableFull, v.cfg.MaxBreakpoints)
	}
	v.breakpoints = append(v.breakpoints, Breakpoint{Addr: addr, Enabled: true})
	return nil
}

// RemoveBreakpoint disables the enabled breakpoint at addr. The slot is
// kept for reuse rather than deleted.
func (v *VM) RemoveBreakpoint(addr uint16) error {
	for i := range v.breakpoints {
		if v.breakpoints[i].Enabled && v.breakpoints[i].Addr == addr {
			v.breakpoints[i].Enabled = false
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrBreakpointNotFound, addr)
}

// Breakpoints returns a copy of the enabled breakpoints with their hit
// counts.
func (v *VM) Breakpoints() []Breakpoint {
	var out []Breakpoint
	for _, bp := range v.breakpoints {
		if bp.Enabled {
			out = append(out, bp)
		}
	}
	return out
}

// breakpointAt returns the enabled breakpoint at addr, if any.
func (v *VM) breakpointAt(addr uint16) *Breakpoint {
	for i := range v.breakpoints {
		if v.breakpoints[i].Enabled && v.breakpoints[i].Addr == addr {
			return &v.breakpoints[i]
		}
	}
	return nil
}
