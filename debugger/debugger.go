// Package debugger provides a line-oriented debug driver for the SAP
// virtual machine. It reads commands from an input stream, drives the
// machine through step/run/breakpoint/trace operations, and prints
// human-readable results, distinguishing the four step outcomes.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/sarchlab/sapsim/loader"
	"github.com/sarchlab/sapsim/vm"
)

// defaultRunBudget bounds a bare "run" command so a looping program stays
// interruptible: the machine returns to Stopped and "run" can be issued
// again.
const defaultRunBudget = 1_000_000

// Debugger drives a VM from a command stream.
type Debugger struct {
	machine *vm.VM
	in      *bufio.Scanner
	out     io.Writer
	prompt  bool
}

// New creates a debugger reading commands from in and reporting on out.
// The prompt is printed only when in is an interactive terminal.
func New(machine *vm.VM, in io.Reader, out io.Writer) *Debugger {
	d := &Debugger{
		machine: machine,
		in:      bufio.NewScanner(in),
		out:     out,
	}
	if f, ok := in.(*os.File); ok {
		d.prompt = term.IsTerminal(int(f.Fd()))
	}
	machine.SetDebug(true)
	return d
}

// Run reads and executes commands until quit or end of input.
func (d *Debugger) Run() error {
	for {
		if d.prompt {
			fmt.Fprint(d.out, "(sap) ")
		}
		if !d.in.Scan() {
			return d.in.Err()
		}
		fields := strings.Fields(d.in.Text())
		if len(fields) == 0 {
			continue
		}
		if d.dispatch(fields) {
			return nil
		}
	}
}

// dispatch runs one command. It returns true when the session should end.
func (d *Debugger) dispatch(fields []string) bool {
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help", "h", "?":
		d.printHelp()
	case "step", "s":
		d.cmdStep(args)
	case "run", "r":
		d.cmdRun(args)
	case "regs":
		fmt.Fprintln(d.out, d.machine.Snapshot())
	case "mem":
		d.cmdMem(args)
	case "disasm", "d":
		d.cmdDisasm(args)
	case "break", "b":
		d.cmdBreak(args)
	case "delete":
		d.cmdDelete(args)
	case "breaks":
		d.cmdBreaks()
	case "trace":
		d.cmdTrace(args)
	case "load":
		d.cmdLoad(args)
	case "reset":
		d.machine.Reset()
		fmt.Fprintln(d.out, "machine reset")
	case "quit", "q", "exit":
		return true
	default:
		fmt.Fprintf(d.out, "unknown command %q; try help\n", cmd)
	}
	return false
}

func (d *Debugger) printHelp() {
	fmt.Fprint(d.out, `commands:
  step [n]        execute n instructions (default 1)
  run [n]         run up to n cycles (default 1000000)
  regs            show registers and flags
  mem start [n]   dump n memory words (default 8)
  disasm [a [n]]  disassemble n words at a (default pc, 8)
  break addr      set a breakpoint
  delete addr     remove a breakpoint
  breaks          list enabled breakpoints
  trace on|off    toggle per-instruction tracing
  load path       load a word image at address 0
  reset           reset the machine (breakpoints survive)
  quit            leave the debugger
`)
}

func (d *Debugger) cmdStep(args []string) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			fmt.Fprintf(d.out, "bad count %q\n", args[0])
			return
		}
		n = v
	}

	for i := 0; i < n; i++ {
		res := d.machine.Step()
		d.report(res)
		if res.Outcome != vm.OutcomeOK {
			return
		}
	}
	fmt.Fprintln(d.out, d.machine.Snapshot())
}

func (d *Debugger) cmdRun(args []string) {
	budget := uint64(defaultRunBudget)
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil || v == 0 {
			fmt.Fprintf(d.out, "bad cycle budget %q\n", args[0])
			return
		}
		budget = v
	}

	res := d.machine.Run(budget)
	if res.Outcome == vm.OutcomeOK {
		fmt.Fprintf(d.out, "cycle budget exhausted after %d cycles; stopped, resumable\n",
			d.machine.CycleCount())
		return
	}
	d.report(res)
}

// report prints the outcome of a step or run. Each outcome needs a
// different follow-up, so each is worded distinctly.
func (d *Debugger) report(res vm.StepResult) {
	switch res.Outcome {
	case vm.OutcomeHalt:
		fmt.Fprintf(d.out, "halted with exit code %d\n", res.ExitCode)
	case vm.OutcomeError:
		fmt.Fprintf(d.out, "error: %v\n", res.Err)
	case vm.OutcomeBreakpoint:
		hits := uint64(0)
		for _, bp := range d.machine.Breakpoints() {
			if bp.Addr == res.BreakpointAddr {
				hits = bp.HitCount
			}
		}
		fmt.Fprintf(d.out, "breakpoint at %04d (hits %d)\n", res.BreakpointAddr, hits)
	}
}

func (d *Debugger) cmdMem(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(d.out, "usage: mem start [count]")
		return
	}
	start, ok := d.parseAddr(args[0])
	if !ok {
		return
	}
	count := 8
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			fmt.Fprintf(d.out, "bad count %q\n", args[1])
			return
		}
		count = v
	}

	for i, w := range d.machine.Memory().Range(start, count) {
		fmt.Fprintf(d.out, "%04d  %04X  %d\n", int(start)+i, uint16(w), w)
	}
}

func (d *Debugger) cmdDisasm(args []string) {
	start := d.machine.Snapshot().CPU.PC
	count := 8
	if len(args) > 0 {
		v, ok := d.parseAddr(args[0])
		if !ok {
			return
		}
		start = v
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			fmt.Fprintf(d.out, "bad count %q\n", args[1])
			return
		}
		count = v
	}

	for _, line := range d.machine.Disassemble(start, count) {
		fmt.Fprintln(d.out, line)
	}
}

func (d *Debugger) cmdBreak(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(d.out, "usage: break addr")
		return
	}
	addr, ok := d.parseAddr(args[0])
	if !ok {
		return
	}
	if err := d.machine.AddBreakpoint(addr); err != nil {
		fmt.Fprintf(d.out, "%v\n", err)
		return
	}
	fmt.Fprintf(d.out, "breakpoint set at %04d\n", addr)
}

func (d *Debugger) cmdDelete(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(d.out, "usage: delete addr")
		return
	}
	addr, ok := d.parseAddr(args[0])
	if !ok {
		return
	}
	if err := d.machine.RemoveBreakpoint(addr); err != nil {
		fmt.Fprintf(d.out, "%v\n", err)
		return
	}
	fmt.Fprintf(d.out, "breakpoint removed at %04d\n", addr)
}

func (d *Debugger) cmdBreaks() {
	bps := d.machine.Breakpoints()
	if len(bps) == 0 {
		fmt.Fprintln(d.out, "no breakpoints")
		return
	}
	for _, bp := range bps {
		fmt.Fprintf(d.out, "%04d  hits=%d\n", bp.Addr, bp.HitCount)
	}
}

func (d *Debugger) cmdTrace(args []string) {
	if len(args) == 0 {
		state := "off"
		if d.machine.Tracing() {
			state = "on"
		}
		fmt.Fprintf(d.out, "trace is %s\n", state)
		return
	}
	switch args[0] {
	case "on":
		d.machine.SetTracing(true)
		fmt.Fprintln(d.out, "trace on")
	case "off":
		d.machine.SetTracing(false)
		fmt.Fprintln(d.out, "trace off")
	default:
		fmt.Fprintln(d.out, "usage: trace on|off")
	}
}

func (d *Debugger) cmdLoad(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(d.out, "usage: load path")
		return
	}
	words, err := loader.Load(args[0])
	if err != nil {
		fmt.Fprintf(d.out, "%v\n", err)
		return
	}
	if err := d.machine.LoadProgram(0, words); err != nil {
		fmt.Fprintf(d.out, "%v\n", err)
		return
	}
	fmt.Fprintf(d.out, "loaded %d words from %s\n", len(words), args[0])
}

// parseAddr accepts decimal or 0x-prefixed addresses and checks memory
// bounds.
func (d *Debugger) parseAddr(s string) (uint16, bool) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil || v >= vm.MemorySize {
		fmt.Fprintf(d.out, "bad address %q\n", s)
		return 0, false
	}
	return uint16(v), true
}
