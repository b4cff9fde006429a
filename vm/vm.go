// Package vm provides the SAP virtual machine: a 16-bit accumulator
// machine with 1024 words of memory, four addressing modes, a downward
// call stack, and breakpoint/trace instrumentation.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/sapsim/insts"
)

// State represents the machine's execution state.
type State uint8

// Machine states. Halted and Error are terminal until an explicit Reset;
// Breakpoint is terminal only while the breakpoint stays enabled, since a
// step at an unchanged pc re-triggers it.
const (
	StateStopped State = iota
	StateRunning
	StateHalted
	StateError
	StateBreakpoint
)

var stateNames = [...]string{"stopped", "running", "halted", "error", "breakpoint"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state%d", uint8(s))
}

// Outcome classifies the result of a single step. Each outcome requires a
// different follow-up from the caller: continue, report the exit code,
// surface the error, or pause for inspection.
type Outcome uint8

// Step outcomes.
const (
	OutcomeOK Outcome = iota
	OutcomeHalt
	OutcomeError
	OutcomeBreakpoint
)

var outcomeNames = [...]string{"ok", "halt", "error", "breakpoint"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("outcome%d", uint8(o))
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Outcome classifies the step.
	Outcome Outcome

	// ExitCode is the halt code when Outcome is OutcomeHalt.
	ExitCode insts.Word

	// Err is the fault when Outcome is OutcomeError.
	Err error

	// BreakpointAddr is the triggering address when Outcome is
	// OutcomeBreakpoint.
	BreakpointAddr uint16
}

// VM is the SAP virtual machine. It exclusively owns its CPU, memory, and
// breakpoint table; a single step is a complete, non-preemptible unit of
// work, and nothing is shared across instances.
type VM struct {
	cpu     *CPU
	mem     *Memory
	decoder *insts.Decoder
	alu     *ALU
	cfg     Config

	state      State
	cycleCount uint64
	haltCode   insts.Word
	lastErr    *MachineError

	breakpoints []Breakpoint

	debugEnabled bool
	traceEnabled bool
	traceWriter  io.Writer

	// instPC is the address of the instruction currently executing,
	// captured before the pc advances so faults report where they
	// occurred.
	instPC uint16
}

// Option is a functional option for configuring the VM.
type Option func(*VM)

// WithConfig sets the machine configuration.
func WithConfig(cfg Config) Option {
	return func(v *VM) {
		v.cfg = cfg
	}
}

// WithStackTop sets the initial call-stack pointer.
func WithStackTop(top uint16) Option {
	return func(v *VM) {
		v.cfg.StackTop = top
	}
}

// WithTraceWriter sets the destination for trace lines.
func WithTraceWriter(w io.Writer) Option {
	return func(v *VM) {
		v.traceWriter = w
	}
}

// WithTracing enables or disables per-instruction tracing.
func WithTracing(enabled bool) Option {
	return func(v *VM) {
		v.traceEnabled = enabled
	}
}

// NewVM creates a new machine in the Stopped state with zeroed registers
// and memory.
func NewVM(opts ...Option) *VM {
	v := &VM{
		cpu:         &CPU{},
		mem:         NewMemory(),
		decoder:     insts.NewDecoder(),
		cfg:         DefaultConfig(),
		traceWriter: os.Stdout,
	}

	for _, opt := range opts {
		opt(v)
	}

	v.cpu.SP = v.cfg.StackTop
	v.alu = NewALU(v.cpu)

	return v
}

// CPU returns the machine's register file.
func (v *VM) CPU() *CPU {
	return v.cpu
}

// Memory returns the machine's memory.
func (v *VM) Memory() *Memory {
	return v.mem
}

// State returns the machine's execution state.
func (v *VM) State() State {
	return v.state
}

// CycleCount returns the number of instructions executed since the last
// reset.
func (v *VM) CycleCount() uint64 {
	return v.cycleCount
}

// ExitCode returns the halt code. It is meaningful only in StateHalted.
func (v *VM) ExitCode() insts.Word {
	return v.haltCode
}

// LastError returns the recorded fault, or nil if none occurred.
func (v *VM) LastError() *MachineError {
	return v.lastErr
}

// SetTracing enables or disables per-instruction tracing.
func (v *VM) SetTracing(enabled bool) {
	v.traceEnabled = enabled
}

// Tracing reports whether tracing is enabled.
func (v *VM) Tracing() bool {
	return v.traceEnabled
}

// SetDebug marks the machine as driven by a debugger.
func (v *VM) SetDebug(enabled bool) {
	v.debugEnabled = enabled
}

// Debug reports whether a debugger is driving the machine.
func (v *VM) Debug() bool {
	return v.debugEnabled
}

// LoadProgram copies encoded words into memory at entry and points the
// program counter there. The machine returns to the Stopped state.
func (v *VM) LoadProgram(entry uint16, words []insts.Word) error {
	if err := v.mem.LoadWords(entry, words); err != nil {
		return err
	}
	v.cpu.PC = entry
	v.state = StateStopped
	return nil
}

// Reset returns the machine to its initial state: zeroed registers and
// memory, Stopped, cycle count zero, no recorded error. The breakpoint
// table survives with its hit counts cleared, so a debugging session
// outlives reloading the program.
func (v *VM) Reset() {
	v.cpu = &CPU{SP: v.cfg.StackTop}
	v.mem = NewMemory()
	v.alu = NewALU(v.cpu)
	v.state = StateStopped
	v.cycleCount = 0
	v.haltCode = 0
	v.lastErr = nil
	for i := range v.breakpoints {
		v.breakpoints[i].HitCount = 0
	}
}

// Step executes a single instruction.
//
// In a terminal state it returns the terminal result without touching
// registers or memory. If an enabled breakpoint watches the current pc,
// the breakpoint is reported before anything is fetched, so the
// instruction there does not run; stepping again at the same pc triggers
// it again until it is removed.
func (v *VM) Step() StepResult {
	switch v.state {
	case StateHalted:
		return StepResult{Outcome: OutcomeHalt, ExitCode: v.haltCode}
	case StateError:
		return StepResult{Outcome: OutcomeError, Err: v.lastErr}
	}

	if bp := v.breakpointAt(v.cpu.PC); bp != nil {
		bp.HitCount++
		v.state = StateBreakpoint
		return StepResult{Outcome: OutcomeBreakpoint, BreakpointAddr: bp.Addr}
	}

	v.instPC = v.cpu.PC
	if int(v.cpu.PC) >= MemorySize {
		return v.fail(ErrPCOutOfBounds, fmt.Sprintf("pc %d", v.cpu.PC))
	}

	// Fetch, advance, count.
	raw := v.mem.At(v.cpu.PC)
	v.cpu.IR = raw
	v.cpu.PC++
	v.cycleCount++

	inst := v.decoder.Decode(raw)

	if v.traceEnabled {
		v.traceLine(inst)
	}

	return v.execute(inst)
}

// Run sets the machine running and steps it until a terminal outcome, a
// breakpoint, or the cycle budget runs out. Budget exhaustion is not an
// error: the machine returns to Stopped and a later Run resumes where it
// left off.
func (v *VM) Run(maxCycles uint64) StepResult {
	switch v.state {
	case StateHalted:
		return StepResult{Outcome: OutcomeHalt, ExitCode: v.haltCode}
	case StateError:
		return StepResult{Outcome: OutcomeError, Err: v.lastErr}
	}

	v.state = StateRunning

	for i := uint64(0); i < maxCycles; i++ {
		res := v.Step()
		if res.Outcome != OutcomeOK {
			return res
		}
	}

	v.state = StateStopped
	return StepResult{Outcome: OutcomeOK}
}

// execute dispatches a decoded instruction. The 4-bit opcode field makes
// the set closed; the default case only fires if a decoded value is
// corrupted.
func (v *VM) execute(inst insts.Instruction) StepResult {
	switch inst.Op {
	case insts.OpNOP:

	case insts.OpLDA:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.alu.Load(val)

	case insts.OpSTA:
		addr, err := v.resolveAddr(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.mem.Set(addr, v.cpu.Acc)

	case insts.OpADD:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.alu.Add(val)

	case insts.OpSUB:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.alu.Sub(val)

	case insts.OpMUL:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.alu.Mul(val)

	case insts.OpDIV:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		if val == 0 {
			return v.fail(ErrDivideByZero, "")
		}
		v.alu.Div(val)

	case insts.OpAND:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.alu.And(val)

	case insts.OpOR:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.alu.Or(val)

	case insts.OpXOR:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.alu.Xor(val)

	case insts.OpCMP:
		val, err := v.resolveValue(inst)
		if err != nil {
			return v.failWith(err)
		}
		v.alu.Cmp(val)

	case insts.OpJMP:
		// Jump targets use the operand directly, not the resolver.
		v.cpu.PC = inst.Operand

	case insts.OpJZ:
		if v.cpu.Flags.Z {
			v.cpu.PC = inst.Operand
		}

	case insts.OpJNZ:
		if !v.cpu.Flags.Z {
			v.cpu.PC = inst.Operand
		}

	case insts.OpJSR:
		return v.executeJSR(inst)

	case insts.OpRTS:
		return v.executeRTS(inst)

	default:
		return v.fail(ErrInvalidOpcode, fmt.Sprintf("opcode %X", uint8(inst.Op)))
	}

	return StepResult{Outcome: OutcomeOK}
}

// executeJSR pushes the return address and jumps to the operand. The
// return address is the already-advanced pc, i.e. the instruction after
// the JSR.
func (v *VM) executeJSR(inst insts.Instruction) StepResult {
	target, err := v.checkAddr(int(inst.Operand))
	if err != nil {
		return v.failWith(err)
	}
	if v.cpu.SP == 0 {
		return v.fail(ErrStackOverflow, "no stack room for call")
	}

	v.mem.Set(v.cpu.SP, insts.Word(v.cpu.PC))
	v.cpu.SP--
	v.cpu.PC = target

	return StepResult{Outcome: OutcomeOK}
}

// executeRTS handles the overloaded RTS operand: zero returns from a
// subroutine, anything else halts the machine with the operand as exit
// code.
func (v *VM) executeRTS(inst insts.Instruction) StepResult {
	action := inst.RTS()
	if action.Halt {
		v.state = StateHalted
		v.haltCode = action.ExitCode
		return StepResult{Outcome: OutcomeHalt, ExitCode: action.ExitCode}
	}

	if v.cpu.SP >= v.cfg.StackTop {
		return v.fail(ErrStackUnderflow, "return with no pending call")
	}

	v.cpu.SP++
	ret, err := v.checkAddr(int(v.mem.At(v.cpu.SP)))
	if err != nil {
		return v.failWith(err)
	}
	v.cpu.PC = ret

	return StepResult{Outcome: OutcomeOK}
}

// fault builds a MachineError recording the current instruction's pc.
func (v *VM) fault(sentinel error, detail string) *MachineError {
	return &MachineError{Err: sentinel, PC: v.instPC, Detail: detail}
}

// fail records a fault and moves the machine to the Error state.
func (v *VM) fail(sentinel error, detail string) StepResult {
	return v.failWith(v.fault(sentinel, detail))
}

func (v *VM) failWith(err *MachineError) StepResult {
	v.lastErr = err
	v.state = StateError
	return StepResult{Outcome: OutcomeError, Err: err}
}

// traceLine emits one trace line for the instruction about to execute:
// pc, raw word, disassembly, and an accumulator/index/stack-pointer
// snapshot. Instruction.String already omits the operand for NOP and RTS.
func (v *VM) traceLine(inst insts.Instruction) {
	fmt.Fprintf(v.traceWriter, "%04d  %04X  %-12s acc=%d x=%d sp=%d\n",
		v.instPC, uint16(inst.Raw), inst.String(),
		v.cpu.Acc, v.cpu.X, v.cpu.SP)
}
