// Package progs provides canned SAP programs for exercising the machine.
// Every program halts through the RTS-with-exit-code convention.
package progs

import "github.com/sarchlab/sapsim/insts"

// Arithmetic computes (10 + 5) * 2 in the accumulator and halts with exit
// code 1.
func Arithmetic() []insts.Word {
	return []insts.Word{
		insts.Encode(insts.OpLDA, insts.ModeImmediate, 10),
		insts.Encode(insts.OpADD, insts.ModeImmediate, 5),
		insts.Encode(insts.OpMUL, insts.ModeImmediate, 2),
		insts.Encode(insts.OpRTS, insts.ModeImmediate, 1),
	}
}

// CountDown loads n and decrements to zero in a JNZ loop, then halts with
// exit code 1. n must be in 1..511.
func CountDown(n uint16) []insts.Word {
	return []insts.Word{
		insts.Encode(insts.OpLDA, insts.ModeImmediate, n),
		insts.Encode(insts.OpSUB, insts.ModeImmediate, 1), // loop target
		insts.Encode(insts.OpJNZ, insts.ModeDirect, 1),
		insts.Encode(insts.OpRTS, insts.ModeImmediate, 1),
	}
}

// SubroutineDemo calls an increment subroutine once and halts with exit
// code 2, leaving 8 in the accumulator.
func SubroutineDemo() []insts.Word {
	return []insts.Word{
		insts.Encode(insts.OpLDA, insts.ModeImmediate, 7), // 0
		insts.Encode(insts.OpJSR, insts.ModeDirect, 4),    // 1
		insts.Encode(insts.OpRTS, insts.ModeImmediate, 2), // 2: halt
		insts.Encode(insts.OpNOP, insts.ModeImmediate, 0), // 3
		insts.Encode(insts.OpADD, insts.ModeImmediate, 1), // 4: subroutine
		insts.Encode(insts.OpRTS, insts.ModeImmediate, 0), // 5: return
	}
}

// AddressingDemo exercises direct, indirect, and indexed reads against a
// small data area, stores the result, and halts with exit code 1. It
// leaves 45 at address 11 (40 direct + 2 indirect + 3 indexed with X=0).
func AddressingDemo() []insts.Word {
	return []insts.Word{
		insts.Encode(insts.OpLDA, insts.ModeDirect, 8),   // 0: acc = 40
		insts.Encode(insts.OpADD, insts.ModeIndirect, 9), // 1: acc += mem[mem[9]] = 2
		insts.Encode(insts.OpADD, insts.ModeIndexed, 12), // 2: acc += mem[12+X] = 3
		insts.Encode(insts.OpSTA, insts.ModeDirect, 11),  // 3: mem[11] = 45
		insts.Encode(insts.OpRTS, insts.ModeImmediate, 1),
		0, 0, 0, // padding
		40, // 8: data
		10, // 9: pointer to 10
		2,  // 10: data
		0,  // 11: result
		3,  // 12: data
	}
}
