// Package insts provides SAP instruction definitions, encoding, and decoding.
//
// A SAP instruction is a single 16-bit word with three fields, most
// significant first:
//   - opcode, 4 bits (16 operations)
//   - addressing mode, 2 bits (immediate, direct, indirect, indexed)
//   - operand, 10 bits (an address, or a signed two's-complement immediate)
//
// Decoding is the exact inverse of encoding, so any encoded program remains
// loadable byte for byte.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(insts.Encode(insts.OpLDA, insts.ModeImmediate, 10))
//	fmt.Printf("%s operand=%d\n", inst.Op, inst.Operand) // LDA operand=10
package insts
