// Package vm provides the SAP virtual machine.
package vm

import (
	"fmt"

	"github.com/sarchlab/sapsim/insts"
)

// MemorySize is the number of words in the machine's address space. The
// same space holds program, data, and the call stack.
const MemorySize = 1024

// Memory is the machine's linearly addressed word storage.
type Memory struct {
	words [MemorySize]insts.Word
}

// NewMemory creates a zeroed memory.
func NewMemory() *Memory {
	return &Memory{}
}

// At reads the word at addr. addr must be below MemorySize; the execution
// engine validates every address before it reaches memory.
func (m *Memory) At(addr uint16) insts.Word {
	return m.words[addr]
}

// Set writes the word at addr. addr must be below MemorySize.
func (m *Memory) Set(addr uint16, w insts.Word) {
	m.words[addr] = w
}

// LoadWords copies words into memory starting at origin.
func (m *Memory) LoadWords(origin uint16, words []insts.Word) error {
	if int(origin)+len(words) > MemorySize {
		return fmt.Errorf("program of %d words at origin %d exceeds memory size %d",
			len(words), origin, MemorySize)
	}
	copy(m.words[origin:], words)
	return nil
}

// Range returns a copy of the words in [start, start+count). It clamps the
// range to memory bounds, for use by read-only presentation layers.
func (m *Memory) Range(start uint16, count int) []insts.Word {
	if int(start) >= MemorySize || count <= 0 {
		return nil
	}
	end := int(start) + count
	if end > MemorySize {
		end = MemorySize
	}
	out := make([]insts.Word, end-int(start))
	copy(out, m.words[start:end])
	return out
}
