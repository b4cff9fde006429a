// Package loader reads and writes SAP word images.
//
// An image is the ordered sequence of 16-bit memory words, big-endian,
// written and read verbatim with no header. Programs are loaded at the
// origin the caller chooses, conventionally address zero.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/sapsim/insts"
	"github.com/sarchlab/sapsim/vm"
)

// Image errors.
var (
	ErrOddImage    = errors.New("image is not a whole number of words")
	ErrImageTooBig = errors.New("image does not fit in memory")
)

// Load reads a word image from a file.
func Load(path string) ([]insts.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Read reads a word image from r until EOF.
func Read(r io.Reader) ([]insts.Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddImage, len(data))
	}
	if len(data)/2 > vm.MemorySize {
		return nil, fmt.Errorf("%w: %d words, memory holds %d",
			ErrImageTooBig, len(data)/2, vm.MemorySize)
	}

	words := make([]insts.Word, len(data)/2)
	for i := range words {
		words[i] = insts.Word(binary.BigEndian.Uint16(data[2*i:]))
	}
	return words, nil
}

// Save writes a word image to a file.
func Save(path string, words []insts.Word) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, words); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Write writes a word image to w.
func Write(w io.Writer, words []insts.Word) error {
	if len(words) > vm.MemorySize {
		return fmt.Errorf("%w: %d words, memory holds %d",
			ErrImageTooBig, len(words), vm.MemorySize)
	}

	buf := make([]byte, 2*len(words))
	for i, word := range words {
		binary.BigEndian.PutUint16(buf[2*i:], uint16(word))
	}
	_, err := w.Write(buf)
	return err
}
