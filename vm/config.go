// Package vm provides the SAP virtual machine.
package vm

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds machine configuration parameters.
type Config struct {
	// StackTop is the initial call-stack pointer. The stack grows
	// downward from here.
	StackTop uint16 `json:"stack_top"`

	// MaxBreakpoints caps the breakpoint table.
	MaxBreakpoints int `json:"max_breakpoints"`
}

// DefaultConfig returns the standard machine configuration: the stack
// starts at the top word of memory and the breakpoint table holds 32
// entries.
func DefaultConfig() Config {
	return Config{
		StackTop:       MemorySize - 1,
		MaxBreakpoints: 32,
	}
}

// LoadConfig reads a machine configuration from a JSON file. Fields
// absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration describes a runnable machine.
func (c Config) Validate() error {
	if int(c.StackTop) >= MemorySize {
		return fmt.Errorf("stack top %d outside memory of %d words",
			c.StackTop, MemorySize)
	}
	if c.MaxBreakpoints <= 0 {
		return fmt.Errorf("max breakpoints must be positive, got %d",
			c.MaxBreakpoints)
	}
	return nil
}
