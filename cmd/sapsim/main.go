// Package main provides the entry point for sapsim, a bit-exact SAP
// virtual machine with a breakpoint/trace debugger.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/sapsim/debugger"
	"github.com/sarchlab/sapsim/loader"
	"github.com/sarchlab/sapsim/vm"
)

var (
	debug      = flag.Bool("debug", false, "Start the interactive debugger")
	trace      = flag.Bool("trace", false, "Print a trace line per instruction")
	cycles     = flag.Uint64("cycles", 1_000_000, "Cycle budget for a run")
	entry      = flag.Uint("entry", 0, "Load address and initial pc")
	configPath = flag.String("config", "", "Path to machine configuration JSON file")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 && !*debug {
		fmt.Fprintf(os.Stderr, "Usage: sapsim [options] <program.sap>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := vm.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = vm.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	machine := vm.NewVM(
		vm.WithConfig(cfg),
		vm.WithTracing(*trace),
	)

	if flag.NArg() > 0 {
		programPath := flag.Arg(0)
		words, err := loader.Load(programPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
			os.Exit(1)
		}
		if err := machine.LoadProgram(uint16(*entry), words); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Printf("Loaded: %s\n", programPath)
			fmt.Printf("Words: %d at %d\n", len(words), *entry)
		}
	}

	if *debug {
		if err := debugger.New(machine, os.Stdin, os.Stdout).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Debugger error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	res := machine.Run(*cycles)

	if *verbose {
		fmt.Printf("\nState: %s\n", machine.State())
		fmt.Printf("Cycles executed: %d\n", machine.CycleCount())
	}

	switch res.Outcome {
	case vm.OutcomeHalt:
		if *verbose {
			fmt.Printf("Exit code: %d\n", res.ExitCode)
		}
		os.Exit(int(res.ExitCode))
	case vm.OutcomeError:
		fmt.Fprintf(os.Stderr, "Execution error: %v\n", res.Err)
		os.Exit(1)
	case vm.OutcomeBreakpoint:
		fmt.Fprintf(os.Stderr,
			"Stopped at breakpoint %d; use -debug for interactive inspection\n",
			res.BreakpointAddr)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Cycle budget of %d exhausted; machine stopped\n", *cycles)
	}
}
