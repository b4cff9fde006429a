// Package main provides the entry point for sapsim.
// Sapsim is a bit-exact SAP virtual machine with a debugger.
//
// For the full CLI, use: go run ./cmd/sapsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("Sapsim - SAP Virtual Machine")
	fmt.Println("")
	fmt.Println("Usage: sapsim [options] <program.sap>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -debug     Start the interactive debugger")
	fmt.Println("  -trace     Print a trace line per instruction")
	fmt.Println("  -cycles    Cycle budget for a run")
	fmt.Println("  -config    Path to machine configuration JSON file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/sapsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/sapsim' instead.")
	}
}
