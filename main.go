// Package main provides the entry point for mipssim.
// mipssim is a single-cycle MIPS processor simulator.
//
// For the full CLI, use: go run ./cmd/mipssim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mipssim - Single-Cycle MIPS Simulator")
	fmt.Println("")
	fmt.Println("Usage: mipssim [options] <program.{elf,hex,dat,bin}>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to simulator configuration JSON file")
	fmt.Println("  -base      Load address for raw and hex images")
	fmt.Println("  -max       Maximum instructions to execute")
	fmt.Println("  -cache     Print instruction and data cache statistics")
	fmt.Println("  -demo      Run the built-in demo program")
	fmt.Println("  -v         Trace every cycle")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mipssim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mipssim' instead.")
	}
}
