// Package main provides the command-line harness for the MIPS single-cycle
// simulator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/mipssim/cache"
	"github.com/sarchlab/mipssim/config"
	"github.com/sarchlab/mipssim/emu"
	"github.com/sarchlab/mipssim/insts"
	"github.com/sarchlab/mipssim/loader"
)

var (
	configPath   = flag.String("config", "", "Path to simulator configuration JSON file")
	baseAddr     = flag.String("base", "", "Load address for raw and hex images (default: start_address)")
	maxInsts     = flag.Uint64("max", 0, "Maximum instructions to execute (overrides config)")
	verbose      = flag.Bool("v", false, "Trace every cycle")
	cacheProfile = flag.Bool("cache", false, "Print instruction and data cache statistics")
	demo         = flag.Bool("demo", false, "Run the built-in demo program")
)

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() < 1 && !*demo {
		fmt.Fprintf(os.Stderr, "Usage: mipssim [options] <program.{elf,hex,dat,bin}>\n")
		fmt.Fprintf(os.Stderr, "       mipssim [options] -demo\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath, *maxInsts)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	var prog *loader.Program
	if *demo {
		prog = demoProgram(cfg.StartAddress)
	} else {
		base, err := parseAddr(*baseAddr, cfg.StartAddress)
		if err != nil {
			log.WithError(err).Fatal("invalid -base")
		}
		prog, err = loader.Load(flag.Arg(0), base)
		if err != nil {
			log.WithError(err).Fatal("failed to load program")
		}
		log.WithFields(logrus.Fields{
			"path":     flag.Arg(0),
			"entry":    fmt.Sprintf("0x%08X", prog.EntryPoint),
			"segments": len(prog.Segments),
		}).Info("program loaded")
	}

	var profiler *cache.Profiler
	if *cacheProfile {
		profiler = cache.NewProfiler(cfg.ICache, cfg.DCache)
	}

	e, runErr := run(cfg, prog, log, profiler)

	if e != nil {
		printState(os.Stdout, e)
	}
	if profiler != nil {
		fmt.Println()
		_ = profiler.Report(os.Stdout)
	}

	if runErr != nil {
		log.WithError(runErr).Error("simulation stopped")
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, if any, applies command-line
// overrides and validates the result.
func loadConfig(path string, maxInstructions uint64) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if maxInstructions > 0 {
		cfg.MaxInstructions = maxInstructions
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseAddr parses a decimal or 0x-prefixed address, returning def for an
// empty string.
func parseAddr(s string, def uint32) (uint32, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint32(v), nil
}

// run builds an emulator for cfg, loads prog and runs it to completion.
// The emulator is returned even when the run fails so its state can be
// inspected.
func run(
	cfg *config.Config,
	prog *loader.Program,
	log *logrus.Logger,
	profiler *cache.Profiler,
) (*emu.Emulator, error) {
	opts := cfg.EmulatorOptions()
	opts = append(opts, emu.WithLogger(log))
	if profiler != nil {
		opts = append(opts, emu.WithAccessObserver(profiler))
	}

	e := emu.NewEmulator(opts...)
	if err := install(e, prog); err != nil {
		return nil, err
	}

	err := e.Run()
	if errors.Is(err, emu.ErrInstructionLimit) {
		return e, fmt.Errorf("stopped after %d instructions: %w", e.InstructionCount(), err)
	}
	return e, err
}

// install places prog in memory and points the PC at its entry. A flat
// image goes through LoadProgram; ELF segments are copied one by one.
func install(e *emu.Emulator, prog *loader.Program) error {
	if len(prog.Segments) == 1 {
		seg := prog.Segments[0]
		if seg.VirtAddr == prog.EntryPoint && seg.MemSize <= uint32(len(seg.Data)) {
			return e.LoadProgram(prog.EntryPoint, seg.Data)
		}
	}

	if err := prog.LoadInto(e.Memory()); err != nil {
		return err
	}
	return e.SetPC(prog.EntryPoint)
}

// printState writes the register file in four columns.
func printState(w io.Writer, e *emu.Emulator) {
	regs := e.RegFile()

	fmt.Fprintf(w, "PC: 0x%08X  LR: 0x%08X  Instructions: %d\n",
		regs.PC, regs.LR, e.InstructionCount())
	for i := 0; i < emu.NumRegs; i += 4 {
		for j := i; j < i+4; j++ {
			fmt.Fprintf(w, "  $%-2d = 0x%08X", j, regs.R[j])
		}
		fmt.Fprintln(w)
	}
}

// demoProgram sums 1..10 into $2, stores the sum at 0x300, reads it back
// into $3 and parks in a self-loop.
func demoProgram(base uint32) *loader.Program {
	return loader.FromImage(base, insts.Assemble(
		insts.ADDI(1, 0, 10),   // counter
		insts.ADDI(2, 0, 0),    // sum
		insts.ADD(2, 2, 1),     // loop: sum += counter
		insts.ADDI(1, 1, -1),   // counter--
		insts.BGTZ(1, -3),      // while counter > 0
		insts.LUI(4, 0),        // address high half
		insts.ORI(4, 4, 0x300), // $4 = 0x300
		insts.SW(2, 0, 4),      // mem[0x300] = sum
		insts.LW(3, 0, 4),      // $3 = mem[0x300]
		insts.BEQ(0, 0, -1),    // halt
	))
}
