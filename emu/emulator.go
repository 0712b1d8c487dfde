package emu

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/mipssim/insts"
)

// DefaultStartAddress is the PC value after Reset when none is configured.
const DefaultStartAddress = 0x100

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// PC is the address the instruction was fetched from.
	PC uint32

	// NextPC is the address of the next instruction to fetch.
	NextPC uint32

	// Inst is the decoded instruction. It is nil if the fetch failed.
	Inst *insts.Instruction

	// SelfLoop is true if the instruction branched or jumped to itself.
	// Programs commonly end this way; the caller decides whether to stop.
	SelfLoop bool

	// Err is set if the instruction could not be executed. Machine state
	// is left exactly as it was before the step.
	Err error
}

// AccessKind classifies a memory access made by the core.
type AccessKind uint8

// Access kinds.
const (
	AccessFetch AccessKind = iota
	AccessLoad
	AccessStore
)

func (k AccessKind) String() string {
	switch k {
	case AccessFetch:
		return "fetch"
	case AccessLoad:
		return "load"
	case AccessStore:
		return "store"
	default:
		return "unknown"
	}
}

// AccessObserver is notified of the word accesses made by every
// instruction that completes. Steps that fail report nothing.
type AccessObserver interface {
	ObserveAccess(kind AccessKind, addr uint32)
}

type pendingAccess struct {
	kind AccessKind
	addr uint32
}

// accessQueue holds the data accesses of the current step until it commits.
type accessQueue struct {
	entries []pendingAccess
}

func (q *accessQueue) ObserveAccess(kind AccessKind, addr uint32) {
	q.entries = append(q.entries, pendingAccess{kind: kind, addr: addr})
}

// Emulator executes MIPS instructions functionally, one instruction per
// cycle.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	observer AccessObserver
	pending  accessQueue
	logger   *logrus.Logger

	// Configuration
	memorySize     uint32
	startAddress   uint32
	haltOnSelfLoop bool

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithMemorySize sets the memory capacity in bytes.
func WithMemorySize(size uint32) EmulatorOption {
	return func(e *Emulator) {
		e.memorySize = size
	}
}

// WithStartAddress sets the PC value installed by Reset.
func WithStartAddress(addr uint32) EmulatorOption {
	return func(e *Emulator) {
		e.startAddress = addr
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithHaltOnSelfLoop controls whether Run stops at an instruction that
// branches to itself. Enabled by default.
func WithHaltOnSelfLoop(halt bool) EmulatorOption {
	return func(e *Emulator) {
		e.haltOnSelfLoop = halt
	}
}

// WithLogger sets the logger used for per-cycle tracing.
func WithLogger(logger *logrus.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithAccessObserver registers an observer for fetches, loads and stores.
func WithAccessObserver(observer AccessObserver) EmulatorOption {
	return func(e *Emulator) {
		e.observer = observer
	}
}

// NewEmulator creates a new MIPS emulator in its reset state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile:        &RegFile{},
		decoder:        insts.NewDecoder(),
		memorySize:     DefaultMemorySize,
		startAddress:   DefaultStartAddress,
		haltOnSelfLoop: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logrus.New()
		e.logger.SetOutput(io.Discard)
	}

	e.memory = NewMemory(e.memorySize)

	// Create execution units
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	if e.observer != nil {
		e.lsu.observer = &e.pending
	}
	e.branchUnit = NewBranchUnit(e.regFile)

	e.Reset()

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// InstructionCount returns the number of instructions executed since the
// last Reset.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// Reset zeroes registers and memory and sets the PC to the start address.
func (e *Emulator) Reset() {
	e.regFile.Reset()
	e.memory.Reset()
	e.regFile.PC = e.startAddress
	e.instructionCount = 0
}

// LoadProgram copies a program image into memory at entry and points the
// PC at it.
func (e *Emulator) LoadProgram(entry uint32, program []byte) error {
	if err := e.memory.check(entry, 4, true); err != nil {
		return fmt.Errorf("invalid entry point 0x%08X: %w", entry, err)
	}
	if err := e.memory.LoadImage(entry, program); err != nil {
		return fmt.Errorf("failed to load program at 0x%08X: %w", entry, err)
	}
	return e.SetPC(entry)
}

// SetPC sets the address of the next instruction to fetch. The address must
// name a whole, aligned word inside memory.
func (e *Emulator) SetPC(pc uint32) error {
	if err := e.memory.check(pc, 4, true); err != nil {
		return fmt.Errorf("invalid entry point 0x%08X: %w", pc, err)
	}
	e.regFile.PC = pc
	return nil
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{PC: e.regFile.PC, NextPC: e.regFile.PC, Err: ErrInstructionLimit}
	}

	pc := e.regFile.PC
	e.pending.entries = e.pending.entries[:0]

	// 1. Fetch
	word, err := e.memory.Read32(pc)
	if err != nil {
		return e.fail(StepResult{PC: pc, NextPC: pc}, fmt.Errorf("fetch at PC=0x%08X: %w", pc, err))
	}

	// 2. Decode
	inst := e.decoder.Decode(word)

	// 3. Execute, memory access and write-back
	nextPC, err := e.execute(pc, inst)
	if err != nil {
		return e.fail(StepResult{PC: pc, NextPC: pc, Inst: inst}, err)
	}

	e.regFile.PC = nextPC
	e.instructionCount++

	e.notify(AccessFetch, pc)
	for _, a := range e.pending.entries {
		e.notify(a.kind, a.addr)
	}

	if e.logger.IsLevelEnabled(logrus.DebugLevel) {
		e.logger.WithFields(logrus.Fields{
			"pc":      fmt.Sprintf("0x%08X", pc),
			"word":    fmt.Sprintf("0x%08X", word),
			"inst":    inst.String(),
			"next_pc": fmt.Sprintf("0x%08X", nextPC),
		}).Debug("cycle")
	}

	return StepResult{
		PC:       pc,
		NextPC:   nextPC,
		Inst:     inst,
		SelfLoop: nextPC == pc,
	}
}

// Run executes instructions until an error occurs, the instruction limit is
// reached (ErrInstructionLimit) or, if enabled, the program parks itself in
// a self-loop (nil).
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Err != nil {
			return result.Err
		}
		if result.SelfLoop && e.haltOnSelfLoop {
			return nil
		}
	}
}

func (e *Emulator) fail(result StepResult, err error) StepResult {
	e.logger.WithError(err).WithField("pc", fmt.Sprintf("0x%08X", result.PC)).Warn("step failed")
	result.Err = err
	return result
}

func (e *Emulator) notify(kind AccessKind, addr uint32) {
	if e.observer != nil {
		e.observer.ObserveAccess(kind, addr)
	}
}

// execute applies a decoded instruction and returns the next PC.
// All branch and jump targets are relative to pc+4.
func (e *Emulator) execute(pc uint32, inst *insts.Instruction) (uint32, error) {
	nextPC := pc + 4

	switch inst.Op {
	// R-type arithmetic
	case insts.OpADD:
		e.alu.ADD(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpADDU:
		e.alu.ADDU(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSUB:
		e.alu.SUB(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSUBU:
		e.alu.SUBU(inst.Rd, inst.Rs, inst.Rt)

	// Jumps
	case insts.OpJ:
		return e.branchUnit.J(nextPC, inst.Target), nil
	case insts.OpJAL:
		return e.branchUnit.JAL(nextPC, inst.Target), nil

	// Branches
	case insts.OpBEQ:
		return e.branchUnit.BEQ(nextPC, inst.Rs, inst.Rt, inst.BranchOffset()), nil
	case insts.OpBNE:
		return e.branchUnit.BNE(nextPC, inst.Rs, inst.Rt, inst.BranchOffset()), nil
	case insts.OpBLEZ:
		return e.branchUnit.BLEZ(nextPC, inst.Rs, inst.BranchOffset()), nil
	case insts.OpBGTZ:
		return e.branchUnit.BGTZ(nextPC, inst.Rs, inst.BranchOffset()), nil

	// I-type arithmetic and logic
	case insts.OpADDI:
		e.alu.ADDI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpADDIU:
		e.alu.ADDIU(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpSLTI:
		e.alu.SLTI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpSLTIU:
		e.alu.SLTIU(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpANDI:
		e.alu.ANDI(inst.Rt, inst.Rs, inst.Imm16)
	case insts.OpORI:
		e.alu.ORI(inst.Rt, inst.Rs, inst.Imm16)
	case insts.OpXORI:
		e.alu.XORI(inst.Rt, inst.Rs, inst.Imm16)
	case insts.OpLUI:
		e.alu.LUI(inst.Rt, inst.Imm16)

	// Memory
	case insts.OpLW:
		if err := e.lsu.LW(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return 0, fmt.Errorf("lw at PC=0x%08X: %w", pc, err)
		}
	case insts.OpSW:
		if err := e.lsu.SW(inst.Rt, inst.Rs, inst.Imm); err != nil {
			return 0, fmt.Errorf("sw at PC=0x%08X: %w", pc, err)
		}

	default:
		return 0, &UnimplementedInstructionError{
			Opcode: inst.Opcode,
			Funct:  inst.Funct,
			PC:     pc,
		}
	}

	return nextPC, nil
}
