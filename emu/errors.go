package emu

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is.
var (
	// ErrOutOfBounds reports an access past the end of memory.
	ErrOutOfBounds = errors.New("memory access out of bounds")

	// ErrMisaligned reports a word access at an address that is not a
	// multiple of 4.
	ErrMisaligned = errors.New("misaligned memory access")

	// ErrUnimplementedInstruction reports an opcode/funct combination the
	// core does not execute.
	ErrUnimplementedInstruction = errors.New("unimplemented instruction")

	// ErrInstructionLimit is returned by Step once the configured maximum
	// number of instructions has been executed.
	ErrInstructionLimit = errors.New("max instructions reached")
)

// OutOfBoundsError describes an access of Size bytes at Addr that does not
// fit in a memory of Capacity bytes.
type OutOfBoundsError struct {
	Addr     uint32
	Size     uint32
	Capacity uint32
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("memory access out of bounds: %d bytes at 0x%08X (capacity 0x%X)",
		e.Size, e.Addr, e.Capacity)
}

// Is matches ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// MisalignedError describes a word access at an unaligned address.
type MisalignedError struct {
	Addr uint32
}

func (e *MisalignedError) Error() string {
	return fmt.Sprintf("misaligned word access at 0x%08X", e.Addr)
}

// Is matches ErrMisaligned.
func (e *MisalignedError) Is(target error) bool {
	return target == ErrMisaligned
}

// UnimplementedInstructionError identifies an instruction the core cannot
// execute. Funct is only meaningful when Opcode is 0.
type UnimplementedInstructionError struct {
	Opcode uint8
	Funct  uint8
	PC     uint32
}

func (e *UnimplementedInstructionError) Error() string {
	if e.Opcode == 0 {
		return fmt.Sprintf("unimplemented instruction (opcode %d, funct %d) at PC=0x%08X",
			e.Opcode, e.Funct, e.PC)
	}
	return fmt.Sprintf("unimplemented instruction (opcode %d) at PC=0x%08X", e.Opcode, e.PC)
}

// Is matches ErrUnimplementedInstruction.
func (e *UnimplementedInstructionError) Is(target error) bool {
	return target == ErrUnimplementedInstruction
}
