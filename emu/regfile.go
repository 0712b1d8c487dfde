// Package emu provides functional emulation of a single-cycle MIPS32 core.
package emu

// NumRegs is the number of general-purpose registers.
const NumRegs = 32

// RegFile represents the MIPS register file.
// It contains 32 general-purpose registers, the program counter and the
// link register written by jal.
type RegFile struct {
	// R holds general-purpose registers $0-$31.
	// R[0] is hard-wired to zero: writes to it are discarded.
	R [NumRegs]uint32

	// PC is the address of the next instruction to fetch.
	PC uint32

	// LR is the link register.
	LR uint32
}

// ReadReg reads a register value. Register indices are taken modulo 32, as
// they are 5-bit fields in every encoding.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	return r.R[reg%NumRegs]
}

// ReadRegSigned reads a register as a two's complement value.
func (r *RegFile) ReadRegSigned(reg uint8) int32 {
	return int32(r.ReadReg(reg))
}

// WriteReg writes a value to a register. Writes to register 0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	reg %= NumRegs
	if reg == 0 {
		return
	}
	r.R[reg] = value
}

// Reset clears every register, the PC and the link register.
func (r *RegFile) Reset() {
	*r = RegFile{}
}
