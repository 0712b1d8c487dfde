package emu

// segmentMask selects the PC bits a J-type target cannot encode.
const segmentMask = 0xF0000000

// BranchUnit implements MIPS branch and jump target selection.
//
// Every method takes nextPC, the address of the instruction following the
// branch (PC+4), and returns the address to fetch next. None of them touch
// the PC itself; the emulator commits it once the cycle succeeds.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// J computes an absolute jump. The word target replaces bits [27:2] of
// nextPC; the 256 MiB segment in bits [31:28] is preserved.
func (b *BranchUnit) J(nextPC, target uint32) uint32 {
	return (nextPC & segmentMask) | (target << 2)
}

// JAL jumps like J and saves the return address (nextPC) in the link
// register.
func (b *BranchUnit) JAL(nextPC, target uint32) uint32 {
	b.regFile.LR = nextPC
	return b.J(nextPC, target)
}

// BEQ branches if rs == rt.
func (b *BranchUnit) BEQ(nextPC uint32, rs, rt uint8, offset int32) uint32 {
	return b.takeIf(b.regFile.ReadReg(rs) == b.regFile.ReadReg(rt), nextPC, offset)
}

// BNE branches if rs != rt.
func (b *BranchUnit) BNE(nextPC uint32, rs, rt uint8, offset int32) uint32 {
	return b.takeIf(b.regFile.ReadReg(rs) != b.regFile.ReadReg(rt), nextPC, offset)
}

// BLEZ branches if rs <= 0 as a signed value.
func (b *BranchUnit) BLEZ(nextPC uint32, rs uint8, offset int32) uint32 {
	return b.takeIf(b.regFile.ReadRegSigned(rs) <= 0, nextPC, offset)
}

// BGTZ branches if rs > 0 as a signed value.
func (b *BranchUnit) BGTZ(nextPC uint32, rs uint8, offset int32) uint32 {
	return b.takeIf(b.regFile.ReadRegSigned(rs) > 0, nextPC, offset)
}

// takeIf returns nextPC + offset when taken, nextPC otherwise.
// offset is in bytes.
func (b *BranchUnit) takeIf(taken bool, nextPC uint32, offset int32) uint32 {
	if !taken {
		return nextPC
	}
	return nextPC + uint32(offset)
}
