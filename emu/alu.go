package emu

// ALU implements MIPS arithmetic and logic operations.
//
// Signed and unsigned forms produce the same bit pattern. This core has no
// arithmetic exception model, so signed overflow wraps instead of trapping.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// ADD performs signed addition: rd = rs + rt (wraps on overflow)
func (a *ALU) ADD(rd, rs, rt uint8) {
	op1 := a.regFile.ReadRegSigned(rs)
	op2 := a.regFile.ReadRegSigned(rt)
	a.regFile.WriteReg(rd, uint32(op1+op2))
}

// ADDU performs unsigned addition: rd = rs + rt
func (a *ALU) ADDU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)+a.regFile.ReadReg(rt))
}

// SUB performs signed subtraction: rd = rs - rt (wraps on overflow)
func (a *ALU) SUB(rd, rs, rt uint8) {
	op1 := a.regFile.ReadRegSigned(rs)
	op2 := a.regFile.ReadRegSigned(rt)
	a.regFile.WriteReg(rd, uint32(op1-op2))
}

// SUBU performs unsigned subtraction: rd = rs - rt
func (a *ALU) SUBU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)-a.regFile.ReadReg(rt))
}

// ADDI performs signed addition with a sign-extended immediate: rt = rs + imm
func (a *ALU) ADDI(rt, rs uint8, imm int32) {
	a.regFile.WriteReg(rt, uint32(a.regFile.ReadRegSigned(rs)+imm))
}

// ADDIU adds a sign-extended immediate without trapping: rt = rs + imm
func (a *ALU) ADDIU(rt, rs uint8, imm int32) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)+uint32(imm))
}

// SLTI sets rt to 1 if rs < imm as signed values, else 0.
func (a *ALU) SLTI(rt, rs uint8, imm int32) {
	a.regFile.WriteReg(rt, boolToWord(a.regFile.ReadRegSigned(rs) < imm))
}

// SLTIU sets rt to 1 if rs < imm as unsigned values, else 0.
// The immediate is sign-extended before the unsigned compare.
func (a *ALU) SLTIU(rt, rs uint8, imm int32) {
	a.regFile.WriteReg(rt, boolToWord(a.regFile.ReadReg(rs) < uint32(imm)))
}

// ANDI performs bitwise AND with a zero-extended immediate.
func (a *ALU) ANDI(rt, rs uint8, imm uint16) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)&uint32(imm))
}

// ORI performs bitwise OR with a zero-extended immediate.
func (a *ALU) ORI(rt, rs uint8, imm uint16) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)|uint32(imm))
}

// XORI performs bitwise XOR with a zero-extended immediate.
func (a *ALU) XORI(rt, rs uint8, imm uint16) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)^uint32(imm))
}

// LUI loads the immediate into the upper half of rt: rt = imm << 16
func (a *ALU) LUI(rt uint8, imm uint16) {
	a.regFile.WriteReg(rt, uint32(imm)<<16)
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
