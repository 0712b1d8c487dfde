package insts

import "encoding/binary"

// EncodeR builds an R-type instruction word.
func EncodeR(opcode, rs, rt, rd, shamt, funct uint8) uint32 {
	return uint32(opcode&opcodeMask)<<26 |
		uint32(rs&regMask)<<21 |
		uint32(rt&regMask)<<16 |
		uint32(rd&regMask)<<11 |
		uint32(shamt&regMask)<<6 |
		uint32(funct&functMask)
}

// EncodeI builds an I-type instruction word. Only the low 16 bits of imm
// are kept, so both signed offsets and unsigned constants can be passed.
func EncodeI(opcode, rs, rt uint8, imm int32) uint32 {
	return uint32(opcode&opcodeMask)<<26 |
		uint32(rs&regMask)<<21 |
		uint32(rt&regMask)<<16 |
		uint32(imm)&immMask
}

// EncodeJ builds a J-type instruction word from a word-index target.
func EncodeJ(opcode uint8, target uint32) uint32 {
	return uint32(opcode&opcodeMask)<<26 | target&targetMask
}

// ADD encodes add rd, rs, rt.
func ADD(rd, rs, rt uint8) uint32 { return EncodeR(OpcodeSpecial, rs, rt, rd, 0, FunctADD) }

// ADDU encodes addu rd, rs, rt.
func ADDU(rd, rs, rt uint8) uint32 { return EncodeR(OpcodeSpecial, rs, rt, rd, 0, FunctADDU) }

// SUB encodes sub rd, rs, rt.
func SUB(rd, rs, rt uint8) uint32 { return EncodeR(OpcodeSpecial, rs, rt, rd, 0, FunctSUB) }

// SUBU encodes subu rd, rs, rt.
func SUBU(rd, rs, rt uint8) uint32 { return EncodeR(OpcodeSpecial, rs, rt, rd, 0, FunctSUBU) }

// ADDI encodes addi rt, rs, imm.
func ADDI(rt, rs uint8, imm int32) uint32 { return EncodeI(OpcodeADDI, rs, rt, imm) }

// ADDIU encodes addiu rt, rs, imm.
func ADDIU(rt, rs uint8, imm int32) uint32 { return EncodeI(OpcodeADDIU, rs, rt, imm) }

// SLTI encodes slti rt, rs, imm.
func SLTI(rt, rs uint8, imm int32) uint32 { return EncodeI(OpcodeSLTI, rs, rt, imm) }

// SLTIU encodes sltiu rt, rs, imm.
func SLTIU(rt, rs uint8, imm int32) uint32 { return EncodeI(OpcodeSLTIU, rs, rt, imm) }

// ANDI encodes andi rt, rs, imm.
func ANDI(rt, rs uint8, imm uint16) uint32 { return EncodeI(OpcodeANDI, rs, rt, int32(imm)) }

// ORI encodes ori rt, rs, imm.
func ORI(rt, rs uint8, imm uint16) uint32 { return EncodeI(OpcodeORI, rs, rt, int32(imm)) }

// XORI encodes xori rt, rs, imm.
func XORI(rt, rs uint8, imm uint16) uint32 { return EncodeI(OpcodeXORI, rs, rt, int32(imm)) }

// LUI encodes lui rt, imm.
func LUI(rt uint8, imm uint16) uint32 { return EncodeI(OpcodeLUI, 0, rt, int32(imm)) }

// LW encodes lw rt, offset(base).
func LW(rt uint8, offset int32, base uint8) uint32 { return EncodeI(OpcodeLW, base, rt, offset) }

// SW encodes sw rt, offset(base).
func SW(rt uint8, offset int32, base uint8) uint32 { return EncodeI(OpcodeSW, base, rt, offset) }

// BEQ encodes beq rs, rt, offset where offset counts words from PC+4.
func BEQ(rs, rt uint8, offset int32) uint32 { return EncodeI(OpcodeBEQ, rs, rt, offset) }

// BNE encodes bne rs, rt, offset where offset counts words from PC+4.
func BNE(rs, rt uint8, offset int32) uint32 { return EncodeI(OpcodeBNE, rs, rt, offset) }

// BLEZ encodes blez rs, offset.
func BLEZ(rs uint8, offset int32) uint32 { return EncodeI(OpcodeBLEZ, rs, 0, offset) }

// BGTZ encodes bgtz rs, offset.
func BGTZ(rs uint8, offset int32) uint32 { return EncodeI(OpcodeBGTZ, rs, 0, offset) }

// J encodes j to a byte address; the low two bits and the top four bits of
// addr are dropped, as the hardware does.
func J(addr uint32) uint32 { return EncodeJ(OpcodeJ, addr>>2) }

// JAL encodes jal to a byte address.
func JAL(addr uint32) uint32 { return EncodeJ(OpcodeJAL, addr>>2) }

// Assemble lays out instruction words as a big-endian memory image.
func Assemble(words ...uint32) []byte {
	image := make([]byte, 4*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint32(image[4*i:], w)
	}
	return image
}
