package insts

import "fmt"

// String renders the instruction in MIPS assembler syntax.
func (i *Instruction) String() string {
	switch i.Op {
	case OpADD, OpADDU, OpSUB, OpSUBU:
		return fmt.Sprintf("%s $%d, $%d, $%d", i.Op, i.Rd, i.Rs, i.Rt)
	case OpADDI, OpADDIU, OpSLTI, OpSLTIU:
		return fmt.Sprintf("%s $%d, $%d, %d", i.Op, i.Rt, i.Rs, i.Imm)
	case OpANDI, OpORI, OpXORI:
		return fmt.Sprintf("%s $%d, $%d, 0x%x", i.Op, i.Rt, i.Rs, i.Imm16)
	case OpLUI:
		return fmt.Sprintf("lui $%d, 0x%x", i.Rt, i.Imm16)
	case OpLW, OpSW:
		return fmt.Sprintf("%s $%d, %d($%d)", i.Op, i.Rt, i.Imm, i.Rs)
	case OpBEQ, OpBNE:
		return fmt.Sprintf("%s $%d, $%d, %d", i.Op, i.Rs, i.Rt, i.Imm)
	case OpBLEZ, OpBGTZ:
		return fmt.Sprintf("%s $%d, %d", i.Op, i.Rs, i.Imm)
	case OpJ, OpJAL:
		return fmt.Sprintf("%s 0x%x", i.Op, i.Target<<2)
	default:
		return fmt.Sprintf("unknown 0x%08x", i.Raw)
	}
}
