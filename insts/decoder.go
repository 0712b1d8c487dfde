package insts

// Op represents a MIPS operation, resolved from opcode and funct.
type Op uint8

// Supported operations.
const (
	OpUnknown Op = iota
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpJ
	OpJAL
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI
	OpLW
	OpSW
)

var opNames = [...]string{
	OpUnknown: "unknown",
	OpADD:     "add",
	OpADDU:    "addu",
	OpSUB:     "sub",
	OpSUBU:    "subu",
	OpJ:       "j",
	OpJAL:     "jal",
	OpBEQ:     "beq",
	OpBNE:     "bne",
	OpBLEZ:    "blez",
	OpBGTZ:    "bgtz",
	OpADDI:    "addi",
	OpADDIU:   "addiu",
	OpSLTI:    "slti",
	OpSLTIU:   "sltiu",
	OpANDI:    "andi",
	OpORI:     "ori",
	OpXORI:    "xori",
	OpLUI:     "lui",
	OpLW:      "lw",
	OpSW:      "sw",
}

// String returns the assembler mnemonic of the operation.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatR Format = iota // Register: opcode | rs | rt | rd | shamt | funct
	FormatI               // Immediate: opcode | rs | rt | imm16
	FormatJ               // Jump: opcode | target26
)

// Primary opcodes (bits [31:26]).
const (
	OpcodeSpecial uint8 = 0
	OpcodeJ       uint8 = 2
	OpcodeJAL     uint8 = 3
	OpcodeBEQ     uint8 = 4
	OpcodeBNE     uint8 = 5
	OpcodeBLEZ    uint8 = 6
	OpcodeBGTZ    uint8 = 7
	OpcodeADDI    uint8 = 8
	OpcodeADDIU   uint8 = 9
	OpcodeSLTI    uint8 = 10
	OpcodeSLTIU   uint8 = 11
	OpcodeANDI    uint8 = 12
	OpcodeORI     uint8 = 13
	OpcodeXORI    uint8 = 14
	OpcodeLUI     uint8 = 15
	OpcodeLW      uint8 = 35
	OpcodeSW      uint8 = 43
)

// Function codes for opcode 0 (bits [5:0]).
const (
	FunctADD  uint8 = 32
	FunctADDU uint8 = 33
	FunctSUB  uint8 = 34
	FunctSUBU uint8 = 35
)

// Field masks.
const (
	opcodeMask = 0x3F
	regMask    = 0x1F
	functMask  = 0x3F
	immMask    = 0xFFFF
	targetMask = 0x03FFFFFF
)

// Instruction represents a decoded MIPS instruction.
//
// Every field is extracted regardless of format so that an instruction that
// later turns out to be unsupported can still be reported precisely.
type Instruction struct {
	Op     Op     // Resolved operation
	Format Format // Encoding format
	Raw    uint32 // Original instruction word

	Opcode uint8 // bits [31:26]
	Funct  uint8 // bits [5:0], meaningful for FormatR
	Rs     uint8 // bits [25:21]
	Rt     uint8 // bits [20:16]
	Rd     uint8 // bits [15:11]
	Shamt  uint8 // bits [10:6]

	Imm    int32  // bits [15:0], sign-extended
	Imm16  uint16 // bits [15:0], raw (zero-extended when widened)
	Target uint32 // bits [25:0]
}

// ZeroExtImm returns the 16-bit immediate zero-extended to 32 bits.
func (i *Instruction) ZeroExtImm() uint32 {
	return uint32(i.Imm16)
}

// BranchOffset returns the signed byte offset of a branch, relative to the
// address of the following instruction.
func (i *Instruction) BranchOffset() int32 {
	return i.Imm << 2
}

// Decoder decodes MIPS machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new MIPS instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit MIPS instruction word. It never fails: words that
// do not name a supported instruction decode with Op set to OpUnknown.
func (d *Decoder) Decode(word uint32) *Instruction {
	imm16 := uint16(word & immMask)

	inst := &Instruction{
		Op:     OpUnknown,
		Raw:    word,
		Opcode: uint8((word >> 26) & opcodeMask),
		Rs:     uint8((word >> 21) & regMask),
		Rt:     uint8((word >> 16) & regMask),
		Rd:     uint8((word >> 11) & regMask),
		Shamt:  uint8((word >> 6) & regMask),
		Funct:  uint8(word & functMask),
		Imm:    int32(int16(imm16)),
		Imm16:  imm16,
		Target: word & targetMask,
	}

	switch inst.Opcode {
	case OpcodeSpecial:
		inst.Format = FormatR
		inst.Op = d.decodeFunct(inst.Funct)
	case OpcodeJ:
		inst.Format = FormatJ
		inst.Op = OpJ
	case OpcodeJAL:
		inst.Format = FormatJ
		inst.Op = OpJAL
	default:
		inst.Format = FormatI
		inst.Op = d.decodeImmOpcode(inst.Opcode)
	}

	return inst
}

// decodeFunct resolves an R-type operation from its function code.
func (d *Decoder) decodeFunct(funct uint8) Op {
	switch funct {
	case FunctADD:
		return OpADD
	case FunctADDU:
		return OpADDU
	case FunctSUB:
		return OpSUB
	case FunctSUBU:
		return OpSUBU
	default:
		return OpUnknown
	}
}

// decodeImmOpcode resolves an I-type operation from its primary opcode.
func (d *Decoder) decodeImmOpcode(opcode uint8) Op {
	switch opcode {
	case OpcodeBEQ:
		return OpBEQ
	case OpcodeBNE:
		return OpBNE
	case OpcodeBLEZ:
		return OpBLEZ
	case OpcodeBGTZ:
		return OpBGTZ
	case OpcodeADDI:
		return OpADDI
	case OpcodeADDIU:
		return OpADDIU
	case OpcodeSLTI:
		return OpSLTI
	case OpcodeSLTIU:
		return OpSLTIU
	case OpcodeANDI:
		return OpANDI
	case OpcodeORI:
		return OpORI
	case OpcodeXORI:
		return OpXORI
	case OpcodeLUI:
		return OpLUI
	case OpcodeLW:
		return OpLW
	case OpcodeSW:
		return OpSW
	default:
		return OpUnknown
	}
}
