package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("Field extraction", func() {
		// addi $1, $0, 0x1FF -> 0x200101FF
		// Encoding: opcode=8, rs=0, rt=1, imm=0x01FF
		It("should decode addi $1, $0, 511", func() {
			inst := decoder.Decode(0x200101FF)

			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Opcode).To(Equal(uint8(8)))
			Expect(inst.Rs).To(Equal(uint8(0)))
			Expect(inst.Rt).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(int32(0x1FF)))
			Expect(inst.Imm16).To(Equal(uint16(0x1FF)))
			Expect(inst.Raw).To(Equal(uint32(0x200101FF)))
		})

		// 0x200001FF has rt=0: addi $0, $0, 511
		It("should decode rt from bits 20:16", func() {
			inst := decoder.Decode(0x200001FF)

			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Rs).To(Equal(uint8(0)))
			Expect(inst.Rt).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(int32(0x1FF)))
		})

		// add $3, $1, $2 -> 0x00221820
		It("should decode add $3, $1, $2", func() {
			inst := decoder.Decode(0x00221820)

			Expect(inst.Op).To(Equal(insts.OpADD))
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rs).To(Equal(uint8(1)))
			Expect(inst.Rt).To(Equal(uint8(2)))
			Expect(inst.Rd).To(Equal(uint8(3)))
			Expect(inst.Shamt).To(Equal(uint8(0)))
			Expect(inst.Funct).To(Equal(uint8(32)))
		})

		It("should extract every register field independently", func() {
			inst := decoder.Decode(insts.EncodeR(0, 31, 17, 9, 5, 0x21))

			Expect(inst.Rs).To(Equal(uint8(31)))
			Expect(inst.Rt).To(Equal(uint8(17)))
			Expect(inst.Rd).To(Equal(uint8(9)))
			Expect(inst.Shamt).To(Equal(uint8(5)))
			Expect(inst.Op).To(Equal(insts.OpADDU))
		})
	})

	Describe("Immediate extension", func() {
		It("should sign-extend a negative immediate", func() {
			// addi $1, $0, -4 -> 0x2001FFFC
			inst := decoder.Decode(0x2001FFFC)

			Expect(inst.Imm).To(Equal(int32(-4)))
			Expect(uint32(inst.Imm)).To(Equal(uint32(0xFFFFFFFC)))
			Expect(inst.ZeroExtImm()).To(Equal(uint32(0x0000FFFC)))
		})

		It("should leave a positive immediate unchanged", func() {
			inst := decoder.Decode(insts.ORI(2, 2, 0x7FFF))

			Expect(inst.Imm).To(Equal(int32(0x7FFF)))
			Expect(inst.ZeroExtImm()).To(Equal(uint32(0x7FFF)))
		})

		It("should compute branch offsets in bytes", func() {
			inst := decoder.Decode(insts.BEQ(0, 0, -1))

			Expect(inst.Imm).To(Equal(int32(-1)))
			Expect(inst.BranchOffset()).To(Equal(int32(-4)))
		})
	})

	Describe("Function code", func() {
		It("should keep bit 4 of the function code", func() {
			// funct 0x30 would alias funct 0x20 (add) under a 0x2F mask.
			inst := decoder.Decode(insts.EncodeR(0, 1, 2, 3, 0, 0x30))

			Expect(inst.Funct).To(Equal(uint8(0x30)))
			Expect(inst.Op).To(Equal(insts.OpUnknown))
		})

		DescribeTable("R-type operations",
			func(funct uint8, op insts.Op) {
				inst := decoder.Decode(insts.EncodeR(0, 1, 2, 3, 0, funct))
				Expect(inst.Format).To(Equal(insts.FormatR))
				Expect(inst.Op).To(Equal(op))
			},
			Entry("add", uint8(32), insts.OpADD),
			Entry("addu", uint8(33), insts.OpADDU),
			Entry("sub", uint8(34), insts.OpSUB),
			Entry("subu", uint8(35), insts.OpSUBU),
			Entry("jr is not supported", uint8(8), insts.OpUnknown),
			Entry("sll is not supported", uint8(0), insts.OpUnknown),
		)
	})

	Describe("Jump target", func() {
		It("should keep all 26 target bits", func() {
			// Bit 24 is dropped by a 0x02FFFFFF mask.
			inst := decoder.Decode(insts.EncodeJ(insts.OpcodeJ, 0x03FFFFFF))

			Expect(inst.Op).To(Equal(insts.OpJ))
			Expect(inst.Format).To(Equal(insts.FormatJ))
			Expect(inst.Target).To(Equal(uint32(0x03FFFFFF)))
		})

		It("should decode jal", func() {
			inst := decoder.Decode(insts.JAL(0x400))

			Expect(inst.Op).To(Equal(insts.OpJAL))
			Expect(inst.Target).To(Equal(uint32(0x100)))
		})
	})

	Describe("Opcode dispatch", func() {
		DescribeTable("I-type operations",
			func(opcode uint8, op insts.Op) {
				inst := decoder.Decode(insts.EncodeI(opcode, 1, 2, 4))
				Expect(inst.Format).To(Equal(insts.FormatI))
				Expect(inst.Op).To(Equal(op))
			},
			Entry("beq", uint8(4), insts.OpBEQ),
			Entry("bne", uint8(5), insts.OpBNE),
			Entry("blez", uint8(6), insts.OpBLEZ),
			Entry("bgtz", uint8(7), insts.OpBGTZ),
			Entry("addi", uint8(8), insts.OpADDI),
			Entry("addiu", uint8(9), insts.OpADDIU),
			Entry("slti", uint8(10), insts.OpSLTI),
			Entry("sltiu", uint8(11), insts.OpSLTIU),
			Entry("andi", uint8(12), insts.OpANDI),
			Entry("ori", uint8(13), insts.OpORI),
			Entry("xori", uint8(14), insts.OpXORI),
			Entry("lui", uint8(15), insts.OpLUI),
			Entry("lw", uint8(35), insts.OpLW),
			Entry("sw", uint8(43), insts.OpSW),
			Entry("lb is not supported", uint8(32), insts.OpUnknown),
			Entry("sb is not supported", uint8(40), insts.OpUnknown),
		)

		It("should decode any word without panicking", func() {
			for _, word := range []uint32{0x00000000, 0xFFFFFFFF, 0xFC000000, 0x0000003F} {
				Expect(decoder.Decode(word)).NotTo(BeNil())
			}
		})
	})
})
