package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/insts"
)

var _ = Describe("Disassembly", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	DescribeTable("String",
		func(word uint32, text string) {
			Expect(decoder.Decode(word).String()).To(Equal(text))
		},
		Entry("add", insts.ADD(3, 1, 2), "add $3, $1, $2"),
		Entry("subu", insts.SUBU(4, 5, 6), "subu $4, $5, $6"),
		Entry("addi", uint32(0x200101FF), "addi $1, $0, 511"),
		Entry("addi to $0", uint32(0x200001FF), "addi $0, $0, 511"),
		Entry("negative addiu", insts.ADDIU(2, 2, -1), "addiu $2, $2, -1"),
		Entry("andi", insts.ANDI(1, 2, 0xFFFF), "andi $1, $2, 0xffff"),
		Entry("lui", insts.LUI(4, 0x1234), "lui $4, 0x1234"),
		Entry("lw", insts.LW(3, 0, 2), "lw $3, 0($2)"),
		Entry("sw", insts.SW(1, -8, 29), "sw $1, -8($29)"),
		Entry("beq", insts.BEQ(0, 0, -1), "beq $0, $0, -1"),
		Entry("bgtz", insts.BGTZ(1, -3), "bgtz $1, -3"),
		Entry("j", insts.J(0x100), "j 0x100"),
		Entry("jal", insts.JAL(0x200), "jal 0x200"),
		Entry("unknown", uint32(0xFC000000), "unknown 0xfc000000"),
	)
})
