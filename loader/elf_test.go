package loader_test

import (
	"encoding/binary"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/loader"
)

var _ = Describe("ELF Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "elf-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	code := []byte{
		0x20, 0x01, 0x01, 0xFF, // addi $1, $0, 511
		0x10, 0x00, 0xFF, 0xFF, // beq $0, $0, -1
	}

	Context("with a valid MIPS ELF binary", func() {
		var elfPath string

		BeforeEach(func() {
			elfPath = filepath.Join(tempDir, "test.elf")
			writeMIPSELF(elfPath, elfOptions{
				loadAddr: 0x100,
				entry:    0x104,
				code:     code,
				memSize:  uint32(len(code)),
				machine:  8,
			})
		})

		It("should load without error", func() {
			prog, err := loader.LoadELF(elfPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog).NotTo(BeNil())
		})

		It("should extract the correct entry point", func() {
			prog, err := loader.LoadELF(elfPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.EntryPoint).To(Equal(uint32(0x104)))
		})

		It("should correctly load segment contents", func() {
			prog, err := loader.LoadELF(elfPath)
			Expect(err).NotTo(HaveOccurred())

			Expect(prog.Segments).To(HaveLen(1))
			seg := prog.Segments[0]
			Expect(seg.VirtAddr).To(Equal(uint32(0x100)))
			Expect(seg.Data).To(Equal(code))
			Expect(seg.Flags & loader.SegmentFlagExecute).NotTo(BeZero())
			Expect(seg.Flags & loader.SegmentFlagRead).NotTo(BeZero())
			Expect(seg.Flags & loader.SegmentFlagWrite).To(BeZero())
		})

		It("should be picked up by Load through its magic number", func() {
			prog, err := loader.Load(elfPath, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.EntryPoint).To(Equal(uint32(0x104)))
		})
	})

	Context("with a BSS region", func() {
		It("should report the larger memory size", func() {
			elfPath := filepath.Join(tempDir, "bss.elf")
			writeMIPSELF(elfPath, elfOptions{
				loadAddr: 0x200,
				entry:    0x200,
				code:     code,
				memSize:  64,
				machine:  8,
			})

			prog, err := loader.LoadELF(elfPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Segments[0].MemSize).To(Equal(uint32(64)))
			Expect(prog.Size()).To(Equal(uint32(64)))
		})
	})

	Context("with invalid input", func() {
		It("should fail for a missing file", func() {
			_, err := loader.LoadELF(filepath.Join(tempDir, "missing.elf"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject a non-MIPS machine", func() {
			elfPath := filepath.Join(tempDir, "arm.elf")
			writeMIPSELF(elfPath, elfOptions{
				loadAddr: 0x100,
				entry:    0x100,
				code:     code,
				memSize:  uint32(len(code)),
				machine:  40, // ARM
			})

			_, err := loader.LoadELF(elfPath)
			Expect(err).To(MatchError(ContainSubstring("not a MIPS ELF file")))
		})

		It("should reject a 64-bit ELF", func() {
			elfPath := filepath.Join(tempDir, "64.elf")
			writeMinimal64BitELF(elfPath)

			_, err := loader.LoadELF(elfPath)
			Expect(err).To(MatchError(ContainSubstring("not a 32-bit ELF file")))
		})
	})
})

type elfOptions struct {
	loadAddr uint32
	entry    uint32
	code     []byte
	memSize  uint32
	machine  uint16
}

// writeMIPSELF creates a minimal 32-bit big-endian ELF executable with one
// PT_LOAD segment.
func writeMIPSELF(path string, opts elfOptions) {
	be := binary.BigEndian

	// ELF Header (52 bytes)
	elfHeader := make([]byte, 52)
	copy(elfHeader[0:4], []byte{0x7f, 'E', 'L', 'F'})
	elfHeader[4] = 1                       // 32-bit
	elfHeader[5] = 2                       // big endian
	elfHeader[6] = 1                       // version
	be.PutUint16(elfHeader[16:18], 2)      // executable
	be.PutUint16(elfHeader[18:20], opts.machine)
	be.PutUint32(elfHeader[20:24], 1)      // version
	be.PutUint32(elfHeader[24:28], opts.entry)
	be.PutUint32(elfHeader[28:32], 52)     // phoff
	be.PutUint32(elfHeader[32:36], 0)      // shoff
	be.PutUint32(elfHeader[36:40], 0)      // flags
	be.PutUint16(elfHeader[40:42], 52)     // ehsize
	be.PutUint16(elfHeader[42:44], 32)     // phentsize
	be.PutUint16(elfHeader[44:46], 1)      // phnum
	be.PutUint16(elfHeader[46:48], 40)     // shentsize
	be.PutUint16(elfHeader[48:50], 0)      // shnum
	be.PutUint16(elfHeader[50:52], 0)      // shstrndx

	// Program Header (32 bytes) - PT_LOAD
	progHeader := make([]byte, 32)
	be.PutUint32(progHeader[0:4], 1)   // PT_LOAD
	be.PutUint32(progHeader[4:8], 84)  // offset (after headers)
	be.PutUint32(progHeader[8:12], opts.loadAddr)
	be.PutUint32(progHeader[12:16], opts.loadAddr)
	be.PutUint32(progHeader[16:20], uint32(len(opts.code)))
	be.PutUint32(progHeader[20:24], opts.memSize)
	be.PutUint32(progHeader[24:28], 0x5) // PF_X | PF_R
	be.PutUint32(progHeader[28:32], 0x1000)

	file, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer func() { _ = file.Close() }()

	_, _ = file.Write(elfHeader)
	_, _ = file.Write(progHeader)
	_, _ = file.Write(opts.code)
}

// writeMinimal64BitELF creates a minimal 64-bit ELF to test rejection.
func writeMinimal64BitELF(path string) {
	elfHeader := make([]byte, 64)

	copy(elfHeader[0:4], []byte{0x7f, 'E', 'L', 'F'})
	elfHeader[4] = 2                                   // 64-bit
	elfHeader[5] = 2                                   // big endian
	elfHeader[6] = 1                                   // version
	binary.BigEndian.PutUint16(elfHeader[16:18], 2)   // executable
	binary.BigEndian.PutUint16(elfHeader[18:20], 8)   // MIPS
	binary.BigEndian.PutUint32(elfHeader[20:24], 1)   // version
	binary.BigEndian.PutUint64(elfHeader[32:40], 64)  // phoff
	binary.BigEndian.PutUint16(elfHeader[52:54], 64)  // ehsize
	binary.BigEndian.PutUint16(elfHeader[54:56], 56)  // phentsize

	file, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer func() { _ = file.Close() }()
	_, _ = file.Write(elfHeader)
}
