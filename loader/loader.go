// Package loader reads MIPS program images (ELF, hex text or raw binary)
// for loading into the simulator's memory.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SegmentFlags represents memory protection flags for a segment.
type SegmentFlags uint32

const (
	// SegmentFlagExecute indicates the segment is executable.
	SegmentFlagExecute SegmentFlags = 1 << iota
	// SegmentFlagWrite indicates the segment is writable.
	SegmentFlagWrite
	// SegmentFlagRead indicates the segment is readable.
	SegmentFlagRead
)

// Segment represents a contiguous block of the program image.
type Segment struct {
	// VirtAddr is the address where this segment should be loaded.
	VirtAddr uint32
	// Data contains the segment contents.
	Data []byte
	// MemSize is the size in memory (may be larger than len(Data) for BSS).
	MemSize uint32
	// Flags contains the segment protection flags.
	Flags SegmentFlags
}

// Program represents a loaded program ready for execution.
type Program struct {
	// EntryPoint is the address where execution should begin.
	EntryPoint uint32
	// Segments contains all loadable segments.
	Segments []Segment
}

// ImageWriter is the destination of a program image. *emu.Memory
// implements it.
type ImageWriter interface {
	LoadImage(addr uint32, data []byte) error
}

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// Load reads a program from path. ELF files are recognised by their magic
// number, files ending in .hex, .dat or .mem are parsed as hex text, and
// anything else is treated as a raw big-endian image. Hex and raw images
// are placed at base, which is also their entry point.
func Load(path string, base uint32) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}

	if bytes.HasPrefix(data, elfMagic) {
		return LoadELF(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".dat", ".mem":
		return ParseHex(bytes.NewReader(data), base)
	default:
		return FromImage(base, data), nil
	}
}

// LoadRaw reads a raw big-endian binary image and places it at base.
func LoadRaw(path string, base uint32) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw image: %w", err)
	}
	return FromImage(base, data), nil
}

// FromImage wraps an in-memory image as a single executable segment.
func FromImage(base uint32, image []byte) *Program {
	return &Program{
		EntryPoint: base,
		Segments: []Segment{{
			VirtAddr: base,
			Data:     image,
			MemSize:  uint32(len(image)),
			Flags:    SegmentFlagRead | SegmentFlagExecute,
		}},
	}
}

// Size returns the number of bytes the program occupies in memory.
func (p *Program) Size() uint32 {
	var total uint32
	for _, seg := range p.Segments {
		total += max(seg.MemSize, uint32(len(seg.Data)))
	}
	return total
}

// LoadInto copies every segment into memory, zero-filling the BSS part.
func (p *Program) LoadInto(mem ImageWriter) error {
	for _, seg := range p.Segments {
		if err := mem.LoadImage(seg.VirtAddr, seg.Data); err != nil {
			return fmt.Errorf("failed to load segment at 0x%08X: %w", seg.VirtAddr, err)
		}

		if seg.MemSize > uint32(len(seg.Data)) {
			bssAddr := seg.VirtAddr + uint32(len(seg.Data))
			bss := make([]byte, seg.MemSize-uint32(len(seg.Data)))
			if err := mem.LoadImage(bssAddr, bss); err != nil {
				return fmt.Errorf("failed to zero-fill BSS at 0x%08X: %w", bssAddr, err)
			}
		}
	}
	return nil
}
