package emu

import "encoding/binary"

// DefaultMemorySize is the capacity used when no size is configured.
const DefaultMemorySize = 0x1000

// Memory is a flat, big-endian, byte-addressable store shared by
// instruction fetch and data access.
type Memory struct {
	data []byte
}

// NewMemory creates a zero-filled memory of the given size in bytes.
// A size of 0 selects DefaultMemorySize.
func NewMemory(size uint32) *Memory {
	if size == 0 {
		size = DefaultMemorySize
	}
	return &Memory{data: make([]byte, size)}
}

// Size returns the capacity in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Reset zero-fills the whole memory.
func (m *Memory) Reset() {
	clear(m.data)
}

// check validates an access of size bytes at addr.
// Bounds are checked before alignment.
func (m *Memory) check(addr, size uint32, aligned bool) error {
	if uint64(addr)+uint64(size) > uint64(len(m.data)) {
		return &OutOfBoundsError{Addr: addr, Size: size, Capacity: m.Size()}
	}
	if aligned && addr%size != 0 {
		return &MisalignedError{Addr: addr}
	}
	return nil
}

// Read8 reads a single byte.
func (m *Memory) Read8(addr uint32) (byte, error) {
	if err := m.check(addr, 1, false); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// Write8 writes a single byte.
func (m *Memory) Write8(addr uint32, value byte) error {
	if err := m.check(addr, 1, false); err != nil {
		return err
	}
	m.data[addr] = value
	return nil
}

// Read32 reads an aligned big-endian word.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	if err := m.check(addr, 4, true); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(m.data[addr:]), nil
}

// Write32 writes an aligned big-endian word.
func (m *Memory) Write32(addr uint32, value uint32) error {
	if err := m.check(addr, 4, true); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(m.data[addr:], value)
	return nil
}

// LoadImage copies data into memory starting at addr. Nothing is written
// unless the whole image fits.
func (m *Memory) LoadImage(addr uint32, data []byte) error {
	if err := m.check(addr, uint32(len(data)), false); err != nil {
		return err
	}
	copy(m.data[addr:], data)
	return nil
}

// Dump returns a copy of n bytes starting at addr.
func (m *Memory) Dump(addr, n uint32) ([]byte, error) {
	if err := m.check(addr, n, false); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.data[addr:])
	return out, nil
}
