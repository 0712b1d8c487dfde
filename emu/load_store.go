package emu

// LoadStoreUnit implements MIPS word load and store operations.
//
// The effective address is the contents of the base register plus the
// sign-extended offset. A failed access leaves registers and memory
// untouched.
type LoadStoreUnit struct {
	regFile  *RegFile
	memory   *Memory
	observer AccessObserver
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// EffectiveAddress returns base + offset with 32-bit wraparound.
func (lsu *LoadStoreUnit) EffectiveAddress(base uint8, offset int32) uint32 {
	return lsu.regFile.ReadReg(base) + uint32(offset)
}

// LW performs a word load: rt = mem[rs + offset]
func (lsu *LoadStoreUnit) LW(rt, rs uint8, offset int32) error {
	addr := lsu.EffectiveAddress(rs, offset)
	value, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, value)
	lsu.notify(AccessLoad, addr)
	return nil
}

// SW performs a word store: mem[rs + offset] = rt
func (lsu *LoadStoreUnit) SW(rt, rs uint8, offset int32) error {
	addr := lsu.EffectiveAddress(rs, offset)
	if err := lsu.memory.Write32(addr, lsu.regFile.ReadReg(rt)); err != nil {
		return err
	}
	lsu.notify(AccessStore, addr)
	return nil
}

func (lsu *LoadStoreUnit) notify(kind AccessKind, addr uint32) {
	if lsu.observer != nil {
		lsu.observer.ObserveAccess(kind, addr)
	}
}
