package cache

import (
	"fmt"
	"io"

	"github.com/sarchlab/mipssim/emu"
)

// Profiler routes the emulator's memory accesses into an instruction cache
// and a data cache. It implements emu.AccessObserver.
type Profiler struct {
	icache *Cache
	dcache *Cache
}

// NewProfiler creates a profiler with separate instruction and data caches.
func NewProfiler(icache, dcache Config) *Profiler {
	return &Profiler{
		icache: New(icache),
		dcache: New(dcache),
	}
}

// ObserveAccess records one access.
func (p *Profiler) ObserveAccess(kind emu.AccessKind, addr uint32) {
	switch kind {
	case emu.AccessFetch:
		p.icache.Read(uint64(addr))
	case emu.AccessLoad:
		p.dcache.Read(uint64(addr))
	case emu.AccessStore:
		p.dcache.Write(uint64(addr))
	}
}

// ICache returns the instruction cache.
func (p *Profiler) ICache() *Cache {
	return p.icache
}

// DCache returns the data cache.
func (p *Profiler) DCache() *Cache {
	return p.dcache
}

// Reset clears both caches.
func (p *Profiler) Reset() {
	p.icache.Reset()
	p.dcache.Reset()
}

// Report writes a human-readable summary of both caches.
func (p *Profiler) Report(w io.Writer) error {
	for _, c := range []struct {
		name  string
		cache *Cache
	}{
		{"L1I", p.icache},
		{"L1D", p.dcache},
	} {
		s := c.cache.Stats()
		_, err := fmt.Fprintf(w,
			"%s: %d accesses (%d reads, %d writes), %d hits, %d misses, hit rate %.1f%%, %d evictions, %d writebacks\n",
			c.name, s.Accesses(), s.Reads, s.Writes, s.Hits, s.Misses,
			100*s.HitRate(), s.Evictions, s.Writebacks)
		if err != nil {
			return err
		}
	}
	return nil
}
