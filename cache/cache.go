// Package cache provides functional cache modelling using Akita cache
// components. Caches track tags only: they classify accesses as hits or
// misses but never hold data and never delay the core.
package cache

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds cache configuration parameters.
type Config struct {
	// Size in bytes
	Size int `json:"size"`
	// Associativity (number of ways)
	Associativity int `json:"associativity"`
	// BlockSize in bytes (cache line size)
	BlockSize int `json:"block_size"`
}

// DefaultL1IConfig returns a small instruction cache sized for the
// simulator's default 4 KiB memory: 512 B, 2-way, 16 B lines.
func DefaultL1IConfig() Config {
	return Config{
		Size:          512,
		Associativity: 2,
		BlockSize:     16,
	}
}

// DefaultL1DConfig returns a small data cache: 512 B, 4-way, 16 B lines.
func DefaultL1DConfig() Config {
	return Config{
		Size:          512,
		Associativity: 4,
		BlockSize:     16,
	}
}

// Validate checks that the geometry describes a whole number of sets of
// power-of-two sized blocks.
func (c Config) Validate() error {
	if c.Size <= 0 || c.Associativity <= 0 || c.BlockSize <= 0 {
		return fmt.Errorf("cache size, associativity and block_size must be > 0")
	}
	if c.BlockSize&(c.BlockSize-1) != 0 {
		return fmt.Errorf("cache block_size must be a power of two, got %d", c.BlockSize)
	}
	if c.Size%(c.Associativity*c.BlockSize) != 0 {
		return fmt.Errorf("cache size %d is not a multiple of associativity*block_size (%d)",
			c.Size, c.Associativity*c.BlockSize)
	}
	return nil
}

// NumSets returns the number of sets.
func (c Config) NumSets() int {
	return c.Size / (c.Associativity * c.BlockSize)
}

// AccessResult contains the result of a cache access.
type AccessResult struct {
	// Hit indicates whether the access was a cache hit.
	Hit bool
	// Evicted is true if a valid block was replaced.
	Evicted bool
	// EvictedAddr is the address of the evicted block (if Evicted is true).
	EvictedAddr uint64
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Writebacks uint64
}

// Accesses returns the total number of reads and writes.
func (s Statistics) Accesses() uint64 {
	return s.Reads + s.Writes
}

// HitRate returns the fraction of accesses that hit, or 0 without accesses.
func (s Statistics) HitRate() float64 {
	if s.Accesses() == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses())
}

// Cache is a write-back, write-allocate, LRU cache tag array backed by an
// Akita directory.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Statistics
}

// New creates a new cache with the given configuration.
func New(config Config) *Cache {
	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			config.NumSets(),
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockAddr(addr uint64) uint64 {
	return (addr / uint64(c.config.BlockSize)) * uint64(c.config.BlockSize)
}

// Read performs a cache read operation.
func (c *Cache) Read(addr uint64) AccessResult {
	c.stats.Reads++
	return c.access(addr, false)
}

// Write performs a cache write operation.
// Uses write-allocate policy: on miss, the block is allocated then dirtied.
func (c *Cache) Write(addr uint64) AccessResult {
	c.stats.Writes++
	return c.access(addr, true)
}

func (c *Cache) access(addr uint64, isWrite bool) AccessResult {
	blockAddr := c.blockAddr(addr)

	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block) // Update LRU
		if isWrite {
			block.IsDirty = true
		}
		return AccessResult{Hit: true}
	}

	c.stats.Misses++
	return c.handleMiss(blockAddr, isWrite)
}

// handleMiss allocates a block for blockAddr, evicting the LRU victim.
func (c *Cache) handleMiss(blockAddr uint64, isWrite bool) AccessResult {
	result := AccessResult{}

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return result
	}

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = victim.Tag // Tag stores block-aligned address
		if victim.IsDirty {
			c.stats.Writebacks++
		}
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = isWrite

	c.directory.Visit(victim) // Update LRU

	return result
}

// Contains reports whether the block holding addr is cached.
func (c *Cache) Contains(addr uint64) bool {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	return block != nil && block.IsValid
}

// Invalidate marks a cache line as invalid.
func (c *Cache) Invalidate(addr uint64) {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		block.IsDirty = false
	}
}

// Flush counts a writeback for every dirty block and invalidates all blocks.
func (c *Cache) Flush() {
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid && block.IsDirty {
				c.stats.Writebacks++
			}
			block.IsValid = false
			block.IsDirty = false
		}
	}
}

// Reset invalidates all cache lines and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
