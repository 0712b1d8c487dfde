// Package config holds the simulator configuration and its JSON
// persistence.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/mipssim/cache"
	"github.com/sarchlab/mipssim/emu"
)

// Config holds the settings of one simulator instance.
type Config struct {
	// MemorySize is the memory capacity in bytes. Must be a non-zero
	// multiple of 4. Default: 4096.
	MemorySize uint32 `json:"memory_size"`

	// StartAddress is the PC value after reset, used when the program image
	// carries no entry point. Default: 0x100.
	StartAddress uint32 `json:"start_address"`

	// MaxInstructions bounds the number of executed instructions.
	// 0 means no limit.
	MaxInstructions uint64 `json:"max_instructions"`

	// HaltOnSelfLoop stops a run at an instruction that branches to itself.
	// Default: true.
	HaltOnSelfLoop bool `json:"halt_on_self_loop"`

	// ICache is the instruction cache geometry used for profiling.
	ICache cache.Config `json:"icache"`

	// DCache is the data cache geometry used for profiling.
	DCache cache.Config `json:"dcache"`
}

// Default returns a Config matching the original single-cycle machine:
// 4 KiB memory with code starting at 0x100.
func Default() *Config {
	return &Config{
		MemorySize:      emu.DefaultMemorySize,
		StartAddress:    emu.DefaultStartAddress,
		MaxInstructions: 0,
		HaltOnSelfLoop:  true,
		ICache:          cache.DefaultL1IConfig(),
		DCache:          cache.DefaultL1DConfig(),
	}
}

// Load loads a Config from a JSON file. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Save writes the Config to a JSON file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a usable machine.
func (c *Config) Validate() error {
	if c.MemorySize == 0 {
		return fmt.Errorf("memory_size must be > 0")
	}
	if c.MemorySize%4 != 0 {
		return fmt.Errorf("memory_size must be a multiple of 4")
	}
	if c.StartAddress%4 != 0 {
		return fmt.Errorf("start_address must be word aligned")
	}
	if c.StartAddress >= c.MemorySize {
		return fmt.Errorf("start_address 0x%X is outside memory (size 0x%X)", c.StartAddress, c.MemorySize)
	}
	if err := c.ICache.Validate(); err != nil {
		return fmt.Errorf("icache: %w", err)
	}
	if err := c.DCache.Validate(); err != nil {
		return fmt.Errorf("dcache: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// EmulatorOptions translates the configuration into emulator options.
func (c *Config) EmulatorOptions() []emu.EmulatorOption {
	return []emu.EmulatorOption{
		emu.WithMemorySize(c.MemorySize),
		emu.WithStartAddress(c.StartAddress),
		emu.WithMaxInstructions(c.MaxInstructions),
		emu.WithHaltOnSelfLoop(c.HaltOnSelfLoop),
	}
}
