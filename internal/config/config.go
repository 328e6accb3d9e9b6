// Package config loads node configuration from a TOML file, with CLI flags
// taking precedence over file values at the call site (cmd/ledgerd).
package config

import (
	"fmt"
	"os"

	"github.com/naoina/toml"
)

// Config covers PoH timing, the recent-hash window size, HTTP listen
// address, and (for a validator) the leader URL to poll for slots.
type Config struct {
	TicksPerSlot     uint64 `toml:"ticks_per_slot"`
	HashesPerTick    uint64 `toml:"hashes_per_tick"`
	RecentHashWindow int    `toml:"recent_hash_window"`
	ListenAddr       string `toml:"listen_addr"`
	LeaderURL        string `toml:"leader_url"`
}

// Default returns the config with the documented defaults applied.
func Default() Config {
	return Config{
		TicksPerSlot:     64,
		HashesPerTick:    64,
		RecentHashWindow: 150,
		ListenAddr:       ":8080",
	}
}

// Load reads and parses a TOML file at path into a Config seeded with
// Default(), so a file only needs to override the fields it cares about.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
