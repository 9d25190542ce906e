// Package config loads process configuration for both the offline
// preprocessor and the online query engine from an explicit TOML file.
// Production deployments should prefer explicit configured paths over the
// upward-directory-walk discovery that package dict offers, as a separate
// opt-in, for development convenience.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full process configuration. Zero value is not usable;
// callers should start from Default and override fields as needed.
type Config struct {
	// Dictionary holds the persisted artifact paths.
	Dictionary DictionaryConfig `toml:"dictionary"`
	// Search holds query-time tuning knobs.
	Search SearchConfig `toml:"search"`
	// Corpus holds preprocessor input configuration.
	Corpus CorpusConfig `toml:"corpus"`
}

// DictionaryConfig names the two persisted dictionary artifacts.
type DictionaryConfig struct {
	TextListPath string `toml:"text_list_path"`
	FSTMapPath   string `toml:"fst_map_path"`
}

// SearchConfig tunes the retrieval planner.
type SearchConfig struct {
	// FSTThreshold is the wildcard-count plan-selection threshold: below
	// it, the planner walks the FST; at or above it, the planner falls
	// back to a linear scan. Exposed here rather than hard-coded so it can
	// be tuned and benchmarked per deployment.
	FSTThreshold int `toml:"fst_threshold"`
}

// CorpusConfig configures the offline preprocessor.
type CorpusConfig struct {
	Shards []string `toml:"shards"`
	Cutoff uint64   `toml:"cutoff"`
}

// DefaultFSTThreshold is the empirical q < 6 cutoff below which FST
// traversal outperforms a linear scan.
const DefaultFSTThreshold = 6

// DefaultCutoff is the default frequency cutoff for dictionary inclusion.
const DefaultCutoff = 10_000

// Default returns a Config with the default artifact paths and tuning
// constants. Callers typically load a TOML file over this to fill in
// corpus.shards and any path overrides.
func Default() Config {
	return Config{
		Dictionary: DictionaryConfig{
			TextListPath: "data/processed/word_frequency.txt",
			FSTMapPath:   "data/processed/word_frequency.fst",
		},
		Search: SearchConfig{FSTThreshold: DefaultFSTThreshold},
		Corpus: CorpusConfig{Cutoff: DefaultCutoff},
	}
}

// Load reads and decodes a TOML config file at path, starting from Default
// and overriding only the fields present in the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: load %q: %w", path, err)
	}
	return cfg, nil
}
