package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cachesim/cachestats/stats"
)

// GridConfig is the YAML form of a parameter grid. Omitted keys keep the
// built-in values.
type GridConfig struct {
	BlockSizes          []int    `yaml:"block_sizes"`
	Assocs              []int    `yaml:"assocs"`
	ReplacementPolicies []string `yaml:"replacement_policies"`
	WritePolicies       []string `yaml:"write_policies"`
	DefaultBlockSize    *int     `yaml:"default_block_size"`
	DefaultAssoc        *int     `yaml:"default_assoc"`
	DefaultReplacement  string   `yaml:"default_replacement"`
	DefaultWrite        string   `yaml:"default_write"`
}

// LoadGridConfig parses a grid YAML file with strict field checking, so a
// misspelled key is an error rather than a silently ignored override.
func LoadGridConfig(path string) (stats.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return stats.Grid{}, fmt.Errorf("reading grid file: %w", err)
	}
	var cfg GridConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return stats.Grid{}, fmt.Errorf("parsing grid YAML %s: %w", path, err)
	}
	return cfg.Apply(stats.DefaultGrid())
}

// Apply overlays the configured values on base and validates the result.
func (c GridConfig) Apply(base stats.Grid) (stats.Grid, error) {
	g := base
	if len(c.BlockSizes) > 0 {
		g.BlockSizes = c.BlockSizes
	}
	if len(c.Assocs) > 0 {
		g.Assocs = c.Assocs
	}
	if len(c.ReplacementPolicies) > 0 {
		g.Replacements = nil
		for _, name := range c.ReplacementPolicies {
			rp, err := stats.ParseReplacementPolicy(name)
			if err != nil {
				return stats.Grid{}, err
			}
			g.Replacements = append(g.Replacements, rp)
		}
	}
	if len(c.WritePolicies) > 0 {
		g.Writes = nil
		for _, name := range c.WritePolicies {
			wp, err := stats.ParseWritePolicy(name)
			if err != nil {
				return stats.Grid{}, err
			}
			g.Writes = append(g.Writes, wp)
		}
	}
	if c.DefaultBlockSize != nil {
		g.DefaultBlockSize = *c.DefaultBlockSize
	}
	if c.DefaultAssoc != nil {
		g.DefaultAssoc = *c.DefaultAssoc
	}
	if c.DefaultReplacement != "" {
		rp, err := stats.ParseReplacementPolicy(c.DefaultReplacement)
		if err != nil {
			return stats.Grid{}, err
		}
		g.DefaultReplacement = rp
	}
	if c.DefaultWrite != "" {
		wp, err := stats.ParseWritePolicy(c.DefaultWrite)
		if err != nil {
			return stats.Grid{}, err
		}
		g.DefaultWrite = wp
	}
	if err := g.Validate(); err != nil {
		return stats.Grid{}, err
	}
	return g, nil
}
