package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional project manifest, read from scadtree.toml.
type Config struct {
	Output string       `toml:"output"`
	Render RenderConfig `toml:"render"`
}

// RenderConfig carries global facet settings, emitted as special-variable
// assignments at the top of the script.
type RenderConfig struct {
	FA float64 `toml:"fa"`
	FS float64 `toml:"fs"`
	FN int     `toml:"fn"`
}

// configFor loads the manifest for a source file. An explicit path must
// exist; otherwise scadtree.toml beside the source is used when present,
// and a zero Config when it isn't.
func configFor(srcPath, explicit string) (Config, error) {
	var cfg Config

	path := explicit
	if path == "" {
		path = filepath.Join(filepath.Dir(srcPath), "scadtree.toml")
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// headerLines returns the $fa/$fs/$fn assignment lines for non-zero
// settings, in that order.
func (c Config) headerLines() []string {
	var lines []string
	if c.Render.FA != 0 {
		lines = append(lines, fmt.Sprintf("$fa = %g;", c.Render.FA))
	}
	if c.Render.FS != 0 {
		lines = append(lines, fmt.Sprintf("$fs = %g;", c.Render.FS))
	}
	if c.Render.FN != 0 {
		lines = append(lines, fmt.Sprintf("$fn = %d;", c.Render.FN))
	}
	return lines
}
