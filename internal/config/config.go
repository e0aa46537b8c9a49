// Package config loads the mfdb YAML configuration file.
//
//	sources:
//	  - /data/refseq
//	  - extra.fa
//	suffixes: [.fa, .fa.gz]
//	meta_index: true
//	write_index: true
//	log_level: info
//	format: text
//
// Relative sources are taken relative to the file's directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "jsonl", "fasta"}

// Config holds host settings. Flags given on the command line override it.
type Config struct {
	Sources    []string `yaml:"sources"`
	Suffixes   []string `yaml:"suffixes"`
	MetaIndex  bool     `yaml:"meta_index"`
	WriteIndex bool     `yaml:"write_index"`
	LogLevel   string   `yaml:"log_level"`
	Format     string   `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		WriteIndex: true,
		LogLevel:   "warn",
		Format:     "text",
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i, s := range cfg.Sources {
		if !filepath.IsAbs(s) {
			cfg.Sources[i] = filepath.Join(base, s)
		}
	}
	return cfg, nil
}

// Parse decodes YAML over Default. Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("format: %q is not one of %v", c.Format, Formats)
	}
	for i, s := range c.Suffixes {
		if s == "" || s == "." {
			return fmt.Errorf("suffixes[%d]: empty suffix", i)
		}
	}
	for i, s := range c.Sources {
		if s == "" {
			return fmt.Errorf("sources[%d]: empty path", i)
		}
	}
	return nil
}

func validFormat(f string) bool {
	for _, ok := range Formats {
		if f == ok {
			return true
		}
	}
	return false
}
