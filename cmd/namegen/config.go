package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

// GenerateConfig holds the settings for building the model and generating names.
type GenerateConfig struct {
	Count            int     `json:"count"`
	CorpusPath       string  `json:"corpus_path"`
	Order            int     `json:"order"`
	Seed             uint64  `json:"seed"`
	MaxLength        int     `json:"max_length"`
	MinLength        int     `json:"min_length"`
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"top_k"`
	LengthTarget     bool    `json:"length_target"`
	GroupRuns        bool    `json:"group_runs"`
	Capitalize       bool    `json:"capitalize"`
	RejectCorpus     bool    `json:"reject_corpus"`
	RejectDuplicates bool    `json:"reject_duplicates"`
	MaxAttempts      int     `json:"max_attempts"`
	PruneBelow       int     `json:"prune_below"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel    string          `json:"log_level"`
	HistoryPath string          `json:"history_path"`
	OutputPath  string          `json:"output_path"`
	Generate    *GenerateConfig `json:"generate_config"`
}

// DefaultGenerateConfig creates a generation configuration with default values.
// An empty CorpusPath selects the bundled name list.
func DefaultGenerateConfig() *GenerateConfig {
	return &GenerateConfig{
		Count:            25,
		CorpusPath:       "",
		Order:            2,
		Seed:             0,
		MaxLength:        20,
		MinLength:        2,
		Temperature:      1.0,
		TopK:             0,
		LengthTarget:     false,
		GroupRuns:        false,
		Capitalize:       true,
		RejectCorpus:     true,
		RejectDuplicates: true,
		MaxAttempts:      0,
		PruneBelow:       0,
	}
}

// DefaultConfig returns a Config with default values and no history.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "warn",
		HistoryPath: "",
		OutputPath:  "",
		Generate:    DefaultGenerateConfig(),
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values. An empty
// path returns the defaults without touching the filesystem.
func LoadConfig(path string, logger *slog.Logger) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Log a warning instead of failing, as generation can still run with defaults.
				logger.Warn("Failed to write default config file", "path", path, "error", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Generate == nil {
		config.Generate = DefaultGenerateConfig()
	}
	return config, nil
}

// applyFlags copies every flag the user set explicitly over the loaded config.
func applyFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()
	gen := config.Generate
	var err error

	set := func(name string, apply func() error) {
		if err == nil && flags.Lookup(name) != nil && flags.Changed(name) {
			err = apply()
		}
	}

	set("log-level", func() (e error) { config.LogLevel, e = flags.GetString("log-level"); return })
	set("history", func() (e error) { config.HistoryPath, e = flags.GetString("history"); return })
	set("out", func() (e error) { config.OutputPath, e = flags.GetString("out"); return })
	set("count", func() (e error) { gen.Count, e = flags.GetInt("count"); return })
	set("path", func() (e error) { gen.CorpusPath, e = flags.GetString("path"); return })
	set("order", func() (e error) { gen.Order, e = flags.GetInt("order"); return })
	set("seed", func() (e error) { gen.Seed, e = flags.GetUint64("seed"); return })
	set("max-length", func() (e error) { gen.MaxLength, e = flags.GetInt("max-length"); return })
	set("min-length", func() (e error) { gen.MinLength, e = flags.GetInt("min-length"); return })
	set("temperature", func() (e error) { gen.Temperature, e = flags.GetFloat64("temperature"); return })
	set("top-k", func() (e error) { gen.TopK, e = flags.GetInt("top-k"); return })
	set("length-target", func() (e error) { gen.LengthTarget, e = flags.GetBool("length-target"); return })
	set("runs", func() (e error) { gen.GroupRuns, e = flags.GetBool("runs"); return })
	set("max-attempts", func() (e error) { gen.MaxAttempts, e = flags.GetInt("max-attempts"); return })
	set("prune", func() (e error) { gen.PruneBelow, e = flags.GetInt("prune"); return })
	set("no-capitalize", func() error {
		off, e := flags.GetBool("no-capitalize")
		gen.Capitalize = !off
		return e
	})
	set("allow-corpus", func() error {
		allow, e := flags.GetBool("allow-corpus")
		gen.RejectCorpus = !allow
		return e
	})
	set("allow-duplicates", func() error {
		allow, e := flags.GetBool("allow-duplicates")
		gen.RejectDuplicates = !allow
		return e
	})
	return err
}

// Validate reports configuration values the generator cannot work with.
func (c *Config) Validate() error {
	if c.Generate.Count <= 0 {
		return fmt.Errorf("count must be a positive integer, got %d", c.Generate.Count)
	}
	if c.Generate.Order <= 0 {
		return fmt.Errorf("order must be a positive integer, got %d", c.Generate.Order)
	}
	if c.Generate.MaxLength <= 0 {
		return fmt.Errorf("max length must be a positive integer, got %d", c.Generate.MaxLength)
	}
	return nil
}

// newLogger builds the CLI logger. Logs go to w so that stdout only carries names.
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
