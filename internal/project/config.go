package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the decoded twig.toml.
type Config struct {
	Lex    LexConfig    `toml:"lex"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

// LexConfig is the [lex] table.
type LexConfig struct {
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
	Extensions     []string `toml:"extensions"`
	NormalizeNFC   bool     `toml:"normalize_nfc"`
}

// OutputConfig is the [output] table.
type OutputConfig struct {
	Format string `toml:"format"` // pretty|json|msgpack
	Color  string `toml:"color"`  // auto|on|off
}

// CacheConfig is the [cache] table.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// ErrUnknownKeys reports keys the decoder did not recognise.
var ErrUnknownKeys = errors.New("unknown keys")

// Default returns the configuration used when no twig.toml exists.
func Default() Config {
	return Config{
		Lex: LexConfig{
			MaxDiagnostics: 100,
			Extensions:     []string{".twig"},
		},
		Output: OutputConfig{
			Format: "pretty",
			Color:  "auto",
		},
	}
}

// Load parses path on top of Default. Tables and keys absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}
	// пустой список расширений отключил бы обход директорий
	if meta.IsDefined("lex", "extensions") && len(cfg.Lex.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [lex].extensions must not be empty", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds twig.toml upwards from startDir and loads it.
// When no file exists it returns Default and an empty path.
func Discover(startDir string) (cfg Config, path string, err error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err = Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Lex.MaxDiagnostics < 0 {
		return fmt.Errorf("[lex].max_diagnostics must be >= 0, got %d", c.Lex.MaxDiagnostics)
	}
	if c.Lex.Jobs < 0 {
		return fmt.Errorf("[lex].jobs must be >= 0, got %d", c.Lex.Jobs)
	}
	for _, ext := range c.Lex.Extensions {
		if strings.TrimSpace(ext) == "" {
			return errors.New("[lex].extensions contains an empty entry")
		}
	}
	switch c.Output.Format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("[output].format %q (expected pretty|json|msgpack)", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color %q (expected auto|on|off)", c.Output.Color)
	}
	return nil
}

// Write encodes cfg into path, keeping the mode of an existing file.
func Write(path string, cfg Config) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("%s: failed to encode TOML: %w", path, err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
