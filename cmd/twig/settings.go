package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"twig/internal/project"
)

// settings is twig.toml merged with command-line overrides.
type settings struct {
	cfg        project.Config
	configPath string
	quiet      bool
	timings    bool
}

var current settings

// loadSettings reads twig.toml (explicit --config or found upwards) and
// applies persistent flags that were set explicitly.
func loadSettings(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg project.Config
	if configPath != "" {
		cfg, err = project.Load(configPath)
	} else {
		cfg, configPath, err = project.Discover(".")
	}
	if err != nil {
		return err
	}

	if flags.Changed("max-diagnostics") {
		if cfg.Lex.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("color") {
		color, _ := flags.GetString("color")
		cfg.Output.Color = strings.ToLower(strings.TrimSpace(color))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")
	current = settings{cfg: cfg, configPath: configPath, quiet: quiet, timings: timings}
	return nil
}

// useColor resolves the colour mode for f.
func (s settings) useColor(f *os.File) bool {
	switch s.cfg.Output.Color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
