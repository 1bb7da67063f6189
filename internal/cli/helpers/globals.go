package helpers

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/coral-mesh/rowcut/internal/config"
	"github.com/coral-mesh/rowcut/internal/logging"
)

// Globals holds the persistent flags shared by every command.
type Globals struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string

	// Stderr receives log output. Nil means os.Stderr.
	Stderr io.Writer
}

// AddFlags adds the global flags to a FlagSet.
func (g *Globals) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&g.ConfigPath, "config", "", "Config file (default ~/.rowcut/config.yaml, or $ROWCUT_CONFIG)")
	flags.StringVar(&g.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	flags.StringVar(&g.LogFormat, "log-format", "", "Log format (auto, pretty, json)")
}

// LoadConfig loads the layered configuration and applies the global flag
// overrides on top of it.
func (g *Globals) LoadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader(g.ConfigPath).Load()
	if err != nil {
		return nil, err
	}

	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if g.LogLevel != "" || g.LogFormat != "" {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Logger builds the run logger described by cfg.
func (g *Globals) Logger(cfg *config.Config) zerolog.Logger {
	out := g.Stderr
	if out == nil {
		out = os.Stderr
	}

	pretty := false
	switch cfg.Log.Format {
	case config.LogFormatPretty:
		pretty = true
	case config.LogFormatAuto, "":
		pretty = logging.IsTerminal(out)
	}

	return logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Pretty: pretty,
		Output: out,
		RunID:  logging.NewRunID(),
	})
}
