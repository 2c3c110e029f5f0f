// Package config loads the optional TOML configuration shared by the
// language server and the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Log         LogConfig         `toml:"log"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type LogConfig struct {
	// Verbosity feeds commonlog: 0 quiet, 1 info, 2 debug.
	Verbosity int `toml:"verbosity"`
}

type DiagnosticsConfig struct {
	// ReportSkipped surfaces lines the parser silently dropped as
	// hint-severity diagnostics.
	ReportSkipped bool `toml:"report-skipped"`
	// ReportUnrecognized surfaces characters the tokenizer could not
	// classify.
	ReportUnrecognized bool `toml:"report-unrecognized"`
	// ReportUnusedStreams flags streams that are defined but never fed
	// to or produced by a unit.
	ReportUnusedStreams bool `toml:"report-unused-streams"`
}

func Default() Config {
	return Config{
		Log: LogConfig{Verbosity: 1},
		Diagnostics: DiagnosticsConfig{
			ReportUnrecognized:  true,
			ReportUnusedStreams: true,
		},
	}
}

// Load reads path over the defaults. A missing path is not an error;
// a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
