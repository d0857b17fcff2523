// Package config loads the optional TOML file that supplies defaults for
// the symtypes CLI (worker count, diff context size), adapted from the
// teacher's own Config struct and its go-toml-based detection of foreign
// build manifests — here repurposed as the application's own config format
// rather than a third party's.
package config

import (
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/standardbeagle/symtypes/internal/symerr"
)

// DefaultPath is the config file consulted when -config is not given.
const DefaultPath = ".symtypes.toml"

// Config holds CLI defaults overridable by explicit flags.
type Config struct {
	WorkerCount int  `toml:"worker_count"`
	DiffContext int  `toml:"diff_context"`
	Verbose     bool `toml:"verbose"`
}

// Default returns built-in defaults: one worker per CPU, 3 lines of diff
// context, quiet.
func Default() Config {
	return Config{
		WorkerCount: runtime.NumCPU(),
		DiffContext: 3,
		Verbose:     false,
	}
}

// Load reads path and merges it over Default(). A missing file is not an
// error — the defaults apply unchanged. A malformed file is a CLIError.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, symerr.NewIOError("read", path, err)
	}

	var parsed Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return cfg, symerr.NewCLIError("-config", "malformed config file "+path+": "+err.Error())
	}

	if parsed.WorkerCount > 0 {
		cfg.WorkerCount = parsed.WorkerCount
	}
	if parsed.DiffContext > 0 {
		cfg.DiffContext = parsed.DiffContext
	}
	cfg.Verbose = cfg.Verbose || parsed.Verbose

	return cfg, nil
}
