package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// allowedSuffixes are the file name endings an inventory source must
// carry to be accepted.
var allowedSuffixes = []string{
	"scaleway.yaml",
	"scaleway.yml",
	"scw.yaml",
	"scw.yml",
}

// VerifyPath reports whether path names a plausible inventory source
// file. Only the file name suffix is checked; content validation happens
// in Load.
func VerifyPath(path string) bool {
	name := filepath.Base(path)
	for _, suffix := range allowedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Load reads and validates an inventory source file. A .env file next to
// the working directory is loaded first so SCW_* variables set there are
// visible to client construction.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	if !VerifyPath(path) {
		return nil, fmt.Errorf(
			"inventory source file name must end with one of: %s",
			strings.Join(allowedSuffixes, ", "),
		)
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving source path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading inventory source: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing inventory source %s: %w", path, err)
	}

	cfg.SourcePath = resolved
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inventory source %s: %w", path, err)
	}

	log.Debug().
		Str("source", resolved).
		Strs("zones", cfg.Zones).
		Strs("tags", cfg.Tags).
		Strs("hostnames", cfg.Hostnames).
		Bool("cache", cfg.Cache).
		Msg("Inventory source loaded")

	return &cfg, nil
}
