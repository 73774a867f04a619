// Package config provides the configuration loader for drift.
package config

import (
	"os"
	"time"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the config file looked up when no path is given.
const DefaultFilename = "drift.yaml"

// EnvPath is the environment variable the CLI uses to hand the --config flag
// to the wiring layer.
const EnvPath = "DRIFT_CONFIG"

// Config is the loaded runtime configuration.
type Config struct {
	// Relays are the websocket URLs contact lists are fetched from.
	Relays []string
	// Root is the identity graphs are built for, usually the local user's
	// public key. May be empty until the application sets one.
	Root domain.Identity

	params domain.Params
}

// Params returns the engine parameters derived from the file, with defaults
// for everything the file left unset.
func (c *Config) Params() domain.Params { return c.params }

// driftfile is the YAML structure of drift.yaml.
type driftfile struct {
	Relays []string `yaml:"relays"`
	Root   string   `yaml:"root"`
	Trust  struct {
		MaxDepth           int     `yaml:"maxDepth"`
		TrustedMaxDistance int     `yaml:"trustedMaxDistance"`
		DecayFactor        float64 `yaml:"decayFactor"`
		MaxFollowsPerLevel int     `yaml:"maxFollowsPerLevel"`
	} `yaml:"trust"`
	Cache struct {
		ContactTTL   string `yaml:"contactTTL"`
		GraphTTL     string `yaml:"graphTTL"`
		BatchSize    int    `yaml:"batchSize"`
		FetchTimeout string `yaml:"fetchTimeout"`
	} `yaml:"cache"`
}

// Load reads a configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse decodes configuration bytes, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var file driftfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	params := domain.DefaultParams()
	if file.Trust.MaxDepth > 0 {
		params.MaxDepth = file.Trust.MaxDepth
	}
	if file.Trust.TrustedMaxDistance > 0 {
		params.TrustedMaxDistance = file.Trust.TrustedMaxDistance
	}
	if file.Trust.DecayFactor > 0 {
		params.DecayFactor = file.Trust.DecayFactor
	}
	if file.Trust.MaxFollowsPerLevel > 0 {
		params.MaxFollowsPerLevel = file.Trust.MaxFollowsPerLevel
	}
	if file.Cache.BatchSize > 0 {
		params.FetchBatchSize = file.Cache.BatchSize
	}
	if err := overrideDuration(&params.ContactTTL, file.Cache.ContactTTL, "contactTTL"); err != nil {
		return nil, err
	}
	if err := overrideDuration(&params.GraphTTL, file.Cache.GraphTTL, "graphTTL"); err != nil {
		return nil, err
	}
	if err := overrideDuration(&params.FetchTimeout, file.Cache.FetchTimeout, "fetchTimeout"); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if len(file.Relays) == 0 {
		return nil, zerr.New("config lists no relays")
	}

	return &Config{
		Relays: file.Relays,
		Root:   domain.Identity(file.Root),
		params: params,
	}, nil
}

func overrideDuration(dst *time.Duration, raw, field string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid duration in config"), "field", field)
	}
	*dst = d
	return nil
}
