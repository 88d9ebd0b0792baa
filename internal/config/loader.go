package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Load resolves the configuration. Precedence, highest first: flags, env
// vars, config file, defaults.
//
// cfgFile may be empty. Only flags listed in keys (flag name to config key)
// and explicitly set are applied, so one flag name such as --family can feed
// different keys per command. Environment variables use the QMLKIT_ prefix
// with "__" for nesting: QMLKIT_KERNEL__FAMILY sets kernel.family.
func Load(cfgFile string, flags *pflag.FlagSet, keys map[string]string) (*Config, error) {
	k := koanf.New(defaultKeyDelimiter)

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), defaultKeyDelimiter), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, defaultKeyDelimiter, envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, defaultKeyDelimiter, k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := keys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ErrInvalid reports a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Validate checks the numeric settings the commands pass on to option
// constructors.
func (c *Config) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalid)
	case c.Representation.Size <= 0:
		return fmt.Errorf("representation.size %d: %w", c.Representation.Size, ErrInvalid)
	case !(c.Representation.Cut > 0):
		return fmt.Errorf("representation.cut %g: %w", c.Representation.Cut, ErrInvalid)
	case c.Output.Precision < 0:
		return fmt.Errorf("output.precision %d: %w", c.Output.Precision, ErrInvalid)
	}
	for sym, n := range c.Representation.ASize {
		if n < 0 {
			return fmt.Errorf("representation.asize[%s] %d: %w", sym, n, ErrInvalid)
		}
	}

	return nil
}

// envKey maps QMLKIT_KERNEL__FAMILY to kernel.family.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, envNestingSeparator, defaultKeyDelimiter)
}
