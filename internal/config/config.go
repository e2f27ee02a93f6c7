package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rinex-ng/internal/rinex"
)

type Config struct {
	Input   InputConfig   `yaml:"input"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type InputConfig struct {
	Path string `yaml:"path"`
	// Select retains only these observable codes; empty keeps every
	// declared type. SelectBySystem overrides it per system letter.
	Select         []string            `yaml:"select"`
	SelectBySystem map[string][]string `yaml:"select_by_system"`
}

type StoreConfig struct {
	// Save writes the parsed arrays to a container file after parsing.
	Save string `yaml:"save"`
	// Load reads a previously saved container instead of parsing input.
	Load string `yaml:"load"`
}

type MetricsConfig struct {
	// Listen enables a Prometheus /metrics endpoint, e.g. "127.0.0.1:9090".
	Listen string `yaml:"listen"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Store.Save != "" && cfg.Store.Load != "" {
		return Config{}, fmt.Errorf("store.save and store.load cannot both be set")
	}
	if cfg.Input.Path == "" && cfg.Store.Load == "" {
		return Config{}, fmt.Errorf("input.path is required unless store.load is set")
	}
	if cfg.Input.Path != "" && cfg.Store.Load != "" {
		return Config{}, fmt.Errorf("input.path and store.load cannot both be set")
	}
	for sys := range cfg.Input.SelectBySystem {
		if len(sys) != 1 || sys[0] < 'A' || sys[0] > 'Z' {
			return Config{}, fmt.Errorf("select_by_system key %q is not a system letter", sys)
		}
	}

	return cfg, nil
}

// ParseOptions converts the YAML selection lists into the engine's options.
func (c Config) ParseOptions() rinex.Options {
	var opts rinex.Options
	for _, t := range c.Input.Select {
		opts.Select = append(opts.Select, rinex.ObservableType(t))
	}
	if len(c.Input.SelectBySystem) > 0 {
		opts.SelectBySystem = make(map[byte][]rinex.ObservableType, len(c.Input.SelectBySystem))
		for sys, types := range c.Input.SelectBySystem {
			list := make([]rinex.ObservableType, 0, len(types))
			for _, t := range types {
				list = append(list, rinex.ObservableType(t))
			}
			opts.SelectBySystem[sys[0]] = list
		}
	}
	return opts
}
