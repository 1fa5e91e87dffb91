// Package config loads the VM's tunable capacities from the environment
// and, optionally, a YAML file, following the mna ecosystem's convention
// of small env-tagged structs (github.com/caarlos0/env) layered under an
// explicit file for anything that warrants being checked in.
package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/veld-lang/veld/lang/machine"
)

// VM holds the capacities that bound a single execution: how deep the
// value stack and call-frame stack may grow before failing with a
// stack-overflow/frame-overflow runtime error, mirroring the fixed
// STACK_LIMIT/MAX_FRAMES constants of the reference engine this was
// ported from.
type VM struct {
	StackLimit int `env:"STACK_LIMIT" yaml:"stackLimit"`
	MaxFrames  int `env:"MAX_FRAMES" yaml:"maxFrames"`
	RandomSeed uint64 `env:"RANDOM_SEED" yaml:"randomSeed"`
}

// Default returns the engine's built-in defaults, unaffected by the
// environment or any file.
func Default() VM {
	return VM{
		StackLimit: machine.DefaultStackLimit,
		MaxFrames:  machine.DefaultMaxFrames,
		RandomSeed: 1,
	}
}

// Load starts from Default, overlays path (if non-empty) as a YAML file,
// then overlays VELD_* environment variables, the latter taking
// precedence so a deployment can always override a checked-in file.
func Load(path string) (VM, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return VM{}, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return VM{}, err
		}
	}
	if err := env.Parse(&cfg, env.Options{Prefix: "VELD_"}); err != nil {
		return VM{}, err
	}
	return cfg, nil
}

// Options converts cfg into the machine.Option values New expects.
func (cfg VM) Options() []machine.Option {
	return []machine.Option{
		machine.WithStackLimit(cfg.StackLimit),
		machine.WithMaxFrames(cfg.MaxFrames),
	}
}
