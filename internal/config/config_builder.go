package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

// configBuilder collects the configuration layers. Each with* step records
// its error in err instead of failing early, so build reports all of them.
type configBuilder struct {
	args []string

	env   *Settings
	flags *Settings
	json  *Settings

	err error
}

func newConfigBuilder(args []string) *configBuilder {
	return &configBuilder{args: args}
}

// layers returns the non-nil sources in merge order, lowest priority first.
func (b *configBuilder) layers() []*Settings {
	layers := make([]*Settings, 0, 4)
	layers = append(layers, defaultSettings())
	for _, l := range []*Settings{b.env, b.flags, b.json} {
		if l != nil {
			layers = append(layers, l)
		}
	}
	return layers
}

func (b *configBuilder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%w: error occured during building config: %w", ErrImproperlyConfigured, b.err)
	}

	cfg := new(Settings)
	for _, layer := range b.layers() {
		if err := mergo.Merge(cfg, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := resolve(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (b *configBuilder) withFlags() *configBuilder {
	flags, err := ParseFlags(b.args)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error parsing flags: %w", err))
		return b
	}

	b.flags = flags
	return b
}

// withDotEnv must run before withEnv: it only exports variables into the
// process environment.
func (b *configBuilder) withDotEnv() *configBuilder {
	explicit := os.Getenv("ENV_FILE")
	baseDir := os.Getenv("BASE_DIR")
	if b.flags != nil {
		if b.flags.EnvFilePath != "" {
			explicit = b.flags.EnvFilePath
		}
		if b.flags.BaseDir != "" {
			baseDir = b.flags.BaseDir
		}
	}

	if err := loadDotEnv(dotEnvPath(explicit, baseDir)); err != nil {
		b.err = errors.Join(b.err, err)
	}

	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &Settings{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.env = envCfg
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range []*Settings{b.env, b.flags} {
		if cfg != nil && cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.json = jsonCfg

	return b
}
