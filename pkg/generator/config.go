package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	/* ConfigFileName is picked up from the input directory when no explicit
	config is given. */
	ConfigFileName = "httperrgen.yaml"

	DefaultSuffix = "gen"

	defaultRuntimeImport = "github.com/heat1q/httperrgen/pkg/httperr"
)

/* Config controls generation for one directory. The zero value means: infer
the package, use the default suffix and the bundled runtime. */
type Config struct {
	/* Package overrides the inferred output package name. */
	Package string `yaml:"package"`
	/* Suffix names generated files <schema>.<suffix>.go. */
	Suffix string `yaml:"suffix"`
	/* RuntimeImport is the import path of the httperr runtime package. */
	RuntimeImport string `yaml:"runtime_import"`
}

/* LoadConfig reads a config file. Unknown keys are rejected. */
func LoadConfig(path string) (*Config, error) {
	const errPrefix = `generator.LoadConfig: `
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(errPrefix+`%w`, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf(errPrefix+`%q: %w`, path, err)
	}
	return cfg, nil
}

/* resolveConfig settles the effective config for a directory without
mutating the caller's value. */
func resolveConfig(dir string, cfg *Config) (*Config, error) {
	if cfg == nil {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		} else {
			cfg = &Config{}
		}
	}
	out := *cfg
	if out.Suffix == "" {
		out.Suffix = DefaultSuffix
	}
	if out.RuntimeImport == "" {
		out.RuntimeImport = defaultRuntimeImport
	}
	return &out, nil
}
