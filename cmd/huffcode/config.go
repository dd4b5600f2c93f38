package main

import (
	"fmt"
	"strings"

	kYaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "HUFFCODE_"

// Conf wraps koanf with getters that fall back to a default when the key is
// unset.
type Conf struct {
	*koanf.Koanf
}

// LoadConf loads the YAML file at path, if path is non-empty, and then the
// HUFFCODE_* environment variables.  HUFFCODE_LOGGER_LEVEL sets
// "logger.level", and so on.
func LoadConf(path string) (*Conf, error) {
	conf := &Conf{Koanf: koanf.New(".")}

	if path != "" {
		if err := conf.Load(file.Provider(path), kYaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %q: %w", path, err)
		}
	}

	err := conf.Load(env.ProviderWithValue(envPrefix, ".", func(s string, v string) (string, interface{}) {
		key := strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", -1)
		return key, v
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	return conf, nil
}

func (c *Conf) Bool(path string, defaultValues ...bool) bool {
	if !c.Koanf.Exists(path) && len(defaultValues) > 0 {
		return defaultValues[0]
	}
	return c.Koanf.Bool(path)
}

func (c *Conf) String(path string, defaultValues ...string) string {
	if !c.Koanf.Exists(path) && len(defaultValues) > 0 {
		return defaultValues[0]
	}
	return c.Koanf.String(path)
}
