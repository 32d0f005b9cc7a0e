// Package config loads and saves replay run configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/replaylab/internal/osim"
)

const (
	DefaultType    = "double"
	DefaultWorkers = 1
	DefaultDataDir = ".replaylab"
)

type Config struct {
	Model    string   `yaml:"model"`
	States   string   `yaml:"states"`
	Controls string   `yaml:"controls"`
	Discrete string   `yaml:"discrete"`
	Patterns []string `yaml:"patterns"`
	Type     string   `yaml:"type"`
	Workers  int      `yaml:"workers"`
	DataDir  string   `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:   "pendulum",
		Type:    DefaultType,
		Workers: DefaultWorkers,
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ValueType maps the configured type name to the output value type requested
// from the catalog.
func (c *Config) ValueType() (osim.ValueType, error) {
	switch c.Type {
	case "", "double":
		return osim.TypeDouble, nil
	case "vec3":
		return osim.TypeVec3, nil
	case "mat3":
		return osim.TypeMat3, nil
	default:
		return 0, fmt.Errorf("config: unknown value type %q", c.Type)
	}
}
