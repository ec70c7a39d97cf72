package config

import (
	"os"
	"path/filepath"

	"github.com/ecopia-map/icocloud/tools"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const fileName = "icocloud.yaml"

// Load loads configuration with priority: defaults < file. Flags are applied on top
// with ApplyConvertFlags. An empty path looks for the file in the standard locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "loading config from %s", path)
		}
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + fileName,
		filepath.Join(tools.GetRootFolder(), fileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
