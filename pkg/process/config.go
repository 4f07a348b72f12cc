package process

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is one allow-listed executable exposed as a command.
type Config struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args,omitempty" json:"args,omitempty"`
	Environment map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Dir         string            `yaml:"dir,omitempty" json:"dir,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
}

// ConfigFile represents the structure of tools.yaml.
type ConfigFile struct {
	Tools []Config `yaml:"tools" json:"tools"`
}

// LoadTools reads a tools file (YAML, or JSON for .json files).
// A missing file means no tools are configured. Entries without a name are skipped.
func LoadTools(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tools config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	tools := make([]Config, 0, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		if tool.Name == "" {
			continue
		}
		tools = append(tools, tool)
	}
	return tools, nil
}
