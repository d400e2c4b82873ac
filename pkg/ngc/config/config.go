package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/ngc/pkg/ngc/internalerr"
)

// Config represents the analyzer defaults file
type Config struct {
	// Query holds default mini-grammar tokens, used when the command
	// line carries none.
	Query []string `yaml:"query"`
	// Exclude lists literal terms turned into not-contains filters.
	Exclude []string `yaml:"exclude"`
}

// Load loads defaults from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	return &cfg, nil
}

// LoadExcludeFile loads exclude terms from a plain text file.
// One term per line; blank lines and # comments are skipped.
func LoadExcludeFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exclude file %s: %w", path, err)
	}

	var terms []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}

	return terms, nil
}
