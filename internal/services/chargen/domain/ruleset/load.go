package ruleset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultRuleset []byte

// Default returns the validated ruleset embedded in the binary.
func Default() (Config, error) {
	cfg, err := Parse(defaultRuleset)
	if err != nil {
		return Config{}, fmt.Errorf("parse embedded ruleset: %w", err)
	}
	return cfg, nil
}

// Parse decodes a YAML ruleset document and validates it.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode ruleset: %w", err)
	}
	return Validate(cfg)
}

// LoadFile reads and validates the ruleset at path.
// An empty path loads the embedded default ruleset.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read ruleset %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load ruleset %s: %w", path, err)
	}
	return cfg, nil
}
