package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads and validates the simulation configuration.
// Search order: customPath -> ~/.skydash/config.yaml -> ./configs/skydash.yaml -> embedded default.
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes. Unknown keys and invalid values are errors.
func Load(customPath string) (Config, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

func load(customPath string) (Config, error) {
	base := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decodeOnto(&base, data); err != nil {
			return base, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return base, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "skydash.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := base
		if err := decodeOnto(&cfg, data); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		return cfg, nil
	}

	return base, nil
}

// Parse decodes a YAML document on top of the embedded defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := embeddedDefault()
	if err := decodeOnto(&cfg, data); err != nil {
		return cfg, fmt.Errorf("config: failed to parse: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeOnto(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty document leaves the defaults in place
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// embeddedDefault decodes the embedded YAML, falling back to Default().
func embeddedDefault() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default()
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skydash", filename)
}
