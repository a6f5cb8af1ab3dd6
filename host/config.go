package host

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Name            string       `yaml:"name"`
		Vendor          string       `yaml:"vendor"`
		UniqueID        int32        `yaml:"unique_id"`
		InitialGain     float64      `yaml:"initial_gain"`
		ChannelCapacity int          `yaml:"channel_capacity"`
		Editor          EditorConfig `yaml:"editor"`
		Log             LogConfig    `yaml:"log"`
	}

	EditorConfig struct {
		Title  string `yaml:"title"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	}

	LogConfig struct {
		// File is relative to os.TempDir() unless absolute. Empty disables
		// logging.
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	}
)

//go:embed config.yml
var defaultConfig []byte

func DefaultConfig() Config {
	var cfg Config
	if err := decodeConfig(defaultConfig, &cfg); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return cfg
}

// LoadConfig returns the default config overlaid with the user's config.yml,
// if one exists. A broken user config is reported as a warning together with
// the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := ReadCustomConfig("config.yml", &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// ReadCustomConfig decodes filename from the gainknob directory of the user
// config dir into target, leaving fields missing from the file untouched.
func ReadCustomConfig(filename string, target any) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(configDir, "gainknob", filename)
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := decodeConfig(b, target); err != nil {
		return fmt.Errorf("error in %v: %w", path, err)
	}
	return nil
}

func decodeConfig(b []byte, target any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(target)
}
