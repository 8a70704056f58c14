package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pcuci/catp/pkg/errors"
)

// Load builds the invocation configuration by merging, in order:
// embedded defaults, the user config under the XDG config directory,
// and a repo-local .catp.toml or .catp.yaml at rootDir. Later sources
// win. rootDir may be empty to skip the repo-local layer.
func Load(rootDir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	userConfigDir := filepath.Join(xdg.ConfigHome, "catp")
	if err := loadFirstExisting(k, userConfigDir, "catp.toml", "catp.yaml"); err != nil {
		return nil, err
	}

	if rootDir != "" {
		if err := loadFirstExisting(k, rootDir, ".catp.toml", ".catp.yaml"); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// Default returns the embedded defaults with no file or flag
// overrides. Used to seed flag default values, so it must not read
// any config file.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// The embedded defaults are validated by tests; failing to
		// parse them is a programming error.
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

func loadFirstExisting(k *koanf.Koanf, dir string, names ...string) error {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), parserFor(name)); err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		return nil
	}
	return nil
}

func parserFor(name string) koanf.Parser {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return yaml.Parser()
	}
	return toml.Parser()
}
