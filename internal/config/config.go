package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// Config keys. Flag names bound through Load must match these.
const (
	KeyAuthor        = "author"
	KeyTheme         = "theme"
	KeySDK           = "sdk"
	KeyReadme        = "readme"
	KeyClean         = "clean"
	KeyDisableSearch = "disable_search"
)

// DocsDefaults holds the values baked into the docs config that are not
// derived from the project itself.
type DocsDefaults struct {
	Author        string
	Theme         string
	SDK           string
	Readme        string
	Clean         bool
	DisableSearch bool
}

// Default returns the built-in docs defaults.
func Default() DocsDefaults {
	return DocsDefaults{
		Author:        "Steven Sherry",
		Theme:         "fullwidth",
		SDK:           "iphone",
		Readme:        "README.md",
		Clean:         true,
		DisableSearch: true,
	}
}

// Load builds DocsDefaults from the built-in values, the optional config file
// at path, and any flags in fs whose names match a config key.
//
// Only flags the user actually set override lower layers; viper handles
// that distinction for bound pflags. An empty path skips the file layer.
func Load(path string, fs *pflag.FlagSet) (DocsDefaults, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyAuthor, def.Author)
	v.SetDefault(KeyTheme, def.Theme)
	v.SetDefault(KeySDK, def.SDK)
	v.SetDefault(KeyReadme, def.Readme)
	v.SetDefault(KeyClean, def.Clean)
	v.SetDefault(KeyDisableSearch, def.DisableSearch)

	if path != "" {
		if err := readFile(v, path); err != nil {
			return DocsDefaults{}, err
		}
	}

	if fs != nil {
		for _, key := range []string{KeyAuthor, KeyTheme, KeySDK} {
			if f := fs.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return DocsDefaults{}, fmt.Errorf("failed to bind flag --%s: %w", key, err)
				}
			}
		}
	}

	return DocsDefaults{
		Author:        v.GetString(KeyAuthor),
		Theme:         v.GetString(KeyTheme),
		SDK:           v.GetString(KeySDK),
		Readme:        v.GetString(KeyReadme),
		Clean:         v.GetBool(KeyClean),
		DisableSearch: v.GetBool(KeyDisableSearch),
	}, nil
}

// readFile loads path into v. JSON files may carry comments and trailing
// commas; they are normalized with jsonc before viper sees them.
func readFile(v *viper.Viper, path string) error {
	configType, err := typeForPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if configType == "json" {
		data = jsonc.ToJSON(data)
	}

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func typeForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json", ".jsonc":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported config file type %q (valid: .yaml, .yml, .json, .jsonc)", filepath.Ext(path))
	}
}
