// Package config loads the overridable defaults used when rendering the
// documentation generator configuration.
//
// Values are layered with viper: built-in defaults, then an optional config
// file (YAML, or JSON with comments via github.com/tidwall/jsonc), then
// explicitly set command-line flags. Environment variables are never read.
package config
