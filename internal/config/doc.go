// Package config loads and validates the montage TOML configuration.
//
// Defaults target a per-user data directory; a config file is optional and
// anything unset falls back to Default(). Paths support ~ expansion.
package config
