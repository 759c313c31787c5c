// Package config handles configuration management for dtovl.
// It layers the embedded defaults, system and user TOML or YAML files,
// DTOVL_* environment variables and command-line overrides into a Config
// value that is passed explicitly to every operation.
package config
