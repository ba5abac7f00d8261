// Package config handles configuration management for bls.
// Settings are layered with koanf: embedded defaults, the user config file,
// a .bls.toml file in the working directory, BLS_* environment variables
// and finally command-line flag overrides.
package config
