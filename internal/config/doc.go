// Package config loads and validates the application configuration.
//
// Configuration is layered: struct-tag defaults, then an optional YAML
// file, then TABULA_* environment variables, with later layers winning.
// Load returns a validated Config; callers never read the environment
// directly.
package config
