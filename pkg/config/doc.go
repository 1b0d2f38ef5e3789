// Package config handles configuration management for mdxaml.
// Settings are layered: embedded defaults, then the user config file, then
// MDXAML_ environment variables, then explicit overrides from command-line
// flags. Each layer replaces the keys it sets.
package config
