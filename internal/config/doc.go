// Package config loads application configuration from environment
// variables with sensible development defaults.
package config
