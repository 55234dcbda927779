// Package config resolves build settings from command-line flags,
// ADDON_INDEX_* environment variables and an optional YAML config file, in
// that order of precedence, using Viper.
package config
