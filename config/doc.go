// Package config loads trackswipe settings.
//
// Values come from, in increasing priority: Default, a TOML file (by default
// ~/.config/trackswipe/config.toml, or trackswipe.toml in the working
// directory), then TRACKSWIPE_* environment variables. Load normalizes paths
// and validates the result.
package config
