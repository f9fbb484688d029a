// Package config loads and validates the TOML configuration.
//
// Load resolves the config path (explicit flag, then the user config dir,
// then a project-local subsight.toml), applies repository defaults for every
// missing value, expands and normalizes paths, and validates thresholds.
// The classification and sync threshold defaults come from the packages that
// own them so the config layer never drifts from the pipeline.
package config
