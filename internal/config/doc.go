// Package config loads, normalizes, and validates lathe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates the rendition lists configured
// per encoding backend. The Config type centralizes every knob the CLI and
// conversion engine need, so staging/output directories and external binary
// paths are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
