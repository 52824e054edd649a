// Package config resolves the server's runtime configuration from
// command-line arguments and an optional JSON configuration file.
//
// Values are resolved per field with the following priority (first
// non-empty source wins):
//  1. Command-line flags
//  2. JSON config file (path given via -c / --config)
//  3. Built-in defaults
//
// The main entry point is [Load], which returns a fully validated,
// immutable [Config] ready to be handed to the transport layer, or an
// error describing exactly which input was missing or malformed.
package config
