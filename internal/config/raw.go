// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"dario.cat/mergo"
)

// Default values for every optional setting. The four required settings
// (port, token, certificate, private key) deliberately have none.
const (
	DefaultCongestionController  = "cubic"
	DefaultMaxIdleTime           = uint32(15000)
	DefaultAuthenticationTimeout = uint64(1000)
	DefaultMaxUDPPacketSize      = 1536
	DefaultLogLevel              = "info"
)

// RawConfig is the staging record every configuration source is parsed
// into before merging. A nil field means "not supplied by this source".
// The JSON schema is closed: unknown fields are rejected on decode.
//
// Port, Token, Certificate and PrivateKey must be non-nil once merging
// completes; [RawConfig.checkRequired] enforces that boundary.
type RawConfig struct {
	Port                  *uint16 `json:"port"`
	Token                 *string `json:"token"`
	Certificate           *string `json:"certificate"`
	PrivateKey            *string `json:"private_key"`
	CongestionController  *string `json:"congestion_controller"`
	MaxIdleTime           *uint32 `json:"max_idle_time"`
	AuthenticationTimeout *uint64 `json:"authentication_timeout"`
	MaxUDPPacketSize      *int    `json:"max_udp_packet_size"`
	EnableIPv6            *bool   `json:"enable_ipv6"`
	LogLevel              *string `json:"log_level"`
}

// defaultRawConfig returns the lowest-priority layer of the merge: every
// optional field populated with its default, every required field unset.
func defaultRawConfig() RawConfig {
	return RawConfig{
		CongestionController:  ptr(DefaultCongestionController),
		MaxIdleTime:           ptr(DefaultMaxIdleTime),
		AuthenticationTimeout: ptr(DefaultAuthenticationTimeout),
		MaxUDPPacketSize:      ptr(DefaultMaxUDPPacketSize),
		EnableIPv6:            ptr(false),
		LogLevel:              ptr(DefaultLogLevel),
	}
}

// mergeRawConfigs collapses configuration layers into one RawConfig.
// Layers are given in priority order (highest first); a field set in an
// earlier layer is never overwritten by a later one, so passing
// CLI, file, defaults yields cli ?? file ?? default per field.
//
// WithoutDereference keeps a non-nil pointer atomic: "set" is decided by
// the pointer alone, so an explicit zero (port 0, max_idle_time 0, an
// empty token) still wins over lower layers.
//
// The enable-ipv6 OR-semantics fall out of the same rule: the CLI layer
// only ever contributes true, so a file's explicit false survives only
// when the flag is absent.
func mergeRawConfigs(layers ...RawConfig) (RawConfig, error) {
	var merged RawConfig
	for _, layer := range layers {
		if err := mergo.Merge(&merged, layer, mergo.WithoutDereference); err != nil {
			return RawConfig{}, fmt.Errorf("merge config layers: %w", err)
		}
	}

	return merged, nil
}

// checkRequired verifies that every field without a default was supplied
// by at least one source. The option names in the error match the
// command-line spelling.
func (c *RawConfig) checkRequired() error {
	switch {
	case c.Port == nil:
		return fmt.Errorf("%w: port", ErrMissingOption)
	case c.Token == nil:
		return fmt.Errorf("%w: token", ErrMissingOption)
	case c.Certificate == nil:
		return fmt.Errorf("%w: certificate", ErrMissingOption)
	case c.PrivateKey == nil:
		return fmt.Errorf("%w: private key", ErrMissingOption)
	}

	return nil
}

func ptr[T any](v T) *T {
	return &v
}
