// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/ventoux/quictun/internal/certificate"
	"github.com/ventoux/quictun/internal/transport"
)

// Config is the fully resolved server configuration. It is constructed
// exactly once per process invocation by [Load] and never mutated
// afterwards.
//
// The authentication token is not retained: only its 32-byte blake2b
// digest is kept, so the plaintext secret is unreachable from any
// diagnostic representation of the value.
type Config struct {
	// Server is the transport/security configuration, already bound to
	// the loaded certificate chain, private key, congestion controller
	// and idle timeout.
	Server *transport.ServerConfig

	// Port is the UDP port the server listens on.
	Port uint16

	// TokenDigest is the blake2b-256 digest of the authentication token.
	TokenDigest [32]byte

	// AuthenticationTimeout is the maximum time allowed between a
	// connection being established and the authentication packet
	// arriving.
	AuthenticationTimeout time.Duration

	// MaxUDPPacketSize caps the size of relayed UDP packets, in bytes.
	MaxUDPPacketSize int

	// EnableIPv6 enables listening on IPv6 in addition to IPv4.
	EnableIPv6 bool

	// LogLevel is the resolved log verbosity.
	LogLevel zerolog.Level
}

// Load resolves the configuration from the given command-line arguments
// (without the program name) and, when -c/--config is supplied, the JSON
// file it points to.
//
// Terminal outcomes: a *HelpError carrying the usage text for -h/--help
// and ErrVersion for -v/--version, both returned before any file is read
// or any required field is checked. Every other error names the flag,
// field or path it concerns.
func Load(args []string) (*Config, error) {
	opts, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	layers := []RawConfig{opts.raw}

	if opts.configSet {
		fileRaw, err := parseFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileRaw)
	}

	layers = append(layers, defaultRawConfig())

	raw, err := mergeRawConfigs(layers...)
	if err != nil {
		return nil, err
	}

	if err := raw.checkRequired(); err != nil {
		return nil, err
	}

	return assemble(raw)
}

// assemble converts a complete RawConfig into the final Config: it loads
// the certificate material, builds the transport configuration and
// performs the remaining string-to-type conversions. The first failure
// wins; no partial Config is ever returned.
func assemble(raw RawConfig) (*Config, error) {
	certs, err := certificate.LoadCertificates(*raw.Certificate)
	if err != nil {
		return nil, fmt.Errorf("load certificate %q: %w", *raw.Certificate, err)
	}

	key, err := certificate.LoadPrivateKey(*raw.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("load private key %q: %w", *raw.PrivateKey, err)
	}

	controller, err := transport.ParseCongestionController(*raw.CongestionController)
	if err != nil {
		return nil, err
	}

	server, err := transport.NewServerConfig(
		certs,
		key,
		controller,
		time.Duration(*raw.MaxIdleTime)*time.Millisecond,
	)
	if err != nil {
		return nil, err
	}

	level, err := ParseLogLevel(*raw.LogLevel)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:                server,
		Port:                  *raw.Port,
		TokenDigest:           blake2b.Sum256([]byte(*raw.Token)),
		AuthenticationTimeout: time.Duration(*raw.AuthenticationTimeout) * time.Millisecond,
		MaxUDPPacketSize:      *raw.MaxUDPPacketSize,
		EnableIPv6:            *raw.EnableIPv6,
		LogLevel:              level,
	}, nil
}

// ParseLogLevel maps the six canonical level names onto zerolog levels,
// case-insensitively. "off" disables logging entirely.
func ParseLogLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return zerolog.Disabled, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}
