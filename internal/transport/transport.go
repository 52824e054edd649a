// SPDX-License-Identifier: Apache-2.0

// Package transport builds the QUIC/TLS server configuration consumed by
// the connection-handling layer.
package transport

import (
	"crypto"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quic-go/quic-go"
)

var (
	// ErrInvalidCongestionController indicates a controller name outside
	// the cubic/new_reno/bbr set.
	ErrInvalidCongestionController = errors.New("invalid congestion controller")
	// ErrNoCertificates indicates an empty certificate chain.
	ErrNoCertificates = errors.New("no certificates in chain")
	// ErrUnsupportedPrivateKey indicates a key type that cannot be used
	// for TLS signing.
	ErrUnsupportedPrivateKey = errors.New("unsupported private key type")
	// ErrKeyMismatch indicates the private key does not belong to the
	// leaf certificate's public key.
	ErrKeyMismatch = errors.New("private key does not match certificate")
)

// CongestionController selects the congestion control strategy applied
// to accepted connections. Each variant uses its built-in default
// tuning; no sub-parameters are exposed.
type CongestionController int

const (
	Cubic CongestionController = iota
	NewReno
	Bbr
)

// ParseCongestionController maps a controller name onto its variant,
// case-insensitively. "new_reno" and "newreno" are both accepted.
func ParseCongestionController(s string) (CongestionController, error) {
	switch strings.ToLower(s) {
	case "cubic":
		return Cubic, nil
	case "new_reno", "newreno":
		return NewReno, nil
	case "bbr":
		return Bbr, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCongestionController, s)
	}
}

func (c CongestionController) String() string {
	switch c {
	case Cubic:
		return "cubic"
	case NewReno:
		return "new_reno"
	case Bbr:
		return "bbr"
	default:
		return "unknown"
	}
}

// ServerConfig is the assembled transport/security configuration: the
// TLS material, the QUIC tuning and the selected congestion controller.
type ServerConfig struct {
	TLS        *tls.Config
	QUIC       *quic.Config
	Congestion CongestionController
}

// NewServerConfig builds a ServerConfig from a DER certificate chain
// (leaf first) and its private key. The key is checked against the leaf
// certificate's public key before anything is assembled, so malformed or
// mismatched material fails here rather than at the first handshake.
//
// maxIdleTimeout is passed through to the QUIC configuration unchanged;
// zero leaves the transport's own default in place.
func NewServerConfig(certs [][]byte, key crypto.PrivateKey, controller CongestionController, maxIdleTimeout time.Duration) (*ServerConfig, error) {
	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}

	leaf, err := x509.ParseCertificate(certs[0])
	if err != nil {
		return nil, fmt.Errorf("parse leaf certificate: %w", err)
	}

	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, ErrUnsupportedPrivateKey
	}

	public, ok := leaf.PublicKey.(interface{ Equal(crypto.PublicKey) bool })
	if !ok {
		return nil, ErrUnsupportedPrivateKey
	}
	if !public.Equal(signer.Public()) {
		return nil, ErrKeyMismatch
	}

	tlsConf := &tls.Config{
		MinVersion: tls.VersionTLS13,
		Certificates: []tls.Certificate{{
			Certificate: certs,
			PrivateKey:  key,
			Leaf:        leaf,
		}},
	}

	quicConf := &quic.Config{
		MaxIdleTimeout: maxIdleTimeout,
	}

	return &ServerConfig{
		TLS:        tlsConf,
		QUIC:       quicConf,
		Congestion: controller,
	}, nil
}
