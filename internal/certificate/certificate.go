// SPDX-License-Identifier: Apache-2.0

// Package certificate loads TLS certificate chains and private keys from
// the filesystem for the transport layer.
package certificate

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNoCertificate indicates the file contained no CERTIFICATE PEM
	// block and was not parseable as a raw DER certificate either.
	ErrNoCertificate = errors.New("no certificate found")
	// ErrNoPrivateKey indicates the file contained no recognized private
	// key PEM block.
	ErrNoPrivateKey = errors.New("no private key found")
)

// LoadCertificates reads path and returns the DER bytes of every
// CERTIFICATE PEM block in it, leaf first. A file without PEM armor is
// treated as a single DER-encoded certificate.
func LoadCertificates(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var certs [][]byte
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		certs = append(certs, block.Bytes)
	}

	if len(certs) == 0 {
		if _, err := x509.ParseCertificate(data); err != nil {
			return nil, ErrNoCertificate
		}
		certs = append(certs, data)
	}

	return certs, nil
}

// LoadPrivateKey reads path and returns the first private key found in
// it. PKCS#8 ("PRIVATE KEY"), PKCS#1 ("RSA PRIVATE KEY") and SEC1
// ("EC PRIVATE KEY") PEM blocks are recognized.
func LoadPrivateKey(path string) (crypto.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		switch block.Type {
		case "PRIVATE KEY":
			key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse PKCS#8 private key: %w", err)
			}
			return key, nil
		case "RSA PRIVATE KEY":
			key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse PKCS#1 private key: %w", err)
			}
			return key, nil
		case "EC PRIVATE KEY":
			key, err := x509.ParseECPrivateKey(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("parse EC private key: %w", err)
			}
			return key, nil
		}
	}

	return nil, ErrNoPrivateKey
}
