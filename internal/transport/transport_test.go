package transport

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCert generates a self-signed certificate, returning its DER bytes
// and private key.
func testCert(t *testing.T) ([]byte, *ecdsa.PrivateKey) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return der, key
}

// TestParseCongestionController verifies the canonical parser: the three
// controllers, both NewReno spellings, case folding, and rejection.
func TestParseCongestionController(t *testing.T) {
	tests := []struct {
		input   string
		want    CongestionController
		wantErr bool
	}{
		{input: "cubic", want: Cubic},
		{input: "CUBIC", want: Cubic},
		{input: "new_reno", want: NewReno},
		{input: "newreno", want: NewReno},
		{input: "NewReno", want: NewReno},
		{input: "bbr", want: Bbr},
		{input: "BBR", want: Bbr},
		{input: "turbo", wantErr: true},
		{input: "reno", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCongestionController(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCongestionController)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCongestionController_String verifies the canonical names round
// back out of String.
func TestCongestionController_String(t *testing.T) {
	assert.Equal(t, "cubic", Cubic.String())
	assert.Equal(t, "new_reno", NewReno.String())
	assert.Equal(t, "bbr", Bbr.String())
	assert.Equal(t, "unknown", CongestionController(42).String())
}

// TestNewServerConfig_Valid verifies assembly from a matching chain and
// key.
func TestNewServerConfig_Valid(t *testing.T) {
	der, key := testCert(t)

	cfg, err := NewServerConfig([][]byte{der}, key, Bbr, 30*time.Second)
	require.NoError(t, err)

	assert.Equal(t, Bbr, cfg.Congestion)
	assert.Equal(t, 30*time.Second, cfg.QUIC.MaxIdleTimeout)
	assert.Equal(t, uint16(tls.VersionTLS13), cfg.TLS.MinVersion)
	require.Len(t, cfg.TLS.Certificates, 1)
	assert.Equal(t, [][]byte{der}, cfg.TLS.Certificates[0].Certificate)
	require.NotNil(t, cfg.TLS.Certificates[0].Leaf)
	assert.Equal(t, "localhost", cfg.TLS.Certificates[0].Leaf.Subject.CommonName)
}

// TestNewServerConfig_ZeroIdleTimeout verifies that zero is passed
// through unchanged.
func TestNewServerConfig_ZeroIdleTimeout(t *testing.T) {
	der, key := testCert(t)

	cfg, err := NewServerConfig([][]byte{der}, key, Cubic, 0)
	require.NoError(t, err)
	assert.Zero(t, cfg.QUIC.MaxIdleTimeout)
}

// TestNewServerConfig_EmptyChain verifies that an empty chain is
// rejected.
func TestNewServerConfig_EmptyChain(t *testing.T) {
	_, key := testCert(t)

	_, err := NewServerConfig(nil, key, Cubic, time.Second)
	assert.ErrorIs(t, err, ErrNoCertificates)
}

// TestNewServerConfig_MalformedLeaf verifies that unparseable leaf DER
// fails construction.
func TestNewServerConfig_MalformedLeaf(t *testing.T) {
	_, key := testCert(t)

	_, err := NewServerConfig([][]byte{{0xde, 0xad, 0xbe, 0xef}}, key, Cubic, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse leaf certificate")
}

// TestNewServerConfig_KeyMismatch verifies that a key belonging to a
// different certificate is rejected.
func TestNewServerConfig_KeyMismatch(t *testing.T) {
	der, _ := testCert(t)
	_, otherKey := testCert(t)

	_, err := NewServerConfig([][]byte{der}, otherKey, Cubic, time.Second)
	assert.ErrorIs(t, err, ErrKeyMismatch)
}

// TestNewServerConfig_UnsupportedKey verifies that a value that cannot
// sign is rejected.
func TestNewServerConfig_UnsupportedKey(t *testing.T) {
	der, _ := testCert(t)

	_, err := NewServerConfig([][]byte{der}, "not a key", Cubic, time.Second)
	assert.ErrorIs(t, err, ErrUnsupportedPrivateKey)
}
