// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"bytes"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509certs "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/certs"
)

const (
	invalidPEM = `
-----BEGIN INVALID-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAz6e5VV5F8rF2sFJ0Q4vA
-----END INVALID-----
`
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", name))
	require.NoError(t, err)
	return data
}

func fixtureDER(t *testing.T, name string) []byte {
	t.Helper()
	block, _ := pem.Decode(readFixture(t, name+".pem"))
	require.NotNil(t, block, "fixture %s is not PEM", name)
	return block.Bytes
}

func TestCertificate_Decode(t *testing.T) {
	decoder := x509certs.New()
	der := fixtureDER(t, "ecc256_ca")

	tests := []struct {
		name  string
		input []byte
	}{
		{"PEM", readFixture(t, "ecc256_ca.pem")},
		{"DER", der},
		{"Bare Base64", []byte(base64.StdEncoding.EncodeToString(der))},
		{"Wrapped Base64", []byte(" " + wrap(base64.StdEncoding.EncodeToString(der), 64) + "\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decoder.Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, der, got)
		})
	}
}

func wrap(s string, n int) string {
	var b bytes.Buffer
	for len(s) > n {
		b.WriteString(s[:n])
		b.WriteByte('\n')
		s = s[n:]
	}
	b.WriteString(s)
	return b.String()
}

func TestCertificate_DecodeMultiple(t *testing.T) {
	decoder := x509certs.New()
	ca := fixtureDER(t, "rsa2048_ca")
	leaf := fixtureDER(t, "rsa2048_rsa_cert")
	ecc := fixtureDER(t, "rsa2048_ecc256_cert")

	tests := []struct {
		name        string
		input       []byte
		expect      [][]byte
		expectError error
	}{
		{
			name:   "Multiple PEM Certificates",
			input:  decoder.EncodeMultiplePEM([][]byte{ca, leaf}),
			expect: [][]byte{ca, leaf},
		},
		{
			name:   "Concatenated DER",
			input:  append(append(bytes.Clone(ca), leaf...), ecc...),
			expect: [][]byte{ca, leaf, ecc},
		},
		{
			name:   "PKCS7 Bundle",
			input:  readFixture(t, "bundle.p7b"),
			expect: [][]byte{ca, leaf, ecc},
		},
		{
			name:        "Trailing Data After PEM",
			input:       append(decoder.EncodePEM(ca), "garbage\n"...),
			expectError: x509certs.ErrInvalidPEMBlock,
		},
		{
			name:        "Corrupted PKCS7 Bundle",
			input:       corruptBundle(t),
			expectError: x509certs.ErrInvalidDER,
		},
		{
			name:        "PKCS7 Bundle Without Certificates",
			input:       emptyBundle(),
			expectError: x509certs.ErrNoCertificates,
		},
		{
			name:        "Invalid PEM Type",
			input:       []byte(invalidPEM),
			expectError: x509certs.ErrInvalidBlockType,
		},
		{
			name:        "Truncated DER",
			input:       ca[:len(ca)-1],
			expectError: x509certs.ErrInvalidDER,
		},
		{
			name:        "Not A Certificate",
			input:       []byte("not a certificate!"),
			expectError: x509certs.ErrInvalidDER,
		},
		{
			name:        "Empty Input",
			input:       nil,
			expectError: x509certs.ErrNoCertificates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certs, err := decoder.DecodeMultiple(tt.input)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, certs)
		})
	}
}

// corruptBundle retags the first certificate of bundle.p7b as a SET.
func corruptBundle(t *testing.T) []byte {
	t.Helper()
	data := bytes.Clone(readFixture(t, "bundle.p7b"))
	require.Equal(t, byte(0x30), data[45])
	data[45] = 0x31
	return data
}

func tlv(tag byte, body ...[]byte) []byte {
	content := bytes.Join(body, nil)
	return append([]byte{tag, byte(len(content))}, content...)
}

// emptyBundle builds a SignedData ContentInfo with no certificates field.
func emptyBundle() []byte {
	oidData := []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x07, 0x01}
	oidSignedData := []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x07, 0x02}
	signedData := tlv(0x30,
		tlv(0x02, []byte{0x01}),
		tlv(0x31),
		tlv(0x30, tlv(0x06, oidData)),
		tlv(0x31),
	)
	return tlv(0x30, tlv(0x06, oidSignedData), tlv(0xa0, signedData))
}

func TestCertificate_DecodeBundle(t *testing.T) {
	bundle := readFixture(t, "bundle.p7b")
	certs, err := x509certs.New().DecodeMultiple(bundle)
	require.NoError(t, err)
	require.Len(t, certs, 3)
	for i, cert := range certs {
		assert.NotEqual(t, bundle, cert, "certificate %d is the envelope", i)
	}

	certs, err = x509certs.New().DecodeMultiple(x509certs.New().EncodeMultiplePEM(certs))
	require.NoError(t, err)
	assert.Len(t, certs, 3)

	_, err = x509certs.New().WithMaxBytes(512).DecodeMultiple(bundle)
	assert.ErrorIs(t, err, x509certs.ErrTooLarge)
}

func TestCertificate_Limits(t *testing.T) {
	der := fixtureDER(t, "rsa3072_ca")
	decoder := x509certs.New().WithMaxBytes(len(der) - 1)

	tests := []struct {
		name  string
		input []byte
	}{
		{"PEM", readFixture(t, "rsa3072_ca.pem")},
		{"DER", der},
		{"Base64", []byte(base64.StdEncoding.EncodeToString(der))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoder.DecodeMultiple(tt.input)
			assert.ErrorIs(t, err, x509certs.ErrTooLarge)
		})
	}

	_, err := x509certs.New().WithMaxBytes(0).Decode(der)
	assert.NoError(t, err, "non-positive limit keeps the default")
}

func TestCertificate_IsPEM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected bool
	}{
		{
			name:     "Valid PEM",
			input:    readFixture(t, "ecc384_ca.pem"),
			expected: true,
		},
		{
			name:     "Invalid PEM",
			input:    []byte("not a pem block"),
			expected: false,
		},
		{
			name:     "Empty Input",
			input:    []byte(""),
			expected: false,
		},
		{
			name:     "PEM-like but invalid base64",
			input:    []byte("-----BEGIN CERTIFICATE-----\ninvalid-base64\n-----END CERTIFICATE-----"),
			expected: false, // pem.Decode fails on invalid base64
		},
		{
			name:     "DER format (binary)",
			input:    []byte{0x30, 0x82, 0x01, 0x23}, // DER sequence
			expected: false,
		},
	}

	decoder := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := decoder.IsPEM(tt.input)
			assert.Equal(t, tt.expected, result, "IsPEM() result incorrect")
		})
	}
}

func TestCertificate_EncodePEM(t *testing.T) {
	decoder := x509certs.New()
	der := fixtureDER(t, "ecc521_ca")

	encoded := decoder.EncodePEM(der)
	decodedBlock, _ := pem.Decode(encoded)
	require.NotNil(t, decodedBlock, "failed to decode encoded PEM")

	assert.Equal(t, "CERTIFICATE", decodedBlock.Type, "expected block type CERTIFICATE")
	assert.Equal(t, der, decodedBlock.Bytes)
	assert.Empty(t, decoder.EncodeMultiplePEM(nil))
}
