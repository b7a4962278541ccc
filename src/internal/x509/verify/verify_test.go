// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509verify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/ecc"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/octet"
	x509scan "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/scan"
	x509verify "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/verify"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/logger"
)

func loadDER(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", name+".pem"))
	require.NoError(t, err)
	block, _ := pem.Decode(data)
	require.NotNil(t, block, "fixture %s is not PEM", name)
	return block.Bytes
}

func loadBoot(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", "boot", name))
	require.NoError(t, err)
	return data
}

func newVerifier(t *testing.T, opts x509verify.Options) (*x509verify.Verifier, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return x509verify.New(opts, ecc.New(), logger.NewJSONLogger(&logs, false)), &logs
}

var caNames = []string{"rsa2048_ca", "ecc256_ca", "rsa3072_ca", "ecc384_ca", "ecc521_ca"}

var pairs = []struct{ ca, cert string }{
	{"rsa2048_ca", "rsa2048_rsa_cert"},
	{"rsa2048_ca", "rsa2048_ecc256_cert"},
	{"ecc256_ca", "ecc256_ecc_cert"},
	{"ecc256_ca", "ecc256_rsa_cert"},
	{"rsa3072_ca", "rsa3072_rsa_cert"},
	{"rsa3072_ca", "rsa3072_ecc384_cert"},
	{"ecc384_ca", "ecc384_ecc_cert"},
	{"ecc384_ca", "ecc384_rsa_cert"},
	{"ecc521_ca", "ecc521_ecc_cert"},
}

func TestVerifySelfSigned(t *testing.T) {
	for _, strategy := range []bignum.Strategy{bignum.MultiplyDivide, bignum.ShiftAdd} {
		opts := x509verify.DefaultOptions()
		opts.Strategy = strategy
		v, logs := newVerifier(t, opts)

		for _, name := range caNames {
			t.Run(strategy.String()+"/"+name, func(t *testing.T) {
				report, err := v.VerifySelfSigned(loadDER(t, name))
				require.NoError(t, err)
				assert.True(t, report.Verified)
				assert.True(t, report.SelfSigned)
				assert.Nil(t, report.Signer)
				assert.Empty(t, report.Warnings)
			})
		}
		assert.Empty(t, logs.String())
	}
}

func TestVerifyWithIssuer(t *testing.T) {
	v, logs := newVerifier(t, x509verify.DefaultOptions())

	for _, p := range pairs {
		t.Run(p.cert, func(t *testing.T) {
			signer, err := v.ExtractSigner(loadDER(t, p.ca))
			require.NoError(t, err)

			report, err := v.VerifyWith(loadDER(t, p.cert), signer)
			require.NoError(t, err)
			assert.True(t, report.Verified)
			assert.False(t, report.SelfSigned)
			require.NotNil(t, report.Signer)
			assert.Equal(t, report.Issuer, *report.Signer)
		})
	}
	assert.Empty(t, logs.String())
}

func TestVerifyRejects(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Altered TBS Byte",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				der := loadDER(t, "ecc256_ca")

				tbs := octet.New(len(der))
				require.True(t, x509scan.New().ExtractTBSCertificate(der, tbs))
				start := bytes.Index(der, tbs.Bytes())
				require.Positive(t, start)

				for i := start; i < start+tbs.Len(); i++ {
					altered := bytes.Clone(der)
					altered[i] ^= 0x01
					report, err := v.VerifySelfSigned(altered)
					if err == nil {
						assert.False(t, report.Verified, "byte %d", i)
					}
				}
			},
		},
		{
			name: "Altered RSA Signature",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				der := loadDER(t, "rsa2048_ca")
				signer, err := v.ExtractSigner(der)
				require.NoError(t, err)

				altered := bytes.Clone(der)
				altered[len(altered)-1] ^= 0x80
				report, err := v.VerifyWith(altered, signer)
				require.NoError(t, err)
				assert.False(t, report.Verified)
			},
		},
		{
			name: "Wrong Issuer Same Algorithm",
			testFunc: func(t *testing.T) {
				v, logs := newVerifier(t, x509verify.DefaultOptions())
				signer, err := v.ExtractSigner(loadDER(t, "rsa2048_ca"))
				require.NoError(t, err)

				report, err := v.VerifyWith(loadDER(t, "rsa3072_rsa_cert"), signer)
				require.NoError(t, err)
				assert.False(t, report.Verified)
				assert.Empty(t, logs.String())
			},
		},
		{
			name: "Algorithm Mismatch Warns",
			testFunc: func(t *testing.T) {
				v, logs := newVerifier(t, x509verify.DefaultOptions())
				signer, err := v.ExtractSigner(loadDER(t, "ecc256_ca"))
				require.NoError(t, err)

				report, err := v.VerifyWith(loadDER(t, "rsa2048_rsa_cert"), signer)
				require.NoError(t, err)
				assert.False(t, report.Verified)
				require.Len(t, report.Warnings, 1)
				assert.Contains(t, report.Warnings[0], "signature algorithm RSA does not match ECC signer key")
				assert.Contains(t, logs.String(), `"level":"warn"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestVerifyErrors(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Not A Certificate",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				_, err := v.VerifySelfSigned([]byte("not a certificate"))
				assert.ErrorIs(t, err, x509verify.ErrTBSNotFound)
			},
		},
		{
			name: "Certificate Too Large",
			testFunc: func(t *testing.T) {
				opts := x509verify.DefaultOptions()
				opts.MaxCertBytes = 128
				v, _ := newVerifier(t, opts)
				_, err := v.Inspect(loadDER(t, "ecc256_ca"))
				assert.ErrorIs(t, err, x509verify.ErrCertTooLarge)
			},
		},
		{
			name: "Unknown Signature Algorithm",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				der := loadDER(t, "rsa2048_ca")
				sha256WithRSA := []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0b}
				i := bytes.LastIndex(der, sha256WithRSA)
				require.Positive(t, i)
				// md2WithRSAEncryption
				der[i+len(sha256WithRSA)-1] = 0x02

				_, err := v.VerifySelfSigned(der)
				assert.ErrorIs(t, err, x509verify.ErrSignatureUnsupported)
			},
		},
		{
			name: "Outer Algorithm Parameters Altered",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				der := loadDER(t, "rsa2048_ca")
				sigLen := 4 + 1 + 256
				require.Equal(t, []byte{0x05, 0x00}, der[len(der)-sigLen-2:len(der)-sigLen])
				der[len(der)-sigLen-2] = 0x04

				_, err := v.VerifySelfSigned(der)
				assert.ErrorIs(t, err, x509verify.ErrSignatureUnsupported)
			},
		},
		{
			name: "Curve Not Accepted",
			testFunc: func(t *testing.T) {
				opts := x509verify.DefaultOptions()
				opts.Curves = []x509scan.Curve{x509scan.CurveP256}
				v, _ := newVerifier(t, opts)
				_, err := v.ExtractSigner(loadDER(t, "ecc384_ca"))
				assert.ErrorIs(t, err, x509verify.ErrKeyUnsupported)
			},
		},
		{
			name: "Modulus Width Not Configured",
			testFunc: func(t *testing.T) {
				opts := x509verify.DefaultOptions()
				opts.ModulusBits = []int{2048}
				v, _ := newVerifier(t, opts)
				_, err := v.VerifySelfSigned(loadDER(t, "rsa3072_ca"))
				assert.ErrorIs(t, err, x509verify.ErrModulusUnsupported)
			},
		},
		{
			name: "Exponent Not Supported",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				der := loadDER(t, "rsa2048_ca")
				signer, err := v.ExtractSigner(der)
				require.NoError(t, err)

				signer.Key.Exponent = 17
				_, err = v.VerifyWith(der, signer)
				assert.ErrorIs(t, err, x509verify.ErrExponentUnsupported)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestInspect(t *testing.T) {
	v, _ := newVerifier(t, x509verify.DefaultOptions())

	report, err := v.Inspect(loadDER(t, "ecc521_ca"))
	require.NoError(t, err)

	assert.Equal(t, "ECC", report.Signature)
	assert.Equal(t, "SHA512", report.Hash)
	assert.Equal(t, "ECC P-521", report.Key)
	assert.Equal(t, x509verify.Name{
		Country:            "IE",
		State:              "Ireland",
		Locality:           "Dublin",
		Organization:       "Internet Widgits Pty Ltd",
		OrganizationalUnit: "Labs",
		CommonName:         "mscott",
		Email:              "mscott@indigo.ie",
	}, report.Subject)
	assert.Equal(t, report.Subject, report.Issuer)
	assert.Equal(t, time.Date(2020, 11, 30, 13, 19, 26, 0, time.UTC), report.NotAfter)
	assert.True(t, report.NotBefore.Before(report.NotAfter))
	assert.Empty(t, report.SignerKey)
	assert.False(t, report.Verified)

	report, err = v.Inspect(loadDER(t, "rsa2048_ca"))
	require.NoError(t, err)
	assert.Equal(t, "RSA 2048-bit e=65537", report.Key)
	assert.Equal(t, "mscott@indigo.ie", report.Subject.Email)
	assert.Empty(t, report.Subject.CommonName)
}

func TestVerifyBatch(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Self Signed",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				certs := make([][]byte, 0, len(caNames))
				for _, name := range caNames {
					certs = append(certs, loadDER(t, name))
				}

				results := v.VerifyBatch(context.Background(), certs, nil)
				require.Len(t, results, len(caNames))
				for i, r := range results {
					assert.Equal(t, i, r.Index)
					require.NoError(t, r.Err, caNames[i])
					assert.True(t, r.Report.Verified, caNames[i])
				}
			},
		},
		{
			name: "Shared Signer",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				signer, err := v.ExtractSigner(loadDER(t, "rsa2048_ca"))
				require.NoError(t, err)

				certs := [][]byte{
					loadDER(t, "rsa2048_rsa_cert"),
					loadDER(t, "rsa2048_ecc256_cert"),
					loadDER(t, "ecc256_ecc_cert"),
				}
				results := v.VerifyBatch(context.Background(), certs, &signer)
				require.Len(t, results, 3)
				for _, r := range results {
					require.NoError(t, r.Err)
				}
				assert.True(t, results[0].Report.Verified)
				assert.True(t, results[1].Report.Verified)
				assert.False(t, results[2].Report.Verified)
				assert.Len(t, results[2].Report.Warnings, 1)
			},
		},
		{
			name: "Canceled Context",
			testFunc: func(t *testing.T) {
				v, _ := newVerifier(t, x509verify.DefaultOptions())
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				results := v.VerifyBatch(ctx, [][]byte{loadDER(t, "ecc256_ca"), loadDER(t, "ecc384_ca")}, nil)
				for _, r := range results {
					assert.ErrorIs(t, r.Err, context.Canceled)
					assert.Nil(t, r.Report)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestVerifyBootImage(t *testing.T) {
	image := loadBoot(t, "image.bin")
	modulus := loadBoot(t, "modulus.bin")
	sig := loadBoot(t, "image.sig")

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Valid Image",
			testFunc: func(t *testing.T) {
				for _, strategy := range []bignum.Strategy{bignum.MultiplyDivide, bignum.ShiftAdd} {
					ok, err := x509verify.VerifyBootImage(image, modulus, sig, bignum.E65537, strategy)
					require.NoError(t, err)
					assert.True(t, ok, strategy.String())
				}
			},
		},
		{
			name: "Altered Image",
			testFunc: func(t *testing.T) {
				altered := append(bytes.Clone(image), '!')
				ok, err := x509verify.VerifyBootImage(altered, modulus, sig, bignum.E65537, bignum.MultiplyDivide)
				require.NoError(t, err)
				assert.False(t, ok)
			},
		},
		{
			name: "Wrong Exponent",
			testFunc: func(t *testing.T) {
				ok, err := x509verify.VerifyBootImage(image, modulus, sig, bignum.E3, bignum.MultiplyDivide)
				require.NoError(t, err)
				assert.False(t, ok)
			},
		},
		{
			name: "Unsupported Exponent",
			testFunc: func(t *testing.T) {
				_, err := x509verify.VerifyBootImage(image, modulus, sig, bignum.Exponent(17), bignum.MultiplyDivide)
				assert.ErrorIs(t, err, x509verify.ErrExponentUnsupported)
			},
		},
		{
			name: "Odd Modulus Width",
			testFunc: func(t *testing.T) {
				_, err := x509verify.VerifyBootImage(image, modulus[:255], sig, bignum.E65537, bignum.MultiplyDivide)
				assert.ErrorIs(t, err, x509verify.ErrModulusUnsupported)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestRender(t *testing.T) {
	v, _ := newVerifier(t, x509verify.DefaultOptions())
	signer, err := v.ExtractSigner(loadDER(t, "ecc384_ca"))
	require.NoError(t, err)
	report, err := v.VerifyWith(loadDER(t, "ecc384_rsa_cert"), signer)
	require.NoError(t, err)
	require.True(t, report.Verified)

	t.Run("Text", func(t *testing.T) {
		text := report.RenderText("2006-01-02")
		assert.Contains(t, text, "Status:     verified")
		assert.Contains(t, text, "Public Key: RSA 3072-bit e=65537")
		assert.Contains(t, text, "Signature:  ECC with SHA384")
		assert.Contains(t, text, "Not After:  2017-11-25")
		assert.Contains(t, text, "Signed By:  CN=mike, O=Internet Widgits Pty Ltd, L=Dublin, ST=Ireland, C=IE (ECC P-384)")
	})

	t.Run("Table", func(t *testing.T) {
		table := x509verify.RenderTable([]*x509verify.Report{report}, "")
		assert.Contains(t, table, "Valid Until")
		assert.NotContains(t, table, "VALID UNTIL")
		assert.Contains(t, table, "RSA 3072-bit e=65537")
		assert.Contains(t, table, "ECC/SHA384")
		assert.Contains(t, table, "verified")
		assert.Equal(t, "No certificates to display", x509verify.RenderTable(nil, ""))
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := x509verify.MarshalReports([]*x509verify.Report{report})
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, true, decoded[0]["verified"])
		assert.Equal(t, "SHA384", decoded[0]["hash"])
		assert.Equal(t, "RSA 3072-bit e=65537", decoded[0]["publicKey"])
	})
}
