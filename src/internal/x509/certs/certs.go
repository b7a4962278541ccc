// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	stdasn1 "encoding/asn1"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/octet"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrInvalidDER indicates data that is not a sequence of DER SEQUENCE elements.
	ErrInvalidDER = errors.New("x509certs: invalid DER data")

	// ErrTooLarge indicates input larger than the configured limit.
	ErrTooLarge = errors.New("x509certs: input exceeds size limit")

	// ErrNoCertificates indicates that no certificates were found in the input.
	ErrNoCertificates = errors.New("x509certs: no certificates found")
)

// DefaultMaxBytes bounds a single decoded certificate.
const DefaultMaxBytes = 16384

// Certificate turns the transport encodings of [X.509] certificates into
// raw DER bytes: PEM, bare base64, [PKCS7] bundles and concatenated DER.
//
// The certificate structure itself is not parsed here.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
// [PKCS7]: https://en.wikipedia.org/wiki/PKCS_7
type Certificate struct {
	certBlockType string
	maxBytes      int
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: "CERTIFICATE",
		maxBytes:      DefaultMaxBytes,
	}
}

// WithMaxBytes sets the size limit of one decoded certificate. Values below
// one keep the current limit.
func (c *Certificate) WithMaxBytes(n int) *Certificate {
	if n > 0 {
		c.maxBytes = n
	}
	return c
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// isBase64 reports whether data looks like a bare base64 body.
func isBase64(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		switch {
		case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		case b == '+', b == '/', b == '=', b == '\n', b == '\r', b == ' ', b == '\t':
		default:
			return false
		}
	}
	return true
}

// DecodeMultiple decodes one or more certificates from data and returns
// their DER encodings in input order.
func (c *Certificate) DecodeMultiple(data []byte) ([][]byte, error) {
	var certs [][]byte

	switch {
	case c.IsPEM(data):
		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				if len(bytes.TrimSpace(data)) > 0 {
					return nil, ErrInvalidPEMBlock
				}
				break
			}
			if block.Type != c.certBlockType {
				return nil, ErrInvalidBlockType
			}
			if len(block.Bytes) > c.maxBytes {
				return nil, ErrTooLarge
			}
			certs = append(certs, block.Bytes)
			data = rest
		}

	case isBase64(data):
		buf := octet.New(c.maxBytes)
		if err := octet.FromBase64(buf, string(data)); err != nil {
			if errors.Is(err, octet.ErrOverflow) {
				return nil, ErrTooLarge
			}
			return nil, err
		}
		return c.decodeDER(bytes.Clone(buf.Bytes()))

	default:
		return c.decodeDER(data)
	}

	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}
	return certs, nil
}

// oidSignedData identifies a PKCS7 SignedData ContentInfo.
var oidSignedData = stdasn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}

// decodeDER accepts a PKCS7 SignedData bundle or one or more concatenated
// DER certificates.
func (c *Certificate) decodeDER(data []byte) ([][]byte, error) {
	if isSignedData(data) {
		if p, err := pkcs7.ParsePKCS7(data); err == nil {
			certs := make([][]byte, 0, len(p.Content.SignedData.Certificates))
			for _, cert := range p.Content.SignedData.Certificates {
				certs = append(certs, cert.Raw)
			}
			return c.checkAll(certs)
		}
		// cfssl rejects certificate-only bundles whose signerInfos SET is
		// empty, which is what openssl crl2pkcs7 writes.
		return c.signedDataCertificates(data)
	}

	var certs [][]byte
	in := cryptobyte.String(data)
	for !in.Empty() {
		var el cryptobyte.String
		if !in.ReadASN1Element(&el, asn1.SEQUENCE) {
			return nil, ErrInvalidDER
		}
		certs = append(certs, el)
	}
	return c.checkAll(certs)
}

// isSignedData reports whether data starts with a ContentInfo SEQUENCE
// carrying the SignedData content type.
func isSignedData(data []byte) bool {
	in := cryptobyte.String(data)
	var ci cryptobyte.String
	var oid stdasn1.ObjectIdentifier
	return in.ReadASN1(&ci, asn1.SEQUENCE) &&
		ci.ReadASN1ObjectIdentifier(&oid) &&
		oid.Equal(oidSignedData)
}

// signedDataCertificates reads the certificates field of a SignedData
// ContentInfo:
//
//	ContentInfo ::= SEQUENCE { contentType, [0] EXPLICIT SignedData }
//	SignedData  ::= SEQUENCE { version, digestAlgorithms, contentInfo,
//	                           [0] IMPLICIT certificates OPTIONAL, ... }
func (c *Certificate) signedDataCertificates(data []byte) ([][]byte, error) {
	in := cryptobyte.String(data)
	var ci, content, sd, set cryptobyte.String
	var present bool
	if !in.ReadASN1(&ci, asn1.SEQUENCE) || !in.Empty() ||
		!ci.SkipASN1(asn1.OBJECT_IDENTIFIER) ||
		!ci.ReadASN1(&content, asn1.Tag(0).Constructed().ContextSpecific()) ||
		!content.ReadASN1(&sd, asn1.SEQUENCE) ||
		!sd.SkipASN1(asn1.INTEGER) ||
		!sd.SkipASN1(asn1.SET) ||
		!sd.SkipASN1(asn1.SEQUENCE) ||
		!sd.ReadOptionalASN1(&set, &present, asn1.Tag(0).Constructed().ContextSpecific()) {
		return nil, ErrInvalidDER
	}

	var certs [][]byte
	for !set.Empty() {
		var el cryptobyte.String
		if !set.ReadASN1Element(&el, asn1.SEQUENCE) {
			return nil, ErrInvalidDER
		}
		certs = append(certs, el)
	}
	return c.checkAll(certs)
}

// checkAll applies the size limit to every certificate.
func (c *Certificate) checkAll(certs [][]byte) ([][]byte, error) {
	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}
	for _, cert := range certs {
		if len(cert) > c.maxBytes {
			return nil, ErrTooLarge
		}
	}
	return certs, nil
}

// Decode decodes the first certificate in data.
func (c *Certificate) Decode(data []byte) ([]byte, error) {
	if c.IsPEM(data) {
		block, _ := pem.Decode(data)
		if block.Type != c.certBlockType {
			return nil, ErrInvalidBlockType
		}
		if len(block.Bytes) > c.maxBytes {
			return nil, ErrTooLarge
		}
		return block.Bytes, nil
	}
	certs, err := c.DecodeMultiple(data)
	if err != nil {
		return nil, err
	}
	return certs[0], nil
}

// EncodePEM encodes a DER certificate to PEM format.
func (c *Certificate) EncodePEM(der []byte) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: der,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeMultiplePEM encodes multiple DER certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(certs [][]byte) []byte {
	var data []byte

	for _, der := range certs {
		data = append(data, c.EncodePEM(der)...)
	}

	return data
}
