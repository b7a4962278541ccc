// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509scan

import (
	"bytes"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/digest"
)

// Name attribute OIDs, as DER content octets.
var (
	OIDCountryName        = []byte{0x55, 0x04, 0x06}
	OIDStateOrProvince    = []byte{0x55, 0x04, 0x08}
	OIDLocality           = []byte{0x55, 0x04, 0x07}
	OIDOrganizationName   = []byte{0x55, 0x04, 0x0a}
	OIDOrganizationalUnit = []byte{0x55, 0x04, 0x0b}
	OIDCommonName         = []byte{0x55, 0x04, 0x03}
	OIDEmailAddress       = []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x09, 0x01}
)

var (
	oidECPublicKey   = []byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x02, 0x01}
	oidRSAEncryption = []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x01}
)

type sigAlgorithm struct {
	oid  []byte
	alg  Algorithm
	hash digest.Kind
}

var signatureAlgorithms = []sigAlgorithm{
	{oid: []byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x04, 0x01}, alg: AlgorithmECC, hash: digest.KindSHA1},
	{oid: []byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x04, 0x03, 0x02}, alg: AlgorithmECC, hash: digest.KindSHA256},
	{oid: []byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x04, 0x03, 0x03}, alg: AlgorithmECC, hash: digest.KindSHA384},
	{oid: []byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x04, 0x03, 0x04}, alg: AlgorithmECC, hash: digest.KindSHA512},
	{oid: []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x05}, alg: AlgorithmRSA, hash: digest.KindSHA1},
	{oid: []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0b}, alg: AlgorithmRSA, hash: digest.KindSHA256},
	{oid: []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0c}, alg: AlgorithmRSA, hash: digest.KindSHA384},
	{oid: []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x0d}, alg: AlgorithmRSA, hash: digest.KindSHA512},
}

var namedCurves = []struct {
	oid   []byte
	curve Curve
}{
	{oid: []byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x03, 0x01, 0x07}, curve: CurveP256},
	{oid: []byte{0x2b, 0x81, 0x04, 0x00, 0x22}, curve: CurveP384},
	{oid: []byte{0x2b, 0x81, 0x04, 0x00, 0x23}, curve: CurveP521},
}

func lookupSignature(oid []byte) (sigAlgorithm, bool) {
	for _, s := range signatureAlgorithms {
		if bytes.Equal(s.oid, oid) {
			return s, true
		}
	}
	return sigAlgorithm{}, false
}

func lookupCurve(oid []byte) Curve {
	for _, c := range namedCurves {
		if bytes.Equal(c.oid, oid) {
			return c.curve
		}
	}
	return CurveNone
}
