// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ecc

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/digest"
	x509scan "github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/x509/scan"
)

// Std verifies ECDSA signatures with the standard library curves. The zero
// value is ready to use and safe for concurrent use.
type Std struct{}

// New returns the standard library collaborator.
func New() *Std { return &Std{} }

func curves(c x509scan.Curve) (elliptic.Curve, ecdh.Curve) {
	switch c {
	case x509scan.CurveP256:
		return elliptic.P256(), ecdh.P256()
	case x509scan.CurveP384:
		return elliptic.P384(), ecdh.P384()
	case x509scan.CurveP521:
		return elliptic.P521(), ecdh.P521()
	}
	return nil, nil
}

// ValidatePublicKey reports whether point, the X || Y coordinates of an
// uncompressed point, lies on curve and is not the identity.
func (Std) ValidatePublicKey(curve x509scan.Curve, point []byte) bool {
	_, ok := publicKey(curve, point)
	return ok
}

func publicKey(curve x509scan.Curve, point []byte) (*ecdsa.PublicKey, bool) {
	ec, dh := curves(curve)
	if ec == nil || len(point) != 2*curve.CoordinateSize() {
		return nil, false
	}
	uncompressed := make([]byte, 0, len(point)+1)
	uncompressed = append(uncompressed, 0x04)
	uncompressed = append(uncompressed, point...)
	if _, err := dh.NewPublicKey(uncompressed); err != nil {
		return nil, false
	}
	half := len(point) / 2
	return &ecdsa.PublicKey{
		Curve: ec,
		X:     new(big.Int).SetBytes(point[:half]),
		Y:     new(big.Int).SetBytes(point[half:]),
	}, true
}

// VerifySignature checks the ECDSA signature (r, s) over sum, the digest of
// kind, against the public point.
func (Std) VerifySignature(curve x509scan.Curve, kind digest.Kind, point, sum, r, s []byte) bool {
	if kind == digest.KindNone || len(sum) != kind.Size() {
		return false
	}
	pub, ok := publicKey(curve, point)
	if !ok {
		return false
	}
	return ecdsa.Verify(pub, sum, new(big.Int).SetBytes(r), new(big.Int).SetBytes(s))
}
