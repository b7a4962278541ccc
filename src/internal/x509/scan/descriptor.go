// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509scan

import (
	"strings"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/digest"
)

// Algorithm is the public key family of a signature or key.
type Algorithm uint8

const (
	// AlgorithmNone marks an unrecognized or unsupported algorithm. It is
	// terminal for verification.
	AlgorithmNone Algorithm = iota
	AlgorithmECC
	AlgorithmRSA
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmECC:
		return "ECC"
	case AlgorithmRSA:
		return "RSA"
	}
	return "NONE"
}

// Curve identifies a named elliptic curve.
type Curve uint8

const (
	CurveNone Curve = iota
	CurveP256
	CurveP384
	CurveP521
)

func (c Curve) String() string {
	switch c {
	case CurveP256:
		return "P-256"
	case CurveP384:
		return "P-384"
	case CurveP521:
		return "P-521"
	}
	return "NONE"
}

// Bits returns the field size of the curve.
func (c Curve) Bits() int {
	switch c {
	case CurveP256:
		return 256
	case CurveP384:
		return 384
	case CurveP521:
		return 521
	}
	return 0
}

// CoordinateSize returns the byte length of one point coordinate.
func (c Curve) CoordinateSize() int { return (c.Bits() + 7) / 8 }

// ParseCurve maps a curve name such as "P-256" or "secp384r1" to a [Curve].
func ParseCurve(name string) Curve {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "P-256", "P256", "PRIME256V1", "SECP256R1":
		return CurveP256
	case "P-384", "P384", "SECP384R1":
		return CurveP384
	case "P-521", "P521", "SECP521R1":
		return CurveP521
	}
	return CurveNone
}

// Descriptor classifies a signature or a public key.
//
// For signatures Hash names the digest the signer used. For keys Bits is the
// modulus or curve size, Curve is set for ECC and Exponent for RSA.
type Descriptor struct {
	Algorithm Algorithm
	Curve     Curve
	Hash      digest.Kind
	Bits      int
	Exponent  uint32
}

// Supported reports whether the descriptor names a usable algorithm.
func (d Descriptor) Supported() bool { return d.Algorithm != AlgorithmNone }

// Attribute references one distinguished name attribute value inside the
// buffer it was found in. It is a view, valid as long as that buffer is.
type Attribute struct {
	OID    []byte
	Offset int
	Length int
}

// Found reports whether the lookup located the attribute.
func (a Attribute) Found() bool { return a.Offset != 0 }

// Value returns the referenced bytes of buf, or nil when not found or out of
// range.
func (a Attribute) Value(buf []byte) []byte {
	if !a.Found() || a.Length < 0 || a.Offset+a.Length > len(buf) {
		return nil
	}
	return buf[a.Offset : a.Offset+a.Length]
}
