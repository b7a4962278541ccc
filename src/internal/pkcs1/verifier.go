// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkcs1

import (
	"errors"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/digest"
)

// Verifier checks RSA PKCS#1 v1.5 signatures for one modulus width.
//
// It owns a [bignum.Engine] and every value the verification touches, so a
// Verifier must not be shared between goroutines. Reusing it sequentially
// is fine.
type Verifier struct {
	engine    *bignum.Engine
	modulus   bignum.Nat
	signature bignum.Nat
	expected  bignum.Nat
	recovered bignum.Nat
}

// NewVerifier returns a verifier for bits-wide moduli.
func NewVerifier(bits int, strategy bignum.Strategy) (*Verifier, error) {
	e, err := bignum.New(bits, strategy)
	if err != nil {
		return nil, err
	}
	return &Verifier{
		engine:    e,
		modulus:   e.Nat(),
		signature: e.Nat(),
		expected:  e.Nat(),
		recovered: e.Nat(),
	}, nil
}

// Bits returns the modulus width in bits.
func (v *Verifier) Bits() int { return v.engine.Words() * bignum.WordBits }

// Encode builds the expected encoded message for sum directly in
// fixed-width form. Byte index 0 is the least significant byte, so for a
// k-byte modulus the layout is:
//
//	k-1          0x00
//	k-2          0x01
//	t+1 .. k-3   0xFF
//	t            0x00
//	t-1 .. 0     DigestInfo || sum
//
// where t is the length of DigestInfo || sum. The returned value is owned
// by the verifier and overwritten by the next call.
func (v *Verifier) Encode(kind digest.Kind, sum []byte) (bignum.Nat, error) {
	prefix, err := checkDigest(kind, sum)
	if err != nil {
		return nil, err
	}
	k := v.engine.Bytes()
	t := len(prefix) + len(sum)
	if k < t+minPadding+3 {
		return nil, ErrMessageTooLong
	}

	e, x := v.engine, v.expected
	clear(x)
	e.PutByte(x, k-1, 0x00)
	e.PutByte(x, k-2, 0x01)
	for i := t + 1; i <= k-3; i++ {
		e.PutByte(x, i, 0xff)
	}
	e.PutByte(x, t, 0x00)
	for i, b := range sum {
		e.PutByte(x, len(sum)-1-i, b)
	}
	for i, b := range prefix {
		e.PutByte(x, t-1-i, b)
	}
	return x, nil
}

// Verify reports whether sig is a valid PKCS#1 v1.5 signature of sum under
// the public key (modulus, exp).
//
// Parameters:
//   - kind: hash that produced sum; selects the DigestInfo prefix
//   - sum: message digest, exactly kind.Size() bytes
//   - modulus: big-endian modulus filling the verifier width
//   - sig: big-endian signature, at most the modulus length
//   - exp: public exponent, 3 or 65537
//
// Returns:
//   - bool: true only when sig^exp mod modulus equals the expected encoding
//     in every word
//   - error: malformed inputs; a signature that merely does not verify is
//     reported as false with a nil error
func (v *Verifier) Verify(kind digest.Kind, sum, modulus, sig []byte, exp bignum.Exponent) (bool, error) {
	e := v.engine
	if !exp.Supported() {
		return false, bignum.ErrUnsupportedExponent
	}
	modulus = trimLeadingZeros(modulus)
	if len(modulus) != e.Bytes() {
		return false, ErrModulusWidth
	}
	if err := e.FromBytes(v.modulus, modulus); err != nil {
		return false, err
	}
	if len(trimLeadingZeros(sig)) > e.Bytes() {
		return false, nil
	}
	if err := e.FromBytes(v.signature, trimLeadingZeros(sig)); err != nil {
		return false, err
	}
	expected, err := v.Encode(kind, sum)
	if err != nil {
		return false, err
	}

	err = e.Exp(v.recovered, v.signature, v.modulus, exp)
	if errors.Is(err, bignum.ErrBaseOutOfRange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bignum.Compare(v.recovered, expected) == 0, nil
}

// Verify checks a SHA-256 PKCS#1 v1.5 signature, sizing a fresh engine
// from the modulus. It is the single-call form used by boot image checks,
// where the key is a bare modulus outside any certificate.
//
// A signature that does not match returns false with a nil error. Errors
// wrap [bignum.ErrUnsupportedExponent] for exponents other than 3 and 65537,
// and the [bignum.New] errors for a modulus width the engine cannot hold.
func Verify(sum [digest.Size]byte, modulus, sig []byte, exp bignum.Exponent, strategy bignum.Strategy) (bool, error) {
	if !exp.Supported() {
		return false, bignum.ErrUnsupportedExponent
	}
	modulus = trimLeadingZeros(modulus)
	v, err := NewVerifier(len(modulus)*8, strategy)
	if err != nil {
		return false, err
	}
	return v.Verify(digest.KindSHA256, sum[:], modulus, sig, exp)
}

func trimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
