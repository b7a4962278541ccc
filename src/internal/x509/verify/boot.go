// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509verify

import (
	"errors"
	"fmt"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/digest"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/pkcs1"
)

// VerifyBootImage checks a SHA-256 PKCS#1 v1.5 signature over image against
// a bare big-endian RSA modulus, as used by boot loaders that carry the key
// outside any certificate.
//
// The engine width is taken from the modulus. A signature that does not
// match returns false with a nil error.
func VerifyBootImage(image, modulus, sig []byte, exp bignum.Exponent, strategy bignum.Strategy) (bool, error) {
	ok, err := pkcs1.Verify(digest.Sum256(image), modulus, sig, exp, strategy)
	switch {
	case errors.Is(err, bignum.ErrUnsupportedExponent):
		return false, fmt.Errorf("%w: %d", ErrExponentUnsupported, exp)
	case err != nil:
		return false, fmt.Errorf("%w: %w", ErrModulusUnsupported, err)
	}
	return ok, nil
}
