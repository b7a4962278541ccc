// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pkcs1 verifies [PKCS#1 v1.5] RSA signatures on top of the
// fixed-width arithmetic in [bignum].
//
// A [Verifier] rebuilds the expected encoded message
//
//	00 01 FF .. FF 00 || DigestInfo || digest
//
// directly at byte positions of a fixed-width integer, raises the signature
// to the public exponent and accepts only an exact match of every word. The
// same layout is available as a plain byte string through [Pad].
//
// [PKCS#1 v1.5]: https://www.rfc-editor.org/rfc/rfc8017#section-9.2
// [bignum]: https://pkg.go.dev/github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/bignum
package pkcs1
