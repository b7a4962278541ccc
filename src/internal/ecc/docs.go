// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package ecc supplies the elliptic curve side of certificate verification.
// It validates uncompressed public points and checks ECDSA signatures given
// the message digest and the r and s halves, delegating curve arithmetic to
// the platform [crypto/ecdsa] implementation.
package ecc
