// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package bignum implements fixed-width unsigned integer arithmetic sized to
// one RSA modulus.
//
// An [Engine] is configured with a modulus width in bits (a multiple of 32)
// and owns the double-width scratch space used inside multiplication and
// reduction. Values are [Nat] word arrays of exactly [Engine.Words] words,
// least significant word first; no routine ever grows a value.
//
// Two modular multiplication strategies are provided and always produce the
// same result:
//
//   - [MultiplyDivide] computes the full product and reduces it with long
//     division.
//   - [ShiftAdd] walks the multiplier bit by bit, doubling and conditionally
//     adding, using no double-width storage.
//
// Exponentiation is specialized for the public exponents 3 and 65537. An
// Engine is not safe for concurrent use; give each concurrent verification
// its own.
package bignum
