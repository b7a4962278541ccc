// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package digest implements a streaming [SHA-256] engine that accumulates
// input one byte at a time, together with a small [Kind] enumeration used by
// signature descriptors to name the hash of a signature algorithm.
//
// The SHA-256 engine has no internal locking. One [SHA256] value must be
// owned by exactly one verification at a time; it is safe to reuse
// sequentially because [SHA256.Hash] reinitializes it.
//
// [SHA-256]: https://csrc.nist.gov/pubs/fips/180-4/upd1/final
package digest
