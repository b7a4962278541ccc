// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package digest

import (
	"crypto/sha1"
	"crypto/sha512"
	"errors"
)

// ErrUnsupportedKind indicates a hash kind with no implementation.
var ErrUnsupportedKind = errors.New("digest: unsupported hash kind")

// Kind names the hash function of a signature algorithm.
type Kind uint8

const (
	// KindNone marks an unrecognized or absent hash.
	KindNone Kind = iota
	KindSHA1
	KindSHA256
	KindSHA384
	KindSHA512
)

// Size returns the digest length in bytes, or 0 for [KindNone].
func (k Kind) Size() int {
	switch k {
	case KindSHA1:
		return sha1.Size
	case KindSHA256:
		return Size
	case KindSHA384:
		return sha512.Size384
	case KindSHA512:
		return sha512.Size
	}
	return 0
}

// String returns the conventional hash name.
func (k Kind) String() string {
	switch k {
	case KindSHA1:
		return "SHA1"
	case KindSHA256:
		return "SHA256"
	case KindSHA384:
		return "SHA384"
	case KindSHA512:
		return "SHA512"
	}
	return "NONE"
}

// Sum hashes data with the given kind. SHA-256 always goes through the
// local engine; the other kinds are handed to the platform implementation
// the same way curve arithmetic is.
func Sum(kind Kind, data []byte) ([]byte, error) {
	switch kind {
	case KindSHA256:
		sum := Sum256(data)
		return sum[:], nil
	case KindSHA1:
		sum := sha1.Sum(data)
		return sum[:], nil
	case KindSHA384:
		sum := sha512.Sum384(data)
		return sum[:], nil
	case KindSHA512:
		sum := sha512.Sum512(data)
		return sum[:], nil
	}
	return nil, ErrUnsupportedKind
}
