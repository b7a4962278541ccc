// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkcs1

import (
	"errors"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/digest"
	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/octet"
)

var (
	// ErrUnsupportedHash indicates a hash kind with no DigestInfo prefix.
	ErrUnsupportedHash = errors.New("pkcs1: unsupported hash kind")

	// ErrDigestLength indicates a digest whose length does not match its kind.
	ErrDigestLength = errors.New("pkcs1: digest length does not match hash kind")

	// ErrModulusWidth indicates a modulus that does not fill the verifier width.
	ErrModulusWidth = errors.New("pkcs1: modulus does not match verifier width")

	// ErrMessageTooLong indicates a modulus too short to hold the encoded digest.
	ErrMessageTooLong = errors.New("pkcs1: modulus too short for digest encoding")
)

// minPadding is the number of 0xFF bytes EMSA-PKCS1-v1_5 requires at least.
const minPadding = 8

var digestInfo = map[digest.Kind][]byte{
	digest.KindSHA1: {
		0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14,
	},
	digest.KindSHA256: {
		0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01,
		0x05, 0x00, 0x04, 0x20,
	},
	digest.KindSHA384: {
		0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02,
		0x05, 0x00, 0x04, 0x30,
	},
	digest.KindSHA512: {
		0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03,
		0x05, 0x00, 0x04, 0x40,
	},
}

// DigestInfo returns the DER prefix that precedes a digest of the given kind.
func DigestInfo(kind digest.Kind) ([]byte, error) {
	prefix, ok := digestInfo[kind]
	if !ok {
		return nil, ErrUnsupportedHash
	}
	return prefix, nil
}

func checkDigest(kind digest.Kind, sum []byte) ([]byte, error) {
	prefix, err := DigestInfo(kind)
	if err != nil {
		return nil, err
	}
	if len(sum) != kind.Size() {
		return nil, ErrDigestLength
	}
	return prefix, nil
}

// Pad writes the k-byte encoded message 00 01 FF.. 00 || DigestInfo || sum
// into em, replacing its contents.
func Pad(em *octet.Buffer, kind digest.Kind, sum []byte, k int) error {
	prefix, err := checkDigest(kind, sum)
	if err != nil {
		return err
	}
	tLen := len(prefix) + len(sum)
	if k < tLen+minPadding+3 {
		return ErrMessageTooLong
	}

	em.Reset()
	if err := em.Append([]byte{0x00, 0x01}); err != nil {
		return err
	}
	if err := em.AppendByte(0xff, k-tLen-3); err != nil {
		return err
	}
	if err := em.AppendByte(0x00, 1); err != nil {
		return err
	}
	if err := em.Append(prefix); err != nil {
		return err
	}
	return em.Append(sum)
}
