// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package digest

import "math/bits"

// Size is the length of a SHA-256 digest in bytes.
const Size = 32

var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// SHA256 is the running state of one SHA-256 computation: eight chaining
// words, the message schedule, and the number of bits absorbed so far.
type SHA256 struct {
	h      [8]uint32
	w      [64]uint32
	length uint64
}

// New returns an initialized SHA-256 state.
func New() *SHA256 {
	s := &SHA256{}
	s.Init()
	return s
}

// Init resets the state for a new message.
func (s *SHA256) Init() {
	s.h = iv
	clear(s.w[:])
	s.length = 0
}

// Process folds one byte into the current schedule word and compresses when
// a full 512-bit block has been absorbed.
func (s *SHA256) Process(b byte) {
	cnt := (s.length / 32) % 16
	s.w[cnt] <<= 8
	s.w[cnt] |= uint32(b)
	s.length += 8
	if s.length%512 == 0 {
		s.transform()
	}
}

// Write absorbs p byte by byte. It never returns an error.
func (s *SHA256) Write(p []byte) (int, error) {
	for _, b := range p {
		s.Process(b)
	}
	return len(p), nil
}

// Hash pads the message, runs the final compression and returns the digest.
// The state is reinitialized afterwards, so a second call hashes the empty
// message.
func (s *SHA256) Hash() [Size]byte {
	total := s.length
	s.Process(0x80)
	for s.length%512 != 448 {
		s.Process(0)
	}
	s.w[14] = uint32(total >> 32)
	s.w[15] = uint32(total)
	s.transform()

	var out [Size]byte
	for i, v := range s.h {
		out[4*i] = byte(v >> 24)
		out[4*i+1] = byte(v >> 16)
		out[4*i+2] = byte(v >> 8)
		out[4*i+3] = byte(v)
	}
	s.Init()
	return out
}

func (s *SHA256) transform() {
	w := &s.w
	for j := 16; j < 64; j++ {
		w[j] = theta1(w[j-2]) + w[j-7] + theta0(w[j-15]) + w[j-16]
	}

	a, b, c, d := s.h[0], s.h[1], s.h[2], s.h[3]
	e, f, g, h := s.h[4], s.h[5], s.h[6], s.h[7]

	for j := 0; j < 64; j++ {
		t1 := h + sig1(e) + ch(e, f, g) + k[j] + w[j]
		t2 := sig0(a) + maj(a, b, c)
		h, g, f, e = g, f, e, d+t1
		d, c, b, a = c, b, a, t1+t2
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
	s.h[5] += f
	s.h[6] += g
	s.h[7] += h
}

func ch(x, y, z uint32) uint32  { return (x & y) ^ (^x & z) }
func maj(x, y, z uint32) uint32 { return (x & y) ^ (x & z) ^ (y & z) }

func sig0(x uint32) uint32 {
	return bits.RotateLeft32(x, -2) ^ bits.RotateLeft32(x, -13) ^ bits.RotateLeft32(x, -22)
}

func sig1(x uint32) uint32 {
	return bits.RotateLeft32(x, -6) ^ bits.RotateLeft32(x, -11) ^ bits.RotateLeft32(x, -25)
}

func theta0(x uint32) uint32 {
	return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ (x >> 3)
}

func theta1(x uint32) uint32 {
	return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ (x >> 10)
}

// Sum256 hashes data with a fresh state.
func Sum256(data []byte) [Size]byte {
	var s SHA256
	s.Init()
	_, _ = s.Write(data)
	return s.Hash()
}
