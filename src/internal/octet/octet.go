// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package octet

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	// ErrOverflow indicates that a write would exceed the buffer capacity.
	ErrOverflow = errors.New("octet: write exceeds buffer capacity")

	// ErrRange indicates an offset or length outside the logical contents.
	ErrRange = errors.New("octet: range outside buffer contents")

	// ErrBase64 indicates that a transport string is not valid base64.
	ErrBase64 = errors.New("octet: invalid base64 input")
)

// Buffer is a fixed-capacity byte buffer with a logical length.
//
// The zero value has no capacity; use [New] to allocate one.
type Buffer struct {
	val []byte
	n   int
}

// New allocates a buffer able to hold capacity bytes.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{val: make([]byte, capacity)}
}

// Len returns the logical length.
func (b *Buffer) Len() int { return b.n }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.val) }

// Bytes returns a view of the logical contents. The view is invalidated by
// the next write.
func (b *Buffer) Bytes() []byte { return b.val[:b.n] }

// Reset clears the logical contents and zeroes the storage.
func (b *Buffer) Reset() {
	clear(b.val)
	b.n = 0
}

// Set replaces the contents with p.
func (b *Buffer) Set(p []byte) error {
	if len(p) > len(b.val) {
		return ErrOverflow
	}
	b.n = copy(b.val, p)
	return nil
}

// Append adds p after the current contents.
func (b *Buffer) Append(p []byte) error {
	if len(p) > len(b.val)-b.n {
		return ErrOverflow
	}
	b.n += copy(b.val[b.n:], p)
	return nil
}

// AppendByte adds c after the current contents, count times.
func (b *Buffer) AppendByte(c byte, count int) error {
	if count < 0 || count > len(b.val)-b.n {
		return ErrOverflow
	}
	for i := 0; i < count; i++ {
		b.val[b.n] = c
		b.n++
	}
	return nil
}

// SetSlice replaces the contents with src[off:off+length], checking the range
// against src before copying.
func (b *Buffer) SetSlice(src []byte, off, length int) error {
	if off < 0 || length < 0 || off > len(src) || length > len(src)-off {
		return ErrRange
	}
	return b.Set(src[off : off+length])
}

// Chop moves everything after the first n bytes into tail, leaving b with
// exactly n bytes.
func (b *Buffer) Chop(n int, tail *Buffer) error {
	if n < 0 || n > b.n {
		return ErrRange
	}
	if err := tail.Set(b.val[n:b.n]); err != nil {
		return err
	}
	clear(b.val[n:b.n])
	b.n = n
	return nil
}

// FromBase64 decodes a base64 transport string into dst. Whitespace inside
// s is ignored so that PEM bodies can be passed directly.
func FromBase64(dst *Buffer, s string) error {
	s = strings.Join(strings.Fields(s), "")
	if base64.StdEncoding.DecodedLen(len(s)) > dst.Cap() {
		// DecodedLen is an upper bound; decode into scratch and let Set
		// decide on the exact size.
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return ErrBase64
		}
		return dst.Set(raw)
	}
	n, err := base64.StdEncoding.Decode(dst.val, []byte(s))
	if err != nil {
		dst.Reset()
		return ErrBase64
	}
	dst.n = n
	return nil
}
