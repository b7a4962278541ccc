// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bignum

import (
	"errors"
	"math/bits"
)

// Word is one limb of a [Nat].
type Word = uint32

const (
	// WordBits is the width of a [Word].
	WordBits = 32
	wordBytes = WordBits / 8
)

var (
	// ErrWidth indicates a modulus width that is not a positive multiple of [WordBits].
	ErrWidth = errors.New("bignum: modulus width must be a positive multiple of 32 bits")

	// ErrLength indicates a value whose word count does not match the engine.
	ErrLength = errors.New("bignum: value length does not match engine width")

	// ErrZeroModulus indicates reduction by zero.
	ErrZeroModulus = errors.New("bignum: modulus is zero")

	// ErrBaseOutOfRange indicates an operand that is not smaller than the modulus.
	ErrBaseOutOfRange = errors.New("bignum: operand is not less than modulus")

	// ErrUnsupportedExponent indicates a public exponent with no specialized path.
	ErrUnsupportedExponent = errors.New("bignum: unsupported public exponent")

	// ErrTooLong indicates big-endian input wider than the engine.
	ErrTooLong = errors.New("bignum: input longer than modulus width")
)

// Nat is a fixed-width unsigned integer, least significant word first.
type Nat []Word

// Engine performs arithmetic on values of one fixed width.
type Engine struct {
	n        int
	strategy Strategy

	prod Nat // 2n, full products
	un   Nat // 2n+2, normalized dividend
	vn   Nat // n, normalized divisor
	acc  Nat // n, shift-add accumulator and modmul result
	base Nat // n, copy of the exponentiation base
	t    Nat // n, exponentiation temporary
}

// New returns an engine for bits-wide values.
func New(bits int, strategy Strategy) (*Engine, error) {
	if bits <= 0 || bits%WordBits != 0 {
		return nil, ErrWidth
	}
	if !strategy.valid() {
		return nil, ErrStrategy
	}
	n := bits / WordBits
	return &Engine{
		n:        n,
		strategy: strategy,
		prod:     make(Nat, 2*n),
		un:       make(Nat, 2*n+2),
		vn:       make(Nat, n),
		acc:      make(Nat, n),
		base:     make(Nat, n),
		t:        make(Nat, n),
	}, nil
}

// Words returns the number of words per value.
func (e *Engine) Words() int { return e.n }

// Bytes returns the number of bytes per value.
func (e *Engine) Bytes() int { return e.n * wordBytes }

// Strategy returns the configured modular multiplication strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Nat allocates a zero value of the engine width.
func (e *Engine) Nat() Nat { return make(Nat, e.n) }

func (e *Engine) check(xs ...Nat) error {
	for _, x := range xs {
		if len(x) != e.n {
			return ErrLength
		}
	}
	return nil
}

// PutByte stores v at little-endian byte position index of x. Positions at or
// beyond the engine width are ignored.
func (e *Engine) PutByte(x Nat, index int, v byte) {
	if index < 0 || index >= e.Bytes() || index/wordBytes >= len(x) {
		return
	}
	el, bp := index/wordBytes, uint(index%wordBytes)*8
	x[el] = x[el]&^(0xff<<bp) | Word(v)<<bp
}

// FromBytes loads big-endian bytes into x, right aligned.
func (e *Engine) FromBytes(x Nat, b []byte) error {
	if err := e.check(x); err != nil {
		return err
	}
	if len(b) > e.Bytes() {
		return ErrTooLong
	}
	clear(x)
	for i, v := range b {
		e.PutByte(x, len(b)-1-i, v)
	}
	return nil
}

// ToBytes writes x into dst as exactly [Engine.Bytes] big-endian bytes.
func (e *Engine) ToBytes(dst []byte, x Nat) error {
	if err := e.check(x); err != nil {
		return err
	}
	if len(dst) != e.Bytes() {
		return ErrLength
	}
	nb := e.Bytes()
	for i := 0; i < nb; i++ {
		dst[nb-1-i] = byte(x[i/wordBytes] >> (uint(i%wordBytes) * 8))
	}
	return nil
}

// Set copies src into dst.
func (e *Engine) Set(dst, src Nat) { copy(dst, src) }

// SetWord sets x to the small value w.
func (e *Engine) SetWord(x Nat, w Word) {
	clear(x)
	if len(x) > 0 {
		x[0] = w
	}
}

// IsZero reports whether every word of x is zero.
func IsZero(x Nat) bool {
	for _, w := range x {
		if w != 0 {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or +1 as x is less than, equal to, or greater than
// y. Words are compared from the most significant end; both values must
// have the same length.
func Compare(x, y Nat) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] > y[i]:
			return 1
		case x[i] < y[i]:
			return -1
		}
	}
	return 0
}

// Add sets z = x + y modulo 2^(32·len) and returns the carry out.
func Add(z, x, y Nat) Word {
	var c Word
	for i := range z {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	return c
}

// Sub sets z = x - y modulo 2^(32·len) and returns the borrow out.
func Sub(z, x, y Nat) Word {
	var b Word
	for i := range z {
		z[i], b = bits.Sub32(x[i], y[i], b)
	}
	return b
}

// shl1 doubles x in place and returns the bit shifted out.
func shl1(x Nat) Word {
	var c Word
	for i := range x {
		c, x[i] = x[i]>>(WordBits-1), x[i]<<1|c
	}
	return c
}

// bit returns bit i of x.
func bit(x Nat, i int) Word {
	return (x[i/WordBits] >> uint(i%WordBits)) & 1
}

// Mul sets z = x · y. z must hold len(x)+len(y) words and must not alias
// either operand.
func Mul(z, x, y Nat) {
	clear(z)
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var carry uint64
		for j, yj := range y {
			t := uint64(xi)*uint64(yj) + uint64(z[i+j]) + carry
			z[i+j] = Word(t)
			carry = t >> WordBits
		}
		z[i+len(y)] = Word(carry)
	}
}

// significant returns the number of words of x up to and including the most
// significant nonzero one.
func significant(x Nat) int {
	n := len(x)
	for n > 0 && x[n-1] == 0 {
		n--
	}
	return n
}
