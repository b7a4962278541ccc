// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bignum

import "strconv"

// Exponent is an RSA public exponent.
type Exponent uint32

const (
	// E3 is the public exponent 3.
	E3 Exponent = 3
	// E65537 is the public exponent 2^16+1.
	E65537 Exponent = 65537
)

// Supported reports whether e has a specialized exponentiation path.
func (e Exponent) Supported() bool { return e == E3 || e == E65537 }

// String returns the decimal form of e.
func (e Exponent) String() string { return strconv.FormatUint(uint64(e), 10) }

// Exp sets c = s^e mod m for e in {3, 65537}. s must be less than m. c may
// alias s.
func (e *Engine) Exp(c, s, m Nat, exp Exponent) error {
	if err := e.check(c, s, m); err != nil {
		return err
	}
	if !exp.Supported() {
		return ErrUnsupportedExponent
	}
	if IsZero(m) {
		return ErrZeroModulus
	}
	if Compare(s, m) >= 0 {
		return ErrBaseOutOfRange
	}

	base, t := e.base, e.t
	copy(base, s)

	// The operands are already reduced, so MulMod cannot fail from here.
	if exp == E3 {
		_ = e.MulMod(t, base, base, m)
		_ = e.MulMod(c, base, t, m)
		return nil
	}

	_ = e.MulMod(c, base, base, m)
	for i := 0; i < 7; i++ {
		_ = e.MulMod(t, c, c, m)
		_ = e.MulMod(c, t, t, m)
	}
	_ = e.MulMod(t, c, c, m)
	_ = e.MulMod(c, base, t, m)
	return nil
}

// ExpGeneric sets c = s^exp mod m by left-to-right square-and-multiply. It
// accepts any exponent and serves as the reference for [Engine.Exp].
func (e *Engine) ExpGeneric(c, s, m Nat, exp uint64) error {
	if err := e.check(c, s, m); err != nil {
		return err
	}
	if IsZero(m) {
		return ErrZeroModulus
	}
	if Compare(s, m) >= 0 {
		return ErrBaseOutOfRange
	}

	base, t := e.base, e.t
	copy(base, s)

	// c = 1 mod m
	e.SetWord(t, 1)
	if err := e.Reduce(c, t, m); err != nil {
		return err
	}
	for i := 63; i >= 0; i-- {
		_ = e.MulMod(c, c, c, m)
		if exp>>uint(i)&1 == 1 {
			_ = e.MulMod(c, c, base, m)
		}
	}
	return nil
}
