// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bignum

import (
	"errors"
	"strings"
)

// ErrStrategy indicates an unknown modular multiplication strategy.
var ErrStrategy = errors.New("bignum: unknown multiplication strategy")

// Strategy selects how [Engine.MulMod] reduces products.
type Strategy uint8

const (
	// MultiplyDivide forms the full double-width product and reduces it by
	// long division.
	MultiplyDivide Strategy = iota
	// ShiftAdd interleaves doubling, conditional addition and conditional
	// subtraction of the modulus, one multiplier bit at a time.
	ShiftAdd
)

func (s Strategy) valid() bool { return s == MultiplyDivide || s == ShiftAdd }

// String returns the configuration name of s.
func (s Strategy) String() string {
	switch s {
	case MultiplyDivide:
		return "divide"
	case ShiftAdd:
		return "shift"
	}
	return "unknown"
}

// ParseStrategy maps a configuration name to a [Strategy].
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "divide", "multiply-divide":
		return MultiplyDivide, nil
	case "shift", "shift-add":
		return ShiftAdd, nil
	}
	return 0, ErrStrategy
}

// MulMod sets z = x · y mod m. Both operands must be less than m. z may
// alias x or y.
func (e *Engine) MulMod(z, x, y, m Nat) error {
	if err := e.check(z, x, y, m); err != nil {
		return err
	}
	if IsZero(m) {
		return ErrZeroModulus
	}
	if Compare(x, m) >= 0 || Compare(y, m) >= 0 {
		return ErrBaseOutOfRange
	}
	if e.strategy == ShiftAdd {
		e.shiftAdd(x, y, m)
		copy(z, e.acc)
		return nil
	}
	Mul(e.prod, x, y)
	return e.Reduce(z, e.prod, m)
}

// shiftAdd leaves x · y mod m in e.acc. It needs x, y < m.
func (e *Engine) shiftAdd(x, y, m Nat) {
	r := e.acc
	clear(r)
	for i := len(x)*WordBits - 1; i >= 0; i-- {
		if shl1(r) != 0 || Compare(r, m) >= 0 {
			Sub(r, r, m)
		}
		if bit(x, i) == 1 {
			if Add(r, r, y) != 0 || Compare(r, m) >= 0 {
				Sub(r, r, m)
			}
		}
	}
}
