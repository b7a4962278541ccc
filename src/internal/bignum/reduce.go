// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package bignum

import "math/bits"

// Reduce sets r = x mod m. x may be up to twice the engine width plus one
// word; r and m must be engine width. r may alias m but not x.
func (e *Engine) Reduce(r Nat, x Nat, m Nat) error {
	if err := e.check(r, m); err != nil {
		return err
	}
	if len(x) > 2*e.n+1 {
		return ErrLength
	}
	nm := significant(m)
	if nm == 0 {
		return ErrZeroModulus
	}
	nx := significant(x)
	if nx < nm {
		clear(r)
		copy(r, x[:nx])
		return nil
	}
	if nm == 1 {
		d := uint64(m[0])
		var rem uint64
		for i := nx - 1; i >= 0; i-- {
			rem = (rem<<WordBits | uint64(x[i])) % d
		}
		clear(r)
		r[0] = Word(rem)
		return nil
	}
	e.divmod(r, x[:nx], m[:nm])
	return nil
}

// divmod is Knuth's algorithm D with normalization, keeping only the
// remainder. len(u) >= len(v) >= 2 and the top word of v is nonzero.
func (e *Engine) divmod(r, u, v Nat) {
	n, m := len(v), len(u)-len(v)
	s := uint(bits.LeadingZeros32(v[n-1]))

	vn := e.vn[:n]
	for i := n - 1; i > 0; i-- {
		vn[i] = v[i]<<s | v[i-1]>>(WordBits-s)
	}
	vn[0] = v[0] << s

	un := e.un[:m+n+1]
	un[m+n] = u[m+n-1] >> (WordBits - s)
	for i := m + n - 1; i > 0; i-- {
		un[i] = u[i]<<s | u[i-1]>>(WordBits-s)
	}
	un[0] = u[0] << s

	const b = 1 << WordBits
	for j := m; j >= 0; j-- {
		num := uint64(un[j+n])<<WordBits | uint64(un[j+n-1])
		qhat := num / uint64(vn[n-1])
		rhat := num % uint64(vn[n-1])
		for qhat >= b || qhat*uint64(vn[n-2]) > (rhat<<WordBits|uint64(un[j+n-2])) {
			qhat--
			rhat += uint64(vn[n-1])
			if rhat >= b {
				break
			}
		}

		var k int64
		for i := 0; i < n; i++ {
			p := qhat * uint64(vn[i])
			t := int64(un[i+j]) - k - int64(p&0xffffffff)
			un[i+j] = Word(t)
			k = int64(p>>WordBits) - (t >> WordBits)
		}
		t := int64(un[j+n]) - k
		un[j+n] = Word(t)

		if t < 0 {
			var c uint64
			for i := 0; i < n; i++ {
				sum := uint64(un[i+j]) + uint64(vn[i]) + c
				un[i+j] = Word(sum)
				c = sum >> WordBits
			}
			un[j+n] += Word(c)
		}
	}

	clear(r)
	for i := 0; i < n-1; i++ {
		r[i] = un[i]>>s | un[i+1]<<(WordBits-s)
	}
	r[n-1] = un[n-1] >> s
}
