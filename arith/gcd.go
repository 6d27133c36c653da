/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package arith

import (
	"math/big"

	"github.com/pkg/errors"
)

// EGcd runs the iterative extended Euclidean algorithm on a and b. Both
// operands must be positive. It returns g = gcd(a, b) together with the
// Bezout coefficients x and y satisfying a*x + b*y = g.
func EGcd(a, b *big.Int) (g, x, y *big.Int, err error) {
	if a.Sign() < 1 || b.Sign() < 1 {
		return nil, nil, nil, errors.Errorf("extended gcd requires positive operands, got %s and %s", a, b)
	}

	ra := new(big.Int).Set(a)
	rb := new(big.Int).Set(b)
	x = big.NewInt(0)
	y = big.NewInt(1)
	u := big.NewInt(1)
	v := big.NewInt(0)

	for ra.Sign() != 0 {
		q, r := new(big.Int).QuoRem(rb, ra, new(big.Int))
		m := new(big.Int).Sub(x, new(big.Int).Mul(u, q))
		n := new(big.Int).Sub(y, new(big.Int).Mul(v, q))
		rb, ra = ra, r
		x, y = u, v
		u, v = m, n
	}
	return rb, x, y, nil
}

// Gcd computes the greatest common divisor of a and b with the binary
// (Stein's) algorithm: common factors of two are stripped with a shared
// shift, each operand's own factors of two are removed, and the remainder
// is reduced by subtraction. The result is always non-negative, and either
// operand may be zero.
func Gcd(a, b *big.Int) *big.Int {
	u := new(big.Int).Abs(a)
	v := new(big.Int).Abs(b)
	if u.Sign() == 0 {
		return v
	}
	if v.Sign() == 0 {
		return u
	}

	var shift uint
	for u.Bit(0) == 0 && v.Bit(0) == 0 {
		u.Rsh(u, 1)
		v.Rsh(v, 1)
		shift++
	}
	for u.Bit(0) == 0 {
		u.Rsh(u, 1)
	}
	for {
		for v.Bit(0) == 0 {
			v.Rsh(v, 1)
		}
		if u.Cmp(v) > 0 {
			u, v = v, u
		}
		v.Sub(v, u)
		if v.Sign() == 0 {
			break
		}
	}
	return u.Lsh(u, shift)
}

// Lcm returns the least common multiple of a and b, computed as
// abs((a/gcd(a,b))*b). Lcm(0, 0) is 0.
func Lcm(a, b *big.Int) *big.Int {
	if a.Sign() == 0 && b.Sign() == 0 {
		return new(big.Int)
	}
	q := new(big.Int).Quo(a, Gcd(a, b))
	q.Mul(q, b)
	return q.Abs(q)
}
