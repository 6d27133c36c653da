/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package arith

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrNoInverse is returned by ModInv when the operand shares a non-trivial
// factor with the modulus. Callers can test for it with errors.Cause.
var ErrNoInverse = errors.New("no modular inverse exists")

// ToZn returns the canonical non-negative residue of a modulo n, which lies
// in [0, n). The modulus n must be positive.
func ToZn(a, n *big.Int) (*big.Int, error) {
	if n.Sign() < 1 {
		return nil, errors.Errorf("modulus must be > 0, got %s", n)
	}
	return new(big.Int).Mod(a, n), nil
}

// ModInv returns the multiplicative inverse of a modulo n, reduced into
// [0, n). It wraps ErrNoInverse when gcd(a, n) != 1.
func ModInv(a, n *big.Int) (*big.Int, error) {
	r, err := ToZn(a, n)
	if err != nil {
		return nil, err
	}
	g, x, _, err := EGcd(r, n)
	if err != nil {
		return nil, err
	}
	if g.Cmp(one) != 0 {
		return nil, errors.Wrapf(ErrNoInverse, "%s modulo %s", a, n)
	}
	return ToZn(x, n)
}

// ModPow computes b^e mod n with right-to-left binary exponentiation,
// reducing after every squaring and multiplication. The modulus n must be
// positive; the result for n == 1 is 0. A negative exponent is handled as
// ModInv(ModPow(b, -e, n), n), so it fails when b is not invertible mod n.
func ModPow(b, e, n *big.Int) (*big.Int, error) {
	if n.Sign() < 1 {
		return nil, errors.Errorf("modulus must be > 0, got %s", n)
	}
	if n.Cmp(one) == 0 {
		return new(big.Int), nil
	}

	base, err := ToZn(b, n)
	if err != nil {
		return nil, err
	}
	if e.Sign() < 0 {
		p, err := ModPow(base, new(big.Int).Neg(e), n)
		if err != nil {
			return nil, err
		}
		return ModInv(p, n)
	}

	r := big.NewInt(1)
	exp := new(big.Int).Set(e)
	for exp.Sign() > 0 {
		if exp.Bit(0) == 1 {
			r.Mul(r, base).Mod(r, n)
		}
		exp.Rsh(exp, 1)
		base = new(big.Int).Mul(base, base)
		base.Mod(base, n)
	}
	return r, nil
}

// ModAdd returns (a + b) mod n in [0, n).
func ModAdd(a, b, n *big.Int) (*big.Int, error) {
	return ToZn(new(big.Int).Add(a, b), n)
}

// ModMul returns (a * b) mod n in [0, n). Operands are reduced into [0, n)
// before multiplying to keep the intermediate product small.
func ModMul(a, b, n *big.Int) (*big.Int, error) {
	ra, err := ToZn(a, n)
	if err != nil {
		return nil, err
	}
	rb, err := ToZn(b, n)
	if err != nil {
		return nil, err
	}
	return ToZn(ra.Mul(ra, rb), n)
}
