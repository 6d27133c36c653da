/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package arith provides arbitrary-precision modular arithmetic primitives
// used when generating public-key cryptographic parameters. Every operation
// treats its *big.Int arguments as immutable and returns freshly allocated
// values.
package arith

import (
	"math/big"

	"github.com/pkg/errors"
)

var one = big.NewInt(1)

// Abs returns the absolute value of a.
func Abs(a *big.Int) *big.Int {
	return new(big.Int).Abs(a)
}

// Max returns the larger of a and b.
func Max(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}

// Min returns the smaller of a and b.
func Min(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}

// BitLength returns the number of bits in the binary representation of a,
// that is, the b satisfying 2^(b-1) <= a < 2^b. It requires a >= 1.
func BitLength(a *big.Int) (int, error) {
	if a.Sign() < 1 {
		return 0, errors.Errorf("bit length requires a positive argument, got %s", a)
	}
	return a.BitLen(), nil
}
