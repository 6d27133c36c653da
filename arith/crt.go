/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package arith

import (
	"math/big"

	"github.com/pkg/errors"
)

// PrimeFactor is one (prime, exponent) term of a factorization.
type PrimeFactor struct {
	Prime    *big.Int
	Exponent uint
}

// Phi computes Euler's totient of the integer described by the given prime
// factorization, as the product of p^(k-1)*(p-1) over every factor.
func Phi(factorization []PrimeFactor) (*big.Int, error) {
	phi := big.NewInt(1)
	for _, f := range factorization {
		if f.Prime == nil || f.Prime.Cmp(one) <= 0 {
			return nil, errors.Errorf("factorization primes must be > 1, got %s", f.Prime)
		}
		if f.Exponent < 1 {
			return nil, errors.Errorf("factorization exponents must be >= 1, got %d for prime %s", f.Exponent, f.Prime)
		}
		term := new(big.Int).Exp(f.Prime, new(big.Int).SetUint64(uint64(f.Exponent-1)), nil)
		term.Mul(term, new(big.Int).Sub(f.Prime, one))
		phi.Mul(phi, term)
	}
	return phi, nil
}

// CRT solves the system x = remainders[i] (mod moduli[i]) for pairwise
// coprime moduli via the Chinese remainder theorem. The result is the unique
// solution in [0, N) where N is the product of the moduli. Non-coprime
// moduli surface as ErrNoInverse.
func CRT(remainders, moduli []*big.Int) (*big.Int, error) {
	if len(moduli) == 0 {
		return nil, errors.New("at least one congruence is required")
	}
	if len(remainders) != len(moduli) {
		return nil, errors.Errorf("mismatched congruences: %d remainders, %d moduli", len(remainders), len(moduli))
	}

	modulus := big.NewInt(1)
	for _, n := range moduli {
		if n.Sign() < 1 {
			return nil, errors.Errorf("modulus must be > 0, got %s", n)
		}
		modulus.Mul(modulus, n)
	}

	sum := new(big.Int)
	for i, n := range moduli {
		partial := new(big.Int).Quo(modulus, n)
		inv, err := ModInv(partial, n)
		if err != nil {
			return nil, err
		}
		term := new(big.Int).Mul(partial, inv)
		term.Mul(term, remainders[i])
		sum.Add(sum, term)
	}
	return ToZn(sum, modulus)
}
