/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package prime implements probabilistic primality testing and random
// probable-prime generation for public-key parameter sizes. Testing is
// Miller-Rabin behind a small-prime trial-division prefilter; generation
// races concurrent candidate testers and accepts the first success.
package prime

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/hyperledger-labs/bigcrypto/arith"
	"github.com/hyperledger-labs/bigcrypto/random"
	"github.com/pkg/errors"
)

// DefaultIterations is the default number of Miller-Rabin witness rounds.
// Each passing round at most quarters the chance of accepting a composite,
// so 16 rounds bound the error by 2^-32.
const DefaultIterations = 16

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// IsProbablyPrime reports whether w is prime with an error probability
// bounded by 4^-iterations. A non-positive iteration count selects
// DefaultIterations. Negative candidates are rejected.
func IsProbablyPrime(w *big.Int, iterations int) (bool, error) {
	if w.Sign() < 0 {
		return false, errors.Errorf("candidate must be non-negative, got %s", w)
	}
	if iterations < 1 {
		iterations = DefaultIterations
	}
	return millerRabin(rand.Reader, w, iterations)
}

// millerRabin runs the trial-division prefilter followed by iterations
// rounds of Miller-Rabin witness testing, drawing witnesses from rnd.
// The caller guarantees w >= 0 and iterations >= 1.
func millerRabin(rnd io.Reader, w *big.Int, iterations int) (bool, error) {
	if w.Cmp(two) == 0 {
		return true, nil
	}
	if w.Bit(0) == 0 || w.Cmp(one) <= 0 {
		return false, nil
	}

	for _, p := range smallPrimes {
		sp := new(big.Int).SetUint64(p)
		if new(big.Int).Mod(w, sp).Sign() == 0 {
			return w.Cmp(sp) == 0, nil
		}
	}

	// w-1 = 2^a * m with m odd
	wMinus1 := new(big.Int).Sub(w, one)
	m := new(big.Int).Set(wMinus1)
	a := 0
	for m.Bit(0) == 0 {
		m.Rsh(m, 1)
		a++
	}

	witnessMax := new(big.Int).Sub(w, two)
	for i := 0; i < iterations; i++ {
		b, err := random.UniformBetween(rnd, witnessMax, two)
		if err != nil {
			return false, err
		}
		z, err := arith.ModPow(b, m, w)
		if err != nil {
			return false, err
		}
		if z.Cmp(one) == 0 || z.Cmp(wMinus1) == 0 {
			continue
		}

		passed := false
		for j := 1; j < a; j++ {
			z.Mul(z, z).Mod(z, w)
			if z.Cmp(wMinus1) == 0 {
				passed = true
				break
			}
			// Hitting 1 without passing through w-1 exposes a non-trivial
			// square root of 1, so w is definitely composite.
			if z.Cmp(one) == 0 {
				return false, nil
			}
		}
		if !passed {
			return false, nil
		}
	}
	return true, nil
}
