/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prime

import "github.com/bits-and-blooms/bitset"

// smallPrimesLimit bounds the sieve so it yields the first 250 odd primes,
// 3 through 1597, used by the trial-division prefilter. A random candidate
// divisible by one of these is rejected long before the witness loop runs.
const smallPrimesLimit = 1597

var smallPrimes = sieveOddPrimes(smallPrimesLimit)

// sieveOddPrimes returns the odd primes <= limit in ascending order, found
// with a sieve of Eratosthenes over a bit set of composites.
func sieveOddPrimes(limit uint) []uint64 {
	composite := bitset.New(limit + 1)
	primes := make([]uint64, 0, 250)
	for n := uint(3); n <= limit; n += 2 {
		if composite.Test(n) {
			continue
		}
		primes = append(primes, uint64(n))
		for m := n * n; m <= limit; m += 2 * n {
			composite.Set(m)
		}
	}
	return primes
}
