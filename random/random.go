/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package random draws cryptographically secure random byte and bit
// sequences of an exact requested length, and uniform random integers via
// rejection sampling. Every function reads from the supplied entropy
// source; callers normally pass crypto/rand.Reader.
package random

import (
	"io"
	"math/big"

	"github.com/hyperledger-labs/bigcrypto/arith"
	"github.com/pkg/errors"
)

// Bytes fills a buffer of byteLength bytes from the entropy source. When
// forceTopBit is set, the most significant bit of the first byte is forced
// to 1 so a leading-zero byte cannot silently shorten the effective bit
// length of the value the buffer encodes.
func Bytes(rand io.Reader, byteLength int, forceTopBit bool) ([]byte, error) {
	if rand == nil {
		return nil, errors.New("entropy source must not be nil")
	}
	if byteLength < 1 {
		return nil, errors.Errorf("byteLength must be >= 1, got %d", byteLength)
	}

	buf := make([]byte, byteLength)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read entropy source")
	}
	if forceTopBit {
		buf[0] |= 0x80
	}
	return buf, nil
}

// Bits returns a buffer of ceil(bitLength/8) bytes whose value occupies at
// most bitLength bits: the excess high-order bits of the first byte are
// zeroed. When forceTopBit is set, the highest valid bit is forced to 1 so
// the value occupies exactly bitLength bits.
func Bits(rand io.Reader, bitLength int, forceTopBit bool) ([]byte, error) {
	if bitLength < 1 {
		return nil, errors.Errorf("bitLength must be >= 1, got %d", bitLength)
	}

	buf, err := Bytes(rand, (bitLength+7)/8, false)
	if err != nil {
		return nil, err
	}

	top := uint(bitLength % 8)
	if top == 0 {
		top = 8
	}
	buf[0] &= byte(1<<top) - 1
	if forceTopBit {
		buf[0] |= 1 << (top - 1)
	}
	return buf, nil
}

// UniformBetween returns a uniformly distributed integer in [min, max].
// Draws of bitLength(max-min) bits are rejected until one falls inside the
// range, which avoids the modulo bias a reduction would introduce. It
// requires max > min.
func UniformBetween(rand io.Reader, max, min *big.Int) (*big.Int, error) {
	if max.Cmp(min) <= 0 {
		return nil, errors.Errorf("max must be > min, got max=%s min=%s", max, min)
	}

	span := new(big.Int).Sub(max, min)
	bitLen, err := arith.BitLength(span)
	if err != nil {
		return nil, err
	}
	for {
		buf, err := Bits(rand, bitLen, false)
		if err != nil {
			return nil, err
		}
		r := new(big.Int).SetBytes(buf)
		if r.Cmp(span) <= 0 {
			return r.Add(r, min), nil
		}
	}
}
