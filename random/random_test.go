/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package random

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	t.Parallel()

	buf, err := Bytes(rand.Reader, 10, false)
	require.NoError(t, err)
	require.Len(t, buf, 10)

	buf, err = Bytes(rand.Reader, 1, true)
	require.NoError(t, err)
	require.Len(t, buf, 1)
	require.NotZero(t, buf[0]&0x80, "top bit must be forced")
}

func TestBytesForceTopBit(t *testing.T) {
	t.Parallel()

	// An all-zero source shows exactly which bit gets forced.
	zeros := bytes.NewReader(make([]byte, 16))
	buf, err := Bytes(zeros, 4, true)
	require.NoError(t, err)
	require.Equal(t, []byte{0x80, 0x00, 0x00, 0x00}, buf)
}

func TestBytesRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := Bytes(rand.Reader, 0, false)
	require.Error(t, err)
	_, err = Bytes(rand.Reader, -3, false)
	require.Error(t, err)
	_, err = Bytes(nil, 4, false)
	require.Error(t, err)
}

func TestBytesShortSource(t *testing.T) {
	t.Parallel()

	_, err := Bytes(bytes.NewReader([]byte{0x01}), 4, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "entropy source")
}

func TestBits(t *testing.T) {
	t.Parallel()

	for _, bitLen := range []int{1, 2, 7, 8, 9, 15, 16, 17, 255, 256, 1024} {
		buf, err := Bits(rand.Reader, bitLen, false)
		require.NoError(t, err)
		require.Len(t, buf, (bitLen+7)/8)

		v := new(big.Int).SetBytes(buf)
		require.LessOrEqual(t, v.BitLen(), bitLen, "value exceeds %d bits", bitLen)
	}
}

func TestBitsForceTopBit(t *testing.T) {
	t.Parallel()

	for _, bitLen := range []int{1, 2, 7, 8, 9, 15, 16, 17, 255, 256, 1024} {
		buf, err := Bits(rand.Reader, bitLen, true)
		require.NoError(t, err)

		v := new(big.Int).SetBytes(buf)
		require.Equal(t, bitLen, v.BitLen(), "value must occupy exactly %d bits", bitLen)
	}
}

func TestBitsMasksExcessBits(t *testing.T) {
	t.Parallel()

	ones := bytes.NewReader(bytes.Repeat([]byte{0xff}, 16))
	buf, err := Bits(ones, 9, false)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0xff}, buf)

	ones = bytes.NewReader(bytes.Repeat([]byte{0xff}, 16))
	buf, err = Bits(ones, 12, false)
	require.NoError(t, err)
	require.Equal(t, []byte{0x0f, 0xff}, buf)
}

func TestBitsRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := Bits(rand.Reader, 0, false)
	require.Error(t, err)
	_, err = Bits(rand.Reader, -1, true)
	require.Error(t, err)
}

func TestUniformBetween(t *testing.T) {
	t.Parallel()

	min := big.NewInt(1)
	max := big.NewInt(100)
	seen := map[int64]bool{}
	for i := 0; i < 2000; i++ {
		v, err := UniformBetween(rand.Reader, max, min)
		require.NoError(t, err)
		require.True(t, v.Cmp(min) >= 0, "value %s below min", v)
		require.True(t, v.Cmp(max) <= 0, "value %s above max", v)
		seen[v.Int64()] = true
	}
	// Statistical sanity only: 2000 draws over 100 values should touch most
	// of the range.
	require.Greater(t, len(seen), 80, "distribution collapsed: only %d distinct values", len(seen))
}

func TestUniformBetweenNegativeRange(t *testing.T) {
	t.Parallel()

	min := big.NewInt(-50)
	max := big.NewInt(-10)
	for i := 0; i < 200; i++ {
		v, err := UniformBetween(rand.Reader, max, min)
		require.NoError(t, err)
		require.True(t, v.Cmp(min) >= 0 && v.Cmp(max) <= 0, "value %s out of [-50, -10]", v)
	}
}

func TestUniformBetweenRejectsBadRange(t *testing.T) {
	t.Parallel()

	_, err := UniformBetween(rand.Reader, big.NewInt(1), big.NewInt(1))
	require.Error(t, err)
	_, err = UniformBetween(rand.Reader, big.NewInt(1), big.NewInt(5))
	require.Error(t, err)
}
