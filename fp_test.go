// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFpAddSubNeg(t *testing.T) {
	a := FpFromU64(123456789)
	b := FpFromU64(987654321)

	require.True(t, a.Add(b).Sub(b).Eq(a))
	require.True(t, a.Add(a.Neg()).Eq(FpZero()))
	require.True(t, FpZero().Neg().Eq(FpZero()))
}

func TestFpMulInv(t *testing.T) {
	a := FpFromU64(42)
	inv := a.Inv()
	require.True(t, a.Mul(inv).Eq(FpOne()))

	one := FpOne()
	require.True(t, one.Mul(a).Eq(a))
}

func TestFpMulOverflow(t *testing.T) {
	// Near-p values exercise the full Mersenne-fold path in Mul.
	nearP := Fp{hi: pHi, lo: pLo - 1}
	sq := nearP.Mul(nearP)
	// (-1)^2 == 1 mod p, and nearP == p-1 == -1 mod p.
	require.True(t, sq.Eq(FpOne()))
}

// bigP returns p = 2^127-1 as a math/big reference modulus.
func bigP() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 127)
	return p.Sub(p, big.NewInt(1))
}

func fpToBig(a Fp) *big.Int {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(a.hi), 64)
	return v.Add(v, new(big.Int).SetUint64(a.lo))
}

// randFp draws a field element from the deterministic RNG by sampling raw
// bytes and reducing through FpFromBytes, the same path production code uses.
func randFp(rng *DeterministicRNG) Fp {
	var b [16]byte
	lo, hi := rng.Uint64(), rng.Uint64()
	for i := 0; i < 8; i++ {
		b[i] = byte(lo >> (8 * i))
		b[8+i] = byte(hi >> (8 * i))
	}
	return FpFromBytes(b)
}

// TestFpMulMatchesBigIntReference cross-checks Mul against an independent
// big.Int mod-p computation over many random operand pairs, including ones
// large enough to carry out of Mul's final 128-bit combine step.
func TestFpMulMatchesBigIntReference(t *testing.T) {
	p := bigP()
	rng := NewDeterministicRNG([]byte("fp-mul-bigint-reference"))

	for i := 0; i < 4096; i++ {
		a := randFp(rng)
		b := randFp(rng)

		got := fpToBig(a.Mul(b))

		want := new(big.Int).Mul(fpToBig(a), fpToBig(b))
		want.Mod(want, p)

		require.Equal(t, want, got, "trial %d: a=%+v b=%+v", i, a, b)
	}
}

func TestFpCtIsNonzero(t *testing.T) {
	require.False(t, FpZero().CtIsNonzero())
	require.True(t, FpOne().CtIsNonzero())
	require.True(t, FpFromU64(7).Neg().CtIsNonzero())
}

func TestFpBytesRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 42, 1<<64 - 1} {
		fp := FpFromU64(v)
		got := FpFromBytes(fp.Bytes())
		require.True(t, fp.Eq(got))
	}
}

func TestFpRandNonzeroNeverZero(t *testing.T) {
	for i := 0; i < 64; i++ {
		require.True(t, fpRandNonzero().CtIsNonzero())
	}
}
