// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanNoiseNeverReturnsTotalOne(t *testing.T) {
	prm, err := NewParams(ParamsLiteral{
		B: 64, MBits: 128, EdgeBudget: 64,
		NoiseEntropyBits: 1, DepthSlopeBits: 0.01, Tuple2Fraction: 0.5,
		CanonTag: "test",
	})
	require.NoError(t, err)

	for depth := int32(0); depth < 64; depth++ {
		z2, z3 := planNoise(prm, depth)
		require.NotEqual(t, 1, z2+z3, "depth=%d", depth)
	}
}

func TestPlanNoiseZeroBudgetReturnsZeroZero(t *testing.T) {
	// S1: noise_entropy_bits=0, depth_slope_bits=0 => no budget at any depth.
	prm, err := NewParams(ParamsLiteral{
		B: 64, MBits: 128, EdgeBudget: 64,
		NoiseEntropyBits: 0, DepthSlopeBits: 0, Tuple2Fraction: 0.5,
		CanonTag: "test",
	})
	require.NoError(t, err)

	z2, z3 := planNoise(prm, 0)
	require.Equal(t, 0, z2)
	require.Equal(t, 0, z3)
}

func TestPlanNoiseAllTuple2(t *testing.T) {
	// S2: tuple2_fraction=1.0 => Z3 always zero, Z2 positive given entropy.
	prm, err := NewParams(ParamsLiteral{
		B: 256, MBits: 128, EdgeBudget: 4096,
		NoiseEntropyBits: 120, DepthSlopeBits: 0, Tuple2Fraction: 1.0,
		CanonTag: "test",
	})
	require.NoError(t, err)

	z2, z3 := planNoise(prm, 0)
	require.Equal(t, 0, z3)
	require.Greater(t, z2, 0)
}

func TestPlanNoiseParityFallbackIncrementsNonzeroVariable(t *testing.T) {
	// Force a total of exactly 1 before the parity rule via a Tuple2Fraction
	// that starves Z3 down to zero while leaving Z2 at 1.
	prm, err := NewParams(ParamsLiteral{
		B: 4096, MBits: 128, EdgeBudget: 4096,
		NoiseEntropyBits: 24, DepthSlopeBits: 0, Tuple2Fraction: 1.0,
		CanonTag: "test",
	})
	require.NoError(t, err)

	z2, z3 := planNoise(prm, 0)
	require.NotEqual(t, 1, z2+z3)
	// Tuple2Fraction=1.0 starves Z3 to zero both before and after the
	// fallback, so the fallback (if it fired) must have incremented Z2.
	require.Equal(t, 0, z3)
}
