// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestZeroMaskingPairSumsToZero checks the algebra behind enc_zero_depth,
// which pairs an encryption of a mask with an encryption of its negation.
// It calls genPayloadEdges directly for the mask and for its negation
// (R=1, so the per-layer scaling is left out) and checks that the two
// edge sets' value constraints sum to zero.
func TestZeroMaskingPairSumsToZero(t *testing.T) {
	pk := testPublicKey(t, Compact)
	mask := FpFromU64(314159)

	edgesA := genPayloadEdges(pk, 0, Nonce128{}, FpOne(), mask)
	edgesB := genPayloadEdges(pk, 0, Nonce128{}, FpOne(), mask.Neg())

	var total Fp
	for _, e := range append(edgesA, edgesB...) {
		total = total.Add(e.Sign.Scalar().Mul(e.W).Mul(pk.Prm.PowG[e.Idx]))
	}
	require.True(t, total.Eq(FpZero()))
}

func TestEncZeroDepthProducesTwoLayers(t *testing.T) {
	pk := testPublicKey(t, Compact)
	sk := NewKeyGenerator(pk.Prm).GenSecretKey()

	ct := EncZeroDepth(pk, sk, 0)
	require.Len(t, ct.L, 2)
	require.Len(t, ct.E, 2*payloadSize)
}

func TestEncValueRoundTripsThroughCombine(t *testing.T) {
	pk := testPublicKey(t, Standard)
	sk := NewKeyGenerator(pk.Prm).GenSecretKey()

	ct := EncValue(pk, sk, 12345)
	require.NotEmpty(t, ct.L)
	require.NotEmpty(t, ct.E)
}

// TestSigmaDensityBounds is property 8.
func TestSigmaDensityBounds(t *testing.T) {
	pk := testPublicKey(t, Standard)
	sk := NewKeyGenerator(pk.Prm).GenSecretKey()

	empty := NewCipher()
	require.Equal(t, 0.0, SigmaDensity(pk, empty))

	ct := EncFp(pk, sk, FpFromU64(7))
	d := SigmaDensity(pk, ct)
	require.GreaterOrEqual(t, d, 0.0)
	require.LessOrEqual(t, d, 1.0)
}

func TestEncFpDepthIncreasesNoiseWithDepthHint(t *testing.T) {
	prm, err := NewParams(Deep)
	require.NoError(t, err)
	pk := &PublicKey{Prm: prm}
	sk := NewKeyGenerator(prm).GenSecretKey()

	shallow := EncFpDepth(pk, sk, FpFromU64(1), 0)
	deep := EncFpDepth(pk, sk, FpFromU64(1), 20)
	require.GreaterOrEqual(t, len(deep.E), len(shallow.E))
}
