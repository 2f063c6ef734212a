// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrfRDeterministic(t *testing.T) {
	pk := testPublicKey(t, Standard)
	sk := NewKeyGenerator(pk.Prm).GenSecretKey()
	seed := RSeed{Nonce: Nonce128{Lo: 1, Hi: 2}, ZTag: 3}

	a := prfR(pk, sk, seed)
	b := prfR(pk, sk, seed)
	require.True(t, a.Eq(b))
}

func TestPrfRVariesWithSeed(t *testing.T) {
	pk := testPublicKey(t, Standard)
	sk := NewKeyGenerator(pk.Prm).GenSecretKey()

	a := prfR(pk, sk, RSeed{Nonce: Nonce128{Lo: 1}, ZTag: 1})
	b := prfR(pk, sk, RSeed{Nonce: Nonce128{Lo: 2}, ZTag: 1})
	require.False(t, a.Eq(b))
}

func TestPrfRVariesWithKey(t *testing.T) {
	pk := testPublicKey(t, Standard)
	kgen := NewKeyGenerator(pk.Prm)
	seed := RSeed{Nonce: Nonce128{Lo: 9}, ZTag: 9}

	a := prfR(pk, kgen.GenSecretKey(), seed)
	b := prfR(pk, kgen.GenSecretKey(), seed)
	require.False(t, a.Eq(b))
}

func TestSigmaFromHDeterministic(t *testing.T) {
	pk := testPublicKey(t, Standard)
	nonce := Nonce128{Lo: 4, Hi: 5}

	a := sigmaFromH(pk, 7, nonce, 3, SignPlus, 99)
	b := sigmaFromH(pk, 7, nonce, 3, SignPlus, 99)
	require.Equal(t, a.PopCount(), b.PopCount())

	c := sigmaFromH(pk, 7, nonce, 3, SignMinus, 99)
	require.NotEqual(t, a.words, c.words)
}

func TestPrgLayerZTagDeterministic(t *testing.T) {
	nonce := Nonce128{Lo: 11, Hi: 22}
	require.Equal(t, prgLayerZTag("tag", nonce), prgLayerZTag("tag", nonce))
	require.NotEqual(t, prgLayerZTag("tag-a", nonce), prgLayerZTag("tag-b", nonce))
}

func TestPrfNoiseDeltaVariesByGroupAndKind(t *testing.T) {
	pk := testPublicKey(t, Standard)
	sk := NewKeyGenerator(pk.Prm).GenSecretKey()
	base := RSeed{Nonce: Nonce128{Lo: 1, Hi: 1}, ZTag: 1}

	d0 := prfNoiseDelta(pk, sk, base, 0, 0)
	d1 := prfNoiseDelta(pk, sk, base, 1, 0)
	d2 := prfNoiseDelta(pk, sk, base, 0, 1)
	require.False(t, d0.Eq(d1))
	require.False(t, d0.Eq(d2))
}
