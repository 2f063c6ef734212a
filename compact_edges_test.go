// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sortedByBucket(t *testing.T, edges []Edge) bool {
	t.Helper()
	for i := 1; i < len(edges); i++ {
		a, b := edges[i-1], edges[i]
		if a.LayerID != b.LayerID {
			require.Less(t, a.LayerID, b.LayerID)
			continue
		}
		if a.Idx != b.Idx {
			require.Less(t, a.Idx, b.Idx)
			continue
		}
		require.Less(t, a.Sign, b.Sign)
	}
	return true
}

// TestCompactEdgesIdempotent is property 3.
func TestCompactEdgesIdempotent(t *testing.T) {
	pk := testPublicKey(t, Standard)
	sk := NewKeyGenerator(pk.Prm).GenSecretKey()

	ct := EncFp(pk, sk, FpFromU64(99))
	CompactEdges(pk, ct)
	first := append([]Edge(nil), ct.E...)

	CompactEdges(pk, ct)
	require.Equal(t, len(first), len(ct.E))
	for i := range first {
		require.Equal(t, first[i].LayerID, ct.E[i].LayerID)
		require.Equal(t, first[i].Idx, ct.E[i].Idx)
		require.Equal(t, first[i].Sign, ct.E[i].Sign)
		require.True(t, first[i].W.Eq(ct.E[i].W))
	}
	sortedByBucket(t, ct.E)
}

// TestCompactEdgesDropsCancellingBucket checks that two edges sharing a
// bucket with cancelling weights and equal bit-vector shares vanish after
// compaction.
func TestCompactEdgesDropsCancellingBucket(t *testing.T) {
	pk := testPublicKey(t, Compact)
	ct := NewCipher()
	ct.addLayer(NewBaseLayer(RSeed{}))

	w := FpFromU64(777)
	share := NewBitVec(pk.Prm.MBits)
	share.setFromBytes([]byte{0xAB, 0xCD})

	ct.E = []Edge{
		{LayerID: 0, Idx: 5, Sign: SignPlus, W: w, S: share.Clone()},
		{LayerID: 0, Idx: 5, Sign: SignPlus, W: w.Neg(), S: share.Clone()},
	}

	CompactEdges(pk, ct)
	require.Empty(t, ct.E)
}

func TestCompactEdgesKeepsSurvivingBuckets(t *testing.T) {
	pk := testPublicKey(t, Compact)
	ct := NewCipher()
	ct.addLayer(NewBaseLayer(RSeed{}))

	share := NewBitVec(pk.Prm.MBits)
	ct.E = []Edge{
		{LayerID: 0, Idx: 5, Sign: SignPlus, W: FpFromU64(1), S: share.Clone()},
		{LayerID: 0, Idx: 5, Sign: SignPlus, W: FpFromU64(2), S: share.Clone()},
	}

	CompactEdges(pk, ct)
	require.Len(t, ct.E, 1)
	require.True(t, ct.E[0].W.Eq(FpFromU64(3)))
}
