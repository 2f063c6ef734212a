// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitVecXorSelfIsZero(t *testing.T) {
	v := NewBitVec(128)
	v.setFromBytes([]byte{0xff, 0x00, 0xaa, 0x55})
	clone := v.Clone()

	v.XorWith(clone)
	require.Equal(t, 0, v.PopCount())
}

func TestBitVecXorCancelsEqualShares(t *testing.T) {
	a := NewBitVec(64)
	a.setFromBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	b := a.Clone()

	a.XorWith(b)
	require.Equal(t, 0, a.PopCount())
}

func TestBitVecXorWithLengthMismatchPanics(t *testing.T) {
	a := NewBitVec(64)
	b := NewBitVec(128)
	require.Panics(t, func() { a.XorWith(b) })
}

func TestBitVecSetFromBytesMasksTrailingBits(t *testing.T) {
	v := NewBitVec(4)
	v.setFromBytes([]byte{0xff})
	require.Equal(t, 4, v.PopCount())
}
