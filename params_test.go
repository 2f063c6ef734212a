// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewParamsRejectsSmallB(t *testing.T) {
	_, err := NewParams(ParamsLiteral{B: 4, MBits: 64})
	require.Error(t, err)
}

func TestNewParamsRejectsZeroMBits(t *testing.T) {
	_, err := NewParams(ParamsLiteral{B: 64, MBits: 0})
	require.Error(t, err)
}

func TestNewParamsGeneratorTableDistinct(t *testing.T) {
	prm, err := NewParams(Standard)
	require.NoError(t, err)
	require.Len(t, prm.PowG, prm.B)

	seen := make(map[Fp]bool, prm.B)
	for _, g := range prm.PowG {
		key := g
		require.False(t, seen[key], "generator powers collided within B=%d", prm.B)
		seen[key] = true
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, lit := range []ParamsLiteral{Compact, Standard, Deep} {
		_, err := NewParams(lit)
		require.NoError(t, err)
	}
}
