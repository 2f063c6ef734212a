// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import "math"

// epsDiv guards the per-tuple-bits division in planNoise against zero.
const epsDiv = 1e-6

// planNoise chooses how many 2-edge and 3-edge noise groups to emit, given
// the noise budget and depth hint. Pure function, no
// failure modes.
func planNoise(prm *Prm, depthHint int32) (z2, z3 int) {
	budget := prm.NoiseEntropyBits + prm.DepthSlopeBits*math.Max(0, float64(depthHint))

	logB := math.Log2(float64(prm.B))
	per2 := 2 * logB
	per3 := 3 * logB

	z2 = int(math.Floor(budget * prm.Tuple2Fraction / math.Max(epsDiv, per2)))
	z3 = int(math.Floor(budget * (1 - prm.Tuple2Fraction) / math.Max(epsDiv, per3)))

	// Parity rule: a single noise group has no "last group to close the
	// delta sum", so a total of exactly 1 is forbidden. This only fires
	// when the total is 1; a total of 0 is a legitimate, unmodified
	// result.
	if z2+z3 == 1 {
		if z2 != 0 {
			z2++
		} else {
			z3++
		}
	}

	return z2, z3
}
