// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

// genNoiseEdges emits the planned Z2 two-edge groups followed by the Z3
// three-edge groups. All groups run against the same base
// seed and layer 0; group_id increases monotonically across the whole
// sequence, Z2 groups using kind=0 and Z3 groups using kind=1.
//
// After all groups emit, the unsigned sum of (signed weight)*generator over
// the noise edges is zero: each non-final group's Delta is a PRF draw that
// accumulates into deltaAcc, and the final group's Delta is -deltaAcc,
// closing the running sum back to zero.
func genNoiseEdges(pk *PublicKey, sk *SecretKey, base RSeed, ztag uint64, r Fp, z2, z3 int) []Edge {
	total := z2 + z3
	var deltaAcc Fp
	var groupID uint32
	var edges []Edge

	nextDelta := func(kind uint8) Fp {
		isFinal := total-int(groupID) <= 1
		var delta Fp
		if isFinal {
			delta = deltaAcc.Neg()
		} else {
			delta = prfNoiseDelta(pk, sk, base, groupID, kind)
			deltaAcc = deltaAcc.Add(delta)
		}
		groupID++
		return delta
	}

	for i := 0; i < z2; i++ {
		delta := nextDelta(0)
		edges = append(edges, genZ2Group(pk, ztag, base.Nonce, r, delta)...)
	}
	for i := 0; i < z3; i++ {
		delta := nextDelta(1)
		edges = append(edges, genZ3Group(pk, ztag, base.Nonce, r, delta)...)
	}
	return edges
}

// genZ2Group emits one 2-edge noise group whose signed, generator-weighted
// sum equals delta.
func genZ2Group(pk *PublicKey, ztag uint64, nonce Nonce128, r, delta Fp) []Edge {
	powg := pk.Prm.PowG
	b := pk.Prm.B

	i := uint16(csprngU64() % uint64(b))
	var j uint16
	for {
		j = uint16(csprngU64() % uint64(b))
		if j != i {
			break
		}
	}

	var s1 Sign
	if csprngU64()&1 == 0 {
		s1 = SignPlus
	} else {
		s1 = SignMinus
	}
	s2 := s1.Opposite()

	deltaPrime := delta
	if s1 == SignMinus {
		deltaPrime = delta.Neg()
	}

	ri := fpRandNonzero()
	// r_j = (r_i * powg[i] - Delta') * powg[j]^-1
	rj := ri.Mul(powg[i]).Sub(deltaPrime).Mul(powg[j].Inv())

	return []Edge{
		{LayerID: 0, Idx: i, Sign: s1, W: ri.Mul(r), S: sigmaFromH(pk, ztag, nonce, i, s1, csprngU64())},
		{LayerID: 0, Idx: j, Sign: s2, W: rj.Mul(r), S: sigmaFromH(pk, ztag, nonce, j, s2, csprngU64())},
	}
}

// genZ3Group emits one 3-edge noise group whose signed, generator-weighted
// sum equals delta.
func genZ3Group(pk *PublicKey, ztag uint64, nonce Nonce128, r, delta Fp) []Edge {
	powg := pk.Prm.PowG
	b := pk.Prm.B

	idx := sampleDistinctIndices(b, 3)
	i, j, k := idx[0], idx[1], idx[2]

	signs := make([]Sign, 3)
	for n := range signs {
		if csprngU64()&1 == 0 {
			signs[n] = SignPlus
		} else {
			signs[n] = SignMinus
		}
	}

	a := fpRandNonzero()
	bw := fpRandNonzero()

	term1 := signs[0].Scalar().Mul(a).Mul(powg[i])
	term2 := signs[1].Scalar().Mul(bw).Mul(powg[j])
	gkSigned := signs[2].Scalar().Mul(powg[k])

	c := delta.Sub(term1).Sub(term2).Mul(gkSigned.Inv())

	return []Edge{
		{LayerID: 0, Idx: i, Sign: signs[0], W: a.Mul(r), S: sigmaFromH(pk, ztag, nonce, i, signs[0], csprngU64())},
		{LayerID: 0, Idx: j, Sign: signs[1], W: bw.Mul(r), S: sigmaFromH(pk, ztag, nonce, j, signs[1], csprngU64())},
		{LayerID: 0, Idx: k, Sign: signs[2], W: c.Mul(r), S: sigmaFromH(pk, ztag, nonce, k, signs[2], csprngU64())},
	}
}
