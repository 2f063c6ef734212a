// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

// payloadSize is the fixed number of payload edges emitted per base layer.
const payloadSize = 8

// genPayloadEdges emits the S=8 payload edges on layer 0 for plaintext v,
// using the per-layer masking scalar R.
//
// Over the fresh randomness: sum(sign(ch[j])*r[j]) == 0 and
// sum(sign(ch[j])*r[j]*powg[idx[j]]) == v. Each emitted edge's weight is
// r[j]*R, so the reconstructed value before dividing by R is v*R.
func genPayloadEdges(pk *PublicKey, ztag uint64, nonce Nonce128, r Fp, v Fp) []Edge {
	prm := pk.Prm
	powg := prm.PowG

	idx := sampleDistinctIndices(prm.B, payloadSize)
	ch := make([]Sign, payloadSize)
	for j := range ch {
		if csprngU64()&1 == 0 {
			ch[j] = SignPlus
		} else {
			ch[j] = SignMinus
		}
	}

	rWeights := make([]Fp, payloadSize)
	var sum1, sumg Fp
	for j := 0; j < payloadSize-2; j++ {
		rj := fpRandNonzero()
		rWeights[j] = rj
		sj := ch[j].Scalar()
		term := sj.Mul(rj)
		sum1 = sum1.Add(term)
		sumg = sumg.Add(term.Mul(powg[idx[j]]))
	}

	// Solve for the last two weights so the weight and value constraints
	// both hold exactly.
	ga := powg[idx[payloadSize-2]]
	gb := powg[idx[payloadSize-1]]
	sa := ch[payloadSize-2]
	sb := ch[payloadSize-1]

	value := v.Sub(sumg)
	rhs := sum1.Neg().Mul(ga).Sub(value)
	rbRaw := rhs.Mul(ga.Sub(gb).Inv())

	var rb, tmp, ra Fp
	if sb == SignPlus {
		rb = rbRaw
		tmp = sum1.Neg().Sub(rb)
	} else {
		rb = rbRaw.Neg()
		tmp = sum1.Neg().Add(rb)
	}
	if sa == SignPlus {
		ra = tmp
	} else {
		ra = tmp.Neg()
	}

	rWeights[payloadSize-2] = ra
	rWeights[payloadSize-1] = rb

	edges := make([]Edge, payloadSize)
	for j := 0; j < payloadSize; j++ {
		sigma := sigmaFromH(pk, ztag, nonce, idx[j], ch[j], csprngU64())
		edges[j] = Edge{
			LayerID: 0,
			Idx:     idx[j],
			Sign:    ch[j],
			W:       rWeights[j].Mul(r),
			S:       sigma,
		}
	}
	return edges
}

// sampleDistinctIndices draws n distinct values uniformly from [0,b)
// without replacement via rejection sampling.
func sampleDistinctIndices(b, n int) []uint16 {
	seen := make(map[uint16]bool, n)
	out := make([]uint16, 0, n)
	for len(out) < n {
		idx := uint16(csprngU64() % uint64(b))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out
}

// fpRandNonzero rejection-samples a uniform nonzero field element.
func fpRandNonzero() Fp {
	for {
		var raw [16]byte
		hi := csprngU64()
		lo := csprngU64()
		// Clear the top bit so the candidate stays below 2^127 and a
		// rejection against p is simple and rare.
		hi &= 1<<63 - 1
		var b [16]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(lo >> (8 * i))
			b[8+i] = byte(hi >> (8 * i))
		}
		raw = b
		candidate := FpFromBytes(raw)
		if candidate.CtIsNonzero() {
			return candidate
		}
	}
}
