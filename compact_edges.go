// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

// subBucket accumulates the weight and bit-vector share for one
// (layer_id, idx, sign) bucket while folding edges.
type subBucket struct {
	present bool
	weight  Fp
	share   BitVec
}

// compactEdges coalesces all edges sharing a (layer_id, idx, sign) bucket
// by field-adding weights and XOR-ing bit-vector shares, dropping buckets
// that end up all-zero. Emission order is canonical:
// layer_id ascending, then idx ascending, P before M.
func compactEdges(pk *PublicKey, c *Cipher) {
	prm := pk.Prm
	nLayers := len(c.L)
	if nLayers == 0 {
		c.E = nil
		return
	}

	// buckets[layerID][idx][sign]
	buckets := make([][][2]subBucket, nLayers)
	for l := range buckets {
		buckets[l] = make([][2]subBucket, prm.B)
	}

	for _, e := range c.E {
		sb := &buckets[e.LayerID][e.Idx][e.Sign]
		if !sb.present {
			sb.present = true
			sb.weight = FpZero()
			sb.share = NewBitVec(prm.MBits)
		}
		sb.weight = sb.weight.Add(e.W)
		sb.share.XorWith(e.S)
	}

	out := make([]Edge, 0, len(c.E))
	for layerID := 0; layerID < nLayers; layerID++ {
		for idx := 0; idx < prm.B; idx++ {
			for _, sign := range [2]Sign{SignPlus, SignMinus} {
				sb := buckets[layerID][idx][sign]
				if !sb.present {
					continue
				}
				// The is-nonzero test must be constant-time to avoid
				// leaking which buckets carry real contributions:
				// evaluate both predicates unconditionally and OR
				// them before branching on the combined result.
				weightNonzero := sb.weight.CtIsNonzero()
				shareNonzero := sb.share.PopCount() != 0
				if !(weightNonzero || shareNonzero) {
					continue
				}
				out = append(out, Edge{
					LayerID: LayerId(layerID),
					Idx:     uint16(idx),
					Sign:    sign,
					W:       sb.weight,
					S:       sb.share,
				})
			}
		}
	}
	c.E = out
}
