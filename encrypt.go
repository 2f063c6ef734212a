// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

// EncFpDepth samples a fresh BASE layer, derives its masking scalar R, and
// emits the payload edges for plaintext v plus the planned noise edges for
// the given depth hint.
func EncFpDepth(pk *PublicKey, sk *SecretKey, v Fp, depthHint int32) *Cipher {
	nonce := makeNonce128()
	ztag := prgLayerZTag(pk.Prm.CanonTag, nonce)
	seed := RSeed{Nonce: nonce, ZTag: ztag}
	r := prfR(pk, sk, seed)

	c := NewCipher()
	c.addLayer(NewBaseLayer(seed))

	c.E = append(c.E, genPayloadEdges(pk, ztag, nonce, r, v)...)

	z2, z3 := planNoise(pk.Prm, depthHint)
	c.E = append(c.E, genNoiseEdges(pk, sk, seed, ztag, r, z2, z3)...)

	guardBudget(pk, c, "enc")
	return c
}

// EncFp is EncFpDepth with depth_hint=0.
func EncFp(pk *PublicKey, sk *SecretKey, v Fp) *Cipher {
	return EncFpDepth(pk, sk, v, 0)
}

// EncValueDepth encrypts a u64 value by converting it to Fp, drawing a
// uniform nonzero mask, and combining independent encryptions of v+mask
// and -mask. Even if the payload solver leaves any
// structural signal in a single ciphertext, pairing with an independent
// mask ciphertext blinds the plaintext at layer granularity.
func EncValueDepth(pk *PublicKey, sk *SecretKey, v uint64, depthHint int32) *Cipher {
	mask := fpRandNonzero()
	vFp := FpFromU64(v)

	a := EncFpDepth(pk, sk, vFp.Add(mask), depthHint)
	b := EncFpDepth(pk, sk, mask.Neg(), depthHint)
	return combineCiphers(pk, a, b)
}

// EncValue is EncValueDepth with depth_hint=0.
func EncValue(pk *PublicKey, sk *SecretKey, v uint64) *Cipher {
	return EncValueDepth(pk, sk, v, 0)
}

// EncZeroDepth is EncValueDepth specialized to v=0: it encrypts an
// independent mask and its negation.
func EncZeroDepth(pk *PublicKey, sk *SecretKey, depthHint int32) *Cipher {
	return EncValueDepth(pk, sk, 0, depthHint)
}

// CombineCiphers returns the disjoint union of a and b's layer graphs,
// compacted. Exported wrapper over combineCiphers.
func CombineCiphers(pk *PublicKey, a, b *Cipher) *Cipher {
	return combineCiphers(pk, a, b)
}

// CompactEdges coalesces edges sharing a (layer_id, idx, sign) bucket,
// dropping all-zero results. Exported wrapper.
func CompactEdges(pk *PublicKey, c *Cipher) {
	compactEdges(pk, c)
}

// CompactLayers drops layers unreachable from any edge and renumbers the
// survivors. Exported wrapper.
func CompactLayers(c *Cipher) {
	compactLayers(c)
}

// GuardBudget runs CompactEdges if |C.E| exceeds the parameter edge
// budget. Exported wrapper.
func GuardBudget(pk *PublicKey, c *Cipher, siteTag string) {
	guardBudget(pk, c, siteTag)
}

// PlanNoise returns the (Z2, Z3) noise group counts for a given depth hint.
// Exported wrapper.
func PlanNoise(prm *Prm, depthHint int32) (z2, z3 int) {
	return planNoise(prm, depthHint)
}

// SigmaDensity reports the mean ones-ratio of edge bit-vectors across the
// ciphertext, 0 if E is empty. Used by callers for health
// monitoring.
func SigmaDensity(pk *PublicKey, c *Cipher) float64 {
	if len(c.E) == 0 {
		return 0
	}
	total := 0
	for _, e := range c.E {
		total += e.S.PopCount()
	}
	return float64(total) / (float64(len(c.E)) * float64(pk.Prm.MBits))
}
