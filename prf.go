// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// prf_R, prg_layer_ztag, sigma_from_H and prf_noise_delta are all
// instantiated here on top of blake2b's native keyed-hash mode: blake2b.New
// produces a MAC, and repeated calls with distinct domain-separated inputs
// give independent-looking outputs.

func keyedHash(key, msg []byte, outLen int) []byte {
	h, err := blake2b.New(outLen, key)
	if err != nil {
		// Only occurs for out-of-range key/output sizes, which are fixed
		// constants below; a failure here is a programming error.
		panic("fhe: blake2b keyed hash: " + err.Error())
	}
	h.Write(msg)
	return h.Sum(nil)
}

// prgLayerZTag derives a layer's z-tag from the public canonical domain tag
// and the layer's fresh nonce.
func prgLayerZTag(canonTag string, nonce Nonce128) uint64 {
	var msg [16]byte
	binary.LittleEndian.PutUint64(msg[0:8], nonce.Lo)
	binary.LittleEndian.PutUint64(msg[8:16], nonce.Hi)
	out := keyedHash([]byte(canonTag), msg[:], 8)
	return binary.LittleEndian.Uint64(out)
}

// prfR derives the per-layer masking scalar R from the key material and a
// seed (nonce, z-tag).
func prfR(pk *PublicKey, sk *SecretKey, seed RSeed) Fp {
	var msg [24]byte
	binary.LittleEndian.PutUint64(msg[0:8], seed.Nonce.Lo)
	binary.LittleEndian.PutUint64(msg[8:16], seed.Nonce.Hi)
	binary.LittleEndian.PutUint64(msg[16:24], seed.ZTag)
	out := keyedHash(sk.PRFKey[:], append([]byte("prf_R|"+pk.Prm.CanonTag), msg[:]...), 16)
	var raw [16]byte
	copy(raw[:], out)
	return FpFromBytes(raw)
}

// sigmaFromH derives a fresh BitVec share for one edge.
func sigmaFromH(pk *PublicKey, ztag uint64, nonce Nonce128, idx uint16, sign Sign, salt uint64) BitVec {
	var msg [8 + 16 + 2 + 1 + 8]byte
	binary.LittleEndian.PutUint64(msg[0:8], ztag)
	binary.LittleEndian.PutUint64(msg[8:16], nonce.Lo)
	binary.LittleEndian.PutUint64(msg[16:24], nonce.Hi)
	binary.LittleEndian.PutUint16(msg[24:26], idx)
	msg[26] = byte(sign)
	binary.LittleEndian.PutUint64(msg[27:35], salt)

	v := NewBitVec(pk.Prm.MBits)
	nbytes := (pk.Prm.MBits + 7) / 8
	// blake2b's keyed output length must be in [1, 64]; for wider bit
	// vectors we stretch by hashing successive counters, domain-separated
	// by appending a 4-byte block index.
	out := make([]byte, 0, nbytes)
	for block := uint32(0); len(out) < nbytes; block++ {
		var blockMsg [4]byte
		binary.LittleEndian.PutUint32(blockMsg[:], block)
		size := 64
		if remaining := nbytes - len(out); remaining < 64 {
			size = remaining
		}
		out = append(out, keyedHash(pk.sigmaKey(), append(append([]byte{}, msg[:]...), blockMsg[:]...), size)...)
	}
	v.setFromBytes(out)
	return v
}

// These are fixed odd Weyl-style mixing constants; any implementation must
// use the same bit pattern, since it participates in the PRF input.
const (
	weylLo   = 0x9e3779b97f4a7c15
	weylHi   = 0x94d049bb133111eb
	weylZTag = 0x517cc1b727220a95
)

// prfNoiseDelta derives the PRF-based Delta for a non-final noise group.
func prfNoiseDelta(pk *PublicKey, sk *SecretKey, base RSeed, groupID uint32, kind uint8) Fp {
	gid := uint64(groupID)
	perturbed := RSeed{
		Nonce: Nonce128{
			Lo: base.Nonce.Lo ^ (weylLo * gid) ^ uint64(kind),
			Hi: base.Nonce.Hi ^ (weylHi * gid) ^ (uint64(kind) << 32),
		},
		ZTag: base.ZTag ^ (weylZTag * gid) ^ (uint64(kind) << 48),
	}
	return prfR(pk, sk, perturbed)
}
