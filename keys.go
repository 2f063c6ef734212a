// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"crypto/rand"

	"golang.org/x/crypto/blake2b"
)

// SecretKey holds the PRF key used to derive per-layer masking scalars.
// The core's only use of key material is prf_R(pk, sk, seed); there is no
// bootstrap key, since the core never bootstraps.
type SecretKey struct {
	PRFKey [32]byte
}

// PublicKey exposes the public parameters the core needs: the column
// count, generator table, and bit-vector width.
type PublicKey struct {
	Prm *Prm
}

// sigmaKey derives a fixed public key for sigma_from_H's keyed hash. It is
// a function of Prm only (never of the secret key), since sigmaFromH's own
// signature takes pk but not sk.
func (pk *PublicKey) sigmaKey() []byte {
	sum := blake2b.Sum256([]byte("edgefhe/sigma|" + pk.Prm.CanonTag))
	return sum[:]
}

// KeyGenerator generates key material for a fixed Prm, mirroring the
// named-method KeyGenerator shape (GenSecretKey/GenPublicKey/GenKeyPair).
type KeyGenerator struct {
	prm *Prm
}

// NewKeyGenerator creates a key generator for the given parameters.
func NewKeyGenerator(prm *Prm) *KeyGenerator {
	return &KeyGenerator{prm: prm}
}

// GenSecretKey draws a fresh PRF key.
func (kg *KeyGenerator) GenSecretKey() *SecretKey {
	var sk SecretKey
	if _, err := rand.Read(sk.PRFKey[:]); err != nil {
		panic("fhe: CSPRNG starvation generating secret key: " + err.Error())
	}
	return &sk
}

// GenPublicKey returns the public key view for this generator's Prm. The
// secret key argument is accepted for symmetry with GenKeyPair's call
// shape but unused: this scheme's public key carries no secret-derived
// material, only Prm.
func (kg *KeyGenerator) GenPublicKey(_ *SecretKey) *PublicKey {
	return &PublicKey{Prm: kg.prm}
}

// GenKeyPair generates both a secret key and its corresponding public key.
func (kg *KeyGenerator) GenKeyPair() (*SecretKey, *PublicKey) {
	sk := kg.GenSecretKey()
	pk := kg.GenPublicKey(sk)
	return sk, pk
}

// GenSecretKeyFromSeed derives a reproducible PRF key from an arbitrary
// seed via DeterministicRNG, for callers that need repeatable runs (e.g.
// benchmark comparisons) rather than a fresh CSPRNG key each time.
func (kg *KeyGenerator) GenSecretKeyFromSeed(seed []byte) *SecretKey {
	rng := NewDeterministicRNG(seed)
	var sk SecretKey
	for i := 0; i < 4; i++ {
		v := rng.Uint64()
		for b := 0; b < 8; b++ {
			sk.PRFKey[i*8+b] = byte(v >> (8 * b))
		}
	}
	return &sk
}
