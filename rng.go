// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
)

// csprng_u64 draws a fresh 64-bit value from the process CSPRNG. The core
// assumes this call is thread-safe; crypto/rand.Read is.
func csprngU64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("fhe: CSPRNG starvation: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// make_nonce128 draws a fresh 128-bit nonce for a new base layer.
func makeNonce128() Nonce128 {
	return Nonce128{Lo: csprngU64(), Hi: csprngU64()}
}

// DeterministicRNG is a chained-SHA256 pseudorandom stream, kept for callers
// that need reproducible test vectors (it is not used by the core's own
// random draws, which always go through csprngU64/makeNonce128).
type DeterministicRNG struct {
	state   [32]byte
	counter uint64
}

// NewDeterministicRNG seeds a reproducible stream from an arbitrary seed.
func NewDeterministicRNG(seed []byte) *DeterministicRNG {
	return &DeterministicRNG{state: sha256.Sum256(seed)}
}

// advance mixes the counter into the state and returns the next 32 bytes.
func (r *DeterministicRNG) advance() [32]byte {
	var data [40]byte
	copy(data[:32], r.state[:])
	binary.LittleEndian.PutUint64(data[32:], r.counter)
	r.counter++
	r.state = sha256.Sum256(data[:])
	return r.state
}

// Uint64 returns the next pseudorandom uint64.
func (r *DeterministicRNG) Uint64() uint64 {
	b := r.advance()
	return binary.LittleEndian.Uint64(b[:8])
}
