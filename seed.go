// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

// Nonce128 is a fresh 128-bit nonce sampled per base layer.
type Nonce128 struct {
	Lo, Hi uint64
}

// RSeed keys the per-layer PRFs: a nonce plus the z-tag derived from it.
type RSeed struct {
	Nonce Nonce128
	ZTag  uint64
}
