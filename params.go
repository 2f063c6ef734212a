// Package fhe implements the encryption core of a homomorphic scheme over a
// prime field: turning a plaintext field element into a ciphertext carrying
// both an arithmetic payload and a balanced noise envelope, ready for later
// homomorphic evaluation.
//
// The root package holds the cryptographic core; internal/ holds job-queue
// and storage plumbing; cmd/ holds the worker/gateway/server binaries built
// on top of it.
//
// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause
package fhe

import "fmt"

// Prm holds the public knobs the core consumes. It is never mutated once
// built.
type Prm struct {
	// B is the number of columns (indices) available to edges.
	B int
	// MBits is the bit-vector width.
	MBits int
	// EdgeBudget is the cap on |E| enforced by guard_budget.
	EdgeBudget int
	// NoiseEntropyBits is the base noise budget fed to plan_noise.
	NoiseEntropyBits float64
	// DepthSlopeBits scales the noise budget per unit of depth_hint.
	DepthSlopeBits float64
	// Tuple2Fraction splits the noise budget between 2- and 3-edge groups.
	Tuple2Fraction float64
	// PowG is the public generator table, PowG[i] = g^i in Fp.
	PowG []Fp
	// CanonTag is a fixed public domain-separation tag used when deriving
	// per-layer z-tags.
	CanonTag string
}

// ParamsLiteral is a user-friendly parameter specification, following the
// literal-to-concrete-params pattern used across the package.
type ParamsLiteral struct {
	B                int
	MBits            int
	EdgeBudget       int
	NoiseEntropyBits float64
	DepthSlopeBits   float64
	Tuple2Fraction   float64
	CanonTag         string
}

// Named presets, each documenting its own tradeoff.
var (
	// Compact is tuned for tests and fast iteration: a small column count,
	// no noise budget, and a tight edge budget.
	Compact = ParamsLiteral{
		B:                64,
		MBits:            128,
		EdgeBudget:       64,
		NoiseEntropyBits: 0,
		DepthSlopeBits:   0,
		Tuple2Fraction:   0.5,
		CanonTag:         "edgefhe/v1/compact",
	}

	// Standard is the general-purpose default: enough noise entropy to
	// absorb a handful of multiplicative levels without decryption
	// failure, balanced between 2- and 3-edge noise groups.
	Standard = ParamsLiteral{
		B:                256,
		MBits:            256,
		EdgeBudget:       4096,
		NoiseEntropyBits: 64,
		DepthSlopeBits:   8,
		Tuple2Fraction:   0.5,
		CanonTag:         "edgefhe/v1/standard",
	}

	// Deep widens the noise budget for callers planning many homomorphic
	// multiplications before decryption, at the cost of a larger edge
	// budget and therefore more expensive compaction passes.
	Deep = ParamsLiteral{
		B:                1024,
		MBits:            512,
		EdgeBudget:       65536,
		NoiseEntropyBits: 128,
		DepthSlopeBits:   16,
		Tuple2Fraction:   0.6,
		CanonTag:         "edgefhe/v1/deep",
	}
)

// NewParams builds a Prm from a literal, deriving the public generator
// table from a fixed generator g = 5 (g is public and need not be secret;
// any element whose powers stay distinct on [0,B) works, and 5 is not a
// root of unity of small order in this field so distinctness holds for the
// column counts used here).
func NewParams(lit ParamsLiteral) (*Prm, error) {
	if lit.B < 8 {
		return nil, fmt.Errorf("fhe: B must be >= 8, got %d", lit.B)
	}
	if lit.MBits <= 0 {
		return nil, fmt.Errorf("fhe: MBits must be > 0, got %d", lit.MBits)
	}

	g := FpFromU64(5)
	powg := make([]Fp, lit.B)
	powg[0] = FpOne()
	for i := 1; i < lit.B; i++ {
		powg[i] = powg[i-1].Mul(g)
	}

	return &Prm{
		B:                lit.B,
		MBits:            lit.MBits,
		EdgeBudget:       lit.EdgeBudget,
		NoiseEntropyBits: lit.NoiseEntropyBits,
		DepthSlopeBits:   lit.DepthSlopeBits,
		Tuple2Fraction:   lit.Tuple2Fraction,
		PowG:             powg,
		CanonTag:         lit.CanonTag,
	}, nil
}
