// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

// LayerKind tags a Layer's variant. A plain enum-plus-struct sum type is
// used rather than an interface hierarchy.
type LayerKind uint8

const (
	// LayerBase is a leaf layer created directly by the core.
	LayerBase LayerKind = iota
	// LayerProd is a multiplicative layer created by homomorphic
	// multiplication outside the core; the core only ever preserves these
	// when combining ciphertexts, never creates them.
	LayerProd
)

// LayerId indexes into a Cipher's layer list.
type LayerId = uint32

// Layer is one node of a ciphertext's layer DAG.
type Layer struct {
	Kind LayerKind
	Seed RSeed

	// Pa, Pb are valid only when Kind == LayerProd: the two parent layers
	// this product layer was formed from. Both must reference layers at an
	// index <= this layer's own index once compaction has run.
	Pa, Pb LayerId
}

// NewBaseLayer returns a fresh BASE layer with the given seed.
func NewBaseLayer(seed RSeed) Layer {
	return Layer{Kind: LayerBase, Seed: seed}
}
