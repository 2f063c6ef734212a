// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

// guardBudget runs compactEdges if |C.E| exceeds the parameter edge
// budget, otherwise it is a no-op. siteTag is an ASCII
// debug-trace label only; it has no effect on behavior.
func guardBudget(pk *PublicKey, c *Cipher, siteTag string) {
	if len(c.E) > pk.Prm.EdgeBudget {
		compactEdges(pk, c)
	}
}

// combineCiphers returns the disjoint union of a and b's layer graphs,
// relocating b's layer references by a's layer count, then compacts the
// result. a and b are consumed: callers must not reuse them.
func combineCiphers(pk *PublicKey, a, b *Cipher) *Cipher {
	offset := LayerId(len(a.L))

	out := &Cipher{
		L: make([]Layer, 0, len(a.L)+len(b.L)),
		E: make([]Edge, 0, len(a.E)+len(b.E)),
	}
	out.L = append(out.L, a.L...)
	for _, l := range b.L {
		if l.Kind == LayerProd {
			l.Pa += offset
			l.Pb += offset
		}
		out.L = append(out.L, l)
	}

	out.E = append(out.E, a.E...)
	for _, e := range b.E {
		e.LayerID += offset
		out.E = append(out.E, e)
	}

	guardBudget(pk, out, "combine_ciphers")
	compactLayers(out)
	return out
}
