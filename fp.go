// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package fhe

import "math/bits"

// Fp is an element of the prime field Z_p with p = 2^127 - 1, a Mersenne
// prime. Elements are kept in reduced form: hi holds the top 63 bits, lo the
// bottom 64, so 0 <= hi*2^64+lo < p.
type Fp struct {
	hi, lo uint64
}

// pHi/pLo are the limbs of p = 2^127 - 1.
const (
	pHi = uint64(1<<63 - 1)
	pLo = uint64(1<<64 - 1)
)

// FpFromU64 lifts a uint64 into Fp.
func FpFromU64(v uint64) Fp {
	return Fp{hi: 0, lo: v}
}

// FpZero is the additive identity.
func FpZero() Fp { return Fp{} }

// FpOne is the multiplicative identity.
func FpOne() Fp { return Fp{hi: 0, lo: 1} }

// fold reduces a value below 2^128 modulo p by folding the overflow bit
// back in, Mersenne-style: x mod p = (x & p) + (x >> 127), repeated while
// bit 127 is set. A result equal to p itself maps to zero.
func fold(hi, lo uint64) Fp {
	for hi > pHi {
		over := hi >> 63
		hi &= pHi
		hi, lo = addLimbs(hi, lo, 0, over)
	}
	if hi == pHi && lo == pLo {
		return Fp{}
	}
	return Fp{hi: hi, lo: lo}
}

func addLimbs(ahi, alo, bhi, blo uint64) (hi, lo uint64) {
	var carry uint64
	lo, carry = bits.Add64(alo, blo, 0)
	hi, _ = bits.Add64(ahi, bhi, carry)
	return hi, lo
}

// Add returns a+b mod p.
func (a Fp) Add(b Fp) Fp {
	hi, lo := addLimbs(a.hi, a.lo, b.hi, b.lo)
	return fold(hi, lo)
}

// Sub returns a-b mod p.
func (a Fp) Sub(b Fp) Fp {
	return a.Add(b.Neg())
}

// Neg returns -a mod p.
func (a Fp) Neg() Fp {
	if a.hi == 0 && a.lo == 0 {
		return a
	}
	lo, borrow := bits.Sub64(pLo, a.lo, 0)
	hi, _ := bits.Sub64(pHi, a.hi, borrow)
	return fold(hi, lo)
}

// Mul returns a*b mod p using a 256-bit intermediate product and Mersenne
// folding.
func (a Fp) Mul(b Fp) Fp {
	// (ahi*2^64+alo) * (bhi*2^64+blo), accumulated as four 128-bit partials.
	loLoHi, loLoLo := bits.Mul64(a.lo, b.lo)
	hiLoHi, hiLoLo := bits.Mul64(a.hi, b.lo)
	loHiHi, loHiLo := bits.Mul64(a.lo, b.hi)
	hiHiHi, hiHiLo := bits.Mul64(a.hi, b.hi)

	// r0..r3 are the 64-bit words of the 256-bit product, r0 least significant.
	r0 := loLoLo
	mid1hi, mid1lo := hiLoHi, hiLoLo
	mid2hi, mid2lo := loHiHi, loHiLo

	r1, c1 := bits.Add64(loLoHi, mid1lo, 0)
	r1, c1b := bits.Add64(r1, mid2lo, 0)
	carryInto2 := c1 + c1b

	// carryInto2 can be 2, and bits.Add64 only accepts a carry of 0 or 1,
	// so it is added as a separate operand.
	r2, c2 := bits.Add64(mid1hi, mid2hi, 0)
	r2, c2b := bits.Add64(r2, hiHiLo, 0)
	r2, c2c := bits.Add64(r2, carryInto2, 0)
	carryInto3 := c2 + c2b + c2c

	r3 := hiHiHi + carryInto3

	// p = 2^127-1 so 2^127 == 1 (mod p) and 2^128 == 2 (mod p). Fold the
	// high 128 bits (r2,r3) into the low 128 bits (r0,r1) accordingly:
	// value = r1:r0 + (r3:r2) * 2^128 == r1:r0 + (r3:r2)*2  (mod p)
	dHi, dLo := shiftLeft1(r3, r2)
	return mulFold(r1, r0, dHi, dLo)
}

func shiftLeft1(hi, lo uint64) (uint64, uint64) {
	newHi := (hi << 1) | (lo >> 63)
	newLo := lo << 1
	return newHi, newLo
}

// mulFold adds the two 128-bit halves (ahi:alo)+(bhi:blo) of Mul's folded
// product. Unlike addLimbs, the operands here are not bounded by p, so the
// hi-limb addition can itself carry out of 64 bits; that carry is worth
// 2^128, which is congruent to 2 (mod p), so it is folded back in as +2
// rather than dropped.
func mulFold(ahi, alo, bhi, blo uint64) Fp {
	lo, c1 := bits.Add64(alo, blo, 0)
	hi, c2 := bits.Add64(ahi, bhi, c1)
	if c2 != 0 {
		var carry uint64
		lo, carry = bits.Add64(lo, 2, 0)
		hi += carry
	}
	return fold(hi, lo)
}

// Inv returns a^-1 mod p via Fermat's little theorem (a^(p-2)); a must be
// nonzero. The exponent is fixed and public, so the square-and-multiply
// ladder has no secret-dependent length.
func (a Fp) Inv() Fp {
	result := FpOne()
	base := a
	// p-2 in binary, MSB first, 127 bits (p has bit length 127).
	exp := []uint64{pHi, pLo - 2}
	for limbIdx := 0; limbIdx < 2; limbIdx++ {
		word := exp[limbIdx]
		bitsInWord := 64
		if limbIdx == 0 {
			bitsInWord = 63
		}
		for b := bitsInWord - 1; b >= 0; b-- {
			result = result.Mul(result)
			if (word>>uint(b))&1 == 1 {
				result = result.Mul(base)
			}
		}
	}
	return result
}

// Eq reports whether a == b.
func (a Fp) Eq(b Fp) bool {
	return a.hi == b.hi && a.lo == b.lo
}

// CtIsNonzero is a constant-time nonzero predicate: branches only on the
// final bit, not on any intermediate comparison.
func (a Fp) CtIsNonzero() bool {
	combined := a.hi | a.lo
	return ((combined | -combined) >> 63) == 1
}

// Bytes returns the 16-byte little-endian encoding (lo limb first).
func (a Fp) Bytes() [16]byte {
	var out [16]byte
	for i := 0; i < 8; i++ {
		out[i] = byte(a.lo >> (8 * i))
		out[8+i] = byte(a.hi >> (8 * i))
	}
	return out
}

// FpFromBytes decodes the 16-byte little-endian encoding produced by Bytes,
// reducing modulo p if the raw value happens to exceed it.
func FpFromBytes(b [16]byte) Fp {
	var lo, hi uint64
	for i := 0; i < 8; i++ {
		lo |= uint64(b[i]) << (8 * i)
		hi |= uint64(b[8+i]) << (8 * i)
	}
	return fold(hi, lo)
}
