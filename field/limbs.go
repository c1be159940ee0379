// Package field implements the Montgomery-form prime field kernel
// shared by every field in this module: each curve's scalar field Fr
// and base field Fq. The MNT4-753/MNT6-753 cycle has only two primes:
// each curve's Fr is the other curve's Fq. Add, Sub, Mul and Square run
// entirely over fixed-width limb arithmetic, the way gnark-crypto's
// generated fr/fp packages do; Kernel construction, Exp, Inverse, Sqrt
// and the big.Int conversions use math/big.
package field

import (
	"math/big"
	"math/bits"
)

// NumLimbs is the limb width used throughout this module: MNT4-753 and
// MNT6-753 both have ~753-bit moduli, which fits in 12 64-bit limbs
// with room to spare (768 bits). Both curves' Fr and Fq use the same
// width, so one constant covers the whole
// kernel instead of per-field template parameters.
const NumLimbs = 12

// Limbs is a little-endian fixed-width integer: Limbs[0] is the least
// significant 64-bit word. It is used both for plain (non-Montgomery)
// values during Kernel construction and, inside Element, for
// Montgomery residues.
type Limbs [NumLimbs]uint64

func (a Limbs) isZero() bool {
	for _, w := range a {
		if w != 0 {
			return false
		}
	}
	return true
}

func (a Limbs) cmp(b Limbs) int {
	for i := NumLimbs - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

func addLimbs(z, a, b *Limbs) (carry uint64) {
	for i := 0; i < NumLimbs; i++ {
		z[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return
}

func subLimbs(z, a, b *Limbs) (borrow uint64) {
	for i := 0; i < NumLimbs; i++ {
		z[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return
}

func limbsFromBigInt(v *big.Int) Limbs {
	var z Limbs
	// Go via Bytes() rather than Bits() so the layout is independent of
	// the host's big.Word size (32- vs 64-bit platforms).
	b := v.Bytes()
	for i := 0; i < len(b); i++ {
		limb := i / 8
		shift := uint((i % 8)) * 8
		if limb >= NumLimbs {
			break
		}
		z[limb] |= uint64(b[len(b)-1-i]) << shift
	}
	return z
}

func (a Limbs) toBigInt() *big.Int {
	buf := make([]byte, NumLimbs*8)
	for i := 0; i < NumLimbs; i++ {
		for j := 0; j < 8; j++ {
			buf[len(buf)-1-(i*8+j)] = byte(a[i] >> (uint(j) * 8))
		}
	}
	return new(big.Int).SetBytes(buf)
}
