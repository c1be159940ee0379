package field

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/mnt753/groth16prover/errs"
)

// Element is a value in the prime field owned by a particular *Kernel,
// stored internally in Montgomery form. Every arithmetic method takes
// the owning Kernel explicitly rather than stashing a package-level
// global, so the Fr and Fq kernels of both curves can be exercised
// concurrently from the same process without any shared
// mutable state, per the init-once Kernel design.
type Element struct {
	v Limbs
}

// SetZero sets z to 0 and returns z.
func (z *Element) SetZero() *Element {
	z.v = Limbs{}
	return z
}

// SetOne sets z to 1 (in the field owned by k) and returns z.
func (z *Element) SetOne(k *Kernel) *Element {
	z.v = k.one
	return z
}

// SetUint64 sets z to v mod k's modulus and returns z.
func (z *Element) SetUint64(k *Kernel, v uint64) *Element {
	var plain Limbs
	plain[0] = v
	z.v = k.toMontgomery(plain)
	return z
}

// SetBigInt sets z to v mod k's modulus and returns z.
func (z *Element) SetBigInt(k *Kernel, v *big.Int) *Element {
	reduced := new(big.Int).Mod(v, k.modulus.toBigInt())
	z.v = k.toMontgomery(limbsFromBigInt(reduced))
	return z
}

// ToBigInt returns z's value (under k) as a non-negative big.Int less
// than k's modulus.
func (z Element) ToBigInt(k *Kernel) *big.Int {
	return k.fromMontgomery(z.v).toBigInt()
}

// byteLen is the fixed-width wire size of an element: enough bytes to
// hold any value below a 753-bit modulus, matching spec §6's
// little-endian limb layout (NumLimbs*8 bytes, zero-padded).
func byteLen() int { return NumLimbs * 8 }

// SetBytes decodes a little-endian, fixed-width byte slice (as written
// by ToBytes) into z. Returns an InvalidArgument error if the slice has
// the wrong length, and a DomainError if the value is not below k's
// modulus.
func (z *Element) SetBytes(k *Kernel, b []byte) error {
	if len(b) != byteLen() {
		return &errs.InvalidArgument{Op: "field.Element.SetBytes", Reason: fmt.Sprintf("expected %d bytes, got %d", byteLen(), len(b))}
	}
	var plain Limbs
	for i := 0; i < NumLimbs; i++ {
		for j := 0; j < 8; j++ {
			plain[i] |= uint64(b[i*8+j]) << (uint(j) * 8)
		}
	}
	if plain.cmp(k.modulus) >= 0 {
		return &errs.DomainError{Op: "field.Element.SetBytes", Reason: "value not reduced mod field modulus"}
	}
	z.v = k.toMontgomery(plain)
	return nil
}

// ToBytes encodes z as a little-endian, fixed-width byte slice, the
// inverse of SetBytes.
func (z Element) ToBytes(k *Kernel) []byte {
	plain := k.fromMontgomery(z.v)
	b := make([]byte, byteLen())
	for i := 0; i < NumLimbs; i++ {
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(plain[i] >> (uint(j) * 8))
		}
	}
	return b
}

// SetRandom draws a uniformly random element of k's field using
// crypto/rand, via rejection sampling against the modulus.
func (z *Element) SetRandom(k *Kernel) error {
	b := make([]byte, byteLen())
	for {
		if _, err := rand.Read(b); err != nil {
			return err
		}
		// clear bits above the modulus' bit length to keep the
		// rejection rate low.
		excess := byteLen()*8 - k.bitLen
		if excess > 0 && excess < 8 {
			b[byteLen()-1] &= byte(0xff >> uint(excess))
		} else if excess >= 8 {
			clearBytes := excess / 8
			for i := 0; i < clearBytes; i++ {
				b[byteLen()-1-i] = 0
			}
			rem := excess % 8
			if rem > 0 {
				b[byteLen()-1-clearBytes] &= byte(0xff >> uint(rem))
			}
		}
		var plain Limbs
		for i := 0; i < NumLimbs; i++ {
			for j := 0; j < 8; j++ {
				plain[i] |= uint64(b[i*8+j]) << (uint(j) * 8)
			}
		}
		if plain.cmp(k.modulus) < 0 {
			z.v = k.toMontgomery(plain)
			return nil
		}
	}
}

// IsZero reports whether z is the additive identity.
func (z Element) IsZero() bool { return z.v.isZero() }

// Equal reports whether z and x hold the same field value.
func (z Element) Equal(x *Element) bool { return z.v.cmp(x.v) == 0 }

// Add sets z = x + y (mod k's modulus) and returns z.
func (z *Element) Add(k *Kernel, x, y *Element) *Element {
	var sum Limbs
	carry := addLimbs(&sum, &x.v, &y.v)
	if carry != 0 || sum.cmp(k.modulus) >= 0 {
		subLimbs(&sum, &sum, &k.modulus)
	}
	z.v = sum
	return z
}

// Sub sets z = x - y (mod k's modulus) and returns z.
func (z *Element) Sub(k *Kernel, x, y *Element) *Element {
	var diff Limbs
	borrow := subLimbs(&diff, &x.v, &y.v)
	if borrow != 0 {
		addLimbs(&diff, &diff, &k.modulus)
	}
	z.v = diff
	return z
}

// Neg sets z = -x (mod k's modulus) and returns z.
func (z *Element) Neg(k *Kernel, x *Element) *Element {
	if x.v.isZero() {
		z.v = Limbs{}
		return z
	}
	var diff Limbs
	subLimbs(&diff, &k.modulus, &x.v)
	z.v = diff
	return z
}

// Mul sets z = x * y (mod k's modulus) and returns z.
func (z *Element) Mul(k *Kernel, x, y *Element) *Element {
	z.v = k.montMul(x.v, y.v)
	return z
}

// Square sets z = x * x (mod k's modulus) and returns z.
func (z *Element) Square(k *Kernel, x *Element) *Element {
	z.v = k.montMul(x.v, x.v)
	return z
}

// Double sets z = x + x (mod k's modulus) and returns z.
func (z *Element) Double(k *Kernel, x *Element) *Element {
	return z.Add(k, x, x)
}

// Exp sets z = x^e (mod k's modulus), e given as a big.Int, via
// square-and-multiply from the most significant bit down.
func (z *Element) Exp(k *Kernel, x *Element, e *big.Int) *Element {
	result := Element{v: k.one}
	for i := e.BitLen() - 1; i >= 0; i-- {
		result.Square(k, &result)
		if e.Bit(i) == 1 {
			result.Mul(k, &result, x)
		}
	}
	z.v = result.v
	return z
}

// Inverse sets z = x^-1 (mod k's modulus) via Fermat's little theorem
// (x^(p-2)), and returns z. Returns a DomainError if x is zero.
func (z *Element) Inverse(k *Kernel, x *Element) error {
	if x.v.isZero() {
		return &errs.DomainError{Op: "field.Element.Inverse", Reason: "inverse of zero"}
	}
	pMinusTwo := new(big.Int).Sub(k.modulus.toBigInt(), big.NewInt(2))
	z.Exp(k, x, pMinusTwo)
	return nil
}

// Sqrt sets z to a square root of x (mod k's modulus) via
// Tonelli-Shanks, using the kernel's precomputed (s, t, nonResidue).
// Returns false if x is not a quadratic residue, leaving z unchanged.
func (z *Element) Sqrt(k *Kernel, x *Element) bool {
	if x.v.isZero() {
		z.v = Limbs{}
		return true
	}

	legendre := Element{}
	legendre.Exp(k, x, k.qMinusOneOverTwo.toBigInt())
	one := Element{v: k.one}
	if !legendre.Equal(&one) {
		return false
	}

	m := k.s
	c := k.PrimitiveRootOfUnity() // nonResidue^t
	tExp := k.t.toBigInt()
	var r Element
	r.Exp(k, x, new(big.Int).Rsh(new(big.Int).Add(tExp, big.NewInt(1)), 1))
	var t Element
	t.Exp(k, x, tExp)

	for {
		if t.Equal(&one) {
			z.v = r.v
			return true
		}
		// find least i, 0 < i < m, such that t^(2^i) == 1
		i := 0
		tt := Element{v: t.v}
		for !tt.Equal(&one) {
			tt.Square(k, &tt)
			i++
		}
		// b = c^(2^(m-i-1))
		b := Element{v: c.v}
		for j := 0; j < m-i-1; j++ {
			b.Square(k, &b)
		}
		r.Mul(k, &r, &b)
		b.Square(k, &b)
		t.Mul(k, &t, &b)
		c.v = b.v
		m = i
	}
}

// String renders z's canonical (non-Montgomery) value in decimal,
// useful for test failure messages and debug logs.
func (z Element) String(k *Kernel) string {
	return k.fromMontgomery(z.v).toBigInt().String()
}
