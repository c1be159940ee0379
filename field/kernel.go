package field

import (
	"math/big"
	"math/bits"

	"github.com/mnt753/groth16prover/errs"
)

// Kernel is the process-wide, init-once state for one prime field: its
// modulus, the Montgomery constants derived from it, and the
// Tonelli-Shanks parameters used by Sqrt. Per the design notes, this is
// an explicit handle rather than hidden package globals: every
// Element operation below takes a *Kernel, so "operate before Init" is
// a compile-time-visible nil dereference instead of a silent footgun,
// and tests can run several curves' kernels in parallel without
// shared mutable state.
//
// A Kernel is immutable after NewKernel returns and is safe for
// concurrent use by any number of worker goroutines.
type Kernel struct {
	name string

	modulus Limbs
	bitLen  int

	// r = 2^(64*NumLimbs) mod modulus, rSquared = r^2 mod modulus, and
	// nInv0 = -modulus[0]^-1 mod 2^64 are the three constants the CIOS
	// Montgomery multiplication core needs.
	r        Limbs
	rSquared Limbs
	nInv0    uint64

	one  Limbs // Montgomery form of 1
	zero Limbs // Montgomery form of 0 (all-zero, kept for symmetry)

	// q-1 = 2^s * t, t odd; qMinusOneOverTwo = (q-1)/2 (Euler criterion
	// exponent); nonResidue is a fixed quadratic non-residue used as
	// the Tonelli-Shanks generator.
	s                int
	t                Limbs
	qMinusOneOverTwo Limbs
	nonResidue       Limbs // Montgomery form
}

// NewKernel builds the Montgomery constants for the prime given in
// decimal, and performs the one-shot init the spec's §4.A requires. It
// is intended to be called exactly once per field (typically from a
// package-level sync.Once) — re-initialization is not supported, matching
// the "init-once lifecycle... re-initialization is forbidden" contract.
func NewKernel(name string, modulusDecimal string) (*Kernel, error) {
	mod, ok := new(big.Int).SetString(modulusDecimal, 10)
	if !ok || mod.Sign() <= 0 {
		return nil, &errs.DomainError{Op: "field.NewKernel", Reason: "invalid modulus literal"}
	}

	k := &Kernel{name: name, modulus: limbsFromBigInt(mod), bitLen: mod.BitLen()}

	rExp := new(big.Int).Lsh(big.NewInt(1), uint(NumLimbs*64))
	r := new(big.Int).Mod(rExp, mod)
	k.r = limbsFromBigInt(r)

	rSquared := new(big.Int).Mul(r, r)
	rSquared.Mod(rSquared, mod)
	k.rSquared = limbsFromBigInt(rSquared)

	// n' = -modulus^-1 mod 2^64, computed via the modulus' least
	// significant word inverted mod 2^64 (odd modulus guarantees it is
	// invertible).
	k.nInv0 = invWord(k.modulus[0])

	k.one = k.r // 1 * R mod modulus = R (Montgomery form of 1)
	k.zero = Limbs{}

	qMinusOne := new(big.Int).Sub(mod, big.NewInt(1))
	half := new(big.Int).Rsh(qMinusOne, 1)
	k.qMinusOneOverTwo = limbsFromBigInt(half)

	s := 0
	t := new(big.Int).Set(qMinusOne)
	for t.Bit(0) == 0 {
		t.Rsh(t, 1)
		s++
	}
	k.s = s
	k.t = limbsFromBigInt(t)

	nr := findNonResidue(mod)
	k.nonResidue = k.toMontgomery(limbsFromBigInt(nr))

	return k, nil
}

// Name returns the human-readable name this kernel was constructed
// with (e.g. "mnt4753.fr"), useful for error messages and logging.
func (k *Kernel) Name() string { return k.name }

// BitLen returns the bit length of the modulus.
func (k *Kernel) BitLen() int { return k.bitLen }

// TwoAdicity returns s where modulus-1 = 2^s * t, t odd: the largest
// power-of-two evaluation domain this field directly supports without
// a coset shift.
func (k *Kernel) TwoAdicity() int { return k.s }

// PrimitiveRootOfUnity returns an Element of exact multiplicative
// order 2^TwoAdicity(): the non-residue raised to the odd cofactor t.
// Since the non-residue is not a square, its order is even and exactly
// divides (modulus-1) but not (modulus-1)/2, which forces the order of
// nonResidue^t to be exactly 2^s — the standard NTT root-of-unity
// construction.
func (k *Kernel) PrimitiveRootOfUnity() Element {
	nr := Element{v: k.nonResidue}
	var root Element
	root.Exp(k, &nr, k.t.toBigInt())
	return root
}

func (k *Kernel) toMontgomery(a Limbs) Limbs { return k.montMul(a, k.rSquared) }

func (k *Kernel) fromMontgomery(a Limbs) Limbs {
	var one Limbs
	one[0] = 1
	return k.montMul(a, one)
}

// montMul is the CIOS (coarsely integrated operand scanning) Montgomery
// multiplication: computes a*b*R^-1 mod modulus without ever forming
// the full double-width product as a single big.Int. It is the one hot
// loop every Mul/Square/Exp/Inverse call above it reduces to.
func (k *Kernel) montMul(a, b Limbs) Limbs {
	// t holds the running product plus reduction, one word wider than
	// the operands to absorb carry; t[NumLimbs] is the running overflow
	// limb that slides down as each iteration discards t[0].
	var t [NumLimbs + 1]uint64

	for i := 0; i < NumLimbs; i++ {
		// t += a[i] * b, tracked as a running carry across the row.
		var carry uint64
		for j := 0; j < NumLimbs; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c0, c1 uint64
			t[j], c0 = bits.Add64(t[j], lo, 0)
			t[j], c1 = bits.Add64(t[j], carry, 0)
			carry = hi + c0 + c1
		}
		t[NumLimbs], carry = bits.Add64(t[NumLimbs], carry, 0)
		overflow := carry

		// m = t[0] * nInv0 mod 2^64 makes (t + m*modulus) divisible by
		// 2^64, i.e. clears the bottom limb once added in below.
		m := t[0] * k.nInv0

		carry = 0
		for j := 0; j < NumLimbs; j++ {
			hi, lo := bits.Mul64(m, k.modulus[j])
			var c0, c1 uint64
			t[j], c0 = bits.Add64(t[j], lo, 0)
			t[j], c1 = bits.Add64(t[j], carry, 0)
			carry = hi + c0 + c1
		}
		t[NumLimbs], carry = bits.Add64(t[NumLimbs], carry, 0)
		overflow += carry

		// divide by the radix word: shift the (now zero) bottom limb out.
		copy(t[:NumLimbs], t[1:])
		t[NumLimbs] = overflow
	}

	var z Limbs
	copy(z[:], t[:NumLimbs])
	if t[NumLimbs] != 0 || Limbs(z).cmp(k.modulus) >= 0 {
		subLimbs(&z, &z, &k.modulus)
	}
	return z
}

// invWord computes -w^-1 mod 2^64 for odd w, via Newton's method: each
// iteration doubles the number of correct low bits of the ordinary
// inverse (x_{n+1} = x_n*(2 - w*x_n)), starting from the 3-bit exact
// inverse every odd word has (w*w == 1 mod 8). Six iterations are
// enough to saturate 64 bits from a 3-bit seed.
func invWord(w uint64) uint64 {
	x := w // correct mod 2^3
	for i := 0; i < 6; i++ {
		x *= 2 - w*x
	}
	return -x
}

// findNonResidue searches small odd primes for one that is a quadratic
// non-residue mod p, via Euler's criterion (a^((p-1)/2) == p-1 mod p).
// Run once at Kernel construction over big.Int; never on the hot path.
func findNonResidue(p *big.Int) *big.Int {
	exp := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	pMinusOne := new(big.Int).Sub(p, big.NewInt(1))
	for _, c := range smallOddCandidates {
		cand := big.NewInt(c)
		if cand.Cmp(p) >= 0 {
			break
		}
		r := new(big.Int).Exp(cand, exp, p)
		if r.Cmp(pMinusOne) == 0 {
			return cand
		}
	}
	panic("field: no small quadratic non-residue found")
}

var smallOddCandidates = []int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}
