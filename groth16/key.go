// Package groth16 implements the Groth16 proof-generation core this
// module provides: given a proving key and a witness, it produces a
// proof. Setup, verification, and constraint-system frontends are
// explicit non-goals; the proving key is always an external input.
//
// See also https://eprint.iacr.org/2016/260.pdf for the scheme this
// implements the prover half of.
package groth16

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/mnt753/groth16prover/field"
)

// ProvingKey holds everything the prover needs: the QAP dimensions (d
// constraints, m wires), the circuit-independent QAP coefficient
// vectors, and the precomputed group elements from the trusted setup.
// Field names mirror the QAP/Groth16 literature rather than the
// teacher's generated per-curve ProvingKey structs, since this core's
// key layout is curve-parameterized (G1/G2 are generic type
// parameters) instead of one generated struct per curve.
//
// CA/CB/CC already incorporate whatever linear combination the (out of
// scope) R1CS frontend produced: this core's Stage 2 operates on them
// directly, with no further witness-weighted combination — see §4.D.
type ProvingKey[G1 any, G2 any] struct {
	D int // number of constraints
	M int // number of wires

	// QAP evaluation vectors of A(x), B(x), C(x), each of length D+1.
	CA, CB, CC []field.Element

	// Trusted-setup group elements.
	A  []G1 // len M+1
	B1 []G1 // len M+1
	B2 []G2 // len M+1
	L  []G1 // len M-1 (everything but the first two, public, wires)
	T  []G1 // len D, the powers of tau needed to reconstruct H(x)

	// InfinityA/InfinityB flag which A/B1 entries are the point at
	// infinity (an unused wire in this circuit), mirroring the real
	// gnark ProvingKey's InfinityA/NbInfinityA fields: MSM skips these
	// bases entirely rather than multiplying by zero.
	InfinityA *bitset.BitSet
	InfinityB *bitset.BitSet
}

// Witness is the full assignment vector w (length M+1) plus the single
// blinding scalar r this core's pinned single-random-scalar convention
// uses for d1=d2=d3 (see DESIGN.md Open Questions).
type Witness struct {
	W []field.Element
	R field.Element
}

// Proof is the five group elements this core emits per §3: the raw
// output of the five MSMs of §4.D, each normalized to affine form. This
// core does not fold them into the usual three-element Groth16 proof
// (pi_A, pi_B, pi_C) — that fold needs the delta/alpha/beta toxic-waste
// basis points from a Groth16 trusted setup, which are outside this
// core's data model (§3 lists no such fields on ProvingKey). Producing
// the classic three-element proof from these five is the caller's
// concern, sitting on the other side of the external-collaborator
// boundary drawn in §1.
type Proof[G1 any, G2 any] struct {
	PiA  G1
	PiB1 G1
	PiB2 G2
	PiL  G1
	PiH  G1
}
