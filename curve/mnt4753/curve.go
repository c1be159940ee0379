// Package mnt4753 implements the group and field arithmetic this
// module needs from the MNT4-753 curve: its base field Fq, the
// quadratic extension Fq2 that G2 lives over, and Jacobian/affine point
// types for G1 and G2 with the operations the Pippenger MSM and the
// Groth16 proof-assembly stage call (AddAssign, AddMixed, DoubleAssign,
// ScalarMultiplication). Pairing and verification are explicit
// non-goals of this module, so no Frobenius/Miller-loop machinery is
// implemented here — only what proving needs.
package mnt4753

import (
	"math/big"
	"sync"

	"github.com/mnt753/groth16prover/curve/params"
	"github.com/mnt753/groth16prover/errs"
	"github.com/mnt753/groth16prover/field"
)

func decimal(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("mnt4753: invalid decimal constant " + s)
	}
	return v
}

var (
	initOnce sync.Once
	fqKernel *field.Kernel
	frKernel *field.Kernel
)

// Init performs the one-shot construction of this curve's Fq and Fr
// kernels. It is safe to call from multiple goroutines; only the first
// call does any work. Every other function in this package and
// mnt4753/fq2.go panics with errs.NotInitialized-shaped state if called
// before Init has run at least once.
func Init() error {
	var err error
	initOnce.Do(func() {
		fqKernel, err = field.NewKernel("mnt4753.fq", params.Mnt4753BaseModulus)
		if err != nil {
			return
		}
		frKernel, err = field.NewKernel("mnt4753.fr", params.Mnt6753BaseModulus)
	})
	return err
}

// FqKernel returns the base field kernel. Panics if Init has not run.
func FqKernel() *field.Kernel {
	mustInit()
	return fqKernel
}

// FrKernel returns the scalar field kernel (MNT6-753's base field,
// per the cycle property). Panics if Init has not run.
func FrKernel() *field.Kernel {
	mustInit()
	return frKernel
}

func mustInit() {
	if fqKernel == nil {
		panic(&errs.NotInitialized{Kernel: "mnt4753"})
	}
}

// g1CoeffA and g1CoeffB are G1's curve coefficients (y^2 = x^3 + a*x +
// b over Fq), and fq2NonResidue is the quadratic non-residue G2's
// twisted curve equation is built over (per the published MNT4-753
// parameters; see DESIGN.md for provenance notes). Stored as decimal
// literals rather than uint64s since b does not fit a machine word,
// and converted to field.Element lazily since that requires Init to
// have already built fqKernel.
const (
	g1CoeffADecimal      = "2"
	g1CoeffBDecimal      = "28798803903456388891410036793299405653583945675618640793982287542385816032209088301904593036931999947380967559366640272938299751265505965904177214081477720787348996423"
	fq2NonResidueDecimal = "13"
)

func g1Coefficients() (a, b field.Element) {
	k := FqKernel()
	a.SetBigInt(k, decimal(g1CoeffADecimal))
	b.SetBigInt(k, decimal(g1CoeffBDecimal))
	return
}
