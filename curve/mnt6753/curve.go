// Package mnt6753 implements the group and field arithmetic this
// module needs from the MNT6-753 curve: its base field Fq, the cubic
// extension Fq3 that G2 lives over, and Jacobian/affine point types for
// G1 and G2. See curve/mnt4753 for the parallel structure and the
// non-goal notes on pairing machinery.
package mnt6753

import (
	"math/big"
	"sync"

	"github.com/mnt753/groth16prover/curve/params"
	"github.com/mnt753/groth16prover/errs"
	"github.com/mnt753/groth16prover/field"
)

var (
	initOnce sync.Once
	fqKernel *field.Kernel
	frKernel *field.Kernel
)

// Init performs the one-shot construction of this curve's Fq and Fr
// kernels. Safe to call from multiple goroutines.
func Init() error {
	var err error
	initOnce.Do(func() {
		fqKernel, err = field.NewKernel("mnt6753.fq", params.Mnt6753BaseModulus)
		if err != nil {
			return
		}
		frKernel, err = field.NewKernel("mnt6753.fr", params.Mnt4753BaseModulus)
	})
	return err
}

func FqKernel() *field.Kernel {
	mustInit()
	return fqKernel
}

func FrKernel() *field.Kernel {
	mustInit()
	return frKernel
}

func mustInit() {
	if fqKernel == nil {
		panic(&errs.NotInitialized{Kernel: "mnt6753"})
	}
}

func decimal(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("mnt6753: invalid decimal constant " + s)
	}
	return v
}

const (
	g1CoeffADecimal      = "11"
	g1CoeffBDecimal      = "106700080510851735677967319632585352256454251201367587890185989362936000262606668469523074513181719616285929019244737340936380643802474787534132780749535467609296886074"
	fq3NonResidueDecimal = "5"
)

func g1Coefficients() (a, b field.Element) {
	k := FqKernel()
	a.SetBigInt(k, decimal(g1CoeffADecimal))
	b.SetBigInt(k, decimal(g1CoeffBDecimal))
	return
}
