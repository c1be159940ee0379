package mnt6753

import "github.com/mnt753/groth16prover/field"

// Fq3 is an element of the cubic extension Fq[v]/(v^3 - nonResidue)
// that G2 is defined over: c0 + c1*v + c2*v^2.
type Fq3 struct {
	C0, C1, C2 field.Element
}

func fq3NonResidue() field.Element {
	var nr field.Element
	nr.SetBigInt(FqKernel(), decimal(fq3NonResidueDecimal))
	return nr
}

func (z *Fq3) SetZero() *Fq3 {
	z.C0.SetZero()
	z.C1.SetZero()
	z.C2.SetZero()
	return z
}

func (z *Fq3) SetOne() *Fq3 {
	k := FqKernel()
	z.C0.SetOne(k)
	z.C1.SetZero()
	z.C2.SetZero()
	return z
}

func (z Fq3) IsZero() bool { return z.C0.IsZero() && z.C1.IsZero() && z.C2.IsZero() }

func (z Fq3) Equal(x *Fq3) bool {
	return z.C0.Equal(&x.C0) && z.C1.Equal(&x.C1) && z.C2.Equal(&x.C2)
}

func (z *Fq3) Add(x, y *Fq3) *Fq3 {
	k := FqKernel()
	z.C0.Add(k, &x.C0, &y.C0)
	z.C1.Add(k, &x.C1, &y.C1)
	z.C2.Add(k, &x.C2, &y.C2)
	return z
}

func (z *Fq3) Sub(x, y *Fq3) *Fq3 {
	k := FqKernel()
	z.C0.Sub(k, &x.C0, &y.C0)
	z.C1.Sub(k, &x.C1, &y.C1)
	z.C2.Sub(k, &x.C2, &y.C2)
	return z
}

func (z *Fq3) Neg(x *Fq3) *Fq3 {
	k := FqKernel()
	z.C0.Neg(k, &x.C0)
	z.C1.Neg(k, &x.C1)
	z.C2.Neg(k, &x.C2)
	return z
}

// Mul sets z = x*y in Fq[v]/(v^3-nr) via schoolbook polynomial
// multiplication reduced mod v^3=nr:
// (a0+a1v+a2v^2)(b0+b1v+b2v^2) = c0 + c1 v + c2 v^2, where
//
//	c0 = a0b0 + nr*(a1b2+a2b1)
//	c1 = a0b1+a1b0 + nr*a2b2
//	c2 = a0b2+a1b1+a2b0
func (z *Fq3) Mul(x, y *Fq3) *Fq3 {
	k := FqKernel()
	nr := fq3NonResidue()

	var a0b0, a1b1, a2b2 field.Element
	a0b0.Mul(k, &x.C0, &y.C0)
	a1b1.Mul(k, &x.C1, &y.C1)
	a2b2.Mul(k, &x.C2, &y.C2)

	var a0b1, a1b0, a0b2, a2b0, a1b2, a2b1 field.Element
	a0b1.Mul(k, &x.C0, &y.C1)
	a1b0.Mul(k, &x.C1, &y.C0)
	a0b2.Mul(k, &x.C0, &y.C2)
	a2b0.Mul(k, &x.C2, &y.C0)
	a1b2.Mul(k, &x.C1, &y.C2)
	a2b1.Mul(k, &x.C2, &y.C1)

	var t0, t1, c0, c1, c2 field.Element
	t0.Add(k, &a1b2, &a2b1)
	t0.Mul(k, &t0, &nr)
	c0.Add(k, &a0b0, &t0)

	t1.Mul(k, &a2b2, &nr)
	c1.Add(k, &a0b1, &a1b0)
	c1.Add(k, &c1, &t1)

	c2.Add(k, &a0b2, &a1b1)
	c2.Add(k, &c2, &a2b0)

	z.C0, z.C1, z.C2 = c0, c1, c2
	return z
}

func (z *Fq3) Square(x *Fq3) *Fq3 { return z.Mul(x, x) }

// Inverse sets z = x^-1 by solving the 3x3 linear system implied by
// x*z=1 via explicit cofactor formulas, the textbook cubic-extension
// inversion (see e.g. the formulas used by gnark-crypto's Fp3 towers).
func (z *Fq3) Inverse(x *Fq3) error {
	k := FqKernel()
	nr := fq3NonResidue()

	// t0 = a0^2 - nr*a1*a2
	// t1 = nr*a2^2 - a0*a1
	// t2 = a1^2 - a0*a2
	// norm = a0*t0 + nr*a2*t1 + nr*a1*t2
	var a0sq, a1a2, nrA1a2, t0 field.Element
	a0sq.Square(k, &x.C0)
	a1a2.Mul(k, &x.C1, &x.C2)
	nrA1a2.Mul(k, &a1a2, &nr)
	t0.Sub(k, &a0sq, &nrA1a2)

	var a2sq, nrA2sq, a0a1, t1 field.Element
	a2sq.Square(k, &x.C2)
	nrA2sq.Mul(k, &a2sq, &nr)
	a0a1.Mul(k, &x.C0, &x.C1)
	t1.Sub(k, &nrA2sq, &a0a1)

	var a1sq, a0a2, t2 field.Element
	a1sq.Square(k, &x.C1)
	a0a2.Mul(k, &x.C0, &x.C2)
	t2.Sub(k, &a1sq, &a0a2)

	var a0t0, a2t1, nrA2t1, a1t2, nrA1t2, norm field.Element
	a0t0.Mul(k, &x.C0, &t0)
	a2t1.Mul(k, &x.C2, &t1)
	nrA2t1.Mul(k, &a2t1, &nr)
	a1t2.Mul(k, &x.C1, &t2)
	nrA1t2.Mul(k, &a1t2, &nr)
	norm.Add(k, &a0t0, &nrA2t1)
	norm.Add(k, &norm, &nrA1t2)

	var normInv field.Element
	if err := normInv.Inverse(k, &norm); err != nil {
		return err
	}

	z.C0.Mul(k, &t0, &normInv)
	z.C1.Mul(k, &t1, &normInv)
	z.C2.Mul(k, &t2, &normInv)
	return nil
}
