package mnt4753

import "github.com/mnt753/groth16prover/field"

// Fq2 is an element of the quadratic extension Fq[u]/(u^2 - nonResidue)
// that G2 is defined over, c0 + c1*u. Naming follows the teacher's
// deleted bn254 E2 gadget (A0/A1) generalized to this curve's own
// field, renamed C0/C1 to match this package's non-circuit types.
type Fq2 struct {
	C0, C1 field.Element
}

func fq2NonResidue() field.Element {
	var nr field.Element
	nr.SetBigInt(FqKernel(), decimal(fq2NonResidueDecimal))
	return nr
}

func (z *Fq2) SetZero() *Fq2 {
	z.C0.SetZero()
	z.C1.SetZero()
	return z
}

func (z *Fq2) SetOne() *Fq2 {
	k := FqKernel()
	z.C0.SetOne(k)
	z.C1.SetZero()
	return z
}

func (z Fq2) IsZero() bool { return z.C0.IsZero() && z.C1.IsZero() }

func (z Fq2) Equal(x *Fq2) bool { return z.C0.Equal(&x.C0) && z.C1.Equal(&x.C1) }

func (z *Fq2) Add(x, y *Fq2) *Fq2 {
	k := FqKernel()
	z.C0.Add(k, &x.C0, &y.C0)
	z.C1.Add(k, &x.C1, &y.C1)
	return z
}

func (z *Fq2) Sub(x, y *Fq2) *Fq2 {
	k := FqKernel()
	z.C0.Sub(k, &x.C0, &y.C0)
	z.C1.Sub(k, &x.C1, &y.C1)
	return z
}

func (z *Fq2) Neg(x *Fq2) *Fq2 {
	k := FqKernel()
	z.C0.Neg(k, &x.C0)
	z.C1.Neg(k, &x.C1)
	return z
}

// Mul sets z = x*y in Fq[u]/(u^2-nr): (a0+a1u)(b0+b1u) =
// (a0b0 + nr*a1b1) + (a0b1+a1b0)u.
func (z *Fq2) Mul(x, y *Fq2) *Fq2 {
	k := FqKernel()
	nr := fq2NonResidue()

	var a0b0, a1b1, a0b1, a1b0, t field.Element
	a0b0.Mul(k, &x.C0, &y.C0)
	a1b1.Mul(k, &x.C1, &y.C1)
	a0b1.Mul(k, &x.C0, &y.C1)
	a1b0.Mul(k, &x.C1, &y.C0)

	t.Mul(k, &a1b1, &nr)
	var c0, c1 field.Element
	c0.Add(k, &a0b0, &t)
	c1.Add(k, &a0b1, &a1b0)
	z.C0, z.C1 = c0, c1
	return z
}

func (z *Fq2) Square(x *Fq2) *Fq2 { return z.Mul(x, x) }

// Inverse sets z = x^-1 via the norm N(x) = c0^2 - nr*c1^2: x^-1 =
// (c0 - c1*u) / N(x).
func (z *Fq2) Inverse(x *Fq2) error {
	k := FqKernel()
	nr := fq2NonResidue()

	var c0sq, c1sq, nrc1sq, norm field.Element
	c0sq.Square(k, &x.C0)
	c1sq.Square(k, &x.C1)
	nrc1sq.Mul(k, &c1sq, &nr)
	norm.Sub(k, &c0sq, &nrc1sq)

	var normInv field.Element
	if err := normInv.Inverse(k, &norm); err != nil {
		return err
	}

	var negC1 field.Element
	negC1.Neg(k, &x.C1)

	z.C0.Mul(k, &x.C0, &normInv)
	z.C1.Mul(k, &negC1, &normInv)
	return nil
}
