package mnt6753

import "github.com/mnt753/groth16prover/field"

// G2Affine is a point on MNT6-753's G2 (the cubic twist, over Fq3) in
// affine coordinates.
type G2Affine struct {
	X, Y Fq3
}

// ScalarMultiplication sets p = s*q via double-and-add.
func (p *G2Jac) ScalarMultiplication(q *G2Affine, s *field.Element, frKernel *field.Kernel) *G2Jac {
	e := s.ToBigInt(frKernel)
	var acc G2Jac
	acc.SetZero()
	for i := e.BitLen() - 1; i >= 0; i-- {
		acc.DoubleAssign()
		if e.Bit(i) == 1 {
			acc.AddMixed(q)
		}
	}
	*p = acc
	return p
}

// G2Jac is a G2 point in Jacobian coordinates.
type G2Jac struct {
	X, Y, Z Fq3
}

// g2Coefficients derives G2's twisted curve coefficients from G1's via
// the standard cubic-twist construction: a' = a * nr, b' = b * nr
// (a cubic twist absorbs the non-residue once into each coefficient,
// unlike the quadratic twist's squared/cubed factors).
func g2Coefficients() (a, b Fq3) {
	g1a, g1b := g1Coefficients()
	nr := Fq3{C0: fq3NonResidue()}
	nr.C1.SetZero()
	nr.C2.SetZero()

	a.C0 = g1a
	a.C1.SetZero()
	a.C2.SetZero()
	a.Mul(&a, &nr)

	b.C0 = g1b
	b.C1.SetZero()
	b.C2.SetZero()
	b.Mul(&b, &nr)
	return
}

func (p *G2Jac) SetZero() *G2Jac {
	p.X.SetOne()
	p.Y.SetOne()
	p.Z.SetZero()
	return p
}

func (p G2Jac) IsZero() bool { return p.Z.IsZero() }

func (p *G2Jac) FromAffine(q *G2Affine) *G2Jac {
	if q.X.IsZero() && q.Y.IsZero() {
		return p.SetZero()
	}
	p.X = q.X
	p.Y = q.Y
	p.Z.SetOne()
	return p
}

func (p G2Jac) ToAffine() G2Affine {
	if p.IsZero() {
		return G2Affine{}
	}
	var zInv, zInv2, zInv3, x, y Fq3
	if err := zInv.Inverse(&p.Z); err != nil {
		panic(err)
	}
	zInv2.Square(&zInv)
	zInv3.Mul(&zInv2, &zInv)
	x.Mul(&p.X, &zInv2)
	y.Mul(&p.Y, &zInv3)
	return G2Affine{X: x, Y: y}
}

func (p *G2Jac) DoubleAssign() *G2Jac {
	if p.IsZero() {
		return p
	}
	a, _ := g2Coefficients()

	var xx, yy, yyyy, zz, s, m Fq3
	xx.Square(&p.X)
	yy.Square(&p.Y)
	yyyy.Square(&yy)
	zz.Square(&p.Z)

	var xPlusYY, xPlusYYSq Fq3
	xPlusYY.Add(&p.X, &yy)
	xPlusYYSq.Square(&xPlusYY)
	s.Sub(&xPlusYYSq, &xx)
	s.Sub(&s, &yyyy)
	s.Add(&s, &s)

	var xx3, zz2, azz2 Fq3
	xx3.Add(&xx, &xx)
	xx3.Add(&xx3, &xx)
	zz2.Square(&zz)
	azz2.Mul(&a, &zz2)
	m.Add(&xx3, &azz2)

	var s2, mSq, t2 Fq3
	s2.Add(&s, &s)
	mSq.Square(&m)
	t2.Sub(&mSq, &s2)

	var eightYyyy Fq3
	eightYyyy.Add(&yyyy, &yyyy)
	eightYyyy.Add(&eightYyyy, &eightYyyy)
	eightYyyy.Add(&eightYyyy, &eightYyyy)

	var sMinusT2, newY Fq3
	sMinusT2.Sub(&s, &t2)
	newY.Mul(&m, &sMinusT2)
	newY.Sub(&newY, &eightYyyy)

	var yPlusZ, yPlusZSq, newZ Fq3
	yPlusZ.Add(&p.Y, &p.Z)
	yPlusZSq.Square(&yPlusZ)
	newZ.Sub(&yPlusZSq, &yy)
	newZ.Sub(&newZ, &zz)

	p.X = t2
	p.Y = newY
	p.Z = newZ
	return p
}

func (p *G2Jac) AddAssign(q *G2Jac) *G2Jac {
	if q.IsZero() {
		return p
	}
	if p.IsZero() {
		*p = *q
		return p
	}

	var z1z1, z2z2, u1, u2, s1, s2 Fq3
	z1z1.Square(&p.Z)
	z2z2.Square(&q.Z)
	u1.Mul(&p.X, &z2z2)
	u2.Mul(&q.X, &z1z1)

	var z1Cubed, z2Cubed Fq3
	z1Cubed.Mul(&p.Z, &z1z1)
	z2Cubed.Mul(&q.Z, &z2z2)
	s1.Mul(&p.Y, &z2Cubed)
	s2.Mul(&q.Y, &z1Cubed)

	if u1.Equal(&u2) {
		if !s1.Equal(&s2) {
			return p.SetZero()
		}
		return p.DoubleAssign()
	}

	var h, h2, i, j, r, v Fq3
	h.Sub(&u2, &u1)
	h2.Add(&h, &h)
	i.Square(&h2)
	j.Mul(&h, &i)
	r.Sub(&s2, &s1)
	r.Add(&r, &r)
	v.Mul(&u1, &i)

	var rSq, v2, newX Fq3
	rSq.Square(&r)
	v2.Add(&v, &v)
	newX.Sub(&rSq, &j)
	newX.Sub(&newX, &v2)

	var vMinusX, newY, s1j2 Fq3
	vMinusX.Sub(&v, &newX)
	newY.Mul(&r, &vMinusX)
	s1j2.Mul(&s1, &j)
	s1j2.Add(&s1j2, &s1j2)
	newY.Sub(&newY, &s1j2)

	var zSum, zSumSq, zzSum, newZ Fq3
	zSum.Add(&p.Z, &q.Z)
	zSumSq.Square(&zSum)
	zzSum.Add(&z1z1, &z2z2)
	newZ.Sub(&zSumSq, &zzSum)
	newZ.Mul(&newZ, &h)

	p.X = newX
	p.Y = newY
	p.Z = newZ
	return p
}

func (p *G2Jac) AddMixed(q *G2Affine) *G2Jac {
	if q.X.IsZero() && q.Y.IsZero() {
		return p
	}
	if p.IsZero() {
		return p.FromAffine(q)
	}

	var z1z1, u2, s2 Fq3
	z1z1.Square(&p.Z)
	u2.Mul(&q.X, &z1z1)
	var z1Cubed Fq3
	z1Cubed.Mul(&p.Z, &z1z1)
	s2.Mul(&q.Y, &z1Cubed)

	if p.X.Equal(&u2) {
		if !p.Y.Equal(&s2) {
			return p.SetZero()
		}
		return p.DoubleAssign()
	}

	var h, hh, i, j, r, v Fq3
	h.Sub(&u2, &p.X)
	hh.Square(&h)
	i.Add(&hh, &hh)
	i.Add(&i, &i)
	j.Mul(&h, &i)
	r.Sub(&s2, &p.Y)
	r.Add(&r, &r)
	v.Mul(&p.X, &i)

	var rSq, v2, newX Fq3
	rSq.Square(&r)
	v2.Add(&v, &v)
	newX.Sub(&rSq, &j)
	newX.Sub(&newX, &v2)

	var vMinusX, newY, yj2 Fq3
	vMinusX.Sub(&v, &newX)
	newY.Mul(&r, &vMinusX)
	yj2.Mul(&p.Y, &j)
	yj2.Add(&yj2, &yj2)
	newY.Sub(&newY, &yj2)

	var zPlusH, zPlusHSq, newZ Fq3
	zPlusH.Add(&p.Z, &h)
	zPlusHSq.Square(&zPlusH)
	newZ.Sub(&zPlusHSq, &z1z1)
	newZ.Sub(&newZ, &hh)

	p.X = newX
	p.Y = newY
	p.Z = newZ
	return p
}
