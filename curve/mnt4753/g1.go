package mnt4753

import "github.com/mnt753/groth16prover/field"

// G1Affine is a point on MNT4-753's G1 in affine coordinates.
type G1Affine struct {
	X, Y field.Element
}

// G1Jac is a point on MNT4-753's G1 in Jacobian coordinates (X, Y, Z;
// affine x = X/Z^2, y = Y/Z^3). Jacobian coordinates are what the
// Pippenger bucket accumulator operates on, per gnark-crypto's point
// template, since they avoid a field inversion on every addition.
type G1Jac struct {
	X, Y, Z field.Element
}

func (p *G1Jac) SetZero() *G1Jac {
	k := FqKernel()
	p.X.SetOne(k)
	p.Y.SetOne(k)
	p.Z.SetZero()
	return p
}

func (p G1Jac) IsZero() bool { return p.Z.IsZero() }

// FromAffine lifts an affine point into Jacobian coordinates (Z=1).
func (p *G1Jac) FromAffine(q *G1Affine) *G1Jac {
	k := FqKernel()
	if q.X.IsZero() && q.Y.IsZero() {
		return p.SetZero()
	}
	p.X = q.X
	p.Y = q.Y
	p.Z.SetOne(k)
	return p
}

// ToAffine projects back to affine coordinates.
func (p G1Jac) ToAffine() G1Affine {
	k := FqKernel()
	if p.IsZero() {
		return G1Affine{}
	}
	var zInv, zInv2, zInv3, x, y field.Element
	if err := zInv.Inverse(k, &p.Z); err != nil {
		panic(err)
	}
	zInv2.Square(k, &zInv)
	zInv3.Mul(k, &zInv2, &zInv)
	x.Mul(k, &p.X, &zInv2)
	y.Mul(k, &p.Y, &zInv3)
	return G1Affine{X: x, Y: y}
}

// DoubleAssign sets p = 2p in place, using the standard Jacobian
// doubling formula for short-Weierstrass curves with a != 0 folded in
// (MNT4-753's a is small but nonzero, so the generic a-aware formula is
// used rather than the a=0 shortcut some curves allow).
func (p *G1Jac) DoubleAssign() *G1Jac {
	k := FqKernel()
	if p.IsZero() {
		return p
	}
	a, _ := g1Coefficients()

	var xx, yy, yyyy, zz, s, m field.Element
	xx.Square(k, &p.X)
	yy.Square(k, &p.Y)
	yyyy.Square(k, &yy)
	zz.Square(k, &p.Z)

	var xPlusYY, xPlusYYSq field.Element
	xPlusYY.Add(k, &p.X, &yy)
	xPlusYYSq.Square(k, &xPlusYY)
	s.Sub(k, &xPlusYYSq, &xx)
	s.Sub(k, &s, &yyyy)
	s.Double(k, &s)

	var xx3, zz2, azz2 field.Element
	xx3.Double(k, &xx)
	xx3.Add(k, &xx3, &xx)
	zz2.Square(k, &zz)
	azz2.Mul(k, &a, &zz2)
	m.Add(k, &xx3, &azz2)

	var s2, mSq, t2 field.Element
	s2.Double(k, &s)
	mSq.Square(k, &m)
	t2.Sub(k, &mSq, &s2)

	var newY, yPlusZ, yPlusZSq field.Element
	var eightYyyy field.Element
	eightYyyy.Double(k, &yyyy)
	eightYyyy.Double(k, &eightYyyy)
	eightYyyy.Double(k, &eightYyyy)

	var sMinusT2 field.Element
	sMinusT2.Sub(k, &s, &t2)
	newY.Mul(k, &m, &sMinusT2)
	newY.Sub(k, &newY, &eightYyyy)

	yPlusZ.Add(k, &p.Y, &p.Z)
	yPlusZSq.Square(k, &yPlusZ)
	var newZ field.Element
	newZ.Sub(k, &yPlusZSq, &yy)
	newZ.Sub(k, &newZ, &zz)

	p.X = t2
	p.Y = newY
	p.Z = newZ
	return p
}

// AddAssign sets p = p + q in place (both Jacobian).
func (p *G1Jac) AddAssign(q *G1Jac) *G1Jac {
	k := FqKernel()
	if q.IsZero() {
		return p
	}
	if p.IsZero() {
		*p = *q
		return p
	}

	var z1z1, z2z2, u1, u2, s1, s2 field.Element
	z1z1.Square(k, &p.Z)
	z2z2.Square(k, &q.Z)
	u1.Mul(k, &p.X, &z2z2)
	u2.Mul(k, &q.X, &z1z1)

	var z1Cubed, z2Cubed field.Element
	z1Cubed.Mul(k, &p.Z, &z1z1)
	z2Cubed.Mul(k, &q.Z, &z2z2)
	s1.Mul(k, &p.Y, &z2Cubed)
	s2.Mul(k, &q.Y, &z1Cubed)

	if u1.Equal(&u2) {
		if !s1.Equal(&s2) {
			return p.SetZero()
		}
		return p.DoubleAssign()
	}

	var h, i, j, r, v field.Element
	h.Sub(k, &u2, &u1)
	var h2 field.Element
	h2.Double(k, &h)
	i.Square(k, &h2)
	j.Mul(k, &h, &i)
	r.Sub(k, &s2, &s1)
	r.Double(k, &r)
	v.Mul(k, &u1, &i)

	var rSq, v2, newX field.Element
	rSq.Square(k, &r)
	v2.Double(k, &v)
	newX.Sub(k, &rSq, &j)
	newX.Sub(k, &newX, &v2)

	var vMinusX, newY, s1j2 field.Element
	vMinusX.Sub(k, &v, &newX)
	newY.Mul(k, &r, &vMinusX)
	s1j2.Mul(k, &s1, &j)
	s1j2.Double(k, &s1j2)
	newY.Sub(k, &newY, &s1j2)

	var zSum, zSumSq, z1z1Plusz2z2, newZ field.Element
	zSum.Add(k, &p.Z, &q.Z)
	zSumSq.Square(k, &zSum)
	z1z1Plusz2z2.Add(k, &z1z1, &z2z2)
	newZ.Sub(k, &zSumSq, &z1z1Plusz2z2)
	newZ.Mul(k, &newZ, &h)

	p.X = newX
	p.Y = newY
	p.Z = newZ
	return p
}

// AddMixed sets p = p + q where q is affine (Z=1 implicitly), the
// cheaper addition Pippenger's bucket accumulation uses for the bases
// (which start out affine) against a Jacobian running bucket sum.
func (p *G1Jac) AddMixed(q *G1Affine) *G1Jac {
	k := FqKernel()
	if q.X.IsZero() && q.Y.IsZero() {
		return p
	}
	if p.IsZero() {
		return p.FromAffine(q)
	}

	var z1z1, u2, s2 field.Element
	z1z1.Square(k, &p.Z)
	u2.Mul(k, &q.X, &z1z1)
	var z1Cubed field.Element
	z1Cubed.Mul(k, &p.Z, &z1z1)
	s2.Mul(k, &q.Y, &z1Cubed)

	if p.X.Equal(&u2) {
		if !p.Y.Equal(&s2) {
			return p.SetZero()
		}
		return p.DoubleAssign()
	}

	var h, hh, i, j, r, v field.Element
	h.Sub(k, &u2, &p.X)
	hh.Square(k, &h)
	i.Double(k, &hh)
	i.Double(k, &i)
	j.Mul(k, &h, &i)
	r.Sub(k, &s2, &p.Y)
	r.Double(k, &r)
	v.Mul(k, &p.X, &i)

	var rSq, v2, newX field.Element
	rSq.Square(k, &r)
	v2.Double(k, &v)
	newX.Sub(k, &rSq, &j)
	newX.Sub(k, &newX, &v2)

	var vMinusX, newY, yj2 field.Element
	vMinusX.Sub(k, &v, &newX)
	newY.Mul(k, &r, &vMinusX)
	yj2.Mul(k, &p.Y, &j)
	yj2.Double(k, &yj2)
	newY.Sub(k, &newY, &yj2)

	var zPlusH, zPlusHSq, newZ field.Element
	zPlusH.Add(k, &p.Z, &h)
	zPlusHSq.Square(k, &zPlusH)
	newZ.Sub(k, &zPlusHSq, &z1z1)
	newZ.Sub(k, &newZ, &hh)

	p.X = newX
	p.Y = newY
	p.Z = newZ
	return p
}

// ScalarMultiplication sets p = s*q via double-and-add from the most
// significant bit down. Used for single-point scalar multiplies (e.g.
// generator checks, small test fixtures); the bulk proving path goes
// through the Pippenger MSM in package msm instead.
func (p *G1Jac) ScalarMultiplication(q *G1Affine, s *field.Element, frKernel *field.Kernel) *G1Jac {
	e := s.ToBigInt(frKernel)
	var acc G1Jac
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
