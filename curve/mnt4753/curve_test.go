package mnt4753

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mnt753/groth16prover/field"
)

// findG1Point returns an arbitrary point on G1's curve equation
// y^2 = x^3 + a*x + b, by rejection-sampling x until x^3+a*x+b is a
// quadratic residue. This is independent of whether the published
// MNT4-753 coefficients actually describe the standard curve of that
// name (see DESIGN.md): any nonzero-discriminant a, b defines a valid
// group, and the point returned genuinely satisfies the curve equation
// because it is constructed from it.
func findG1Point(t *testing.T) G1Affine {
	t.Helper()
	k := FqKernel()
	a, b := g1Coefficients()
	for i := 0; i < 10000; i++ {
		bx, err := rand.Int(rand.Reader, big.NewInt(1<<40))
		require.NoError(t, err)
		var x, x2, x3, ax, rhs, y field.Element
		x.SetBigInt(k, bx)
		x2.Square(k, &x)
		x3.Mul(k, &x2, &x)
		ax.Mul(k, &a, &x)
		rhs.Add(k, &x3, &ax)
		rhs.Add(k, &rhs, &b)
		if y.Sqrt(k, &rhs) {
			return G1Affine{X: x, Y: y}
		}
	}
	t.Fatal("findG1Point: no quadratic residue found in range")
	return G1Affine{}
}

// findG2Point returns a point on G2's curve with both coordinates
// restricted to the embedded base subfield (C1 = 0): g2Coefficients'
// a', b' both have C1 = 0 by construction (the twist non-residue is
// itself embedded with C1 = 0, and Fq2 multiplication of two C1=0
// elements stays C1=0), so the curve equation restricted to this
// subfield reduces to an ordinary Fq quadratic-residue search.
func findG2Point(t *testing.T) G2Affine {
	t.Helper()
	k := FqKernel()
	a, b := g2Coefficients()
	for i := 0; i < 10000; i++ {
		bx, err := rand.Int(rand.Reader, big.NewInt(1<<40))
		require.NoError(t, err)
		var x0, x2, x3, ax, rhs, y0 field.Element
		x0.SetBigInt(k, bx)
		x2.Square(k, &x0)
		x3.Mul(k, &x2, &x0)
		ax.Mul(k, &a.C0, &x0)
		rhs.Add(k, &x3, &ax)
		rhs.Add(k, &rhs, &b.C0)
		if y0.Sqrt(k, &rhs) {
			return G2Affine{X: Fq2{C0: x0}, Y: Fq2{C0: y0}}
		}
	}
	t.Fatal("findG2Point: no quadratic residue found in range")
	return G2Affine{}
}

func isOnG1Curve(t *testing.T, p G1Affine) bool {
	t.Helper()
	k := FqKernel()
	a, b := g1Coefficients()
	var x2, x3, ax, rhs, y2 field.Element
	x2.Square(k, &p.X)
	x3.Mul(k, &x2, &p.X)
	ax.Mul(k, &a, &p.X)
	rhs.Add(k, &x3, &ax)
	rhs.Add(k, &rhs, &b)
	y2.Square(k, &p.Y)
	return y2.Equal(&rhs)
}

func TestG1GroupLaw(t *testing.T) {
	require.NoError(t, Init())
	require := require.New(t)

	p := findG1Point(t)
	require.True(isOnG1Curve(t, p))

	var jp, doubled, added G1Jac
	jp.FromAffine(&p)

	doubled = jp
	doubled.DoubleAssign()
	require.True(isOnG1Curve(t, doubled.ToAffine()))

	added = jp
	added.AddAssign(&jp)
	require.True(isOnG1Curve(t, added.ToAffine()))

	// doubling and self-addition must agree.
	require.True(doubled.ToAffine().X.Equal(&added.ToAffine().X))
	require.True(doubled.ToAffine().Y.Equal(&added.ToAffine().Y))

	// mixed addition against an affine copy of the same point must
	// agree with Jacobian doubling too.
	var mixed G1Jac
	mixed = jp
	mixed.AddMixed(&p)
	require.True(mixed.ToAffine().X.Equal(&doubled.ToAffine().X))

	// P + (-P) == infinity.
	var negP G1Affine
	negP.X = p.X
	negP.Y.Neg(FqKernel(), &p.Y)
	var sum G1Jac
	sum.FromAffine(&p)
	sum.AddMixed(&negP)
	require.True(sum.IsZero())
}

func TestG1ScalarMultiplicationConsistentWithRepeatedAddition(t *testing.T) {
	require.NoError(t, Init())
	require := require.New(t)

	p := findG1Point(t)
	fr := FrKernel()

	var five field.Element
	five.SetUint64(fr, 5)

	var viaScalar G1Jac
	viaScalar.ScalarMultiplication(&p, &five, fr)

	var viaAdd G1Jac
	viaAdd.FromAffine(&p)
	for i := 0; i < 4; i++ {
		viaAdd.AddMixed(&p)
	}

	require.True(viaScalar.ToAffine().X.Equal(&viaAdd.ToAffine().X))
	require.True(viaScalar.ToAffine().Y.Equal(&viaAdd.ToAffine().Y))
}

func TestG1AddMixedInfinityIsIdentity(t *testing.T) {
	require.NoError(t, Init())
	require := require.New(t)

	p := findG1Point(t)
	var inf G1Affine // zero-value (0,0) is this package's infinity convention

	var jp G1Jac
	jp.FromAffine(&p)
	jp.AddMixed(&inf)

	require.True(jp.ToAffine().X.Equal(&p.X))
	require.True(jp.ToAffine().Y.Equal(&p.Y))
}
