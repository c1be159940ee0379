package mnt4753

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mnt753/groth16prover/field"
	"github.com/mnt753/groth16prover/msm"
)

// naiveMSM computes sum_i scalars[i]*bases[i] via repeated
// ScalarMultiplication + AddAssign, the textbook definition the
// windowed Pippenger implementation is checked against.
func naiveMSM(t *testing.T, bases []G1Affine, scalars []field.Element) G1Jac {
	t.Helper()
	fr := FrKernel()
	var acc G1Jac
	acc.SetZero()
	for i := range bases {
		var term G1Jac
		term.ScalarMultiplication(&bases[i], &scalars[i], fr)
		acc.AddAssign(&term)
	}
	return acc
}

func TestMSMAgainstNaive(t *testing.T) {
	require.NoError(t, Init())
	require := require.New(t)
	fr := FrKernel()

	const n = 37
	bases := make([]G1Affine, n)
	scalars := make([]field.Element, n)
	for i := 0; i < n; i++ {
		bases[i] = findG1Point(t)
		scalars[i].SetUint64(fr, uint64(3+i*101))
	}

	want := naiveMSM(t, bases, scalars)

	got, err := msm.MSM[G1Jac, G1Affine, *G1Jac](context.Background(), fr, bases, scalars, msm.DefaultConfig())
	require.NoError(err)

	gotAff, wantAff := got.ToAffine(), want.ToAffine()
	require.True(gotAff.X.Equal(&wantAff.X))
	require.True(gotAff.Y.Equal(&wantAff.Y))
}

func TestMSMConcreteSmallScenario(t *testing.T) {
	require.NoError(t, Init())
	require := require.New(t)
	fr := FrKernel()

	g := findG1Point(t)
	var gJac, g2, g3 G1Jac
	gJac.FromAffine(&g)
	g2 = gJac
	g2.DoubleAssign()
	g3 = g2
	g3.AddMixed(&g)

	bases := []G1Affine{g, g2.ToAffine(), g3.ToAffine()}
	scalars := make([]field.Element, 3)
	scalars[0].SetUint64(fr, 4)
	scalars[1].SetUint64(fr, 5)
	scalars[2].SetUint64(fr, 6)

	got, err := msm.MSM[G1Jac, G1Affine, *G1Jac](context.Background(), fr, bases, scalars, msm.DefaultConfig())
	require.NoError(err)

	// 4*G + 5*(2G) + 6*(3G) = (4+10+18)*G = 32*G
	var expect G1Jac
	var thirtyTwo field.Element
	thirtyTwo.SetUint64(fr, 32)
	expect.ScalarMultiplication(&g, &thirtyTwo, fr)

	gotAff, expectAff := got.ToAffine(), expect.ToAffine()
	require.True(gotAff.X.Equal(&expectAff.X))
	require.True(gotAff.Y.Equal(&expectAff.Y))
}

func TestMSMChunkInvariance(t *testing.T) {
	require.NoError(t, Init())
	require := require.New(t)
	fr := FrKernel()

	const n = 50
	bases := make([]G1Affine, n)
	scalars := make([]field.Element, n)
	for i := 0; i < n; i++ {
		bases[i] = findG1Point(t)
		scalars[i].SetUint64(fr, uint64(17+i*31))
	}

	one, err := msm.MSM[G1Jac, G1Affine, *G1Jac](context.Background(), fr, bases, scalars, msm.Config{Chunks: 1})
	require.NoError(err)
	many, err := msm.MSM[G1Jac, G1Affine, *G1Jac](context.Background(), fr, bases, scalars, msm.Config{Chunks: 16})
	require.NoError(err)

	oneAff, manyAff := one.ToAffine(), many.ToAffine()
	require.True(oneAff.X.Equal(&manyAff.X))
	require.True(oneAff.Y.Equal(&manyAff.Y))
}

func TestMSMEmpty(t *testing.T) {
	require.NoError(t, Init())
	require := require.New(t)
	fr := FrKernel()

	got, err := msm.MSM[G1Jac, G1Affine, *G1Jac](context.Background(), fr, nil, nil, msm.DefaultConfig())
	require.NoError(err)
	require.True(got.IsZero())
}

func TestKCMSMDecomposesIntoIndependentMSMs(t *testing.T) {
	require.NoError(t, Init())
	require := require.New(t)
	fr := FrKernel()

	const n = 10
	basesG1 := make([]G1Affine, n)
	basesG2 := make([]G2Affine, n)
	scalars := make([]field.Element, n)
	for i := 0; i < n; i++ {
		basesG1[i] = findG1Point(t)
		basesG2[i] = findG2Point(t)
		scalars[i].SetUint64(fr, uint64(5+i*13))
	}

	kc, err := msm.KCMSM[G2Jac, G2Affine, *G2Jac, G1Jac, G1Affine, *G1Jac](
		context.Background(), fr, basesG2, basesG1, scalars, msm.DefaultConfig())
	require.NoError(err)

	wantA, err := msm.MSM[G2Jac, G2Affine, *G2Jac](context.Background(), fr, basesG2, scalars, msm.DefaultConfig())
	require.NoError(err)
	wantB, err := msm.MSM[G1Jac, G1Affine, *G1Jac](context.Background(), fr, basesG1, scalars, msm.DefaultConfig())
	require.NoError(err)

	gotAAff, wantAAff := kc.A.ToAffine(), wantA.ToAffine()
	require.True(gotAAff.X.Equal(&wantAAff.X))
	require.True(gotAAff.Y.Equal(&wantAAff.Y))

	gotBAff, wantBAff := kc.B.ToAffine(), wantB.ToAffine()
	require.True(gotBAff.X.Equal(&wantBAff.X))
	require.True(gotBAff.Y.Equal(&wantBAff.Y))
}
