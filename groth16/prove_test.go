package groth16

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mnt753/groth16prover/curve/mnt4753"
	"github.com/mnt753/groth16prover/field"
)

// buildToyProvingKey constructs a structurally valid ProvingKey/Witness
// pair of the §6 shapes (D constraints, M wires). This core performs no
// pairing check and never verifies curve membership of its inputs
// (that's the verifier's job, out of scope, per §1), so arbitrary but
// distinct field elements for every point's (X, Y) coordinates exercise
// every arithmetic code path (add/double/mixed-add) the same way
// genuine curve points would.
func buildToyProvingKey(t *testing.T, d, m int) (*ProvingKey[mnt4753.G1Affine, mnt4753.G2Affine], *Witness) {
	t.Helper()
	require.NoError(t, mnt4753.Init())
	fq := mnt4753.FqKernel()
	fr := mnt4753.FrKernel()

	g1Point := func(seed uint64) mnt4753.G1Affine {
		var x, y field.Element
		x.SetUint64(fq, seed*2+1)
		y.SetUint64(fq, seed*2+2)
		return mnt4753.G1Affine{X: x, Y: y}
	}
	g2Point := func(seed uint64) mnt4753.G2Affine {
		var x0, x1, y0, y1 field.Element
		x0.SetUint64(fq, seed*4+1)
		x1.SetUint64(fq, seed*4+2)
		y0.SetUint64(fq, seed*4+3)
		y1.SetUint64(fq, seed*4+4)
		return mnt4753.G2Affine{X: mnt4753.Fq2{C0: x0, C1: x1}, Y: mnt4753.Fq2{C0: y0, C1: y1}}
	}

	a := make([]mnt4753.G1Affine, m+1)
	b1 := make([]mnt4753.G1Affine, m+1)
	b2 := make([]mnt4753.G2Affine, m+1)
	for i := range a {
		a[i] = g1Point(uint64(i + 1))
		b1[i] = g1Point(uint64(i + 101))
		b2[i] = g2Point(uint64(i + 1))
	}
	l := make([]mnt4753.G1Affine, m-1)
	for i := range l {
		l[i] = g1Point(uint64(i + 201))
	}
	tVec := make([]mnt4753.G1Affine, d)
	for i := range tVec {
		tVec[i] = g1Point(uint64(i + 301))
	}

	ca := make([]field.Element, d+1)
	cb := make([]field.Element, d+1)
	cc := make([]field.Element, d+1)
	for i := range ca {
		ca[i].SetUint64(fr, uint64(2+i))
		cb[i].SetUint64(fr, uint64(3+i))
		cc[i].SetUint64(fr, uint64(5+i))
	}

	pk := &ProvingKey[mnt4753.G1Affine, mnt4753.G2Affine]{
		D: d, M: m,
		CA: ca, CB: cb, CC: cc,
		A: a, B1: b1, B2: b2, L: l, T: tVec,
	}

	w := make([]field.Element, m+1)
	for i := range w {
		w[i].SetUint64(fr, uint64(1+i))
	}
	var r field.Element
	r.SetUint64(fr, 42)
	witness := &Witness{W: w, R: r}

	return pk, witness
}

func TestProveEndToEnd(t *testing.T) {
	require := require.New(t)
	pk, w := buildToyProvingKey(t, 3, 4)

	proof, err := ProveMNT4753(context.Background(), pk, w)
	require.NoError(err)
	require.NotNil(proof)
}

func TestProveDeterministic(t *testing.T) {
	require := require.New(t)
	pk, w := buildToyProvingKey(t, 3, 4)

	p1, err := ProveMNT4753(context.Background(), pk, w)
	require.NoError(err)
	p2, err := ProveMNT4753(context.Background(), pk, w)
	require.NoError(err)

	require.True(p1.PiA.X.Equal(&p2.PiA.X))
	require.True(p1.PiA.Y.Equal(&p2.PiA.Y))
	require.True(p1.PiH.X.Equal(&p2.PiH.X))
	require.True(p1.PiH.Y.Equal(&p2.PiH.Y))
}

func TestProveChunkInvariance(t *testing.T) {
	require := require.New(t)
	pk, w := buildToyProvingKey(t, 3, 4)

	p1, err := ProveMNT4753(context.Background(), pk, w, WithNbTasks(1))
	require.NoError(err)
	p2, err := ProveMNT4753(context.Background(), pk, w, WithNbTasks(8))
	require.NoError(err)

	require.True(p1.PiA.X.Equal(&p2.PiA.X))
	require.True(p1.PiL.X.Equal(&p2.PiL.X))
	require.True(p1.PiH.X.Equal(&p2.PiH.X))
}

func TestProveRejectsMismatchedWitnessLength(t *testing.T) {
	require := require.New(t)
	pk, w := buildToyProvingKey(t, 3, 4)
	w.W = w.W[:len(w.W)-1]

	_, err := ProveMNT4753(context.Background(), pk, w)
	require.Error(err)
}

func TestWireFormatRoundTrip(t *testing.T) {
	require := require.New(t)
	pk, w := buildToyProvingKey(t, 3, 4)
	fr := mnt4753.FrKernel()

	var pkBuf, wBuf, proofBuf bytes.Buffer
	require.NoError(WriteProvingKey[mnt4753.G1Affine, mnt4753.G2Affine](&pkBuf, pk, fr, mnt4753.G1Codec{}, mnt4753.G2Codec{}))
	require.NoError(WriteWitness(&wBuf, w, fr))

	loadedPK, err := LoadProvingKey[mnt4753.G1Affine, mnt4753.G2Affine](&pkBuf, fr, mnt4753.G1Codec{}, mnt4753.G2Codec{}, mnt4753.IsInfinityG1, "test")
	require.NoError(err)
	loadedW, err := LoadWitness(&wBuf, fr, "test")
	require.NoError(err)

	require.Equal(pk.D, loadedPK.D)
	require.Equal(pk.M, loadedPK.M)
	require.Len(loadedW.W, len(w.W))

	proof, err := ProveMNT4753(context.Background(), loadedPK, loadedW)
	require.NoError(err)
	require.NoError(WriteProof[mnt4753.G1Affine, mnt4753.G2Affine](&proofBuf, proof, mnt4753.G1Codec{}, mnt4753.G2Codec{}))

	loadedProof, err := ReadProof[mnt4753.G1Affine, mnt4753.G2Affine](&proofBuf, mnt4753.G1Codec{}, mnt4753.G2Codec{}, "test")
	require.NoError(err)
	require.True(proof.PiA.X.Equal(&loadedProof.PiA.X))
	require.True(proof.PiH.X.Equal(&loadedProof.PiH.X))
}
