package groth16

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mnt753/groth16prover/curve/mnt4753"
	"github.com/mnt753/groth16prover/fft"
	"github.com/mnt753/groth16prover/field"
)

func randFrVector(fr *field.Kernel, n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i].SetUint64(fr, uint64(11+i*97))
	}
	return out
}

// TestComputeHBlindingLinearity checks property 8: with d1=d2=d3=0 (a
// zero blinding scalar), the emitted coefficients are exactly the
// unblinded quotient-polynomial coefficients the coset/FFT pipeline
// would produce on its own, with no additive blinding term mixed in.
func TestComputeHBlindingLinearity(t *testing.T) {
	require.NoError(t, mnt4753.Init())
	require := require.New(t)
	fr := mnt4753.FrKernel()

	const d = 5
	ca := randFrVector(fr, d+1)
	cb := randFrVector(fr, d+1)
	cc := make([]field.Element, d+1)
	for i := range cc {
		cc[i].Mul(fr, &ca[i], &cb[i])
	}

	var zero field.Element
	zero.SetZero()

	ctx := context.Background()
	got, err := computeH(ctx, fr, ca, cb, cc, d, &zero)
	require.NoError(err)

	domain, err := fft.NewDomain(fr, uint64(d+1))
	require.NoError(err)
	m := domain.Size

	caC := padded(ca, m)
	cbC := padded(cb, m)
	ccC := padded(cc, m)
	require.NoError(domain.InvFFT(ctx, caC))
	require.NoError(domain.InvFFT(ctx, cbC))
	require.NoError(domain.CosetFFT(ctx, caC))
	require.NoError(domain.CosetFFT(ctx, cbC))

	hTmp := make([]field.Element, m)
	for i := range hTmp {
		hTmp[i].Mul(fr, &caC[i], &cbC[i])
	}
	require.NoError(domain.InvFFT(ctx, ccC))
	require.NoError(domain.CosetFFT(ctx, ccC))
	for i := range hTmp {
		hTmp[i].Sub(fr, &hTmp[i], &ccC[i])
	}
	require.NoError(domain.DivideByZOnCoset(hTmp))
	require.NoError(domain.ICosetFFT(ctx, hTmp))

	require.Len(got, int(m)+1)
	for i := uint64(0); i < m; i++ {
		require.True(got[i].Equal(&hTmp[i]), "i=%d", i)
	}
	require.True(got[m].IsZero())
}

func TestComputeHDeterministic(t *testing.T) {
	require.NoError(t, mnt4753.Init())
	require := require.New(t)
	fr := mnt4753.FrKernel()

	const d = 7
	ca := randFrVector(fr, d+1)
	cb := randFrVector(fr, d+1)
	cc := randFrVector(fr, d+1)
	var r field.Element
	r.SetUint64(fr, 1234)

	ctx := context.Background()
	got1, err := computeH(ctx, fr, ca, cb, cc, d, &r)
	require.NoError(err)
	got2, err := computeH(ctx, fr, ca, cb, cc, d, &r)
	require.NoError(err)

	require.Len(got2, len(got1))
	for i := range got1 {
		require.True(got1[i].Equal(&got2[i]), "i=%d", i)
	}
}

func TestComputeHDoesNotMutateInputs(t *testing.T) {
	require.NoError(t, mnt4753.Init())
	require := require.New(t)
	fr := mnt4753.FrKernel()

	const d = 3
	ca := randFrVector(fr, d+1)
	cb := randFrVector(fr, d+1)
	cc := randFrVector(fr, d+1)
	caOrig := append([]field.Element(nil), ca...)
	cbOrig := append([]field.Element(nil), cb...)
	ccOrig := append([]field.Element(nil), cc...)

	var r field.Element
	r.SetUint64(fr, 9)

	_, err := computeH(context.Background(), fr, ca, cb, cc, d, &r)
	require.NoError(err)

	for i := range ca {
		require.True(ca[i].Equal(&caOrig[i]))
		require.True(cb[i].Equal(&cbOrig[i]))
		require.True(cc[i].Equal(&ccOrig[i]))
	}
}
