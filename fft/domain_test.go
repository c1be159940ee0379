package fft

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/mnt753/groth16prover/field"
)

const testModulus = "64513"

func testKernel(t *testing.T) *field.Kernel {
	t.Helper()
	k, err := field.NewKernel("fft-test", testModulus)
	require.NoError(t, err)
	return k
}

func randVector(k *field.Kernel, n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		var e field.Element
		e.SetUint64(k, uint64(1000+i*7919%50000))
		out[i] = e
	}
	return out
}

func TestFFTRoundTrip(t *testing.T) {
	k := testKernel(t)
	require := require.New(t)

	for _, size := range []uint64{1, 2, 4, 8, 16, 32} {
		domain, err := NewDomain(k, size)
		require.NoError(err)

		coeffs := randVector(k, int(domain.Size))
		original := make([]field.Element, len(coeffs))
		copy(original, coeffs)

		require.NoError(domain.FFT(context.Background(), coeffs))
		require.NoError(domain.InvFFT(context.Background(), coeffs))

		for i := range coeffs {
			require.True(coeffs[i].Equal(&original[i]), "size=%d i=%d", size, i)
		}
	}
}

func TestCosetFFTRoundTrip(t *testing.T) {
	k := testKernel(t)
	require := require.New(t)

	domain, err := NewDomain(k, 16)
	require.NoError(err)

	coeffs := randVector(k, int(domain.Size))
	original := make([]field.Element, len(coeffs))
	copy(original, coeffs)

	require.NoError(domain.CosetFFT(context.Background(), coeffs))
	require.NoError(domain.ICosetFFT(context.Background(), coeffs))

	for i := range coeffs {
		require.True(coeffs[i].Equal(&original[i]), "i=%d", i)
	}
}

func TestFFTRoundTripProperty(t *testing.T) {
	k := testKernel(t)
	domain, err := NewDomain(k, 8)
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	elemGen := gen.UInt64Range(0, 64512).Map(func(v uint64) field.Element {
		var e field.Element
		e.SetUint64(k, v)
		return e
	})

	properties.Property("InvFFT(FFT(v)) == v", prop.ForAll(
		func(v0, v1, v2, v3, v4, v5, v6, v7 field.Element) bool {
			coeffs := []field.Element{v0, v1, v2, v3, v4, v5, v6, v7}
			original := make([]field.Element, len(coeffs))
			copy(original, coeffs)
			if domain.FFT(context.Background(), coeffs) != nil {
				return false
			}
			if domain.InvFFT(context.Background(), coeffs) != nil {
				return false
			}
			for i := range coeffs {
				if !coeffs[i].Equal(&original[i]) {
					return false
				}
			}
			return true
		},
		elemGen, elemGen, elemGen, elemGen, elemGen, elemGen, elemGen, elemGen,
	))

	properties.TestingRun(t)
}

func TestAddPolyZ(t *testing.T) {
	k := testKernel(t)
	require := require.New(t)

	domain, err := NewDomain(k, 4)
	require.NoError(err)
	require.Equal(uint64(4), domain.Size)

	var lambda field.Element
	lambda.SetUint64(k, 7)

	coeffs := make([]field.Element, domain.Size+1)
	require.NoError(domain.AddPolyZ(&lambda, coeffs))

	var expectLow, zero, seven field.Element
	zero.SetZero()
	seven.SetUint64(k, 7)
	expectLow.Sub(k, &zero, &seven)

	require.True(coeffs[0].Equal(&expectLow))
	require.True(coeffs[domain.Size].Equal(&seven))
	for i := 1; i < int(domain.Size); i++ {
		require.True(coeffs[i].IsZero())
	}
}

func TestAddPolyZRejectsShortBuffer(t *testing.T) {
	k := testKernel(t)
	domain, err := NewDomain(k, 4)
	require.NoError(t, err)

	var lambda field.Element
	lambda.SetUint64(k, 1)
	coeffs := make([]field.Element, domain.Size)
	require.Error(t, domain.AddPolyZ(&lambda, coeffs))
}

func TestDivideByZOnCosetConstant(t *testing.T) {
	k := testKernel(t)
	require := require.New(t)

	domain, err := NewDomain(k, 8)
	require.NoError(err)

	var zOnCoset, one field.Element
	one.SetOne(k)
	sizeBig := int(domain.Size)
	zOnCoset.Exp(k, &domain.CosetShift, bigFromInt(sizeBig))
	zOnCoset.Sub(k, &zOnCoset, &one)

	vals := make([]field.Element, domain.Size)
	for i := range vals {
		vals[i] = zOnCoset
	}

	require.NoError(domain.DivideByZOnCoset(vals))
	for i := range vals {
		require.True(vals[i].Equal(&one), "i=%d", i)
	}
}

func TestDomainExceedsTwoAdicity(t *testing.T) {
	k := testKernel(t)
	_, err := NewDomain(k, 1<<uint(k.TwoAdicity()+1))
	require.Error(t, err)
}
