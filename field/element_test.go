package field

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// a small, easy-to-reason-about prime used across the package's tests
// so failures are traceable by hand; the Montgomery machinery doesn't
// care how large the modulus is.
const testModulus = "64513" // prime, 2-adicity high enough for small FFT tests elsewhere

func testKernel(t *testing.T) *Kernel {
	t.Helper()
	k, err := NewKernel("field-test", testModulus)
	require.NoError(t, err)
	return k
}

func elemGen(k *Kernel) gopter.Gen {
	return gen.UInt64Range(0, 64512).Map(func(v uint64) Element {
		var e Element
		e.SetUint64(k, v)
		return e
	})
}

func TestArithmeticAgainstBigInt(t *testing.T) {
	k := testKernel(t)
	modulus := big.NewInt(64513)

	require := require.New(t)
	for a := uint64(0); a < 50; a++ {
		for b := uint64(0); b < 50; b++ {
			var ea, eb Element
			ea.SetUint64(k, a)
			eb.SetUint64(k, b)

			var sum, diff, prod Element
			sum.Add(k, &ea, &eb)
			diff.Sub(k, &ea, &eb)
			prod.Mul(k, &ea, &eb)

			wantSum := new(big.Int).Mod(new(big.Int).Add(big.NewInt(int64(a)), big.NewInt(int64(b))), modulus)
			wantDiff := new(big.Int).Mod(new(big.Int).Sub(big.NewInt(int64(a)), big.NewInt(int64(b))), modulus)
			wantProd := new(big.Int).Mod(new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b))), modulus)

			require.Equal(wantSum, sum.ToBigInt(k))
			require.Equal(wantDiff, diff.ToBigInt(k))
			require.Equal(wantProd, prod.ToBigInt(k))
		}
	}
}

func TestInverse(t *testing.T) {
	k := testKernel(t)
	require := require.New(t)

	var zero Element
	require.Error(zero.Inverse(k, &zero))

	for v := uint64(1); v < 200; v++ {
		var e, inv, prod, one Element
		e.SetUint64(k, v)
		require.NoError(inv.Inverse(k, &e))
		prod.Mul(k, &e, &inv)
		one.SetOne(k)
		require.True(prod.Equal(&one), "v=%d", v)
	}
}

func TestSqrtRoundTrip(t *testing.T) {
	k := testKernel(t)
	require := require.New(t)

	for v := uint64(1); v < 500; v++ {
		var sq, root Element
		var xe Element
		xe.SetUint64(k, v)
		sq.Mul(k, &xe, &xe)
		ok := root.Sqrt(k, &sq)
		require.True(ok)
		var check Element
		check.Mul(k, &root, &root)
		require.True(check.Equal(&sq), "v=%d", v)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	k := testKernel(t)
	require := require.New(t)

	for v := uint64(0); v < 300; v++ {
		var e, back Element
		e.SetUint64(k, v)
		b := e.ToBytes(k)
		require.NoError(back.SetBytes(k, b))
		require.True(e.Equal(&back))
	}
}

func TestSetBytesRejectsUnreduced(t *testing.T) {
	k := testKernel(t)
	require := require.New(t)

	// encode the modulus itself (not a Montgomery-form value, just its
	// plain little-endian bytes) — SetBytes must reject it as
	// unreduced, since every canonical value is strictly less than it.
	modBig := k.modulus.toBigInt()
	b := make([]byte, byteLen())
	limbs := limbsFromBigInt(modBig)
	for i := 0; i < NumLimbs; i++ {
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(limbs[i] >> (uint(j) * 8))
		}
	}

	var dst Element
	err := dst.SetBytes(k, b)
	require.Error(err)
}

func TestFieldPropertiesCommutativeAssociative(t *testing.T) {
	k := testKernel(t)
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("addition commutes", prop.ForAll(
		func(a, b Element) bool {
			var x, y Element
			x.Add(k, &a, &b)
			y.Add(k, &b, &a)
			return x.Equal(&y)
		},
		elemGen(k), elemGen(k),
	))

	properties.Property("multiplication associates", prop.ForAll(
		func(a, b, c Element) bool {
			var ab, abC, bc, aBc Element
			ab.Mul(k, &a, &b)
			abC.Mul(k, &ab, &c)
			bc.Mul(k, &b, &c)
			aBc.Mul(k, &a, &bc)
			return abC.Equal(&aBc)
		},
		elemGen(k), elemGen(k), elemGen(k),
	))

	properties.Property("a - a == 0", prop.ForAll(
		func(a Element) bool {
			var diff Element
			diff.Sub(k, &a, &a)
			return diff.IsZero()
		},
		elemGen(k),
	))

	properties.TestingRun(t)
}
