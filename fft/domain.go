// Package fft implements the radix-2 evaluation domain the Groth16
// quotient-polynomial computation needs: forward/inverse NTT, coset
// shifts, and the vanishing-polynomial helpers used to divide the
// witness polynomial's numerator by Z(x) = x^m - 1. Grounded on the
// teacher's PLONK setup's use of an `fft.Domain` (before that file was
// adapted away per DESIGN.md), generalized from BN/BW curves to this
// module's MNT4-753/MNT6-753 scalar fields.
package fft

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/mnt753/groth16prover/errs"
	"github.com/mnt753/groth16prover/field"
)

func bigFromInt(v int) *big.Int { return big.NewInt(int64(v)) }

// Domain is an evaluation domain of size Size = 2^logSize over the
// field owned by Kernel: the twiddle factors for the forward and
// inverse transforms, and the coset shift used to evaluate off the
// domain's own roots of unity, where Z(x) vanishes. Built once per
// distinct polynomial degree the pipeline needs and reused across
// every FFT call against it, matching "twiddle tables are read-only
// after initialization."
type Domain struct {
	Kernel *field.Kernel

	Size       uint64
	logSize    int
	Generator  field.Element
	GeneratorInv field.Element
	SizeInv    field.Element

	CosetShift    field.Element
	CosetShiftInv field.Element

	twiddles    [][]field.Element // twiddles[i] holds the powers needed at FFT stage i
	twiddlesInv [][]field.Element
}

// NewDomain builds the evaluation domain of the smallest power of two
// >= m. Returns a DomainError if log2 of that size exceeds the field's
// 2-adicity.
func NewDomain(k *field.Kernel, m uint64) (*Domain, error) {
	logSize := 0
	size := uint64(1)
	for size < m {
		size <<= 1
		logSize++
	}
	if logSize > k.TwoAdicity() {
		return nil, &errs.DomainError{Op: "fft.NewDomain", Reason: "requested domain exceeds field's two-adicity"}
	}

	root := k.PrimitiveRootOfUnity()
	// root has order 2^TwoAdicity(); raise it to 2^(TwoAdicity()-logSize)
	// to get an element of order exactly `size`.
	gen := root
	for i := 0; i < k.TwoAdicity()-logSize; i++ {
		gen.Square(k, &gen)
	}

	var genInv field.Element
	if err := genInv.Inverse(k, &gen); err != nil {
		return nil, &errs.DomainError{Op: "fft.NewDomain", Reason: "domain generator not invertible"}
	}

	var sizeElem, sizeInv field.Element
	sizeElem.SetUint64(k, size)
	if err := sizeInv.Inverse(k, &sizeElem); err != nil {
		return nil, &errs.DomainError{Op: "fft.NewDomain", Reason: "domain size not invertible in field"}
	}

	// CosetShift is the Kernel's full 2^s-order root of unity. For
	// logSize < s it is not a root of unity of the domain's order, so
	// Z(x) is nonzero on the coset. For logSize == s the shift lies in
	// the domain itself: Z vanishes on the coset and DivideByZOnCoset
	// returns a DomainError.
	coset := k.PrimitiveRootOfUnity()
	var cosetInv field.Element
	if err := cosetInv.Inverse(k, &coset); err != nil {
		return nil, &errs.DomainError{Op: "fft.NewDomain", Reason: "coset shift not invertible"}
	}

	d := &Domain{
		Kernel:        k,
		Size:          size,
		logSize:       logSize,
		Generator:     gen,
		GeneratorInv:  genInv,
		SizeInv:       sizeInv,
		CosetShift:    coset,
		CosetShiftInv: cosetInv,
	}
	d.buildTwiddles()
	return d, nil
}

func (d *Domain) buildTwiddles() {
	k := d.Kernel
	d.twiddles = make([][]field.Element, d.logSize)
	d.twiddlesInv = make([][]field.Element, d.logSize)

	g := d.Generator
	gInv := d.GeneratorInv
	for stage := d.logSize - 1; stage >= 0; stage-- {
		half := uint64(1) << uint(stage)
		tw := make([]field.Element, half)
		twInv := make([]field.Element, half)
		tw[0].SetOne(k)
		twInv[0].SetOne(k)
		for i := uint64(1); i < half; i++ {
			tw[i].Mul(k, &tw[i-1], &g)
			twInv[i].Mul(k, &twInv[i-1], &gInv)
		}
		d.twiddles[stage] = tw
		d.twiddlesInv[stage] = twInv
		var gSq, gInvSq field.Element
		gSq.Square(k, &g)
		gInvSq.Square(k, &gInv)
		g, gInv = gSq, gInvSq
	}
}

// bitReverse permutes values in place into bit-reversed order, the
// standard prelude to an in-place iterative Cooley-Tukey butterfly.
func bitReverse(values []field.Element) {
	n := len(values)
	for i, j := 0, 0; i < n; i++ {
		if i < j {
			values[i], values[j] = values[j], values[i]
		}
		bit := n >> 1
		for ; bit > 0 && j&bit != 0; bit >>= 1 {
			j &^= bit
		}
		j |= bit
	}
}

func (d *Domain) butterfly(ctx context.Context, values []field.Element, twiddles [][]field.Element) error {
	k := d.Kernel
	n := len(values)
	bitReverse(values)

	for stage := 0; stage < d.logSize; stage++ {
		select {
		case <-ctx.Done():
			return &errs.Cancelled{Stage: "fft"}
		default:
		}
		half := 1 << uint(stage)
		step := half * 2
		tw := twiddles[stage]
		for start := 0; start < n; start += step {
			for i := 0; i < half; i++ {
				var t field.Element
				t.Mul(k, &values[start+half+i], &tw[i])
				var lo, hi field.Element
				lo.Add(k, &values[start+i], &t)
				hi.Sub(k, &values[start+i], &t)
				values[start+i] = lo
				values[start+half+i] = hi
			}
		}
	}
	return nil
}

// FFT evaluates the polynomial with coefficients `values` at every
// point of the domain, in place. len(values) must equal d.Size.
func (d *Domain) FFT(ctx context.Context, values []field.Element) error {
	if uint64(len(values)) != d.Size {
		return &errs.InvalidArgument{Op: "fft.FFT", Reason: "length must equal domain size"}
	}
	return d.butterfly(ctx, values, d.twiddles)
}

// InvFFT interpolates domain evaluations back to coefficients, in
// place. len(values) must equal d.Size.
func (d *Domain) InvFFT(ctx context.Context, values []field.Element) error {
	if uint64(len(values)) != d.Size {
		return &errs.InvalidArgument{Op: "fft.InvFFT", Reason: "length must equal domain size"}
	}
	if err := d.butterfly(ctx, values, d.twiddlesInv); err != nil {
		return err
	}
	k := d.Kernel
	for i := range values {
		values[i].Mul(k, &values[i], &d.SizeInv)
	}
	return nil
}

// CosetFFT evaluates `values` on the coset CosetShift*domain, by
// scaling coefficient i by CosetShift^i before running FFT. This is
// how the H(x) computation evaluates the QAP numerator without ever
// hitting the domain's own roots of unity (where Z(x) is zero and
// division would be undefined).
func (d *Domain) CosetFFT(ctx context.Context, values []field.Element) error {
	if err := d.scaleByCosetPowers(ctx, values, d.CosetShift); err != nil {
		return err
	}
	return d.FFT(ctx, values)
}

// ICosetFFT is CosetFFT's inverse: InvFFT, then un-scale by the coset
// shift's inverse powers.
func (d *Domain) ICosetFFT(ctx context.Context, values []field.Element) error {
	if err := d.InvFFT(ctx, values); err != nil {
		return err
	}
	return d.scaleByCosetPowers(ctx, values, d.CosetShiftInv)
}

func (d *Domain) scaleByCosetPowers(ctx context.Context, values []field.Element, shift field.Element) error {
	k := d.Kernel
	g, ctxGroup := errgroup.WithContext(ctx)
	workers := 8
	if workers > len(values) {
		workers = 1
	}
	chunk := (len(values) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(values) {
			end = len(values)
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			select {
			case <-ctxGroup.Done():
				return &errs.Cancelled{Stage: "fft"}
			default:
			}
			var power field.Element
			power.Exp(k, &shift, bigFromInt(start))
			for i := start; i < end; i++ {
				values[i].Mul(k, &values[i], &power)
				power.Mul(k, &power, &shift)
			}
			return nil
		})
	}
	return g.Wait()
}

// AddPolyZ adds lambda times the vanishing polynomial Z(x) = x^Size - 1
// into `coeffs` in place: Z only has two nonzero coefficients (the
// constant term -1 and the leading term 1), so this is two field
// operations rather than a full polynomial addition. len(coeffs) must
// be at least Size+1.
func (d *Domain) AddPolyZ(lambda *field.Element, coeffs []field.Element) error {
	if uint64(len(coeffs)) <= d.Size {
		return &errs.InvalidArgument{Op: "fft.AddPolyZ", Reason: "coeffs must have length > domain size"}
	}
	k := d.Kernel
	coeffs[0].Sub(k, &coeffs[0], lambda)
	coeffs[d.Size].Add(k, &coeffs[d.Size], lambda)
	return nil
}

// DivideByZOnCoset divides each evaluation in `evals` (assumed to be
// the numerator A*B-C evaluated on the CosetShift coset) by Z(x)'s
// value on that same coset, in place. Z is constant across every point
// of a multiplicative coset of the evaluation domain (coset^Size - 1 is
// the same value everywhere on it), so this is a single field
// inversion shared by every point rather than Size separate ones.
func (d *Domain) DivideByZOnCoset(evals []field.Element) error {
	k := d.Kernel
	var zOnCoset, one field.Element
	one.SetOne(k)
	zOnCoset.Exp(k, &d.CosetShift, bigFromInt(int(d.Size)))
	zOnCoset.Sub(k, &zOnCoset, &one)

	var zInv field.Element
	if err := zInv.Inverse(k, &zOnCoset); err != nil {
		return &errs.DomainError{Op: "fft.DivideByZOnCoset", Reason: "vanishing polynomial evaluates to zero on coset"}
	}
	for i := range evals {
		evals[i].Mul(k, &evals[i], &zInv)
	}
	return nil
}
