package groth16

import (
	"context"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mnt753/groth16prover/errs"
	"github.com/mnt753/groth16prover/fft"
	"github.com/mnt753/groth16prover/field"
	"github.com/mnt753/groth16prover/internal/dag"
	"github.com/mnt753/groth16prover/msm"
)

// filterInfinity drops the bases/scalars pairs flagged in infinity,
// mirroring the teacher's wireValuesA/wireValuesB compaction (pk.G1.A,
// pk.G1.B and pk.G2.B "may have a significant number of points at
// infinity" that the MSM should never spend a bucket-add on). Returns
// the input slices unchanged when infinity is nil or empty, so the
// common all-non-infinity case costs nothing extra.
func filterInfinity[P any](bases []P, scalars []field.Element, infinity *bitset.BitSet) ([]P, []field.Element) {
	if infinity == nil || infinity.None() {
		return bases, scalars
	}
	n := len(bases) - int(infinity.Count())
	if n < 0 {
		n = 0
	}
	outBases := make([]P, 0, n)
	outScalars := make([]field.Element, 0, n)
	for i := range bases {
		if infinity.Test(uint(i)) {
			continue
		}
		outBases = append(outBases, bases[i])
		outScalars = append(outScalars, scalars[i])
	}
	return outBases, outScalars
}

// jacPoint is the full constraint the prove pipeline needs from a
// curve's Jacobian point type: everything msm.MSM needs, plus the
// affine projection the final proof is emitted in.
type jacPoint[S any, A any] interface {
	*S
	SetZero() *S
	DoubleAssign() *S
	AddAssign(*S) *S
	AddMixed(*A) *S
	ToAffine() A
}

// ProverOption configures a Prove call, mirroring the teacher's
// `backend.ProverOption`/`NewProverConfig` functional-options shape.
type ProverOption func(*proverConfig) error

type proverConfig struct {
	nbChunks int
	logger   zerolog.Logger
}

// WithNbTasks overrides the Pippenger chunk fan-out (default:
// runtime.NumCPU(), via msm.DefaultConfig).
func WithNbTasks(n int) ProverOption {
	return func(c *proverConfig) error {
		if n < 1 {
			return &errs.InvalidArgument{Op: "groth16.WithNbTasks", Reason: "n must be >= 1"}
		}
		c.nbChunks = n
		return nil
	}
}

// WithLogger attaches a zerolog.Logger the pipeline emits one debug
// line per stage to. Defaults to a disabled logger.
func WithLogger(l zerolog.Logger) ProverOption {
	return func(c *proverConfig) error {
		c.logger = l
		return nil
	}
}

func newProverConfig(opts ...ProverOption) (*proverConfig, error) {
	c := &proverConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *proverConfig) msmConfig() msm.Config {
	if c.nbChunks > 0 {
		return msm.Config{Chunks: c.nbChunks}
	}
	return msm.DefaultConfig()
}

// Prove runs the Groth16 prover over a generic curve instantiation:
// G1/G2 are the affine point types, S1/S2 their Jacobian counterparts.
// Stage 1 (the four witness MSMs) and Stage 2 (H computation, itself
// FFT-bound) are scheduled as independent nodes of a small DAG adapted
// from the teacher's internal/dag scheduler, joined by a final
// proof-assembly node — mirroring "a happens-before edge is required
// before reading any buffer written in a prior stage."
//
// Per §4.D the emitted proof is the five raw MSM outputs (pi_A, pi_B1,
// pi_B2, pi_L, pi_H); this core performs no further delta-blinding
// fold, since ProvingKey carries no delta/alpha/beta basis points.
func Prove[G1 any, S1 any, JG1 jacPoint[S1, G1], G2 any, S2 any, JG2 jacPoint[S2, G2]](
	ctx context.Context, fr *field.Kernel,
	pk *ProvingKey[G1, G2], w *Witness, opts ...ProverOption,
) (*Proof[G1, G2], error) {
	if len(w.W) != pk.M+1 {
		return nil, errs.Wrap("witness-msms", &errs.InvalidArgument{Op: "groth16.Prove", Reason: "witness length must equal M+1"})
	}
	if len(pk.L) != pk.M-1 {
		return nil, errs.Wrap("witness-msms", &errs.InvalidArgument{Op: "groth16.Prove", Reason: "L must have length M-1"})
	}

	cfg, err := newProverConfig(opts...)
	if err != nil {
		return nil, errs.Wrap("config", err)
	}
	mcfg := cfg.msmConfig()
	log := cfg.logger.With().Str("kernel", fr.Name()).Logger()

	// The DAG mirrors the pipeline's actual dependency shape: proof
	// assembly depends on both witness-msms and compute-h, which share
	// no data and so land in the same level. The errgroup below is
	// what actually gates execution; this is bookkeeping that documents
	// the same shape the teacher's scheduler would compute for a wider
	// pipeline.
	const (
		stage1Node = iota
		stage2Node
		assembleNode
		nbSchedNodes
	)
	sched := dag.New(nbSchedNodes)
	sched.AddNode(dag.Node(stage1Node))
	sched.AddNode(dag.Node(stage2Node))
	sched.AddNode(dag.Node(assembleNode))
	sched.AddEdges(assembleNode, []int{stage1Node, stage2Node})
	log.Debug().Int("levels", len(sched.Levels())).Msg("scheduled prove pipeline")

	var piA, piL *S1
	var kc msm.KCResult[S2, S1]
	var coeffsForH []field.Element

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		basesA, scalarsA := filterInfinity(pk.A, w.W, pk.InfinityA)
		if piA, err = msm.MSM[S1, G1, JG1](gctx, fr, basesA, scalarsA, mcfg); err != nil {
			return errs.Wrap("witness-msms", err)
		}
		if piL, err = msm.MSM[S1, G1, JG1](gctx, fr, pk.L, w.W[2:], mcfg); err != nil {
			return errs.Wrap("witness-msms", err)
		}
		// B1 and B2 share the same zero-wire indices (one knowledge
		// commitment scalar per wire), so InfinityB filters both legs.
		basesB2, scalarsB := filterInfinity(pk.B2, w.W, pk.InfinityB)
		basesB1, _ := filterInfinity(pk.B1, w.W, pk.InfinityB)
		if kc, err = msm.KCMSM[S2, G2, JG2, S1, G1, JG1](gctx, fr, basesB2, basesB1, scalarsB, mcfg); err != nil {
			return errs.Wrap("witness-msms", err)
		}
		log.Debug().Dur("took", time.Since(start)).Msg("witness MSMs done")
		return nil
	})

	var piH *S1
	g.Go(func() error {
		start := time.Now()
		var err error
		coeffsForH, err = computeH(gctx, fr, pk.CA, pk.CB, pk.CC, pk.D, &w.R)
		if err != nil {
			return errs.Wrap("compute-h", err)
		}
		// §4.D Stage 3: the MSM over T consumes only the first D-1
		// entries, paired with coefficients_for_H[0..D-1] — H has
		// degree at most D-2, so the last slot is always zero on a
		// satisfied QAP (property 7).
		n := pk.D - 1
		if n < 0 {
			n = 0
		}
		if n > len(pk.T) {
			n = len(pk.T)
		}
		if n > len(coeffsForH) {
			n = len(coeffsForH)
		}
		if piH, err = msm.MSM[S1, G1, JG1](gctx, fr, pk.T[:n], coeffsForH[:n], mcfg); err != nil {
			return errs.Wrap("compute-h", err)
		}
		log.Debug().Dur("took", time.Since(start)).Msg("H computation done")
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	start := time.Now()
	proof := &Proof[G1, G2]{
		PiA:  JG1(piA).ToAffine(),
		PiB1: JG1(kc.B).ToAffine(),
		PiB2: JG2(kc.A).ToAffine(),
		PiL:  JG1(piL).ToAffine(),
		PiH:  JG1(piH).ToAffine(),
	}
	log.Debug().Dur("took", time.Since(start)).Msg("proof assembly done")

	return proof, nil
}

// computeH computes the Groth16 quotient polynomial H(x)'s blinded
// coefficient vector, following §4.D Stage 2 exactly: ca, cb, cc arrive
// already as the QAP's per-domain-point evaluations (combining them
// with a witness is the R1CS frontend's job, an explicit non-goal), and
// d1 = d2 = d3 = r per this core's pinned single-random-scalar
// blinding convention (see DESIGN.md Open Questions). The returned
// vector has length domain.Size+1; Stage 3 truncates it to D-1 entries
// before the final MSM.
func computeH(ctx context.Context, fr *field.Kernel, ca, cb, cc []field.Element, d int, r *field.Element) ([]field.Element, error) {
	domain, err := fft.NewDomain(fr, uint64(d+1))
	if err != nil {
		return nil, err
	}
	m := domain.Size

	// Per the design notes, fresh buffers are allocated rather than
	// aliasing H_tmp onto ca's storage; ca/cb/cc are PK-owned and must
	// not be mutated in place.
	caCoeffs := padded(ca, m)
	cbCoeffs := padded(cb, m)
	ccCoeffs := padded(cc, m)

	select {
	case <-ctx.Done():
		return nil, &errs.Cancelled{Stage: "compute-h"}
	default:
	}

	if err := domain.InvFFT(ctx, caCoeffs); err != nil {
		return nil, err
	}
	if err := domain.InvFFT(ctx, cbCoeffs); err != nil {
		return nil, err
	}

	coeffsForH := make([]field.Element, m+1)
	for i := uint64(0); i < m; i++ {
		var d2ca, d1cb field.Element
		d2ca.Mul(fr, r, &caCoeffs[i]) // d2 = r
		d1cb.Mul(fr, r, &cbCoeffs[i]) // d1 = r
		coeffsForH[i].Add(fr, &d2ca, &d1cb)
	}
	coeffsForH[0].Sub(fr, &coeffsForH[0], r) // -= d3 (= r)

	var d1d2 field.Element
	d1d2.Mul(fr, r, r)
	if err := domain.AddPolyZ(&d1d2, coeffsForH); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, &errs.Cancelled{Stage: "compute-h"}
	default:
	}

	if err := domain.CosetFFT(ctx, caCoeffs); err != nil {
		return nil, err
	}
	if err := domain.CosetFFT(ctx, cbCoeffs); err != nil {
		return nil, err
	}

	hTmp := make([]field.Element, m)
	for i := range hTmp {
		hTmp[i].Mul(fr, &caCoeffs[i], &cbCoeffs[i])
	}
	cbCoeffs = nil // release cb's storage once consumed, per §3 ownership.

	if err := domain.InvFFT(ctx, ccCoeffs); err != nil {
		return nil, err
	}
	if err := domain.CosetFFT(ctx, ccCoeffs); err != nil {
		return nil, err
	}
	for i := range hTmp {
		hTmp[i].Sub(fr, &hTmp[i], &ccCoeffs[i])
	}
	ccCoeffs = nil
	caCoeffs = nil

	select {
	case <-ctx.Done():
		return nil, &errs.Cancelled{Stage: "compute-h"}
	default:
	}

	if err := domain.DivideByZOnCoset(hTmp); err != nil {
		return nil, err
	}
	if err := domain.ICosetFFT(ctx, hTmp); err != nil {
		return nil, err
	}

	for i := uint64(0); i < m; i++ {
		coeffsForH[i].Add(fr, &coeffsForH[i], &hTmp[i])
	}
	return coeffsForH, nil
}

// padded copies v into a length-n slice, zero-filling any remainder
// (field.Element's zero value is already the additive identity).
func padded(v []field.Element, n uint64) []field.Element {
	out := make([]field.Element, n)
	copy(out, v)
	return out
}
