package msm

import (
	"context"

	"github.com/mnt753/groth16prover/field"
)

// KCResult is the output of a knowledge-commitment MSM: the same
// scalar vector applied to two parallel base vectors (e.g. the A and
// B1 columns of a proving key, both in G1, or A in G1 and B2 in G2).
type KCResult[SA any, SB any] struct {
	A *SA
	B *SB
}

// KCMSM computes two MSMs over one shared scalar vector, mirroring
// libsnark's kc_multi_exp knowledge-commitment exponentiation: the
// pipeline consumes the proving key's (B2, B1) columns together against
// the same witness scalars, so this is the API shape it calls for them
// instead of two independent MSM calls with duplicated
// bookkeeping. The two legs run concurrently since they share no
// mutable state.
func KCMSM[SA any, AA any, JA jacobianLike[SA, AA], SB any, AB any, JB jacobianLike[SB, AB]](
	ctx context.Context, k *field.Kernel,
	basesA []AA, basesB []AB, scalars []field.Element, cfg Config,
) (KCResult[SA, SB], error) {
	type result struct {
		a   *SA
		b   *SB
		err error
	}
	resA := make(chan result, 1)
	resB := make(chan result, 1)

	go func() {
		a, err := MSM[SA, AA, JA](ctx, k, basesA, scalars, cfg)
		resA <- result{a: a, err: err}
	}()
	go func() {
		b, err := MSM[SB, AB, JB](ctx, k, basesB, scalars, cfg)
		resB <- result{b: b, err: err}
	}()

	ra, rb := <-resA, <-resB
	if ra.err != nil {
		return KCResult[SA, SB]{}, ra.err
	}
	if rb.err != nil {
		return KCResult[SA, SB]{}, rb.err
	}
	return KCResult[SA, SB]{A: ra.a, B: rb.b}, nil
}
