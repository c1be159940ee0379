package groth16

import (
	"context"
	"fmt"

	"github.com/mnt753/groth16prover/curve/mnt4753"
	"github.com/mnt753/groth16prover/curve/mnt6753"
)

// CurveID selects which curve of the MNT4-753/MNT6-753 cycle a Prove
// call runs over. Grounded on the teacher's backend/groth16/groth16.go,
// which dispatches Setup/Prove/Verify across six pairing curves via a
// type switch keyed on ecc.ID; this core narrows that shape to the one
// cycle it supports and the one operation (Prove) it implements.
type CurveID int

const (
	MNT4753 CurveID = iota
	MNT6753
)

func (id CurveID) String() string {
	switch id {
	case MNT4753:
		return "mnt4753"
	case MNT6753:
		return "mnt6753"
	default:
		return fmt.Sprintf("CurveID(%d)", int(id))
	}
}

// MNT4ProvingKey / MNT4Proof and their MNT6 counterparts are the
// curve-concrete instantiations of the generic ProvingKey/Proof types
// callers actually construct and pass to the dispatcher below.
type (
	MNT4ProvingKey = ProvingKey[mnt4753.G1Affine, mnt4753.G2Affine]
	MNT4Proof      = Proof[mnt4753.G1Affine, mnt4753.G2Affine]
	MNT6ProvingKey = ProvingKey[mnt6753.G1Affine, mnt6753.G2Affine]
	MNT6Proof      = Proof[mnt6753.G1Affine, mnt6753.G2Affine]
)

// ProveMNT4753 instantiates the generic pipeline over MNT4-753's G1/G2.
func ProveMNT4753(ctx context.Context, pk *MNT4ProvingKey, w *Witness, opts ...ProverOption) (*MNT4Proof, error) {
	if err := mnt4753.Init(); err != nil {
		return nil, err
	}
	return Prove[mnt4753.G1Affine, mnt4753.G1Jac, *mnt4753.G1Jac, mnt4753.G2Affine, mnt4753.G2Jac, *mnt4753.G2Jac](
		ctx, mnt4753.FrKernel(), pk, w, opts...)
}

// ProveMNT6753 instantiates the generic pipeline over MNT6-753's G1/G2.
func ProveMNT6753(ctx context.Context, pk *MNT6ProvingKey, w *Witness, opts ...ProverOption) (*MNT6Proof, error) {
	if err := mnt6753.Init(); err != nil {
		return nil, err
	}
	return Prove[mnt6753.G1Affine, mnt6753.G1Jac, *mnt6753.G1Jac, mnt6753.G2Affine, mnt6753.G2Jac, *mnt6753.G2Jac](
		ctx, mnt6753.FrKernel(), pk, w, opts...)
}

// ProveCurve dispatches on id to the concrete curve instantiation, taking
// and returning the curve-erased proving key/proof as `any` the way
// the teacher's dispatcher takes `frontend.CompiledConstraintSystem`
// and a curve-erased ProvingKey. Callers that already know their curve
// at compile time should prefer ProveMNT4753/ProveMNT6753 directly and
// skip the type assertion this indirection costs.
func ProveCurve(ctx context.Context, id CurveID, pk any, w *Witness, opts ...ProverOption) (any, error) {
	switch id {
	case MNT4753:
		typed, ok := pk.(*MNT4ProvingKey)
		if !ok {
			return nil, fmt.Errorf("groth16: proving key type does not match curve %s", id)
		}
		return ProveMNT4753(ctx, typed, w, opts...)
	case MNT6753:
		typed, ok := pk.(*MNT6ProvingKey)
		if !ok {
			return nil, fmt.Errorf("groth16: proving key type does not match curve %s", id)
		}
		return ProveMNT6753(ctx, typed, w, opts...)
	default:
		panic("groth16: unrecognized curve id")
	}
}
