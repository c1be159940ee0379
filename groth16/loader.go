package groth16

import (
	"encoding/binary"
	"io"

	"github.com/bits-and-blooms/bitset"

	"github.com/mnt753/groth16prover/errs"
	"github.com/mnt753/groth16prover/field"
)

// PointCodec reads and writes one curve point type in the fixed binary
// layout §6 specifies. mnt4 and mnt6 each provide concrete codecs for
// their G1Affine/G2Affine types; this package stays curve-agnostic.
type PointCodec[P any] interface {
	Read(r io.Reader) (P, error)
	Write(w io.Writer, p P) error
}

func readUint64(r io.Reader, path string) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, &errs.Io{Path: path, Err: err}
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadFieldElement decodes one fixed-width little-endian field element
// from r, per §6's limb layout.
func ReadFieldElement(r io.Reader, k *field.Kernel, path string) (field.Element, error) {
	buf := make([]byte, 12*8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return field.Element{}, &errs.Io{Path: path, Err: err}
	}
	var e field.Element
	if err := e.SetBytes(k, buf); err != nil {
		return field.Element{}, err
	}
	return e, nil
}

// WriteFieldElement encodes one field element in the same layout
// ReadFieldElement decodes.
func WriteFieldElement(w io.Writer, k *field.Kernel, e field.Element) error {
	_, err := w.Write(e.ToBytes(k))
	return err
}

func readFieldVector(r io.Reader, k *field.Kernel, n int, path string) ([]field.Element, error) {
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		e, err := ReadFieldElement(r, k, path)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func writeFieldVector(w io.Writer, k *field.Kernel, v []field.Element) error {
	for i := range v {
		if err := WriteFieldElement(w, k, v[i]); err != nil {
			return err
		}
	}
	return nil
}

func readPointVector[P any](r io.Reader, codec PointCodec[P], n int, path string) ([]P, error) {
	out := make([]P, n)
	for i := 0; i < n; i++ {
		p, err := codec.Read(r)
		if err != nil {
			return nil, &errs.Io{Path: path, Err: err}
		}
		out[i] = p
	}
	return out, nil
}

func writePointVector[P any](w io.Writer, codec PointCodec[P], v []P) error {
	for i := range v {
		if err := codec.Write(w, v[i]); err != nil {
			return err
		}
	}
	return nil
}

// LoadProvingKey reads a proving key from r in the fixed sequential
// layout of §6: d, m, then ca, cb, cc (each D+1 field elements), then A
// (M+1 G1), B1 (M+1 G1), B2 (M+1 G2), L (M-1 G1), T (D G1).
// InfinityA/InfinityB are derived from which A/B1 bases decode to the
// point at infinity rather than carried as separate wire bits, since
// the binary format itself doesn't reserve room for them.
func LoadProvingKey[G1 any, G2 any](r io.Reader, fr *field.Kernel, g1Codec PointCodec[G1], g2Codec PointCodec[G2], isInfinityG1 func(G1) bool, path string) (*ProvingKey[G1, G2], error) {
	d, err := readUint64(r, path)
	if err != nil {
		return nil, err
	}
	m, err := readUint64(r, path)
	if err != nil {
		return nil, err
	}

	ca, err := readFieldVector(r, fr, int(d)+1, path)
	if err != nil {
		return nil, err
	}
	cb, err := readFieldVector(r, fr, int(d)+1, path)
	if err != nil {
		return nil, err
	}
	cc, err := readFieldVector(r, fr, int(d)+1, path)
	if err != nil {
		return nil, err
	}

	a, err := readPointVector[G1](r, g1Codec, int(m)+1, path)
	if err != nil {
		return nil, err
	}
	b1, err := readPointVector[G1](r, g1Codec, int(m)+1, path)
	if err != nil {
		return nil, err
	}
	b2, err := readPointVector[G2](r, g2Codec, int(m)+1, path)
	if err != nil {
		return nil, err
	}
	l, err := readPointVector[G1](r, g1Codec, int(m)-1, path)
	if err != nil {
		return nil, err
	}
	t, err := readPointVector[G1](r, g1Codec, int(d), path)
	if err != nil {
		return nil, err
	}

	infA := bitset.New(uint(m) + 1)
	infB := bitset.New(uint(m) + 1)
	for i, p := range a {
		if isInfinityG1(p) {
			infA.Set(uint(i))
		}
	}
	for i, p := range b1 {
		if isInfinityG1(p) {
			infB.Set(uint(i))
		}
	}

	return &ProvingKey[G1, G2]{
		D: int(d), M: int(m),
		CA: ca, CB: cb, CC: cc,
		A: a, B1: b1, B2: b2, L: l, T: t,
		InfinityA: infA, InfinityB: infB,
	}, nil
}

// WriteProvingKey encodes a proving key in the same layout
// LoadProvingKey decodes, the counterpart the (out of scope)
// trusted-setup collaborator would call.
func WriteProvingKey[G1 any, G2 any](w io.Writer, pk *ProvingKey[G1, G2], fr *field.Kernel, g1Codec PointCodec[G1], g2Codec PointCodec[G2]) error {
	if err := writeUint64(w, uint64(pk.D)); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(pk.M)); err != nil {
		return err
	}
	for _, v := range [][]field.Element{pk.CA, pk.CB, pk.CC} {
		if err := writeFieldVector(w, fr, v); err != nil {
			return err
		}
	}
	if err := writePointVector[G1](w, g1Codec, pk.A); err != nil {
		return err
	}
	if err := writePointVector[G1](w, g1Codec, pk.B1); err != nil {
		return err
	}
	if err := writePointVector[G2](w, g2Codec, pk.B2); err != nil {
		return err
	}
	if err := writePointVector[G1](w, g1Codec, pk.L); err != nil {
		return err
	}
	return writePointVector[G1](w, g1Codec, pk.T)
}

// LoadWitness reads a witness from r: a length-prefixed vector w
// followed by the single blinding scalar r, per §6.
func LoadWitness(r io.Reader, fr *field.Kernel, path string) (*Witness, error) {
	n, err := readUint64(r, path)
	if err != nil {
		return nil, err
	}
	w, err := readFieldVector(r, fr, int(n), path)
	if err != nil {
		return nil, err
	}
	rScalar, err := ReadFieldElement(r, fr, path)
	if err != nil {
		return nil, err
	}
	return &Witness{W: w, R: rScalar}, nil
}

// WriteWitness encodes a witness in the layout LoadWitness decodes.
func WriteWitness(w io.Writer, witness *Witness, fr *field.Kernel) error {
	if err := writeUint64(w, uint64(len(witness.W))); err != nil {
		return err
	}
	if err := writeFieldVector(w, fr, witness.W); err != nil {
		return err
	}
	return WriteFieldElement(w, fr, witness.R)
}

// WriteProof encodes a proof in output order pi_A, pi_B1, pi_B2, pi_L,
// pi_H, per §6.
func WriteProof[G1 any, G2 any](w io.Writer, proof *Proof[G1, G2], g1Codec PointCodec[G1], g2Codec PointCodec[G2]) error {
	if err := g1Codec.Write(w, proof.PiA); err != nil {
		return err
	}
	if err := g1Codec.Write(w, proof.PiB1); err != nil {
		return err
	}
	if err := g2Codec.Write(w, proof.PiB2); err != nil {
		return err
	}
	if err := g1Codec.Write(w, proof.PiL); err != nil {
		return err
	}
	return g1Codec.Write(w, proof.PiH)
}

// ReadProof decodes a proof written by WriteProof, the inverse
// operation a verifier-side collaborator (out of scope for this core)
// would use.
func ReadProof[G1 any, G2 any](r io.Reader, g1Codec PointCodec[G1], g2Codec PointCodec[G2], path string) (*Proof[G1, G2], error) {
	piA, err := g1Codec.Read(r)
	if err != nil {
		return nil, &errs.Io{Path: path, Err: err}
	}
	piB1, err := g1Codec.Read(r)
	if err != nil {
		return nil, &errs.Io{Path: path, Err: err}
	}
	piB2, err := g2Codec.Read(r)
	if err != nil {
		return nil, &errs.Io{Path: path, Err: err}
	}
	piL, err := g1Codec.Read(r)
	if err != nil {
		return nil, &errs.Io{Path: path, Err: err}
	}
	piH, err := g1Codec.Read(r)
	if err != nil {
		return nil, &errs.Io{Path: path, Err: err}
	}
	return &Proof[G1, G2]{PiA: piA, PiB1: piB1, PiB2: piB2, PiL: piL, PiH: piH}, nil
}
