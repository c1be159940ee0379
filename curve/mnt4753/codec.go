package mnt4753

import (
	"io"

	"github.com/mnt753/groth16prover/field"
)

// IsInfinityG1 reports whether p encodes the point at infinity, the
// convention §6's (Fq, Fq) affine wire tuple uses for G1's identity:
// both coordinates zero, which is never a valid affine point on a
// curve with nonzero b.
func IsInfinityG1(p G1Affine) bool { return p.X.IsZero() && p.Y.IsZero() }

// G1Codec implements groth16.PointCodec[G1Affine] by structural typing
// (no import of package groth16 needed): reads/writes G1's (X, Y) pair
// in the little-endian limb layout §6 specifies.
type G1Codec struct{}

func (G1Codec) Read(r io.Reader) (G1Affine, error) {
	k := FqKernel()
	var p G1Affine
	x, err := readFq(r, k)
	if err != nil {
		return p, err
	}
	y, err := readFq(r, k)
	if err != nil {
		return p, err
	}
	p.X, p.Y = x, y
	return p, nil
}

func (G1Codec) Write(w io.Writer, p G1Affine) error {
	k := FqKernel()
	if err := writeFq(w, k, p.X); err != nil {
		return err
	}
	return writeFq(w, k, p.Y)
}

// G2Codec implements groth16.PointCodec[G2Affine]: G2's (X, Y) pair,
// each an Fq2 serialised as (c0, c1) per §6.
type G2Codec struct{}

func (G2Codec) Read(r io.Reader) (G2Affine, error) {
	var p G2Affine
	x, err := readFq2(r)
	if err != nil {
		return p, err
	}
	y, err := readFq2(r)
	if err != nil {
		return p, err
	}
	p.X, p.Y = x, y
	return p, nil
}

func (G2Codec) Write(w io.Writer, p G2Affine) error {
	if err := writeFq2(w, p.X); err != nil {
		return err
	}
	return writeFq2(w, p.Y)
}

func readFq(r io.Reader, k *field.Kernel) (field.Element, error) {
	buf := make([]byte, 12*8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return field.Element{}, err
	}
	var e field.Element
	if err := e.SetBytes(k, buf); err != nil {
		return field.Element{}, err
	}
	return e, nil
}

func writeFq(w io.Writer, k *field.Kernel, e field.Element) error {
	_, err := w.Write(e.ToBytes(k))
	return err
}

func readFq2(r io.Reader) (Fq2, error) {
	k := FqKernel()
	var z Fq2
	c0, err := readFq(r, k)
	if err != nil {
		return z, err
	}
	c1, err := readFq(r, k)
	if err != nil {
		return z, err
	}
	z.C0, z.C1 = c0, c1
	return z, nil
}

func writeFq2(w io.Writer, z Fq2) error {
	k := FqKernel()
	if err := writeFq(w, k, z.C0); err != nil {
		return err
	}
	return writeFq(w, k, z.C1)
}
