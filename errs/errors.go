// Package errs collects the error taxonomy shared by every package in
// this module: the field/curve kernel, the evaluation domain, the MSM
// engine and the prover pipeline all fail through these types so a
// caller can type-switch once at the outer boundary instead of per
// package.
package errs

import "fmt"

// NotInitialized is returned (or, for the kernel's internal fast paths,
// panicked with) when a field or curve operation is attempted before
// the owning Kernel has completed its one-shot Init.
type NotInitialized struct {
	Kernel string
}

func (e *NotInitialized) Error() string {
	return fmt.Sprintf("%s: kernel used before Init", e.Kernel)
}

// DomainError covers arithmetic requests the algebra cannot satisfy:
// inverting zero, requesting an evaluation domain larger than the
// field's 2-adicity supports, or dividing by a vanishing polynomial
// that evaluates to zero on the coset it was evaluated on.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error in %s: %s", e.Op, e.Reason)
}

// InvalidArgument covers length mismatches: MSM bases/scalars, or a
// proving key whose vector lengths are inconsistent with its own
// declared (d, m).
type InvalidArgument struct {
	Op     string
	Reason string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("invalid argument in %s: %s", e.Op, e.Reason)
}

// Io wraps a short read or truncated file at the proving-key/witness
// loader boundary.
type Io struct {
	Path string
	Err  error
}

func (e *Io) Error() string {
	return fmt.Sprintf("io error reading %s: %v", e.Path, e.Err)
}

func (e *Io) Unwrap() error { return e.Err }

// Cancelled is returned when a cooperative cancel token fires at one
// of the pipeline's stage boundaries.
type Cancelled struct {
	Stage string
}

func (e *Cancelled) Error() string {
	return fmt.Sprintf("proving cancelled at stage %q", e.Stage)
}

// ProofError is the only error type the prover returns to its caller:
// it wraps whichever of the above actually failed, tagged with the
// pipeline stage that was running.
type ProofError struct {
	Stage string
	Cause error
}

func (e *ProofError) Error() string {
	return fmt.Sprintf("proof failed at stage %q: %v", e.Stage, e.Cause)
}

func (e *ProofError) Unwrap() error { return e.Cause }

// Wrap builds a ProofError tagging cause with the stage it occurred in.
// A nil cause yields a nil error so callers can write
// `return errs.Wrap(stage, err)` unconditionally after a stage.
func Wrap(stage string, cause error) error {
	if cause == nil {
		return nil
	}
	return &ProofError{Stage: stage, Cause: cause}
}
