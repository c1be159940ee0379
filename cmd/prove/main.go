// Command prove is the illustrative CLI surface §6 describes: given a
// proving-key file and a witness file in the exact binary layouts §6
// specifies, it writes a proof file in the same layout. It is not part
// of the core's contract (the core is the Prove function in package
// groth16) but gives the module a runnable entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mnt753/groth16prover/curve/mnt4753"
	"github.com/mnt753/groth16prover/curve/mnt6753"
	"github.com/mnt753/groth16prover/groth16"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("prove", flag.ContinueOnError)
	curve := fs.String("curve", "mnt4753", "curve to prove over: mnt4753 or mnt6753")
	nbTasks := fs.Int("tasks", 0, "Pippenger chunk fan-out (0 = runtime.NumCPU())")
	verbose := fs.Bool("v", false, "emit per-stage debug logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "usage: prove [-curve mnt4753|mnt6753] [-tasks N] [-v] <parameters_path> <inputs_path> <output_path>")
		return 2
	}
	parametersPath, inputsPath, outputPath := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	log := zerolog.Nop()
	if *verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	opts := []groth16.ProverOption{groth16.WithLogger(log)}
	if *nbTasks > 0 {
		opts = append(opts, groth16.WithNbTasks(*nbTasks))
	}

	var err error
	switch *curve {
	case "mnt4753":
		err = proveMNT4753(parametersPath, inputsPath, outputPath, opts...)
	case "mnt6753":
		err = proveMNT6753(parametersPath, inputsPath, outputPath, opts...)
	default:
		fmt.Fprintf(os.Stderr, "prove: unrecognized curve %q\n", *curve)
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "prove: %v\n", err)
		return 1
	}
	return 0
}

func proveMNT4753(parametersPath, inputsPath, outputPath string, opts ...groth16.ProverOption) error {
	if err := mnt4753.Init(); err != nil {
		return err
	}
	pf, err := os.Open(parametersPath)
	if err != nil {
		return err
	}
	defer pf.Close()
	pk, err := groth16.LoadProvingKey[mnt4753.G1Affine, mnt4753.G2Affine](
		pf, mnt4753.FrKernel(), mnt4753.G1Codec{}, mnt4753.G2Codec{}, mnt4753.IsInfinityG1, parametersPath)
	if err != nil {
		return err
	}

	wf, err := os.Open(inputsPath)
	if err != nil {
		return err
	}
	defer wf.Close()
	w, err := groth16.LoadWitness(wf, mnt4753.FrKernel(), inputsPath)
	if err != nil {
		return err
	}

	proof, err := groth16.ProveMNT4753(context.Background(), pk, w, opts...)
	if err != nil {
		return err
	}

	of, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer of.Close()
	return groth16.WriteProof[mnt4753.G1Affine, mnt4753.G2Affine](of, proof, mnt4753.G1Codec{}, mnt4753.G2Codec{})
}

func proveMNT6753(parametersPath, inputsPath, outputPath string, opts ...groth16.ProverOption) error {
	if err := mnt6753.Init(); err != nil {
		return err
	}
	pf, err := os.Open(parametersPath)
	if err != nil {
		return err
	}
	defer pf.Close()
	pk, err := groth16.LoadProvingKey[mnt6753.G1Affine, mnt6753.G2Affine](
		pf, mnt6753.FrKernel(), mnt6753.G1Codec{}, mnt6753.G2Codec{}, mnt6753.IsInfinityG1, parametersPath)
	if err != nil {
		return err
	}

	wf, err := os.Open(inputsPath)
	if err != nil {
		return err
	}
	defer wf.Close()
	w, err := groth16.LoadWitness(wf, mnt6753.FrKernel(), inputsPath)
	if err != nil {
		return err
	}

	proof, err := groth16.ProveMNT6753(context.Background(), pk, w, opts...)
	if err != nil {
		return err
	}

	of, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer of.Close()
	return groth16.WriteProof[mnt6753.G1Affine, mnt6753.G2Affine](of, proof, mnt6753.G1Codec{}, mnt6753.G2Codec{})
}
