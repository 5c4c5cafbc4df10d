// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"pairalign/internal/blosum"
	"pairalign/internal/cli"
	"pairalign/internal/cmdutil"
	"pairalign/internal/fasta"
	"pairalign/internal/pairs"
	"pairalign/internal/pool"
	"pairalign/internal/report"
	"pairalign/internal/writers"
)

// Exit codes: 0 ok (including a downstream broken pipe on stdout output),
// 2 configuration error, 3 I/O or internal failure.

// RunContext parses argv, validates the configuration, and runs the
// all-vs-all alignment. stdout receives help/version text only; the TSV
// report goes to the output file named in argv.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	var opts cli.Options
	ran := false
	root := cli.NewRootCmd(&opts, &ran)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(parent); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if !ran { // --help or --version
		return 0
	}
	return run(parent, opts, stdout, stderr)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, opts cli.Options, stdout, stderr io.Writer) int {
	logger := cmdutil.NewLogger(stderr, opts.Quiet)
	defer func() { _ = logger.Sync() }()

	// Validate already vetted existence; failures here are I/O, not config.
	records, err := fasta.ReadFile(opts.InFile)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 3
	}

	var outw *bufio.Writer
	closeOut := func() error { return nil }
	if opts.OutFile == "-" {
		outw = bufio.NewWriter(stdout)
	} else {
		// Exclusive create: a pre-existing output file aborts before any
		// worker starts, even if it appeared after Validate ran.
		out, err := os.OpenFile(opts.OutFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			if os.IsExist(err) {
				return 2
			}
			return 3
		}
		outw = bufio.NewWriter(out)
		closeOut = out.Close
	}

	logger.Info("aligning",
		zap.Int("records", len(records)),
		zap.Int("pairs", pairs.Count(len(records))),
		zap.Int("workers", opts.Threads),
	)

	sink, writeErr := writers.StartBlockWriter(outw, report.Header(opts.ShowOps), opts.Threads*4)
	perr := pool.Run(ctx, pool.Config{
		Workers:   opts.Threads,
		GapOpen:   opts.GapOpenScore(),
		GapExtend: opts.GapExtendScore(),
		Matrix:    blosum.New62(),
		ShowOps:   opts.ShowOps,
	}, records, sink)
	close(sink)
	werr := <-writeErr

	if ferr := outw.Flush(); werr == nil {
		werr = ferr
	}
	if cerr := closeOut(); werr == nil {
		werr = cerr
	}

	// A consumer like `head` closing stdout early is not a failure.
	if writers.IsBrokenPipe(werr) {
		return 0
	}
	if perr != nil {
		fmt.Fprintln(stderr, "error:", perr)
		return 3
	}
	if werr != nil {
		fmt.Fprintln(stderr, "error:", werr)
		return 3
	}

	logger.Info("done",
		zap.Int("lines", 1+2*pairs.Count(len(records))+2*len(records)),
		zap.String("output", opts.OutFile),
	)
	return 0
}
