// internal/cli/options.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pairalign/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	InFile  string
	OutFile string

	Threads   int
	GapOpen   int // penalty magnitude; applied as a negative score
	GapExtend int // penalty magnitude; applied as a negative score

	ShowOps bool
	Quiet   bool
}

// GapOpenScore is the gap-open penalty as a score.
func (o Options) GapOpenScore() int { return -o.GapOpen }

// GapExtendScore is the gap-extend penalty as a score.
func (o Options) GapExtendScore() int { return -o.GapExtend }

// Validate checks everything that must hold before any worker starts.
func (o Options) Validate() error {
	if o.Threads < 1 {
		return fmt.Errorf("--threads must be >= 1 (got %d)", o.Threads)
	}
	if o.GapOpen < 0 {
		return fmt.Errorf("--gap-open must be a non-negative penalty (got %d)", o.GapOpen)
	}
	if o.GapExtend < 0 {
		return fmt.Errorf("--gap-extend must be a non-negative penalty (got %d)", o.GapExtend)
	}
	if o.InFile != "-" {
		if _, err := os.Stat(o.InFile); err != nil {
			return fmt.Errorf("input file %s does not exist", o.InFile)
		}
	}
	if o.OutFile != "-" {
		if _, err := os.Stat(o.OutFile); err == nil {
			return fmt.Errorf("output file %s already exists", o.OutFile)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("output file %s: %w", o.OutFile, err)
		}
	}
	return nil
}

// NewRootCmd builds the root command. After a successful Execute, *ran
// tells the caller whether the run body should proceed (false for --help
// and --version).
func NewRootCmd(opts *Options, ran *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairalign <input.fasta> <output.tsv>",
		Short: "All-vs-all global protein alignment",
		Long: `pairalign computes global (end-to-end, affine-gap) alignments for every
pair of protein sequences in a FASTA file, scoring with BLOSUM62, and
writes per-pair identity statistics as TSV.

The input file must exist; the output file must not, and is created
exclusively. Pass - as input to read stdin, or as output to stream the
report to stdout. The total number of threads used is --threads plus one.`,
		Version:       version.Version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InFile, opts.OutFile = args[0], args[1]
			if err := opts.Validate(); err != nil {
				return err
			}
			*ran = true
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&opts.Threads, "threads", "t", 1, "number of worker threads for aligning")
	fs.IntVar(&opts.GapOpen, "gap-open", 10, "gap open penalty")
	fs.IntVar(&opts.GapExtend, "gap-extend", 1, "gap extend penalty")
	fs.BoolVar(&opts.ShowOps, "show-aln-ops", false, "show the alignment operations as an extra column")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress progress logging")

	return cmd
}
