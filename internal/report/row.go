// internal/report/row.go

// Package report turns alignments into TSV output lines. It owns all
// presentation knowledge; align stays domain-only and pool stays
// orchestration-only.
package report

import (
	"fmt"
	"strings"

	"pairalign/internal/align"
	"pairalign/internal/fasta"
)

// Row is one output line of the report.
type Row struct {
	XID     string
	YID     string
	XLen    int
	YLen    int
	AlnLen  int
	Matches int
	PID     float64
	Ops     string // empty unless the ops column was requested
}

// Header returns the one-time header line, newline-terminated.
func Header(showOps bool) string {
	h := "x\ty\txlen\tylen\talnlen\tmatches\tpid"
	if showOps {
		h += "\tops"
	}
	return h + "\n"
}

// TSV renders the row as a newline-terminated tab-separated line.
// Percent identity is fixed to three decimals.
func (r Row) TSV(showOps bool) string {
	line := fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%.3f",
		r.XID, r.YID, r.XLen, r.YLen, r.AlnLen, r.Matches, r.PID)
	if showOps {
		line += "\t" + r.Ops
	}
	return line + "\n"
}

// PairBlock renders the two symmetric lines for one aligned pair. Both
// lines share the same counts; the y-vs-x op string is the
// delete/insert-swapped mirror. The block is written to the sink as a
// unit so the two lines stay adjacent under concurrency.
func PairBlock(x, y fasta.Record, aln align.Alignment, showOps bool) string {
	alnLen := aln.Length()
	matches := aln.Matches()
	pid := aln.Identity()

	fwd := Row{
		XID: x.ID, YID: y.ID,
		XLen: len(x.Seq), YLen: len(y.Seq),
		AlnLen: alnLen, Matches: matches, PID: pid,
	}
	rev := Row{
		XID: y.ID, YID: x.ID,
		XLen: len(y.Seq), YLen: len(x.Seq),
		AlnLen: alnLen, Matches: matches, PID: pid,
	}
	if showOps {
		fwd.Ops = aln.OpString()
		rev.Ops = aln.MirrorOpString()
	}
	return fwd.TSV(showOps) + rev.TSV(showOps)
}

// SelfBlock renders the two symmetric lines for a self-hit without running
// the engine: the trivial self-alignment is all matches, no gaps.
func SelfBlock(r fasta.Record, showOps bool) string {
	n := len(r.Seq)
	row := Row{
		XID: r.ID, YID: r.ID,
		XLen: n, YLen: n,
		AlnLen: n, Matches: n, PID: 1.0,
	}
	if showOps {
		row.Ops = strings.Repeat("M", n)
	}
	line := row.TSV(showOps)
	return line + line
}
