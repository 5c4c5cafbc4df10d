// internal/align/ops.go
package align

import (
	"errors"
	"fmt"
)

// Op is a single alignment edit step.
type Op uint8

const (
	OpMatch Op = iota // aligned, equal residues
	OpSubst           // aligned, differing residues
	OpDelete          // consumes a residue of x only (gap in y)
	OpInsert          // consumes a residue of y only (gap in x)
	OpClipX           // leading/trailing clip of x; never produced in global mode
	OpClipY           // leading/trailing clip of y; never produced in global mode
)

// Code returns the single-letter output code for the op.
func (o Op) Code() byte {
	switch o {
	case OpMatch:
		return 'M'
	case OpSubst:
		return 'S'
	case OpDelete:
		return 'D'
	case OpInsert:
		return 'I'
	case OpClipX:
		return 'X'
	case OpClipY:
		return 'Y'
	}
	return '?'
}

// Mirror swaps the roles of x and y for the op.
func (o Op) Mirror() Op {
	switch o {
	case OpDelete:
		return OpInsert
	case OpInsert:
		return OpDelete
	case OpClipX:
		return OpClipY
	case OpClipY:
		return OpClipX
	}
	return o
}

// Alignment is the result of a pairwise global alignment. Spans are
// half-open [Start, End) coordinates into the raw sequences.
type Alignment struct {
	Score  int
	XStart int
	XEnd   int
	YStart int
	YEnd   int
	Ops    []Op
}

// Length is the alignment length: the total number of edit operations
// (matches + substitutions + indels), not the length of either sequence.
func (a Alignment) Length() int { return len(a.Ops) }

// Matches counts exact-match positions.
func (a Alignment) Matches() int {
	n := 0
	for _, op := range a.Ops {
		if op == OpMatch {
			n++
		}
	}
	return n
}

// Identity is Matches / Length as a float. Zero-length alignments (two
// empty sequences) report identity 1.
func (a Alignment) Identity() float64 {
	if len(a.Ops) == 0 {
		return 1.0
	}
	return float64(a.Matches()) / float64(len(a.Ops))
}

// OpString renders the ops as single-letter codes.
func (a Alignment) OpString() string {
	buf := make([]byte, len(a.Ops))
	for i, op := range a.Ops {
		buf[i] = op.Code()
	}
	return string(buf)
}

// MirrorOpString renders the ops for the swapped pair (y vs x).
func (a Alignment) MirrorOpString() string {
	buf := make([]byte, len(a.Ops))
	for i, op := range a.Ops {
		buf[i] = op.Mirror().Code()
	}
	return string(buf)
}

// ErrNotGlobal reports an engine defect: an alignment that does not span
// both sequences end-to-end. It is never recoverable.
var ErrNotGlobal = errors.New("alignment does not cover full sequence span")

// CheckGlobal verifies the global-mode invariant against the raw sequence
// lengths. Any violation is a defect in the engine, not an input error.
func (a Alignment) CheckGlobal(xlen, ylen int) error {
	if a.XStart != 0 || a.XEnd != xlen || a.YStart != 0 || a.YEnd != ylen {
		return fmt.Errorf("%w: x[%d,%d) of %d, y[%d,%d) of %d",
			ErrNotGlobal, a.XStart, a.XEnd, xlen, a.YStart, a.YEnd, ylen)
	}
	return nil
}
