// internal/align/align.go
package align

import (
	"math"

	"pairalign/internal/blosum"
)

// negInf is a safe "minus infinity" for DP cells: low enough never to win,
// high enough that adding a penalty cannot underflow.
const negInf = math.MinInt / 4

// Aligner computes Gotoh affine-gap global alignments. It keeps its DP
// matrices between calls, so one Aligner per worker amortizes allocation
// over the O(N^2) jobs it serves. Not safe for concurrent use.
type Aligner struct {
	matrix    blosum.Matrix
	gapOpen   int // charged once per gap run, covering its first residue
	gapExtend int // charged per additional residue in a run

	// scratch, reused across calls; flat (xlen+1) x (ylen+1) grids
	m, ix, iy []int
}

// NewAligner returns an Aligner for the given matrix and penalties.
// Both penalties are scores, i.e. non-positive.
func NewAligner(matrix blosum.Matrix, gapOpen, gapExtend int) *Aligner {
	return &Aligner{matrix: matrix, gapOpen: gapOpen, gapExtend: gapExtend}
}

func (a *Aligner) grow(cells int) {
	if cap(a.m) < cells {
		a.m = make([]int, cells)
		a.ix = make([]int, cells)
		a.iy = make([]int, cells)
	}
	a.m = a.m[:cells]
	a.ix = a.ix[:cells]
	a.iy = a.iy[:cells]
}

// Global aligns x against y end-to-end and returns the optimal alignment.
// It is deterministic: equal-scoring traceback paths are resolved by a fixed
// preference (match/substitution, then gap in y, then gap in x).
func (a *Aligner) Global(x, y []byte) Alignment {
	w := len(y) + 1
	a.grow((len(x) + 1) * w)
	m, ix, iy := a.m, a.ix, a.iy

	// Boundary: leading gaps are penalized like any other run.
	m[0], ix[0], iy[0] = 0, negInf, negInf
	for j := 1; j <= len(y); j++ {
		m[j] = negInf
		ix[j] = negInf
		iy[j] = a.gapOpen + (j-1)*a.gapExtend
	}
	for i := 1; i <= len(x); i++ {
		row := i * w
		m[row] = negInf
		ix[row] = a.gapOpen + (i-1)*a.gapExtend
		iy[row] = negInf

		for j := 1; j <= len(y); j++ {
			cur := row + j
			diag := cur - w - 1
			up := cur - w
			left := cur - 1

			m[cur] = max3(m[diag], ix[diag], iy[diag]) + a.matrix.Score(x[i-1], y[j-1])
			ix[cur] = maxInt(m[up]+a.gapOpen, ix[up]+a.gapExtend)
			iy[cur] = maxInt(m[left]+a.gapOpen, iy[left]+a.gapExtend)
		}
	}

	return a.traceback(x, y, w)
}

// DP state tags used during traceback.
const (
	stateM = iota
	stateIx
	stateIy
)

func (a *Aligner) traceback(x, y []byte, w int) Alignment {
	m, ix, iy := a.m, a.ix, a.iy
	i, j := len(x), len(y)

	corner := i*w + j
	score, state := pickState(m[corner], ix[corner], iy[corner])

	ops := make([]Op, 0, len(x)+len(y))
	for i > 0 || j > 0 {
		switch {
		case j == 0:
			state = stateIx
		case i == 0:
			state = stateIy
		}
		cur := i*w + j
		switch state {
		case stateM:
			if x[i-1] == y[j-1] {
				ops = append(ops, OpMatch)
			} else {
				ops = append(ops, OpSubst)
			}
			diag := cur - w - 1
			_, state = pickState(m[diag], ix[diag], iy[diag])
			i--
			j--
		case stateIx:
			ops = append(ops, OpDelete)
			up := cur - w
			if m[up]+a.gapOpen >= ix[up]+a.gapExtend {
				state = stateM
			}
			i--
		case stateIy:
			ops = append(ops, OpInsert)
			left := cur - 1
			if m[left]+a.gapOpen >= iy[left]+a.gapExtend {
				state = stateM
			}
			j--
		}
	}

	// reverse into alignment order
	for lo, hi := 0, len(ops)-1; lo < hi; lo, hi = lo+1, hi-1 {
		ops[lo], ops[hi] = ops[hi], ops[lo]
	}

	return Alignment{
		Score:  score,
		XStart: 0,
		XEnd:   len(x),
		YStart: 0,
		YEnd:   len(y),
		Ops:    ops,
	}
}

// pickState returns the best of the three cell values and its state tag,
// preferring match/substitution, then gap-in-y, then gap-in-x on ties.
func pickState(m, ix, iy int) (int, int) {
	best, state := m, stateM
	if ix > best {
		best, state = ix, stateIx
	}
	if iy > best {
		best, state = iy, stateIy
	}
	return best, state
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func max3(a, b, c int) int {
	return maxInt(maxInt(a, b), c)
}
