// internal/pool/pool.go

// Package pool fans the O(N^2) pairwise alignment jobs out across a fixed
// set of worker goroutines. Each worker owns one bounded FIFO queue and one
// private Aligner, so the only shared mutable resource is the sink channel.
package pool

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"pairalign/internal/align"
	"pairalign/internal/blosum"
	"pairalign/internal/fasta"
	"pairalign/internal/pairs"
	"pairalign/internal/report"
)

// DefaultQueueCap bounds each worker's pending jobs; with W workers at most
// W*DefaultQueueCap jobs are in flight and the producer blocks beyond that.
const DefaultQueueCap = 256

// Config controls one all-vs-all run.
type Config struct {
	Workers   int // worker goroutines (>=1)
	QueueCap  int // per-worker queue capacity; 0 means DefaultQueueCap
	GapOpen   int // gap-open score, non-positive
	GapExtend int // gap-extend score, non-positive
	Matrix    blosum.Matrix
	ShowOps   bool
}

type job struct {
	x, y fasta.Record
}

// workerFor assigns the k-th generated pair to a worker, round-robin.
func workerFor(k, workers int) int { return k % workers }

// Run aligns every unordered pair of records and sends one two-line block
// per pair (and per self-hit) to sink. Self-hits bypass the engine. Run
// returns once every worker has exited and every block has been handed to
// the sink channel; the caller still owns closing sink. Any engine invariant
// violation aborts the whole run.
func Run(ctx context.Context, cfg Config, records []fasta.Record, sink chan<- string) error {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueCap <= 0 {
		cfg.QueueCap = DefaultQueueCap
	}

	g, ctx := errgroup.WithContext(ctx)

	queues := make([]chan job, cfg.Workers)
	for w := range queues {
		queues[w] = make(chan job, cfg.QueueCap)
	}
	for w := 0; w < cfg.Workers; w++ {
		queue := queues[w]
		g.Go(func() error {
			aligner := align.NewAligner(cfg.Matrix, cfg.GapOpen, cfg.GapExtend)
			for j := range queue {
				aln := aligner.Global(j.x.Seq, j.y.Seq)
				if err := aln.CheckGlobal(len(j.x.Seq), len(j.y.Seq)); err != nil {
					return fmt.Errorf("align %s vs %s: %w", j.x.ID, j.y.ID, err)
				}
				select {
				case sink <- report.PairBlock(j.x, j.y, aln, cfg.ShowOps):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	// Self-hits need no alignment; emit them before fanning out the pairs.
	dispatchErr := func() error {
		for _, r := range records {
			select {
			case sink <- report.SelfBlock(r, cfg.ShowOps):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		k := 0
		return pairs.ForEachPair(len(records), func(i, j int) error {
			q := queues[workerFor(k, cfg.Workers)]
			k++
			select {
			case q <- job{x: records[i], y: records[j]}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	for _, q := range queues {
		close(q)
	}
	if werr := g.Wait(); werr != nil {
		return werr
	}
	return dispatchErr
}
