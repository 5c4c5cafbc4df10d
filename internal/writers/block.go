// internal/writers/block.go

// Package writers owns the serialized output stream. A single goroutine
// receives formatted blocks over a channel and is the only writer of the
// underlying io.Writer, so no lock sits on the alignment hot path and no
// line can interleave with another.
package writers

import "io"

// StartBlockWriter spins up the sink goroutine. It writes header first,
// then every received block verbatim, in arrival order. The caller closes
// the returned channel to finish; the error channel then yields the first
// write error (or nil) exactly once.
func StartBlockWriter(out io.Writer, header string, bufSize int) (chan<- string, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan string, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		if _, werr := io.WriteString(out, header); werr != nil {
			err = werr
		}
		for block := range in {
			if err != nil {
				continue // drain so senders never block after failure
			}
			if _, werr := io.WriteString(out, block); werr != nil {
				err = werr
			}
		}
		errCh <- err
	}()

	return in, errCh
}
