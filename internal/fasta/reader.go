// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA sequence. Residues are uppercased on read and never
// mutated afterwards; records may be shared across goroutines read-only.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// ReadFile parses every record of a FASTA file into memory. The all-vs-all
// driver needs random access to the full record list, so there is no
// streaming variant. Supports plain and gzip-compressed files and "-" for
// stdin.
func ReadFile(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadAll(rc)
}

// ReadAll parses FASTA records from r.
func ReadAll(r io.Reader) ([]Record, error) {
	var (
		recs []Record
		cur  *Record
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := bytes.TrimRight(sc.Bytes(), "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			id, desc := splitHeader(string(line[1:]))
			if id == "" {
				return nil, fmt.Errorf("fasta: empty record header")
			}
			recs = append(recs, Record{ID: id, Desc: desc})
			cur = &recs[len(recs)-1]
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("fasta: sequence data before first header")
		}
		// Residues may arrive lowercase; alignment scoring expects upper.
		cur.Seq = append(cur.Seq, bytes.ToUpper(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

func splitHeader(h string) (id, desc string) {
	h = strings.TrimSpace(h)
	if i := strings.IndexAny(h, " \t"); i >= 0 {
		return h[:i], strings.TrimSpace(h[i+1:])
	}
	return h, ""
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
