// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pairalign/internal/app"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func runApp(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func readLines(t *testing.T, fn string) []string {
	t.Helper()
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestEndToEndSubstitutionPair(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">A first\nMSK\n>B second\nMAK\n")
	out := filepath.Join(dir, "out.tsv")

	code, _, errOut := runApp(t, fa, out)
	require.Equalf(t, 0, code, "stderr: %s", errOut)

	lines := readLines(t, out)
	// header + 2 self-hit blocks + 1 pair block, two lines each
	require.Len(t, lines, 7)
	require.Equal(t, "x\ty\txlen\tylen\talnlen\tmatches\tpid", lines[0])
	require.Contains(t, lines, "A\tB\t3\t3\t3\t2\t0.667")
	require.Contains(t, lines, "B\tA\t3\t3\t3\t2\t0.667")
	require.Contains(t, lines, "A\tA\t3\t3\t3\t3\t1.000")
	require.Contains(t, lines, "B\tB\t3\t3\t3\t3\t1.000")
}

func TestEndToEndShowOps(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">A\nMSK\n>B\nMAK\n")
	out := filepath.Join(dir, "out.tsv")

	code, _, errOut := runApp(t, "--show-aln-ops", fa, out)
	require.Equalf(t, 0, code, "stderr: %s", errOut)

	lines := readLines(t, out)
	require.Equal(t, "x\ty\txlen\tylen\talnlen\tmatches\tpid\tops", lines[0])
	require.Contains(t, lines, "A\tB\t3\t3\t3\t2\t0.667\tMSM")
	require.Contains(t, lines, "B\tA\t3\t3\t3\t2\t0.667\tMSM")
	require.Contains(t, lines, "A\tA\t3\t3\t3\t3\t1.000\tMMM")
}

func TestEndToEndIdenticalSequences(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">p\nMKVLQ\n>q\nMKVLQ\n")
	out := filepath.Join(dir, "out.tsv")

	code, _, errOut := runApp(t, fa, out)
	require.Equalf(t, 0, code, "stderr: %s", errOut)

	lines := readLines(t, out)
	// The full engine (p vs q) and the shortcut (self-hits) must agree.
	require.Contains(t, lines, "p\tq\t5\t5\t5\t5\t1.000")
	require.Contains(t, lines, "p\tp\t5\t5\t5\t5\t1.000")
}

func TestParallelMatchesSerial(t *testing.T) {
	dir := t.TempDir()
	var fasta strings.Builder
	seqs := []string{"MSKVLACDE", "MAKVLACDE", "MKVL", "ACDEFGHIK", "WWYF", "QQERKL"}
	for i, s := range seqs {
		fmt.Fprintf(&fasta, ">s%d\n%s\n", i, s)
	}
	fa := write(t, filepath.Join(dir, "in.fa"), fasta.String())

	run := func(threads int) []string {
		out := filepath.Join(dir, fmt.Sprintf("out_t%d.tsv", threads))
		code, _, errOut := runApp(t, "-q", "--threads", fmt.Sprint(threads), fa, out)
		require.Equalf(t, 0, code, "stderr: %s", errOut)
		lines := readLines(t, out)
		sort.Strings(lines)
		return lines
	}

	require.Equal(t, run(1), run(4))
}

func TestOutputToStdout(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">A\nMSK\n>B\nMAK\n")

	code, out, errOut := runApp(t, "-q", fa, "-")
	require.Equalf(t, 0, code, "stderr: %s", errOut)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	require.Equal(t, "x\ty\txlen\tylen\talnlen\tmatches\tpid", lines[0])
	require.Contains(t, lines, "A\tB\t3\t3\t3\t2\t0.667")
}

func TestCorruptGzipInputIsIOError(t *testing.T) {
	dir := t.TempDir()
	// Exists (so validation passes) but is not valid gzip.
	fa := write(t, filepath.Join(dir, "in.fa.gz"), "not a gzip stream")
	out := filepath.Join(dir, "out.tsv")

	code, _, errOut := runApp(t, fa, out)
	require.Equal(t, 3, code)
	require.Contains(t, errOut, "error:")
}

func TestUncreatableOutputIsIOError(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">A\nMSK\n")
	out := filepath.Join(dir, "no-such-dir", "out.tsv")

	code, _, errOut := runApp(t, fa, out)
	require.Equal(t, 3, code)
	require.Contains(t, errOut, "error:")
}

func TestExistingOutputIsConfigError(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "in.fa"), ">A\nMSK\n")
	out := write(t, filepath.Join(dir, "out.tsv"), "pre-existing\n")

	code, _, errOut := runApp(t, fa, out)
	require.Equal(t, 2, code)
	require.Contains(t, errOut, "already exists")

	// The pre-existing file must be left untouched.
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "pre-existing\n", string(data))
}

func TestMissingInputIsConfigError(t *testing.T) {
	dir := t.TempDir()
	code, _, errOut := runApp(t, filepath.Join(dir, "nope.fa"), filepath.Join(dir, "out.tsv"))
	require.Equal(t, 2, code)
	require.Contains(t, errOut, "does not exist")
}

func TestVersionFlag(t *testing.T) {
	code, out, _ := runApp(t, "--version")
	require.Equal(t, 0, code)
	require.Contains(t, out, "pairalign")
}
