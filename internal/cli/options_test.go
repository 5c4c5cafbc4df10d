// internal/cli/options_test.go
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, argv ...string) (Options, bool, error) {
	t.Helper()
	var opts Options
	ran := false
	cmd := NewRootCmd(&opts, &ran)
	cmd.SetArgs(argv)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return opts, ran, err
}

func touch(t *testing.T, name string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(">a\nMK\n"), 0o644))
	return fn
}

func TestParseDefaults(t *testing.T) {
	in := touch(t, "in.fa")
	out := filepath.Join(t.TempDir(), "out.tsv")

	opts, ran, err := parse(t, in, out)
	require.NoError(t, err)
	require.True(t, ran)
	require.Equal(t, in, opts.InFile)
	require.Equal(t, out, opts.OutFile)
	require.Equal(t, 1, opts.Threads)
	require.Equal(t, 10, opts.GapOpen)
	require.Equal(t, 1, opts.GapExtend)
	require.False(t, opts.ShowOps)

	require.Equal(t, -10, opts.GapOpenScore())
	require.Equal(t, -1, opts.GapExtendScore())
}

func TestParseFlags(t *testing.T) {
	in := touch(t, "in.fa")
	out := filepath.Join(t.TempDir(), "out.tsv")

	opts, ran, err := parse(t,
		"--threads", "8", "--gap-open", "12", "--gap-extend", "2",
		"--show-aln-ops", "-q", in, out)
	require.NoError(t, err)
	require.True(t, ran)
	require.Equal(t, 8, opts.Threads)
	require.Equal(t, -12, opts.GapOpenScore())
	require.Equal(t, -2, opts.GapExtendScore())
	require.True(t, opts.ShowOps)
	require.True(t, opts.Quiet)
}

func TestParseAllowsStdoutOutput(t *testing.T) {
	in := touch(t, "in.fa")

	opts, ran, err := parse(t, in, "-")
	require.NoError(t, err)
	require.True(t, ran)
	require.Equal(t, "-", opts.OutFile)
}

func TestParseRejectsBadConfig(t *testing.T) {
	in := touch(t, "in.fa")
	tmp := t.TempDir()

	cases := []struct {
		name string
		argv []string
	}{
		{"zero threads", []string{"--threads", "0", in, filepath.Join(tmp, "o1")}},
		{"negative gap open", []string{"--gap-open", "-3", in, filepath.Join(tmp, "o2")}},
		{"negative gap extend", []string{"--gap-extend", "-1", in, filepath.Join(tmp, "o3")}},
		{"missing input", []string{filepath.Join(tmp, "nope.fa"), filepath.Join(tmp, "o4")}},
		{"existing output", []string{in, in}},
		{"missing args", []string{in}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ran, err := parse(t, c.argv...)
			require.Error(t, err)
			require.False(t, ran)
		})
	}
}

func TestHelpAndVersionDoNotRun(t *testing.T) {
	_, ran, err := parse(t, "--help")
	require.NoError(t, err)
	require.False(t, ran)

	_, ran, err = parse(t, "--version")
	require.NoError(t, err)
	require.False(t, ran)
}
