package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/porekit/internal/container"
	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/internal/fast5/fast5test"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// testCorpus is a directory of empty *.fast5 files whose contents are served
// by an in-memory opener.
type testCorpus struct {
	root   string
	opener *container.MemoryOpener
}

func newTestCorpus(t *testing.T) *testCorpus {
	t.Helper()
	c := &testCorpus{root: t.TempDir(), opener: container.NewMemoryOpener()}

	original := openerFactory
	openerFactory = func() porekit.ContainerOpener { return c.opener }
	t.Cleanup(func() { openerFactory = original })

	for _, env := range []string{"POREKIT_WORKERS", "POREKIT_STRICT", "POREKIT_NON_INTERACTIVE"} {
		t.Setenv(env, "")
	}
	return c
}

func (c *testCorpus) add(t *testing.T, rel string, contents *container.MemoryContainer) string {
	t.Helper()
	p := filepath.Join(c.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	if contents != nil {
		c.opener.Add(p, contents)
	}
	return p
}

// standard adds two complete files, one incomplete file and an unrelated file.
func (c *testCorpus) standard(t *testing.T) {
	t.Helper()
	c.add(t, "a/read_1.fast5", fast5test.New(
		fast5test.WithChannel("12"),
		fast5test.WithRead(1),
		fast5test.WithBasecall("Basecall_2D_000", fast5.StrandTemplate, fast5.StrandComplement, fast5.Strand2D),
	))
	c.add(t, "b/read_2.fast5", fast5test.New(
		fast5test.WithChannel("7"),
		fast5test.WithRead(2),
		fast5test.WithBasecall("Basecall_1D_000", fast5.StrandTemplate),
	))
	c.add(t, "b/broken.fast5", fast5test.Invalid())
	c.add(t, "summary.txt", nil)
}

// executeCommand runs the root command with args and fresh flag state.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	collectFlags = runFlagValues{}
	filesFlags = runFlagValues{}
	inspectFlags.runFlagValues = runFlagValues{}
	inspectFlags.json = false
	fastqFlags.runFlagValues = runFlagValues{}
	fastqFlags.strands = nil
	fastqFlags.output = ""
	extractorsFlags.json = false

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				sv.Replace(nil)
			} else {
				f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, cmd := range rootCmd.Commands() {
		reset(cmd.Flags())
	}
}
