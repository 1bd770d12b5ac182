package fast5_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/porekit/internal/container"
	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/internal/fast5/fast5test"
	"github.com/vvka-141/porekit/pkg/porekit"
)

type panickingContainer struct{ porekit.Container }

func (panickingContainer) Exists(string) (bool, error) { panic("reader bug") }

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		c    porekit.Container
		want bool
	}{
		{"well formed", fast5test.New(), true},
		{"missing event detection", fast5test.Invalid(), false},
		{"empty container", container.NewMemoryContainer(), false},
		{"existence check fails", fast5test.New().FailOn(fast5.PathGlobalKey, errors.New("bad heap")), false},
		{"existence check panics", panickingContainer{}, false},
		{"nil container", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fast5.IsValid(tt.c))
			if !tt.want {
				assert.ErrorIs(t, fast5.Check(tt.c), porekit.ErrSanityCheck)
			}
		})
	}
}

func TestAnalysisGroups(t *testing.T) {
	c := fast5test.New(
		fast5test.WithBasecall("Basecall_1D_001"),
		fast5test.WithBasecall("Basecall_1D_000"),
		fast5test.WithBasecall("Basecall_2D_000"),
		fast5test.WithBasecall("Basecall_1D_0001"),
		fast5test.WithBasecall("Basecall_1D_abc"),
		fast5test.WithBasecall("Basecall_1D_000_old"),
	)

	groups, err := fast5.AnalysisGroups(c, fast5.Basecall1D)
	require.NoError(t, err)
	assert.Equal(t, []string{"Analyses/Basecall_1D_000", "Analyses/Basecall_1D_001"}, groups)

	all, err := fast5.BasecallGroups(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"Analyses/Basecall_2D_000", "Analyses/Basecall_1D_000", "Analyses/Basecall_1D_001"}, all)
}

func TestReadFastq(t *testing.T) {
	const group = "Analyses/Basecall_2D_000"
	c := fast5test.New(
		fast5test.WithBasecall("Basecall_2D_000", fast5.Strand2D),
		fast5test.WithStrandGroup("Basecall_2D_000", fast5.StrandTemplate),
	)

	b, ok, err := fast5.ReadFastq(c, group, fast5.Strand2D)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, fast5test.FastqBlocks[fast5.Strand2D], string(b))

	_, ok, err = fast5.ReadFastq(c, group, fast5.StrandComplement)
	require.NoError(t, err, "absent subgroup")
	assert.False(t, ok)

	_, ok, err = fast5.ReadFastq(c, group, fast5.StrandTemplate)
	assert.ErrorIs(t, err, porekit.ErrPathNotFound, "subgroup without its dataset")
	assert.False(t, ok)
}

func TestReadNode(t *testing.T) {
	path, err := fast5.ReadNode(fast5test.New(fast5test.WithRead(77)))
	require.NoError(t, err)
	assert.Equal(t, "Analyses/EventDetection_000/Reads/Read_77", path)

	_, err = fast5.ReadNode(fast5test.New())
	assert.ErrorIs(t, err, porekit.ErrPathNotFound)

	empty := fast5test.New()
	empty.AddGroup(fast5.PathReads, nil)
	_, err = fast5.ReadNode(empty)
	assert.ErrorIs(t, err, porekit.ErrPathNotFound)
}

func TestFASTQ(t *testing.T) {
	c := fast5test.New(
		fast5test.WithBasecall("Basecall_2D_000", fast5.StrandTemplate, fast5.Strand2D),
		fast5test.WithBasecall("Basecall_1D_000"),
		fast5test.WithFastq("Basecall_1D_000", fast5.StrandTemplate, "@newer\nA\n+\n!"),
	)

	all, err := fast5.FASTQ(c)
	require.NoError(t, err)
	assert.Equal(t, "@newer\nA\n+\n!\n"+fast5test.FastqBlocks[fast5.Strand2D], all)

	twoD, err := fast5.FASTQ(c, fast5.Strand2D)
	require.NoError(t, err)
	assert.Equal(t, fast5test.FastqBlocks[fast5.Strand2D], twoD)

	none, err := fast5.FASTQ(fast5test.New(), fast5.StrandComplement)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestParseStrand(t *testing.T) {
	s, err := fast5.ParseStrand("complement")
	require.NoError(t, err)
	assert.Equal(t, fast5.StrandComplement, s)
	assert.Equal(t, "BaseCalled_complement", s.Group())

	_, err = fast5.ParseStrand("1D")
	assert.Error(t, err)
}

func TestOpenValid(t *testing.T) {
	opener := container.NewMemoryOpener()
	opener.Add("/r/good1.fast5", fast5test.New())
	opener.Add("/r/bad.fast5", fast5test.Invalid())
	opener.Add("/r/good2.fast5", fast5test.New())
	opener.FailOpen("/r/corrupt.fast5", errors.New("not an HDF5 file"))

	paths := func(yield func(string, error) bool) {
		for _, p := range []string{"/r/good1.fast5", "/r/bad.fast5", "/r/corrupt.fast5", "/r/good2.fast5"} {
			if !yield(p, nil) {
				return
			}
		}
	}

	var opened []string
	for f, err := range fast5.OpenValid(paths, opener) {
		require.NoError(t, err)
		opened = append(opened, f.Path)
		require.NoError(t, f.Container.Close())
	}

	assert.Equal(t, []string{"/r/good1.fast5", "/r/good2.fast5"}, opened)
	assert.False(t, slices.Contains(opened, "/r/bad.fast5"))
	assert.True(t, opener.AllClosed(), "invalid files are closed by OpenValid")
}

func TestOpenValid_PassesDiscoveryErrors(t *testing.T) {
	boom := errors.New("permission denied")
	paths := func(yield func(string, error) bool) {
		yield("", boom)
	}

	var errs []error
	for _, err := range fast5.OpenValid(paths, container.NewMemoryOpener()) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
}
