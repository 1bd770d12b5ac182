package container

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/porekit/pkg/porekit"
)

func TestMemoryContainer(t *testing.T) {
	c := NewMemoryContainer().
		AddGroup("/UniqueGlobalKey/channel_id", map[string]any{"channel_number": "12"}).
		AddDataset("/Analyses/Basecall_1D_000/BaseCalled_template/Fastq", []byte("@r\nA\n+\n!\n"), nil)

	tests := []struct {
		path string
		want bool
	}{
		{"UniqueGlobalKey", true},
		{"/UniqueGlobalKey/channel_id", true},
		{"Analyses/Basecall_1D_000/BaseCalled_template/Fastq", true},
		{"Analyses/EventDetection_000", false},
		{"/", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ok, err := c.Exists(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	attrs, err := c.Attrs("UniqueGlobalKey/channel_id")
	require.NoError(t, err)
	assert.Equal(t, "12", attrs["channel_number"])

	_, err = c.Attrs("UniqueGlobalKey/tracking_id")
	assert.ErrorIs(t, err, porekit.ErrPathNotFound)

	children, err := c.Children("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"UniqueGlobalKey", "Analyses"}, children, "insertion order")

	data, err := c.ReadBytes("Analyses/Basecall_1D_000/BaseCalled_template/Fastq")
	require.NoError(t, err)
	assert.Equal(t, "@r\nA\n+\n!\n", string(data))

	_, err = c.ReadBytes("Analyses")
	assert.Error(t, err)
	_, err = c.Children("Analyses/Basecall_1D_000/BaseCalled_template/Fastq")
	assert.Error(t, err)
}

func TestMemoryContainer_FailOn(t *testing.T) {
	boom := errors.New("corrupt b-tree")
	c := NewMemoryContainer().AddGroup("Analyses", nil).FailOn("Analyses", boom)

	ok, err := c.Exists("Analyses")
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestMemoryContainer_Close(t *testing.T) {
	c := NewMemoryContainer()
	require.NoError(t, c.Close())
	assert.True(t, c.Closed())
	assert.ErrorIs(t, c.Close(), ErrClosed)

	_, err := c.Exists("/")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryOpener(t *testing.T) {
	opener := NewMemoryOpener()
	opener.Add("/runs/a.fast5", NewMemoryContainer().AddGroup("Analyses", nil))
	opener.FailOpen("/runs/bad.fast5", errors.New("not an HDF5 file"))

	h1, err := opener.Open("/runs/a.fast5")
	require.NoError(t, err)
	h2, err := opener.Open("/runs/a.fast5")
	require.NoError(t, err)
	assert.NotSame(t, h1, h2, "every open is a distinct handle")

	require.NoError(t, h1.Close())
	assert.False(t, opener.AllClosed())
	require.NoError(t, h2.Close())
	assert.True(t, opener.AllClosed())
	assert.Equal(t, 2, opener.Opened())

	_, err = opener.Open("/runs/bad.fast5")
	assert.ErrorContains(t, err, "not an HDF5 file")

	_, err = opener.Open("/runs/missing.fast5")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
