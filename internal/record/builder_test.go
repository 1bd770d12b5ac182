package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/porekit/internal/container"
	"github.com/vvka-141/porekit/internal/extractor"
	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/internal/fast5/fast5test"
	"github.com/vvka-141/porekit/pkg/porekit"
)

type fakeExtractor struct {
	base string
	keys []string
	out  porekit.PartialRecord
	err  error
}

func (f fakeExtractor) Descriptor() porekit.ExtractorDescriptor {
	return porekit.ExtractorDescriptor{BaseName: f.base, ExpectedKeys: f.keys}
}

func (f fakeExtractor) Run(porekit.Container) (porekit.PartialRecord, error) {
	return f.out, f.err
}

func defaultExtractors(t *testing.T) []porekit.Extractor {
	t.Helper()
	extractors, err := extractor.Default().Build(nil)
	require.NoError(t, err)
	return extractors
}

func TestBuild_FullFile(t *testing.T) {
	opener := container.NewMemoryOpener()
	opener.Add("/runs/read_1.fast5", fast5test.New(
		fast5test.WithChannel("118"),
		fast5test.WithTracking(),
		fast5test.WithRead(9),
		fast5test.WithBasecall("Basecall_2D_000", fast5.StrandTemplate, fast5.Strand2D),
	))

	rec, err := NewBuilder(opener).Build("/runs/read_1.fast5", defaultExtractors(t))
	require.NoError(t, err)

	assert.Equal(t, "read_1.fast5", rec[porekit.FieldFilename])
	assert.Equal(t, "/runs/read_1.fast5", rec[porekit.FieldAbsoluteFilename])
	assert.Equal(t, int64(118), rec["channel_number"])
	assert.Equal(t, "a1b2c3", rec["tracking_run_id"])
	assert.Equal(t, int64(9), rec["read_number"])
	assert.Equal(t, int64(6), rec["basecall_template_length"])
	assert.Equal(t, true, rec["basecall_has_2D"])
	assert.NotContains(t, rec, "basecall_complement_length")
	assert.True(t, opener.AllClosed())
}

func TestBuild_ChannelNumberCoercion(t *testing.T) {
	tests := []struct {
		name   string
		stored any
		want   any
	}{
		{"text", "42", int64(42)},
		{"integer", int64(7), int64(7)},
		{"garbage", "ch-7", int64(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := container.NewMemoryOpener()
			opener.Add("/a.fast5", fast5test.New(fast5test.WithChannel(tt.stored)))

			rec, err := NewBuilder(opener).Build("/a.fast5", []porekit.Extractor{extractor.Channel{}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec["channel_number"])
		})
	}
}

func TestBuild_BytesBecomeText(t *testing.T) {
	opener := container.NewMemoryOpener()
	opener.Add("/a.fast5", fast5test.New())
	e := fakeExtractor{base: "raw", keys: []string{"blob"}, out: porekit.PartialRecord{"blob": []byte("abc")}}

	rec, err := NewBuilder(opener).Build("/a.fast5", []porekit.Extractor{e})
	require.NoError(t, err)
	assert.Equal(t, "abc", rec["raw_blob"])
}

func TestBuild_LenientSkipsFailedExtractor(t *testing.T) {
	opener := container.NewMemoryOpener()
	opener.Add("/a.fast5", fast5test.New())
	extractors := []porekit.Extractor{
		fakeExtractor{base: "first", keys: []string{"x"}, out: porekit.PartialRecord{"x": 1}},
		fakeExtractor{base: "broken", keys: []string{"y"}, err: errors.New("attribute missing")},
		fakeExtractor{base: "last", keys: []string{"z"}, out: porekit.PartialRecord{"z": 3}},
	}

	rec, err := NewBuilder(opener).Build("/a.fast5", extractors)
	require.NoError(t, err)
	assert.Equal(t, 1, rec["first_x"])
	assert.Equal(t, 3, rec["last_z"])
	assert.NotContains(t, rec, "broken_y")
	assert.True(t, opener.AllClosed())
}

func TestBuild_StrictPropagates(t *testing.T) {
	opener := container.NewMemoryOpener()
	opener.Add("/a.fast5", fast5test.New())
	extractors := []porekit.Extractor{
		fakeExtractor{base: "broken", keys: []string{"y"}, err: errors.New("attribute missing")},
		fakeExtractor{base: "never", keys: []string{"z"}, out: porekit.PartialRecord{"z": 3}},
	}

	rec, err := NewBuilder(opener, WithStrict(true)).Build("/a.fast5", extractors)
	assert.Nil(t, rec)
	var extErr *porekit.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "broken", extErr.Extractor)
	assert.Equal(t, "/a.fast5", extErr.Path)
	assert.True(t, opener.AllClosed(), "handle released on failure")
}

func TestBuild_Unopenable(t *testing.T) {
	opener := container.NewMemoryOpener()
	opener.FailOpen("/bad.fast5", errors.New("not an HDF5 file"))

	rec, err := NewBuilder(opener, WithStrict(true)).Build("/bad.fast5", defaultExtractors(t))
	assert.ErrorIs(t, err, porekit.ErrUnopenableFile)
	assert.Equal(t, porekit.Record{
		porekit.FieldFilename:         "bad.fast5",
		porekit.FieldAbsoluteFilename: "/bad.fast5",
	}, rec)
}

func TestBuild_SanityCheck(t *testing.T) {
	opener := container.NewMemoryOpener()
	opener.Add("/invalid.fast5", fast5test.Invalid())

	rec, err := NewFilteringBuilder(opener).Build("/invalid.fast5", defaultExtractors(t))
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, porekit.ErrSanityCheck)
	assert.True(t, opener.AllClosed())

	rec, err = NewBuilder(opener).Build("/invalid.fast5", nil)
	require.NoError(t, err, "an individually requested file skips the check")
	assert.Len(t, rec, 2)
}

func TestNewBuilder_NilOpenerPanics(t *testing.T) {
	assert.Panics(t, func() { NewBuilder(nil) })
}

func TestBuild_PanicsBecomeErrors(t *testing.T) {
	corrupt := func() *container.MemoryContainer {
		return fast5test.New(fast5test.WithChannel("4"), fast5test.WithRead(2)).
			PanicOn(fast5.PathChannelID, "index out of range")
	}
	extractors := []porekit.Extractor{extractor.Channel{}, extractor.Read{}}

	t.Run("lenient", func(t *testing.T) {
		opener := container.NewMemoryOpener()
		opener.Add("/a.fast5", corrupt())

		rec, err := NewBuilder(opener).Build("/a.fast5", extractors)
		require.NoError(t, err)
		assert.NotContains(t, rec, "channel_number")
		assert.Equal(t, int64(2), rec["read_number"])
		assert.True(t, opener.AllClosed())
	})

	t.Run("strict", func(t *testing.T) {
		opener := container.NewMemoryOpener()
		opener.Add("/a.fast5", corrupt())

		rec, err := NewBuilder(opener, WithStrict(true)).Build("/a.fast5", extractors)
		assert.Nil(t, rec)
		var extErr *porekit.ExtractionError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, "channel", extErr.Extractor)
		assert.Contains(t, err.Error(), "index out of range")
		assert.True(t, opener.AllClosed())
	})

	t.Run("open", func(t *testing.T) {
		opener := porekit.ContainerOpenerFunc(func(string) (porekit.Container, error) {
			panic("bad superblock")
		})

		rec, err := NewBuilder(opener, WithStrict(true)).Build("/bad.fast5", extractors)
		assert.ErrorIs(t, err, porekit.ErrUnopenableFile)
		assert.Contains(t, err.Error(), "bad superblock")
		assert.Equal(t, "bad.fast5", rec[porekit.FieldFilename])
		assert.Len(t, rec, 2)
	})
}
