package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkPaths(t *testing.T, dir Directory) (files []string, errs []error) {
	t.Helper()
	err := dir.Walk(func(file File, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !file.IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	return files, errs
}

func TestMemoryFileSystem_Walk(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("run1/reads/b.fast5", 10)
	mfs.AddFile("run1/reads/a.fast5", 10)
	mfs.AddFile("notes.txt", 3)
	mfs.AddDir("empty")

	dir, err := mfs.Open("/data")
	require.NoError(t, err)

	files, errs := walkPaths(t, dir)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"notes.txt", "run1/reads/a.fast5", "run1/reads/b.fast5"}, files)
}

func TestMemoryFileSystem_SkipDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("keep/a.fast5", 1)
	mfs.AddFile("skip/b.fast5", 1)

	dir, err := mfs.Open("/data")
	require.NoError(t, err)

	var seen []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if file.IsDir() && file.Name() == "skip" {
			return fs.SkipDir
		}
		if !file.IsDir() {
			seen = append(seen, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep/a.fast5"}, seen)
}

func TestMemoryFileSystem_FailAt(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("ok/a.fast5", 1)
	mfs.FailAt("locked", fs.ErrPermission)

	dir, err := mfs.Open("/data")
	require.NoError(t, err)

	files, errs := walkPaths(t, dir)
	assert.Equal(t, []string{"ok/a.fast5"}, files)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], fs.ErrPermission))
	assert.Contains(t, errs[0].Error(), "/data/locked")
}

func TestMemoryFileSystem_CallbackErrorStopsWalk(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.fast5", 1)
	mfs.AddFile("b.fast5", 1)
	stop := errors.New("stop")

	dir, err := mfs.Open("/data")
	require.NoError(t, err)

	calls := 0
	err = dir.Walk(func(file File, err error) error {
		calls++
		if !file.IsDir() {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls, "root directory then first file")
}

func TestMemoryFileSystem_CallbackPanicBecomesError(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.fast5", 1)

	dir, err := mfs.Open("/data")
	require.NoError(t, err)

	err = dir.Walk(func(file File, err error) error {
		if !file.IsDir() {
			panic("boom")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestMemoryFileSystem_OpenAndStat(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.fast5", 42)

	_, err := mfs.Open("/data/a.fast5")
	assert.Error(t, err, "file is not a directory")

	_, err = mfs.Open("/missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	info, err := mfs.Stat("a.fast5")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, int64(42), info.Size())

	info, err = mfs.Stat("/data")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
