package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type memoryFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (f *memoryFileInfo) Name() string { return f.name }
func (f *memoryFileInfo) Size() int64  { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode {
	if f.isDir {
		return 0755 | fs.ModeDir
	}
	return 0644
}
func (f *memoryFileInfo) ModTime() time.Time { return time.Time{} }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	absPath string
	relPath string
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Name() string         { return f.info.name }
func (f *memoryFile) IsDir() bool          { return f.info.isDir }

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

// Walk visits entries sorted by path. A path registered with FailAt is
// reported to fn as an error instead of an entry.
func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	var skipped []string
	for _, entry := range entries {
		if underAny(entry.absPath, skipped) {
			continue
		}

		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			if failure, ok := d.fs.failures[entry.absPath]; ok {
				callbackErr = fn(nil, fmt.Errorf("%s: %w", entry.absPath, failure))
				return
			}
			callbackErr = fn(entry, nil)
		}()

		if errors.Is(callbackErr, fs.SkipDir) && entry.info.isDir {
			skipped = append(skipped, entry.absPath)
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

func underAny(p string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes regardless of platform.
type MemoryFileSystem struct {
	files    map[string]*memoryFile
	failures map[string]error
	root     string
}

// NewMemoryFileSystem creates an in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:    make(map[string]*memoryFile),
		failures: make(map[string]error),
		root:     root,
	}
	mfs.files[root] = &memoryFile{
		absPath: root,
		relPath: ".",
		info:    &memoryFileInfo{name: path.Base(root), isDir: true},
	}
	return mfs
}

// Root returns the filesystem root.
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// AddFile adds a file of the given size, creating parent directories.
// Relative paths are resolved against the root. Returns the absolute path.
func (mfs *MemoryFileSystem) AddFile(filePath string, size int64) string {
	absPath := mfs.resolve(filePath)
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: mfs.rel(absPath),
		info:    &memoryFileInfo{name: path.Base(absPath), size: size},
	}
	mfs.ensureDirectoriesExist(absPath)
	return absPath
}

// AddDir adds an empty directory, creating parents.
func (mfs *MemoryFileSystem) AddDir(dirPath string) string {
	absPath := mfs.resolve(dirPath)
	mfs.addDir(absPath)
	mfs.ensureDirectoriesExist(absPath)
	return absPath
}

// FailAt makes walks report err when they reach p, as a permission
// failure on the host filesystem would.
func (mfs *MemoryFileSystem) FailAt(p string, err error) {
	absPath := mfs.resolve(p)
	if _, ok := mfs.files[absPath]; !ok {
		mfs.addDir(absPath)
		mfs.ensureDirectoriesExist(absPath)
	}
	mfs.failures[absPath] = err
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) rel(absPath string) string {
	if absPath == mfs.root {
		return "."
	}
	return strings.TrimPrefix(absPath, strings.TrimSuffix(mfs.root, "/")+"/")
}

func (mfs *MemoryFileSystem) addDir(absPath string) {
	if _, exists := mfs.files[absPath]; exists {
		return
	}
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: mfs.rel(absPath),
		info:    &memoryFileInfo{name: path.Base(absPath), isDir: true},
	}
}

func (mfs *MemoryFileSystem) ensureDirectoriesExist(p string) {
	dir := path.Dir(p)
	if dir == "." || dir == "/" || dir == mfs.root || !strings.HasPrefix(dir, mfs.root) {
		return
	}
	mfs.addDir(dir)
	mfs.ensureDirectoriesExist(dir)
}

func (mfs *MemoryFileSystem) entriesUnder(basePath string) []*memoryFile {
	var entries []*memoryFile
	for p, file := range mfs.files {
		if p == basePath || strings.HasPrefix(p, strings.TrimSuffix(basePath, "/")+"/") {
			entries = append(entries, file)
		}
	}
	return entries
}

func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to access path: %s: %w", openPath, fs.ErrNotExist)
	}
	if !file.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.resolve(statPath)
	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return file.info, nil
}
