package container

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"strings"
	"sync"

	"github.com/vvka-141/porekit/pkg/porekit"
)

// ErrClosed is returned by a MemoryContainer used after Close.
var ErrClosed = errors.New("container is closed")

type memoryNode struct {
	dataset  bool
	attrs    map[string]any
	data     []byte
	children []string
}

// MemoryContainer is an in-memory porekit.Container for tests.
// Groups and datasets are declared up front; parents are created implicitly.
type MemoryContainer struct {
	nodes    map[string]*memoryNode
	failures map[string]error
	panics   map[string]any
	closed   bool
}

var _ porekit.Container = (*MemoryContainer)(nil)

// NewMemoryContainer returns a container holding only the root group.
func NewMemoryContainer() *MemoryContainer {
	return &MemoryContainer{
		nodes:    map[string]*memoryNode{"": {attrs: map[string]any{}}},
		failures: make(map[string]error),
		panics:   make(map[string]any),
	}
}

func cleanPath(p string) string {
	return strings.Join(splitPath(p), "/")
}

func (m *MemoryContainer) ensure(p string, dataset bool) *memoryNode {
	p = cleanPath(p)
	if n, ok := m.nodes[p]; ok {
		return n
	}

	parent := ""
	name := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		parent, name = p[:i], p[i+1:]
	}
	pn := m.ensure(parent, false)
	pn.children = append(pn.children, name)

	n := &memoryNode{dataset: dataset, attrs: map[string]any{}}
	m.nodes[p] = n
	return n
}

// AddGroup declares a group with the given attributes.
func (m *MemoryContainer) AddGroup(p string, attrs map[string]any) *MemoryContainer {
	n := m.ensure(p, false)
	maps.Copy(n.attrs, attrs)
	return m
}

// AddDataset declares a dataset holding data, with optional attributes.
func (m *MemoryContainer) AddDataset(p string, data []byte, attrs map[string]any) *MemoryContainer {
	n := m.ensure(p, true)
	n.dataset = true
	n.data = data
	maps.Copy(n.attrs, attrs)
	return m
}

// FailOn makes every operation on p return err.
func (m *MemoryContainer) FailOn(p string, err error) *MemoryContainer {
	m.failures[cleanPath(p)] = err
	return m
}

// PanicOn makes every operation on p panic with v, as a reader hitting a
// corrupt structure might.
func (m *MemoryContainer) PanicOn(p string, v any) *MemoryContainer {
	m.panics[cleanPath(p)] = v
	return m
}

// Closed reports whether Close has been called.
func (m *MemoryContainer) Closed() bool { return m.closed }

func (m *MemoryContainer) node(p string) (*memoryNode, error) {
	if m.closed {
		return nil, ErrClosed
	}
	p = cleanPath(p)
	if v, ok := m.panics[p]; ok {
		panic(v)
	}
	if err, ok := m.failures[p]; ok {
		return nil, err
	}
	n, ok := m.nodes[p]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, porekit.ErrPathNotFound)
	}
	return n, nil
}

func (m *MemoryContainer) Exists(p string) (bool, error) {
	_, err := m.node(p)
	if errors.Is(err, porekit.ErrPathNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *MemoryContainer) Attrs(p string) (map[string]any, error) {
	n, err := m.node(p)
	if err != nil {
		return nil, err
	}
	return maps.Clone(n.attrs), nil
}

func (m *MemoryContainer) ReadBytes(p string) ([]byte, error) {
	n, err := m.node(p)
	if err != nil {
		return nil, err
	}
	if !n.dataset {
		return nil, fmt.Errorf("%s is not a dataset", p)
	}
	return append([]byte(nil), n.data...), nil
}

func (m *MemoryContainer) Children(p string) ([]string, error) {
	n, err := m.node(p)
	if err != nil {
		return nil, err
	}
	if n.dataset {
		return nil, fmt.Errorf("%s is not a group", p)
	}
	return append([]string(nil), n.children...), nil
}

func (m *MemoryContainer) Close() error {
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	return nil
}

// clone shares node contents, which are never mutated after setup,
// but gives the copy its own closed state.
func (m *MemoryContainer) clone() *MemoryContainer {
	return &MemoryContainer{nodes: m.nodes, failures: m.failures, panics: m.panics}
}

// MemoryOpener serves MemoryContainers by path. Each Open returns a fresh
// handle, so concurrent workers never share one. Safe for concurrent use.
type MemoryOpener struct {
	mu       sync.Mutex
	files    map[string]*MemoryContainer
	failures map[string]error
	handles  []*MemoryContainer
}

var _ porekit.ContainerOpener = (*MemoryOpener)(nil)

// NewMemoryOpener returns an opener with no files.
func NewMemoryOpener() *MemoryOpener {
	return &MemoryOpener{
		files:    make(map[string]*MemoryContainer),
		failures: make(map[string]error),
	}
}

// Add registers c as the contents of path.
func (o *MemoryOpener) Add(path string, c *MemoryContainer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files[path] = c
}

// FailOpen makes Open(path) return err.
func (o *MemoryOpener) FailOpen(path string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures[path] = err
}

func (o *MemoryOpener) Open(path string) (porekit.Container, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err, ok := o.failures[path]; ok {
		return nil, err
	}
	c, ok := o.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	h := c.clone()
	o.handles = append(o.handles, h)
	return h, nil
}

// Opened returns how many handles Open has handed out.
func (o *MemoryOpener) Opened() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.handles)
}

// AllClosed reports whether every handed-out handle has been closed.
func (o *MemoryOpener) AllClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, h := range o.handles {
		if !h.closed {
			return false
		}
	}
	return true
}
