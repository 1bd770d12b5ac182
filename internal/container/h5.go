package container

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/vvka-141/porekit/pkg/porekit"
)

// H5Opener opens fast5 files with github.com/robert-malhotra/go-hdf5.
// It holds no state and is safe for concurrent use.
type H5Opener struct{}

var _ porekit.ContainerOpener = H5Opener{}

// NewH5Opener returns an opener for on-disk HDF5 files.
func NewH5Opener() H5Opener {
	return H5Opener{}
}

func (H5Opener) Open(path string) (porekit.Container, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hdf5 %s: %w", path, err)
	}
	return &H5File{f: f}, nil
}

// H5File adapts an open *hdf5.File to porekit.Container.
type H5File struct {
	f *hdf5.File
}

var _ porekit.Container = (*H5File)(nil)

type attributeHolder interface {
	Attrs() []string
	Attr(name string) *hdf5.Attribute
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// resolve walks p one member at a time so that absent components are
// reported as porekit.ErrPathNotFound rather than a reader-specific error.
// Exactly one of the returned group and dataset is non-nil on success.
func (h *H5File) resolve(p string) (*hdf5.Group, *hdf5.Dataset, error) {
	g := h.f.Root()
	parts := splitPath(p)

	for i, name := range parts {
		members, err := g.Members()
		if err != nil {
			return nil, nil, fmt.Errorf("list %s: %w", g.Path(), err)
		}
		if !slices.Contains(members, name) {
			return nil, nil, fmt.Errorf("%s: %w", p, porekit.ErrPathNotFound)
		}

		sub, err := g.OpenGroup(name)
		if errors.Is(err, hdf5.ErrNotGroup) {
			if i < len(parts)-1 {
				return nil, nil, fmt.Errorf("%s: %w", p, porekit.ErrPathNotFound)
			}
			ds, err := g.OpenDataset(name)
			if err != nil {
				return nil, nil, fmt.Errorf("open dataset %s: %w", p, err)
			}
			return nil, ds, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("open group %s: %w", p, err)
		}
		g = sub
	}

	return g, nil, nil
}

func (h *H5File) Exists(p string) (bool, error) {
	_, _, err := h.resolve(p)
	if errors.Is(err, porekit.ErrPathNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (h *H5File) Attrs(p string) (map[string]any, error) {
	g, ds, err := h.resolve(p)
	if err != nil {
		return nil, err
	}

	var holder attributeHolder = g
	if ds != nil {
		holder = ds
	}

	names := holder.Attrs()
	attrs := make(map[string]any, len(names))
	for _, name := range names {
		attr := holder.Attr(name)
		if attr == nil {
			continue
		}
		v, err := attr.Value()
		if err != nil {
			return nil, fmt.Errorf("read attribute %s@%s: %w", p, name, err)
		}
		attrs[name] = v
	}
	return attrs, nil
}

// ReadBytes returns string datasets as their text and anything else as the
// raw stored bytes.
func (h *H5File) ReadBytes(p string) ([]byte, error) {
	_, ds, err := h.resolve(p)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("%s: %w", p, hdf5.ErrNotDataset)
	}

	if t, err := ds.GoType(); err == nil && t.Kind() == reflect.String {
		values, err := ds.ReadString()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		return []byte(strings.Join(values, "")), nil
	}

	raw, err := ds.ReadRaw()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return raw, nil
}

func (h *H5File) Children(p string) ([]string, error) {
	g, _, err := h.resolve(p)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%s: %w", p, hdf5.ErrNotGroup)
	}
	return g.Members()
}

func (h *H5File) Close() error {
	return h.f.Close()
}
