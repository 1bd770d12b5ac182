package extractor

import (
	"fmt"
	"sync"

	"github.com/vvka-141/porekit/pkg/porekit"
)

// Catalog is an ordered registry of extractor factories keyed by base name.
// Safe for concurrent use.
type Catalog struct {
	mu          sync.RWMutex
	names       []string
	factories   map[string]porekit.ExtractorFactory
	descriptors map[string]porekit.ExtractorDescriptor
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories:   make(map[string]porekit.ExtractorFactory),
		descriptors: make(map[string]porekit.ExtractorDescriptor),
	}
}

// Default returns a catalog holding the built-in extractors.
func Default() *Catalog {
	c := NewCatalog()
	for _, f := range []porekit.ExtractorFactory{NewChannel, NewTracking, NewBasecall, NewRead} {
		if err := c.Register(f); err != nil {
			panic(fmt.Sprintf("built-in extractor: %v", err))
		}
	}
	return c
}

// Register adds a factory. It builds one instance to read the descriptor and
// rejects empty or duplicate base names and malformed key sets.
func (c *Catalog) Register(factory porekit.ExtractorFactory) error {
	if factory == nil {
		return fmt.Errorf("nil extractor factory: %w", porekit.ErrInvalidConfig)
	}
	probe, err := factory()
	if err != nil {
		return fmt.Errorf("construct extractor: %w: %w", porekit.ErrInvalidConfig, err)
	}
	d := probe.Descriptor()
	if err := d.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.factories[d.BaseName]; dup {
		return fmt.Errorf("extractor %q already registered: %w", d.BaseName, porekit.ErrInvalidConfig)
	}
	c.names = append(c.names, d.BaseName)
	c.factories[d.BaseName] = factory
	c.descriptors[d.BaseName] = d
	return nil
}

// Names returns the registered base names in registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.names...)
}

// Descriptor returns the descriptor recorded for name at registration.
func (c *Catalog) Descriptor(name string) (porekit.ExtractorDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.descriptors[name]
	return d, ok
}

// Factories resolves names to factories, in the order given.
// A nil slice selects every registered extractor; an empty non-nil slice
// selects none. Unknown or repeated names are configuration errors.
func (c *Catalog) Factories(names []string) ([]porekit.ExtractorFactory, error) {
	if names == nil {
		names = c.Names()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool, len(names))
	factories := make([]porekit.ExtractorFactory, 0, len(names))
	for _, name := range names {
		f, ok := c.factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown extractor %q: %w", name, porekit.ErrInvalidConfig)
		}
		if seen[name] {
			return nil, fmt.Errorf("extractor %q selected twice: %w", name, porekit.ErrInvalidConfig)
		}
		seen[name] = true
		factories = append(factories, f)
	}
	return factories, nil
}

// Build constructs fresh instances of the named extractors.
func (c *Catalog) Build(names []string) ([]porekit.Extractor, error) {
	factories, err := c.Factories(names)
	if err != nil {
		return nil, err
	}
	return Instantiate(factories)
}

// Instantiate calls every factory once, in order.
func Instantiate(factories []porekit.ExtractorFactory) ([]porekit.Extractor, error) {
	extractors := make([]porekit.Extractor, len(factories))
	for i, f := range factories {
		e, err := f()
		if err != nil {
			return nil, fmt.Errorf("construct extractor: %w: %w", porekit.ErrInvalidConfig, err)
		}
		extractors[i] = e
	}
	return extractors, nil
}
