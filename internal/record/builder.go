// Package record turns one fast5 file into one flat, namespaced record.
package record

import (
	"errors"
	"fmt"

	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/internal/logging"
	"github.com/vvka-141/porekit/pkg/porekit"
)

// Builder opens a file, runs extractors over it and merges their output.
// A Builder is safe for concurrent use if its opener and logger are; the
// extractors passed to Build are not shared by the Builder itself.
type Builder struct {
	opener porekit.ContainerOpener
	strict bool
	check  func(porekit.Container) error
	logger porekit.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithStrict makes the first extraction failure abort Build.
func WithStrict(strict bool) Option {
	return func(b *Builder) { b.strict = strict }
}

// WithSanityCheck rejects containers for which check returns an error.
// Build then returns that error and no record.
func WithSanityCheck(check func(porekit.Container) error) Option {
	return func(b *Builder) { b.check = check }
}

// WithLogger sets the logger used to report swallowed extraction failures.
func WithLogger(logger porekit.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// NewBuilder creates a Builder reading containers through opener.
// Panics if opener is nil.
func NewBuilder(opener porekit.ContainerOpener, opts ...Option) *Builder {
	if opener == nil {
		panic("opener cannot be nil")
	}
	b := &Builder{opener: opener, logger: logging.NewNullLogger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFilteringBuilder creates a Builder that skips files failing the fast5
// structure check.
func NewFilteringBuilder(opener porekit.ContainerOpener, opts ...Option) *Builder {
	return NewBuilder(opener, append([]Option{WithSanityCheck(fast5.Check)}, opts...)...)
}

// Strict reports whether extraction failures abort Build.
func (b *Builder) Strict() bool { return b.strict }

// Build produces the record for path.
//
// If the container cannot be opened, Build returns the identity-only record
// together with a *porekit.UnopenableFileError. If a sanity check is
// configured and fails, Build returns a nil record and an error wrapping
// porekit.ErrSanityCheck. Extractors run in the order given; a failing one
// contributes nothing unless the builder is strict, in which case its
// *porekit.ExtractionError is returned. A panic while opening or extracting
// is reported the same way as the corresponding error. The container is
// closed before Build returns in every case.
func (b *Builder) Build(path string, extractors []porekit.Extractor) (porekit.Record, error) {
	rec := porekit.NewRecord(path)

	c, err := b.open(path)
	if err != nil {
		return rec, &porekit.UnopenableFileError{Path: path, Err: err}
	}
	defer b.close(path, c)

	if b.check != nil {
		if err := b.check(c); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	for _, e := range extractors {
		d := e.Descriptor()
		part, err := run(e, c)
		if err != nil {
			extErr := asExtractionError(d.BaseName, path, err)
			if b.strict {
				return nil, extErr
			}
			b.logger.Verbose("%v", extErr)
			continue
		}
		for k, v := range part {
			rec[d.Column(k)] = normalize(v)
		}
	}

	coerceChannelNumber(rec)
	return rec, nil
}

// open turns a panic in the opener into an ordinary open failure.
func (b *Builder) open(path string) (c porekit.Container, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("panic while opening: %v", r)
		}
	}()
	return b.opener.Open(path)
}

func (b *Builder) close(path string, c porekit.Container) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Verbose("close %s: panic: %v", path, r)
		}
	}()
	if err := c.Close(); err != nil {
		b.logger.Verbose("close %s: %v", path, err)
	}
}

// run turns a panic in an extractor into an extraction failure.
func run(e porekit.Extractor, c porekit.Container) (part porekit.PartialRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			part, err = nil, fmt.Errorf("panic while extracting: %v", r)
		}
	}()
	return e.Run(c)
}

func asExtractionError(base, path string, err error) *porekit.ExtractionError {
	var extErr *porekit.ExtractionError
	if errors.As(err, &extErr) {
		cp := *extErr
		if cp.Path == "" {
			cp.Path = path
		}
		if cp.Extractor == "" {
			cp.Extractor = base
		}
		return &cp
	}
	return &porekit.ExtractionError{Extractor: base, Path: path, Err: err}
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func coerceChannelNumber(rec porekit.Record) {
	v, ok := rec[porekit.FieldChannelNumber]
	if !ok {
		return
	}
	n, err := fast5.AsInt(v)
	if err != nil {
		n = 0
	}
	rec[porekit.FieldChannelNumber] = n
}
