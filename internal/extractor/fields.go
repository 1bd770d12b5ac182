package extractor

import (
	"errors"

	"github.com/vvka-141/porekit/internal/fast5"
	"github.com/vvka-141/porekit/pkg/porekit"
)

type kind int

const (
	kindString kind = iota
	kindInt
	kindFloat
)

// field maps one stored attribute to one output key.
type field struct {
	key      string
	attr     string
	kind     kind
	required bool
}

func keysOf(fields []field) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

func extractionError(base string, field string, err error) error {
	return &porekit.ExtractionError{Extractor: base, Field: field, Err: err}
}

// readFields decodes fields from the attributes at path. Absent optional
// attributes are left out of the record; absent required ones and malformed
// values fail the extraction.
func readFields(c porekit.Container, base, path string, fields []field) (porekit.PartialRecord, error) {
	attrs, err := fast5.ReadAttributes(c, path)
	if err != nil {
		return nil, extractionError(base, path, err)
	}

	out := make(porekit.PartialRecord, len(fields))
	for _, f := range fields {
		var v any
		switch f.kind {
		case kindString:
			v, err = attrs.String(f.attr)
		case kindInt:
			v, err = attrs.Int(f.attr)
		case kindFloat:
			v, err = attrs.Float(f.attr)
		}
		if errors.Is(err, fast5.ErrMissingAttribute) && !f.required {
			continue
		}
		if err != nil {
			return nil, extractionError(base, f.attr, err)
		}
		out[f.key] = v
	}
	return out, nil
}
