package fast5

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vvka-141/porekit/pkg/porekit"
)

// ErrMissingAttribute is returned when a required attribute is absent.
var ErrMissingAttribute = errors.New("attribute missing")

// Attributes is the attribute set of one group, with typed accessors.
type Attributes struct {
	Path   string
	values map[string]any
}

// ReadAttributes loads the attributes of the group or dataset at p.
func ReadAttributes(c porekit.Container, p string) (Attributes, error) {
	values, err := c.Attrs(p)
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{Path: p, values: values}, nil
}

// Has reports whether the attribute is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

func (a Attributes) get(name string) (any, error) {
	v, ok := a.values[name]
	if !ok {
		return nil, fmt.Errorf("%s@%s: %w", a.Path, name, ErrMissingAttribute)
	}
	return v, nil
}

// String returns the attribute as text.
func (a Attributes) String(name string) (string, error) {
	v, err := a.get(name)
	if err != nil {
		return "", err
	}
	s, err := AsString(v)
	if err != nil {
		return "", fmt.Errorf("%s@%s: %w", a.Path, name, err)
	}
	return s, nil
}

// Int returns the attribute as an integer.
func (a Attributes) Int(name string) (int64, error) {
	v, err := a.get(name)
	if err != nil {
		return 0, err
	}
	n, err := AsInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s@%s: %w", a.Path, name, err)
	}
	return n, nil
}

// Float returns the attribute as a float.
func (a Attributes) Float(name string) (float64, error) {
	v, err := a.get(name)
	if err != nil {
		return 0, err
	}
	f, err := AsFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%s@%s: %w", a.Path, name, err)
	}
	return f, nil
}

// scalar unwraps single-element slices, which is how some writers store
// scalar attributes.
func scalar(v any) any {
	switch s := v.(type) {
	case []string:
		if len(s) == 1 {
			return s[0]
		}
	case []int64:
		if len(s) == 1 {
			return s[0]
		}
	case []uint64:
		if len(s) == 1 {
			return s[0]
		}
	case []float64:
		if len(s) == 1 {
			return s[0]
		}
	}
	return v
}

// AsString decodes text, byte strings and numbers to a string.
func AsString(v any) (string, error) {
	switch t := scalar(v).(type) {
	case string:
		return strings.TrimRight(t, "\x00"), nil
	case []byte:
		return strings.TrimRight(string(t), "\x00"), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("cannot decode %T as string", v)
}

// AsInt decodes integers, integral floats and numeric text to int64.
func AsInt(v any) (int64, error) {
	switch t := scalar(v).(type) {
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", t)
		}
		return int64(t), nil
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, fmt.Errorf("value %v is not integral", t)
		}
		return int64(t), nil
	case string, []byte:
		s, _ := AsString(t)
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot decode %q as integer", s)
		}
		return n, nil
	}
	return 0, fmt.Errorf("cannot decode %T as integer", v)
}

// AsFloat decodes numbers and numeric text to float64.
func AsFloat(v any) (float64, error) {
	switch t := scalar(v).(type) {
	case float32:
		return float64(t), nil
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case string, []byte:
		s, _ := AsString(t)
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot decode %q as float", s)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot decode %T as float", v)
}
