package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/porekit/pkg/porekit"
)

type stubExtractor struct {
	d porekit.ExtractorDescriptor
}

func (s stubExtractor) Descriptor() porekit.ExtractorDescriptor { return s.d }

func (s stubExtractor) Run(porekit.Container) (porekit.PartialRecord, error) {
	return porekit.PartialRecord{}, nil
}

func stub(base string, keys ...string) porekit.ExtractorFactory {
	return func() (porekit.Extractor, error) {
		return stubExtractor{d: porekit.ExtractorDescriptor{BaseName: base, ExpectedKeys: keys}}, nil
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"channel", "tracking", "basecall", "read"}, c.Names())

	d, ok := c.Descriptor("read")
	require.True(t, ok)
	assert.Contains(t, d.ExpectedKeys, "end_time")

	extractors, err := c.Build(nil)
	require.NoError(t, err)
	schema, err := porekit.SchemaFor(extractors)
	require.NoError(t, err, "built-in extractors form a valid schema")
	assert.Equal(t, 2+5+8+10+5, schema.Len())
}

func TestCatalog_Register(t *testing.T) {
	tests := []struct {
		name    string
		factory porekit.ExtractorFactory
	}{
		{"nil factory", nil},
		{"empty base name", stub("", "a")},
		{"duplicate key", stub("x", "a", "a")},
		{"duplicate base name", stub("channel", "other")},
		{"factory error", func() (porekit.Extractor, error) { return nil, errors.New("no reference table") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			err := c.Register(tt.factory)
			assert.ErrorIs(t, err, porekit.ErrInvalidConfig)
			assert.Len(t, c.Names(), 4, "rejected factories are not added")
		})
	}
}

func TestCatalog_Factories(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(stub("a", "x")))
	require.NoError(t, c.Register(stub("b", "y")))

	all, err := c.Factories(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := c.Factories([]string{})
	require.NoError(t, err)
	assert.Empty(t, none)

	built, err := c.Build([]string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, "b", built[0].Descriptor().BaseName, "selection order is kept")

	_, err = c.Factories([]string{"missing"})
	assert.ErrorIs(t, err, porekit.ErrInvalidConfig)

	_, err = c.Factories([]string{"a", "a"})
	assert.ErrorIs(t, err, porekit.ErrInvalidConfig)
}
