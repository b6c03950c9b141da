package aassert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angoly-ara/inventory/aassert"
)

type (
	flat struct {
		ID   string
		Name string
		note string //nolint:unused // unexported fields are not counted
	}
	nested struct {
		Flat  flat
		Items []*flat
	}
	deep struct {
		Rows [][]*flat
	}
	mixed struct {
		ID    string
		Stock int
	}
)

func TestNumFields(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		object   any
		expected int
		pass     bool
	}{
		"flat":         {flat{}, 2, true},
		"pointer":      {&flat{}, 2, true},
		"nested":       {nested{}, 6, true},
		"deep":         {deep{}, 3, true},
		"wrong number": {flat{}, 3, false},
		"no struct":    {"string", 0, false},
		"nil":          {nil, 0, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pass := aassert.NumFields(new(testing.T), tt.expected, tt.object)
			assert.Equal(t, tt.pass, pass)
		})
	}
}

func TestOnlyStringFields(t *testing.T) {
	t.Parallel()

	assert.True(t, aassert.OnlyStringFields(new(testing.T), flat{}))
	assert.False(t, aassert.OnlyStringFields(new(testing.T), mixed{}))
	assert.False(t, aassert.OnlyStringFields(new(testing.T), 42))
}
