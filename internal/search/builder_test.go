package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name     string
		form     Form
		ok       bool
		expected Request
		shape    Shape
	}{
		{
			name: "global search",
			form: Form{Query: "Acme", Limit: 5, ScoreThreshold: 0.7},
			ok:   true,
			expected: Request{
				Query: "Acme", Limit: 5, ScoreThreshold: 0.7,
			},
			shape: ShapeGlobal,
		},
		{
			name: "city scoped search",
			form: Form{Query: "Acme", City: "Paris", CityScope: true, Limit: 5, ScoreThreshold: 0.7},
			ok:   true,
			expected: Request{
				Query: "Acme", City: "Paris", Limit: 5, ScoreThreshold: 0.7,
			},
			shape: ShapeCity,
		},
		{
			name:     "city scope enabled with empty city falls back to global",
			form:     Form{Query: "Acme", City: "", CityScope: true, Limit: 5, ScoreThreshold: 0.7},
			ok:       true,
			expected: Request{Query: "Acme", Limit: 5, ScoreThreshold: 0.7},
			shape:    ShapeGlobal,
		},
		{
			name:     "city scope enabled with blank city is global",
			form:     Form{Query: "Acme", City: "   ", CityScope: true, Limit: 5, ScoreThreshold: 0.7},
			ok:       true,
			expected: Request{Query: "Acme", Limit: 5, ScoreThreshold: 0.7},
			shape:    ShapeGlobal,
		},
		{
			name:     "city ignored while scope disabled",
			form:     Form{Query: "Acme", City: "Paris", CityScope: false, Limit: 5, ScoreThreshold: 0.7},
			ok:       true,
			expected: Request{Query: "Acme", Limit: 5, ScoreThreshold: 0.7},
			shape:    ShapeGlobal,
		},
		{
			name:     "query and city are trimmed",
			form:     Form{Query: "  Acme  ", City: " Paris ", CityScope: true, Limit: 20, ScoreThreshold: 0.1},
			ok:       true,
			expected: Request{Query: "Acme", City: "Paris", Limit: 20, ScoreThreshold: 0.1},
			shape:    ShapeCity,
		},
		{
			name: "empty query is a no-op",
			form: Form{Query: "", City: "Paris", CityScope: true, Limit: 5, ScoreThreshold: 0.7},
			ok:   false,
		},
		{
			name: "whitespace query is a no-op",
			form: Form{Query: " \t ", Limit: 5, ScoreThreshold: 0.7},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := BuildRequest(tt.form)
			require.Equal(t, tt.ok, ok)
			if !ok {
				assert.Equal(t, Request{}, req)
				return
			}
			assert.Equal(t, tt.expected, req)
			assert.Equal(t, tt.shape, req.Shape())
		})
	}
}

func TestBuildRequest_CopiesNumericFieldsVerbatim(t *testing.T) {
	// Out-of-range values are never re-validated here.
	req, ok := BuildRequest(Form{Query: "q", Limit: 500, ScoreThreshold: 3})
	require.True(t, ok)
	assert.Equal(t, 500, req.Limit)
	assert.Equal(t, 3.0, req.ScoreThreshold)
}

func TestResultSameAs(t *testing.T) {
	a := Result{Name: "Acme", City: "Paris"}
	b := Result{Name: "Acme", City: "Berlin"}
	c := Result{Name: "Globex"}

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(c))
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "global", ShapeGlobal.String())
	assert.Equal(t, "city", ShapeCity.String())
}
