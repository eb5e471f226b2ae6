package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultQueryOptions(t *testing.T) {
	opts := DefaultQueryOptions()

	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, 8000, opts.ContextWindow)
	assert.True(t, opts.ExpandQuery)
	assert.True(t, opts.IncludeRelated)
	assert.Equal(t, 2, opts.MaxDepth)
}

func TestClampDepth(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		want  int
	}{
		{name: "unset falls back to default", depth: 0, want: 2},
		{name: "negative falls back to default", depth: -1, want: 2},
		{name: "in range passes through", depth: 1, want: 1},
		{name: "ceiling passes through", depth: 3, want: 3},
		{name: "above ceiling is clamped", depth: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampDepth(tt.depth))
		})
	}
}
