package yml_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagcheck/swagcheck/errors"
	"github.com/swagcheck/swagcheck/yml"
	"gopkg.in/yaml.v3"
)

func TestWalk_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		src           string
		opts          []yml.WalkOption
		expectedCalls int
	}{
		{
			name:          "document with scalar",
			src:           "test",
			expectedCalls: 2,
		},
		{
			name:          "mapping",
			src:           "key1: value1\nkey2: value2\n",
			expectedCalls: 6, // document + mapping + 4 scalars
		},
		{
			name:          "sequence",
			src:           "- a\n- b\n",
			expectedCalls: 4,
		},
		{
			name:          "alias not followed",
			src:           "a: &x {k: v}\nb: *x\n",
			expectedCalls: 8, // document, mapping, a, {k: v}, k, v, b, *x
		},
		{
			name:          "alias followed",
			src:           "a: &x {k: v}\nb: *x\n",
			opts:          []yml.WalkOption{yml.WithFollowAliases()},
			expectedCalls: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			calls := 0
			err := yml.Walk(t.Context(), parse(t, tt.src), func(_ context.Context, _ yml.Visit) error {
				calls++
				return nil
			}, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCalls, calls)
		})
	}
}

func TestWalk_VisitMetadata(t *testing.T) {
	t.Parallel()

	root := parse(t, "tags:\n  - one\n  - two\n")
	var keys, values []string
	var indexes []int

	err := yml.Walk(t.Context(), root, func(_ context.Context, v yml.Visit) error {
		switch {
		case v.IsKey:
			keys = append(keys, v.Node.Value)
		case v.Key != nil:
			values = append(values, v.Key.Value)
		case v.Index >= 0:
			indexes = append(indexes, v.Index)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tags"}, keys)
	assert.Equal(t, []string{"tags"}, values)
	assert.Equal(t, []int{0, 1}, indexes)
}

func TestWalk_Terminate(t *testing.T) {
	t.Parallel()

	calls := 0
	err := yml.Walk(t.Context(), parse(t, "a: 1\nb: 2\n"), func(_ context.Context, v yml.Visit) error {
		calls++
		if v.Node.Kind == yaml.MappingNode {
			return yml.ErrTerminate
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	calls := 0
	err := yml.Walk(t.Context(), parse(t, "a: {b: 1}\nc: 2\n"), func(_ context.Context, v yml.Visit) error {
		calls++
		if v.Key != nil && v.Key.Value == "a" {
			return yml.ErrSkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 6, calls) // document, mapping, a, {b: 1}, c, 2
}

func TestWalk_Error(t *testing.T) {
	t.Parallel()

	boom := errors.Error("boom")
	err := yml.Walk(t.Context(), parse(t, "a: 1\n"), func(_ context.Context, _ yml.Visit) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err = yml.Walk(ctx, parse(t, "a: 1\n"), func(_ context.Context, _ yml.Visit) error {
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
