package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqlgen/nodes"
)

// Renderer turns a node into SQL text. Tests bind it to a dialect, for
// example func(n nodes.Node) (string, error) { return visitors.Generate(d, n) }.
type Renderer func(nodes.Node) (string, error)

// AssertEqual checks that got == want and reports a descriptive error if not.
func AssertEqual[T comparable](t testing.TB, got, want T) {
	t.Helper()
	assert.Equal(t, want, got)
}

// AssertSQL renders node and compares it with the expected string.
func AssertSQL(t testing.TB, render Renderer, node nodes.Node, expected string) {
	t.Helper()
	got, err := render(node)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

// AssertRenderError renders node and checks that it fails with target and
// produces no text.
func AssertRenderError(t testing.TB, render Renderer, node nodes.Node, target error) {
	t.Helper()
	got, err := render(node)
	require.ErrorIs(t, err, target)
	assert.Empty(t, got, "failed generation must not return partial SQL")
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	require.NoError(t, err)
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	require.Error(t, err)
}

// AssertErrorIs fails the test unless err wraps target.
func AssertErrorIs(t testing.TB, err, target error) {
	t.Helper()
	require.ErrorIs(t, err, target)
}
