package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swagcheck/swagcheck/validation"
)

func TestSet_CollapsesEqualDiagnostics(t *testing.T) {
	t.Parallel()

	s := validation.NewSet(
		validation.NewError(3, "type missing"),
		validation.NewError(3, "type missing"),
		validation.NewWarning(3, "type missing"),
	)
	s.Add(validation.NewError(3, "type missing"))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(validation.Diagnostic{Line: 3, Severity: validation.SeverityWarning, Message: "type missing"}))
	assert.False(t, s.Contains(validation.NewError(4, "type missing")))
}

func TestSet_Sorted(t *testing.T) {
	t.Parallel()

	var s validation.Set
	s.Add(
		validation.NewWarning(2, "duplicate key: name"),
		validation.NewError(10, "array missing items"),
		validation.NewError(2, "b"),
		validation.NewError(2, "a"),
		validation.NewError(1, "z"),
	)

	assert.Equal(t, []validation.Diagnostic{
		validation.NewError(1, "z"),
		validation.NewError(2, "a"),
		validation.NewError(2, "b"),
		validation.NewWarning(2, "duplicate key: name"),
		validation.NewError(10, "array missing items"),
	}, s.Sorted())
}

func TestSet_Empty(t *testing.T) {
	t.Parallel()

	var s validation.Set
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Sorted())
	assert.False(t, s.Contains(validation.NewError(1, "x")))
}

func TestHasErrors(t *testing.T) {
	t.Parallel()

	assert.False(t, validation.HasErrors(nil))
	assert.False(t, validation.HasErrors([]validation.Diagnostic{validation.NewWarning(1, "w")}))
	assert.True(t, validation.HasErrors([]validation.Diagnostic{validation.NewWarning(1, "w"), validation.NewError(2, "e")}))
}

func TestDiagnostic_Error(t *testing.T) {
	t.Parallel()

	var err error = validation.NewWarning(7, "duplicate key: name")
	assert.EqualError(t, err, "[7] warning: duplicate key: name")
	assert.Equal(t, "unknown", validation.Severity(9).String())
}
