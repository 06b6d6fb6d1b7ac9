package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swagcheck/swagcheck/errors"
)

const errSample = errors.Error("sample failure")

func TestError_Is_Success(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		target   error
		expected bool
	}{
		{
			name:     "same constant",
			target:   errSample,
			expected: true,
		},
		{
			name:     "wrapped message prefix",
			target:   errors.New("sample failure -- cause"),
			expected: true,
		},
		{
			name:     "different message",
			target:   errors.New("other failure"),
			expected: false,
		},
		{
			name:     "nil target",
			target:   nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, errSample.Is(tt.target))
		})
	}
}

func TestError_Wrap_Success(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("disk on fire")
	err := errSample.Wrap(cause)

	assert.Equal(t, "sample failure -- disk on fire", err.Error())
	assert.ErrorIs(t, err, errSample, "wrapped error should match its sentinel")
	assert.ErrorIs(t, err, cause, "wrapped error should unwrap to its cause")
}

func TestError_Wrapf_Success(t *testing.T) {
	t.Parallel()

	err := errSample.Wrapf("line %d", 3)
	assert.Equal(t, "sample failure -- line 3", err.Error())
	assert.True(t, errors.Is(err, errSample))
}

func TestError_WrapNil_Success(t *testing.T) {
	t.Parallel()

	err := errSample.Wrap(nil)
	assert.Equal(t, "sample failure", err.Error())
}

func TestUnwrapErrors_Success(t *testing.T) {
	t.Parallel()

	first := errors.New("first")
	second := errors.New("second")

	assert.Nil(t, errors.UnwrapErrors(nil))
	assert.Equal(t, []error{first}, errors.UnwrapErrors(first))
	assert.Equal(t, []error{first, second}, errors.UnwrapErrors(errors.Join(first, second)))
}

func TestAs_Success(t *testing.T) {
	t.Parallel()

	var target errors.Error
	err := fmt.Errorf("context: %w", errSample)
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, errSample, target)
}
