package augerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMatchesSentinelByCode(t *testing.T) {
	err := New(CodeInvalidImage, "image is %dx%d", 0, 10)

	assert.Equal(t, "INVALID_IMAGE: image is 0x10", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidImage))
	assert.False(t, errors.Is(err, ErrGeometry))
	assert.False(t, errors.Is(err, ErrInvalidEffectSpec))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("pivot too small")
	err := Wrap(CodeGeometry, cause, "solve perspective system")

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrGeometry))
	assert.Contains(t, err.Error(), "pivot too small")
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"direct", New(CodeInvalidEffectSpec, "unknown effect"), CodeInvalidEffectSpec},
		{"wrapped by fmt", fmt.Errorf("lighting: %w", New(CodeGeometry, "x")), CodeGeometry},
		{"plain error", errors.New("plain"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}
