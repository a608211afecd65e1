package logger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorfAndReturnWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	l := Logger{}

	err := l.ErrorfAndReturn("failed to write item: %w", cause)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, fmt.Sprintf("failed to write item: %v", cause), err.Error())
}
