package assistant_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	// Packages
	assistant "github.com/mutablelogic/go-assistant"
	assert "github.com/stretchr/testify/assert"
)

func Test_error_001(t *testing.T) {
	assert := assert.New(t)

	err := assistant.ErrNotFound.Withf("tool %q", "get_weather")
	assert.True(errors.Is(err, assistant.ErrNotFound))
	assert.False(errors.Is(err, assistant.ErrBadParameter))
	assert.Equal(`not found: tool "get_weather"`, err.Error())
}

func Test_error_002(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("service unavailable", assistant.ErrUnavailable.Error())
	assert.Equal("error code 99", assistant.Err(99).Error())
	assert.Equal("bad parameter: missing city", assistant.ErrBadParameter.With("missing city").Error())
}

func Test_error_003(t *testing.T) {
	assert := assert.New(t)

	err := fmt.Errorf("%w: %w", assistant.ErrTimeout, context.DeadlineExceeded)
	assert.ErrorIs(err, assistant.ErrTimeout)
	assert.ErrorIs(err, context.DeadlineExceeded)
	assert.Equal("deadline exceeded: context deadline exceeded", err.Error())
}
