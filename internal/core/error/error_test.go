package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_WrapsUnderlying(t *testing.T) {
	base := errors.New("connection refused")
	err := New(base, http.StatusBadGateway, RedisErrorMessage)

	assert.Equal(t, "redis operation failed: connection refused", err.Error())
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, base, err.Unwrap())
}

func TestError_MessageOnlyWithoutCause(t *testing.T) {
	err := New(nil, http.StatusInternalServerError, SystemErrorMessage)
	assert.Equal(t, SystemErrorMessage, err.Error())
}

func TestWrapRedis(t *testing.T) {
	assert.Nil(t, WrapRedis(nil))

	notFound := WrapRedis(redis.Nil)
	require.NotNil(t, notFound)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, RedisNotFoundMessage, notFound.Message)

	other := WrapRedis(errors.New("timeout"))
	require.NotNil(t, other)
	assert.Equal(t, http.StatusBadGateway, other.Status)
	assert.Equal(t, RedisErrorMessage, other.Message)
}

func TestError_As(t *testing.T) {
	wrapped := WrapRedis(errors.New("timeout"))

	var target *Error
	require.True(t, errors.As(error(wrapped), &target))
	assert.Equal(t, http.StatusBadGateway, target.Status)
}
