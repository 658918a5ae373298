package config_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/filetools/dupfind/internal/config"
)

func TestNewDefaults(t *testing.T) {
	c, err := config.New(config.WithRoots("/tmp"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"/tmp"}, c.Roots)
	assert.True(t, c.Threads > 0)
	assert.Equal(t, "txt", c.Format)
	assert.False(t, c.FollowSymlinks)
}

func TestNewRequiresRoots(t *testing.T) {
	_, err := config.New()
	assert.Error(t, err)
	var cfgErr *config.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "roots", cfgErr.Field)
}

func TestNewRejectsBadThreads(t *testing.T) {
	_, err := config.New(config.WithRoots("."), config.WithThreads(0))
	assert.Error(t, err)
}

func TestNewRejectsBadFormat(t *testing.T) {
	_, err := config.New(config.WithRoots("."), config.WithFormat("xml"))
	assert.Error(t, err)
}

func TestNewAcceptsEveryValidFormat(t *testing.T) {
	for _, format := range []string{"txt", "csv", "json"} {
		c, err := config.New(config.WithRoots("."), config.WithFormat(format))
		assert.NoError(t, err)
		assert.Equal(t, format, c.Format)
	}
}

