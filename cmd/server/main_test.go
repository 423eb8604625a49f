package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := parseFlags(nil, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, options{}, opts)
	})

	t.Run("config and migrate", func(t *testing.T) {
		opts, err := parseFlags([]string{"-config", "/etc/studytrack.yaml", "-migrate", "status"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "/etc/studytrack.yaml", opts.configPath)
		assert.Equal(t, "status", opts.migrate)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseFlags([]string{"-verbose"}, io.Discard)
		assert.Error(t, err)
	})

	t.Run("stray arguments", func(t *testing.T) {
		_, err := parseFlags([]string{"serve"}, io.Discard)
		assert.ErrorContains(t, err, "unexpected arguments")
	})
}
