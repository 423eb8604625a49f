package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/phrazzld/studytrack/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun(t *testing.T) {
	t.Run("hashes one password per line", func(t *testing.T) {
		var out bytes.Buffer
		in := strings.NewReader("longpass1\n\nтест1234\r\n")

		require.NoError(t, run([]string{"-cost", "4"}, in, &out, io.Discard))

		hashes := strings.Fields(out.String())
		require.Len(t, hashes, 2)

		hasher := auth.NewBcryptHasher(bcrypt.MinCost)
		assert.True(t, hasher.Verify("longpass1", hashes[0]))
		assert.True(t, hasher.Verify("тест1234", hashes[1]))

		cost, err := bcrypt.Cost([]byte(hashes[0]))
		require.NoError(t, err)
		assert.Equal(t, 4, cost)
	})

	t.Run("overlong password names the line", func(t *testing.T) {
		in := strings.NewReader("ok-password\n" + strings.Repeat("x", 73) + "\n")

		err := run([]string{"-cost", "4"}, in, io.Discard, io.Discard)
		assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
		assert.ErrorContains(t, err, "line 2")
	})

	t.Run("bad flag", func(t *testing.T) {
		err := run([]string{"-rounds", "4"}, strings.NewReader(""), io.Discard, io.Discard)
		assert.Error(t, err)
	})
}
