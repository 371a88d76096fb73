package service

import (
	"strings"
	"testing"

	"github.com/allisson/go-pwdhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	t.Run("plain password is hashed", func(t *testing.T) {
		svc, err := NewPasswordService("admin123")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(svc.(*passwordService).hash, argon2idPrefix))
		assert.True(t, svc.Verify("admin123"))
		assert.False(t, svc.Verify("admin1234"))
		assert.False(t, svc.Verify(""))
	})

	t.Run("pre-hashed password", func(t *testing.T) {
		hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
		require.NoError(t, err)
		hash, err := hasher.Hash([]byte("s3cret-demo"))
		require.NoError(t, err)

		svc, err := NewPasswordService(hash)
		require.NoError(t, err)

		assert.True(t, svc.Verify("s3cret-demo"))
		assert.False(t, svc.Verify(hash))
	})
}
