package secure_test

import (
	"testing"

	"github.com/seedvault/seedvault/internal/secure"
	"github.com/stretchr/testify/require"
)

func TestConstantTimeEquals(t *testing.T) {
	require.True(t, secure.ConstantTimeEquals("", ""))
	require.True(t, secure.ConstantTimeEquals("abc123", "abc123"))

	require.False(t, secure.ConstantTimeEquals("abc123", "abc124"))
	require.False(t, secure.ConstantTimeEquals("abc123", "abc12"))
	require.False(t, secure.ConstantTimeEquals("abc123", ""))
	require.False(t, secure.ConstantTimeEquals("", "abc123"))
}
