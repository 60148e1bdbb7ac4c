package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	tok, err := Issue("secret", 42, "PROVIDER", 1)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "PROVIDER", claims["account_type"])
}

func TestParseAuth_Rejects(t *testing.T) {
	tok, err := Issue("secret", 1, "USER", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "other-secret")
	require.Error(t, err)

	_, err = ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer not.a.token", "secret")
	require.Error(t, err)
}

func TestIssue_ExpiredToken(t *testing.T) {
	tok, err := Issue("secret", 1, "USER", -1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "secret")
	require.Error(t, err)
}
