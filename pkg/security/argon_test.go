package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgonHashRoundTrip(t *testing.T) {
	t.Parallel()

	a := NewArgonHash()

	encoded, err := a.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.Contains(t, encoded, "$argon2id$")

	ok, err := a.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestArgonVerifyMismatch(t *testing.T) {
	t.Parallel()

	a := NewArgonHash()

	encoded, err := a.Hash("password123")
	require.NoError(t, err)

	ok, err := a.Verify("password124", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestArgonHashIsSalted(t *testing.T) {
	t.Parallel()

	a := NewArgonHash()

	first, err := a.Hash("samepassword")
	require.NoError(t, err)

	second, err := a.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestArgonVerifyBadEncoding(t *testing.T) {
	t.Parallel()

	a := NewArgonHash()

	_, err := a.Verify("whatever", "not-a-phc-string")
	require.ErrorIs(t, err, ErrHashFormat)

	_, err = a.Verify("whatever", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
	require.ErrorIs(t, err, ErrHashFormat)
}
