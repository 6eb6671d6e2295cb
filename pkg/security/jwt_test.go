package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("super-secret", time.Hour)

	token, err := codec.Issue(42)
	require.NoError(t, err)

	userID, err := codec.Validate(token)
	require.NoError(t, err)
	require.Equal(t, 42, userID)
}

func TestTokenCodecExpired(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("super-secret", -time.Second)

	token, err := codec.Issue(7)
	require.NoError(t, err)

	_, err = codec.Validate(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodecWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenCodec("right-secret", time.Hour).Issue(7)
	require.NoError(t, err)

	_, err = NewTokenCodec("wrong-secret", time.Hour).Validate(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodecMalformed(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("super-secret", time.Hour)

	_, err := codec.Validate("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenCodecRejectsZeroUserID(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("super-secret", time.Hour)

	token, err := codec.Issue(0)
	require.NoError(t, err)

	_, err = codec.Validate(token)
	require.ErrorIs(t, err, ErrTokenMalformed)
}
