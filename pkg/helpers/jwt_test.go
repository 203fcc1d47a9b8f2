package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", 2*time.Hour)

	tok, exp, err := m.GenerateToken("ana@x.com", "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "ana@x.com", claims.Subject)
}

func TestParseToken_Expiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewJWTManager("secret", time.Hour).WithClock(fixedClock(issued))

	tok, _, err := m.GenerateToken("a@b.c", "A")
	require.NoError(t, err)

	m.WithClock(fixedClock(issued.Add(59 * time.Minute)))
	_, err = m.ParseToken(tok)
	require.NoError(t, err, "token must be valid before expiry")

	m.WithClock(fixedClock(issued.Add(time.Hour)))
	_, err = m.ParseToken(tok)
	require.Error(t, err, "token must be rejected at expiry")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	m.WithClock(fixedClock(issued.Add(3 * time.Hour)))
	_, err = m.ParseToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := NewJWTManager("right-secret", time.Hour).GenerateToken("u@x.io", "U")
	require.NoError(t, err)

	_, err = NewJWTManager("wrong-secret", time.Hour).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Tampered(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("k", time.Hour)
	tok, _, err := m.GenerateToken("u@x.io", "U")
	require.NoError(t, err)

	other, _, err := m.GenerateToken("admin@x.io", "Admin")
	require.NoError(t, err)

	// header.payload from one token with the signature of another
	forged := tok[:strings.LastIndex(tok, ".")] + other[strings.LastIndex(other, "."):]
	_, err = m.ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := &Claims{
		Email: "u@x.io",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("k", time.Hour).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RequiresExpiry(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "u@x.io"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewJWTManager("k", time.Hour).ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewJWTManager("k", time.Hour).ParseToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
