package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "admin@zenith.test"
	testPassword = "correct horse"
)

func testSettings() Settings {
	return Settings{
		AuthURL:       "http://localhost:8080",
		Secret:        "test-secret",
		AdminEmail:    testEmail,
		AdminPassword: testPassword,
		BcryptCost:    bcrypt.MinCost,
	}
}

func newGate(t *testing.T, mutate func(*Settings)) *Gate {
	t.Helper()
	s := testSettings()
	if mutate != nil {
		mutate(&s)
	}
	g, err := NewGate(s)
	require.NoError(t, err)
	return g
}

func TestAuthenticate_Success(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	g := newGate(t, func(s *Settings) { s.Now = func() time.Time { return now } })

	sess, err := g.Authenticate(testEmail, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	assert.Equal(t, RoleAdmin, sess.Claims.Role)
	assert.Equal(t, testEmail, sess.Claims.Email)
	assert.Equal(t, "1", sess.Claims.Subject)
	assert.Equal(t, now.Add(24*time.Hour), sess.ExpiresAt)

	claims, err := g.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "http://localhost:8080", claims.Issuer)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	g := newGate(t, nil)

	sess, err := g.Authenticate(testEmail, "wrong")
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, InvalidCredentials, aerr.Kind)
}

func TestAuthenticate_WrongEmail(t *testing.T) {
	g := newGate(t, nil)

	_, err := g.Authenticate("someone@zenith.test", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_EmptyInputs(t *testing.T) {
	g := newGate(t, nil)

	_, err := g.Authenticate("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = g.Authenticate(testEmail, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewGate_MissingConfiguration(t *testing.T) {
	cases := map[string]func(*Settings){
		"ADMIN_EMAIL":    func(s *Settings) { s.AdminEmail = "" },
		"ADMIN_PASSWORD": func(s *Settings) { s.AdminPassword = "" },
		"AUTH_SECRET":    func(s *Settings) { s.Secret = "" },
	}
	for key, mutate := range cases {
		t.Run(key, func(t *testing.T) {
			s := testSettings()
			mutate(&s)

			g, err := NewGate(s)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrMissingConfiguration)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestAuthenticate_NilGate(t *testing.T) {
	var g *Gate
	_, err := g.Authenticate(testEmail, testPassword)
	assert.ErrorIs(t, err, ErrMissingConfiguration)
}

func TestAuthError_IsDistinguishesKinds(t *testing.T) {
	err := &AuthError{Kind: InvalidCredentials, Detail: "x"}
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrMissingConfiguration)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	g := newGate(t, func(s *Settings) {
		s.TTL = time.Hour
		s.Now = func() time.Time { return now }
	})
	sess, err := g.Authenticate(testEmail, testPassword)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = g.Verify(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Tampered(t *testing.T) {
	g := newGate(t, nil)
	sess, err := g.Authenticate(testEmail, testPassword)
	require.NoError(t, err)

	parts := strings.Split(sess.Token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = g.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_OtherSecret(t *testing.T) {
	g := newGate(t, nil)
	other := newGate(t, func(s *Settings) { s.Secret = "another" })
	sess, err := other.Authenticate(testEmail, testPassword)
	require.NoError(t, err)

	_, err = g.Verify(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongRole(t *testing.T) {
	g := newGate(t, nil)
	claims := &Claims{
		Role: "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "http://localhost:8080",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = g.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Empty(t *testing.T) {
	g := newGate(t, nil)
	_, err := g.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_SharedPrefixPastBcryptLimit(t *testing.T) {
	configured := strings.Repeat("a", 72)
	g := newGate(t, func(s *Settings) { s.AdminPassword = configured })

	_, err := g.Authenticate(testEmail, configured+"WRONG-SUFFIX")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = g.Authenticate(testEmail, configured)
	assert.NoError(t, err)
}

func TestAuthenticate_LongPassword(t *testing.T) {
	configured := strings.Repeat("zenith-", 20)
	require.Greater(t, len(configured), 72)
	g := newGate(t, func(s *Settings) { s.AdminPassword = configured })

	sess, err := g.Authenticate(testEmail, configured)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	_, err = g.Authenticate(testEmail, configured[:len(configured)-1]+"X")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
