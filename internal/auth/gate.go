// Package auth gates the admin area behind the single configured
// credential pair and issues signed session tokens.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role a session can carry.
const RoleAdmin = "admin"

// DefaultTTL is the session lifetime when Settings.TTL is zero.
const DefaultTTL = 24 * time.Hour

// Kind classifies an authentication failure.
type Kind int

const (
	InvalidCredentials Kind = iota + 1
	MissingConfiguration
)

func (k Kind) String() string {
	switch k {
	case InvalidCredentials:
		return "invalid credentials"
	case MissingConfiguration:
		return "missing configuration"
	}
	return "unknown"
}

// Sentinels for errors.Is against an *AuthError.
var (
	ErrInvalidCredentials   = &AuthError{Kind: InvalidCredentials}
	ErrMissingConfiguration = &AuthError{Kind: MissingConfiguration}
)

// AuthError reports why authentication failed.
type AuthError struct {
	Kind   Kind
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Is matches any *AuthError of the same kind.
func (e *AuthError) Is(target error) bool {
	var t *AuthError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Settings configures a Gate.
type Settings struct {
	AuthURL       string
	Secret        string
	AdminEmail    string
	AdminPassword string
	TTL           time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	Now        func() time.Time
}

// Gate checks admin credentials and mints session tokens.
type Gate struct {
	issuer string
	secret []byte
	email  string
	hash   []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewGate validates the settings and hashes the admin password.
func NewGate(s Settings) (*Gate, error) {
	var missing []string
	if s.Secret == "" {
		missing = append(missing, "AUTH_SECRET")
	}
	if s.AdminEmail == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}
	if s.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, &AuthError{Kind: MissingConfiguration, Detail: strings.Join(missing, ", ")}
	}

	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(digest([]byte(s.Secret), s.AdminPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}
	return &Gate{
		issuer: s.AuthURL,
		secret: []byte(s.Secret),
		email:  s.AdminEmail,
		hash:   hash,
		ttl:    ttl,
		now:    now,
	}, nil
}

// digest maps a password of any length to a fixed 64-byte input for
// bcrypt, which ignores everything past 72 bytes.
func digest(key []byte, password string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(password))
	return []byte(hex.EncodeToString(mac.Sum(nil)))
}

// Session is an authenticated admin session.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Claims    *Claims   `json:"-"`
}

// Authenticate succeeds only when both email and password equal the
// configured pair.
func (g *Gate) Authenticate(email, password string) (*Session, error) {
	if g == nil {
		return nil, &AuthError{Kind: MissingConfiguration, Detail: "gate not configured"}
	}
	if email == "" || password == "" {
		return nil, &AuthError{Kind: InvalidCredentials}
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(g.email)) == 1
	// Both checks always run.
	passOK := bcrypt.CompareHashAndPassword(g.hash, digest(g.secret, password)) == nil
	if !emailOK || !passOK {
		log.Printf("[Auth] rejected login for %q", email)
		return nil, &AuthError{Kind: InvalidCredentials}
	}

	sess, err := g.issue(email)
	if err != nil {
		return nil, err
	}
	log.Printf("[Auth] admin session issued, expires %s", sess.ExpiresAt.Format(time.RFC3339))
	return sess, nil
}

// TTL is the lifetime of issued sessions.
func (g *Gate) TTL() time.Duration {
	return g.ttl
}
